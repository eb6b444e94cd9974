// Package protocol implements the per-family wire protocols the vendor deck
// software speaks: image-upload reassembly from chunked Output reports, Input
// report framing for button state, and Feature report command decode/encode.
//
// One Handler instance serves one USB connection and is the only holder of
// image-reassembly state; callers feed it reports serially. Any validation
// failure resets the in-flight upload to idle, mirroring the real hardware's
// silent-reset behavior; the host always restarts an upload cleanly.
package protocol

import (
	"fmt"

	"github.com/deckforge/deckforge/deck"
)

// OutputKind classifies the result of feeding one Output report to a handler.
type OutputKind uint8

const (
	// OutputUnhandled means the report was not recognized (or was dropped
	// after a validation failure); no response is owed.
	OutputUnhandled OutputKind = iota
	// OutputInProgress means the report was a valid chunk of an image upload
	// that is not yet complete.
	OutputInProgress
	// OutputKeyImage means an image upload completed; Key and Image are set.
	OutputKeyImage
)

// OutputResult is what ParseOutputReport returns. Image is only valid when
// Kind is OutputKeyImage and is owned by the caller.
type OutputResult struct {
	Kind  OutputKind
	Key   uint8
	Image []byte
}

var (
	unhandled  = OutputResult{Kind: OutputUnhandled}
	inProgress = OutputResult{Kind: OutputInProgress}
)

// Handler is the per-family protocol state machine. Implementations live in
// this package only; construct one through New.
type Handler interface {
	// Version reports the protocol family this handler speaks.
	Version() deck.Protocol

	// ParseOutputReport feeds one raw Output report into the image-upload
	// state machine.
	ParseOutputReport(data []byte) OutputResult

	// MapButtons converts a physical press-state array into the logical
	// ordering and active count this family reports.
	MapButtons(physical []bool, cols, rows int, leftToRight bool) ButtonMapping

	// HIDDescriptor returns the HID report descriptor for this family. The
	// bytes are a compatibility constant: host drivers match on them exactly.
	HIDDescriptor() []byte

	// InputReportSize returns the Input report length for a device with the
	// given key count.
	InputReportSize(buttonCount int) int

	// FormatButtonReport writes the Input report for the given mapping into
	// report and returns the number of bytes written (0 if report is too
	// small).
	FormatButtonReport(m *ButtonMapping, report []byte) int

	// HandleFeatureReport decodes a Feature SET report. The bool reports
	// whether a command was recognized.
	HandleFeatureReport(reportID uint8, data []byte) (SetCommand, bool)

	// GetFeatureReport builds the response to a Feature GET request into buf
	// and returns the number of bytes written; ok is false for unknown
	// report ids.
	GetFeatureReport(reportID uint8, buf []byte) (n int, ok bool)

	// Reset drops any in-flight image upload. Idempotent.
	Reset()
}

// New builds the handler for the device's protocol family. The device also
// parameterizes the handler: reassembly capacity comes from MaxImageSize and
// the Module 15/32 family needs the key count to pick its model framing.
//
// The switch is exhaustive over the closed protocol set; an unknown family is
// a programming error surfaced as ErrUnsupportedDevice.
func New(dev deck.Device) (Handler, error) {
	switch dev.Protocol {
	case deck.ProtocolV1:
		return newV1Handler(dev.MaxImageSize()), nil
	case deck.ProtocolV2:
		return newV2Handler(dev.MaxImageSize()), nil
	case deck.ProtocolModule6:
		return newModule6Handler(dev.MaxImageSize()), nil
	case deck.ProtocolModule1532:
		return newModule1532Handler(dev.Layout.TotalKeys()), nil
	default:
		return nil, fmt.Errorf("%w: protocol %s", deck.ErrUnsupportedDevice, dev.Protocol)
	}
}

// SerialNumber returns the unit serial number the given model family reports
// over its Feature GET surface, for reuse in USB string descriptors.
func SerialNumber(p deck.Protocol) string {
	switch p {
	case deck.ProtocolModule6:
		return string(module6Serial)
	case deck.ProtocolModule1532:
		return string(module1532Serial)
	default:
		return string(v1SerialNumber)
	}
}

// featureEnvelopeSize is the fixed Feature GET response size shared by most
// report ids across families.
const featureEnvelopeSize = 32

// writeVersionEnvelope fills the common 32-byte Feature GET envelope:
// [report_id, 0x0c, 0x31, 0x33, 0x00, ascii...], with the ASCII payload
// starting at offset 5. Returns bytes written.
func writeVersionEnvelope(buf []byte, reportID uint8, ascii []byte) int {
	n := featureEnvelopeSize
	if len(buf) < n {
		n = len(buf)
	}
	clear(buf[:n])
	if n == 0 {
		return 0
	}
	buf[0] = reportID
	if n > 1 {
		buf[1] = 0x0c // payload length
	}
	if n > 2 {
		buf[2] = 0x31
	}
	if n > 3 {
		buf[3] = 0x33
	}
	copyASCII(buf[:n], 5, ascii)
	return n
}

// writeIdleTimeEnvelope fills the idle-time Feature GET response:
// [report_id, 0x06, seconds as little-endian i32, 0...].
func writeIdleTimeEnvelope(buf []byte, reportID uint8, seconds int32) int {
	n := featureEnvelopeSize
	if len(buf) < n {
		n = len(buf)
	}
	clear(buf[:n])
	if n == 0 {
		return 0
	}
	buf[0] = reportID
	if n > 1 {
		buf[1] = 0x06
	}
	putInt32LE(buf[:n], 2, seconds)
	return n
}

func copyASCII(buf []byte, offset int, ascii []byte) {
	if offset >= len(buf) {
		return
	}
	copy(buf[offset:], ascii)
}

func putInt32LE(buf []byte, offset int, v int32) {
	for i := 0; i < 4; i++ {
		if offset+i >= len(buf) {
			return
		}
		buf[offset+i] = byte(uint32(v) >> (8 * i))
	}
}
