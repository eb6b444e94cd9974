package protocol

import "github.com/deckforge/deckforge/deck"

// v1Handler speaks the BMP-based protocol of the Original, Mini, and Revised
// Mini. Key images arrive in exactly two Output packets; packet 1 restarts
// reception unconditionally and packet 2 completes it.
type v1Handler struct {
	buf         []byte
	capacity    int
	receiving   bool
	expectedKey uint8
	idleSeconds int32
}

func newV1Handler(capacity int) *v1Handler {
	return &v1Handler{buf: make([]byte, 0, capacity), capacity: capacity}
}

func (h *v1Handler) Version() deck.Protocol { return deck.ProtocolV1 }

func (h *v1Handler) Reset() {
	h.buf = h.buf[:0]
	h.receiving = false
	h.expectedKey = 0
}

// ParseOutputReport handles the two-packet V1 image upload:
//
//	[0x02, 0x01, packet_num, 0x00, 0x00, key_id, 0x00, 0x00, payload...]
//
// Some HID stacks strip the leading report id before delivery, so the
// [0x01, packet_num, 0x00, 0x00, key_id, 0x00, 0x00, payload...] form is
// accepted too. Unexpected packet_num/key combinations are ignored without
// resetting; the observed V1 hosts never interleave uploads.
func (h *v1Handler) ParseOutputReport(data []byte) OutputResult {
	if len(data) < 8 {
		return unhandled
	}

	var packetNum, keyID uint8
	var payloadStart int
	switch {
	case data[0] == outputReportImage:
		packetNum, keyID, payloadStart = data[2], data[5], 8
	case data[0] == 0x01 && len(data) >= 7:
		packetNum, keyID, payloadStart = data[1], data[4], 7
	default:
		return unhandled
	}

	switch {
	case packetNum == 0x01:
		h.Reset()
		h.receiving = true
		h.expectedKey = keyID
		if !h.append(data[payloadStart:]) {
			return unhandled
		}
		return inProgress

	case packetNum == 0x02 && h.receiving && keyID == h.expectedKey:
		if !h.append(data[payloadStart:]) {
			return unhandled
		}
		image := make([]byte, len(h.buf))
		copy(image, h.buf)
		key := h.expectedKey
		h.Reset()
		return OutputResult{Kind: OutputKeyImage, Key: key, Image: image}

	default:
		return unhandled
	}
}

// append copies one payload segment into the reassembly buffer, resetting the
// whole upload on overflow. Reports false if the packet had to be dropped.
func (h *v1Handler) append(payload []byte) bool {
	if len(h.buf)+len(payload) > h.capacity {
		h.Reset()
		return false
	}
	h.buf = append(h.buf, payload...)
	return true
}

func (h *v1Handler) MapButtons(physical []bool, cols, rows int, leftToRight bool) ButtonMapping {
	return ButtonMapping{
		Pressed:     mapButtons(physical, cols, rows, leftToRight),
		ActiveCount: cols * rows,
	}
}

func (h *v1Handler) InputReportSize(buttonCount int) int {
	return 1 + buttonCount // report id + one state byte per key
}

// FormatButtonReport writes [0x01, state...] and zero-fills the remainder.
func (h *v1Handler) FormatButtonReport(m *ButtonMapping, report []byte) int {
	if len(report) == 0 {
		return 0
	}
	report[0] = 0x01
	n := m.ActiveCount
	if n > len(report)-1 {
		n = len(report) - 1
	}
	for i := 0; i < n; i++ {
		report[1+i] = boolByte(m.Pressed[i])
	}
	clear(report[1+n:])
	return 1 + n
}

func (h *v1Handler) HandleFeatureReport(reportID uint8, data []byte) (SetCommand, bool) {
	switch reportID {
	case featureReportBrightness:
		// [0x05, 0x55, 0xAA, 0xD1, 0x01, value, ...]
		if len(data) >= 6 && data[1] == magic1 && data[2] == magic2 && data[3] == magic3 && data[4] == 0x01 {
			if data[5] == brightnessResetMagic {
				return Reset{}, true
			}
			return SetBrightness{Value: data[5]}, true
		}
	case featureReportReset:
		// Report 0x0B carries both the V1 reset ([0x0B, 0x63, ...]) and the
		// Module-style idle timeout ([0x0B, 0xA2, seconds_le32]).
		if len(data) >= 6 && data[1] == idleTimeCommand {
			secs := int32LE(data[2:6])
			h.idleSeconds = secs
			return SetIdleTime{Seconds: secs}, true
		}
		if len(data) >= 2 && data[1] == resetMagic {
			return Reset{}, true
		}
	}
	return nil, false
}

func (h *v1Handler) GetFeatureReport(reportID uint8, buf []byte) (int, bool) {
	switch reportID {
	case 0xa0, 0xa1, 0xa2, 0x05:
		return writeVersionEnvelope(buf, reportID, v1FirmwareVersion), true
	case 0x03:
		return writeVersionEnvelope(buf, reportID, v1SerialNumber), true
	case 0x04:
		// Short variant: 17 bytes, no length/type tag, version at offset 5.
		n := 17
		if len(buf) < n {
			n = len(buf)
		}
		clear(buf[:n])
		if n > 0 {
			buf[0] = reportID
		}
		copyASCII(buf[:n], 5, v1FirmwareVersion)
		return n, true
	case 0x07:
		// Reserved report: 16 zero bytes behind the id.
		n := 16
		if len(buf) < n {
			n = len(buf)
		}
		clear(buf[:n])
		if n > 0 {
			buf[0] = reportID
		}
		return n, true
	case featureReportGetIdleTime:
		return writeIdleTimeEnvelope(buf, reportID, h.idleSeconds), true
	}
	return 0, false
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func int32LE(b []byte) int32 {
	return int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
}
