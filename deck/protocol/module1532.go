package protocol

import "github.com/deckforge/deckforge/deck"

// module1532Handler speaks the 15- and 32-key Module protocol. Image upload
// uses Output command bytes 0x07/0x08/0x09 whose chunk layout has not been
// captured yet, so ParseOutputReport is a deliberate stub that never
// completes an image. Button reporting and the Feature command surface are
// fully implemented.
type module1532Handler struct {
	maxKeys     int
	idleSeconds int32
}

func newModule1532Handler(totalKeys int) *module1532Handler {
	maxKeys := 15
	if totalKeys > 15 {
		maxKeys = 32
	}
	return &module1532Handler{maxKeys: maxKeys}
}

func (h *module1532Handler) Version() deck.Protocol { return deck.ProtocolModule1532 }

func (h *module1532Handler) Reset() {}

// ParseOutputReport drops every report. Returning Unhandled rather than
// guessing the chunk framing keeps hosts from seeing phantom images.
func (h *module1532Handler) ParseOutputReport(data []byte) OutputResult {
	return unhandled
}

// MapButtons reports the model maximum (15 or 32) as the active count, not
// the configured key total.
func (h *module1532Handler) MapButtons(physical []bool, cols, rows int, leftToRight bool) ButtonMapping {
	mapped := mapButtons(physical, cols, rows, leftToRight)
	for i := h.maxKeys; i < deck.MaxKeys; i++ {
		mapped[i] = false
	}
	return ButtonMapping{
		Pressed:     mapped,
		ActiveCount: h.maxKeys,
	}
}

func (h *module1532Handler) InputReportSize(buttonCount int) int {
	return 512
}

// FormatButtonReport writes [0x01, 0x00, length_le16, state...]: report id,
// key-state-change command, state count, then one byte per key slot.
func (h *module1532Handler) FormatButtonReport(m *ButtonMapping, report []byte) int {
	n := m.ActiveCount
	if len(report) < 4+n {
		return 0
	}
	report[0] = 0x01
	report[1] = 0x00
	report[2] = uint8(n)
	report[3] = 0x00
	for i := 0; i < n; i++ {
		report[4+i] = boolByte(m.Pressed[i])
	}
	clear(report[4+n:])
	return 4 + n
}

// HandleFeatureReport decodes the Module command report: [0x03, command,
// args...].
func (h *module1532Handler) HandleFeatureReport(reportID uint8, data []byte) (SetCommand, bool) {
	if reportID != featureReportCommand || len(data) < 2 {
		return nil, false
	}
	switch data[1] {
	case moduleCommandBrightness:
		// [0x03, 0x08, value]
		if len(data) >= 3 {
			return SetBrightness{Value: data[2]}, true
		}
	case moduleCommandKeyColor:
		// [0x03, 0x06, key, r, g, b]
		if len(data) >= 6 {
			return SetKeyColor{Key: data[2], R: data[3], G: data[4], B: data[5]}, true
		}
	case moduleCommandBackground:
		// [0x03, 0x07, index]
		if len(data) >= 3 {
			return ShowBackgroundByIndex{Index: data[2]}, true
		}
	}
	return nil, false
}

func (h *module1532Handler) GetFeatureReport(reportID uint8, buf []byte) (int, bool) {
	switch reportID {
	case 0x04, 0x05, 0x07:
		// Firmware version: [report_id, 0x0C, checksum x4 (zero), ascii...],
		// ASCII at offset 6. All three firmware slots report the same build.
		n := featureEnvelopeSize
		if len(buf) < n {
			n = len(buf)
		}
		clear(buf[:n])
		if n == 0 {
			return 0, true
		}
		buf[0] = reportID
		if n > 1 {
			buf[1] = 0x0c
		}
		copyASCII(buf[:n], 6, module1532Firmware)
		return n, true
	case 0x06:
		// Serial: [0x06, length, ascii...], ASCII at offset 2.
		n := featureEnvelopeSize
		if len(buf) < n {
			n = len(buf)
		}
		clear(buf[:n])
		if n == 0 {
			return 0, true
		}
		buf[0] = reportID
		serial := module1532Serial
		if len(serial) > 14 {
			serial = serial[:14]
		}
		if n > 1 {
			buf[1] = uint8(len(serial))
		}
		copyASCII(buf[:n], 2, serial)
		return n, true
	case 0x0a:
		// Idle time: [0x0A, 0x04, seconds_le32].
		n := featureEnvelopeSize
		if len(buf) < n {
			n = len(buf)
		}
		clear(buf[:n])
		if n == 0 {
			return 0, true
		}
		buf[0] = reportID
		if n > 1 {
			buf[1] = 0x04
		}
		putInt32LE(buf[:n], 2, h.idleSeconds)
		return n, true
	}
	return 0, false
}
