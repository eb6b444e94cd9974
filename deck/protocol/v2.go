package protocol

import "github.com/deckforge/deckforge/deck"

// v2Handler speaks the JPEG-based protocol of the Original V2, XL, MK2, and
// Plus. Uploads are sequenced: the header carries an explicit little-endian
// sequence number that must increase by exactly one per packet, and an
// is_last flag marks completion.
type v2Handler struct {
	buf              []byte
	capacity         int
	receiving        bool
	expectedKey      uint8
	expectedSequence uint16
	idleSeconds      int32
}

func newV2Handler(capacity int) *v2Handler {
	return &v2Handler{buf: make([]byte, 0, capacity), capacity: capacity}
}

func (h *v2Handler) Version() deck.Protocol { return deck.ProtocolV2 }

func (h *v2Handler) Reset() {
	h.buf = h.buf[:0]
	h.receiving = false
	h.expectedKey = 0
	h.expectedSequence = 0
}

// ParseOutputReport handles the sequenced V2 image upload:
//
//	[0x02, 0x07, key_id, is_last, len_lo, len_hi, seq_lo, seq_hi, payload...]
//
// The stripped-report-id form starting at the 0x07 command byte is accepted
// too. Sequence 0 always restarts reception; any key mismatch or sequence gap
// drops the packet and fully resets, relying on the host to restart the
// upload from sequence 0.
func (h *v2Handler) ParseOutputReport(data []byte) OutputResult {
	if len(data) < 8 {
		return unhandled
	}

	var keyID uint8
	var isLast bool
	var payloadLen, sequence uint16
	var payloadStart int
	switch {
	case data[0] == outputReportImage && data[1] == imageCommandV2:
		keyID = data[2]
		isLast = data[3] != 0
		payloadLen = uint16(data[4]) | uint16(data[5])<<8
		sequence = uint16(data[6]) | uint16(data[7])<<8
		payloadStart = 8
	case data[0] == imageCommandV2 && len(data) >= 7:
		keyID = data[1]
		isLast = data[2] != 0
		payloadLen = uint16(data[3]) | uint16(data[4])<<8
		sequence = uint16(data[5]) | uint16(data[6])<<8
		payloadStart = 7
	default:
		return unhandled
	}

	if sequence == 0 {
		h.Reset()
		h.receiving = true
		h.expectedKey = keyID
	}

	if !h.receiving || keyID != h.expectedKey || sequence != h.expectedSequence {
		h.Reset()
		return unhandled
	}

	copyLen := int(payloadLen)
	if max := len(data) - payloadStart; copyLen > max {
		copyLen = max
	}
	if len(h.buf)+copyLen > h.capacity {
		h.Reset()
		return unhandled
	}
	h.buf = append(h.buf, data[payloadStart:payloadStart+copyLen]...)
	h.expectedSequence++

	if !isLast {
		return inProgress
	}
	image := make([]byte, len(h.buf))
	copy(image, h.buf)
	key := h.expectedKey
	h.Reset()
	return OutputResult{Kind: OutputKeyImage, Key: key, Image: image}
}

func (h *v2Handler) MapButtons(physical []bool, cols, rows int, leftToRight bool) ButtonMapping {
	return ButtonMapping{
		Pressed:     mapButtons(physical, cols, rows, leftToRight),
		ActiveCount: cols * rows,
	}
}

func (h *v2Handler) InputReportSize(buttonCount int) int {
	return 3 + buttonCount // 3-byte header + one state byte per key
}

// FormatButtonReport writes [0x00, 0x00, 0x00, state...] and zero-fills the
// remainder.
func (h *v2Handler) FormatButtonReport(m *ButtonMapping, report []byte) int {
	if len(report) < 4 {
		return 0
	}
	report[0] = 0x00
	report[1] = 0x00
	report[2] = 0x00
	n := m.ActiveCount
	if n > len(report)-3 {
		n = len(report) - 3
	}
	for i := 0; i < n; i++ {
		report[3+i] = boolByte(m.Pressed[i])
	}
	clear(report[3+n:])
	return 3 + n
}

// HandleFeatureReport decodes the V2 command report: [0x03, command, args...].
func (h *v2Handler) HandleFeatureReport(reportID uint8, data []byte) (SetCommand, bool) {
	if reportID != featureReportCommand || len(data) < 2 {
		return nil, false
	}
	switch data[1] {
	case v2CommandReset:
		return Reset{}, true
	case v2CommandBrightness:
		if len(data) >= 3 {
			return SetBrightness{Value: data[2]}, true
		}
	}
	return nil, false
}

func (h *v2Handler) GetFeatureReport(reportID uint8, buf []byte) (int, bool) {
	switch reportID {
	case 0xa0, 0xa1, 0xa2:
		return writeVersionEnvelope(buf, reportID, v1FirmwareVersion), true
	case 0x03:
		return writeVersionEnvelope(buf, reportID, v1SerialNumber), true
	case featureReportGetIdleTime:
		return writeIdleTimeEnvelope(buf, reportID, h.idleSeconds), true
	}
	return 0, false
}
