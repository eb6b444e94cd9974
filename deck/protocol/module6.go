package protocol

import "github.com/deckforge/deckforge/deck"

const (
	// Module chunk geometry: 1024-byte Output reports carry a 10-byte header
	// and up to 1014 payload bytes.
	moduleChunkHeaderSize  = 10
	moduleChunkPayloadSize = 1014
)

// module6Handler speaks the 6-key Module protocol. Image uploads arrive as
// fixed-geometry chunks with a 1-byte chunk index; the first chunk declares
// the total image length, from which the expected chunk count is derived.
type module6Handler struct {
	buf           []byte
	capacity      int
	receiving     bool
	expectedKey   uint8
	expectedChunk uint8
	totalChunks   int
	idleSeconds   int32
}

func newModule6Handler(capacity int) *module6Handler {
	return &module6Handler{buf: make([]byte, 0, capacity), capacity: capacity}
}

func (h *module6Handler) Version() deck.Protocol { return deck.ProtocolModule6 }

func (h *module6Handler) Reset() {
	h.buf = h.buf[:0]
	h.receiving = false
	h.expectedKey = 0
	h.expectedChunk = 0
	h.totalChunks = 0
}

// ParseOutputReport handles the chunked Module image upload:
//
//	[0x02, 0x01, key_id, chunk_index, len_lo, len_hi, total_lo, total_hi, 0x00, 0x00, payload...]
//
// Chunk 0 always restarts reception and fixes the expected chunk count from
// the declared total length. The upload completes on the last expected chunk
// or on any payload shorter than the fixed 1014-byte segment size. Unlike V1,
// any violation fully resets.
func (h *module6Handler) ParseOutputReport(data []byte) OutputResult {
	if len(data) < moduleChunkHeaderSize || data[0] != outputReportImage || data[1] != imageCommandModule {
		return unhandled
	}

	keyID := data[2]
	chunkIdx := data[3]
	payloadLen := int(data[4]) | int(data[5])<<8
	totalLen := int(data[6]) | int(data[7])<<8

	if chunkIdx == 0 {
		h.Reset()
		h.receiving = true
		h.expectedKey = keyID
		h.totalChunks = (totalLen + moduleChunkPayloadSize - 1) / moduleChunkPayloadSize
		if h.totalChunks < 1 {
			h.totalChunks = 1
		}
	}

	if !h.receiving || keyID != h.expectedKey || chunkIdx != h.expectedChunk {
		h.Reset()
		return unhandled
	}

	copyLen := payloadLen
	if max := len(data) - moduleChunkHeaderSize; copyLen > max {
		copyLen = max
	}
	if copyLen > moduleChunkPayloadSize {
		copyLen = moduleChunkPayloadSize
	}
	if len(h.buf)+copyLen > h.capacity {
		h.Reset()
		return unhandled
	}
	h.buf = append(h.buf, data[moduleChunkHeaderSize:moduleChunkHeaderSize+copyLen]...)
	h.expectedChunk++

	if int(chunkIdx) < h.totalChunks-1 && copyLen == moduleChunkPayloadSize {
		return inProgress
	}
	image := make([]byte, len(h.buf))
	copy(image, h.buf)
	key := h.expectedKey
	h.Reset()
	return OutputResult{Kind: OutputKeyImage, Key: key, Image: image}
}

// MapButtons reports the number of pressed keys as the active count, not the
// key total. The Module Input framing carries all 32 state slots regardless.
func (h *module6Handler) MapButtons(physical []bool, cols, rows int, leftToRight bool) ButtonMapping {
	mapped := mapButtons(physical, cols, rows, leftToRight)
	return ButtonMapping{
		Pressed:     mapped,
		ActiveCount: countPressed(mapped),
	}
}

func (h *module6Handler) InputReportSize(buttonCount int) int {
	return 65 // report id + 32 states, padded to the endpoint size
}

// FormatButtonReport writes [0x01, all 32 states] and zero-pads the rest of
// the report.
func (h *module6Handler) FormatButtonReport(m *ButtonMapping, report []byte) int {
	if len(report) < 1+deck.MaxKeys {
		return 0
	}
	report[0] = 0x01
	for i := 0; i < deck.MaxKeys; i++ {
		report[1+i] = boolByte(m.Pressed[i])
	}
	clear(report[1+deck.MaxKeys:])
	n := len(report)
	if n > 65 {
		n = 65
	}
	return n
}

func (h *module6Handler) HandleFeatureReport(reportID uint8, data []byte) (SetCommand, bool) {
	switch reportID {
	case featureReportBrightness:
		// [0x05, 0x55, 0xAA, 0xD1, 0x01, value, ...]
		if len(data) >= 6 && data[1] == magic1 && data[2] == magic2 && data[3] == magic3 && data[4] == 0x01 {
			return SetBrightness{Value: data[5]}, true
		}
	case featureReportReset:
		if len(data) < 2 {
			return nil, false
		}
		switch data[1] {
		case resetMagic:
			// [0x0B, 0x63, sub]: 0x00 shows the stored logo, 0x02 writes one
			// boot logo slice.
			if len(data) < 3 {
				return nil, false
			}
			switch data[2] {
			case 0x00:
				return ShowLogo{}, true
			case 0x02:
				var slice uint8
				if len(data) >= 4 {
					slice = data[3]
				}
				return UpdateBootLogo{Slice: slice}, true
			}
		case idleTimeCommand:
			// [0x0B, 0xA2, seconds_le32]
			if len(data) >= 6 {
				secs := int32LE(data[2:6])
				h.idleSeconds = secs
				return SetIdleTime{Seconds: secs}, true
			}
		}
	}
	return nil, false
}

func (h *module6Handler) GetFeatureReport(reportID uint8, buf []byte) (int, bool) {
	switch reportID {
	case 0xa0:
		return writeModuleEnvelope(buf, reportID, module6FirmwareLD), true
	case 0xa1, 0xa2:
		return writeModuleEnvelope(buf, reportID, module6FirmwareAP), true
	case 0x03:
		return writeModuleEnvelope(buf, reportID, module6Serial), true
	case featureReportGetIdleTime:
		return writeIdleTimeEnvelope(buf, reportID, h.idleSeconds), true
	}
	return 0, false
}

// writeModuleEnvelope fills the Module Feature GET envelope: [report_id,
// 0x00 x4, ascii...], ASCII at offset 5 with no length or type tag.
func writeModuleEnvelope(buf []byte, reportID uint8, ascii []byte) int {
	n := featureEnvelopeSize
	if len(buf) < n {
		n = len(buf)
	}
	clear(buf[:n])
	if n == 0 {
		return 0
	}
	buf[0] = reportID
	copyASCII(buf[:n], 5, ascii)
	return n
}
