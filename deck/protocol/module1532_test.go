package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/deck"
	"github.com/deckforge/deckforge/deck/protocol"
)

func TestModule1532ImageUploadIsStubbed(t *testing.T) {
	h := newHandler(t, "module-15")

	// Image upload framing for these models has not been captured; every
	// Output report must come back unhandled, never a phantom image.
	reports := [][]byte{
		module6Packet(0, 0, 100, pattern(0xAA, 100)),
		append([]byte{0x02, 0x07, 0x00}, pattern(0xBB, 1021)...),
		append([]byte{0x02, 0x08}, pattern(0xCC, 1022)...),
		append([]byte{0x02, 0x09}, pattern(0xDD, 1022)...),
		{},
	}
	for _, r := range reports {
		res := h.ParseOutputReport(r)
		assert.Equal(t, protocol.OutputUnhandled, res.Kind)
	}
}

func TestModule1532FeatureSetCommands(t *testing.T) {
	type testCase struct {
		name     string
		reportID uint8
		data     []byte
		want     protocol.SetCommand
		ok       bool
	}

	cases := []testCase{
		{
			name:     "brightness",
			reportID: 0x03,
			data:     []byte{0x03, 0x08, 0x64},
			want:     protocol.SetBrightness{Value: 100},
			ok:       true,
		},
		{
			name:     "key color",
			reportID: 0x03,
			data:     []byte{0x03, 0x06, 0x04, 0xFF, 0x80, 0x00},
			want:     protocol.SetKeyColor{Key: 4, R: 0xFF, G: 0x80, B: 0x00},
			ok:       true,
		},
		{
			name:     "background by index",
			reportID: 0x03,
			data:     []byte{0x03, 0x07, 0x02},
			want:     protocol.ShowBackgroundByIndex{Index: 2},
			ok:       true,
		},
		{
			name:     "v1 magic not accepted",
			reportID: 0x05,
			data:     []byte{0x05, 0x55, 0xAA, 0xD1, 0x01, 0x64},
			ok:       false,
		},
		{
			name:     "truncated key color",
			reportID: 0x03,
			data:     []byte{0x03, 0x06, 0x04},
			ok:       false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHandler(t, "module-32")
			cmd, ok := h.HandleFeatureReport(tc.reportID, tc.data)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, cmd)
			}
		})
	}
}

func TestModule1532FeatureGetEnvelopes(t *testing.T) {
	h := newHandler(t, "module-15")
	buf := make([]byte, 32)

	// Firmware version: length tag at 1, ASCII at offset 6.
	n, ok := h.GetFeatureReport(0x04, buf)
	require.True(t, ok)
	assert.Equal(t, 32, n)
	assert.Equal(t, []byte{0x04, 0x0C, 0x00, 0x00, 0x00, 0x00}, buf[:6])
	assert.Equal(t, []byte("1.00.000"), buf[6:14])

	// Serial: length at 1, ASCII at offset 2.
	n, ok = h.GetFeatureReport(0x06, buf)
	require.True(t, ok)
	assert.Equal(t, 32, n)
	assert.Equal(t, byte(14), buf[1])
	assert.Equal(t, []byte("A1B2C3D4E5F6G7"), buf[2:16])

	// Idle time: LE32 seconds at offset 2.
	n, ok = h.GetFeatureReport(0x0A, buf)
	require.True(t, ok)
	assert.Equal(t, 32, n)
	assert.Equal(t, []byte{0x0A, 0x04, 0x00, 0x00, 0x00, 0x00}, buf[:6])

	_, ok = h.GetFeatureReport(0xA0, buf)
	assert.False(t, ok, "module 6 report ids are not part of this surface")
}

func TestModule1532ButtonReport(t *testing.T) {
	dev, err := deck.ByName("module-15")
	require.NoError(t, err)
	h, err := protocol.New(dev)
	require.NoError(t, err)

	physical := make([]bool, 15)
	physical[0] = true
	physical[14] = true
	m := h.MapButtons(physical, 5, 3, true)
	assert.Equal(t, 15, m.ActiveCount, "active count is the model maximum")

	report := make([]byte, dev.InputReportSize())
	n := h.FormatButtonReport(&m, report)
	assert.Equal(t, 19, n)
	assert.Equal(t, []byte{0x01, 0x00, 0x0F, 0x00, 0x01}, report[:5])
	assert.Equal(t, byte(0x01), report[18])
	assert.Equal(t, pattern(0x00, 13), report[5:18])
}

func TestModule32ButtonReport(t *testing.T) {
	dev, err := deck.ByName("module-32")
	require.NoError(t, err)
	h, err := protocol.New(dev)
	require.NoError(t, err)

	physical := make([]bool, 32)
	physical[31] = true
	m := h.MapButtons(physical, 8, 4, true)
	assert.Equal(t, 32, m.ActiveCount)

	report := make([]byte, dev.InputReportSize())
	n := h.FormatButtonReport(&m, report)
	assert.Equal(t, 36, n)
	assert.Equal(t, []byte{0x01, 0x00, 0x20, 0x00}, report[:4])
	assert.Equal(t, byte(0x01), report[35])
}
