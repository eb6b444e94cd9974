package deck_test

import (
	"testing"

	"github.com/deckforge/deckforge/deck"

	"github.com/stretchr/testify/assert"
)

func TestByPID(t *testing.T) {
	cases := []struct {
		pid      uint16
		name     string
		protocol deck.Protocol
	}{
		{0x0063, "mini", deck.ProtocolV1},
		{0x0080, "revised-mini", deck.ProtocolV1},
		{0x0060, "original", deck.ProtocolV1},
		{0x006d, "original-v2", deck.ProtocolV2},
		{0x006c, "xl", deck.ProtocolV2},
		{0x0084, "plus", deck.ProtocolV2},
		{0x00b8, "module-6", deck.ProtocolModule6},
		{0x00b9, "module-15", deck.ProtocolModule1532},
		{0x00ba, "module-32", deck.ProtocolModule1532},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := deck.ByPID(tc.pid)
			assert.NoError(t, err)
			assert.Equal(t, tc.name, d.Name)
			assert.Equal(t, tc.protocol, d.Protocol)

			byName, err := deck.ByName(tc.name)
			assert.NoError(t, err)
			assert.Equal(t, d, byName)
		})
	}
}

func TestUnknownDevice(t *testing.T) {
	_, err := deck.ByPID(0xffff)
	assert.ErrorIs(t, err, deck.ErrUnsupportedDevice)

	_, err = deck.ByName("megadeck")
	assert.ErrorIs(t, err, deck.ErrUnsupportedDevice)
}

func TestLayoutInvariants(t *testing.T) {
	for _, d := range deck.Models() {
		assert.Equal(t, d.Layout.Cols*d.Layout.Rows, d.Layout.TotalKeys(), d.Name)
		assert.LessOrEqual(t, d.Layout.TotalKeys(), deck.MaxKeys, d.Name)
	}
}

func TestDerivedSizes(t *testing.T) {
	mini, _ := deck.ByName("mini")
	assert.Equal(t, 7, mini.InputReportSize()) // report id + 6 keys
	assert.Equal(t, 32, mini.FeatureReportSize())
	assert.Equal(t, 1024, mini.OutputReportSize())
	assert.Equal(t, 54+80*80*3, mini.MaxImageSize())

	xl, _ := deck.ByName("xl")
	assert.Equal(t, 3+32, xl.InputReportSize())
	assert.Equal(t, 96*96/2, xl.MaxImageSize())

	mod6, _ := deck.ByName("module-6")
	assert.Equal(t, 65, mod6.InputReportSize())

	mod32, _ := deck.ByName("module-32")
	assert.Equal(t, 512, mod32.InputReportSize())
}
