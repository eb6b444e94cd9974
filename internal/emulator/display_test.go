package emulator_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/deck"
	"github.com/deckforge/deckforge/internal/emulator"
)

func newDisplay(t *testing.T, model string) (*emulator.Display, deck.Device) {
	t.Helper()
	dev, err := deck.ByName(model)
	require.NoError(t, err)
	return emulator.NewDisplay(dev), dev
}

func TestDisplayPowerOnState(t *testing.T) {
	d, dev := newDisplay(t, "mini")

	assert.Equal(t, uint8(100), d.Brightness())
	assert.Equal(t, int32(0), d.IdleTime())
	assert.Equal(t, -1, d.Background())
	assert.False(t, d.LogoShown())

	blank := make([]byte, dev.Display.ImageWidth*dev.Display.ImageHeight*2)
	for key := 0; key < dev.Layout.TotalKeys(); key++ {
		require.Equal(t, blank, d.KeyTile(uint8(key)), "key %d", key)
	}
	assert.Nil(t, d.KeyTile(uint8(dev.Layout.TotalKeys())))
}

func TestDisplayFillKeyPacksRGB565(t *testing.T) {
	d, dev := newDisplay(t, "mini")

	// 0xF8/0xFC/0xF8 saturate all three channels.
	require.NoError(t, d.FillKey(2, 0xF8, 0xFC, 0xF8))
	tile := d.KeyTile(2)
	assert.Equal(t, bytes.Repeat([]byte{0xFF, 0xFF}, dev.Display.ImageWidth*dev.Display.ImageHeight), tile)

	// Pure red: r5 in the top five bits, big-endian.
	require.NoError(t, d.FillKey(2, 0xFF, 0x00, 0x00))
	tile = d.KeyTile(2)
	assert.Equal(t, []byte{0xF8, 0x00}, tile[:2])

	assert.Error(t, d.FillKey(uint8(dev.Layout.TotalKeys()), 1, 2, 3))
}

func TestDisplaySetKeyImageTruncatesAndPads(t *testing.T) {
	d, dev := newDisplay(t, "mini")
	size := dev.Display.ImageWidth * dev.Display.ImageHeight * 2

	short := bytes.Repeat([]byte{0xAB}, 10)
	require.NoError(t, d.SetKeyImage(0, short))
	tile := d.KeyTile(0)
	assert.Equal(t, short, tile[:10])
	assert.Equal(t, make([]byte, size-10), tile[10:])

	long := bytes.Repeat([]byte{0xCD}, size+100)
	require.NoError(t, d.SetKeyImage(0, long))
	assert.Equal(t, long[:size], d.KeyTile(0))

	assert.Error(t, d.SetKeyImage(uint8(dev.Layout.TotalKeys()), short))
}

func TestDisplayClearRestoresPowerOnState(t *testing.T) {
	d, dev := newDisplay(t, "module-6")

	require.NoError(t, d.FillKey(5, 1, 2, 3))
	d.ShowBackground(3)
	d.Clear()

	assert.Equal(t, -1, d.Background())
	blank := make([]byte, dev.Display.ImageWidth*dev.Display.ImageHeight*2)
	assert.Equal(t, blank, d.KeyTile(5))
}

func TestDisplayLogoAndBackgroundAreExclusive(t *testing.T) {
	d, _ := newDisplay(t, "module-6")

	d.ShowLogo()
	assert.True(t, d.LogoShown())

	d.ShowBackground(2)
	assert.False(t, d.LogoShown())
	assert.Equal(t, 2, d.Background())

	require.NoError(t, d.FillKey(0, 9, 9, 9))
	assert.False(t, d.LogoShown())
}

func TestDisplayBrightnessClamped(t *testing.T) {
	d, _ := newDisplay(t, "mini")

	d.SetBrightness(250)
	assert.Equal(t, uint8(100), d.Brightness())
	d.SetBrightness(0)
	assert.Equal(t, uint8(0), d.Brightness())
}
