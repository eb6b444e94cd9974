package emulator

import (
	"fmt"
	"sync"

	"github.com/deckforge/deckforge/deck"
)

// Display is the in-memory stand-in for the key panel: one RGB565 framebuffer
// per key tile plus the panel-wide settings the protocol can set. It is the
// sole consumer of decoded commands and images, so the emulator core never
// touches pixels directly.
type Display struct {
	dev deck.Device

	mu          sync.Mutex
	tiles       [][]byte // per-key RGB565, W*H*2 bytes each
	brightness  uint8
	idleSeconds int32
	background  int // -1 when no stored background is selected
	logoShown   bool
}

// NewDisplay builds a blank panel for the given model.
func NewDisplay(dev deck.Device) *Display {
	tiles := make([][]byte, dev.Layout.TotalKeys())
	size := dev.Display.ImageWidth * dev.Display.ImageHeight * 2
	for i := range tiles {
		tiles[i] = make([]byte, size)
	}
	return &Display{dev: dev, tiles: tiles, brightness: 100, background: -1}
}

// SetKeyImage replaces one key tile with already-transformed RGB565 pixels.
// Oversized pixel data is truncated to the tile, undersized data fills from
// the top; both happen with real uploads that round row lengths.
func (d *Display) SetKeyImage(key uint8, pixels []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(key) >= len(d.tiles) {
		return fmt.Errorf("key %d out of range (panel has %d)", key, len(d.tiles))
	}
	tile := d.tiles[key]
	clear(tile)
	copy(tile, pixels)
	d.logoShown = false
	return nil
}

// FillKey paints one key tile a solid color.
func (d *Display) FillKey(key uint8, r, g, b uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(key) >= len(d.tiles) {
		return fmt.Errorf("key %d out of range (panel has %d)", key, len(d.tiles))
	}
	hi := r&0xf8 | g>>5
	lo := g<<3&0xe0 | b>>3
	tile := d.tiles[key]
	for i := 0; i+1 < len(tile); i += 2 {
		tile[i] = hi
		tile[i+1] = lo
	}
	d.logoShown = false
	return nil
}

// Clear blanks every tile and deselects any stored background, the panel's
// power-on state.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, tile := range d.tiles {
		clear(tile)
	}
	d.background = -1
	d.logoShown = false
}

// ShowLogo switches the panel to its built-in logo.
func (d *Display) ShowLogo() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, tile := range d.tiles {
		clear(tile)
	}
	d.logoShown = true
}

// ShowBackground selects a stored background image by index.
func (d *Display) ShowBackground(index uint8) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.background = int(index)
	d.logoShown = false
}

// SetBrightness sets the backlight in percent, clamped to 100.
func (d *Display) SetBrightness(value uint8) {
	if value > 100 {
		value = 100
	}
	d.mu.Lock()
	d.brightness = value
	d.mu.Unlock()
}

// SetIdleTime records the idle timeout in seconds; 0 disables it.
func (d *Display) SetIdleTime(seconds int32) {
	d.mu.Lock()
	d.idleSeconds = seconds
	d.mu.Unlock()
}

// Brightness returns the current backlight percentage.
func (d *Display) Brightness() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.brightness
}

// IdleTime returns the configured idle timeout in seconds.
func (d *Display) IdleTime() int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.idleSeconds
}

// Background returns the selected stored-background index, or -1.
func (d *Display) Background() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.background
}

// LogoShown reports whether the panel is on its built-in logo.
func (d *Display) LogoShown() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.logoShown
}

// KeyTile returns a copy of one tile's RGB565 pixels.
func (d *Display) KeyTile(key uint8) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if int(key) >= len(d.tiles) {
		return nil
	}
	out := make([]byte, len(d.tiles[key]))
	copy(out, d.tiles[key])
	return out
}
