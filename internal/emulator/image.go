package emulator

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/deckforge/deckforge/deck"
	"github.com/deckforge/deckforge/deck/pixel"
)

const bmpHeaderSize = 54

// decodeKeyImage turns a completed raw upload into orientation-corrected
// RGB565 pixels for one key tile.
//
// BMP-family uploads carry the standard 54-byte header, which hosts sometimes
// omit; when the BM signature is present the header is stripped and the rest
// is treated as packed RGB rows. JPEG-family uploads go through a real
// decode.
func decodeKeyImage(dev deck.Device, raw []byte) ([]byte, error) {
	w, h := dev.Display.ImageWidth, dev.Display.ImageHeight

	var rgb []byte
	switch dev.Display.Format {
	case deck.FormatBMP:
		if len(raw) >= bmpHeaderSize && raw[0] == 'B' && raw[1] == 'M' {
			raw = raw[bmpHeaderSize:]
		}
		rgb = raw
	case deck.FormatJPEG:
		img, err := jpeg.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("decode key image: %w", err)
		}
		rgb = flattenRGB(img, w, h)
	default:
		return nil, fmt.Errorf("unknown image format %v", dev.Display.Format)
	}

	oriented := pixel.Apply(rgb, w, h,
		dev.Display.NeedsRotation, dev.Display.FlipHorizontal, dev.Display.FlipVertical)
	return pixel.RGB888ToRGB565(oriented), nil
}

// flattenRGB reads up to w*h pixels out of a decoded image into packed RGB888
// rows. Decoded images smaller than the tile leave the remainder black.
func flattenRGB(img image.Image, w, h int) []byte {
	out := make([]byte, w*h*3)
	bounds := img.Bounds()
	for y := 0; y < h && y < bounds.Dy(); y++ {
		for x := 0; x < w && x < bounds.Dx(); x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := (y*w + x) * 3
			out[i] = uint8(r >> 8)
			out[i+1] = uint8(g >> 8)
			out[i+2] = uint8(b >> 8)
		}
	}
	return out
}
