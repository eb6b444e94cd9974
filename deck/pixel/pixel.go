// Package pixel contains the stateless pixel-buffer operations the protocol
// and display layers share: orientation fixups on flat RGB888 buffers and the
// RGB565 packing the panel expects.
//
// All operations tolerate truncated input: a pixel whose computed source index
// falls outside the buffer is skipped rather than reported. Host software
// occasionally sends short final rows and the real hardware displays what it
// got, so the transforms do the same.
package pixel

// Rotate270 rotates a width x height RGB888 image 270 degrees clockwise.
// Output addressing is height x width; callers use it on square key images.
func Rotate270(data []byte, width, height int) []byte {
	out := make([]byte, 0, len(data))
	// new[y][x] = old[width-1-x][y]
	for newY := 0; newY < width; newY++ {
		for newX := 0; newX < height; newX++ {
			oldX := width - 1 - newY
			oldY := newX
			idx := (oldY*width + oldX) * 3
			if idx+2 < len(data) {
				out = append(out, data[idx], data[idx+1], data[idx+2])
			}
		}
	}
	return out
}

// FlipHorizontal mirrors a width x height RGB888 image along the vertical axis.
func FlipHorizontal(data []byte, width, height int) []byte {
	out := make([]byte, 0, len(data))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := (y*width + (width - 1 - x)) * 3
			if idx+2 < len(data) {
				out = append(out, data[idx], data[idx+1], data[idx+2])
			}
		}
	}
	return out
}

// FlipVertical mirrors a width x height RGB888 image along the horizontal axis.
func FlipVertical(data []byte, width, height int) []byte {
	out := make([]byte, 0, len(data))
	for y := 0; y < height; y++ {
		srcY := height - 1 - y
		for x := 0; x < width; x++ {
			idx := (srcY*width + x) * 3
			if idx+2 < len(data) {
				out = append(out, data[idx], data[idx+1], data[idx+2])
			}
		}
	}
	return out
}

// RGB888ToRGB565 packs RGB888 triples into 16-bit 5-6-5 values, emitted
// big-endian. The panel controller consumes high byte first; the byte order
// must not change.
func RGB888ToRGB565(data []byte) []byte {
	out := make([]byte, 0, len(data)/3*2)
	for i := 0; i+2 < len(data); i += 3 {
		r5 := uint16(data[i]) >> 3
		g6 := uint16(data[i+1]) >> 2
		b5 := uint16(data[i+2]) >> 3
		v := r5<<11 | g6<<5 | b5
		out = append(out, byte(v>>8), byte(v))
	}
	return out
}

// Apply runs the per-model orientation fixups in fixed order: rotate, then
// horizontal flip, then vertical flip. The order matters because rotation
// swaps the axes the flips operate on.
func Apply(data []byte, width, height int, rotate, flipH, flipV bool) []byte {
	out := data
	if rotate {
		out = Rotate270(out, width, height)
		width, height = height, width
	}
	if flipH {
		out = FlipHorizontal(out, width, height)
	}
	if flipV {
		out = FlipVertical(out, width, height)
	}
	return out
}
