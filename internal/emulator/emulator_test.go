package emulator_test

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/deck"
	"github.com/deckforge/deckforge/deck/pixel"
	"github.com/deckforge/deckforge/internal/emulator"
	"github.com/deckforge/deckforge/usbip"
)

func newEmulator(t *testing.T, model string) *emulator.Emulator {
	t.Helper()
	dev, err := deck.ByName(model)
	require.NoError(t, err)
	e, err := emulator.New(dev, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return e
}

// runEmulator starts the display drain loop and stops it when the test ends.
func runEmulator(t *testing.T, e *emulator.Emulator) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = e.Run(ctx) }()
}

func v1Packet(packetNum, key uint8, payload []byte) []byte {
	pkt := make([]byte, 8+len(payload))
	pkt[0] = 0x02
	pkt[1] = 0x01
	pkt[2] = packetNum
	pkt[5] = key
	copy(pkt[8:], payload)
	return pkt
}

func v2Packet(key, isLast uint8, seq uint16, payload []byte) []byte {
	pkt := make([]byte, 8+len(payload))
	pkt[0] = 0x02
	pkt[1] = 0x07
	pkt[2] = key
	pkt[3] = isLast
	pkt[4] = uint8(len(payload))
	pkt[5] = uint8(len(payload) >> 8)
	pkt[6] = uint8(seq)
	pkt[7] = uint8(seq >> 8)
	copy(pkt[8:], payload)
	return pkt
}

func TestKeyImageUploadRendersTile(t *testing.T) {
	e := newEmulator(t, "mini")
	runEmulator(t, e)
	dev := e.Device()

	// A headered upload: 54-byte header with the BM signature, then a
	// gradient so the rotation is visible in the output.
	rgb := make([]byte, dev.Display.ImageWidth*dev.Display.ImageHeight*3)
	for i := range rgb {
		rgb[i] = byte(i * 7)
	}
	raw := make([]byte, 54+len(rgb))
	raw[0], raw[1] = 'B', 'M'
	copy(raw[54:], rgb)

	half := len(raw) / 2
	require.Nil(t, e.HandleTransfer(2, usbip.DirOut, v1Packet(1, 3, raw[:half])))
	require.Nil(t, e.HandleTransfer(2, usbip.DirOut, v1Packet(2, 3, raw[half:])))

	want := pixel.RGB888ToRGB565(pixel.Apply(rgb,
		dev.Display.ImageWidth, dev.Display.ImageHeight, true, false, false))
	require.Eventually(t, func() bool {
		return bytes.Equal(e.Display().KeyTile(3), want)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestJPEGUploadRendersTile(t *testing.T) {
	e := newEmulator(t, "xl")
	runEmulator(t, e)
	dev := e.Device()

	img := image.NewRGBA(image.Rect(0, 0, dev.Display.ImageWidth, dev.Display.ImageHeight))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	raw := buf.Bytes()

	half := len(raw) / 2
	require.Nil(t, e.HandleTransfer(2, usbip.DirOut, v2Packet(7, 0, 0, raw[:half])))
	require.Nil(t, e.HandleTransfer(2, usbip.DirOut, v2Packet(7, 1, 1, raw[half:])))

	// Solid white survives the lossy round trip exactly: every RGB565 word
	// is 0xFFFF.
	want := bytes.Repeat([]byte{0xFF, 0xFF}, dev.Display.ImageWidth*dev.Display.ImageHeight)
	require.Eventually(t, func() bool {
		return bytes.Equal(e.Display().KeyTile(7), want)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBrightnessViaControlSetReport(t *testing.T) {
	e := newEmulator(t, "mini")
	runEmulator(t, e)

	data := []byte{0x05, 0x55, 0xAA, 0xD1, 0x01, 42}
	resp, handled := e.HandleControl(0x21, 0x09, 0x0300|0x05, 0, uint16(len(data)), data)
	require.True(t, handled)
	assert.Nil(t, resp)

	require.Eventually(t, func() bool {
		return e.Display().Brightness() == 42
	}, 2*time.Second, 10*time.Millisecond)
}

func TestResetCommandClearsDisplayAndUpload(t *testing.T) {
	e := newEmulator(t, "mini")
	runEmulator(t, e)

	require.NoError(t, e.Display().FillKey(0, 0xFF, 0x00, 0x00))

	// A half-finished upload must not survive the reset either: the next
	// packet 2 alone is a violation and V1 ignores it.
	e.HandleTransfer(2, usbip.DirOut, v1Packet(1, 0, []byte{1, 2, 3}))

	data := []byte{0x0B, 0x63}
	_, handled := e.HandleControl(0x21, 0x09, 0x0300|0x0B, 0, uint16(len(data)), data)
	require.True(t, handled)

	blank := make([]byte, len(e.Display().KeyTile(0)))
	require.Eventually(t, func() bool {
		return bytes.Equal(e.Display().KeyTile(0), blank)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFeatureGetViaControl(t *testing.T) {
	e := newEmulator(t, "mini")

	resp, handled := e.HandleControl(0xA1, 0x01, 0x0300|0xA0, 0, 32, nil)
	require.True(t, handled)
	require.Len(t, resp, 32)
	assert.Equal(t, []byte{0xA0, 0x0C, 0x31, 0x33, 0x00}, resp[:5])
	assert.Equal(t, []byte("3.00.000"), resp[5:13])
}

func TestUnknownControlRequestNotHandled(t *testing.T) {
	e := newEmulator(t, "mini")

	_, handled := e.HandleControl(0x80, 0x06, 0x0100, 0, 18, nil)
	assert.False(t, handled, "standard requests belong to the transport")
}

func TestButtonReportRoundTrip(t *testing.T) {
	e := newEmulator(t, "mini")

	// First poll on a fresh device: nothing pressed yet, the stale-poll
	// fallback sends an all-zero report.
	report := e.HandleTransfer(1, usbip.DirIn, nil)
	require.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 0}, report)

	// Immediately after, nothing new: NAK.
	assert.Nil(t, e.HandleTransfer(1, usbip.DirIn, nil))

	e.UpdateButtons([]bool{true, false, false, false, true, false})
	report = e.HandleTransfer(1, usbip.DirIn, nil)
	require.Equal(t, []byte{0x01, 1, 0, 0, 0, 1, 0}, report)

	// The state is depth 1: it was consumed by the previous poll.
	assert.Nil(t, e.HandleTransfer(1, usbip.DirIn, nil))
}

func TestButtonStateLatestWins(t *testing.T) {
	e := newEmulator(t, "mini")
	e.HandleTransfer(1, usbip.DirIn, nil) // arm the stale-poll timer

	e.UpdateButtons([]bool{true, false, false, false, false, false})
	e.UpdateButtons([]bool{false, false, false, false, false, true})

	report := e.HandleTransfer(1, usbip.DirIn, nil)
	require.Equal(t, []byte{0x01, 0, 0, 0, 0, 0, 1}, report)
}

func TestDescriptorMatchesModel(t *testing.T) {
	e := newEmulator(t, "xl")
	desc := e.GetDescriptor()

	assert.Equal(t, uint16(deck.VendorID), desc.Device.IDVendor)
	assert.Equal(t, uint16(0x006c), desc.Device.IDProduct)
	assert.Equal(t, "Elgato Systems", desc.Strings[1])
	assert.Equal(t, "Stream Deck XL", desc.Strings[2])
	assert.Equal(t, "PD240100001", desc.Strings[3])

	require.Len(t, desc.Interfaces, 1)
	intf := desc.Interfaces[0]
	require.Len(t, intf.Endpoints, 2)
	assert.Equal(t, uint8(0x81), intf.Endpoints[0].BEndpointAddress)
	assert.Equal(t, uint8(0x02), intf.Endpoints[1].BEndpointAddress)

	// The HID class descriptor's wDescriptorLength must match the report
	// descriptor it announces.
	require.Len(t, intf.HIDDescriptor, 9)
	gotLen := int(intf.HIDDescriptor[7]) | int(intf.HIDDescriptor[8])<<8
	assert.Equal(t, len(intf.HIDReport), gotLen)
}

func TestQueuesNeverBlockTransport(t *testing.T) {
	e := newEmulator(t, "mini")
	dev := e.Device()

	raw := make([]byte, 54+dev.Display.ImageWidth*dev.Display.ImageHeight*3)
	raw[0], raw[1] = 'B', 'M'

	// No drain loop running: overflowing both queues must drop, not stall.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 12; i++ {
			e.HandleTransfer(2, usbip.DirOut, v1Packet(1, uint8(i%6), raw[:1016]))
			e.HandleTransfer(2, usbip.DirOut, v1Packet(2, uint8(i%6), raw[1016:]))
			data := []byte{0x05, 0x55, 0xAA, 0xD1, 0x01, uint8(i)}
			e.HandleControl(0x21, 0x09, 0x0300|0x05, 0, uint16(len(data)), data)
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("transport blocked on a full queue")
	}
}
