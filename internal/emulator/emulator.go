// Package emulator wires one deck model's protocol handler to the USB
// transport: it implements usb.Device for the USB/IP server, feeds decoded
// commands and key images to the display over bounded channels, and holds the
// latest-wins button state.
package emulator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/deckforge/deckforge/deck"
	"github.com/deckforge/deckforge/deck/protocol"
	"github.com/deckforge/deckforge/usb"
	"github.com/deckforge/deckforge/usbip"
)

const (
	// Endpoint numbers (without the direction bit).
	epInterruptIn  = 1 // 0x81, button reports
	epInterruptOut = 2 // 0x02, image/command payloads

	// Queue depths. Commands and images are best-effort: a full queue drops
	// the newest entry rather than blocking the transport.
	commandQueueDepth = 4
	imageQueueDepth   = 8

	// An idle host poll past this age gets an empty button report instead of
	// a NAK, which keeps HID stacks from flagging the device as stalled.
	emptyReportAfter = time.Second
)

// KeyImage is one decoded, orientation-corrected key tile on its way to the
// display.
type KeyImage struct {
	Key    uint8
	Pixels []byte // RGB565 big-endian
}

// Emulator presents one deck model as a USB HID device. One instance serves
// one USB connection; the transport calls it serially, so the protocol
// handler needs no locking.
type Emulator struct {
	dev     deck.Device
	handler protocol.Handler
	display *Display
	logger  *slog.Logger

	buttonMu   sync.Mutex
	buttons    *protocol.ButtonMapping // depth 1, latest wins
	lastReport time.Time

	commands chan protocol.SetCommand
	images   chan KeyImage

	descriptor usb.Descriptor
}

// New builds the emulator for one model. Fails only for an unknown protocol
// family, which is fatal at startup.
func New(dev deck.Device, logger *slog.Logger) (*Emulator, error) {
	handler, err := protocol.New(dev)
	if err != nil {
		return nil, err
	}
	e := &Emulator{
		dev:      dev,
		handler:  handler,
		display:  NewDisplay(dev),
		logger:   logger,
		commands: make(chan protocol.SetCommand, commandQueueDepth),
		images:   make(chan KeyImage, imageQueueDepth),
	}
	e.descriptor = buildDescriptor(dev, handler.HIDDescriptor())
	return e, nil
}

// Display returns the panel this emulator renders to.
func (e *Emulator) Display() *Display { return e.display }

// Device returns the emulated model.
func (e *Emulator) Device() deck.Device { return e.dev }

// GetDescriptor implements usb.Device.
func (e *Emulator) GetDescriptor() *usb.Descriptor { return &e.descriptor }

// UpdateButtons replaces the pending button state with a fresh scan. Only the
// latest unread state matters; older unread states are overwritten.
func (e *Emulator) UpdateButtons(physical []bool) {
	m := e.handler.MapButtons(physical, e.dev.Layout.Cols, e.dev.Layout.Rows, e.dev.Layout.LeftToRight)
	e.buttonMu.Lock()
	e.buttons = &m
	e.buttonMu.Unlock()
}

// HandleTransfer implements usb.Device: interrupt IN drains the button state,
// interrupt OUT feeds the image-upload state machine.
func (e *Emulator) HandleTransfer(ep uint32, dir uint32, out []byte) []byte {
	switch {
	case ep == epInterruptIn && dir == usbip.DirIn:
		return e.nextButtonReport()
	case ep == epInterruptOut && dir == usbip.DirOut:
		e.consumeOutputReport(out)
		return nil
	default:
		return nil
	}
}

func (e *Emulator) nextButtonReport() []byte {
	e.buttonMu.Lock()
	m := e.buttons
	e.buttons = nil
	if m == nil {
		if time.Since(e.lastReport) < emptyReportAfter {
			e.buttonMu.Unlock()
			return nil
		}
		empty := e.handler.MapButtons(nil, e.dev.Layout.Cols, e.dev.Layout.Rows, e.dev.Layout.LeftToRight)
		m = &empty
	}
	e.lastReport = time.Now()
	e.buttonMu.Unlock()

	report := make([]byte, e.dev.InputReportSize())
	if n := e.handler.FormatButtonReport(m, report); n == 0 {
		return nil
	}
	return report
}

func (e *Emulator) consumeOutputReport(data []byte) {
	res := e.handler.ParseOutputReport(data)
	if res.Kind != protocol.OutputKeyImage {
		return
	}
	pixels, err := decodeKeyImage(e.dev, res.Image)
	if err != nil {
		e.logger.Warn("dropping undecodable key image", "key", res.Key, "error", err)
		return
	}
	select {
	case e.images <- KeyImage{Key: res.Key, Pixels: pixels}:
	default:
		e.logger.Debug("image queue full, dropping key image", "key", res.Key)
	}
}

// HandleControl implements usb.ControlHandler for the HID class requests the
// vendor software issues on EP0.
func (e *Emulator) HandleControl(bmRequestType, bRequest uint8, wValue, wIndex, wLength uint16, data []byte) ([]byte, bool) {
	const (
		hidReqGetReport = 0x01
		hidReqSetReport = 0x09

		hidReqTypeClassInToInterface  = 0xA1
		hidReqTypeClassOutToInterface = 0x21

		hidReportTypeInput   = 0x01
		hidReportTypeOutput  = 0x02
		hidReportTypeFeature = 0x03
	)

	reportType := uint8(wValue >> 8)
	reportID := uint8(wValue & 0xFF)

	switch {
	case bmRequestType == hidReqTypeClassInToInterface && bRequest == hidReqGetReport:
		want := int(wLength)
		if want <= 0 {
			return nil, true
		}
		resp := make([]byte, want)
		if reportType == hidReportTypeFeature {
			if n, ok := e.handler.GetFeatureReport(reportID, resp); ok && n < want {
				clear(resp[n:])
			}
		}
		return resp, true

	case bmRequestType == hidReqTypeClassOutToInterface && bRequest == hidReqSetReport:
		switch reportType {
		case hidReportTypeFeature:
			e.consumeFeatureReport(reportID, data)
		case hidReportTypeOutput:
			// Some hosts push Output reports through EP0 instead of the
			// interrupt OUT endpoint.
			e.consumeOutputReport(data)
		}
		return nil, true
	}

	return nil, false
}

func (e *Emulator) consumeFeatureReport(reportID uint8, data []byte) {
	if len(data) == 0 {
		return
	}
	if reportID == 0 {
		reportID = data[0]
	}
	cmd, ok := e.handler.HandleFeatureReport(reportID, data)
	if !ok {
		e.logger.Debug("ignoring unknown feature report", "report", reportID)
		return
	}
	if _, isReset := cmd.(protocol.Reset); isReset {
		e.handler.Reset()
	}
	select {
	case e.commands <- cmd:
	default:
		e.logger.Debug("command queue full, dropping command")
	}
}

// Run drains the command and image queues into the display until the context
// is canceled. It is the only goroutine that mutates the panel.
func (e *Emulator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-e.commands:
			e.applyCommand(cmd)
		case img := <-e.images:
			if err := e.display.SetKeyImage(img.Key, img.Pixels); err != nil {
				e.logger.Warn("discarding key image", "error", err)
			}
		}
	}
}

func (e *Emulator) applyCommand(cmd protocol.SetCommand) {
	switch c := cmd.(type) {
	case protocol.Reset:
		e.display.Clear()
		e.logger.Info("host reset")
	case protocol.ShowLogo:
		e.display.ShowLogo()
	case protocol.UpdateBootLogo:
		// Boot logo slices would go to flash on real hardware; there is
		// nothing persistent to write here.
		e.logger.Debug("boot logo slice received", "slice", c.Slice)
	case protocol.SetBrightness:
		e.display.SetBrightness(c.Value)
		e.logger.Debug("brightness", "value", c.Value)
	case protocol.SetIdleTime:
		e.display.SetIdleTime(c.Seconds)
	case protocol.SetKeyColor:
		if err := e.display.FillKey(c.Key, c.R, c.G, c.B); err != nil {
			e.logger.Warn("discarding key color", "error", err)
		}
	case protocol.ShowBackgroundByIndex:
		e.display.ShowBackground(c.Index)
	}
}
