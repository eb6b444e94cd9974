// Package deck holds the static capability model for every Stream Deck model
// deckforge can present itself as: button layout, display geometry and
// orientation, USB identity, and the wire-protocol family the vendor software
// will speak to it.
package deck

import (
	"errors"
	"fmt"
)

// VendorID is the Elgato Systems USB vendor id, shared by every model.
const VendorID = 0x0fd9

// ErrUnsupportedDevice is returned when a product id or model name does not
// match any emulatable deck. Unknown devices are fatal at selection time; no
// fallback model is substituted.
var ErrUnsupportedDevice = errors.New("unsupported deck device")

// Protocol identifies one of the mutually incompatible wire-protocol families
// spoken by different deck generations.
type Protocol uint8

const (
	// ProtocolV1 covers the BMP-based devices (Original, Mini, Revised Mini).
	ProtocolV1 Protocol = iota
	// ProtocolV2 covers the JPEG-based devices (Original V2, XL, Plus).
	ProtocolV2
	// ProtocolModule6 covers the 6-key Module.
	ProtocolModule6
	// ProtocolModule1532 covers the 15- and 32-key Modules.
	ProtocolModule1532
)

func (p Protocol) String() string {
	switch p {
	case ProtocolV1:
		return "v1"
	case ProtocolV2:
		return "v2"
	case ProtocolModule6:
		return "module-6"
	case ProtocolModule1532:
		return "module-15/32"
	default:
		return fmt.Sprintf("protocol(%d)", uint8(p))
	}
}

// ImageFormat is the key-image encoding the host uploads for a given model.
type ImageFormat uint8

const (
	FormatBMP ImageFormat = iota
	FormatJPEG
)

func (f ImageFormat) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "bmp"
}

// ButtonLayout describes the physical key grid.
type ButtonLayout struct {
	Cols int
	Rows int
	// LeftToRight is false for models whose host software indexes keys
	// right-to-left within each row (the original 5x3 deck).
	LeftToRight bool
}

// TotalKeys returns Cols*Rows.
func (l ButtonLayout) TotalKeys() int { return l.Cols * l.Rows }

// DisplayConfig describes per-key image geometry and the orientation fixups
// the emulated panel needs before pixels are presentable.
type DisplayConfig struct {
	ImageWidth     int
	ImageHeight    int
	Format         ImageFormat
	NeedsRotation  bool // 270 degree rotation (Mini-style panels)
	FlipHorizontal bool
	FlipVertical   bool
}

// Device is the immutable capability record for one emulated model.
type Device struct {
	Name         string
	PID          uint16
	Product      string
	Manufacturer string
	Layout       ButtonLayout
	Display      DisplayConfig
	Protocol     Protocol
}

// MaxKeys is the fixed capacity every button-state array in the system is
// sized to; the XL and Module 32 hit it exactly.
const MaxKeys = 32

// featureReportBytes and outputReportBytes match the real hardware report
// sizes; vendor software breaks if either changes.
const (
	featureReportBytes = 32
	outputReportBytes  = 1024
)

// InputReportSize returns the Input report length for this model, including
// the per-family framing overhead.
func (d Device) InputReportSize() int {
	switch d.Protocol {
	case ProtocolV1:
		return 1 + d.Layout.TotalKeys() // report id + states
	case ProtocolV2:
		return 3 + d.Layout.TotalKeys() // 3-byte header + states
	case ProtocolModule6:
		return 65
	case ProtocolModule1532:
		return 512
	default:
		return 0
	}
}

// FeatureReportSize returns the Feature report length (fixed across models).
func (d Device) FeatureReportSize() int { return featureReportBytes }

// OutputReportSize returns the Output report length (fixed across models).
func (d Device) OutputReportSize() int { return outputReportBytes }

// MaxImageSize bounds one key image upload. The bound doubles as the
// reassembly-buffer capacity: exceeding it aborts the in-flight upload.
func (d Device) MaxImageSize() int {
	w, h := d.Display.ImageWidth, d.Display.ImageHeight
	switch d.Display.Format {
	case FormatBMP:
		// 54-byte BMP header plus raw RGB rows.
		return 54 + w*h*3
	case FormatJPEG:
		// JPEG size varies; conservative bound observed from real uploads.
		return w * h / 2
	default:
		return 0
	}
}

var models = []Device{
	{
		Name: "mini", PID: 0x0063, Product: "Stream Deck Mini", Manufacturer: "Elgato Systems",
		Layout:   ButtonLayout{Cols: 3, Rows: 2, LeftToRight: true},
		Display:  DisplayConfig{ImageWidth: 80, ImageHeight: 80, Format: FormatBMP, NeedsRotation: true},
		Protocol: ProtocolV1,
	},
	{
		Name: "revised-mini", PID: 0x0080, Product: "Stream Deck Mini", Manufacturer: "Elgato Systems",
		Layout:   ButtonLayout{Cols: 3, Rows: 2, LeftToRight: true},
		Display:  DisplayConfig{ImageWidth: 80, ImageHeight: 80, Format: FormatBMP, NeedsRotation: true},
		Protocol: ProtocolV1,
	},
	{
		Name: "original", PID: 0x0060, Product: "Stream Deck", Manufacturer: "Elgato Systems",
		Layout:   ButtonLayout{Cols: 5, Rows: 3, LeftToRight: false},
		Display:  DisplayConfig{ImageWidth: 72, ImageHeight: 72, Format: FormatBMP, FlipHorizontal: true},
		Protocol: ProtocolV1,
	},
	{
		Name: "original-v2", PID: 0x006d, Product: "Stream Deck", Manufacturer: "Elgato Systems",
		Layout:   ButtonLayout{Cols: 5, Rows: 3, LeftToRight: true},
		Display:  DisplayConfig{ImageWidth: 72, ImageHeight: 72, Format: FormatJPEG, FlipHorizontal: true, FlipVertical: true},
		Protocol: ProtocolV2,
	},
	{
		Name: "xl", PID: 0x006c, Product: "Stream Deck XL", Manufacturer: "Elgato Systems",
		Layout:   ButtonLayout{Cols: 8, Rows: 4, LeftToRight: true},
		Display:  DisplayConfig{ImageWidth: 96, ImageHeight: 96, Format: FormatJPEG, FlipHorizontal: true, FlipVertical: true},
		Protocol: ProtocolV2,
	},
	{
		Name: "plus", PID: 0x0084, Product: "Stream Deck Plus", Manufacturer: "Elgato Systems",
		Layout:   ButtonLayout{Cols: 4, Rows: 2, LeftToRight: true},
		Display:  DisplayConfig{ImageWidth: 120, ImageHeight: 120, Format: FormatJPEG},
		Protocol: ProtocolV2,
	},
	{
		Name: "module-6", PID: 0x00b8, Product: "Stream Deck Module 6 Keys", Manufacturer: "Elgato Systems",
		Layout:   ButtonLayout{Cols: 3, Rows: 2, LeftToRight: true},
		Display:  DisplayConfig{ImageWidth: 80, ImageHeight: 80, Format: FormatBMP, NeedsRotation: true},
		Protocol: ProtocolModule6,
	},
	{
		Name: "module-15", PID: 0x00b9, Product: "Stream Deck Module 15 Keys", Manufacturer: "Elgato Systems",
		Layout:   ButtonLayout{Cols: 5, Rows: 3, LeftToRight: true},
		Display:  DisplayConfig{ImageWidth: 72, ImageHeight: 72, Format: FormatBMP, NeedsRotation: true},
		Protocol: ProtocolModule1532,
	},
	{
		Name: "module-32", PID: 0x00ba, Product: "Stream Deck Module 32 Keys", Manufacturer: "Elgato Systems",
		Layout:   ButtonLayout{Cols: 8, Rows: 4, LeftToRight: true},
		Display:  DisplayConfig{ImageWidth: 96, ImageHeight: 96, Format: FormatBMP, NeedsRotation: true},
		Protocol: ProtocolModule1532,
	},
}

// Models returns every supported model, in declaration order.
func Models() []Device {
	out := make([]Device, len(models))
	copy(out, models)
	return out
}

// ByPID returns the model matching the given USB product id.
func ByPID(pid uint16) (Device, error) {
	for _, d := range models {
		if d.PID == pid {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: pid 0x%04x", ErrUnsupportedDevice, pid)
}

// ByName returns the model matching the given short name (e.g. "mini", "xl").
func ByName(name string) (Device, error) {
	for _, d := range models {
		if d.Name == name {
			return d, nil
		}
	}
	return Device{}, fmt.Errorf("%w: %q", ErrUnsupportedDevice, name)
}
