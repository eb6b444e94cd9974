package protocol

// SetCommand is a decoded host-to-device control command carried by a Feature
// SET report. It is the only channel by which the protocol layer communicates
// intent to the rest of the emulator (display, brightness, reset).
//
// The set of implementations is closed; the marker method keeps it that way.
type SetCommand interface {
	isSetCommand()
}

// Reset asks the device to return to its power-on state (clear all key tiles).
type Reset struct{}

// ShowLogo asks a Module device to display its built-in logo.
type ShowLogo struct{}

// UpdateBootLogo asks a Module device to persist one slice of a new boot logo.
type UpdateBootLogo struct {
	Slice uint8
}

// SetBrightness sets the backlight brightness in percent (0-100).
type SetBrightness struct {
	Value uint8
}

// SetIdleTime sets the display idle timeout in seconds; 0 disables it.
type SetIdleTime struct {
	Seconds int32
}

// SetKeyColor sets a solid color on one key (Module 15/32 only).
type SetKeyColor struct {
	Key     uint8
	R, G, B uint8
}

// ShowBackgroundByIndex selects a stored background image (Module 15/32 only).
type ShowBackgroundByIndex struct {
	Index uint8
}

func (Reset) isSetCommand()                 {}
func (ShowLogo) isSetCommand()              {}
func (UpdateBootLogo) isSetCommand()        {}
func (SetBrightness) isSetCommand()         {}
func (SetIdleTime) isSetCommand()           {}
func (SetKeyColor) isSetCommand()           {}
func (ShowBackgroundByIndex) isSetCommand() {}

// FirmwareKind selects which of the three firmware slots a version query
// refers to.
type FirmwareKind uint8

const (
	FirmwareLD  FirmwareKind = iota // loader
	FirmwareAP2                     // primary firmware
	FirmwareAP1                     // backup firmware
)

// GetCommand identifies a Feature GET query the host can issue.
type GetCommand uint8

const (
	GetFirmwareVersion GetCommand = iota
	GetUnitSerialNumber
	GetIdleTime
	GetUnitInformation // Module 15/32 only
)
