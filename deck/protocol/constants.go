package protocol

// Wire constants shared across protocol families. Every value here is a
// compatibility constant dictated by the real hardware; none may be changed
// without breaking the vendor software.
const (
	// Output report id carrying image data, all families.
	outputReportImage = 0x02

	// V2 image packet command byte (second header byte).
	imageCommandV2 = 0x07
	// Module 6 image packet command byte (second header byte).
	imageCommandModule = 0x01

	// V1/Module brightness magic prefix: 0x55 0xAA 0xD1 0x01.
	magic1 = 0x55
	magic2 = 0xaa
	magic3 = 0xd1

	// Brightness value that V1 hosts use as a reset escape.
	brightnessResetMagic = 0x63
	// V1/Module reset sub-command on Feature report 0x0B.
	resetMagic = 0x63
	// Module idle-time sub-command on Feature report 0x0B.
	idleTimeCommand = 0xa2

	// V1/Module brightness Feature report id.
	featureReportBrightness = 0x05
	// V1/Module reset + idle-time Feature report id.
	featureReportReset = 0x0b
	// V2 and Module 15/32 command Feature report id.
	featureReportCommand = 0x03
	// Idle-time Feature GET report id (V1, V2, Module 6).
	featureReportGetIdleTime = 0xa3

	// V2 command bytes on Feature report 0x03.
	v2CommandReset      = 0x02
	v2CommandBrightness = 0x08

	// Module 15/32 command bytes on Feature report 0x03.
	moduleCommandBrightness = 0x08
	moduleCommandKeyColor   = 0x06
	moduleCommandBackground = 0x07
)

// Reported identity strings. The firmware versions match what current real
// units report; serial formats follow the vendor's per-family scheme.
var (
	v1FirmwareVersion = []byte("3.00.000")
	v1SerialNumber    = []byte("PD240100001")

	module6FirmwareLD  = []byte("1.00.003")
	module6FirmwareAP  = []byte("1.03.000")
	module6Serial      = []byte("1234567890")
	module1532Firmware = []byte("1.00.000")
	module1532Serial   = []byte("A1B2C3D4E5F6G7")
)
