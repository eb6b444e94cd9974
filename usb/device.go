package usb

// Device is what the transport drives: non-EP0 transfers plus the static
// descriptor set used for enumeration.
type Device interface {
	// HandleTransfer processes an interrupt/bulk transfer. ep is the endpoint
	// number without the direction bit; dir is usbip.DirIn or usbip.DirOut.
	// IN transfers return the payload to send; OUT transfers consume out and
	// return nil.
	HandleTransfer(ep uint32, dir uint32, out []byte) []byte
	GetDescriptor() *Descriptor
}

// ControlHandler is implemented by devices that answer class-specific EP0
// requests (HID GetReport/SetReport). The transport consults it after the
// standard chapter-9 requests; handled reports whether the device claimed
// the request.
type ControlHandler interface {
	HandleControl(bmRequestType, bRequest uint8, wValue, wIndex, wLength uint16, data []byte) (resp []byte, handled bool)
}
