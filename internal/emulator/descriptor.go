package emulator

import (
	"github.com/deckforge/deckforge/deck"
	"github.com/deckforge/deckforge/deck/protocol"
	"github.com/deckforge/deckforge/usb"
)

// buildDescriptor assembles the USB descriptor set for one model: a single
// HID interface with interrupt IN 0x81 for button reports and interrupt OUT
// 0x02 for image data, identity strings from the capability record, and the
// family's HID report descriptor.
func buildDescriptor(dev deck.Device, hidReport []byte) usb.Descriptor {
	return usb.Descriptor{
		Device: usb.DeviceDescriptor{
			BcdUSB:             0x0200,
			BMaxPacketSize0:    0x40,
			IDVendor:           deck.VendorID,
			IDProduct:          dev.PID,
			BcdDevice:          0x0100,
			IManufacturer:      0x01,
			IProduct:           0x02,
			ISerialNumber:      0x03,
			BNumConfigurations: 0x01,
			Speed:              2, // full speed, like the hardware
		},
		Interfaces: []usb.InterfaceConfig{
			{
				Descriptor: usb.InterfaceDescriptor{
					BInterfaceNumber: 0x00,
					BNumEndpoints:    0x02,
					BInterfaceClass:  0x03, // HID
				},
				HIDDescriptor: usb.HIDClassBytes(len(hidReport)),
				HIDReport:     hidReport,
				Endpoints: []usb.EndpointDescriptor{
					{
						BEndpointAddress: 0x81,
						BMAttributes:     0x03, // interrupt
						WMaxPacketSize:   0x0040,
						BInterval:        0x01,
					},
					{
						BEndpointAddress: 0x02,
						BMAttributes:     0x03,
						WMaxPacketSize:   0x0040,
						BInterval:        0x01,
					},
				},
			},
		},
		Strings: map[uint8]string{
			0: "\u0409", // LangID en-US, encoded UTF-16LE like any string
			1: dev.Manufacturer,
			2: dev.Product,
			3: protocol.SerialNumber(dev.Protocol),
		},
	}
}
