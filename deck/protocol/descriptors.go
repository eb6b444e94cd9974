package protocol

// HID report descriptors, one per protocol family. Host drivers match on
// these byte-for-byte, so they are opaque compatibility constants; do not
// restructure or regenerate them.

func (h *v1Handler) HIDDescriptor() []byte { return hidDescriptorV1 }

func (h *v2Handler) HIDDescriptor() []byte { return hidDescriptorV2 }

func (h *module6Handler) HIDDescriptor() []byte { return hidDescriptorModule6 }

func (h *module1532Handler) HIDDescriptor() []byte { return hidDescriptorModule1532 }

var hidDescriptorV1 = []byte{
	0x05, 0x0c, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xa1, 0x01, // Collection (Application)
	0x09, 0x01, //   Usage (Consumer Control)

	// Input report 0x01: one byte per key
	0x05, 0x09, //   Usage Page (Button)
	0x19, 0x01, //   Usage Minimum (1)
	0x29, 0x06, //   Usage Maximum (6)
	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0xff, 0x00, //   Logical Maximum (255)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x06, //   Report Count (6)
	0x85, 0x01, //   Report ID (0x01)
	0x81, 0x02, //   Input (Data,Var,Abs)

	// Output report 0x02: image data
	0x0a, 0x00, 0xff, //   Usage (Vendor 0xFF00)
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x96, 0xff, 0x03, //   Report Count (1023)
	0x85, 0x02,
	0x91, 0x02, //   Output (Data,Var,Abs)

	// Feature reports: 16 vendor bytes each
	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x10,
	0x85, 0x03,
	0xb1, 0x04,

	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x10,
	0x85, 0x04,
	0xb1, 0x04,

	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x10,
	0x85, 0x05,
	0xb1, 0x04,

	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x10,
	0x85, 0x07,
	0xb1, 0x04,

	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x10,
	0x85, 0x0b,
	0xb1, 0x04,

	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x10,
	0x85, 0xa0,
	0xb1, 0x04,

	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x10,
	0x85, 0xa1,
	0xb1, 0x04,

	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x10,
	0x85, 0xa2,
	0xb1, 0x04,

	0xc0, // End Collection
}

var hidDescriptorV2 = []byte{
	0x05, 0x0c, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xa1, 0x01, // Collection (Application)
	0x09, 0x01, //   Usage (Consumer Control)

	// Input report 0x01: up to 32 keys
	0x05, 0x09, //   Usage Page (Button)
	0x19, 0x01, //   Usage Minimum (1)
	0x29, 0x20, //   Usage Maximum (32)
	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0xff, 0x00, //   Logical Maximum (255)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x20, //   Report Count (32)
	0x85, 0x01, //   Report ID (0x01)
	0x81, 0x02, //   Input (Data,Var,Abs)

	// Output report 0x02: 1024-byte image packets
	0x0a, 0x00, 0xff, //   Usage (Vendor 0xFF00)
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x96, 0x00, 0x04, //   Report Count (1024)
	0x85, 0x02,
	0x91, 0x02, //   Output (Data,Var,Abs)

	// Feature reports: 32 vendor bytes each
	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x20,
	0x85, 0x03,
	0xb1, 0x04,

	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x20,
	0x85, 0x04,
	0xb1, 0x04,

	0x0a, 0x00, 0xff,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x20,
	0x85, 0x05,
	0xb1, 0x04,

	0xc0, // End Collection
}

var hidDescriptorModule6 = []byte{
	0x05, 0x0c, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xa1, 0x01, // Collection (Application)

	// Input report 0x01: up to 32 keys
	0x85, 0x01,
	0x05, 0x09, //   Usage Page (Button)
	0x19, 0x01,
	0x29, 0x20,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x20,
	0x81, 0x02,

	// Output report 0x02: image chunks
	0x85, 0x02,
	0x0a, 0x00, 0xff, //   Usage (Vendor 0xFF00)
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x96, 0xff, 0x03, //   Report Count (1023)
	0x91, 0x02,

	// Feature reports 0x03/0x04/0x05/0x07/0x0B/0xA0-0xA3: 16 vendor bytes each
	0x85, 0x03, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0x04, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0x05, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0x07, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0x0b, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0xa0, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0xa1, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0xa2, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0xa3, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,

	0xc0, // End Collection
}

var hidDescriptorModule1532 = []byte{
	0x05, 0x0c, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xa1, 0x01, // Collection (Application)

	// Input report 0x01: up to 32 keys
	0x85, 0x01,
	0x05, 0x09, //   Usage Page (Button)
	0x19, 0x01,
	0x29, 0x20,
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x95, 0x20,
	0x81, 0x02,

	// Output report 0x02: image chunks
	0x85, 0x02,
	0x0a, 0x00, 0xff, //   Usage (Vendor 0xFF00)
	0x15, 0x00,
	0x26, 0xff, 0x00,
	0x75, 0x08,
	0x96, 0xff, 0x03, //   Report Count (1023)
	0x91, 0x02,

	// Feature reports 0x03-0x07/0x0A: 16 vendor bytes each
	0x85, 0x03, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0x04, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0x05, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0x06, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0x07, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,
	0x85, 0x0a, 0x0a, 0x00, 0xff, 0x15, 0x00, 0x26, 0xff, 0x00, 0x75, 0x08, 0x95, 0x10, 0xb1, 0x04,

	0xc0, // End Collection
}
