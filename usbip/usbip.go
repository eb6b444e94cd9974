// Package usbip implements the USB/IP wire structures (network byte order)
// used to export the emulated deck to a remote host kernel.
package usbip

import (
	"bytes"
	"encoding/binary"
	"io"
)

const (
	Version = 0x0111

	// Management commands
	OpReqDevlist = 0x8005
	OpRepDevlist = 0x0005
	OpReqImport  = 0x8003
	OpRepImport  = 0x0003

	// URB transfer commands
	CmdSubmitCode = 0x00000001
	CmdUnlinkCode = 0x00000002
	RetSubmitCode = 0x00000003
	RetUnlinkCode = 0x00000004

	// usbip_header_basic.direction values
	DirOut = 0x00000000
	DirIn  = 0x00000001
)

// MgmtHeader is the 8-byte header for management ops (devlist/import).
type MgmtHeader struct {
	Version uint16
	Command uint16
	Status  uint32
}

func (h *MgmtHeader) Write(w io.Writer) error {
	var buf [8]byte
	binary.BigEndian.PutUint16(buf[0:2], h.Version)
	binary.BigEndian.PutUint16(buf[2:4], h.Command)
	binary.BigEndian.PutUint32(buf[4:8], h.Status)
	_, err := w.Write(buf[:])
	return err
}

// DevListReplyHeader follows MgmtHeader in OP_REP_DEVLIST.
type DevListReplyHeader struct {
	NDevices uint32
}

func (d *DevListReplyHeader) Write(w io.Writer) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[0:4], d.NDevices)
	_, err := w.Write(buf[:])
	return err
}

// ExportMeta carries the bus identity of the exported device. The string
// fields are fixed-size and NUL-padded on the wire.
type ExportMeta struct {
	Path     [256]byte
	USBBusID [32]byte
	BusNum   uint32
	DevNum   uint32
}

// NewExportMeta builds the metadata for a device at the given bus/device
// position, deriving the sysfs-style path and busid strings the kernel
// expects.
func NewExportMeta(path, busID string, busNum, devNum uint32) ExportMeta {
	m := ExportMeta{BusNum: busNum, DevNum: devNum}
	copy(m.Path[:], path)
	copy(m.USBBusID[:], busID)
	return m
}

// BusIDString returns the NUL-trimmed busid.
func (m *ExportMeta) BusIDString() string {
	if i := bytes.IndexByte(m.USBBusID[:], 0); i >= 0 {
		return string(m.USBBusID[:i])
	}
	return string(m.USBBusID[:])
}

// ExportedDevice is one device entry in devlist/import replies. The layout
// follows the kernel documentation; everything numeric is big-endian.
type ExportedDevice struct {
	ExportMeta
	Speed uint32

	IDVendor            uint16
	IDProduct           uint16
	BcdDevice           uint16
	BDeviceClass        uint8
	BDeviceSubClass     uint8
	BDeviceProtocol     uint8
	BConfigurationValue uint8
	BNumConfigurations  uint8
	BNumInterfaces      uint8

	Interfaces []InterfaceDesc
}

// InterfaceDesc is the class/subclass/protocol triplet listed per interface
// in devlist replies (padded to 4 bytes on the wire).
type InterfaceDesc struct {
	Class    uint8
	SubClass uint8
	Protocol uint8
}

// writeCommon writes the fields shared by the devlist and import entry forms
// (everything up to and including bNumInterfaces).
func (d *ExportedDevice) writeCommon(w io.Writer) error {
	if _, err := w.Write(d.Path[:]); err != nil {
		return err
	}
	if _, err := w.Write(d.USBBusID[:]); err != nil {
		return err
	}
	var num [12]byte
	binary.BigEndian.PutUint32(num[0:4], d.BusNum)
	binary.BigEndian.PutUint32(num[4:8], d.DevNum)
	binary.BigEndian.PutUint32(num[8:12], d.Speed)
	if _, err := w.Write(num[:]); err != nil {
		return err
	}
	var ids [6]byte
	binary.BigEndian.PutUint16(ids[0:2], d.IDVendor)
	binary.BigEndian.PutUint16(ids[2:4], d.IDProduct)
	binary.BigEndian.PutUint16(ids[4:6], d.BcdDevice)
	if _, err := w.Write(ids[:]); err != nil {
		return err
	}
	_, err := w.Write([]byte{
		d.BDeviceClass,
		d.BDeviceSubClass,
		d.BDeviceProtocol,
		d.BConfigurationValue,
		d.BNumConfigurations,
		d.BNumInterfaces,
	})
	return err
}

// WriteDevlist writes the OP_REP_DEVLIST entry form, which appends one
// interface triplet per interface.
func (d *ExportedDevice) WriteDevlist(w io.Writer) error {
	if err := d.writeCommon(w); err != nil {
		return err
	}
	for _, iface := range d.Interfaces {
		if _, err := w.Write([]byte{iface.Class, iface.SubClass, iface.Protocol, 0}); err != nil {
			return err
		}
	}
	return nil
}

// WriteImport writes the OP_REP_IMPORT entry form, which ends at
// bNumInterfaces.
func (d *ExportedDevice) WriteImport(w io.Writer) error {
	return d.writeCommon(w)
}

// HeaderBasic is the 20-byte prefix shared by every URB command and reply.
type HeaderBasic struct {
	Command uint32
	Seqnum  uint32
	Devid   uint32
	Dir     uint32
	Ep      uint32
}

func (h *HeaderBasic) put(buf []byte) {
	binary.BigEndian.PutUint32(buf[0:4], h.Command)
	binary.BigEndian.PutUint32(buf[4:8], h.Seqnum)
	binary.BigEndian.PutUint32(buf[8:12], h.Devid)
	binary.BigEndian.PutUint32(buf[12:16], h.Dir)
	binary.BigEndian.PutUint32(buf[16:20], h.Ep)
}

// CmdSubmit is the 0x30-byte URB submit header (payload follows for OUT).
type CmdSubmit struct {
	Basic             HeaderBasic
	TransferFlags     uint32
	TransferBufferLen uint32
	StartFrame        uint32
	NumberOfPackets   uint32
	Interval          uint32
	Setup             [8]byte
}

func (c *CmdSubmit) Write(w io.Writer) error {
	var buf [48]byte
	c.Basic.put(buf[0:20])
	binary.BigEndian.PutUint32(buf[20:24], c.TransferFlags)
	binary.BigEndian.PutUint32(buf[24:28], c.TransferBufferLen)
	binary.BigEndian.PutUint32(buf[28:32], c.StartFrame)
	binary.BigEndian.PutUint32(buf[32:36], c.NumberOfPackets)
	binary.BigEndian.PutUint32(buf[36:40], c.Interval)
	copy(buf[40:48], c.Setup[:])
	_, err := w.Write(buf[:])
	return err
}

// RetSubmit is the 0x30-byte URB reply header (payload follows for IN).
type RetSubmit struct {
	Basic           HeaderBasic
	Status          int32
	ActualLength    uint32
	StartFrame      uint32
	NumberOfPackets uint32
	ErrorCount      uint32
}

func (r *RetSubmit) Write(w io.Writer) error {
	var buf [48]byte
	r.Basic.put(buf[0:20])
	binary.BigEndian.PutUint32(buf[20:24], uint32(r.Status))
	binary.BigEndian.PutUint32(buf[24:28], r.ActualLength)
	binary.BigEndian.PutUint32(buf[28:32], r.StartFrame)
	binary.BigEndian.PutUint32(buf[32:36], r.NumberOfPackets)
	binary.BigEndian.PutUint32(buf[36:40], r.ErrorCount)
	_, err := w.Write(buf[:])
	return err
}

// CmdUnlink asks the server to cancel a previously submitted URB.
type CmdUnlink struct {
	Basic        HeaderBasic
	UnlinkSeqnum uint32
}

func (c *CmdUnlink) Write(w io.Writer) error {
	var buf [48]byte
	c.Basic.put(buf[0:20])
	binary.BigEndian.PutUint32(buf[20:24], c.UnlinkSeqnum)
	_, err := w.Write(buf[:])
	return err
}

// RetUnlink acknowledges an unlink; Status carries the errno-style result.
type RetUnlink struct {
	Basic  HeaderBasic
	Status int32
}

func (r *RetUnlink) Write(w io.Writer) error {
	var buf [48]byte
	r.Basic.put(buf[0:20])
	binary.BigEndian.PutUint32(buf[20:24], uint32(r.Status))
	_, err := w.Write(buf[:])
	return err
}
