// Package usbip exports exactly one emulated device over the USB/IP
// protocol. A remote host kernel attaches to it with the stock vhci-hcd
// driver; enumeration (EP0 standard requests) is answered here, class
// requests and endpoint traffic are delegated to the device.
package usbip

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/deckforge/deckforge/internal/log"
	"github.com/deckforge/deckforge/usb"
	"github.com/deckforge/deckforge/usbip"
)

const (
	// USB standard request codes
	usbReqSetAddress       = 0x05
	usbReqGetDescriptor    = 0x06
	usbReqGetConfiguration = 0x08
	usbReqSetConfiguration = 0x09
	usbReqSetIdle          = 0x0a

	// USB descriptor types
	usbDescTypeDevice        = 0x01
	usbDescTypeConfiguration = 0x02
	usbDescTypeString        = 0x03
	usbDescTypeHID           = 0x21
	usbDescTypeHIDReport     = 0x22

	// USB request types (bmRequestType)
	usbReqTypeStandardToDevice    = 0x00
	usbReqTypeStandardToInterface = 0x81
	usbReqTypeStandardFromDevice  = 0x80
	usbReqTypeClassToInterface    = 0x21

	// USB configuration values
	usbConfigValueDefault   = 1
	usbConfigAttrBusPowered = 0x80
	usbConfigMaxPower500mA  = 250 // in units of 2mA; the panels draw real power

	// URB header field offsets
	urbHdrSize          = 0x30
	urbHdrOffsetCommand = 0x00
	urbHdrOffsetSeqnum  = 0x04
	urbHdrOffsetDevid   = 0x08
	urbHdrOffsetDir     = 0x0c
	urbHdrOffsetEp      = 0x10
	urbHdrOffsetUnlink  = 0x14
	urbHdrOffsetLength  = 0x18
	urbHdrOffsetSetup   = 0x28

	// Standard header peek size
	headerPeekSize = 8

	// BUSID buffer size for import
	busIDSize = 32

	// Error codes
	errConnReset = -104 // -ECONNRESET
)

// Server exports a single usb.Device over USB/IP.
type Server struct {
	config    *ServerConfig
	logger    *slog.Logger
	rawLogger log.RawLogger
	dev       usb.Device
	meta      usbip.ExportMeta
	ready     chan struct{}
	readyOnce sync.Once
	ln        net.Listener
}

// New builds a server exporting dev at the bus position in config.
func New(config ServerConfig, dev usb.Device, logger *slog.Logger, rawLogger log.RawLogger) *Server {
	busID := fmt.Sprintf("%d-%d", config.BusNum, config.DevNum)
	path := fmt.Sprintf("/sys/devices/platform/vhci_hcd/usb%d/%s", config.BusNum, busID)
	return &Server{
		config:    &config,
		logger:    logger,
		rawLogger: rawLogger,
		dev:       dev,
		meta:      usbip.NewExportMeta(path, busID, config.BusNum, config.DevNum),
		ready:     make(chan struct{}),
	}
}

// ListenAndServe starts the USB/IP server and handles incoming connections.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.readyOnce.Do(func() { close(s.ready) })
	s.logger.Info("USB/IP server listening", "addr", s.config.Addr, "busid", s.meta.BusIDString())
	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || strings.Contains(strings.ToLower(err.Error()), "use of closed network connection") {
				s.logger.Info("USB/IP server stopped")
				return nil
			}
			s.logger.Error("Accept error", "error", err)
			continue
		}
		s.logger.Info("Client connected", "remote", c.RemoteAddr())
		go func() {
			if err := s.handleConn(c); err != nil {
				if isClientDisconnect(err) {
					s.logger.Info("Client disconnected", "error", err)
				} else {
					s.logger.Error("Connection handler error", "error", err)
				}
			}
		}()
	}
}

// Ready returns a channel that is closed once the server has successfully
// bound to its listen address and is ready to accept connections.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Close stops the server by closing its listener.
func (s *Server) Close() error {
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

// GetListenPort extracts and returns the port number from the server's
// listen address.
func (s *Server) GetListenPort() uint16 {
	_, portStr, err := net.SplitHostPort(s.config.Addr)
	if err != nil {
		return 0
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return 0
	}
	return uint16(port)
}

// --

func (s *Server) handleConn(conn net.Conn) error {
	defer conn.Close()
	conn = &logConn{Conn: conn, s: s}
	if s.config.ConnectionTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(s.config.ConnectionTimeout)); err != nil {
			s.logger.Warn("Failed to set deadline", "error", err)
		}
	}

	// Peek first 8 bytes to determine the management op.
	var hdrBuf [headerPeekSize]byte
	if _, err := io.ReadFull(conn, hdrBuf[:]); err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	ver := binary.BigEndian.Uint16(hdrBuf[0:2])
	code := binary.BigEndian.Uint16(hdrBuf[2:4])

	if ver == usbip.Version && (code == usbip.OpReqDevlist || code == usbip.OpReqImport) {
		switch code {
		case usbip.OpReqDevlist:
			s.logger.Info("OP_REQ_DEVLIST")
			return s.handleDevList(conn)
		case usbip.OpReqImport:
			s.logger.Info("OP_REQ_IMPORT")
			if err := s.handleImport(conn); err != nil {
				return fmt.Errorf("handle import: %w", err)
			}
			return s.handleUrbStream(conn)
		}
	}

	return fmt.Errorf("protocol violation: client sent URB data without OP_REQ_IMPORT")
}

func (s *Server) exportedDevice() usbip.ExportedDevice {
	desc := s.dev.GetDescriptor()
	exp := usbip.ExportedDevice{
		ExportMeta:          s.meta,
		Speed:               desc.Device.Speed,
		IDVendor:            desc.Device.IDVendor,
		IDProduct:           desc.Device.IDProduct,
		BcdDevice:           desc.Device.BcdDevice,
		BDeviceClass:        desc.Device.BDeviceClass,
		BDeviceSubClass:     desc.Device.BDeviceSubClass,
		BDeviceProtocol:     desc.Device.BDeviceProtocol,
		BConfigurationValue: usbConfigValueDefault,
		BNumConfigurations:  desc.Device.BNumConfigurations,
		BNumInterfaces:      uint8(len(desc.Interfaces)),
	}
	for _, iface := range desc.Interfaces {
		exp.Interfaces = append(exp.Interfaces, usbip.InterfaceDesc{
			Class:    iface.Descriptor.BInterfaceClass,
			SubClass: iface.Descriptor.BInterfaceSubClass,
			Protocol: iface.Descriptor.BInterfaceProtocol,
		})
	}
	return exp
}

func (s *Server) handleDevList(conn net.Conn) error {
	_ = conn.SetDeadline(time.Time{})
	var buf bytes.Buffer
	rep := usbip.MgmtHeader{Version: usbip.Version, Command: usbip.OpRepDevlist, Status: 0}
	_ = rep.Write(&buf)
	dlh := usbip.DevListReplyHeader{NDevices: 1}
	_ = dlh.Write(&buf)
	exp := s.exportedDevice()
	_ = exp.WriteDevlist(&buf)
	if _, err := conn.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write devlist: %w", err)
	}
	return nil
}

func (s *Server) handleImport(conn net.Conn) error {
	var rest [busIDSize]byte
	if _, err := io.ReadFull(conn, rest[:]); err != nil {
		return fmt.Errorf("read import busid: %w", err)
	}
	reqBus := string(rest[:bytes.IndexByte(rest[:], 0)])
	s.logger.Info("Import request", "busid", reqBus)
	if reqBus != s.meta.BusIDString() {
		// Report the mismatch to the client before giving up.
		rep := usbip.MgmtHeader{Version: usbip.Version, Command: usbip.OpRepImport, Status: 1}
		var buf bytes.Buffer
		_ = rep.Write(&buf)
		_, _ = conn.Write(buf.Bytes())
		return fmt.Errorf("no device matches busid %s", reqBus)
	}
	var buf bytes.Buffer
	rep := usbip.MgmtHeader{Version: usbip.Version, Command: usbip.OpRepImport, Status: 0}
	_ = rep.Write(&buf)
	exp := s.exportedDevice()
	_ = exp.WriteImport(&buf)
	if _, err := conn.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write import reply failed: %w", err)
	}
	return nil
}

type logConn struct {
	net.Conn
	s *Server
}

func (lc *logConn) Read(p []byte) (int, error) {
	n, err := lc.Conn.Read(p)
	if n > 0 && lc.s.rawLogger != nil {
		lc.s.rawLogger.Log(true, p[:n])
	}
	return n, err
}

func (lc *logConn) Write(p []byte) (int, error) {
	n, err := lc.Conn.Write(p)
	if n > 0 && lc.s.rawLogger != nil {
		lc.s.rawLogger.Log(false, p[:n])
	}
	return n, err
}

func (s *Server) handleUrbStream(conn net.Conn) error {
	_ = conn.SetDeadline(time.Time{})

	for {
		var hdr [urbHdrSize]byte
		if _, err := io.ReadFull(conn, hdr[:]); err != nil {
			return fmt.Errorf("read URB header: %w", err)
		}
		cmd := binary.BigEndian.Uint32(hdr[urbHdrOffsetCommand : urbHdrOffsetCommand+4])
		seq := binary.BigEndian.Uint32(hdr[urbHdrOffsetSeqnum : urbHdrOffsetSeqnum+4])
		devid := binary.BigEndian.Uint32(hdr[urbHdrOffsetDevid : urbHdrOffsetDevid+4])
		dir := binary.BigEndian.Uint32(hdr[urbHdrOffsetDir : urbHdrOffsetDir+4])
		ep := binary.BigEndian.Uint32(hdr[urbHdrOffsetEp : urbHdrOffsetEp+4])
		if cmd == usbip.CmdUnlinkCode {
			unlinkSeq := binary.BigEndian.Uint32(hdr[urbHdrOffsetUnlink : urbHdrOffsetUnlink+4])
			s.logger.Debug("USBIP_CMD_UNLINK", "seq", seq, "unlink", unlinkSeq)
			// Reply with -ECONNRESET
			ret := usbip.RetUnlink{Basic: usbip.HeaderBasic{Command: usbip.RetUnlinkCode, Seqnum: seq, Devid: 0, Dir: 0, Ep: 0}, Status: errConnReset}
			_ = ret.Write(conn)
			continue
		}
		if cmd != usbip.CmdSubmitCode {
			return fmt.Errorf("unsupported cmd %d (seq=%d, devid=%d)", cmd, seq, devid)
		}
		xferLen := binary.BigEndian.Uint32(hdr[urbHdrOffsetLength : urbHdrOffsetLength+4])
		setup := hdr[urbHdrOffsetSetup:urbHdrSize]

		var outPayload []byte
		if dir == usbip.DirOut && xferLen > 0 {
			outPayload = make([]byte, xferLen)
			if _, err := io.ReadFull(conn, outPayload); err != nil {
				return fmt.Errorf("read OUT payload: %w", err)
			}
		}

		respData := s.processSubmit(ep, dir, setup, outPayload)

		ret := usbip.RetSubmit{
			Basic:           usbip.HeaderBasic{Command: usbip.RetSubmitCode, Seqnum: seq, Devid: 0, Dir: 0, Ep: 0},
			Status:          0,
			ActualLength:    uint32(len(respData)),
			StartFrame:      0,
			NumberOfPackets: 0,
			ErrorCount:      0,
		}
		var out bytes.Buffer
		if err := ret.Write(&out); err != nil {
			return fmt.Errorf("build RET_SUBMIT header: %w", err)
		}
		if len(respData) > 0 {
			out.Write(respData)
		}
		if _, err := conn.Write(out.Bytes()); err != nil {
			return fmt.Errorf("write RET_SUBMIT: %w", err)
		}
	}
}

// isClientDisconnect tests whether an error represents a normal client
// disconnect (EOF, ECONNRESET, broken pipe, or the Windows WSAECONNRESET
// translated error). We treat those as normal client disconnects and log
// them at Info level instead of Error.
func isClientDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		// On many platforms the underlying error will be a syscall.Errno
		switch t := opErr.Err.(type) {
		case syscall.Errno:
			if t == syscall.ECONNRESET || t == syscall.EPIPE {
				return true
			}
		}
	}
	// Fallback to checking the message for platform-specific strings.
	e := strings.ToLower(err.Error())
	if strings.Contains(e, "connection reset by peer") || strings.Contains(e, "forcibly closed") || strings.Contains(e, "aborted") {
		return true
	}
	return false
}

// processSubmit answers EP0 control transfers and forwards everything else to
// the device. Standard enumeration requests are handled here; class requests
// (the HID Get/SetReport traffic the vendor software uses) go to the device's
// ControlHandler.
func (s *Server) processSubmit(ep uint32, dir uint32, setup []byte, out []byte) []byte {
	if ep != 0 {
		return s.dev.HandleTransfer(ep, dir, out)
	}
	if len(setup) != 8 {
		return nil
	}
	bm := setup[0]
	breq := setup[1]
	wValue := binary.LittleEndian.Uint16(setup[2:4])
	wIndex := binary.LittleEndian.Uint16(setup[4:6])
	wLength := binary.LittleEndian.Uint16(setup[6:8])

	if breq == usbReqSetAddress && bm == usbReqTypeStandardToDevice {
		return nil
	}
	if breq == usbReqSetConfiguration && bm == usbReqTypeStandardToDevice {
		return nil
	}
	if breq == usbReqGetConfiguration && bm == usbReqTypeStandardFromDevice {
		return []byte{0x01}
	}
	if breq == usbReqSetIdle && bm == usbReqTypeClassToInterface {
		return nil
	}

	desc := s.dev.GetDescriptor()

	if breq == usbReqGetDescriptor && bm == usbReqTypeStandardFromDevice {
		dtype := uint8(wValue >> 8)
		dindex := uint8(wValue & 0xff)
		var data []byte
		switch dtype {
		case usbDescTypeDevice:
			data = desc.Bytes()
		case usbDescTypeConfiguration:
			data = buildConfigDescriptor(desc)
		case usbDescTypeString:
			if str, ok := desc.Strings[dindex]; ok {
				data = usb.EncodeStringDescriptor(str)
			}
		}
		return clampDescriptor(data, wLength)
	}
	if breq == usbReqGetDescriptor && bm == usbReqTypeStandardToInterface {
		dtype := uint8(wValue >> 8)
		iface := uint8(wIndex & 0xff)
		var data []byte
		if int(iface) < len(desc.Interfaces) {
			ifaceConf := desc.Interfaces[iface]
			switch dtype {
			case usbDescTypeHID:
				data = ifaceConf.HIDDescriptor
			case usbDescTypeHIDReport:
				data = ifaceConf.HIDReport
			}
		}
		return clampDescriptor(data, wLength)
	}

	if ch, ok := s.dev.(usb.ControlHandler); ok {
		if resp, handled := ch.HandleControl(bm, breq, wValue, wIndex, wLength, out); handled {
			return resp
		}
	}
	return nil
}

func clampDescriptor(data []byte, wLength uint16) []byte {
	if len(data) == 0 {
		return nil
	}
	if int(wLength) < len(data) {
		return data[:wLength]
	}
	return data
}

// buildConfigDescriptor builds a configuration descriptor for the device.
// The HID class descriptor sits between the interface descriptor and its
// endpoints, where HID hosts expect it.
func buildConfigDescriptor(desc *usb.Descriptor) []byte {
	var b bytes.Buffer
	h := usb.ConfigHeader{
		WTotalLength:        0, // to be patched
		BNumInterfaces:      uint8(len(desc.Interfaces)),
		BConfigurationValue: usbConfigValueDefault,
		IConfiguration:      0,
		BMAttributes:        usbConfigAttrBusPowered,
		BMaxPower:           usbConfigMaxPower500mA,
	}
	h.Write(&b)
	for _, iface := range desc.Interfaces {
		iface.Descriptor.Write(&b)
		if len(iface.HIDDescriptor) > 0 {
			b.Write(iface.HIDDescriptor)
		}
		for _, ep := range iface.Endpoints {
			ep.Write(&b)
		}
	}

	data := b.Bytes()
	binary.LittleEndian.PutUint16(data[2:4], uint16(len(data)))
	return data
}
