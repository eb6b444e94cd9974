package usbip

import (
	"encoding/binary"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckforge/deckforge/deck"
	"github.com/deckforge/deckforge/internal/emulator"
	"github.com/deckforge/deckforge/usbip"
)

func newTestConn(t *testing.T, model string) (net.Conn, *emulator.Emulator) {
	t.Helper()
	dev, err := deck.ByName(model)
	require.NoError(t, err)
	e, err := emulator.New(dev, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	s := New(ServerConfig{Addr: "127.0.0.1:0", BusNum: 1, DevNum: 1},
		e, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)

	client, server := net.Pipe()
	go func() { _ = s.handleConn(server) }()
	t.Cleanup(func() { client.Close() })
	return client, e
}

func writeMgmt(t *testing.T, conn net.Conn, code uint16) {
	t.Helper()
	hdr := usbip.MgmtHeader{Version: usbip.Version, Command: code}
	require.NoError(t, hdr.Write(conn))
}

func writeBusID(t *testing.T, conn net.Conn, busid string) {
	t.Helper()
	var buf [32]byte
	copy(buf[:], busid)
	_, err := conn.Write(buf[:])
	require.NoError(t, err)
}

func submitControl(t *testing.T, conn net.Conn, seq uint32, dir uint32, setup [8]byte, wLength uint16) []byte {
	t.Helper()
	cmd := usbip.CmdSubmit{
		Basic:             usbip.HeaderBasic{Command: usbip.CmdSubmitCode, Seqnum: seq, Dir: dir, Ep: 0},
		TransferBufferLen: uint32(wLength),
		Setup:             setup,
	}
	require.NoError(t, cmd.Write(conn))

	var ret [48]byte
	_, err := io.ReadFull(conn, ret[:])
	require.NoError(t, err)
	require.Equal(t, uint32(usbip.RetSubmitCode), binary.BigEndian.Uint32(ret[0:4]))
	require.Equal(t, seq, binary.BigEndian.Uint32(ret[4:8]))
	require.Equal(t, int32(0), int32(binary.BigEndian.Uint32(ret[20:24])))

	actual := binary.BigEndian.Uint32(ret[24:28])
	if actual == 0 {
		return nil
	}
	payload := make([]byte, actual)
	_, err = io.ReadFull(conn, payload)
	require.NoError(t, err)
	return payload
}

func TestDevListReportsTheDevice(t *testing.T) {
	conn, _ := newTestConn(t, "mini")
	writeMgmt(t, conn, usbip.OpReqDevlist)

	// Header (8) + device count (4) + entry (312) + one interface triplet (4).
	reply := make([]byte, 328)
	_, err := io.ReadFull(conn, reply)
	require.NoError(t, err)

	assert.Equal(t, uint16(usbip.Version), binary.BigEndian.Uint16(reply[0:2]))
	assert.Equal(t, uint16(usbip.OpRepDevlist), binary.BigEndian.Uint16(reply[2:4]))
	assert.Equal(t, uint32(0), binary.BigEndian.Uint32(reply[4:8]))
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(reply[8:12]))

	entry := reply[12:]
	assert.Equal(t, "1-1", string(entry[256:259]))
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(entry[288:292])) // busnum
	assert.Equal(t, uint32(1), binary.BigEndian.Uint32(entry[292:296])) // devnum
	assert.Equal(t, uint16(deck.VendorID), binary.BigEndian.Uint16(entry[300:302]))
	assert.Equal(t, uint16(0x0063), binary.BigEndian.Uint16(entry[302:304]))
	assert.Equal(t, uint8(1), entry[311]) // bNumInterfaces
	assert.Equal(t, []byte{0x03, 0x00, 0x00, 0x00}, entry[312:316])
}

func TestImportRejectsUnknownBusID(t *testing.T) {
	conn, _ := newTestConn(t, "mini")
	writeMgmt(t, conn, usbip.OpReqImport)
	writeBusID(t, conn, "7-9")

	var reply [8]byte
	_, err := io.ReadFull(conn, reply[:])
	require.NoError(t, err)
	assert.Equal(t, uint16(usbip.OpRepImport), binary.BigEndian.Uint16(reply[2:4]))
	assert.NotZero(t, binary.BigEndian.Uint32(reply[4:8]))
}

func TestImportAndEnumerate(t *testing.T) {
	conn, e := newTestConn(t, "mini")
	writeMgmt(t, conn, usbip.OpReqImport)
	writeBusID(t, conn, "1-1")

	// Import reply: header (8) + entry without interface list (312).
	reply := make([]byte, 320)
	_, err := io.ReadFull(conn, reply)
	require.NoError(t, err)
	require.Equal(t, uint32(0), binary.BigEndian.Uint32(reply[4:8]))

	// GET_DESCRIPTOR(Device)
	dev := submitControl(t, conn, 1, usbip.DirIn,
		[8]byte{0x80, 0x06, 0x00, 0x01, 0x00, 0x00, 18, 0x00}, 18)
	require.Len(t, dev, 18)
	assert.Equal(t, uint8(18), dev[0])
	assert.Equal(t, uint8(0x01), dev[1])
	assert.Equal(t, uint16(deck.VendorID), binary.LittleEndian.Uint16(dev[8:10]))
	assert.Equal(t, uint16(0x0063), binary.LittleEndian.Uint16(dev[10:12]))

	// GET_DESCRIPTOR(Configuration): config + interface + HID class + 2 EPs,
	// with wTotalLength patched to the assembled size.
	cfg := submitControl(t, conn, 2, usbip.DirIn,
		[8]byte{0x80, 0x06, 0x00, 0x02, 0x00, 0x00, 0xFF, 0x00}, 0xFF)
	require.Len(t, cfg, 9+9+9+7+7)
	assert.Equal(t, uint16(len(cfg)), binary.LittleEndian.Uint16(cfg[2:4]))
	assert.Equal(t, uint8(0x04), cfg[10]) // interface descriptor follows
	assert.Equal(t, uint8(0x21), cfg[19]) // then the HID class descriptor

	// GET_DESCRIPTOR(HID Report) against the interface.
	rep := submitControl(t, conn, 3, usbip.DirIn,
		[8]byte{0x81, 0x06, 0x00, 0x22, 0x00, 0x00, 0xFF, 0x0F}, 0x0FFF)
	assert.Equal(t, e.GetDescriptor().Interfaces[0].HIDReport, rep)

	// HID class GetReport(Feature 0xA0) rides the same control pipe.
	fw := submitControl(t, conn, 4, usbip.DirIn,
		[8]byte{0xA1, 0x01, 0xA0, 0x03, 0x00, 0x00, 32, 0x00}, 32)
	require.Len(t, fw, 32)
	assert.Equal(t, []byte("3.00.000"), fw[5:13])
}

func TestUnlinkRepliesConnReset(t *testing.T) {
	conn, _ := newTestConn(t, "mini")
	writeMgmt(t, conn, usbip.OpReqImport)
	writeBusID(t, conn, "1-1")
	reply := make([]byte, 320)
	_, err := io.ReadFull(conn, reply)
	require.NoError(t, err)

	unlink := usbip.CmdUnlink{
		Basic:        usbip.HeaderBasic{Command: usbip.CmdUnlinkCode, Seqnum: 9},
		UnlinkSeqnum: 3,
	}
	require.NoError(t, unlink.Write(conn))

	var ret [48]byte
	_, err = io.ReadFull(conn, ret[:])
	require.NoError(t, err)
	assert.Equal(t, uint32(usbip.RetUnlinkCode), binary.BigEndian.Uint32(ret[0:4]))
	assert.Equal(t, uint32(9), binary.BigEndian.Uint32(ret[4:8]))
	assert.Equal(t, int32(-104), int32(binary.BigEndian.Uint32(ret[20:24])))
}

func TestRejectsStrayURBTraffic(t *testing.T) {
	conn, _ := newTestConn(t, "mini")

	// A URB header without a prior OP_REQ_IMPORT is a protocol violation and
	// closes the connection.
	cmd := usbip.CmdSubmit{Basic: usbip.HeaderBasic{Command: usbip.CmdSubmitCode, Seqnum: 1}}
	_ = cmd.Write(conn)

	var one [1]byte
	_, err := conn.Read(one[:])
	assert.Error(t, err)
}
