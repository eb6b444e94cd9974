package usbip

import "time"

// ServerConfig represents the USB/IP transport configuration.
type ServerConfig struct {
	Addr              string        `help:"USB/IP server listen address" default:":3240" env:"DECKFORGE_USB_ADDR"`
	BusNum            uint32        `help:"Bus number the device enumerates on" default:"1" env:"DECKFORGE_USB_BUSNUM"`
	DevNum            uint32        `help:"Device number the device enumerates on" default:"1" env:"DECKFORGE_USB_DEVNUM"`
	ConnectionTimeout time.Duration `kong:"-"`
}
