// Package cmd holds the kong subcommand implementations.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/deckforge/deckforge/deck"
	"github.com/deckforge/deckforge/internal/emulator"
	"github.com/deckforge/deckforge/internal/log"
	"github.com/deckforge/deckforge/internal/server/input"
	"github.com/deckforge/deckforge/internal/server/usbip"
)

// Serve runs the emulator: one deck model exported over USB/IP plus the
// button input feed.
type Serve struct {
	Model             string             `help:"Deck model to emulate (see 'deckforge models')" default:"xl" env:"DECKFORGE_MODEL"`
	USBConfig         usbip.ServerConfig `embed:"" prefix:"usb."`
	InputConfig       input.ServerConfig `embed:"" prefix:"input."`
	ConnectionTimeout time.Duration      `help:"Handshake timeout for new USB/IP connections" default:"30s" env:"DECKFORGE_CONNECTION_TIMEOUT"`
}

// Run is called by kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger)
}

// StartServer runs the emulator until the context is canceled or a server
// fails.
func (s *Serve) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	s.USBConfig.ConnectionTimeout = s.ConnectionTimeout

	dev, err := deck.ByName(s.Model)
	if err != nil {
		return fmt.Errorf("select model: %w", err)
	}
	emu, err := emulator.New(dev, logger)
	if err != nil {
		return fmt.Errorf("build emulator: %w", err)
	}

	logger.Info("Starting deckforge",
		"model", dev.Name,
		"product", dev.Product,
		"vid", fmt.Sprintf("%04x", deck.VendorID),
		"pid", fmt.Sprintf("%04x", dev.PID),
		"protocol", dev.Protocol.String(),
		"layout", fmt.Sprintf("%dx%d", dev.Layout.Cols, dev.Layout.Rows),
		"key_image", fmt.Sprintf("%dx%d", dev.Display.ImageWidth, dev.Display.ImageHeight),
	)

	usbSrv := usbip.New(s.USBConfig, emu, logger, rawLogger)
	inputSrv := input.New(s.InputConfig, emu, dev.Layout.TotalKeys(), logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := emu.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(usbSrv.ListenAndServe)
	g.Go(inputSrv.ListenAndServe)
	g.Go(func() error {
		<-ctx.Done()
		_ = usbSrv.Close()
		_ = inputSrv.Close()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
