// Package input accepts button state over TCP, standing in for the key
// matrix a physical panel would scan. A client streams fixed-size frames of
// one byte per key (nonzero = pressed); each complete frame replaces the
// pending state, so a slow reader only ever sees the latest scan.
package input

import (
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
)

// ButtonSink receives complete button scans. Implemented by the emulator.
type ButtonSink interface {
	UpdateButtons(physical []bool)
}

// Server reads button frames from TCP clients and forwards them to the sink.
type Server struct {
	config    *ServerConfig
	logger    *slog.Logger
	sink      ButtonSink
	frameSize int
	ready     chan struct{}
	readyOnce sync.Once
	ln        net.Listener
}

// New builds a feed server for a device with the given key count.
func New(config ServerConfig, sink ButtonSink, keyCount int, logger *slog.Logger) *Server {
	return &Server{
		config:    &config,
		logger:    logger,
		sink:      sink,
		frameSize: keyCount,
		ready:     make(chan struct{}),
	}
}

// ListenAndServe accepts button-feed clients until Close.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	s.ln = ln
	s.readyOnce.Do(func() { close(s.ready) })
	s.logger.Info("Button feed listening", "addr", s.config.Addr, "frame_size", s.frameSize)
	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || strings.Contains(strings.ToLower(err.Error()), "use of closed network connection") {
				s.logger.Info("Button feed stopped")
				return nil
			}
			s.logger.Error("Accept error", "error", err)
			continue
		}
		s.logger.Info("Button feed client connected", "remote", c.RemoteAddr())
		go s.handleConn(c)
	}
}

// Ready returns a channel closed once the server is accepting connections.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Close stops the server by closing its listener.
func (s *Server) Close() error {
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	frame := make([]byte, s.frameSize)
	states := make([]bool, s.frameSize)
	for {
		if _, err := io.ReadFull(conn, frame); err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Debug("Button feed read ended", "error", err)
			}
			return
		}
		for i, b := range frame {
			states[i] = b != 0
		}
		s.sink.UpdateButtons(states)
	}
}
