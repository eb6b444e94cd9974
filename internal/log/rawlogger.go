package log

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger records raw wire traffic, one line per chunk.
type RawLogger interface {
	Log(in bool, data []byte)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw returns a RawLogger writing hex dumps to w. A nil writer yields a
// logger that drops everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits one line with timestamp, direction, and hex dump. in=true is
// host-to-device traffic.
func (r *rawLogger) Log(in bool, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}

	dir := "D->H"
	if in {
		dir = "H->D"
	}

	const hexdigits = "0123456789abcdef"
	var hexbuf bytes.Buffer
	hexbuf.Grow(len(data) * 3)
	for i, b := range data {
		if i > 0 {
			hexbuf.WriteByte(' ')
		}
		hexbuf.WriteByte(hexdigits[b>>4])
		hexbuf.WriteByte(hexdigits[b&0x0f])
	}

	line := fmt.Sprintf("%s %s %d bytes: %s\n",
		time.Now().Format("2006/01/02 15:04:05"), dir, len(data), hexbuf.String())

	r.mu.Lock()
	_, _ = io.WriteString(r.w, line)
	r.mu.Unlock()
}
