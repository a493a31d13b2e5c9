package log

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// RawLogger captures raw preprocessor output transcripts with optional
// file output.
type RawLogger interface {
	Log(source string, data []byte)
}

// rawLogger implements RawLogger with thread-safe writes.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Log emits one timestamped transcript section: the verbatim output the
// preprocessor produced for a header.
func (r *rawLogger) Log(source string, data []byte) {
	if len(data) == 0 || r.w == nil {
		return
	}

	header := fmt.Sprintf("%s ===== %s (%d bytes) =====\n",
		time.Now().Format("2006/01/02 15:04:05"), source, len(data))

	r.mu.Lock()
	_, _ = r.w.Write([]byte(header))
	_, _ = r.w.Write(data)
	if data[len(data)-1] != '\n' {
		_, _ = r.w.Write([]byte("\n"))
	}
	r.mu.Unlock()
}
