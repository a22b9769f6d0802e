package trace

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Recorder receives trace events. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(event Event)
}

// NoopRecorder discards all events.
type NoopRecorder struct{}

// Record discards the event.
func (NoopRecorder) Record(Event) {}

// FileRecorder writes events to a file in CBOR format.
type FileRecorder struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
}

// NewFileRecorder creates a FileRecorder that appends to the file at path,
// creating it with permissions 0644 if needed.
func NewFileRecorder(path string) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileRecorder{
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Record writes an event to the file. Encoding errors are dropped so that
// tracing never disturbs the traced bus.
func (r *FileRecorder) Record(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	_ = r.encoder.Encode(event)
}

// Close closes the file. Later Record calls are ignored.
// It is safe to call Close multiple times.
func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// SlogRecorder writes events to an slog.Logger at debug level.
type SlogRecorder struct {
	logger *slog.Logger
}

// NewSlogRecorder creates a SlogRecorder writing to logger.
func NewSlogRecorder(logger *slog.Logger) *SlogRecorder {
	return &SlogRecorder{logger: logger}
}

// Record logs the event.
func (r *SlogRecorder) Record(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.Uint64("seq", event.Seq),
		slog.String("op", event.Op.String()),
		slog.String("addr", formatAddr(event.Addr)),
		slog.Bool("acked", event.Acked),
	}
	if event.Op == OpRead {
		attrs = append(attrs, slog.Int("length", event.Length))
	} else {
		attrs = append(attrs,
			slog.Int("length", len(event.Data)),
			slog.Bool("stop", event.Stop),
		)
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}
	attrs = append(attrs, slog.Duration("duration", event.Duration))

	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "i2c", attrs...)
}

// MultiRecorder sends events to several recorders.
type MultiRecorder struct {
	recorders []Recorder
}

// NewMultiRecorder creates a MultiRecorder.
func NewMultiRecorder(recorders ...Recorder) *MultiRecorder {
	return &MultiRecorder{recorders: recorders}
}

// Record sends the event to every recorder.
func (m *MultiRecorder) Record(event Event) {
	for _, r := range m.recorders {
		r.Record(event)
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*FileRecorder)(nil)
	_ Recorder = (*SlogRecorder)(nil)
	_ Recorder = (*MultiRecorder)(nil)
)
