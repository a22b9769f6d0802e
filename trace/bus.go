package trace

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moffa90/go-24cxx/bus"
)

// Bus is a bus.Bus that records every transaction before returning the
// result of the wrapped bus.
type Bus struct {
	next      bus.Bus
	recorder  Recorder
	sessionID string

	mu  sync.Mutex
	seq uint64

	// now is replaced in tests
	now func() time.Time
}

// NewBus wraps next. Every traced bus gets its own session ID.
// A nil recorder discards events.
func NewBus(next bus.Bus, recorder Recorder) *Bus {
	if next == nil {
		panic("bus cannot be nil")
	}
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &Bus{
		next:      next,
		recorder:  recorder,
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
}

// SessionID returns the session ID stamped on every event.
func (b *Bus) SessionID() string {
	return b.sessionID
}

// Write implements bus.Bus.
func (b *Bus) Write(addr uint8, p []byte, stop bool) error {
	start := b.now()
	err := b.next.Write(addr, p, stop)

	b.record(Event{
		Timestamp: start,
		Op:        OpWrite,
		Addr:      addr,
		Data:      append([]byte(nil), p...),
		Stop:      stop,
		Acked:     err == nil,
		Error:     errorString(err),
		Duration:  b.now().Sub(start),
	})
	return err
}

// Read implements bus.Bus.
func (b *Bus) Read(addr uint8, p []byte) error {
	start := b.now()
	err := b.next.Read(addr, p)

	event := Event{
		Timestamp: start,
		Op:        OpRead,
		Addr:      addr,
		Length:    len(p),
		Acked:     err == nil,
		Error:     errorString(err),
		Duration:  b.now().Sub(start),
	}
	if err == nil {
		event.Data = append([]byte(nil), p...)
	}
	b.record(event)
	return err
}

func (b *Bus) record(event Event) {
	b.mu.Lock()
	b.seq++
	event.Seq = b.seq
	b.mu.Unlock()

	event.SessionID = b.sessionID
	b.recorder.Record(event)
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func formatAddr(addr uint8) string {
	return fmt.Sprintf("0x%02X", addr)
}

// Compile-time interface satisfaction check.
var _ bus.Bus = (*Bus)(nil)
