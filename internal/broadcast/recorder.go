package broadcast

import (
	"context"
	"sync"
)

// Recorded is one captured publish call.
type Recorded struct {
	Channel string
	Event   string
	Payload any
}

// Recorder captures publishes for assertions in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
	err    error
}

// NewRecorder returns a Recorder; if fail is non-nil every Publish returns it.
func NewRecorder(fail error) *Recorder {
	return &Recorder{err: fail}
}

// Publish records the call and returns the configured error.
func (r *Recorder) Publish(_ context.Context, channel, event string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Recorded{Channel: channel, Event: event, Payload: payload})
	return r.err
}

// Events returns a copy of the captured publishes.
func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.events))
	copy(out, r.events)
	return out
}

var _ Broadcaster = (*Recorder)(nil)
