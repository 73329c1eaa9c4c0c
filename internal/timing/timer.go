package timing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/KirkDiggler/sideline/internal/common/apperr"
	"github.com/KirkDiggler/sideline/internal/common/clock"
)

// Timer measures one start/stop interval on top of an accumulated Duration.
// Start and Stop are idempotent.
type Timer struct {
	clock clock.Clock

	running bool

	// startTime is epoch milliseconds, only meaningful while running
	startTime int64

	duration Duration
}

// NewTimer creates a stopped timer reading time from c
func NewTimer(c clock.Clock) *Timer {
	return &Timer{
		clock: c,
	}
}

// Bind attaches the clock a deserialized timer reads from
func (t *Timer) Bind(c clock.Clock) {
	t.clock = c
}

// Start begins an interval. A running timer is left untouched.
func (t *Timer) Start() {
	if t.running {
		return
	}

	t.startTime = t.clock.Now().UnixMilli()
	t.running = true
}

// Stop ends the interval and folds it into the accumulated duration.
// A stopped timer is left untouched.
func (t *Timer) Stop() {
	if !t.running {
		return
	}

	t.duration = t.duration.Add(t.sinceStart())
	t.startTime = 0
	t.running = false
}

// Elapsed returns the accumulated duration plus the live interval if running
func (t *Timer) Elapsed() Duration {
	if !t.running {
		return t.duration
	}
	return t.duration.Add(t.sinceStart())
}

// Reset clears the timer to a stopped, zero state
func (t *Timer) Reset() {
	t.running = false
	t.startTime = 0
	t.duration = Zero()
}

// IsRunning reports whether an interval is open
func (t *Timer) IsRunning() bool {
	return t.running
}

// StartTime returns when the open interval began
func (t *Timer) StartTime() (time.Time, bool) {
	if !t.running {
		return time.Time{}, false
	}
	return time.UnixMilli(t.startTime), true
}

// sinceStart is clamped at zero if the clock moved backwards
func (t *Timer) sinceStart() Duration {
	return Milliseconds(t.clock.Now().UnixMilli() - t.startTime)
}

type timerJSON struct {
	IsRunning bool     `json:"isRunning"`
	StartTime *int64   `json:"startTime,omitempty"`
	Duration  Duration `json:"duration"`
}

// MarshalJSON writes {isRunning, startTime?, duration}; the clock is not serialized
func (t *Timer) MarshalJSON() ([]byte, error) {
	raw := timerJSON{
		IsRunning: t.running,
		Duration:  t.duration,
	}
	if t.running {
		start := t.startTime
		raw.StartTime = &start
	}
	return json.Marshal(raw)
}

// UnmarshalJSON restores the timer state. Call Bind before using the timer.
func (t *Timer) UnmarshalJSON(data []byte) error {
	var raw timerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.IsRunning != (raw.StartTime != nil) {
		return apperr.New(apperr.InvalidArgument, "timer startTime must be set iff the timer is running")
	}

	t.running = raw.IsRunning
	t.startTime = 0
	if raw.StartTime != nil {
		t.startTime = *raw.StartTime
	}
	t.duration = raw.Duration
	return nil
}

// ParseTimer decodes a timer and binds it to c
func ParseTimer(data []byte, c clock.Clock) (*Timer, error) {
	t := &Timer{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timer: %w", err)
	}

	t.Bind(c)
	return t, nil
}
