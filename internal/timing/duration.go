// Package timing holds the elapsed-time primitives the match clock is built on:
// a millisecond Duration with whole-second views and a start/stop Timer
// driven by an injected clock.
package timing

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/KirkDiggler/sideline/internal/common/apperr"
)

// Duration is a non-negative elapsed time kept to the millisecond.
// Its views report whole seconds.
type Duration struct {
	ms int64
}

// Seconds creates a Duration. Negative input is clamped to zero.
func Seconds(n int64) Duration {
	return Milliseconds(n * 1000)
}

// Milliseconds creates a Duration. Negative input is clamped to zero.
func Milliseconds(n int64) Duration {
	if n < 0 {
		n = 0
	}
	return Duration{ms: n}
}

// Zero returns the empty Duration
func Zero() Duration {
	return Duration{}
}

// FromStd converts a time.Duration, truncating to whole milliseconds
func FromStd(d time.Duration) Duration {
	return Milliseconds(d.Milliseconds())
}

// Add sums two durations
func Add(a, b Duration) Duration {
	return Duration{ms: a.ms + b.ms}
}

// Add returns d + other
func (d Duration) Add(other Duration) Duration {
	return Add(d, other)
}

// TotalSeconds returns the whole seconds elapsed
func (d Duration) TotalSeconds() int64 {
	return d.ms / 1000
}

// TotalMilliseconds returns the exact duration
func (d Duration) TotalMilliseconds() int64 {
	return d.ms
}

// Minutes returns the whole minutes part
func (d Duration) Minutes() int64 {
	return d.TotalSeconds() / 60
}

// Seconds returns the whole seconds past the last whole minute
func (d Duration) Seconds() int64 {
	return d.TotalSeconds() % 60
}

// IsZero reports whether no time has elapsed
func (d Duration) IsZero() bool {
	return d.ms == 0
}

// Std converts to a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d.ms) * time.Millisecond
}

// String renders the duration as m:ss
func (d Duration) String() string {
	return fmt.Sprintf("%d:%02d", d.Minutes(), d.Seconds())
}

type durationJSON struct {
	Value float64 `json:"value"`
}

// MarshalJSON writes {"value": <seconds>}. Sub-second time is written as a
// fraction, e.g. {"value": 61.5}.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(durationJSON{Value: float64(d.ms) / 1000})
}

// UnmarshalJSON reads {"value": <seconds>} and rejects negative values
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw durationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Value < 0 {
		return apperr.Newf(apperr.InvalidArgument, "duration cannot be negative: %v", raw.Value)
	}

	d.ms = int64(math.Round(raw.Value * 1000))
	return nil
}
