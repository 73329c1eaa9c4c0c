package clock

import "time"

// TimeSource is a Clock that can be pinned to a single instant.
//
// A multi-entity mutation (stopping every timer on a roster and writing one
// event) freezes the source first so every read inside the operation observes
// the same "now". Freeze is not reentrant: freezing an already frozen source
// fails rather than silently nesting.
//
// A TimeSource is not safe for concurrent use. Build one per logical operation
// or per owning object.
type TimeSource struct {
	clock  Clock
	frozen bool
	pinned time.Time
}

// NewTimeSource wraps a clock. A nil clock falls back to the system clock.
func NewTimeSource(c Clock) *TimeSource {
	if c == nil {
		c = &DefaultClock{}
	}

	return &TimeSource{
		clock: c,
	}
}

// Now returns the pinned instant while frozen, else the wrapped clock's time
func (t *TimeSource) Now() time.Time {
	if t.frozen {
		return t.pinned
	}
	return t.clock.Now()
}

// IsFrozen reports whether Now is currently pinned
func (t *TimeSource) IsFrozen() bool {
	return t.frozen
}

// Freeze pins the current instant
func (t *TimeSource) Freeze() error {
	if t.frozen {
		return ErrAlreadyFrozen
	}

	t.pinned = t.clock.Now()
	t.frozen = true
	return nil
}

// Unfreeze resumes live time
func (t *TimeSource) Unfreeze() error {
	if !t.frozen {
		return ErrNotFrozen
	}

	t.frozen = false
	t.pinned = time.Time{}
	return nil
}

// Frozen runs fn with the source frozen and unfreezes afterwards, even when
// fn fails.
func (t *TimeSource) Frozen(fn func() error) error {
	if err := t.Freeze(); err != nil {
		return err
	}

	err := fn()
	if unfreezeErr := t.Unfreeze(); err == nil {
		err = unfreezeErr
	}
	return err
}
