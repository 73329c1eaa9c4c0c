package clock

import "time"

// Manual is a Clock whose time is set by hand.
// Until SetCurrentTime is called it reports the system time.
type Manual struct {
	current *time.Time
}

// NewManual creates a manual clock starting at t
func NewManual(t time.Time) *Manual {
	m := &Manual{}
	m.SetCurrentTime(t)
	return m
}

// Now returns the manually set time, or the system time when unset
func (m *Manual) Now() time.Time {
	if m.current == nil {
		return time.Now()
	}
	return *m.current
}

// SetCurrentTime pins the clock to t
func (m *Manual) SetCurrentTime(t time.Time) {
	m.current = &t
}

// IncrementCurrentTime advances the clock by d. An unset clock starts from
// the system time.
func (m *Manual) IncrementCurrentTime(d time.Duration) {
	m.SetCurrentTime(m.Now().Add(d))
}

// Clear returns the clock to system time
func (m *Manual) Clear() {
	m.current = nil
}
