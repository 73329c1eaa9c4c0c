package tracker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/timing"
)

// Tracker accounts for one player's time on and off the field.
//
// A tracker is either on or off, and owns at most one shift timer whose
// meaning follows that state: while on it measures the current on-field
// shift, while off the current bench shift. The shift timer is created
// lazily by StartShift and discarded by ResetShiftTimes.
type Tracker struct {
	clock clock.Clock

	id         string
	on         bool
	alreadyOn  bool
	shiftCount int
	totalTime  timing.Duration
	shift      *timing.Timer
}

// Snapshot is a read-only view of a tracker at one instant
type Snapshot struct {
	ID         string          `json:"id"`
	IsOn       bool            `json:"isOn"`
	ShiftCount int             `json:"shiftCount"`
	ShiftTime  timing.Duration `json:"shiftTime"`
	TotalTime  timing.Duration `json:"totalTime"`
	Running    bool            `json:"running"`
}

// NewTracker creates a tracker for a player that starts on or off the field
func NewTracker(id string, on bool, c clock.Clock) *Tracker {
	return &Tracker{
		clock: c,
		id:    id,
		on:    on,
	}
}

// ID returns the player ID
func (t *Tracker) ID() string {
	return t.id
}

// IsOn returns true if the player is on the field
func (t *Tracker) IsOn() bool {
	return t.on
}

// AlreadyOn returns true once the current on-field shift has been counted
func (t *Tracker) AlreadyOn() bool {
	return t.alreadyOn
}

// ShiftCount returns how many times the player has entered the field
func (t *Tracker) ShiftCount() int {
	return t.shiftCount
}

// StartShift starts the timer for the current state.
// Entering the field counts a new shift once, however often it is called.
func (t *Tracker) StartShift() {
	if t.shift == nil {
		t.shift = timing.NewTimer(t.clock)
	}
	t.shift.Start()

	if t.on && !t.alreadyOn {
		t.shiftCount++
		t.alreadyOn = true
	}
}

// StopShift stops the timer for the current state
func (t *Tracker) StopShift() {
	if t.shift == nil {
		return
	}
	t.shift.Stop()
}

// ShiftTime returns the elapsed time of the current shift
func (t *Tracker) ShiftTime() timing.Duration {
	if t.shift == nil {
		return timing.Zero()
	}
	return t.shift.Elapsed()
}

// ShiftRunning returns true if the current shift timer is running
func (t *Tracker) ShiftRunning() bool {
	return t.shift != nil && t.shift.IsRunning()
}

// ShiftStartTime returns when the running shift timer was started
func (t *Tracker) ShiftStartTime() (time.Time, bool) {
	if t.shift == nil {
		return time.Time{}, false
	}
	return t.shift.StartTime()
}

// TotalTime returns the committed on-field time plus the live shift if on
func (t *Tracker) TotalTime() timing.Duration {
	if !t.on {
		return t.totalTime
	}
	return t.totalTime.Add(t.ShiftTime())
}

// AddShiftToTotal commits the current on-field shift to the total.
// It must be followed by ResetShiftTimes so the shift is not counted twice.
func (t *Tracker) AddShiftToTotal() {
	if !t.on {
		return
	}
	t.totalTime = t.totalTime.Add(t.ShiftTime())
}

// ResetShiftTimes discards the shift timer
func (t *Tracker) ResetShiftTimes() {
	t.shift = nil
}

// Snapshot captures the tracker's current values
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		ID:         t.id,
		IsOn:       t.on,
		ShiftCount: t.shiftCount,
		ShiftTime:  t.ShiftTime(),
		TotalTime:  t.TotalTime(),
		Running:    t.ShiftRunning(),
	}
}

// Bind attaches the clock a deserialized tracker reads from
func (t *Tracker) Bind(c clock.Clock) {
	t.clock = c
	if t.shift != nil {
		t.shift.Bind(c)
	}
}

func (t *Tracker) setOn(on bool) {
	t.on = on
	if !on {
		t.alreadyOn = false
	}
}

// debugString renders the tracker for error messages
func debugString(t *Tracker) string {
	if t == nil {
		return "undefined"
	}
	return fmt.Sprintf(`{"id":%q,"isOn":%t}`, t.id, t.on)
}

type trackerJSON struct {
	ID         string          `json:"id"`
	IsOn       bool            `json:"isOn"`
	AlreadyOn  bool            `json:"alreadyOn"`
	ShiftCount int             `json:"shiftCount"`
	TotalTime  timing.Duration `json:"totalTime"`
	OnTimer    *timing.Timer   `json:"onTimer,omitempty"`
	OffTimer   *timing.Timer   `json:"offTimer,omitempty"`
}

// MarshalJSON writes the shift timer as onTimer or offTimer depending on state
func (t *Tracker) MarshalJSON() ([]byte, error) {
	raw := trackerJSON{
		ID:         t.id,
		IsOn:       t.on,
		AlreadyOn:  t.alreadyOn,
		ShiftCount: t.shiftCount,
		TotalTime:  t.totalTime,
	}
	if t.on {
		raw.OnTimer = t.shift
	} else {
		raw.OffTimer = t.shift
	}
	return json.Marshal(raw)
}

// UnmarshalJSON restores a tracker. Only the timer matching isOn is kept.
// Call Bind before using the tracker.
func (t *Tracker) UnmarshalJSON(data []byte) error {
	var raw trackerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	t.id = raw.ID
	t.on = raw.IsOn
	t.alreadyOn = raw.AlreadyOn
	t.shiftCount = raw.ShiftCount
	t.totalTime = raw.TotalTime
	t.shift = raw.OffTimer
	if raw.IsOn {
		t.shift = raw.OnTimer
	}
	return nil
}
