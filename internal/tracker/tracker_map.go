package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/sideline/internal/common/apperr"
	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/models"
)

// Substitution pairs the player coming on with the player going off
type Substitution struct {
	InID  string
	OutID string
}

// Map tracks playing time for a whole roster.
//
// Every roster-wide transition runs with the time source frozen so all
// trackers observe one instant. While the clock is running every tracker's
// shift timer is running; while it is stopped none are.
type Map struct {
	source *clock.TimeSource

	id           string
	clockRunning bool
	trackers     []*Tracker
	index        map[string]*Tracker
}

// NewMap creates an empty map. A nil source reads the system clock.
func NewMap(id string, source *clock.TimeSource) *Map {
	if source == nil {
		source = clock.NewTimeSource(nil)
	}

	return &Map{
		source: source,
		id:     id,
		index:  make(map[string]*Tracker),
	}
}

// ID returns the map's identifier
func (m *Map) ID() string {
	return m.id
}

// ClockRunning returns true while the match clock is running
func (m *Map) ClockRunning() bool {
	return m.clockRunning
}

// IsEmpty returns true if the map has not been initialized
func (m *Map) IsEmpty() bool {
	return len(m.trackers) == 0
}

// Len returns the number of tracked players
func (m *Map) Len() int {
	return len(m.trackers)
}

// Tracker looks up a tracker by player ID.
// The returned tracker must be treated as read-only.
func (m *Map) Tracker(id string) (*Tracker, bool) {
	t, ok := m.index[id]
	return t, ok
}

// Trackers returns the trackers in roster order.
// The returned trackers must be treated as read-only.
func (m *Map) Trackers() []*Tracker {
	out := make([]*Tracker, len(m.trackers))
	copy(out, m.trackers)
	return out
}

// Snapshots captures every tracker at one frozen instant
func (m *Map) Snapshots() ([]Snapshot, error) {
	snapshots := make([]Snapshot, 0, len(m.trackers))
	err := m.source.Frozen(func() error {
		for _, t := range m.trackers {
			snapshots = append(snapshots, t.Snapshot())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Initialize builds one tracker per player. Players with status on start on
// the field. Any existing trackers are discarded and the clock is stopped.
func (m *Map) Initialize(players []*models.Player) error {
	if len(players) == 0 {
		return ErrNoPlayers
	}

	trackers := make([]*Tracker, 0, len(players))
	index := make(map[string]*Tracker, len(players))
	for _, p := range players {
		if p == nil || p.ID == "" {
			return apperr.New(apperr.InvalidArgument, "player ID must be provided")
		}
		if _, exists := index[p.ID]; exists {
			return apperr.Newf(apperr.InvalidArgument, "duplicate player: %s", p.ID)
		}

		t := NewTracker(p.ID, p.Status.IsOn(), m.source)
		trackers = append(trackers, t)
		index[p.ID] = t
	}

	m.trackers = trackers
	m.index = index
	m.clockRunning = false
	return nil
}

// Reset discards every tracker
func (m *Map) Reset() {
	m.trackers = nil
	m.index = make(map[string]*Tracker)
	m.clockRunning = false
}

// StartShiftTimers starts every tracker's shift at one instant
func (m *Map) StartShiftTimers() error {
	if m.IsEmpty() {
		return ErrMapEmpty
	}

	return m.source.Frozen(func() error {
		for _, t := range m.trackers {
			t.StartShift()
		}
		m.clockRunning = true
		return nil
	})
}

// StopShiftTimers stops every tracker's shift at one instant
func (m *Map) StopShiftTimers() error {
	if m.IsEmpty() {
		return ErrMapEmpty
	}

	return m.source.Frozen(func() error {
		for _, t := range m.trackers {
			t.StopShift()
		}
		m.clockRunning = false
		return nil
	})
}

// SubstitutePlayer brings inID on for outID.
// The outgoing shift is committed to its total before both trackers flip
// state, and if the clock is running both new shifts start at the same
// instant the old ones stopped.
func (m *Map) SubstitutePlayer(inID, outID string) error {
	return m.SubstitutePlayers([]Substitution{{InID: inID, OutID: outID}})
}

// SubstitutePlayers applies several substitutions in order under one freeze,
// so every restarted timer shares the same start time. Pairs are checked
// against the state left by earlier pairs; if any pair is invalid nothing is
// applied.
func (m *Map) SubstitutePlayers(subs []Substitution) error {
	if m.IsEmpty() {
		return ErrMapEmpty
	}
	if err := m.checkSubstitutions(subs); err != nil {
		return err
	}

	apply := func() error {
		for _, sub := range subs {
			m.substitute(m.index[sub.InID], m.index[sub.OutID])
		}
		return nil
	}
	if !m.clockRunning {
		return apply()
	}
	return m.source.Frozen(apply)
}

// TotalShiftTimers commits every on-field shift to its tracker's total and
// starts fresh shifts. Used at period boundaries.
func (m *Map) TotalShiftTimers() error {
	if m.IsEmpty() {
		return ErrMapEmpty
	}

	total := func() error {
		for _, t := range m.trackers {
			t.StopShift()
			t.AddShiftToTotal()
			t.ResetShiftTimes()
			if m.clockRunning {
				t.StartShift()
			}
		}
		return nil
	}
	if !m.clockRunning {
		return total()
	}
	return m.source.Frozen(total)
}

// Bind attaches the time source a deserialized map reads from
func (m *Map) Bind(source *clock.TimeSource) {
	m.source = source
	for _, t := range m.trackers {
		t.Bind(source)
	}
}

// substitute runs the ordered transition: stop, commit total, flip, reset,
// restart if the clock is running.
func (m *Map) substitute(in, out *Tracker) {
	in.StopShift()
	out.StopShift()

	out.AddShiftToTotal()

	in.setOn(true)
	out.setOn(false)

	in.ResetShiftTimes()
	out.ResetShiftTimes()

	if m.clockRunning {
		in.StartShift()
		out.StartShift()
	}
}

func (m *Map) checkSubstitutions(subs []Substitution) error {
	// simulated on/off state so later pairs see the effect of earlier ones
	on := make(map[string]bool, len(subs)*2)
	state := func(id string) bool {
		if v, ok := on[id]; ok {
			return v
		}
		return m.index[id].on
	}

	for _, sub := range subs {
		in, inOK := m.index[sub.InID]
		out, outOK := m.index[sub.OutID]
		if !inOK || !outOK {
			return apperr.Wrap(apperr.InvalidState, ErrUnknownPlayer,
				fmt.Sprintf("cannot substitute unknown player: in=%s out=%s", debugString(in), debugString(out)))
		}
		if sub.InID == sub.OutID || state(sub.InID) || !state(sub.OutID) {
			return apperr.Wrap(apperr.InvalidState, ErrInvalidSubstitution,
				fmt.Sprintf("cannot substitute: in=%s out=%s", debugState(in, state(sub.InID)), debugState(out, state(sub.OutID))))
		}

		on[sub.InID] = true
		on[sub.OutID] = false
	}
	return nil
}

func debugState(t *Tracker, on bool) string {
	return fmt.Sprintf(`{"id":%q,"isOn":%t}`, t.id, on)
}

type mapJSON struct {
	ID           string     `json:"id"`
	ClockRunning bool       `json:"clockRunning"`
	Trackers     []*Tracker `json:"trackers"`
}

// MarshalJSON writes {id, clockRunning, trackers}; the time source is not serialized
func (m *Map) MarshalJSON() ([]byte, error) {
	trackers := m.trackers
	if trackers == nil {
		trackers = []*Tracker{}
	}

	return json.Marshal(mapJSON{
		ID:           m.id,
		ClockRunning: m.clockRunning,
		Trackers:     trackers,
	})
}

// UnmarshalJSON restores a map. Call Bind before using it.
func (m *Map) UnmarshalJSON(data []byte) error {
	var raw mapJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	index := make(map[string]*Tracker, len(raw.Trackers))
	for _, t := range raw.Trackers {
		if t == nil {
			return apperr.New(apperr.InvalidArgument, "tracker cannot be null")
		}
		if _, exists := index[t.id]; exists {
			return apperr.Newf(apperr.InvalidArgument, "duplicate tracker: %s", t.id)
		}
		index[t.id] = t
	}

	m.id = raw.ID
	m.clockRunning = raw.ClockRunning
	m.trackers = raw.Trackers
	if len(m.trackers) == 0 {
		m.trackers = nil
	}
	m.index = index
	return nil
}

// ParseMap decodes a map and binds it to source
func ParseMap(data []byte, source *clock.TimeSource) (*Map, error) {
	m := &Map{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tracker map: %w", err)
	}

	if source == nil {
		source = clock.NewTimeSource(nil)
	}
	m.Bind(source)
	return m, nil
}
