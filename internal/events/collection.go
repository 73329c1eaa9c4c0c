// Package events keeps the append-only, timestamped log of what happened in a
// match. Events are copied in and out; the collection owns its entries.
package events

import (
	"encoding/json"
	"fmt"
	"iter"

	"github.com/KirkDiggler/sideline/internal/common/apperr"
	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/common/uuid"
)

// Collection is an ordered event log
type Collection struct {
	clock clock.Clock
	ids   uuid.UUID

	id     string
	events []GameEvent
	index  map[string]int
}

// New creates an empty collection
func New(cfg *Config) (*Collection, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.ID == "" {
		return nil, ErrMissingID
	}

	c := &Collection{
		id:    cfg.ID,
		index: make(map[string]int),
	}
	c.Bind(cfg.Clock, cfg.UUIDGenerator)
	return c, nil
}

// Bind attaches the clock and ID generator a deserialized collection uses.
// Nil arguments fall back to the system clock and random UUIDs.
func (c *Collection) Bind(clk clock.Clock, ids uuid.UUID) {
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	if ids == nil {
		ids = uuid.New()
	}

	c.clock = clk
	c.ids = ids
}

// ID returns the collection's identifier
func (c *Collection) ID() string {
	return c.id
}

// Len returns the number of recorded events
func (c *Collection) Len() int {
	return len(c.events)
}

// AddEvent records a copy of e with a new ID and the current timestamp.
// The caller's event is not modified.
func (c *Collection) AddEvent(e GameEvent) (GameEvent, error) {
	data, err := normalizeData(e.Data)
	if err != nil {
		return GameEvent{}, err
	}

	id := c.ids.NewUUID()
	if _, exists := c.index[id]; exists {
		return GameEvent{}, ErrDuplicateEventID
	}

	stored := e
	stored.Data = data
	stored.ID = id
	stored.Timestamp = c.clock.Now().UnixMilli()

	c.append(stored)
	return stored.clone(), nil
}

// AddEventGroup records events that happened together. They share one
// group ID and one timestamp, read once, and each gets its own ID.
func (c *Collection) AddEventGroup(group []GameEvent) ([]GameEvent, error) {
	if len(group) == 0 {
		return nil, nil
	}

	data := make([]map[string]any, len(group))
	for i, e := range group {
		normalized, err := normalizeData(e.Data)
		if err != nil {
			return nil, err
		}
		data[i] = normalized
	}

	groupID := c.ids.NewUUID()
	timestamp := c.clock.Now().UnixMilli()

	stored := make([]GameEvent, 0, len(group))
	seen := make(map[string]struct{}, len(group))
	for i, e := range group {
		id := c.ids.NewUUID()
		if _, exists := c.index[id]; exists {
			return nil, ErrDuplicateEventID
		}
		if _, exists := seen[id]; exists {
			return nil, ErrDuplicateEventID
		}
		seen[id] = struct{}{}

		s := e
		s.Data = data[i]
		s.ID = id
		s.GroupID = groupID
		s.Timestamp = timestamp
		stored = append(stored, s)
	}

	out := make([]GameEvent, 0, len(stored))
	for _, s := range stored {
		c.append(s)
		out = append(out, s.clone())
	}
	return out, nil
}

// Get returns a copy of the event with the given ID
func (c *Collection) Get(id string) (GameEvent, bool) {
	i, ok := c.index[id]
	if !ok {
		return GameEvent{}, false
	}
	return c.events[i].clone(), true
}

// Events returns copies of all events in insertion order
func (c *Collection) Events() []GameEvent {
	out := make([]GameEvent, 0, len(c.events))
	for _, e := range c.events {
		out = append(out, e.clone())
	}
	return out
}

// All iterates over copies of the events in insertion order
func (c *Collection) All() iter.Seq[GameEvent] {
	return func(yield func(GameEvent) bool) {
		for _, e := range c.events {
			if !yield(e.clone()) {
				return
			}
		}
	}
}

// Group returns the events sharing a group ID, in insertion order
func (c *Collection) Group(groupID string) []GameEvent {
	if groupID == "" {
		return nil
	}

	var out []GameEvent
	for _, e := range c.events {
		if e.GroupID == groupID {
			out = append(out, e.clone())
		}
	}
	return out
}

// normalizeData converts data to the form it decodes back to from JSON
func normalizeData(data map[string]any) (map[string]any, error) {
	if data == nil {
		return nil, nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidArgument, err, "event data must be JSON encodable")
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apperr.Wrap(apperr.InvalidArgument, err, "event data must be JSON encodable")
	}
	return out, nil
}

func (c *Collection) append(e GameEvent) {
	c.index[e.ID] = len(c.events)
	c.events = append(c.events, e)
}

type collectionJSON struct {
	ID     string      `json:"id"`
	Events []GameEvent `json:"events"`
}

// MarshalJSON writes {id, events}; the clock and ID generator are not serialized
func (c *Collection) MarshalJSON() ([]byte, error) {
	evts := c.events
	if evts == nil {
		evts = []GameEvent{}
	}
	return json.Marshal(collectionJSON{ID: c.id, Events: evts})
}

// UnmarshalJSON restores a collection. Call Bind before adding events.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw collectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.ID == "" {
		return ErrMissingID
	}

	index := make(map[string]int, len(raw.Events))
	for i, e := range raw.Events {
		if _, exists := index[e.ID]; exists {
			return apperr.Newf(apperr.InvalidArgument, "duplicate event id: %s", e.ID)
		}
		index[e.ID] = i
	}

	c.id = raw.ID
	c.events = raw.Events
	if len(c.events) == 0 {
		c.events = nil
	}
	c.index = index
	return nil
}

// Parse decodes a collection and binds it
func Parse(data []byte, clk clock.Clock, ids uuid.UUID) (*Collection, error) {
	c := &Collection{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event collection: %w", err)
	}

	c.Bind(clk, ids)
	return c, nil
}
