package events

import (
	"time"

	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/common/uuid"
)

// EventType identifies what happened in a match
type EventType string

const (
	// EventTypeMatchCreated is recorded when live tracking begins
	EventTypeMatchCreated EventType = "match_created"

	// EventTypeClockStarted is recorded when the match clock starts
	EventTypeClockStarted EventType = "clock_started"

	// EventTypeClockStopped is recorded when the match clock stops
	EventTypeClockStopped EventType = "clock_stopped"

	// EventTypeSubIn is recorded for the player entering in a substitution
	EventTypeSubIn EventType = "sub_in"

	// EventTypeSubOut is recorded for the player leaving in a substitution
	EventTypeSubOut EventType = "sub_out"

	// EventTypeSwap is recorded when an on-field player changes position
	EventTypeSwap EventType = "swap"

	// EventTypePeriodEnded is recorded at a period boundary
	EventTypePeriodEnded EventType = "period_ended"

	// EventTypeMatchEnded is recorded when the match is completed
	EventTypeMatchEnded EventType = "match_ended"
)

// GameEvent is one entry in a match's event log
type GameEvent struct {
	// ID is assigned when the event is recorded
	ID string `json:"id"`

	// Type is what happened
	Type EventType `json:"type"`

	// Timestamp is epoch milliseconds, assigned once when the event is recorded
	Timestamp int64 `json:"timestamp"`

	// PlayerID is the player the event concerns, if any
	PlayerID string `json:"playerId,omitempty"`

	// GroupID links events recorded together, e.g. a sub_in and its sub_out
	GroupID string `json:"groupId,omitempty"`

	// Data carries event-specific details. It is stored in decoded JSON form,
	// so numbers read back as float64.
	Data map[string]any `json:"data"`
}

// Time returns the timestamp as a time.Time
func (e GameEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

func (e GameEvent) clone() GameEvent {
	if e.Data != nil {
		e.Data = cloneValue(e.Data).(map[string]any)
	}
	return e
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = cloneValue(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = cloneValue(elem)
		}
		return out
	default:
		return v
	}
}

// Config holds configuration for an event collection
type Config struct {
	// ID identifies the collection, usually the match ID
	ID string

	// Clock supplies event timestamps; defaults to the system clock
	Clock clock.Clock

	// UUIDGenerator supplies event and group IDs; defaults to random UUIDs
	UUIDGenerator uuid.UUID
}
