package match

import (
	"log/slog"

	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/common/uuid"
	"github.com/KirkDiggler/sideline/internal/events"
	"github.com/KirkDiggler/sideline/internal/lineup"
	"github.com/KirkDiggler/sideline/internal/models"
	matchRepo "github.com/KirkDiggler/sideline/internal/repositories/match"
	playtimeRepo "github.com/KirkDiggler/sideline/internal/repositories/playtime"
	"github.com/KirkDiggler/sideline/internal/tracker"
)

// Config holds configuration for the match service
type Config struct {
	// Repository dependencies
	MatchRepo    matchRepo.Repository
	PlaytimeRepo playtimeRepo.Repository

	// Notifier receives committed operations. Defaults to NoopNotifier.
	Notifier Notifier

	// Clock defaults to the system clock
	Clock clock.Clock

	UUIDGenerator uuid.UUID

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// CreateMatchInput contains parameters for creating a match
type CreateMatchInput struct {
	// Game is the roster, formation and starting positions. An empty ID is
	// replaced with a generated one.
	Game *models.Game
}

// CreateMatchOutput contains the result of creating a match
type CreateMatchOutput struct {
	MatchID string `json:"matchId,omitempty"`

	// Valid is false when the starting lineup was rejected; nothing was saved
	Valid  bool           `json:"valid"`
	Issues []lineup.Issue `json:"issues,omitempty"`
}

// StartClockInput contains parameters for starting the match clock
type StartClockInput struct {
	MatchID string
}

// StartClockOutput contains the recorded clock_started event
type StartClockOutput struct {
	Event events.GameEvent `json:"event"`
}

// StopClockInput contains parameters for stopping the match clock
type StopClockInput struct {
	MatchID string
}

// StopClockOutput contains the recorded clock_stopped event
type StopClockOutput struct {
	Event events.GameEvent `json:"event"`
}

// ApplyChangesInput contains a batch of lineup changes
type ApplyChangesInput struct {
	MatchID string
	Changes []lineup.PendingChange
}

// ApplyChangesOutput contains the result of applying a batch
type ApplyChangesOutput struct {
	// Applied is false when the batch was rejected; nothing was changed
	Applied bool           `json:"applied"`
	Issues  []lineup.Issue `json:"issues,omitempty"`

	// Events are the recorded sub_in, sub_out and swap events in order
	Events []events.GameEvent `json:"events,omitempty"`
}

// EndPeriodInput contains parameters for ending a period
type EndPeriodInput struct {
	MatchID string
}

// EndPeriodOutput contains the totals at the end of the period
type EndPeriodOutput struct {
	// Period is the period that is now current
	Period  int                `json:"period"`
	Players []tracker.Snapshot `json:"players"`
}

// EndMatchInput contains parameters for ending a match
type EndMatchInput struct {
	MatchID string
}

// EndMatchOutput contains the ledger records written for the match
type EndMatchOutput struct {
	Records []*models.PlaytimeRecord `json:"records"`
}

// GetMatchInput contains parameters for retrieving a match
type GetMatchInput struct {
	MatchID string
}

// GetMatchOutput contains the current state of a match
type GetMatchOutput struct {
	Game         *models.Game       `json:"game"`
	ClockRunning bool               `json:"clockRunning"`
	Players      []tracker.Snapshot `json:"players"`
	Events       []events.GameEvent `json:"events"`
}

// ResetMatchInput contains parameters for resetting a match
type ResetMatchInput struct {
	MatchID string
}

// ResetMatchOutput is returned when a match is reset
type ResetMatchOutput struct {
}

// GetPlayerPlaytimeInput contains parameters for reading a player's ledger
type GetPlayerPlaytimeInput struct {
	PlayerID string
}

// GetPlayerPlaytimeOutput contains a player's playing time across matches
type GetPlayerPlaytimeOutput struct {
	Stats   *models.PlayerPlaytimeStats `json:"stats"`
	Records []*models.PlaytimeRecord    `json:"records"`
}
