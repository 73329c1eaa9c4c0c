package match

import (
	"github.com/KirkDiggler/sideline/internal/common/clock"
	"github.com/KirkDiggler/sideline/internal/common/uuid"
	"github.com/KirkDiggler/sideline/internal/events"
	"github.com/KirkDiggler/sideline/internal/models"
	"github.com/KirkDiggler/sideline/internal/tracker"
)

type SaveMatchInput struct {
	Game     *models.Game
	Trackers *tracker.Map
	Events   *events.Collection
}

type GetMatchInput struct {
	MatchID string

	// TimeSource is bound to the loaded tracker map and event log
	TimeSource *clock.TimeSource

	// UUIDGenerator is bound to the loaded event log
	UUIDGenerator uuid.UUID
}

type GetMatchOutput struct {
	Game     *models.Game
	Trackers *tracker.Map
	Events   *events.Collection
}

type DeleteMatchInput struct {
	MatchID string
}

type GetActiveMatchesInput struct {
}

type GetActiveMatchesOutput struct {
	MatchIDs []string
}
