package match

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sideline/internal/repositories/match Repository

import (
	"context"
)

// Repository defines the interface for live match persistence
type Repository interface {
	// SaveMatch persists a match's game, tracker map and event log together
	SaveMatch(ctx context.Context, input *SaveMatchInput) error

	// GetMatch retrieves a match by ID
	GetMatch(ctx context.Context, input *GetMatchInput) (*GetMatchOutput, error)

	// DeleteMatch removes a match
	DeleteMatch(ctx context.Context, input *DeleteMatchInput) error

	// GetActiveMatches retrieves the IDs of all live matches
	GetActiveMatches(ctx context.Context, input *GetActiveMatchesInput) (*GetActiveMatchesOutput, error)
}
