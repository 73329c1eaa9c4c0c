package playtime

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/sideline/internal/repositories/playtime Repository

import (
	"context"
)

// Repository defines the interface for the cross-match playing time ledger
type Repository interface {
	// AddRecords adds one match's records to the ledger and updates player stats
	AddRecords(ctx context.Context, input *AddRecordsInput) error

	// GetRecordsForMatch retrieves all records written for a match
	GetRecordsForMatch(ctx context.Context, input *GetRecordsForMatchInput) (*GetRecordsForMatchOutput, error)

	// GetRecordsForPlayer retrieves all records for a player, oldest first
	GetRecordsForPlayer(ctx context.Context, input *GetRecordsForPlayerInput) (*GetRecordsForPlayerOutput, error)

	// GetPlayerStats retrieves a player's totals across matches
	GetPlayerStats(ctx context.Context, input *GetPlayerStatsInput) (*GetPlayerStatsOutput, error)
}
