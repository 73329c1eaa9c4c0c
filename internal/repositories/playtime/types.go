package playtime

import "github.com/KirkDiggler/sideline/internal/models"

// AddRecordsInput contains parameters for adding playtime records
type AddRecordsInput struct {
	Records []*models.PlaytimeRecord
}

// GetRecordsForMatchInput contains parameters for retrieving records for a match
type GetRecordsForMatchInput struct {
	MatchID string
}

// GetRecordsForMatchOutput contains the result of retrieving records for a match
type GetRecordsForMatchOutput struct {
	Records []*models.PlaytimeRecord
}

// GetRecordsForPlayerInput contains parameters for retrieving records for a player
type GetRecordsForPlayerInput struct {
	PlayerID string
}

// GetRecordsForPlayerOutput contains the result of retrieving records for a player
type GetRecordsForPlayerOutput struct {
	Records []*models.PlaytimeRecord
}

// GetPlayerStatsInput contains parameters for retrieving a player's totals
type GetPlayerStatsInput struct {
	PlayerID string
}

// GetPlayerStatsOutput contains a player's totals
type GetPlayerStatsOutput struct {
	Stats *models.PlayerPlaytimeStats
}
