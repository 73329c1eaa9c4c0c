package models

import (
	"time"
)

// PlaytimeRecord records how long a player was on the field in one match
type PlaytimeRecord struct {
	// ID is the unique identifier for the record
	ID string `json:"id"`

	// PlayerID is the ID of the player
	PlayerID string `json:"playerId"`

	// GameID is the ID of the match the time was played in
	GameID string `json:"gameId"`

	// Seconds is the total on-field time
	Seconds int64 `json:"seconds"`

	// Shifts is the number of separate stints on the field
	Shifts int `json:"shifts"`

	// Timestamp is when the match ended and the record was written
	Timestamp time.Time `json:"timestamp"`
}

// PlayerPlaytimeStats aggregates a player's records across matches
type PlayerPlaytimeStats struct {
	// PlayerID is the ID of the player
	PlayerID string `json:"playerId"`

	// Seconds is the total on-field time across all matches
	Seconds int64 `json:"seconds"`

	// Matches is the number of matches recorded
	Matches int64 `json:"matches"`

	// Shifts is the number of stints across all matches
	Shifts int64 `json:"shifts"`
}
