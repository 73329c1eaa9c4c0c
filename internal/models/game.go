package models

import (
	"time"
)

// GameStatus represents the current state of a match
type GameStatus string

const (
	// GameStatusLive indicates a match is being tracked
	GameStatusLive GameStatus = "live"

	// GameStatusCompleted indicates a match has ended
	GameStatusCompleted GameStatus = "completed"
)

// Game represents a match being tracked
type Game struct {
	// ID is the unique identifier for the match
	ID string `json:"id"`

	// Name is a display label, e.g. "U12 vs Rovers"
	Name string `json:"name,omitempty"`

	// Status is the current state of the match
	Status GameStatus `json:"status"`

	// Formation lists the positions that must be filled
	Formation *Formation `json:"formation"`

	// Roster contains every player available for the match
	Roster []*Player `json:"roster"`

	// Period is the 1-based period currently being played
	Period int `json:"period"`

	// CreatedAt is when the match was created
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the match was last updated
	UpdatedAt time.Time `json:"updatedAt"`
}

// Player looks up a rostered player by ID
func (g *Game) Player(id string) (*Player, bool) {
	for _, p := range g.Roster {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// OnPlayers returns the players currently on the field, in roster order
func (g *Game) OnPlayers() []*Player {
	var on []*Player
	for _, p := range g.Roster {
		if p.Status.IsOn() {
			on = append(on, p)
		}
	}
	return on
}
