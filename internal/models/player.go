package models

// PlayerStatus represents where a rostered player currently stands
type PlayerStatus string

const (
	// PlayerStatusOn indicates the player is on the field
	PlayerStatusOn PlayerStatus = "on"

	// PlayerStatusOff indicates the player is on the bench
	PlayerStatusOff PlayerStatus = "off"

	// PlayerStatusNext indicates the player is queued for a pending substitution
	PlayerStatusNext PlayerStatus = "next"

	// PlayerStatusOut indicates the player is unavailable for the match
	PlayerStatusOut PlayerStatus = "out"
)

// IsOn returns true if the player is on the field
func (s PlayerStatus) IsOn() bool {
	return s == PlayerStatusOn
}

// Player represents a rostered player in a match
type Player struct {
	// ID is the unique identifier for the player
	ID string `json:"id"`

	// Name is the display name of the player
	Name string `json:"name,omitempty"`

	// Status is where the player currently stands
	Status PlayerStatus `json:"status"`

	// CurrentPosition is the position the player fills while on the field
	CurrentPosition *Position `json:"currentPosition,omitempty"`
}

// DisplayName returns the name, falling back to the ID
func (p *Player) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
