package tracker

import (
	"errors"

	"github.com/KirkDiggler/sideline/internal/common/apperr"
)

var (
	ErrNoPlayers = apperr.New(apperr.InvalidArgument, "Players must be provided to initialize")
	ErrMapEmpty  = apperr.New(apperr.InvalidState, "Map is empty")

	// ErrUnknownPlayer is the cause attached when a substitution names a player the map does not track
	ErrUnknownPlayer = errors.New("player is not tracked")

	// ErrInvalidSubstitution is the cause attached when a player is already in the target state
	ErrInvalidSubstitution = errors.New("player already in target state")
)
