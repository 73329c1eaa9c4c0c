package match

import "github.com/KirkDiggler/sideline/internal/common/apperr"

// MatchError is returned when the service is misconfigured
type MatchError string

// Error implements the error interface
func (e MatchError) Error() string {
	return string(e)
}

// Configuration errors
const (
	ErrNilConfig        MatchError = "config cannot be nil"
	ErrNilMatchRepo     MatchError = "match repository cannot be nil"
	ErrNilPlaytimeRepo  MatchError = "playtime repository cannot be nil"
	ErrNilUUIDGenerator MatchError = "UUID generator cannot be nil"
)

// Operation errors
var (
	ErrMatchNotFound  = apperr.New(apperr.NotFound, "match not found")
	ErrMatchExists    = apperr.New(apperr.InvalidState, "match already exists")
	ErrMatchCompleted = apperr.New(apperr.InvalidState, "match is completed")
	ErrClockRunning   = apperr.New(apperr.InvalidState, "clock is already running")
	ErrClockStopped   = apperr.New(apperr.InvalidState, "clock is not running")
	ErrNilGame        = apperr.New(apperr.InvalidArgument, "game must be provided")
	ErrMissingMatchID = apperr.New(apperr.InvalidArgument, "match ID must be provided")
	ErrMissingPlayer  = apperr.New(apperr.InvalidArgument, "player ID must be provided")
)
