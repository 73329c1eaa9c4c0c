package events

import "github.com/KirkDiggler/sideline/internal/common/apperr"

var (
	ErrNilConfig        = apperr.New(apperr.InvalidArgument, "config cannot be nil")
	ErrMissingID        = apperr.New(apperr.InvalidArgument, "id must be provided")
	ErrDuplicateEventID = apperr.New(apperr.InvalidState, "event id already recorded")
)
