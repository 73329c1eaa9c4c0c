package clock

import "github.com/KirkDiggler/sideline/internal/common/apperr"

var (
	ErrAlreadyFrozen = apperr.New(apperr.InvalidState, "time source is already frozen")
	ErrNotFrozen     = apperr.New(apperr.InvalidState, "time source is not frozen")
)
