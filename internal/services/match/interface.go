package match

import "context"

// Service defines the interface for live match operations
type Service interface {
	// CreateMatch validates the starting lineup and begins tracking a match
	CreateMatch(ctx context.Context, input *CreateMatchInput) (*CreateMatchOutput, error)

	// StartClock starts the match clock and every player's shift
	StartClock(ctx context.Context, input *StartClockInput) (*StartClockOutput, error)

	// StopClock stops the match clock and every player's shift
	StopClock(ctx context.Context, input *StopClockInput) (*StopClockOutput, error)

	// ApplyChanges validates and commits a batch of substitutions and swaps
	ApplyChanges(ctx context.Context, input *ApplyChangesInput) (*ApplyChangesOutput, error)

	// EndPeriod totals the period's shifts and moves to the next period
	EndPeriod(ctx context.Context, input *EndPeriodInput) (*EndPeriodOutput, error)

	// EndMatch completes the match and writes each player's playing time to the ledger
	EndMatch(ctx context.Context, input *EndMatchInput) (*EndMatchOutput, error)

	// GetMatch returns the current state of a match
	GetMatch(ctx context.Context, input *GetMatchInput) (*GetMatchOutput, error)

	// ResetMatch discards a match's live state
	ResetMatch(ctx context.Context, input *ResetMatchInput) (*ResetMatchOutput, error)

	// GetPlayerPlaytime returns a player's ledger totals and per-match records
	GetPlayerPlaytime(ctx context.Context, input *GetPlayerPlaytimeInput) (*GetPlayerPlaytimeOutput, error)
}
