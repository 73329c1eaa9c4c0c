package match

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/sideline/internal/services/match Notifier

import (
	"context"
	"time"

	"github.com/KirkDiggler/sideline/internal/timing"
)

// NotificationKind identifies the committed operation a notification reports
type NotificationKind string

const (
	NotificationClockStarted   NotificationKind = "clock_started"
	NotificationClockStopped   NotificationKind = "clock_stopped"
	NotificationChangesApplied NotificationKind = "changes_applied"
	NotificationPeriodEnded    NotificationKind = "period_ended"
	NotificationMatchEnded     NotificationKind = "match_ended"
)

// Notifier broadcasts committed match operations
type Notifier interface {
	Notify(ctx context.Context, n *Notification) error
}

// Notification summarizes one committed operation
type Notification struct {
	Kind      NotificationKind
	MatchID   string
	MatchName string
	Period    int
	Timestamp time.Time

	// Substitutions and Swaps are set for changes_applied
	Substitutions []SubstitutionSummary
	Swaps         []SwapSummary

	// Players is set for period_ended and match_ended
	Players []PlayerSummary
}

// SubstitutionSummary describes one committed substitution
type SubstitutionSummary struct {
	InName     string
	OutName    string
	PositionID string
}

// SwapSummary describes one committed position change
type SwapSummary struct {
	Name           string
	FromPositionID string
	ToPositionID   string
}

// PlayerSummary is a player's playing time at the end of a period or match
type PlayerSummary struct {
	Name      string
	IsOn      bool
	Shifts    int
	TotalTime timing.Duration
}

// NoopNotifier drops every notification
type NoopNotifier struct{}

// Notify implements Notifier
func (NoopNotifier) Notify(context.Context, *Notification) error {
	return nil
}
