package lineup

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/sideline/internal/models"
)

// ChangeKind discriminates pending changes
type ChangeKind string

const (
	// ChangeSubstitution brings a bench player on in place of an on-field player
	ChangeSubstitution ChangeKind = "substitution"

	// ChangeSwap moves an on-field player to another position
	ChangeSwap ChangeKind = "swap"
)

// swapPrefix marks placeholder IDs some clients send for in-place moves
const swapPrefix = "swap:"

// PendingChange is a proposed, uncommitted lineup change
type PendingChange struct {
	// Kind is substitution or swap
	Kind ChangeKind `json:"kind"`

	// PlayerID is the incoming player for a substitution, the moving player for a swap
	PlayerID string `json:"playerId"`

	// ReplacedID is the on-field player leaving, for substitutions only
	ReplacedID string `json:"replacedId,omitempty"`

	// Position is the destination. Optional for substitutions, where it
	// defaults to the replaced player's position.
	Position *models.Position `json:"position,omitempty"`
}

// SwapPlaceholderID returns the placeholder ID used for an in-place move
func SwapPlaceholderID(playerID string) string {
	return swapPrefix + playerID
}

// NormalizePlayerID strips a swap placeholder prefix
func NormalizePlayerID(id string) string {
	return strings.TrimPrefix(id, swapPrefix)
}

// Step is a validated change with its positions resolved
type Step struct {
	Kind ChangeKind

	// PlayerID is the incoming or moving player
	PlayerID string

	// ReplacedID is the outgoing player, substitutions only
	ReplacedID string

	FromPositionID string
	ToPositionID   string
}

// Result maps a position or player ID to the reason it is invalid.
// An empty result means the lineup is valid.
type Result map[string]string

// Issue is one entry of a Result
type Issue struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Valid returns true if there are no issues
func (r Result) Valid() bool {
	return len(r) == 0
}

// Issues returns the entries sorted by key
func (r Result) Issues() []Issue {
	issues := make([]Issue, 0, len(r))
	for k, v := range r {
		issues = append(issues, Issue{Key: k, Reason: v})
	}
	sort.Slice(issues, func(i, j int) bool {
		return issues[i].Key < issues[j].Key
	})
	return issues
}

// add keeps the first reason reported for a key
func (r Result) add(key, reason string) {
	if _, exists := r[key]; exists {
		return
	}
	r[key] = reason
}

func (r Result) merge(other Result) {
	for k, v := range other {
		r.add(k, v)
	}
}
