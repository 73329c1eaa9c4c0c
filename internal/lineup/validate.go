// Package lineup checks proposed substitutions and position swaps against a
// formation before they are committed.
//
// Validation is all or nothing: a batch with any issue must not be applied.
// Changes are resolved in input order against a working copy of the on-field
// positions, so a later change sees the effect of earlier ones (chained swaps,
// subbing off a player who only just came on).
package lineup

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/sideline/internal/models"
)

// ValidateStarters checks the roster as it stands
func ValidateStarters(game *models.Game) Result {
	if result := checkFormation(game); !result.Valid() {
		return result
	}
	return ValidateFilledPositions(game.Formation, NewFilledPositionMap(game.Roster))
}

// ValidatePendingSubs checks a batch of changes against the roster and formation
func ValidatePendingSubs(game *models.Game, changes []PendingChange) Result {
	_, result := Resolve(game, changes)
	return result
}

// Resolve validates a batch and returns the resolved steps when it is valid
func Resolve(game *models.Game, changes []PendingChange) ([]Step, Result) {
	result := checkFormation(game)
	if !result.Valid() {
		return nil, result
	}

	working := NewFilledPositionMap(game.Roster)
	replacedBy := make(map[string]string)
	steps := make([]Step, 0, len(changes))

	for i, change := range changes {
		var (
			step   Step
			key    string
			reason string
		)
		switch change.Kind {
		case ChangeSubstitution:
			step, key, reason = resolveSubstitution(game, working, replacedBy, change)
		case ChangeSwap:
			step, key, reason = resolveSwap(game, working, change)
		default:
			key = changeKey(i, change)
			reason = fmt.Sprintf("unknown change kind: %q", change.Kind)
		}
		if reason != "" {
			if key == "" {
				key = changeKey(i, change)
			}
			result.add(key, reason)
			continue
		}

		working.RemovePlayer(step.FromPositionID, outgoing(step))
		working.AddPlayer(step.ToPositionID, step.PlayerID)
		steps = append(steps, step)
	}

	result.merge(ValidateFilledPositions(game.Formation, working))
	if !result.Valid() {
		return nil, result
	}
	return steps, result
}

// ValidateFilledPositions checks that every required position has exactly one
// occupant and that every on-field player fills a position in the formation.
func ValidateFilledPositions(formation *models.Formation, filled *FilledPositionMap) Result {
	result := Result{}

	required := make(map[string]struct{})
	for _, id := range formation.RequiredPositionIDs() {
		required[id] = struct{}{}

		occupants := filled.Occupants(id)
		switch {
		case len(occupants) == 0:
			result.add(id, "no player in position")
		case len(occupants) > 1:
			result.add(id, "too many players in position: "+strings.Join(occupants, ", "))
		}
	}

	for _, playerID := range filled.UnpositionedPlayers() {
		result.add(playerID, "player on field without a position: "+playerID)
	}

	for _, positionID := range filled.PositionIDs() {
		if _, ok := required[positionID]; ok {
			continue
		}
		for _, playerID := range filled.Occupants(positionID) {
			result.add(playerID, "position not in formation: "+positionID)
		}
	}
	return result
}

func resolveSubstitution(game *models.Game, working *FilledPositionMap, replacedBy map[string]string, change PendingChange) (Step, string, string) {
	incoming := NormalizePlayerID(change.PlayerID)
	replaced := NormalizePlayerID(change.ReplacedID)
	if incoming == "" {
		return Step{}, replaced, "substitution has no incoming player"
	}

	player, ok := game.Player(incoming)
	if !ok {
		return Step{}, incoming, "player not found: " + incoming
	}
	if player.Status == models.PlayerStatusOut {
		return Step{}, incoming, "player unavailable: " + incoming
	}
	if _, onField := working.PositionOf(incoming); onField {
		return Step{}, incoming, "player already on field: " + incoming
	}
	if prev, exists := replacedBy[replaced]; exists && prev != incoming {
		return Step{}, incoming, "two subs for player: " + replaced
	}

	from, found := working.PositionOf(replaced)
	if !found {
		return Step{}, incoming, "replaced player not found: " + replaced
	}

	to := from
	if change.Position != nil {
		if !game.Formation.HasPosition(change.Position.ID) {
			return Step{}, incoming, "invalid position: " + change.Position.ID
		}
		to = change.Position.ID
	}

	replacedBy[replaced] = incoming
	return Step{
		Kind:           ChangeSubstitution,
		PlayerID:       incoming,
		ReplacedID:     replaced,
		FromPositionID: from,
		ToPositionID:   to,
	}, "", ""
}

func resolveSwap(game *models.Game, working *FilledPositionMap, change PendingChange) (Step, string, string) {
	mover := NormalizePlayerID(change.PlayerID)
	if mover == "" {
		return Step{}, "", "swap has no player"
	}
	if change.Position == nil || !game.Formation.HasPosition(change.Position.ID) {
		id := ""
		if change.Position != nil {
			id = change.Position.ID
		}
		return Step{}, mover, "invalid position: " + id
	}

	from, found := working.PositionOf(mover)
	if !found {
		return Step{}, mover, "player not on field: " + mover
	}

	return Step{
		Kind:           ChangeSwap,
		PlayerID:       mover,
		FromPositionID: from,
		ToPositionID:   change.Position.ID,
	}, "", ""
}

func checkFormation(game *models.Game) Result {
	result := Result{}
	if game == nil {
		result.add("game", "game is required")
		return result
	}
	if game.Formation == nil || len(game.Formation.Positions) == 0 {
		result.add("formation", "formation has no positions")
	}
	return result
}

func outgoing(step Step) string {
	if step.Kind == ChangeSubstitution {
		return step.ReplacedID
	}
	return step.PlayerID
}

func changeKey(i int, change PendingChange) string {
	if change.PlayerID != "" {
		return NormalizePlayerID(change.PlayerID)
	}
	return fmt.Sprintf("change-%d", i)
}
