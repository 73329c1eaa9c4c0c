package lineup

import (
	"fmt"

	"github.com/KirkDiggler/sideline/internal/models"
)

// ApplyToRoster commits resolved steps to the game's roster in order.
// Steps must come from Resolve on the same roster.
func ApplyToRoster(game *models.Game, steps []Step) error {
	for _, step := range steps {
		player, ok := game.Player(step.PlayerID)
		if !ok {
			return fmt.Errorf("player not found: %s", step.PlayerID)
		}
		position, ok := game.Formation.Position(step.ToPositionID)
		if !ok {
			return fmt.Errorf("position not found: %s", step.ToPositionID)
		}

		if step.Kind == ChangeSubstitution {
			replaced, ok := game.Player(step.ReplacedID)
			if !ok {
				return fmt.Errorf("player not found: %s", step.ReplacedID)
			}
			replaced.Status = models.PlayerStatusOff
			replaced.CurrentPosition = nil
			player.Status = models.PlayerStatusOn
		}

		p := *position
		player.CurrentPosition = &p
	}
	return nil
}
