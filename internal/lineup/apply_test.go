package lineup

import (
	"github.com/KirkDiggler/sideline/internal/models"
)

func (s *ValidateTestSuite) TestApplyToRoster() {
	steps, result := Resolve(s.game, []PendingChange{
		s.sub("P12", "P1"),
		s.swap("P12", "LB"),
		s.swap("P2", "GK"),
	})
	s.Require().True(result.Valid())

	s.Require().NoError(ApplyToRoster(s.game, steps))

	p1, _ := s.game.Player("P1")
	s.Equal(models.PlayerStatusOff, p1.Status)
	s.Nil(p1.CurrentPosition)

	p12, _ := s.game.Player("P12")
	s.Equal(models.PlayerStatusOn, p12.Status)
	s.Equal("LB", p12.CurrentPosition.ID)

	p2, _ := s.game.Player("P2")
	s.Equal("GK", p2.CurrentPosition.ID)

	s.True(ValidateStarters(s.game).Valid())
}

func (s *ValidateTestSuite) TestApplyToRosterCopiesPositions() {
	steps, result := Resolve(s.game, []PendingChange{s.sub("P12", "P5")})
	s.Require().True(result.Valid())
	s.Require().NoError(ApplyToRoster(s.game, steps))

	p12, _ := s.game.Player("P12")
	p12.CurrentPosition.Type = "changed"

	rb, _ := s.formation.Position("RB")
	s.Empty(rb.Type)
}

func (s *ValidateTestSuite) TestApplyToRosterUnknownPlayer() {
	err := ApplyToRoster(s.game, []Step{{Kind: ChangeSwap, PlayerID: "P99", ToPositionID: "GK"}})

	s.Error(err)
}

func (s *ValidateTestSuite) TestFilledPositionMapNormalizesPlaceholders() {
	m := NewFilledPositionMap(s.game.Roster)

	s.True(m.RemovePlayer("GK", SwapPlaceholderID("P1")))
	s.False(m.RemovePlayer("GK", "P1"))
	s.Empty(m.Occupants("GK"))

	m.AddPlayer("GK", SwapPlaceholderID("P2"))
	s.Equal([]string{"P2"}, m.Occupants("GK"))

	clone := m.Clone()
	clone.AddPlayer("GK", "P3")
	s.Equal([]string{"P2"}, m.Occupants("GK"))
	s.Equal([]string{"P2", "P3"}, clone.Occupants("GK"))
}

func (s *ValidateTestSuite) TestFilledPositionMapFilesUnpositionedPlayers() {
	s.game.Roster[0].CurrentPosition = nil
	s.game.Roster[11].CurrentPosition = &models.Position{ID: "GK"}

	m := NewFilledPositionMap(s.game.Roster)

	s.Empty(m.Occupants("GK"))
	s.Equal([]string{"P1"}, m.UnpositionedPlayers())
	position, ok := m.PositionOf("P1")
	s.True(ok)
	s.Equal(Unpositioned, position)

	_, ok = m.PositionOf("P12")
	s.False(ok)
	s.Len(m.PositionIDs(), 10)
	s.NotContains(m.PositionIDs(), Unpositioned)
}
