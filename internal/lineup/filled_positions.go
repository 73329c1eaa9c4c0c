package lineup

import (
	"maps"
	"slices"
	"sort"

	"github.com/KirkDiggler/sideline/internal/models"
)

// Unpositioned is the key on-field players without a position are filed under
const Unpositioned = ""

// FilledPositionMap indexes on-field players by the position they fill
type FilledPositionMap struct {
	occupants map[string][]string
}

// NewFilledPositionMap indexes every on-field player. Players with no current
// position are filed under Unpositioned.
func NewFilledPositionMap(players []*models.Player) *FilledPositionMap {
	m := &FilledPositionMap{
		occupants: make(map[string][]string),
	}
	for _, p := range players {
		if p == nil || !p.Status.IsOn() {
			continue
		}

		positionID := Unpositioned
		if p.CurrentPosition != nil {
			positionID = p.CurrentPosition.ID
		}
		m.AddPlayer(positionID, p.ID)
	}
	return m
}

// AddPlayer records playerID as filling positionID
func (m *FilledPositionMap) AddPlayer(positionID, playerID string) {
	playerID = NormalizePlayerID(playerID)
	m.occupants[positionID] = append(m.occupants[positionID], playerID)
}

// RemovePlayer removes playerID from positionID, reporting whether it was there
func (m *FilledPositionMap) RemovePlayer(positionID, playerID string) bool {
	playerID = NormalizePlayerID(playerID)
	occ := m.occupants[positionID]
	i := slices.Index(occ, playerID)
	if i < 0 {
		return false
	}

	occ = slices.Delete(slices.Clone(occ), i, i+1)
	if len(occ) == 0 {
		delete(m.occupants, positionID)
	} else {
		m.occupants[positionID] = occ
	}
	return true
}

// Occupants returns the players filling a position
func (m *FilledPositionMap) Occupants(positionID string) []string {
	return slices.Clone(m.occupants[positionID])
}

// UnpositionedPlayers returns the on-field players filling no position
func (m *FilledPositionMap) UnpositionedPlayers() []string {
	return m.Occupants(Unpositioned)
}

// PositionOf finds the position a player fills. An on-field player without a
// position is found at Unpositioned.
func (m *FilledPositionMap) PositionOf(playerID string) (string, bool) {
	playerID = NormalizePlayerID(playerID)
	for _, positionID := range m.PositionIDs() {
		if slices.Contains(m.occupants[positionID], playerID) {
			return positionID, true
		}
	}
	if slices.Contains(m.occupants[Unpositioned], playerID) {
		return Unpositioned, true
	}
	return "", false
}

// PositionIDs returns every occupied position, sorted. Unpositioned is not included.
func (m *FilledPositionMap) PositionIDs() []string {
	ids := slices.Collect(maps.Keys(m.occupants))
	ids = slices.DeleteFunc(ids, func(id string) bool {
		return id == Unpositioned
	})
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy
func (m *FilledPositionMap) Clone() *FilledPositionMap {
	c := &FilledPositionMap{
		occupants: make(map[string][]string, len(m.occupants)),
	}
	for k, v := range m.occupants {
		c.occupants[k] = slices.Clone(v)
	}
	return c
}
