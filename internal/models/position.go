package models

// Position is a slot on the field, e.g. GK or CB
type Position struct {
	// ID is the formation-unique identifier of the slot
	ID string `json:"id"`

	// Type is the role of the slot (GK, CB, ST...)
	Type string `json:"type,omitempty"`
}

// Formation is the set of positions that must each be filled by exactly one player
type Formation struct {
	ID        string      `json:"id"`
	Name      string      `json:"name,omitempty"`
	Positions []*Position `json:"positions"`
}

// RequiredPositionIDs returns the position IDs in formation order
func (f *Formation) RequiredPositionIDs() []string {
	if f == nil {
		return nil
	}

	ids := make([]string, 0, len(f.Positions))
	for _, p := range f.Positions {
		ids = append(ids, p.ID)
	}
	return ids
}

// Position looks up a position by ID
func (f *Formation) Position(id string) (*Position, bool) {
	if f == nil {
		return nil, false
	}

	for _, p := range f.Positions {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// HasPosition returns true if the formation requires the position
func (f *Formation) HasPosition(id string) bool {
	_, ok := f.Position(id)
	return ok
}
