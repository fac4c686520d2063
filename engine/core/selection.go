package core

// MaxSelected is the selection capacity
const MaxSelected = 12

// Selection is a fixed-capacity set of unit ids. Slot order carries no
// meaning. Use NewSelection; empty slots hold NoUnit.
type Selection struct {
	slots [MaxSelected]UnitID
}

func NewSelection() *Selection {
	s := &Selection{}
	s.Clear()
	return s
}

// Clear empties every slot
func (s *Selection) Clear() {
	for i := range s.slots {
		s.slots[i] = NoUnit
	}
}

// Contains reports whether id is selected
func (s *Selection) Contains(id UnitID) bool {
	if id == NoUnit {
		return false
	}
	for _, v := range s.slots {
		if v == id {
			return true
		}
	}
	return false
}

// Add inserts id if absent. A full selection ignores the request.
func (s *Selection) Add(id UnitID) bool {
	if id == NoUnit || s.Contains(id) {
		return false
	}
	for i, v := range s.slots {
		if v == NoUnit {
			s.slots[i] = id
			return true
		}
	}
	return false
}

// Remove drops id if present
func (s *Selection) Remove(id UnitID) bool {
	if id == NoUnit {
		return false
	}
	for i, v := range s.slots {
		if v == id {
			s.slots[i] = NoUnit
			return true
		}
	}
	return false
}

// Toggle removes id when selected, adds it otherwise
func (s *Selection) Toggle(id UnitID) {
	if !s.Remove(id) {
		s.Add(id)
	}
}

// IDs returns the selected ids
func (s *Selection) IDs() []UnitID {
	ids := make([]UnitID, 0, MaxSelected)
	for _, v := range s.slots {
		if v != NoUnit {
			ids = append(ids, v)
		}
	}
	return ids
}

func (s *Selection) Len() int {
	n := 0
	for _, v := range s.slots {
		if v != NoUnit {
			n++
		}
	}
	return n
}
