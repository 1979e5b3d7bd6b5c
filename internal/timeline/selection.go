package timeline

// Selection holds at most one selected step index; gaps are never selectable.
type Selection struct {
	index    int
	active   bool
	onSelect func(int)
}

// onSelect, when non-nil, fires with the index on every accepted Select so
// the owner can scroll a companion view into place.
func NewSelection(onSelect func(int)) *Selection {
	return &Selection{index: GapIndex, onSelect: onSelect}
}

// Select rejects GapIndex and negatives, keeping the prior selection.
func (s *Selection) Select(i int) bool {
	if i < 0 {
		return false
	}
	s.index = i
	s.active = true
	if s.onSelect != nil {
		s.onSelect(i)
	}
	return true
}

func (s *Selection) Clear() {
	s.index = GapIndex
	s.active = false
}

func (s *Selection) Index() (int, bool) {
	if !s.active {
		return 0, false
	}
	return s.index, true
}

func (s *Selection) IsSelected(i int) bool {
	return s.active && s.index == i
}
