package dom

import "fmt"

// Selection is the document's active selection. Like most browsers only a
// single range is kept.
type Selection struct {
	ranges []*Range
}

func NewSelection() *Selection {
	return &Selection{}
}

func (s *Selection) RangeCount() int {
	return len(s.ranges)
}

// RangeAt returns range at the given index.
func (s *Selection) RangeAt(index int) (*Range, error) {
	if index < 0 || index >= len(s.ranges) {
		return nil, fmt.Errorf("selection range %d of %d: %w", index, len(s.ranges), ErrIndexSize)
	}
	return s.ranges[index], nil
}

// AddRange adds range to the empty selection, otherwise call is ignored.
func (s *Selection) AddRange(r *Range) {
	if r == nil || len(s.ranges) > 0 {
		return
	}
	s.ranges = append(s.ranges, r)
}

func (s *Selection) RemoveAllRanges() {
	s.ranges = s.ranges[:0]
}

func (s *Selection) IsCollapsed() bool {
	if len(s.ranges) == 0 {
		return true
	}
	return s.ranges[0].Collapsed()
}
