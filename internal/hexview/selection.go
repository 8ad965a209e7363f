package hexview

// Range is an inclusive byte range.
type Range struct {
	Start int64
	End   int64
}

func (r Range) Size() int64 {
	return r.End - r.Start + 1
}

func (r Range) Contains(i int64) bool {
	return i >= r.Start && i <= r.End
}

func (r Range) Overlaps(start, end int64) bool {
	return r.Start <= end && start <= r.End
}

// Covers reports whether r fully contains [start, end].
func (r Range) Covers(start, end int64) bool {
	return start >= r.Start && r.End >= end
}

type SelectionState int

const (
	SelectionNone SelectionState = iota
	SelectionFixed
	SelectionDragging
)

// Selection is the current byte selection. While dragging, the anchor stays
// put and the range spans from it to the last valid pointer hit; leaving the
// grid mid-drag empties the range without ending the drag.
type Selection struct {
	state    SelectionState
	anchor   int64
	rng      Range
	hasRange bool
}

func (s *Selection) State() SelectionState {
	return s.state
}

func (s *Selection) Dragging() bool {
	return s.state == SelectionDragging
}

func (s *Selection) Anchor() (int64, bool) {
	return s.anchor, s.state == SelectionDragging
}

func (s *Selection) Range() (Range, bool) {
	return s.rng, s.hasRange
}

func (s *Selection) Active() bool {
	return s.hasRange
}

func (s *Selection) Size() int64 {
	if !s.hasRange {
		return 0
	}
	return s.rng.Size()
}

func (s *Selection) Contains(i int64) bool {
	return s.hasRange && s.rng.Contains(i)
}

func (s *Selection) Clear() {
	*s = Selection{}
}

// Set fixes the selection to [start, end], ending any drag.
func (s *Selection) Set(start, end int64) {
	s.state = SelectionFixed
	s.rng = Range{Start: start, End: end}
	s.hasRange = true
}

// Begin starts a drag at anchor and collapses the range onto it.
func (s *Selection) Begin(anchor int64) {
	s.state = SelectionDragging
	s.anchor = anchor
	s.rng = Range{Start: anchor, End: anchor}
	s.hasRange = true
}

// DragTo extends the range from the anchor to index. A pointer outside the
// grid (ok false) empties the range. Calls outside a drag are ignored.
func (s *Selection) DragTo(index int64, ok bool) {
	if s.state != SelectionDragging {
		return
	}
	if !ok {
		s.hasRange = false
		return
	}
	if index > s.anchor {
		s.rng = Range{Start: s.anchor, End: index}
	} else {
		s.rng = Range{Start: index, End: s.anchor}
	}
	s.hasRange = true
}

// Release ends a drag, keeping whatever range it produced.
func (s *Selection) Release() {
	if s.state != SelectionDragging {
		return
	}
	if s.hasRange {
		s.state = SelectionFixed
	} else {
		s.state = SelectionNone
	}
}
