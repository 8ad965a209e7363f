package hexview

// highlightAlpha is the opacity of one highlight band. Overlapping bands
// stack, so two highlights over the same byte show twice as strong.
const highlightAlpha = 0x40

// Highlight marks the inclusive byte range [Start, End] with a color, e.g. a
// structure of a parsed file. Color is a "#RRGGBB" string.
type Highlight struct {
	Color string
	Start int64
	End   int64
}

// HighlightSet keeps highlights in insertion order, which is also paint
// order. Overlaps are allowed.
type HighlightSet struct {
	items []Highlight
}

func (h *HighlightSet) Add(hl Highlight) {
	h.items = append(h.items, hl)
}

func (h *HighlightSet) Set(hls []Highlight) {
	h.items = append(h.items[:0], hls...)
}

func (h *HighlightSet) Clear() {
	h.items = h.items[:0]
}

func (h *HighlightSet) Len() int {
	return len(h.items)
}

func (h *HighlightSet) Items() []Highlight {
	out := make([]Highlight, len(h.items))
	copy(out, h.items)
	return out
}

// band is the part of a highlight that falls on one line, as byte columns
// [start, end) relative to the line start.
type band struct {
	color      string
	start, end int
}

// clip returns the band of hl on the line starting at lineStart, which holds
// avail bytes of data.
func (hl Highlight) clip(lineStart int64, avail int) (band, bool) {
	endOffset := hl.End - lineStart + 1
	if endOffset <= 0 {
		return band{}, false
	}
	if endOffset > int64(avail) {
		endOffset = int64(avail)
	}

	startOffset := hl.Start - lineStart
	if startOffset >= BytesPerLine {
		return band{}, false
	}
	if startOffset < 0 {
		startOffset = 0
	}
	if endOffset <= startOffset {
		return band{}, false
	}
	return band{color: hl.Color, start: int(startOffset), end: int(endOffset)}, true
}
