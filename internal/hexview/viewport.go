package hexview

// lookahead is the number of lines kept below the top line when scrolling to
// the end or centering an offset.
const lookahead = 8

const DefaultScrollStep = 10

// Viewport tracks the first visible line of the grid.
type Viewport struct {
	top     int64
	maxLine int64
	step    int
}

func NewViewport(step int) *Viewport {
	if step <= 0 {
		step = DefaultScrollStep
	}
	return &Viewport{step: step}
}

// Reset scrolls to the top and recomputes the scroll range for a source of
// the given length.
func (v *Viewport) Reset(length int64) {
	v.top = 0
	v.maxLine = length/BytesPerLine - lookahead
	if v.maxLine < 0 {
		v.maxLine = 0
	}
}

func (v *Viewport) Top() int64 {
	return v.top
}

func (v *Viewport) MaxLine() int64 {
	return v.maxLine
}

func (v *Viewport) Step() int {
	return v.step
}

func (v *Viewport) SetStep(step int) {
	if step > 0 {
		v.step = step
	}
}

// SetTop moves the top line, clamped to the scroll range. It reports whether
// the top line changed.
func (v *Viewport) SetTop(line int64) bool {
	if line < 0 {
		line = 0
	}
	if line > v.maxLine {
		line = v.maxLine
	}
	if line == v.top {
		return false
	}
	v.top = line
	return true
}

// Scroll moves the top line by delta lines.
func (v *Viewport) Scroll(delta int64) bool {
	return v.SetTop(v.top + delta)
}

// Wheel moves by one large step per notch. Positive notches scroll towards
// the start of the data.
func (v *Viewport) Wheel(notches int) bool {
	switch {
	case notches > 0:
		return v.Scroll(-int64(v.step))
	case notches < 0:
		return v.Scroll(int64(v.step))
	}
	return false
}

// EnsureVisible scrolls so that offset sits a few lines below the top.
func (v *Viewport) EnsureVisible(offset int64) bool {
	return v.SetTop(offset/BytesPerLine - lookahead)
}
