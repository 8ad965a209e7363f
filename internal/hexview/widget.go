package hexview

import "hexlens/internal/logger"

type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Font measures the cell size of the font the grid is drawn with.
type Font interface {
	Measure() Metrics
}

// FixedFont is a font whose cell size is known up front, such as a terminal
// cell or a bitmap font.
type FixedFont Metrics

func (f FixedFont) Measure() Metrics {
	return Metrics(f)
}

// Widget is a read-only hex/ASCII grid over a Source with pointer selection
// and highlight overlays. It is driven from a single UI goroutine.
type Widget struct {
	source Source

	layout Layout
	width  int
	height int

	style     Style
	font      Font
	fontDirty bool
	metrics   Metrics

	viewport   *Viewport
	sel        Selection
	highlights HighlightSet

	rendering    bool
	onInvalidate func()
}

func New(layout Layout, font Font) *Widget {
	return &Widget{
		layout:    layout,
		style:     DefaultStyle(),
		font:      font,
		fontDirty: true,
		viewport:  NewViewport(DefaultScrollStep),
	}
}

// OnInvalidate registers fn to run whenever the widget needs repainting.
func (w *Widget) OnInvalidate(fn func()) {
	w.onInvalidate = fn
}

func (w *Widget) invalidate() {
	if w.onInvalidate != nil && !w.rendering {
		w.onInvalidate()
	}
}

// SetSource binds a new source. Selection, highlights and scroll position
// are reset even when the same source is bound again.
func (w *Widget) SetSource(src Source) {
	w.source = src
	w.sel.Clear()
	w.highlights.Clear()
	w.viewport.Reset(w.Length())
	logger.Debug("source bound", "length", w.Length(), "maxLine", w.viewport.MaxLine())
	w.invalidate()
}

func (w *Widget) Source() Source {
	return w.source
}

// Length is the size of the bound source, or 0 with none bound.
func (w *Widget) Length() int64 {
	if w.source == nil {
		return 0
	}
	return w.source.Size()
}

func (w *Widget) SetSize(width, height int) {
	w.width = width
	w.height = height
	w.invalidate()
}

func (w *Widget) SetFont(f Font) {
	w.font = f
	w.fontDirty = true
	w.invalidate()
}

func (w *Widget) Font() Font {
	return w.font
}

func (w *Widget) Style() Style {
	return w.style
}

func (w *Widget) SetStyle(s Style) {
	w.style = s
	w.invalidate()
}

func (w *Widget) SetScrollStep(step int) {
	w.viewport.SetStep(step)
}

func (w *Widget) ensureMetrics() {
	if !w.fontDirty || w.font == nil {
		return
	}
	w.metrics = w.font.Measure()
	w.fontDirty = false
	logger.Debug("font metrics", "charWidth", w.metrics.CharWidth, "lineHeight", w.metrics.LineHeight)
}

func (w *Widget) Geometry() Geometry {
	w.ensureMetrics()
	return Geometry{Layout: w.layout, Metrics: w.metrics, Width: w.width, Height: w.height}
}

func (w *Widget) TopLine() int64 {
	return w.viewport.Top()
}

func (w *Widget) MaxLine() int64 {
	return w.viewport.MaxLine()
}

// ScrollTo sets the top line, clamped to the scroll range.
func (w *Widget) ScrollTo(line int64) {
	if w.viewport.SetTop(line) {
		w.invalidate()
	}
}

func (w *Widget) ScrollLines(delta int64) {
	if w.viewport.Scroll(delta) {
		w.invalidate()
	}
}

// Wheel scrolls one large step per notch; positive notches scroll up.
func (w *Widget) Wheel(notches int) {
	if w.viewport.Wheel(notches) {
		w.invalidate()
	}
}

func (w *Widget) EnsureVisible(offset int64) {
	if w.viewport.EnsureVisible(offset) {
		w.invalidate()
	}
}

func (w *Widget) HasSelection() bool {
	return w.sel.Active()
}

// SelectionRange returns the selected bytes, if any.
func (w *Widget) SelectionRange() (Range, bool) {
	return w.sel.Range()
}

// SelectionStart is the first selected byte, or -1.
func (w *Widget) SelectionStart() int64 {
	r, ok := w.sel.Range()
	if !ok {
		return -1
	}
	return r.Start
}

// SelectionEnd is the last selected byte, or -1.
func (w *Widget) SelectionEnd() int64 {
	r, ok := w.sel.Range()
	if !ok {
		return -1
	}
	return r.End
}

func (w *Widget) SelectionSize() int64 {
	return w.sel.Size()
}

func (w *Widget) Dragging() bool {
	return w.sel.Dragging()
}

func (w *Widget) clamp(offset int64) int64 {
	if offset < 0 {
		return 0
	}
	if last := w.Length() - 1; offset > last {
		return last
	}
	return offset
}

// SetSelectionStart moves the start of the selection, clamped to the data.
// The end follows when it would otherwise fall before the start. Without a
// source this does nothing.
func (w *Widget) SetSelectionStart(offset int64) {
	if w.Length() == 0 {
		return
	}
	offset = w.clamp(offset)
	end := offset
	if r, ok := w.sel.Range(); ok && r.End > offset {
		end = r.End
	}
	w.sel.Set(offset, end)
	w.invalidate()
}

// SetSelectionEnd moves the end of the selection, clamped to the data. The
// start follows when it would otherwise fall after the end.
func (w *Widget) SetSelectionEnd(offset int64) {
	if w.Length() == 0 {
		return
	}
	offset = w.clamp(offset)
	start := offset
	if r, ok := w.sel.Range(); ok && r.Start < offset {
		start = r.Start
	}
	w.sel.Set(start, offset)
	w.invalidate()
}

// Select selects the single byte at offset.
func (w *Widget) Select(offset int64, ensureVisible bool) {
	w.SelectRange(offset, offset, ensureVisible)
}

// SelectRange selects [begin, end]. Bounds are clamped to the data and put
// in order.
func (w *Widget) SelectRange(begin, end int64, ensureVisible bool) {
	if w.Length() == 0 {
		return
	}
	begin, end = w.clamp(begin), w.clamp(end)
	if begin > end {
		begin, end = end, begin
	}
	w.sel.Set(begin, end)
	if ensureVisible {
		w.viewport.EnsureVisible(begin)
	}
	w.invalidate()
}

func (w *Widget) ClearSelection() {
	w.sel.Clear()
	w.invalidate()
}

// GetSelection reads the selected bytes. It returns nil when nothing is
// selected; callers should check HasSelection first.
func (w *Widget) GetSelection() []byte {
	r, ok := w.sel.Range()
	if !ok || w.source == nil {
		return nil
	}
	return w.source.GetBytes(r.Start, int(r.Size()))
}

func (w *Widget) HitTest(pt Point) HitResult {
	if w.source == nil {
		return HitResult{}
	}
	return w.Geometry().HitTest(pt, w.viewport.Top(), w.Length())
}

func (w *Widget) AddHighlight(hl Highlight) {
	w.highlights.Add(hl)
	w.invalidate()
}

func (w *Widget) SetHighlights(hls []Highlight) {
	w.highlights.Set(hls)
	w.invalidate()
}

func (w *Widget) ClearHighlights() {
	w.highlights.Clear()
	w.invalidate()
}

func (w *Widget) Highlights() []Highlight {
	return w.highlights.Items()
}

// PointerDown handles a button press. A primary press on a byte starts a
// drag; any other press on a byte outside the selection selects that byte;
// a press outside the grid clears the selection.
func (w *Widget) PointerDown(pt Point, button Button) {
	ht := w.HitTest(pt)
	switch ht.Region {
	case RegionHex, RegionASCII:
		if button == ButtonPrimary {
			w.sel.Begin(ht.Index)
		} else if !w.sel.Contains(ht.Index) {
			w.sel.Set(ht.Index, ht.Index)
		}
	case RegionNone:
		w.sel.Clear()
	}
	w.invalidate()
}

// PointerMove extends a drag in progress. It is a no-op otherwise.
func (w *Widget) PointerMove(pt Point) {
	if !w.sel.Dragging() {
		return
	}
	ht := w.HitTest(pt)
	w.sel.DragTo(ht.Index, ht.Region != RegionNone)
	w.invalidate()
}

// PointerUp ends a drag when the primary button is released.
func (w *Widget) PointerUp(pt Point, button Button) {
	if button != ButtonPrimary || !w.sel.Dragging() {
		return
	}
	w.sel.Release()
	w.invalidate()
}

// Render paints the visible part of the grid. Calling it again while a
// render is running returns nothing.
func (w *Widget) Render() []Command {
	if w.rendering {
		logger.Warn("reentrant render ignored")
		return nil
	}
	w.rendering = true
	defer func() { w.rendering = false }()

	return Render(Frame{
		Geometry:   w.Geometry(),
		Style:      w.style,
		Top:        w.viewport.Top(),
		Source:     w.source,
		Selection:  &w.sel,
		Highlights: w.highlights.Items(),
	})
}

// StatusText is the status line for the current state.
func (w *Widget) StatusText() string {
	return StatusText(w.Length(), &w.sel)
}
