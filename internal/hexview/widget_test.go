package hexview

import (
	"testing"

	"hexlens/internal/buffer"
)

func newTestWidget(length int) *Widget {
	w := New(CellLayout(), FixedFont{CharWidth: 1, LineHeight: 1})
	w.SetSize(80, 24)
	w.SetSource(buffer.New(sequence(length)))
	return w
}

func pointOf(t *testing.T, w *Widget, offset int64, region Region) Point {
	t.Helper()
	pt, ok := w.Geometry().PointOf(offset, w.TopLine(), region)
	if !ok {
		t.Fatalf("offset %d is not visible", offset)
	}
	return pt
}

func assertSelection(t *testing.T, w *Widget, start, end int64) {
	t.Helper()
	if !w.HasSelection() {
		t.Fatalf("expected selection [%d,%d], got none", start, end)
	}
	if w.SelectionStart() != start || w.SelectionEnd() != end {
		t.Errorf("expected selection [%d,%d], got [%d,%d]", start, end, w.SelectionStart(), w.SelectionEnd())
	}
}

func TestWidgetDragSelection(t *testing.T) {
	w := newTestWidget(0x20)

	w.PointerDown(pointOf(t, w, 5, RegionHex), ButtonPrimary)
	if !w.Dragging() {
		t.Fatal("expected drag to start")
	}
	assertSelection(t, w, 5, 5)

	w.PointerMove(pointOf(t, w, 20, RegionASCII))
	assertSelection(t, w, 5, 20)

	w.PointerUp(pointOf(t, w, 20, RegionASCII), ButtonPrimary)
	if w.Dragging() {
		t.Error("expected drag to end on release")
	}
	assertSelection(t, w, 5, 20)

	if w.SelectionSize() != 16 {
		t.Errorf("expected size 16, got %d", w.SelectionSize())
	}
	if got := w.StatusText(); got != "Begin: 00000005  End: 00000014  Size: 00000010" {
		t.Errorf("unexpected status %q", got)
	}

	cmds := w.Render()
	if got := runs(cmds, ColumnHex, 0); !equalRuns(got, []run{{0, 5, false}, {5, 11, true}}) {
		t.Errorf("unexpected line 0 runs %+v", got)
	}
	if got := runs(cmds, ColumnHex, 16); !equalRuns(got, []run{{16, 5, true}, {21, 11, false}}) {
		t.Errorf("unexpected line 1 runs %+v", got)
	}
}

func TestWidgetDragBackwardsAndOutside(t *testing.T) {
	w := newTestWidget(0x40)

	w.PointerDown(pointOf(t, w, 20, RegionASCII), ButtonPrimary)
	w.PointerMove(pointOf(t, w, 5, RegionHex))
	assertSelection(t, w, 5, 20)

	w.PointerMove(Point{X: 0, Y: 0})
	if w.HasSelection() {
		t.Error("expected selection cleared while pointer is outside the grid")
	}
	if !w.Dragging() {
		t.Error("expected drag to continue outside the grid")
	}

	w.PointerMove(pointOf(t, w, 40, RegionHex))
	assertSelection(t, w, 20, 40)

	w.PointerUp(Point{}, ButtonSecondary)
	if !w.Dragging() {
		t.Error("expected secondary release to leave the drag running")
	}
	w.PointerUp(Point{}, ButtonPrimary)

	w.PointerMove(pointOf(t, w, 50, RegionHex))
	assertSelection(t, w, 20, 40)
}

func TestWidgetSecondaryPress(t *testing.T) {
	w := newTestWidget(0x40)

	w.PointerDown(pointOf(t, w, 9, RegionHex), ButtonSecondary)
	assertSelection(t, w, 9, 9)
	if w.Dragging() {
		t.Error("expected no drag on secondary press")
	}

	w.SelectRange(5, 10, false)
	w.PointerDown(pointOf(t, w, 7, RegionASCII), ButtonSecondary)
	assertSelection(t, w, 5, 10)

	w.PointerDown(pointOf(t, w, 12, RegionASCII), ButtonSecondary)
	assertSelection(t, w, 12, 12)
}

func TestWidgetPressOutsideAndOnSeparator(t *testing.T) {
	w := newTestWidget(0x40)
	w.SelectRange(2, 6, false)

	g := w.Geometry()
	sep := Point{X: g.HexX(1) - 1, Y: g.LineY(0)}
	if ht := w.HitTest(sep); ht.Region != RegionSpace {
		t.Fatalf("expected separator hit, got %s", ht.Region)
	}
	w.PointerDown(sep, ButtonPrimary)
	assertSelection(t, w, 2, 6)
	if w.Dragging() {
		t.Error("expected no drag from a separator press")
	}

	w.PointerDown(Point{X: 0, Y: 0}, ButtonPrimary)
	if w.HasSelection() {
		t.Error("expected press outside the grid to clear the selection")
	}
	if w.SelectionStart() != -1 || w.SelectionEnd() != -1 || w.SelectionSize() != 0 {
		t.Error("expected empty selection accessors")
	}
	if got := w.StatusText(); got != "Length: 00000040" {
		t.Errorf("unexpected status %q", got)
	}
}

func TestWidgetSelectionClamping(t *testing.T) {
	w := newTestWidget(0x20)
	values := []int64{-10, 0, 3, 15, 31, 32, 100, -1, 7}

	for _, a := range values {
		for _, b := range values {
			w.ClearSelection()
			w.SetSelectionStart(a)
			w.SetSelectionEnd(b)
			s, e := w.SelectionStart(), w.SelectionEnd()
			if !(0 <= s && s <= e && e <= 0x1F) {
				t.Errorf("start %d end %d: got [%d,%d]", a, b, s, e)
			}
			if got := int64(len(w.GetSelection())); got != w.SelectionSize() {
				t.Errorf("start %d end %d: read %d bytes, size %d", a, b, got, w.SelectionSize())
			}
		}
	}

	w.SetSelectionStart(-5)
	w.SetSelectionEnd(1000)
	assertSelection(t, w, 0, 0x1F)
}

func TestWidgetGetSelection(t *testing.T) {
	w := newTestWidget(0x40)

	if w.GetSelection() != nil {
		t.Error("expected nil without a selection")
	}

	w.SelectRange(0x10, 0x13, false)
	got := w.GetSelection()
	if len(got) != 4 || got[0] != 0x10 || got[3] != 0x13 {
		t.Errorf("unexpected selection bytes %v", got)
	}
}

func TestWidgetSelect(t *testing.T) {
	w := newTestWidget(4096)

	w.Select(5, true)
	assertSelection(t, w, 5, 5)
	if got := w.StatusText(); got != "Position: 00000005" {
		t.Errorf("unexpected status %q", got)
	}
	if w.TopLine() != 0 {
		t.Errorf("expected top 0, got %d", w.TopLine())
	}

	w.Select(0x800, true)
	if w.TopLine() != 0x80-8 {
		t.Errorf("expected top %d, got %d", 0x80-8, w.TopLine())
	}

	w.SelectRange(4000, 100, false)
	assertSelection(t, w, 100, 4000)
	if w.TopLine() != 0x80-8 {
		t.Errorf("expected scroll untouched, got %d", w.TopLine())
	}

	w.SelectRange(4090, 9000, true)
	assertSelection(t, w, 4090, 4095)
	if w.TopLine() != 4090/BytesPerLine-8 {
		t.Errorf("expected top %d, got %d", 4090/BytesPerLine-8, w.TopLine())
	}
}

func TestWidgetSetSourceResets(t *testing.T) {
	w := newTestWidget(4096)
	src := w.Source()
	w.Select(0x800, true)
	w.AddHighlight(Highlight{Color: "#FF0000", Start: 0, End: 4})
	w.Wheel(-1)

	w.SetSource(src)
	if w.HasSelection() {
		t.Error("expected selection reset")
	}
	if w.TopLine() != 0 {
		t.Errorf("expected top 0, got %d", w.TopLine())
	}
	if len(w.Highlights()) != 0 {
		t.Error("expected highlights reset")
	}

	w.SetSource(buffer.New(sequence(0x20)))
	if w.Length() != 0x20 || w.MaxLine() != 0 {
		t.Errorf("unexpected length %d max line %d", w.Length(), w.MaxLine())
	}
}

func TestWidgetWithoutSource(t *testing.T) {
	w := New(CellLayout(), FixedFont{CharWidth: 1, LineHeight: 1})
	w.SetSize(80, 24)

	pt, _ := w.Geometry().PointOf(0, 0, RegionHex)
	if ht := w.HitTest(pt); ht.Region != RegionNone {
		t.Errorf("expected none, got %s", ht.Region)
	}
	w.PointerDown(pt, ButtonPrimary)
	if w.Dragging() || w.HasSelection() {
		t.Error("expected no selection without a source")
	}

	w.SetSelectionStart(3)
	w.Select(3, true)
	if w.HasSelection() || w.GetSelection() != nil {
		t.Error("expected selection calls to be ignored without a source")
	}
	if w.Length() != 0 {
		t.Errorf("expected length 0, got %d", w.Length())
	}

	for _, c := range w.Render() {
		if c.Kind == CmdText {
			t.Errorf("unexpected text %q", c.Text)
		}
	}
}

func TestWidgetScrolling(t *testing.T) {
	w := newTestWidget(1000)
	w.SetScrollStep(4)

	w.Wheel(-1)
	if w.TopLine() != 4 {
		t.Errorf("expected top 4, got %d", w.TopLine())
	}
	w.ScrollLines(100)
	if w.TopLine() != w.MaxLine() {
		t.Errorf("expected top %d, got %d", w.MaxLine(), w.TopLine())
	}
	w.ScrollTo(-3)
	if w.TopLine() != 0 {
		t.Errorf("expected top 0, got %d", w.TopLine())
	}

	w.ScrollTo(2)
	ht := w.HitTest(pointOf(t, w, 2*BytesPerLine+3, RegionHex))
	if ht.Region != RegionHex || ht.Index != 2*BytesPerLine+3 {
		t.Errorf("unexpected hit after scrolling: %s %d", ht.Region, ht.Index)
	}

	offsets := texts(w.Render(), ColumnOffset)
	if len(offsets) == 0 || offsets[0] != "00000020" {
		t.Errorf("expected first visible line at 0x20, got %v", offsets)
	}
}

func TestWidgetHighlights(t *testing.T) {
	w := newTestWidget(0x40)

	w.AddHighlight(Highlight{Color: "#FF0000", Start: 0, End: 3})
	w.AddHighlight(Highlight{Color: "#00FF00", Start: 2, End: 5})
	hls := w.Highlights()
	if len(hls) != 2 || hls[1].Color != "#00FF00" {
		t.Fatalf("unexpected highlights %+v", hls)
	}

	bands := 0
	for _, c := range w.Render() {
		if c.Kind == CmdFill && c.Paint == PaintHighlight {
			bands++
		}
	}
	if bands != 4 {
		t.Errorf("expected 4 bands for 2 overlapping highlights, got %d", bands)
	}

	w.SetHighlights([]Highlight{{Color: "#0000FF", Start: 8, End: 9}})
	if hls := w.Highlights(); len(hls) != 1 || hls[0].Start != 8 {
		t.Errorf("unexpected highlights after Set: %+v", hls)
	}

	w.ClearHighlights()
	if len(w.Highlights()) != 0 {
		t.Error("expected no highlights after Clear")
	}
}

type countingFont struct {
	calls   int
	metrics Metrics
}

func (f *countingFont) Measure() Metrics {
	f.calls++
	return f.metrics
}

func TestWidgetFontMetricsCached(t *testing.T) {
	f := &countingFont{metrics: Metrics{CharWidth: 8, LineHeight: 16}}
	w := New(PixelLayout(), f)
	w.SetSize(800, 600)
	w.SetSource(buffer.New(sequence(64)))

	w.Geometry()
	w.Render()
	w.HitTest(Point{})
	if f.calls != 1 {
		t.Errorf("expected one measurement, got %d", f.calls)
	}

	big := &countingFont{metrics: Metrics{CharWidth: 10, LineHeight: 20}}
	w.SetFont(big)
	if g := w.Geometry(); g.Metrics.CharWidth != 10 || big.calls != 1 {
		t.Errorf("expected new metrics after font change, got %+v", g.Metrics)
	}
	if w.Font() != big {
		t.Error("expected new font to be active")
	}
}

type reentrantSource struct {
	*buffer.Buffer
	w     *Widget
	inner []Command
	calls int
}

func (s *reentrantSource) GetBytes(offset int64, count int) []byte {
	s.calls++
	s.inner = s.w.Render()
	return s.Buffer.GetBytes(offset, count)
}

func TestWidgetReentrantRender(t *testing.T) {
	w := New(CellLayout(), FixedFont{CharWidth: 1, LineHeight: 1})
	w.SetSize(80, 24)
	src := &reentrantSource{Buffer: buffer.New(sequence(32)), w: w}
	w.SetSource(src)

	cmds := w.Render()
	if src.calls != 1 {
		t.Fatalf("expected one read, got %d", src.calls)
	}
	if src.inner != nil {
		t.Errorf("expected nested render to produce nothing, got %d commands", len(src.inner))
	}
	if len(cmds) == 0 {
		t.Error("expected outer render to produce commands")
	}
}

func TestWidgetInvalidate(t *testing.T) {
	w := newTestWidget(0x40)
	count := 0
	w.OnInvalidate(func() { count++ })

	w.Select(3, false)
	w.AddHighlight(Highlight{Color: "#FF0000", Start: 0, End: 1})
	w.PointerDown(pointOf(t, w, 4, RegionHex), ButtonPrimary)
	if count != 3 {
		t.Errorf("expected 3 invalidations, got %d", count)
	}

	w.Render()
	if count != 3 {
		t.Errorf("expected render not to invalidate, got %d", count)
	}

	w.ScrollTo(0)
	if count != 3 {
		t.Errorf("expected no invalidation when scroll is unchanged, got %d", count)
	}
}

func TestWidgetStyle(t *testing.T) {
	w := newTestWidget(0x10)
	s := DefaultStyle()
	s.SelectedBackground = "#123456"
	w.SetStyle(s)
	w.Select(0, false)

	if w.Style().SelectedBackground != "#123456" {
		t.Fatalf("unexpected style %+v", w.Style())
	}
	for _, c := range w.Render() {
		if c.Kind == CmdFill && c.Paint == PaintSelected && c.Color != "#123456" {
			t.Errorf("expected selection fill in the configured color, got %s", c.Color)
		}
	}
}
