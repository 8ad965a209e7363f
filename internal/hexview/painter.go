package hexview

import (
	"fmt"
	"strings"
)

const headerText = " Offset    0  1  2  3  4  5  6  7  8  9  A  B  C  D  E  F    Ascii"

type CommandKind int

const (
	CmdFill CommandKind = iota
	CmdText
	CmdLine
	CmdBorder
)

// Paint says what a command draws, so a surface can pick fonts or
// attributes beyond the resolved color.
type Paint int

const (
	PaintBackground Paint = iota
	PaintNormal
	PaintSelected
	PaintHeader
	PaintBorder
	PaintHighlight
)

type Column int

const (
	ColumnNone Column = iota
	ColumnOffset
	ColumnHex
	ColumnASCII
)

// Command is one draw operation. Fills and borders use Rect, text starts at
// (X, Y), lines run from (X, Y) to (X2, Y2). Text runs and fills over byte
// cells record the bytes they cover in First and Count.
type Command struct {
	Kind   CommandKind
	Paint  Paint
	Color  string
	Alpha  uint8
	Rect   Rect
	X, Y   int
	X2, Y2 int
	Text   string
	Column Column
	First  int64
	Count  int
}

// Style is the presentation of the grid. Colors are "#RRGGBB" strings.
type Style struct {
	Foreground         string
	Background         string
	Border             string
	Header             string
	SelectedForeground string
	SelectedBackground string
}

func DefaultStyle() Style {
	return Style{
		Foreground:         "#000000",
		Background:         "#FFFFFF",
		Border:             "#000000",
		Header:             "#0066CC",
		SelectedForeground: "#FFFFFF",
		SelectedBackground: "#3399FF",
	}
}

// Source is the random-access data shown by the grid.
type Source interface {
	Size() int64
	GetBytes(offset int64, count int) []byte
}

// Frame is everything one render pass reads.
type Frame struct {
	Geometry   Geometry
	Style      Style
	Top        int64
	Source     Source
	Selection  *Selection
	Highlights []Highlight
}

// Render produces the draw commands for one frame. Only the visible lines
// are read from the source.
func Render(f Frame) []Command {
	p := &painter{geom: f.Geometry, style: f.Style, sel: f.Selection, hls: f.Highlights}
	g := f.Geometry
	if !g.valid() {
		return nil
	}

	p.emit(Command{Kind: CmdFill, Paint: PaintBackground, Color: f.Style.Background, Alpha: 0xFF,
		Rect: Rect{W: g.Width, H: g.Height}})

	if f.Source == nil {
		p.paintChrome()
		return p.cmds
	}

	p.text(g.TextX(), g.HeaderY(), headerText, PaintHeader, f.Style.Header, ColumnNone, 0, 0)

	length := f.Source.Size()
	lines := g.DataLines()
	base := f.Top * BytesPerLine

	var data []byte
	if base < length {
		want := int64(lines) * BytesPerLine
		if rest := length - base; rest < want {
			want = rest
		}
		data = f.Source.GetBytes(base, int(want))
	}

	for i := 0; i < lines; i++ {
		offset := i * BytesPerLine
		if offset >= len(data) {
			break
		}
		lineStart := base + int64(offset)
		y := g.LineY(i)
		p.text(g.TextX(), y, fmt.Sprintf("%08X", lineStart), PaintHeader, f.Style.Header, ColumnOffset, lineStart, 0)

		end := offset + BytesPerLine
		if end > len(data) {
			end = len(data)
		}
		p.paintLine(data[offset:end], lineStart, y)
	}

	p.text(g.TextX(), g.StatusY(), StatusText(length, f.Selection), PaintNormal, f.Style.Foreground, ColumnNone, 0, 0)
	p.paintChrome()
	return p.cmds
}

type painter struct {
	geom  Geometry
	style Style
	sel   *Selection
	hls   []Highlight
	cmds  []Command
}

func (p *painter) emit(c Command) {
	p.cmds = append(p.cmds, c)
}

func (p *painter) text(x, y int, s string, paint Paint, color string, col Column, first int64, count int) {
	p.emit(Command{Kind: CmdText, Paint: paint, Color: color, X: x, Y: y, Text: s,
		Column: col, First: first, Count: count})
}

func (p *painter) fill(r Rect, paint Paint, color string, alpha uint8, col Column, first int64, count int) {
	p.emit(Command{Kind: CmdFill, Paint: paint, Color: color, Alpha: alpha, Rect: r,
		Column: col, First: first, Count: count})
}

// run draws one text run in normal or selected colors.
func (p *painter) run(x, y int, s string, cells int, selected bool, col Column, first int64, count int) {
	if selected {
		r := Rect{X: x, Y: y, W: cells * p.geom.Metrics.CharWidth, H: p.geom.Metrics.LineHeight}
		p.fill(r, PaintSelected, p.style.SelectedBackground, 0xFF, col, first, count)
		p.text(x, y, s, PaintSelected, p.style.SelectedForeground, col, first, count)
		return
	}
	p.text(x, y, s, PaintNormal, p.style.Foreground, col, first, count)
}

func (p *painter) paintChrome() {
	g := p.geom
	w := g.Metrics.CharWidth
	r := g.BorderRect()
	p.emit(Command{Kind: CmdBorder, Paint: PaintBorder, Color: p.style.Border, Rect: r})

	bottom := r.Y + r.H - 1
	hexX := g.ColumnX(hexColumn-1) + w/2
	p.emit(Command{Kind: CmdLine, Paint: PaintBorder, Color: p.style.Border, X: hexX, Y: r.Y, X2: hexX, Y2: bottom})
	ascX := g.ColumnX(asciiColumn-2) + w/2
	p.emit(Command{Kind: CmdLine, Paint: PaintBorder, Color: p.style.Border, X: ascX, Y: r.Y, X2: ascX, Y2: bottom})
	hdrY := g.HeaderY() + g.Metrics.LineHeight + g.Layout.HeaderGap/2
	p.emit(Command{Kind: CmdLine, Paint: PaintBorder, Color: p.style.Border, X: r.X, Y: hdrY, X2: r.X + r.W - 1, Y2: hdrY})
}

func (p *painter) paintLine(data []byte, lineStart int64, y int) {
	if len(p.hls) > 0 {
		p.paintHighlights(lineStart, len(data), y)
	}

	rng, ok := Range{}, false
	if p.sel != nil {
		rng, ok = p.sel.Range()
	}
	lineEnd := lineStart + BytesPerLine - 1

	switch {
	case !ok || !rng.Overlaps(lineStart, lineEnd):
		p.paintLineFast(data, lineStart, y, false)
	case rng.Covers(lineStart, lineEnd):
		p.paintLineFast(data, lineStart, y, true)
	default:
		p.paintLineSegmented(data, lineStart, y, rng)
	}
}

func (p *painter) paintLineFast(data []byte, lineStart int64, y int, selected bool) {
	g := p.geom

	var hex strings.Builder
	for _, b := range data {
		fmt.Fprintf(&hex, "%02X ", b)
	}
	hexTxt := strings.TrimSuffix(hex.String(), " ")
	p.run(g.HexX(0), y, hexTxt, len(hexTxt), selected, ColumnHex, lineStart, len(data))

	var ascii strings.Builder
	for i := 0; i < BytesPerLine; i++ {
		if i < len(data) {
			ascii.WriteRune(asciiRune(data[i]))
		} else {
			ascii.WriteByte(' ')
		}
	}
	p.run(g.ASCIIX(0), y, ascii.String(), BytesPerLine, selected, ColumnASCII, lineStart, len(data))
}

// paintLineSegmented splits the line into runs of equal selection state. The
// hex and ASCII columns are walked separately over the same offsets, so a
// byte's two cells always share a color.
func (p *painter) paintLineSegmented(data []byte, lineStart int64, y int, rng Range) {
	g := p.geom
	w := g.Metrics.CharWidth

	x := g.HexX(0)
	var txt strings.Builder
	runStart := 0
	prevSel := rng.Contains(lineStart)
	for i := 0; i <= BytesPerLine; i++ {
		curSel := rng.Contains(lineStart + int64(i))
		if curSel != prevSel || i == BytesPerLine {
			s := strings.TrimSuffix(txt.String(), " ")
			n := i - runStart
			p.run(x, y, s, len(s), prevSel, ColumnHex, lineStart+int64(runStart), n)
			x += n * hexCellWidth * w
			txt.Reset()
			runStart = i
			prevSel = curSel
			if i == BytesPerLine {
				break
			}
		}
		if i < len(data) {
			fmt.Fprintf(&txt, "%02X ", data[i])
		} else {
			txt.WriteString("   ")
		}
	}

	x = g.ASCIIX(0)
	runStart = 0
	cells := 0
	prevSel = rng.Contains(lineStart)
	for i := 0; i <= BytesPerLine; i++ {
		curSel := rng.Contains(lineStart + int64(i))
		if curSel != prevSel || i == BytesPerLine {
			n := i - runStart
			p.run(x, y, txt.String(), cells, prevSel, ColumnASCII, lineStart+int64(runStart), n)
			x += cells * w
			txt.Reset()
			cells = 0
			runStart = i
			prevSel = curSel
			if i == BytesPerLine {
				break
			}
		}
		if i < len(data) {
			txt.WriteRune(asciiRune(data[i]))
		} else {
			txt.WriteByte(' ')
		}
		cells++
	}
}

// paintHighlights lays translucent bands under the line. The hex band is
// widened by half a character on each side to bridge adjacent cells.
func (p *painter) paintHighlights(lineStart int64, avail, y int) {
	g := p.geom
	w := g.Metrics.CharWidth
	h := g.Metrics.LineHeight

	for _, hl := range p.hls {
		b, ok := hl.clip(lineStart, avail)
		if !ok {
			continue
		}
		first := lineStart + int64(b.start)
		count := b.end - b.start

		hexStartX := g.HexX(b.start) - w/2
		hexEndX := g.HexX(0) + (b.end*hexCellWidth-1)*w + (w+1)/2
		p.fill(Rect{X: hexStartX, Y: y, W: hexEndX - hexStartX, H: h},
			PaintHighlight, b.color, highlightAlpha, ColumnHex, first, count)

		ascStartX := g.ASCIIX(b.start)
		ascEndX := g.ASCIIX(b.end)
		p.fill(Rect{X: ascStartX, Y: y, W: ascEndX - ascStartX, H: h},
			PaintHighlight, b.color, highlightAlpha, ColumnASCII, first, count)
	}
}

func asciiRune(b byte) rune {
	if b <= 32 || (b >= 127 && b < 160) {
		return '.'
	}
	return rune(b)
}
