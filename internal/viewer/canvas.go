package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"hexlens/internal/hexview"
)

// Box-drawing directions for a cell crossed by border lines.
const (
	lineUp uint8 = 1 << iota
	lineDown
	lineLeft
	lineRight
)

var boxRunes = map[uint8]rune{
	lineUp:                                  '│',
	lineDown:                                '│',
	lineUp | lineDown:                       '│',
	lineLeft:                                '─',
	lineRight:                               '─',
	lineLeft | lineRight:                    '─',
	lineDown | lineRight:                    '┌',
	lineDown | lineLeft:                     '┐',
	lineUp | lineRight:                      '└',
	lineUp | lineLeft:                       '┘',
	lineUp | lineDown | lineRight:           '├',
	lineUp | lineDown | lineLeft:            '┤',
	lineLeft | lineRight | lineDown:         '┬',
	lineLeft | lineRight | lineUp:           '┴',
	lineUp | lineDown | lineLeft | lineRight: '┼',
}

type cell struct {
	r     rune
	fg    colorful.Color
	bg    colorful.Color
	lines uint8
}

// Canvas rasterizes widget draw commands onto terminal cells, one unit per
// cell.
type Canvas struct {
	width  int
	height int
	cells  []cell
	styles map[string]lipgloss.Style
}

func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]cell, width*height),
		styles: make(map[string]lipgloss.Style),
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', fg: white}
	}
	return c
}

func (c *Canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

func parseColor(s string) (colorful.Color, bool) {
	col, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return col, true
}

func (c *Canvas) Apply(cmds []hexview.Command) {
	for _, cmd := range cmds {
		switch cmd.Kind {
		case hexview.CmdFill:
			c.fill(cmd.Rect, cmd.Color, cmd.Alpha)
		case hexview.CmdText:
			c.text(cmd.X, cmd.Y, cmd.Text, cmd.Color)
		case hexview.CmdLine:
			c.line(cmd.X, cmd.Y, cmd.X2, cmd.Y2, cmd.Color)
		case hexview.CmdBorder:
			r := cmd.Rect
			right, bottom := r.X+r.W-1, r.Y+r.H-1
			c.line(r.X, r.Y, right, r.Y, cmd.Color)
			c.line(r.X, bottom, right, bottom, cmd.Color)
			c.line(r.X, r.Y, r.X, bottom, cmd.Color)
			c.line(right, r.Y, right, bottom, cmd.Color)
		}
	}
}

// fill paints cell backgrounds. Translucent fills blend over what is
// already there, so overlapping fills accumulate.
func (c *Canvas) fill(r hexview.Rect, color string, alpha uint8) {
	col, ok := parseColor(color)
	if !ok {
		return
	}
	t := float64(alpha) / 255
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			cl := c.at(x, y)
			if cl == nil {
				continue
			}
			if alpha == 0xFF {
				cl.bg = col
			} else {
				cl.bg = cl.bg.BlendRgb(col, t)
			}
		}
	}
}

// text writes s starting at (x, y). Runes that do not occupy exactly one
// terminal cell are shown as '.' to keep the columns aligned.
func (c *Canvas) text(x, y int, s, color string) {
	col, ok := parseColor(color)
	for _, r := range s {
		if runewidth.RuneWidth(r) != 1 {
			r = '.'
		}
		if cl := c.at(x, y); cl != nil {
			cl.r = r
			cl.lines = 0
			if ok {
				cl.fg = col
			}
		}
		x++
	}
}

func (c *Canvas) line(x0, y0, x1, y1 int, color string) {
	col, ok := parseColor(color)
	mark := func(x, y int, dir uint8) {
		if cl := c.at(x, y); cl != nil {
			cl.lines |= dir
			if ok {
				cl.fg = col
			}
		}
	}

	if y0 == y1 {
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		for x := x0; x <= x1; x++ {
			var dir uint8
			if x > x0 {
				dir |= lineLeft
			}
			if x < x1 {
				dir |= lineRight
			}
			mark(x, y0, dir)
		}
		return
	}

	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		var dir uint8
		if y > y0 {
			dir |= lineUp
		}
		if y < y1 {
			dir |= lineDown
		}
		mark(x0, y, dir)
	}
}

func (cl *cell) rune() rune {
	if cl.lines != 0 {
		if r, ok := boxRunes[cl.lines]; ok {
			return r
		}
	}
	return cl.r
}

func (c *Canvas) Rune(x, y int) rune {
	if cl := c.at(x, y); cl != nil {
		return cl.rune()
	}
	return 0
}

func (c *Canvas) Background(x, y int) string {
	if cl := c.at(x, y); cl != nil {
		return cl.bg.Hex()
	}
	return ""
}

func (c *Canvas) Foreground(x, y int) string {
	if cl := c.at(x, y); cl != nil {
		return cl.fg.Hex()
	}
	return ""
}

// Row returns the characters of row y without colors.
func (c *Canvas) Row(y int) string {
	var b strings.Builder
	for x := 0; x < c.width; x++ {
		b.WriteRune(c.Rune(x, y))
	}
	return b.String()
}

func (c *Canvas) style(fg, bg string) lipgloss.Style {
	key := fg + bg
	st, ok := c.styles[key]
	if !ok {
		st = lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)).
			Background(lipgloss.Color(bg))
		c.styles[key] = st
	}
	return st
}

// String renders every row, grouping cells of equal colors into one styled
// run.
func (c *Canvas) String() string {
	rows := make([]string, 0, c.height)
	for y := 0; y < c.height; y++ {
		var row, run strings.Builder
		var fg, bg string
		for x := 0; x < c.width; x++ {
			cl := c.at(x, y)
			cfg, cbg := cl.fg.Hex(), cl.bg.Hex()
			if x > 0 && (cfg != fg || cbg != bg) {
				row.WriteString(c.style(fg, bg).Render(run.String()))
				run.Reset()
			}
			fg, bg = cfg, cbg
			run.WriteRune(cl.rune())
		}
		if run.Len() > 0 {
			row.WriteString(c.style(fg, bg).Render(run.String()))
		}
		rows = append(rows, row.String())
	}
	return strings.Join(rows, "\n")
}
