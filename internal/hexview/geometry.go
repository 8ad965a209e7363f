package hexview

const (
	BytesPerLine = 16

	// Grid columns, in characters from the left text edge. The offset column
	// is 8 hex digits plus two spaces; each byte cell is "XX" plus a separator;
	// the ASCII column follows a two character gutter.
	offsetColumns = 10
	hexColumn     = offsetColumns
	hexCellWidth  = 3
	hexLastColumn = hexColumn + BytesPerLine*hexCellWidth - 2 // last digit of the final byte
	asciiColumn   = hexColumn + BytesPerLine*hexCellWidth + 2
	gridColumns   = asciiColumn + BytesPerLine

	// headerLines covers the column header above the data lines and the
	// status line below them.
	headerLines = 2
)

type Region int

const (
	RegionNone Region = iota
	RegionHex
	RegionSpace
	RegionASCII
)

func (r Region) String() string {
	switch r {
	case RegionHex:
		return "hex"
	case RegionSpace:
		return "space"
	case RegionASCII:
		return "ascii"
	default:
		return "none"
	}
}

type Point struct {
	X, Y int
}

type Rect struct {
	X, Y, W, H int
}

// Metrics are the measured cell size of the active font.
type Metrics struct {
	CharWidth  int
	LineHeight int
}

// Layout holds the fixed chrome around the grid, in the same units as Metrics.
type Layout struct {
	PadX      int
	PadY      int
	TextInset int // horizontal gap between PadX and the first text column
	HeaderGap int // vertical gap between the header and the first data line
	StatusGap int // vertical gap between the last data line and the status line
	Chrome    int // vertical space taken by borders, excluded from line count
}

// PixelLayout matches a GUI surface drawing a fixed-pitch font in pixels.
func PixelLayout() Layout {
	return Layout{PadX: 5, PadY: 5, TextInset: 3, HeaderGap: 2, StatusGap: 4, Chrome: 4}
}

// CellLayout matches a terminal where one unit is one character cell. One
// row is kept for the border above the header, one for the rule under it and
// one for the border below the data.
func CellLayout() Layout {
	return Layout{PadX: 1, PadY: 1, TextInset: 0, HeaderGap: 1, StatusGap: 1, Chrome: 1}
}

type HitResult struct {
	Region Region
	Index  int64
}

// Geometry converts between surface coordinates and grid positions for a
// surface of the given size.
type Geometry struct {
	Layout  Layout
	Metrics Metrics
	Width   int
	Height  int
}

func (g Geometry) valid() bool {
	return g.Metrics.CharWidth > 0 && g.Metrics.LineHeight > 0
}

// VisibleLines is the number of text lines that fit, including the header
// and status lines.
func (g Geometry) VisibleLines() int {
	if !g.valid() {
		return 0
	}
	n := (g.Height - g.Layout.PadY*2 - g.Layout.Chrome) / g.Metrics.LineHeight
	if n < 0 {
		return 0
	}
	return n
}

// DataLines is the number of byte lines that fit below the header.
func (g Geometry) DataLines() int {
	n := g.VisibleLines() - headerLines
	if n < 0 {
		return 0
	}
	return n
}

func (g Geometry) TextX() int {
	return g.Layout.PadX + g.Layout.TextInset
}

func (g Geometry) HeaderY() int {
	return g.Layout.PadY
}

// LineY is the top of data line n, counted from the first visible line.
func (g Geometry) LineY(n int) int {
	return g.Layout.PadY + g.Metrics.LineHeight + g.Layout.HeaderGap + n*g.Metrics.LineHeight
}

func (g Geometry) StatusY() int {
	return g.LineY(g.DataLines()) + g.Layout.StatusGap
}

func (g Geometry) ColumnX(col int) int {
	return g.TextX() + col*g.Metrics.CharWidth
}

// HexX is the left edge of byte col's hex cell.
func (g Geometry) HexX(col int) int {
	return g.ColumnX(hexColumn + col*hexCellWidth)
}

// ASCIIX is the left edge of byte col's ASCII cell.
func (g Geometry) ASCIIX(col int) int {
	return g.ColumnX(asciiColumn + col)
}

// BorderRect encloses the header and the data lines.
func (g Geometry) BorderRect() Rect {
	x := g.Layout.PadX / 2
	y := g.Layout.PadY / 2
	right := g.ColumnX(gridColumns + 1)
	bottom := g.LineY(g.DataLines())
	return Rect{X: x, Y: y, W: right - x, H: bottom - y + 1}
}

// HitTest maps a point to the byte under it. topLine is the first visible
// line and length the size of the bound source.
func (g Geometry) HitTest(pt Point, topLine, length int64) HitResult {
	if length <= 0 || !g.valid() {
		return HitResult{}
	}

	currentLine := floorDiv(pt.Y-g.Layout.PadY-g.Layout.HeaderGap, g.Metrics.LineHeight) - 1
	if currentLine < 0 || currentLine >= g.DataLines() {
		return HitResult{}
	}

	indexBase := (topLine + int64(currentLine)) * BytesPerLine

	gridX := floorDiv(pt.X-g.TextX(), g.Metrics.CharWidth)
	var (
		index  int64
		region Region
	)
	switch {
	case gridX > hexColumn-1 && gridX <= hexLastColumn:
		rel := gridX - (hexColumn - 1)
		index = indexBase + int64(rel/hexCellWidth)
		region = RegionHex
		if rel%hexCellWidth == 0 {
			region = RegionSpace
		}
	case gridX >= asciiColumn && gridX < gridColumns:
		index = indexBase + int64(gridX-asciiColumn)
		region = RegionASCII
	default:
		return HitResult{}
	}

	if index < 0 {
		return HitResult{Region: RegionSpace, Index: 0}
	}
	if index >= length {
		return HitResult{Region: RegionSpace, Index: length - 1}
	}
	return HitResult{Region: region, Index: index}
}

// PointOf returns a point inside the cell of offset in the given region, or
// false when the offset is not on a visible line.
func (g Geometry) PointOf(offset, topLine int64, region Region) (Point, bool) {
	line := offset/BytesPerLine - topLine
	if offset < 0 || line < 0 || line >= int64(g.DataLines()) {
		return Point{}, false
	}
	col := int(offset % BytesPerLine)
	y := g.LineY(int(line)) + g.Metrics.LineHeight/2

	switch region {
	case RegionHex:
		return Point{X: g.HexX(col) + g.Metrics.CharWidth/2, Y: y}, true
	case RegionASCII:
		return Point{X: g.ASCIIX(col) + g.Metrics.CharWidth/2, Y: y}, true
	}
	return Point{}, false
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
