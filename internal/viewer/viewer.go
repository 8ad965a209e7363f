package viewer

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hexlens/internal/buffer"
	"hexlens/internal/config"
	"hexlens/internal/hexview"
	"hexlens/internal/logger"
)

type View int

const (
	ViewMain View = iota
	ViewHelp
	ViewGoto
	ViewFind
)

// Rows taken by the legend above the grid and the region/prompt line below.
const (
	widgetTop    = 1
	reservedRows = 2
)

type Model struct {
	widget *hexview.Widget
	buf    *buffer.Buffer
	config *config.Config
	styles *config.Styles
	keys   KeyMap
	view   View
	width  int
	height int

	// Labels of the configured regions overlapping the selection.
	regions     []string
	regionIndex int

	gotoInput string

	findInput string
	findHex   bool

	statusMsg string
}

func NewModel(buf *buffer.Buffer, cfg *config.Config) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	m := &Model{
		widget:      hexview.New(hexview.CellLayout(), hexview.FixedFont{CharWidth: 1, LineHeight: 1}),
		buf:         buf,
		config:      cfg,
		styles:      config.NewStyles(&cfg.Theme),
		keys:        DefaultKeyMap(),
		view:        ViewMain,
		regionIndex: -1,
	}

	m.widget.OnInvalidate(m.refreshRegions)
	m.widget.SetStyle(cfg.Theme.WidgetStyle())
	m.widget.SetScrollStep(cfg.ScrollStep)
	m.widget.SetSource(buf)
	m.widget.SetHighlights(cfg.WidgetHighlights())

	return m
}

func (m *Model) Widget() *hexview.Widget {
	return m.widget
}

// Regions returns the labels of the configured regions under the selection.
func (m *Model) Regions() []string {
	return m.regions
}

func (m *Model) refreshRegions() {
	m.regions = m.regions[:0]
	r, ok := m.widget.SelectionRange()
	if !ok {
		return
	}
	for _, h := range m.config.Highlights {
		if r.Overlaps(h.Start, h.End) {
			m.regions = append(m.regions, h.Label)
		}
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.widget.SetSize(msg.Width, msg.Height-reservedRows)
		return m, nil

	case tea.MouseMsg:
		if m.view == ViewMain {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	pt := hexview.Point{X: msg.X, Y: msg.Y - widgetTop}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.widget.Wheel(1)
		case tea.MouseButtonWheelDown:
			m.widget.Wheel(-1)
		case tea.MouseButtonLeft:
			m.widget.PointerDown(pt, hexview.ButtonPrimary)
		case tea.MouseButtonRight:
			m.widget.PointerDown(pt, hexview.ButtonSecondary)
		case tea.MouseButtonMiddle:
			m.widget.PointerDown(pt, hexview.ButtonMiddle)
		}
	case tea.MouseActionMotion:
		m.widget.PointerMove(pt)
	case tea.MouseActionRelease:
		// Legacy mouse encodings do not say which button was released.
		switch msg.Button {
		case tea.MouseButtonLeft, tea.MouseButtonNone:
			m.widget.PointerUp(pt, hexview.ButtonPrimary)
		}
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.statusMsg = ""

	switch m.view {
	case ViewHelp:
		return m.handleHelpKey(msg)
	case ViewGoto:
		return m.handleGotoKey(msg)
	case ViewFind:
		return m.handleFindKey(msg)
	default:
		return m.handleMainKey(msg)
	}
}

func (m *Model) pageLines() int64 {
	n := int64(m.widget.Geometry().DataLines())
	if n < 1 {
		n = 1
	}
	return n
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.widget.ScrollLines(-1)
	case key.Matches(msg, m.keys.Down):
		m.widget.ScrollLines(1)
	case key.Matches(msg, m.keys.PageUp):
		m.widget.ScrollLines(-m.pageLines())
	case key.Matches(msg, m.keys.PageDown):
		m.widget.ScrollLines(m.pageLines())
	case key.Matches(msg, m.keys.Top):
		m.widget.ScrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.widget.ScrollTo(m.widget.MaxLine())
	case key.Matches(msg, m.keys.ClearSelection):
		m.widget.ClearSelection()
	case key.Matches(msg, m.keys.NextRegion):
		m.selectRegion(1)
	case key.Matches(msg, m.keys.PrevRegion):
		m.selectRegion(-1)
	case key.Matches(msg, m.keys.Goto):
		m.view = ViewGoto
		m.gotoInput = ""
	case key.Matches(msg, m.keys.Find):
		m.view = ViewFind
		m.findInput = ""
	case key.Matches(msg, m.keys.Help):
		m.view = ViewHelp
	}
	return m, nil
}

// selectRegion selects the next (dir > 0) or previous configured region.
func (m *Model) selectRegion(dir int) {
	n := len(m.config.Highlights)
	if n == 0 {
		m.statusMsg = "No regions configured"
		return
	}
	if m.regionIndex < 0 && dir < 0 {
		m.regionIndex = 0
	}
	m.regionIndex = ((m.regionIndex+dir)%n + n) % n
	h := m.config.Highlights[m.regionIndex]
	m.widget.SelectRange(h.Start, h.End, true)
	logger.Debug("region selected", "label", h.Label, "start", h.Start, "end", h.End)
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape || key.Matches(msg, m.keys.Help) {
		m.view = ViewMain
	}
	return m, nil
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
	case tea.KeyEnter:
		m.doGoto()
		m.view = ViewMain
	case tea.KeyBackspace:
		if len(m.gotoInput) > 0 {
			m.gotoInput = m.gotoInput[:len(m.gotoInput)-1]
		}
	default:
		char := msg.String()
		if len(char) == 1 && (isHexChar(char) || char == "x" || char == "X") {
			m.gotoInput += char
		}
	}
	return m, nil
}

func (m *Model) doGoto() {
	if m.gotoInput == "" {
		return
	}
	offset, err := parseOffset(m.gotoInput)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Invalid offset: %s", m.gotoInput)
		return
	}
	m.widget.Select(offset, true)
}

func parseOffset(s string) (int64, error) {
	input := strings.ToLower(s)
	if strings.HasPrefix(input, "0x") {
		return strconv.ParseInt(input[2:], 16, 64)
	}
	return strconv.ParseInt(input, 10, 64)
}

func (m *Model) handleFindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.view = ViewMain
	case tea.KeyTab:
		m.findHex = !m.findHex
		m.findInput = ""
	case tea.KeyEnter:
		m.doFind()
	case tea.KeyBackspace:
		if len(m.findInput) > 0 {
			m.findInput = m.findInput[:len(m.findInput)-1]
		}
	default:
		char := msg.String()
		if msg.Type == tea.KeySpace {
			char = " "
		}
		if len(char) == 1 && (!m.findHex || isHexChar(char) || char == " ") {
			m.findInput += char
		}
	}
	return m, nil
}

func (m *Model) findPattern() []byte {
	if !m.findHex {
		return []byte(m.findInput)
	}
	s := strings.ReplaceAll(m.findInput, " ", "")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	result := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		b, _ := strconv.ParseUint(s[i:i+2], 16, 8)
		result[i/2] = byte(b)
	}
	return result
}

// doFind searches forward from just after the selection start and selects
// the match.
func (m *Model) doFind() {
	pattern := m.findPattern()
	if len(pattern) == 0 {
		return
	}

	start := m.widget.SelectionStart() + 1
	pos := m.buf.Find(pattern, start, true)
	if pos < 0 && start > 0 {
		pos = m.buf.Find(pattern, 0, true)
	}
	if pos < 0 {
		m.statusMsg = "Not found"
		return
	}
	m.widget.SelectRange(pos, pos+int64(len(pattern))-1, true)
	m.statusMsg = fmt.Sprintf("%d matches", m.buf.CountMatches(pattern))
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderLegend())
	b.WriteString("\n")

	if m.view == ViewHelp {
		b.WriteString(m.renderHelp())
		return b.String()
	}

	b.WriteString(m.renderWidget())
	b.WriteString("\n")

	switch m.view {
	case ViewGoto:
		b.WriteString(m.renderGoto())
	case ViewFind:
		b.WriteString(m.renderFind())
	default:
		b.WriteString(m.renderRegions())
	}

	return b.String()
}

func (m *Model) renderWidget() string {
	g := m.widget.Geometry()
	canvas := NewCanvas(g.Width, g.Height)
	canvas.Apply(m.widget.Render())
	return canvas.String()
}

func (m *Model) renderLegend() string {
	var items []string

	hl := func(text string, highlightIdx int) string {
		var result strings.Builder
		for i, ch := range text {
			if i == highlightIdx {
				result.WriteString(m.styles.LegendHighlight.Render(string(ch)))
			} else {
				result.WriteString(m.styles.Legend.Render(string(ch)))
			}
		}
		return result.String()
	}

	items = append(items, hl("Quit", 0))
	items = append(items, hl("Help", 0))

	if m.view == ViewMain {
		items = append(items, hl("Goto", 0))
		items = append(items, hl("Find", 0))
		if len(m.config.Highlights) > 0 {
			items = append(items, hl("Next", 0))
			items = append(items, hl("Prev", 0))
		} else {
			items = append(items, m.styles.Disabled.Render("Next"))
			items = append(items, m.styles.Disabled.Render("Prev"))
		}
		items = append(items, m.styles.Legend.Render(filepath.Base(m.buf.Filename())))
	} else {
		items = append(items, m.styles.LegendHighlight.Render("ESC")+m.styles.Legend.Render(" Back"))
	}

	legend := strings.Join(items, m.styles.Legend.Render(" | "))
	return m.styles.Legend.Width(m.width).Render(legend)
}

func (m *Model) renderRegions() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	if len(m.regions) == 0 {
		return m.styles.Disabled.Render("No region")
	}
	return m.styles.RegionLabel.Render("Region: ") + strings.Join(m.regions, ", ")
}

func (m *Model) renderGoto() string {
	return "Goto offset (0x for hex): " + m.gotoInput + "_"
}

func (m *Model) renderFind() string {
	mode := "ASCII"
	if m.findHex {
		mode = "Hex"
	}
	line := fmt.Sprintf("Find %s (TAB toggles): %s_", mode, m.findInput)
	if m.statusMsg != "" {
		line += "  " + m.statusMsg
	}
	return line
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.HelpTitle.Render("HELP - hexlens"))
	b.WriteString("\n\n")
	for _, binding := range m.keys.Bindings() {
		h := binding.Help()
		b.WriteString(m.styles.HelpKey.Render(fmt.Sprintf("  %-10s", h.Key)))
		b.WriteString(m.styles.HelpDesc.Render(h.Desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.HelpDesc.Render("  Drag with the left button to select bytes; the wheel scrolls."))
	b.WriteString("\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Border.GetBorderTopForeground()).
		Padding(1, 2).
		Render(b.String())
	return box
}

func isHexChar(s string) bool {
	if len(s) != 1 {
		return false
	}
	c := s[0]
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
