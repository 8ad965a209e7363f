package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"

	"hexlens/internal/hexview"
)

type Theme struct {
	Background          string `toml:"background"`
	Foreground          string `toml:"foreground"`
	BorderColor         string `toml:"border_color"`
	HeaderColor         string `toml:"header_color"`
	SelectionForeground string `toml:"selection_foreground"`
	SelectionBackground string `toml:"selection_background"`
	LegendBackground    string `toml:"legend_background"`
	LegendHighlight     string `toml:"legend_highlight"`
}

// Highlight is a labelled byte range drawn over the grid.
type Highlight struct {
	Label string `toml:"label"`
	Color string `toml:"color"`
	Start int64  `toml:"start"`
	End   int64  `toml:"end"`
}

type Log struct {
	Debug bool   `toml:"debug"`
	File  string `toml:"file"`
}

type Config struct {
	Theme      Theme       `toml:"theme"`
	ScrollStep int         `toml:"scroll_step"`
	Highlights []Highlight `toml:"highlight"`
	Log        Log         `toml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme: Theme{
			Background:          "#000000",
			Foreground:          "#DDDDDD",
			BorderColor:         "#0000FF",
			HeaderColor:         "#5FAFFF",
			SelectionForeground: "#000000",
			SelectionBackground: "#FFAA00",
			LegendBackground:    "#0000FF",
			LegendHighlight:     "#FF0000",
		},
		ScrollStep: hexview.DefaultScrollStep,
	}
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hexlens.toml"
	}
	return filepath.Join(home, ".config", "hexlens", "hexlens.toml")
}

func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile decodes path over the defaults. A missing file is not an error.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ScrollStep <= 0 {
		return fmt.Errorf("scroll_step must be positive, got %d", c.ScrollStep)
	}
	for i, h := range c.Highlights {
		if h.Start < 0 || h.End < h.Start {
			return fmt.Errorf("highlight %d (%s): invalid range %d-%d", i, h.Label, h.Start, h.End)
		}
	}
	return nil
}

// WidgetStyle maps the theme onto the grid's colors.
func (t *Theme) WidgetStyle() hexview.Style {
	return hexview.Style{
		Foreground:         t.Foreground,
		Background:         t.Background,
		Border:             t.BorderColor,
		Header:             t.HeaderColor,
		SelectedForeground: t.SelectionForeground,
		SelectedBackground: t.SelectionBackground,
	}
}

// WidgetHighlights converts the configured highlights for the grid.
func (c *Config) WidgetHighlights() []hexview.Highlight {
	out := make([]hexview.Highlight, 0, len(c.Highlights))
	for _, h := range c.Highlights {
		out = append(out, hexview.Highlight{Color: h.Color, Start: h.Start, End: h.End})
	}
	return out
}

type Styles struct {
	Legend          lipgloss.Style
	LegendHighlight lipgloss.Style
	Border          lipgloss.Style
	Disabled        lipgloss.Style
	RegionLabel     lipgloss.Style
	HelpTitle       lipgloss.Style
	HelpKey         lipgloss.Style
	HelpDesc        lipgloss.Style
}

func NewStyles(theme *Theme) *Styles {
	return &Styles{
		Legend: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color("#FFFFFF")),
		LegendHighlight: lipgloss.NewStyle().
			Background(lipgloss.Color(theme.LegendBackground)).
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		Border: lipgloss.NewStyle().
			BorderForeground(lipgloss.Color(theme.BorderColor)),
		Disabled: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		RegionLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")),
		HelpTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")),
		HelpKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.LegendHighlight)).
			Bold(true),
		HelpDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")),
	}
}
