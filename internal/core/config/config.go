// Package config handles configuration loading and validation for pagelens.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/pagelens/internal/core/styles"
)

// Zoom modes accepted by view.zoom.
const (
	ZoomFitWidth = "fit-width"
	ZoomFitPage  = "fit-page"
	ZoomCustom   = "custom"
)

// Config holds the application configuration.
type Config struct {
	View      ViewConfig      `yaml:"view"`
	Search    SearchConfig    `yaml:"search"`
	Minimap   MinimapConfig   `yaml:"minimap"`
	TUI       TUIConfig       `yaml:"tui"`
	Documents DocumentsConfig `yaml:"documents"`
}

// ViewConfig holds the initial view state of the document pane.
type ViewConfig struct {
	Zoom                string  `yaml:"zoom"`                   // fit-width, fit-page or custom
	ZoomFactor          float64 `yaml:"zoom_factor"`            // used when zoom is custom
	PageSpacing         float64 `yaml:"page_spacing"`           // pixels between stacked pages
	Margins             Margins `yaml:"margins"`                // pixels around the page stack
	DeviceUnitsPerPoint float64 `yaml:"device_units_per_point"` // pixels per point at zoom factor 1
}

// Margins are document margins in pixels.
type Margins struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// SearchConfig holds live and batch search options.
type SearchConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	LiveMinimap    *bool         `yaml:"live_minimap"` // nil = enabled
	HighlightColor string        `yaml:"highlight_color"`
	BatchColor     string        `yaml:"batch_color"`
}

// MinimapConfig holds overview strip options.
type MinimapConfig struct {
	Width          int     `yaml:"width"`           // columns
	HoverThreshold float64 `yaml:"hover_threshold"` // rows
	ClickThreshold float64 `yaml:"click_threshold"` // rows
	PageSpacing    float64 `yaml:"page_spacing"`    // points between pages in the layout
	DrawPages      *bool   `yaml:"draw_pages"`      // nil = enabled
}

// TUIConfig holds terminal UI options.
type TUIConfig struct {
	Theme       string        `yaml:"theme"`
	CellWidth   float64       `yaml:"cell_width"`  // pixels per terminal column
	CellHeight  float64       `yaml:"cell_height"` // pixels per terminal row
	DoubleClick time.Duration `yaml:"double_click"`
	ScrollRows  int           `yaml:"scroll_rows"`
}

// DocumentsConfig controls how plain text and markdown files are paginated.
type DocumentsConfig struct {
	Columns      int     `yaml:"columns"`
	LinesPerPage int     `yaml:"lines_per_page"`
	Margin       float64 `yaml:"margin"`      // points
	CharWidth    float64 `yaml:"char_width"`  // points
	LineHeight   float64 `yaml:"line_height"` // points
	Watch        *bool   `yaml:"watch"`       // nil = enabled
}

// LiveMinimapEnabled reports whether live search results drive the minimap.
func (s SearchConfig) LiveMinimapEnabled() bool {
	return s.LiveMinimap == nil || *s.LiveMinimap
}

// DrawPagesEnabled reports whether page bands are drawn on the minimap.
func (m MinimapConfig) DrawPagesEnabled() bool {
	return m.DrawPages == nil || *m.DrawPages
}

// WatchEnabled reports whether open documents reload when their file changes.
func (d DocumentsConfig) WatchEnabled() bool {
	return d.Watch == nil || *d.Watch
}

// DefaultConfig returns a Config with sensible defaults. The document
// metrics produce US Letter sized pages (612x792pt) and the custom zoom
// maps one character cell onto one terminal cell.
func DefaultConfig() Config {
	return Config{
		View: ViewConfig{
			Zoom:                ZoomCustom,
			ZoomFactor:          1.0,
			PageSpacing:         16,
			Margins:             Margins{Left: 16, Top: 16, Right: 16, Bottom: 16},
			DeviceUnitsPerPoint: 96.0 / 72.0,
		},
		Search: SearchConfig{
			Debounce:       320 * time.Millisecond,
			HighlightColor: "#ffd700",
			BatchColor:     "#ff8c00",
		},
		Minimap: MinimapConfig{
			Width:          2,
			HoverThreshold: 0.75,
			ClickThreshold: 1,
		},
		TUI: TUIConfig{
			Theme:       styles.DefaultTheme,
			CellWidth:   8,
			CellHeight:  16,
			DoubleClick: 400 * time.Millisecond,
			ScrollRows:  3,
		},
		Documents: DocumentsConfig{
			Columns:      90,
			LinesPerPage: 60,
			Margin:       36,
			CharWidth:    6,
			LineHeight:   12,
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.View.Zoom == "" {
		c.View.Zoom = defaults.View.Zoom
	}
	if c.View.ZoomFactor == 0 {
		c.View.ZoomFactor = defaults.View.ZoomFactor
	}
	if c.View.DeviceUnitsPerPoint == 0 {
		c.View.DeviceUnitsPerPoint = defaults.View.DeviceUnitsPerPoint
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = defaults.Search.Debounce
	}
	if c.Search.HighlightColor == "" {
		c.Search.HighlightColor = defaults.Search.HighlightColor
	}
	if c.Search.BatchColor == "" {
		c.Search.BatchColor = defaults.Search.BatchColor
	}
	if c.Minimap.Width == 0 {
		c.Minimap.Width = defaults.Minimap.Width
	}
	if c.Minimap.HoverThreshold == 0 {
		c.Minimap.HoverThreshold = defaults.Minimap.HoverThreshold
	}
	if c.Minimap.ClickThreshold == 0 {
		c.Minimap.ClickThreshold = defaults.Minimap.ClickThreshold
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.CellWidth == 0 {
		c.TUI.CellWidth = defaults.TUI.CellWidth
	}
	if c.TUI.CellHeight == 0 {
		c.TUI.CellHeight = defaults.TUI.CellHeight
	}
	if c.TUI.DoubleClick == 0 {
		c.TUI.DoubleClick = defaults.TUI.DoubleClick
	}
	if c.TUI.ScrollRows == 0 {
		c.TUI.ScrollRows = defaults.TUI.ScrollRows
	}
	if c.Documents.Columns == 0 {
		c.Documents.Columns = defaults.Documents.Columns
	}
	if c.Documents.LinesPerPage == 0 {
		c.Documents.LinesPerPage = defaults.Documents.LinesPerPage
	}
	if c.Documents.CharWidth == 0 {
		c.Documents.CharWidth = defaults.Documents.CharWidth
	}
	if c.Documents.LineHeight == 0 {
		c.Documents.LineHeight = defaults.Documents.LineHeight
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if !isValidZoom(c.View.Zoom) {
		return fmt.Errorf("view.zoom must be one of %s, %s, %s, got %q", ZoomFitWidth, ZoomFitPage, ZoomCustom, c.View.Zoom)
	}

	if c.View.ZoomFactor <= 0 {
		return fmt.Errorf("view.zoom_factor must be positive")
	}

	if c.View.PageSpacing < 0 {
		return fmt.Errorf("view.page_spacing cannot be negative")
	}

	m := c.View.Margins
	if m.Left < 0 || m.Top < 0 || m.Right < 0 || m.Bottom < 0 {
		return fmt.Errorf("view.margins cannot be negative")
	}

	if c.View.DeviceUnitsPerPoint <= 0 {
		return fmt.Errorf("view.device_units_per_point must be positive")
	}

	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce cannot be negative")
	}

	if c.Minimap.Width < 1 {
		return fmt.Errorf("minimap.width must be at least 1")
	}

	if c.Minimap.PageSpacing < 0 {
		return fmt.Errorf("minimap.page_spacing cannot be negative")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme", c.TUI.Theme)
	}

	if c.TUI.CellWidth <= 0 || c.TUI.CellHeight <= 0 {
		return fmt.Errorf("tui.cell_width and tui.cell_height must be positive")
	}

	if c.Documents.Columns < 1 || c.Documents.LinesPerPage < 1 {
		return fmt.Errorf("documents.columns and documents.lines_per_page must be at least 1")
	}

	if c.Documents.CharWidth <= 0 || c.Documents.LineHeight <= 0 {
		return fmt.Errorf("documents.char_width and documents.line_height must be positive")
	}

	if c.Documents.Margin < 0 {
		return fmt.Errorf("documents.margin cannot be negative")
	}

	return nil
}

func isValidZoom(zoom string) bool {
	switch zoom {
	case ZoomFitWidth, ZoomFitPage, ZoomCustom:
		return true
	default:
		return false
	}
}
