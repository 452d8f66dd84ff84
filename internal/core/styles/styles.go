// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"fmt"
	"image/color"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	TextMutedStyle     lipgloss.Style
	TextPrimaryBold    lipgloss.Style
	TextForegroundBold lipgloss.Style
	TextSuccessStyle   lipgloss.Style
	TextWarningStyle   lipgloss.Style
	TextErrorStyle     lipgloss.Style

	// Document pane.
	PageStyle         lipgloss.Style
	GapStyle          lipgloss.Style
	SelectionStyle    lipgloss.Style
	MatchStyle        lipgloss.Style
	CurrentMatchStyle lipgloss.Style

	// Minimap strip.
	MinimapTrackStyle lipgloss.Style
	MinimapPageStyle  lipgloss.Style
	MinimapBandStyle  lipgloss.Style

	// Status and search bars.
	StatusBarStyle    lipgloss.Style
	StatusKeyStyle    lipgloss.Style
	StatusMutedStyle  lipgloss.Style
	StatusErrorStyle  lipgloss.Style
	SearchPromptStyle lipgloss.Style
	HelpStyle         lipgloss.Style
	HelpBoxStyle      lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	TextMutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	TextPrimaryBold = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	TextForegroundBold = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	TextSuccessStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
	TextWarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning)
	TextErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	PageStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Paper)
	GapStyle = lipgloss.NewStyle().
		Background(p.Background)
	SelectionStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Selection)
	MatchStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(Blend(p.Paper, p.Highlight, 0.6))
	CurrentMatchStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Highlight).
		Bold(true)

	MinimapTrackStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Background(p.Background)
	MinimapPageStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Background(p.Surface)
	MinimapBandStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(Blend(p.Surface, p.Primary, 0.45))

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Background(p.Surface).
		Padding(0, 1)
	StatusKeyStyle = lipgloss.NewStyle().
		Foreground(p.Background).
		Background(p.Primary).
		Bold(true).
		Padding(0, 1)
	StatusMutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Background(p.Surface)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Background(p.Surface)
	SearchPromptStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	HelpBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// ParseColor parses a hex color such as "#ffd700".
func ParseColor(hex string) (color.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return c, nil
}

// Blend mixes two colors in Lab space. t=0 yields a, t=1 yields b.
func Blend(a, b color.Color, t float64) color.Color {
	ca, ok := colorful.MakeColor(a)
	if !ok {
		return b
	}
	cb, ok := colorful.MakeColor(b)
	if !ok {
		return a
	}
	return ca.BlendLab(cb, t).Clamped()
}

// Hex renders a color as "#rrggbb". Nil colors render as an empty string.
func Hex(c color.Color) string {
	if c == nil {
		return ""
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return ""
	}
	return cc.Hex()
}
