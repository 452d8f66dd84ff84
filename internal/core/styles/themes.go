package styles

import (
	"image/color"
	"sort"

	lipgloss "charm.land/lipgloss/v2"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    color.Color
	Secondary  color.Color
	Foreground color.Color
	Muted      color.Color
	Background color.Color
	Surface    color.Color
	Paper      color.Color // page background inside the document pane
	Selection  color.Color
	Highlight  color.Color // search matches and minimap markers
	Warning    color.Color
	Error      color.Color
}

// DefaultTheme is the name of the default theme.
const DefaultTheme = "tokyo-night"

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	"tokyo-night": {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Paper:      lipgloss.Color("#24283b"),
		Selection:  lipgloss.Color("#33467c"),
		Highlight:  lipgloss.Color("#ffd700"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	"gruvbox": {
		Primary:    lipgloss.Color("#83a598"),
		Secondary:  lipgloss.Color("#8ec07c"),
		Foreground: lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#665c54"),
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Paper:      lipgloss.Color("#32302f"),
		Selection:  lipgloss.Color("#504945"),
		Highlight:  lipgloss.Color("#fabd2f"),
		Warning:    lipgloss.Color("#fe8019"),
		Error:      lipgloss.Color("#fb4934"),
	},
	"catppuccin": {
		Primary:    lipgloss.Color("#89b4fa"), // Blue
		Secondary:  lipgloss.Color("#94e2d5"), // Teal
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0
		Background: lipgloss.Color("#1e1e2e"), // Base
		Surface:    lipgloss.Color("#313244"), // Surface0
		Paper:      lipgloss.Color("#181825"), // Mantle
		Selection:  lipgloss.Color("#45475a"), // Surface1
		Highlight:  lipgloss.Color("#f9e2af"), // Yellow
		Warning:    lipgloss.Color("#fab387"), // Peach
		Error:      lipgloss.Color("#f38ba8"), // Red
	},
	"paper": {
		Primary:    lipgloss.Color("#1f5fbf"),
		Secondary:  lipgloss.Color("#2a7f8f"),
		Foreground: lipgloss.Color("#1c1c1c"),
		Muted:      lipgloss.Color("#8a8a8a"),
		Background: lipgloss.Color("#d9d9d9"),
		Surface:    lipgloss.Color("#c4c4c4"),
		Paper:      lipgloss.Color("#fbfbf8"),
		Selection:  lipgloss.Color("#b3d4fc"),
		Highlight:  lipgloss.Color("#ffd700"),
		Warning:    lipgloss.Color("#b8860b"),
		Error:      lipgloss.Color("#c0392b"),
	},
}

// ThemeNames returns sorted names of all built-in themes.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetPalette returns the palette for the given theme name.
func GetPalette(name string) (Palette, bool) {
	p, ok := themes[name]
	return p, ok
}
