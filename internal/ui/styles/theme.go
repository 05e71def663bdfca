package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand/accent colors
	Primary   lipgloss.Color // Red - focused items, active states
	Secondary lipgloss.Color // Gold - secondary accent (favorites)

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color // Primary text (bright)
	FgMuted  lipgloss.Color // Secondary text (dimmed)
	FgSubtle lipgloss.Color // Tertiary text (very dim)

	// Backgrounds
	BgCursor lipgloss.Color // Cursor/selection highlight

	// Borders
	Border      lipgloss.Color // Unfocused panel borders
	BorderFocus lipgloss.Color // Focused panel borders

	// Status colors
	Success lipgloss.Color // Green - playing
	Error   lipgloss.Color // Red - errors

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base     lipgloss.Style // Default text
	Muted    lipgloss.Style // Dimmed text
	Subtle   lipgloss.Style // Very dim text
	Title    lipgloss.Style // Bold, bright
	Playing  lipgloss.Style // Currently playing track
	Cursor   lipgloss.Style // Cursor background highlight
	Favorite lipgloss.Style // Favorited shows and tracks
	Error    lipgloss.Style
}

var defaultTheme = Theme{
	// Rose accent with a gold secondary
	Primary:   lipgloss.Color("#e45858"),
	Secondary: lipgloss.Color("#e8b339"),

	// Text hierarchy (grayscale)
	FgBase:   lipgloss.Color("#c8c8c8"),
	FgMuted:  lipgloss.Color("#858585"),
	FgSubtle: lipgloss.Color("#5a5a5a"),

	// Backgrounds
	BgCursor: lipgloss.Color("#32302f"),

	// Borders
	Border:      lipgloss.Color("#5a5a5a"),
	BorderFocus: lipgloss.Color("#e45858"),

	// Status
	Success: lipgloss.Color("#50b870"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Favorite: lipgloss.NewStyle().Foreground(t.Secondary),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
	}
}
