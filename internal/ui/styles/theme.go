// Package styles holds the color themes and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Name identifies a theme. Values match the persisted theme setting.
type Name string

const (
	Light Name = "light"
	Dark  Name = "dark"
)

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	Name Name

	Primary   lipgloss.Color // focused items, playing page
	Secondary lipgloss.Color // gradient end, accents

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Cursor  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Banner  lipgloss.Style // error banner
}

var darkTheme = Theme{
	Name:        Dark,
	Primary:     lipgloss.Color("#34d399"),
	Secondary:   lipgloss.Color("#f1a208"),
	FgBase:      lipgloss.Color("#d0d0d0"),
	FgMuted:     lipgloss.Color("#8a8a8a"),
	FgSubtle:    lipgloss.Color("#5c5c5c"),
	BgCursor:    lipgloss.Color("#303030"),
	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#34d399"),
	Error:       lipgloss.Color("#ff5555"),
	Warning:     lipgloss.Color("#f1a208"),
}

var lightTheme = Theme{
	Name:        Light,
	Primary:     lipgloss.Color("#047857"),
	Secondary:   lipgloss.Color("#b45309"),
	FgBase:      lipgloss.Color("#1f1f1f"),
	FgMuted:     lipgloss.Color("#5f5f5f"),
	FgSubtle:    lipgloss.Color("#9e9e9e"),
	BgCursor:    lipgloss.Color("#e4e4e4"),
	Border:      lipgloss.Color("#bcbcbc"),
	BorderFocus: lipgloss.Color("#047857"),
	Error:       lipgloss.Color("#c62828"),
	Warning:     lipgloss.Color("#b45309"),
}

// ParseName returns the theme name for s, defaulting to Light for
// anything unrecognized.
func ParseName(s string) Name {
	if Name(s) == Dark {
		return Dark
	}
	return Light
}

// Toggle returns the other theme name.
func (n Name) Toggle() Name {
	if n == Dark {
		return Light
	}
	return Dark
}

// ForName returns the theme for n.
func ForName(n Name) *Theme {
	if n == Dark {
		return &darkTheme
	}
	return &lightTheme
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
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor:  lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
		Banner: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true).
			Padding(0, 1),
	}
}

// Panel returns a bordered panel style for the theme.
func (t *Theme) Panel(focused bool) lipgloss.Style {
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// Heading renders text with the theme's primary-to-secondary gradient.
func (t *Theme) Heading(text string) string {
	return ApplyBoldGradient(text, t.Primary, t.Secondary)
}
