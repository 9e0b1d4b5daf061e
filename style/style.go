package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors, initialized to the dark theme. Updated via SetTheme().
var (
	Primary   color.Color = darkTheme.Primary
	Secondary color.Color = darkTheme.Secondary
	Success   color.Color = darkTheme.Success
	Warning   color.Color = darkTheme.Warning
	Error     color.Color = darkTheme.Error
	Muted     color.Color = darkTheme.Muted
	Dim       color.Color = darkTheme.Dim
	Border    color.Color = darkTheme.Border

	CardInfo  color.Color = darkTheme.CardInfo
	CardWarn  color.Color = darkTheme.CardWarn
	CardAlert color.Color = darkTheme.CardAlert

	MatchBgColor color.Color = darkTheme.MatchBg

	GradColorA color.Color = darkTheme.GradA
	GradColorB color.Color = darkTheme.GradB
)

// Base styles, rebuilt when the theme changes via rebuildStyles().
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Header
	HeaderSeparator lipgloss.Style // thin line below header
	HeaderVersion   lipgloss.Style
	HeaderDetail    lipgloss.Style

	// Item cards
	CardTitle       lipgloss.Style
	CardMeta        lipgloss.Style
	CardPlaceholder lipgloss.Style
	Match           lipgloss.Style

	// Status bar
	StatusBar       lipgloss.Style
	StatusLabel     lipgloss.Style
	StatusValue     lipgloss.Style
	StatusScrolling lipgloss.Style

	// Filter prompt
	FilterPrompt lipgloss.Style

	// Help
	HelpKey       lipgloss.Style // key binding display
	HelpDesc      lipgloss.Style // key description
	HelpSeparator lipgloss.Style

	// Scrollbar
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	CardInfo = t.CardInfo
	CardWarn = t.CardWarn
	CardAlert = t.CardAlert
	MatchBgColor = t.MatchBg
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

// Card returns the bordered frame for an item of the given severity
// (0 info, 1 warn, 2 alert).
func Card(severity int) lipgloss.Style {
	c := CardInfo
	switch severity {
	case 1:
		c = CardWarn
	case 2:
		c = CardAlert
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1)
}

func rebuildStyles() {
	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	HeaderSeparator = lipgloss.NewStyle().Foreground(Dim)
	HeaderVersion = lipgloss.NewStyle().Foreground(Muted)
	HeaderDetail = lipgloss.NewStyle().Foreground(Secondary)

	CardTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	CardMeta = lipgloss.NewStyle().Foreground(Muted)
	CardPlaceholder = lipgloss.NewStyle().Foreground(Dim)
	Match = lipgloss.NewStyle().Background(MatchBgColor).Bold(true)

	StatusBar = lipgloss.NewStyle().Foreground(Muted)
	StatusLabel = lipgloss.NewStyle().Foreground(Muted)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)
	StatusScrolling = lipgloss.NewStyle().Foreground(Warning).Bold(true)

	FilterPrompt = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	HelpKey = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Dim)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)
}
