package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sd-personal/fsradio/internal/version"
)

// Application branding constants
const (
	AppName   = "FSRADIO REMOTE"
	GitHubURL = "github.com/sd-personal/fsradio"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72  // Minimum supported terminal width
	MaxContentWidth  = 120 // Maximum content width before capping
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	AccentColor    = lipgloss.Color("#FF8B94") // Pink
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red

	TextColor       = lipgloss.Color("#FFFFFF") // White
	SubtleColor     = lipgloss.Color("#626262") // Gray
	BorderColor     = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor  = lipgloss.Color("#43BF6D") // Green (same as secondary)
	BackgroundColor = lipgloss.Color("#1A1A1A") // Dark gray
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Label column in the dashboard status panel
	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(12)

	// Value column in the dashboard status panel
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// Now-playing track line
	TrackStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// Transient action feedback line
	FlashStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderSubtitle renders a subtitle with consistent styling
func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderError renders an error message
func RenderError(text string) string {
	return ErrorStyle.Render("✗ " + text)
}

// BuildHeaderContent creates header content with app name and repository URL
func BuildHeaderContent() string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(GitHubURL)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer is the shared full-screen wrapper for all
// screens: bordered outer panel, application header, content area, and a
// context-sensitive footer pinned to the bottom.
//
// Every screen's View follows the same pattern:
//
//	func (m Model) View() string {
//	    content := m.buildContent()
//	    helpText := m.Help.View(m.Keys)
//	    return RenderApplicationContainer(content, helpText, m.Width, m.Height)
//	}
func RenderApplicationContainer(content string, footerText string, terminalWidth int, terminalHeight int) string {
	header := BuildHeaderContent()
	footer := BuildFooterContent(footerText)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth - 4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth - 4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth - 4)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(footer),
	)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top)

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		borderStyle.Render(innerContent),
	)
}
