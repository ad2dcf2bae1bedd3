package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for CLI output
var (
	// Primary colors
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, checkmarks
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, X marks
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
)

// Shared styles for CLI output
var (
	// TitleStyle is for section headers (e.g., "DISCOVERED DEVICES")
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	// KeyStyle is for status keys (e.g., "Volume:")
	KeyStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(16)

	// ValueStyle is for status values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// SuccessStyle is for accepted-command output
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// ErrorStyle is for error output
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// MutedStyle is for secondary information
	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// TableHeaderStyle is for table column headers
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)
)

// Result markers
const (
	SuccessMarker = "✓"
	FailureMarker = "✗"
)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24 // Default fallback
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}
