// Package ui provides lipgloss styles and rendering helpers for CLI output.
//
// The interactive TUI has its own styles in internal/wizard/tui; this
// package covers the plain command output (device tables, status lines).
package ui
