// Package tui holds the terminal presentation helpers shared by ai-skills
// commands: the color palette, result markers, markdown rendering and
// ANSI-aware column truncation.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorSuccess = lipgloss.Color("#10B981") // Green (installed)
	colorDanger  = lipgloss.Color("#EF4444") // Red (errors)
	colorMuted   = lipgloss.Color("#6B7280") // Gray
	colorWarning = lipgloss.Color("#F59E0B") // Amber
)

// Shared styles used across commands.
var (
	// Skill names in result headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Installed / success indicator.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	// Error text.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	// Warning text (per-target failures).
	WarningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// Muted text (paths, secondary info).
	MutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true)
)

// Result markers.
const (
	MarkSuccess = "✓"
	MarkWarning = "⚠"
	MarkFailure = "✗"
	MarkSkipped = "•"
)

// Success renders a green check followed by msg.
func Success(msg string) string {
	return SuccessStyle.Render(MarkSuccess) + " " + msg
}

// Warning renders a yellow warning marker followed by msg.
func Warning(msg string) string {
	return WarningStyle.Render(MarkWarning) + " " + WarningStyle.Render(msg)
}

// Failure renders a red cross followed by msg.
func Failure(msg string) string {
	return ErrorStyle.Render(MarkFailure) + " " + ErrorStyle.Render(msg)
}

// Skipped renders a muted bullet followed by msg.
func Skipped(msg string) string {
	return MutedStyle.Render(MarkSkipped) + " " + msg
}
