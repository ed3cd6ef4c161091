package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// BorderStyleUnified is the box border shared by panels
var BorderStyleUnified = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// CreatePanelStyle creates a bordered panel; focused panels get the accent border
func CreatePanelStyle(width, height int, focused bool) lipgloss.Style {
	border := ColorBrightBlack
	if focused {
		border = ColorBrightBlue
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Border(BorderStyleUnified).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Foreground(lipgloss.Color(ColorWhite))
}

// CreateSectionHeaderStyle creates a consistent section header style
func CreateSectionHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorBrightCyan)).
		MarginBottom(1)
}

// CreateHeaderStyle creates the page header style
func CreateHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorBrightCyan)).
		MarginLeft(1)
}

// CreateFooterStyle creates a consistent footer style
func CreateFooterStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrightBlack)).
		MarginTop(1).
		MarginLeft(1)
}

// CreateSecondaryTextStyle is used for placeholder rows and hints
func CreateSecondaryTextStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrightBlack)).
		Italic(true)
}

// CreateLoadingStyle creates a consistent loading state style
func CreateLoadingStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightYellow))
}

// CreateErrorStyle creates a consistent error style
func CreateErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBrightRed))
}

// CreateRowStyle styles a list row. cursor marks keyboard position, active
// marks the selected bucket.
func CreateRowStyle(cursor, active bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWhite))
	if active {
		style = style.Foreground(lipgloss.Color(ColorBrightGreen)).Bold(true)
	}
	if cursor {
		style = style.Background(lipgloss.Color("#2C2E33"))
	}
	return style
}

// CreateButtonStyle renders an affordance label, dimmed when disabled
func CreateButtonStyle(enabled bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	if !enabled {
		return style.
			Foreground(lipgloss.Color(ColorBrightBlack)).
			Background(lipgloss.Color("#25262B"))
	}
	return style.
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color(ColorBrightBlue)).
		Bold(true)
}

// CreateDropAreaStyle styles the upload drop area; dragOver highlights it
func CreateDropAreaStyle(width int, dragOver bool) lipgloss.Style {
	border := ColorBrightBlack
	if dragOver {
		border = ColorBrightYellow
	}
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Align(lipgloss.Center).
		Padding(0, 1)
}

// CreateDialogStyle creates a consistent dialog style
func CreateDialogStyle(width int, borderColor string) lipgloss.Style {
	if borderColor == "" {
		borderColor = ColorBrightBlue
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Padding(1, 3).
		Width(width).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(ColorWhite))
}

// CreatePromptStyle creates a style for prompt text in dialogs
func CreatePromptStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrightYellow)).
		Bold(true)
}
