package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// URLColorCode is the ANSI 256 color used for links
const URLColorCode = "75"

// CreateStatusIndicatorStyle styles the online/offline indicator
func CreateStatusIndicatorStyle(online bool) lipgloss.Style {
	color := ColorBrightRed
	if online {
		color = ColorBrightGreen
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true)
}

// CreateProgressTextStyle creates a style for progress text
func CreateProgressTextStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorBrightCyan)).
		Bold(true)
}

// FormatClickableURL formats url as an OSC 8 terminal hyperlink
func FormatClickableURL(displayText, url string) string {
	hyperlink := fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, displayText)
	return fmt.Sprintf("\033[38;5;%sm\033[4m%s\033[0m", URLColorCode, hyperlink)
}
