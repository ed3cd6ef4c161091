package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	tuiconfig "github.com/HaiFongPan/s3clone-cli/internal/tui/config"
	"github.com/HaiFongPan/s3clone-cli/internal/tui/theme"
)

// View implements the bubbletea.Model interface
func (m *BrowserModel) View() string {
	leftWidth := max(int(float64(m.windowWidth)*tuiconfig.BucketPanelWidthRatio), tuiconfig.MinPanelWidth)
	rightWidth := max(m.windowWidth-leftWidth-2, tuiconfig.MinPanelWidth)

	panelHeight := m.windowHeight - tuiconfig.ReservedRows
	if panelHeight < tuiconfig.MinPanelHeight {
		panelHeight = tuiconfig.MinPanelHeight
	}
	objectHeight := panelHeight - tuiconfig.UploadPanelRows
	if objectHeight < tuiconfig.MinPanelHeight {
		objectHeight = tuiconfig.MinPanelHeight
	}

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		theme.CreateHeaderStyle().Render("S3 Clone"),
		"  ",
		m.renderStatus(),
		"  ",
		theme.CreateSecondaryTextStyle().Render(m.headerText()),
	)

	right := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderObjectPanel(rightWidth, objectHeight),
		m.renderUploadPanel(rightWidth),
	)

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderBucketPanel(leftWidth, panelHeight),
		lipgloss.NewStyle().Width(2).Render("  "),
		right,
	)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(content)
	if notes := m.notifier.View(); notes != "" {
		b.WriteString("\n")
		b.WriteString(notes)
	}
	b.WriteString("\n")
	b.WriteString(theme.CreateFooterStyle().Render(m.help.ShortHelpView(m.keyMap.ShortHelp())))
	baseView := b.String()

	switch {
	case m.confirm != nil:
		return m.renderFloatingDialog(m.renderConfirmation())
	case m.picking:
		return m.renderFloatingDialog(m.renderPicker())
	case m.showHelp:
		return m.renderFloatingDialog(m.renderHelpDialog())
	}
	return baseView
}

// renderFloatingDialog centres dialog on the screen
func (m *BrowserModel) renderFloatingDialog(dialog string) string {
	return lipgloss.Place(
		m.windowWidth,
		m.windowHeight,
		lipgloss.Center,
		lipgloss.Center,
		dialog,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("#222222")),
	)
}

func (m *BrowserModel) renderPicker() string {
	title := theme.CreatePromptStyle().Render("Choose a file to upload")
	hint := theme.CreateSecondaryTextStyle().Render("enter select • q close")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.picker.View(), "", hint)

	width := max(min(tuiconfig.FilePickerDialogWidth, m.windowWidth-4), tuiconfig.MinPanelWidth)
	return theme.CreateDialogStyle(width, theme.ColorBrightCyan).Render(content)
}

func (m *BrowserModel) renderHelpDialog() string {
	title := theme.CreatePromptStyle().Render("S3 Clone - Help")
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		m.help.FullHelpView(m.keyMap.FullHelp()),
		"",
		theme.CreateSecondaryTextStyle().Render("Press ? or esc to close help"),
	)

	width := max(min(tuiconfig.DialogLargeWidth, m.windowWidth-10), tuiconfig.MinPanelWidth)
	return theme.CreateDialogStyle(width, theme.ColorBrightYellow).Render(content)
}
