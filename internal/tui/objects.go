package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3clone-cli/internal/session"
	tuiconfig "github.com/HaiFongPan/s3clone-cli/internal/tui/config"
	"github.com/HaiFongPan/s3clone-cli/internal/tui/theme"
	"github.com/HaiFongPan/s3clone-cli/internal/utils"
)

type objectsLoadedMsg struct {
	bucket string
	files  []string
	err    error
}

type urlCopiedMsg struct {
	url string
	err error
}

// refreshObjects refetches the object listing of bucket
func (m *BrowserModel) refreshObjects(bucket string) tea.Cmd {
	m.objectsBucket = bucket
	m.objectStatus = listLoading
	m.objects = nil
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		files, err := svc.ListObjects(ctx, bucket)
		return objectsLoadedMsg{bucket: bucket, files: files, err: err}
	}
}

// handleObjectsLoaded applies a listing. Listings of a bucket that is no
// longer current are dropped.
func (m *BrowserModel) handleObjectsLoaded(msg objectsLoadedMsg) tea.Cmd {
	if msg.bucket != m.state.CurrentBucket() {
		logrus.Debugf("discarding listing of %s, current bucket is %q", msg.bucket, m.state.CurrentBucket())
		return nil
	}

	m.objectsBucket = msg.bucket
	if msg.err != nil {
		logrus.WithError(msg.err).Errorf("failed to load files of %s", msg.bucket)
		m.objects = nil
		m.objectStatus = listFailed
		m.objectCursor = 0
		return m.notifier.Error("Failed to load files")
	}

	m.objects = msg.files
	m.objectStatus = listReady
	m.objectCursor = clamp(m.objectCursor, len(m.objects))
	return nil
}

func (m *BrowserModel) objectAtCursor() (string, bool) {
	if m.objectStatus != listReady || len(m.objects) == 0 {
		return "", false
	}
	return m.objects[clamp(m.objectCursor, len(m.objects))], true
}

// downloadAtCursor hands the retrieval URL to the opener. There is no
// feedback path; opener failures are only logged.
func (m *BrowserModel) downloadAtCursor() tea.Cmd {
	key, ok := m.objectAtCursor()
	if !ok {
		return nil
	}
	url := m.service.DownloadURL(m.objectsBucket, key)
	open := m.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			logrus.WithError(err).Warnf("failed to open %s", url)
		}
		return nil
	}
}

func (m *BrowserModel) copyURLAtCursor() tea.Cmd {
	key, ok := m.objectAtCursor()
	if !ok {
		return nil
	}
	url := m.service.DownloadURL(m.objectsBucket, key)
	copyText := m.copyText
	return func() tea.Msg {
		return urlCopiedMsg{url: url, err: copyText(url)}
	}
}

// renderObjectPanel renders the listing of the current bucket
func (m *BrowserModel) renderObjectPanel(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.CreateSectionHeaderStyle().Render("Files"))
	b.WriteString("\n")

	switch m.objectStatus {
	case listNoBucket:
		b.WriteString(theme.CreateSecondaryTextStyle().Render("No bucket selected"))
	case listLoading:
		b.WriteString(theme.CreateLoadingStyle().Render(m.spinner.View() + " Loading files..."))
	case listFailed:
		b.WriteString(theme.CreateErrorStyle().Render("Failed to load files"))
	default:
		if len(m.objects) == 0 {
			b.WriteString(theme.CreateSecondaryTextStyle().Render("No files in this bucket"))
			break
		}
		start, end := visibleWindow(m.objectCursor, len(m.objects), height-3)
		for i := start; i < end; i++ {
			b.WriteString(m.renderObjectRow(i))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
		if m.focus == paneObjects {
			if key, ok := m.objectAtCursor(); ok {
				url := m.service.DownloadURL(m.objectsBucket, key)
				b.WriteString("\n\n")
				b.WriteString(theme.FormatClickableURL(truncate(url, width-4), url))
			}
		}
	}

	return theme.CreatePanelStyle(width, height, m.focus == paneObjects).Render(b.String())
}

func (m *BrowserModel) renderObjectRow(i int) string {
	key := m.objects[i]
	category := utils.KeyCategory(key)
	name := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.CategoryColor(category))).
		Render(truncate(key, tuiconfig.ObjectKeyTruncateLength))

	row := utils.CategoryIcon(category) + " " + name
	if m.inflight.Busy(session.DeleteFileKey(m.objectsBucket, key)) {
		row += theme.CreateSecondaryTextStyle().Render(" (deleting)")
	}
	return theme.CreateRowStyle(m.focus == paneObjects && i == m.objectCursor, false).Render(row)
}
