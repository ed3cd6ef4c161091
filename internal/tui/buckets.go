package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3clone-cli/internal/session"
	tuiconfig "github.com/HaiFongPan/s3clone-cli/internal/tui/config"
	"github.com/HaiFongPan/s3clone-cli/internal/tui/theme"
)

type bucketsLoadedMsg struct {
	buckets []string
	err     error
}

// refreshBuckets refetches the bucket collection
func (m *BrowserModel) refreshBuckets() tea.Cmd {
	m.bucketStatus = listLoading
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		buckets, err := svc.ListBuckets(ctx)
		return bucketsLoadedMsg{buckets: buckets, err: err}
	}
}

// handleBucketsLoaded replaces the rendered collection with the fetch result
func (m *BrowserModel) handleBucketsLoaded(msg bucketsLoadedMsg) tea.Cmd {
	if msg.err != nil {
		logrus.WithError(msg.err).Error("failed to load buckets")
		m.buckets = nil
		m.bucketStatus = listFailed
		m.bucketCursor = 0
		return m.notifier.Error("Failed to load buckets")
	}

	m.buckets = msg.buckets
	m.bucketStatus = listReady
	m.bucketCursor = clamp(m.bucketCursor, len(m.buckets))
	logrus.Debugf("loaded %d buckets", len(m.buckets))
	return nil
}

// selectBucket makes name current and refreshes its listing. Selection is
// never guarded; selecting again refetches.
func (m *BrowserModel) selectBucket(name string) tea.Cmd {
	m.state.SelectBucket(name)
	for i, b := range m.buckets {
		if b == name {
			m.bucketCursor = i
			break
		}
	}
	m.objectCursor = 0
	logrus.Infof("selected bucket %s", name)
	return m.refreshObjects(name)
}

func (m *BrowserModel) bucketAtCursor() (string, bool) {
	if m.bucketStatus != listReady || len(m.buckets) == 0 {
		return "", false
	}
	return m.buckets[clamp(m.bucketCursor, len(m.buckets))], true
}

// headerText is the page heading derived from the current bucket
func (m *BrowserModel) headerText() string {
	if bucket := m.state.CurrentBucket(); bucket != "" {
		return fmt.Sprintf("Bucket: %s", bucket)
	}
	return "Select a bucket"
}

// renderBucketPanel renders the bucket list and the create form
func (m *BrowserModel) renderBucketPanel(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.CreateSectionHeaderStyle().Render("Buckets"))
	b.WriteString("\n")

	listHeight := height - 5
	switch m.bucketStatus {
	case listLoading:
		b.WriteString(theme.CreateLoadingStyle().Render(m.spinner.View() + " Loading buckets..."))
	case listFailed:
		b.WriteString(theme.CreateErrorStyle().Render("Failed to load buckets"))
	default:
		if len(m.buckets) == 0 {
			b.WriteString(theme.CreateSecondaryTextStyle().Render("No buckets found"))
			break
		}
		current := m.state.CurrentBucket()
		start, end := visibleWindow(m.bucketCursor, len(m.buckets), listHeight)
		for i := start; i < end; i++ {
			name := m.buckets[i]
			active := name == current
			marker := "  "
			if active {
				marker = "▸ "
			}
			row := marker + truncate(name, tuiconfig.BucketNameTruncateLength)
			if m.inflight.Busy(session.DeleteBucketKey(name)) {
				row += " (deleting)"
			}
			cursor := m.focus == paneBuckets && i == m.bucketCursor
			b.WriteString(theme.CreateRowStyle(cursor, active).Render(row))
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n\n")
	b.WriteString(theme.CreateSecondaryTextStyle().Render("New bucket"))
	b.WriteString("\n")
	b.WriteString(m.createInput.View())
	b.WriteString(" ")
	b.WriteString(theme.CreateButtonStyle(!m.inflight.Busy(session.CreateBucketKey)).Render("Create"))

	return theme.CreatePanelStyle(width, height, m.focus == paneBuckets || m.focus == paneCreate).Render(b.String())
}

// visibleWindow returns the [start, end) rows to draw so cursor stays visible
func visibleWindow(cursor, total, height int) (int, int) {
	if height < 1 {
		height = 1
	}
	if total <= height {
		return 0, total
	}
	start := cursor - height + 1
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > total {
		end = total
		start = end - height
	}
	return start, end
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
