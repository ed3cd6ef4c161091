package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3clone-cli/internal/tui/theme"
)

// serverStatus is the binary liveness indicator plus its pending state
type serverStatus int

const (
	statusChecking serverStatus = iota
	statusOnline
	statusOffline
)

func (s serverStatus) Label() string {
	switch s {
	case statusOnline:
		return "Server Online"
	case statusOffline:
		return "Server Offline"
	default:
		return "Checking server..."
	}
}

type healthCheckedMsg struct {
	err error
}

// probe runs one liveness check against /health
func (m *BrowserModel) probe() tea.Cmd {
	m.status = statusChecking
	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		return healthCheckedMsg{err: svc.Health(ctx)}
	}
}

func (m *BrowserModel) handleHealthChecked(msg healthCheckedMsg) tea.Cmd {
	if msg.err != nil {
		logrus.WithError(msg.err).Warn("server health check failed")
		m.status = statusOffline
		return m.notifier.Error("Cannot connect to the S3 Clone server")
	}
	m.status = statusOnline
	return nil
}

func (m *BrowserModel) renderStatus() string {
	if m.status == statusChecking {
		return theme.CreateLoadingStyle().Render(m.spinner.View() + " " + m.status.Label())
	}
	return theme.CreateStatusIndicatorStyle(m.status == statusOnline).Render("● " + m.status.Label())
}
