package messaging

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3clone-cli/internal/tui/theme"
)

// DefaultTTL is how long a notification stays visible
const DefaultTTL = 3 * time.Second

// Severity classifies a notification
type Severity int

// Severity constants
const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notification is one transient message
type Notification struct {
	ID       int
	Message  string
	Severity Severity
	Created  time.Time
}

// ExpiredMsg is delivered when the timer of notification ID fires
type ExpiredMsg struct {
	ID int
}

// Notifier owns the live notifications. Every entry has its own timer;
// removing an entry first turns its pending timer into a no-op.
type Notifier struct {
	ttl    time.Duration
	nextID int
	items  []Notification
}

// NewNotifier creates a notifier whose entries expire after ttl
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

// TTL returns the expiry interval
func (n *Notifier) TTL() time.Duration {
	return n.ttl
}

// Notify appends a notification and returns the command that expires it.
// Callers hand the command to the runtime and never wait on it.
func (n *Notifier) Notify(message string, severity Severity) tea.Cmd {
	n.nextID++
	id := n.nextID
	n.items = append(n.items, Notification{
		ID:       id,
		Message:  message,
		Severity: severity,
		Created:  time.Now(),
	})

	logrus.WithFields(logrus.Fields{
		"id":       id,
		"severity": severity.String(),
	}).Debugf("notify: %s", message)

	return tea.Tick(n.ttl, func(time.Time) tea.Msg {
		return ExpiredMsg{ID: id}
	})
}

// Info is shorthand for Notify(message, SeverityInfo)
func (n *Notifier) Info(message string) tea.Cmd {
	return n.Notify(message, SeverityInfo)
}

// Success is shorthand for Notify(message, SeveritySuccess)
func (n *Notifier) Success(message string) tea.Cmd {
	return n.Notify(message, SeveritySuccess)
}

// Error is shorthand for Notify(message, SeverityError)
func (n *Notifier) Error(message string) tea.Cmd {
	return n.Notify(message, SeverityError)
}

// Update consumes expiry messages and reports whether msg was one
func (n *Notifier) Update(msg tea.Msg) bool {
	expired, ok := msg.(ExpiredMsg)
	if !ok {
		return false
	}
	n.Remove(expired.ID)
	return true
}

// Remove drops notification id, reporting whether it was still live
func (n *Notifier) Remove(id int) bool {
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return true
		}
	}
	return false
}

// Dismiss drops the oldest notification
func (n *Notifier) Dismiss() {
	if len(n.items) > 0 {
		n.Remove(n.items[0].ID)
	}
}

// Clear drops every notification
func (n *Notifier) Clear() {
	n.items = nil
}

// Items returns the live notifications, oldest first
func (n *Notifier) Items() []Notification {
	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Len returns the number of live notifications
func (n *Notifier) Len() int {
	return len(n.items)
}

// View renders the stack, newest last
func (n *Notifier) View() string {
	if len(n.items) == 0 {
		return ""
	}

	lines := make([]string, 0, len(n.items))
	for _, item := range n.items {
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.SeverityColor(int(item.Severity)))).
			Bold(true)
		lines = append(lines, style.Render(fmt.Sprintf("%s %s", theme.SeverityIcon(int(item.Severity)), item.Message)))
	}
	return strings.Join(lines, "\n")
}
