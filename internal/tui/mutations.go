package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3clone-cli/internal/api"
	"github.com/HaiFongPan/s3clone-cli/internal/session"
	tuiconfig "github.com/HaiFongPan/s3clone-cli/internal/tui/config"
	"github.com/HaiFongPan/s3clone-cli/internal/tui/theme"
)

type confirmKind int

const (
	confirmDeleteBucket confirmKind = iota
	confirmDeleteFile
)

// confirmation is a pending y/n question for a destructive action
type confirmation struct {
	kind   confirmKind
	bucket string
	key    string
}

func (c *confirmation) prompt() string {
	if c.kind == confirmDeleteBucket {
		return fmt.Sprintf("Are you sure you want to delete bucket '%s'?", c.bucket)
	}
	return fmt.Sprintf("Are you sure you want to delete %s?", c.key)
}

type bucketCreatedMsg struct {
	name string
	err  error
}

type bucketDeletedMsg struct {
	name string
	err  error
}

type objectDeletedMsg struct {
	bucket string
	key    string
	err    error
}

// handleConfirmation answers the open dialog
func (m *BrowserModel) handleConfirmation(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Confirm):
		c := m.confirm
		m.confirm = nil
		if c.kind == confirmDeleteBucket {
			return m.deleteBucket(c.bucket)
		}
		return m.deleteObject(c.bucket, c.key)

	case key.Matches(msg, m.keyMap.Cancel) || key.Matches(msg, m.keyMap.Quit):
		m.confirm = nil
	}
	return nil
}

// createBucket validates the name field and issues the create call
func (m *BrowserModel) createBucket() tea.Cmd {
	name := strings.TrimSpace(m.createInput.Value())
	if name == "" {
		return m.notifier.Error("Please enter a bucket name")
	}
	if !m.inflight.Begin(session.CreateBucketKey) {
		return m.notifier.Info("Bucket creation already in progress")
	}

	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		return bucketCreatedMsg{name: name, err: svc.CreateBucket(ctx, name)}
	}
}

// handleBucketCreated re-enables the create affordance whatever the outcome
func (m *BrowserModel) handleBucketCreated(msg bucketCreatedMsg) tea.Cmd {
	m.inflight.End(session.CreateBucketKey)

	if msg.err != nil {
		logrus.WithError(msg.err).Errorf("failed to create bucket %s", msg.name)
		return m.notifier.Error(api.MessageOr(msg.err, "Failed to create bucket"))
	}

	m.createInput.Reset()
	return tea.Batch(
		m.notifier.Success(fmt.Sprintf("Bucket '%s' created successfully", msg.name)),
		m.refreshBuckets(),
	)
}

func (m *BrowserModel) requestDeleteBucket() tea.Cmd {
	name, ok := m.bucketAtCursor()
	if !ok {
		return nil
	}
	if m.inflight.Busy(session.DeleteBucketKey(name)) {
		return m.notifier.Info(fmt.Sprintf("Bucket '%s' is already being deleted", name))
	}
	m.confirm = &confirmation{kind: confirmDeleteBucket, bucket: name}
	return nil
}

func (m *BrowserModel) deleteBucket(name string) tea.Cmd {
	if !m.inflight.Begin(session.DeleteBucketKey(name)) {
		return m.notifier.Info(fmt.Sprintf("Bucket '%s' is already being deleted", name))
	}

	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		return bucketDeletedMsg{name: name, err: svc.DeleteBucket(ctx, name)}
	}
}

// handleBucketDeleted clears the current bucket when it was the one deleted
// and always refreshes the registry on success.
func (m *BrowserModel) handleBucketDeleted(msg bucketDeletedMsg) tea.Cmd {
	m.inflight.End(session.DeleteBucketKey(msg.name))

	if msg.err != nil {
		logrus.WithError(msg.err).Errorf("failed to delete bucket %s", msg.name)
		return m.notifier.Error(api.MessageOr(msg.err, fmt.Sprintf("Failed to delete bucket '%s'", msg.name)))
	}

	if m.state.ClearBucketIf(msg.name) {
		m.objects = nil
		m.objectsBucket = ""
		m.objectStatus = listNoBucket
		m.objectCursor = 0
	}

	return tea.Batch(
		m.notifier.Success(fmt.Sprintf("Bucket '%s' deleted successfully", msg.name)),
		m.refreshBuckets(),
	)
}

func (m *BrowserModel) requestDeleteObject() tea.Cmd {
	key, ok := m.objectAtCursor()
	if !ok {
		return nil
	}
	bucket := m.objectsBucket
	if m.inflight.Busy(session.DeleteFileKey(bucket, key)) {
		return m.notifier.Info(fmt.Sprintf("File %s is already being deleted", key))
	}
	m.confirm = &confirmation{kind: confirmDeleteFile, bucket: bucket, key: key}
	return nil
}

func (m *BrowserModel) deleteObject(bucket, key string) tea.Cmd {
	if !m.inflight.Begin(session.DeleteFileKey(bucket, key)) {
		return m.notifier.Info(fmt.Sprintf("File %s is already being deleted", key))
	}

	ctx, svc := m.ctx, m.service
	return func() tea.Msg {
		return objectDeletedMsg{bucket: bucket, key: key, err: svc.DeleteObject(ctx, bucket, key)}
	}
}

// handleObjectDeleted refreshes the listing only on success
func (m *BrowserModel) handleObjectDeleted(msg objectDeletedMsg) tea.Cmd {
	m.inflight.End(session.DeleteFileKey(msg.bucket, msg.key))

	if msg.err != nil {
		logrus.WithError(msg.err).Errorf("failed to delete %s/%s", msg.bucket, msg.key)
		return m.notifier.Error(api.MessageOr(msg.err, "Failed to delete file"))
	}

	cmds := []tea.Cmd{m.notifier.Success(fmt.Sprintf("File %s deleted successfully", msg.key))}
	if msg.bucket == m.state.CurrentBucket() {
		cmds = append(cmds, m.refreshObjects(msg.bucket))
	}
	return tea.Batch(cmds...)
}

// renderConfirmation renders the open y/n dialog
func (m *BrowserModel) renderConfirmation() string {
	content := theme.CreatePromptStyle().Render(m.confirm.prompt()) +
		"\n\nThis action cannot be undone!\n\nPress 'y' to confirm, 'n' to cancel"
	return theme.CreateDialogStyle(tuiconfig.DialogDefaultWidth, theme.ColorBrightRed).Render(content)
}
