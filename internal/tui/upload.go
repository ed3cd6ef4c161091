package tui

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/s3clone-cli/internal/api"
	"github.com/HaiFongPan/s3clone-cli/internal/session"
	tuiconfig "github.com/HaiFongPan/s3clone-cli/internal/tui/config"
	"github.com/HaiFongPan/s3clone-cli/internal/tui/theme"
)

const dropPlaceholder = "Drag & drop or click to upload files"

type uploadProgressMsg struct {
	percent float64
}

type uploadCompletedMsg struct {
	bucket string
	file   session.FileHandle
	result *api.UploadResult
	err    error
}

// chooseFile is the single entry point for "a file became selected", used
// by both the picker and dropped paths. The last choice wins.
func (m *BrowserModel) chooseFile(path string) tea.Cmd {
	if path == "" {
		return nil
	}

	handle, err := session.NewFileHandle(path)
	if err != nil {
		logrus.WithError(err).Warn("rejected file selection")
		return m.notifier.Error(fmt.Sprintf("Cannot use %s", filepath.Base(path)))
	}

	m.state.ChooseFile(handle)
	logrus.Debugf("selected file %s (%d bytes)", handle.Path, handle.Size)
	return nil
}

func isLocalFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// normalizeDroppedPath turns what a terminal pastes for a dropped file into
// a plain path. Only the first line counts.
func normalizeDroppedPath(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}

	if runtime.GOOS == "windows" {
		// backslash is the path separator there, not an escape
		return strings.Trim(s, `"`)
	}

	// unescaped spaces split into several words; keep the raw text then
	if words, err := shellquote.Split(s); err == nil && len(words) == 1 {
		s = words[0]
	}

	if strings.HasPrefix(s, "file://") {
		if u, err := url.Parse(s); err == nil && u.Path != "" {
			return filepath.FromSlash(u.Path)
		}
	}
	return s
}

// openPicker shows the local file picker
func (m *BrowserModel) openPicker() tea.Cmd {
	fp := filepicker.New()
	if dir, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = dir
	}
	fp.AutoHeight = false
	fp.Height = tuiconfig.FilePickerHeight
	fp.ShowPermissions = false
	fp.DirAllowed = false
	fp.FileAllowed = true

	m.picker = fp
	m.picking = true
	m.focus = paneDrop
	m.keyInput.Blur()
	m.createInput.Blur()
	return m.picker.Init()
}

func (m *BrowserModel) handlePickerKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keyMap.Close) {
		m.picking = false
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		return tea.Batch(cmd, m.chooseFile(path))
	}
	return cmd
}

// startUpload validates the selection and issues the upload call
func (m *BrowserModel) startUpload() tea.Cmd {
	if !m.state.CanUpload() {
		return m.notifier.Error("Please select a file and a bucket")
	}
	if !m.inflight.Begin(session.UploadKey) {
		return m.notifier.Info("Upload already in progress")
	}

	file, _ := m.state.SelectedFile()
	bucket := m.state.CurrentBucket()
	customKey := strings.TrimSpace(m.keyInput.Value())
	m.uploadPercent = 0

	ctx, uploader, program := m.ctx, m.uploader, m.program
	callback := func(_, _ int64, percentage float64) {
		if program != nil {
			program.Send(uploadProgressMsg{percent: percentage / 100})
		}
	}

	logrus.WithFields(logrus.Fields{
		"bucket": bucket,
		"file":   file.Path,
		"key":    customKey,
	}).Info("starting upload")

	return func() tea.Msg {
		result, err := uploader.UploadFileWithProgress(ctx, bucket, file.Path, customKey, nil, callback)
		return uploadCompletedMsg{bucket: bucket, file: file, result: result, err: err}
	}
}

// handleUploadCompleted settles an upload. Success resets the form before
// the listing refresh is issued; failure keeps the selection for a retry.
func (m *BrowserModel) handleUploadCompleted(msg uploadCompletedMsg) tea.Cmd {
	m.inflight.End(session.UploadKey)
	m.uploadPercent = 0

	if msg.err != nil {
		logrus.WithError(msg.err).Errorf("upload of %s failed", msg.file.Path)
		return m.notifier.Error(api.MessageOr(msg.err, "Failed to upload file"))
	}

	m.state.ClearFile()
	m.keyInput.Reset()

	cmds := []tea.Cmd{m.notifier.Success(fmt.Sprintf("File uploaded successfully as %s", msg.result.Key))}
	if bucket := m.state.CurrentBucket(); bucket != "" {
		cmds = append(cmds, m.refreshObjects(bucket))
	}
	return tea.Batch(cmds...)
}

// dropLabel is the drop-area text
func (m *BrowserModel) dropLabel() string {
	if file, ok := m.state.SelectedFile(); ok {
		return file.Label()
	}
	return dropPlaceholder
}

// uploadLabel is the upload affordance text
func (m *BrowserModel) uploadLabel() string {
	if m.inflight.Busy(session.UploadKey) {
		return "Uploading..."
	}
	return "Upload"
}

// uploadEnabled reports whether the upload affordance accepts input
func (m *BrowserModel) uploadEnabled() bool {
	return m.state.CanUpload() && !m.inflight.Busy(session.UploadKey)
}

// renderUploadPanel renders the drop area, custom key and upload button
func (m *BrowserModel) renderUploadPanel(width int) string {
	var b strings.Builder
	b.WriteString(theme.CreateSectionHeaderStyle().Render("Upload"))
	b.WriteString("\n")

	// the highlighted drop area stands in for a drag-over state
	dragOver := m.focus == paneDrop
	b.WriteString(theme.CreateDropAreaStyle(width-4, dragOver).Render(m.dropLabel()))
	b.WriteString("\n")
	b.WriteString("Key: ")
	b.WriteString(m.keyInput.View())
	b.WriteString("\n")
	b.WriteString(theme.CreateButtonStyle(m.uploadEnabled()).Render(m.uploadLabel()))

	if m.inflight.Busy(session.UploadKey) {
		b.WriteString("  ")
		b.WriteString(m.uploadBar.ViewAs(m.uploadPercent))
		b.WriteString(theme.CreateProgressTextStyle().Render(fmt.Sprintf(" %.0f%%", m.uploadPercent*100)))
	}

	return theme.CreatePanelStyle(width, tuiconfig.UploadPanelRows, dragOver || m.focus == paneKey).Render(b.String())
}
