package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HaiFongPan/s3clone-cli/internal/api"
	"github.com/HaiFongPan/s3clone-cli/internal/config"
	"github.com/HaiFongPan/s3clone-cli/internal/session"
	tuiconfig "github.com/HaiFongPan/s3clone-cli/internal/tui/config"
	"github.com/HaiFongPan/s3clone-cli/internal/tui/messaging"
	"github.com/HaiFongPan/s3clone-cli/internal/tui/theme"
	"github.com/HaiFongPan/s3clone-cli/internal/utils"
)

// pane is the part of the screen receiving keys
type pane int

const (
	paneBuckets pane = iota
	paneObjects
	paneDrop
	paneKey
	paneCreate
)

var paneOrder = []pane{paneBuckets, paneObjects, paneDrop, paneKey, paneCreate}

// listStatus is the render state of a list
type listStatus int

const (
	listLoading listStatus = iota
	listReady
	listFailed
	listNoBucket
)

// BrowserModel is the interactive client. All session state is mutated only
// from Update; transport calls run as commands and come back as messages.
type BrowserModel struct {
	ctx      context.Context
	service  api.Service
	uploader utils.Uploader
	config   *config.Config
	openURL  utils.URLOpener
	copyText func(string) error

	state    session.State
	inflight *session.Inflight
	notifier *messaging.Notifier

	status serverStatus

	buckets      []string
	bucketStatus listStatus
	bucketCursor int

	objects       []string
	objectsBucket string
	objectStatus  listStatus
	objectCursor  int

	focus       pane
	createInput textinput.Model
	keyInput    textinput.Model

	picking bool
	picker  filepicker.Model

	uploadBar     progress.Model
	uploadPercent float64

	confirm *confirmation

	keyMap       KeyMap
	help         help.Model
	showHelp     bool
	spinner      spinner.Model
	windowWidth  int
	windowHeight int
	program      *tea.Program
}

// Option customises a BrowserModel
type Option func(*BrowserModel)

// WithURLOpener replaces the handler used for downloads
func WithURLOpener(open utils.URLOpener) Option {
	return func(m *BrowserModel) { m.openURL = open }
}

// WithClipboard replaces the clipboard writer
func WithClipboard(copyText func(string) error) Option {
	return func(m *BrowserModel) { m.copyText = copyText }
}

// WithUploader replaces the uploader built from the service
func WithUploader(u utils.Uploader) Option {
	return func(m *BrowserModel) { m.uploader = u }
}

// NewBrowserModel creates the interactive client
func NewBrowserModel(service api.Service, cfg *config.Config, opts ...Option) *BrowserModel {
	if cfg == nil {
		cfg = config.Default()
	}

	createInput := textinput.New()
	createInput.Placeholder = "new-bucket-name"
	createInput.CharLimit = tuiconfig.BucketNameCharLimit
	createInput.Width = tuiconfig.InputWidth
	createInput.Cursor.SetMode(cursor.CursorStatic)

	keyInput := textinput.New()
	keyInput.Placeholder = "custom key (optional)"
	keyInput.CharLimit = tuiconfig.ObjectKeyCharLimit
	keyInput.Width = tuiconfig.InputWidth
	keyInput.Cursor.SetMode(cursor.CursorStatic)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.CreateLoadingStyle()

	m := &BrowserModel{
		ctx:          context.Background(),
		service:      service,
		uploader:     utils.NewFileUploader(service, &cfg.Upload),
		config:       cfg,
		openURL:      utils.OpenURL,
		copyText:     utils.CopyToClipboard,
		inflight:     session.NewInflight(),
		notifier:     messaging.NewNotifier(cfg.UI.NotificationTTL),
		bucketStatus: listLoading,
		objectStatus: listNoBucket,
		focus:        paneBuckets,
		createInput:  createInput,
		keyInput:     keyInput,
		uploadBar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(tuiconfig.ProgressBarWidth), progress.WithoutPercentage()),
		keyMap:       DefaultKeyMap(),
		help:         help.New(),
		spinner:      s,
		windowWidth:  100,
		windowHeight: 30,
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetProgram sets the tea.Program reference used to stream upload progress
func (m *BrowserModel) SetProgram(p *tea.Program) {
	m.program = p
}

// Init probes the server and loads the bucket list
func (m *BrowserModel) Init() tea.Cmd {
	return tea.Batch(m.probe(), m.refreshBuckets(), m.spinner.Tick)
}

// Update implements the bubbletea.Model interface
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.notifier.Update(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case healthCheckedMsg:
		return m, m.handleHealthChecked(msg)

	case bucketsLoadedMsg:
		return m, m.handleBucketsLoaded(msg)

	case objectsLoadedMsg:
		return m, m.handleObjectsLoaded(msg)

	case bucketCreatedMsg:
		return m, m.handleBucketCreated(msg)

	case bucketDeletedMsg:
		return m, m.handleBucketDeleted(msg)

	case objectDeletedMsg:
		return m, m.handleObjectDeleted(msg)

	case uploadProgressMsg:
		if m.inflight.Busy(session.UploadKey) {
			m.uploadPercent = msg.percent
		}
		return m, nil

	case uploadCompletedMsg:
		return m, m.handleUploadCompleted(msg)

	case urlCopiedMsg:
		if msg.err != nil {
			return m, m.notifier.Error("Failed to copy URL")
		}
		return m, m.notifier.Info("Download URL copied to clipboard")
	}

	// directory listings of the picker
	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a key press to the active layer
func (m *BrowserModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch {
	case m.confirm != nil:
		return m, m.handleConfirmation(msg)
	case m.picking:
		return m, m.handlePickerKey(msg)
	case m.showHelp:
		if key.Matches(msg, m.keyMap.Help) || key.Matches(msg, m.keyMap.Dismiss) || key.Matches(msg, m.keyMap.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	// a dropped file arrives as a bracketed paste of its path; text fields
	// still take pastes that are not an existing file
	if msg.Paste {
		path := normalizeDroppedPath(string(msg.Runes))
		if !m.inputFocused() || isLocalFile(path) {
			return m, m.chooseFile(path)
		}
	}

	if m.inputFocused() {
		return m, m.handleInputKey(msg)
	}
	return m, m.handleNavigation(msg)
}

// handleInputKey handles keys while a text field has focus
func (m *BrowserModel) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.NextPane):
		return m.cycleFocus(1)
	case key.Matches(msg, m.keyMap.PrevPane):
		return m.cycleFocus(-1)
	case key.Matches(msg, m.keyMap.Dismiss):
		return m.setFocus(paneBuckets)
	case key.Matches(msg, m.keyMap.Select):
		if m.focus == paneCreate {
			return m.createBucket()
		}
		return m.startUpload()
	}

	var cmd tea.Cmd
	if m.focus == paneCreate {
		m.createInput, cmd = m.createInput.Update(msg)
	} else {
		m.keyInput, cmd = m.keyInput.Update(msg)
	}
	return cmd
}

// handleNavigation handles keys outside text fields
func (m *BrowserModel) handleNavigation(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return tea.Quit

	case key.Matches(msg, m.keyMap.Help):
		m.showHelp = true
		return nil

	case key.Matches(msg, m.keyMap.NextPane):
		return m.cycleFocus(1)

	case key.Matches(msg, m.keyMap.PrevPane):
		return m.cycleFocus(-1)

	case key.Matches(msg, m.keyMap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keyMap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keyMap.Home):
		m.moveCursor(-1 << 30)
	case key.Matches(msg, m.keyMap.End):
		m.moveCursor(1 << 30)

	case key.Matches(msg, m.keyMap.Select):
		switch m.focus {
		case paneBuckets:
			if name, ok := m.bucketAtCursor(); ok {
				return m.selectBucket(name)
			}
		case paneObjects:
			return m.downloadAtCursor()
		case paneDrop:
			return m.openPicker()
		}

	case key.Matches(msg, m.keyMap.Delete):
		switch m.focus {
		case paneBuckets:
			return m.requestDeleteBucket()
		case paneObjects:
			return m.requestDeleteObject()
		}

	case key.Matches(msg, m.keyMap.Download):
		if m.focus == paneObjects {
			return m.downloadAtCursor()
		}

	case key.Matches(msg, m.keyMap.CopyURL):
		if m.focus == paneObjects {
			return m.copyURLAtCursor()
		}

	case key.Matches(msg, m.keyMap.Refresh):
		if m.focus == paneObjects {
			if bucket := m.state.CurrentBucket(); bucket != "" {
				return m.refreshObjects(bucket)
			}
			return nil
		}
		return m.refreshBuckets()

	case key.Matches(msg, m.keyMap.NewBucket):
		return m.setFocus(paneCreate)

	case key.Matches(msg, m.keyMap.PickFile):
		return m.openPicker()

	case key.Matches(msg, m.keyMap.Upload):
		return m.startUpload()

	case key.Matches(msg, m.keyMap.Recheck):
		return m.probe()

	case key.Matches(msg, m.keyMap.Dismiss):
		m.notifier.Dismiss()
	}

	return nil
}

func (m *BrowserModel) inputFocused() bool {
	return m.focus == paneKey || m.focus == paneCreate
}

func (m *BrowserModel) cycleFocus(step int) tea.Cmd {
	idx := 0
	for i, p := range paneOrder {
		if p == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + step + len(paneOrder)) % len(paneOrder)
	return m.setFocus(paneOrder[idx])
}

func (m *BrowserModel) setFocus(p pane) tea.Cmd {
	m.focus = p
	m.createInput.Blur()
	m.keyInput.Blur()

	switch p {
	case paneCreate:
		return m.createInput.Focus()
	case paneKey:
		return m.keyInput.Focus()
	}
	return nil
}

func (m *BrowserModel) moveCursor(delta int) {
	switch m.focus {
	case paneBuckets:
		m.bucketCursor = clamp(m.bucketCursor+delta, len(m.buckets))
	case paneObjects:
		m.objectCursor = clamp(m.objectCursor+delta, len(m.objects))
	}
}

// clamp bounds i to [0, n)
func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
