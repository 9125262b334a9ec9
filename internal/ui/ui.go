package ui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
	"github.com/desertthunder/ytspot/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CredentialsView ViewState = iota
	SourceView
	DestinationView
	CreateView
	TransferView
	ResultView
)

const (
	fieldClientID = iota
	fieldClientSecret
)

const (
	fieldName = iota
	fieldDescription
	fieldVisibility
)

// Connector authenticates creds and returns an engine bound to the authorized catalog.
type Connector func(ctx context.Context, creds tasks.Credentials) (*tasks.PlaylistEngine, error)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	connect Connector
	engine  *tasks.PlaylistEngine
	logger  *log.Logger
	view    ViewState
	width   int
	height  int
	busy    bool
	status  string
	err     error

	redirect    string
	credentials []textinput.Model
	credFocus   int

	source    textinput.Model
	sourceURL string

	mode       tasks.ChoiceMode
	candidates []models.Playlist
	playlists  list.Model

	form      []textinput.Model
	formFocus int
	public    *bool

	progressCh <-chan tasks.ProgressUpdate
	done       <-chan transferData
	cancel     context.CancelFunc
	canceling  bool
	progress   tasks.ProgressUpdate
	updates    []tasks.ProgressUpdate
	result     *tasks.TransferRunResult

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model. creds pre-fills the credentials form.
func NewModel(ctx context.Context, connect Connector, creds tasks.Credentials, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	m := &Model{
		ctx:      ctx,
		connect:  connect,
		logger:   logger,
		view:     CredentialsView,
		redirect: creds.RedirectURI,
		credentials: []textinput.Model{
			newInput("Client ID", creds.ClientID, false),
			newInput("Client secret", creds.ClientSecret, true),
		},
		source: newInput("https://www.youtube.com/playlist?list=...", "", false),
		form: []textinput.Model{
			newInput("Playlist name", "", false),
			newInput("Description (optional)", "", false),
		},
		playlists: newPlaylistList(),
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.credentials[fieldClientID].Focus()
	return m
}

func newInput(placeholder, value string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 56
	ti.SetValue(value)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// focusInput focuses inputs[idx] and blurs the rest. An out of range idx blurs every input.
func focusInput(inputs []textinput.Model, idx int) tea.Cmd {
	var cmd tea.Cmd
	for i := range inputs {
		if i == idx {
			cmd = inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
	return cmd
}

// View returns the current screen.
func (m *Model) View() string {
	switch m.view {
	case CredentialsView:
		return m.renderCredentials()
	case SourceView:
		return m.renderSource()
	case DestinationView:
		return m.renderDestination()
	case CreateView:
		return m.renderCreate()
	case TransferView:
		return m.renderTransfer()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

// State returns the current view.
func (m *Model) State() ViewState {
	return m.view
}

// Err returns the error shown on the current screen, if any.
func (m *Model) Err() error {
	return m.err
}

// Init starts the cursor blinking in the credentials form.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlists.SetSize(msg.Width-4, max(msg.Height-12, 6))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			m.stopTransfer()
			return m, tea.Quit
		}

		switch m.view {
		case CredentialsView:
			return m.handleCredentialKeys(msg)
		case SourceView:
			return m.handleSourceKeys(msg)
		case DestinationView:
			return m.handleDestinationKeys(msg)
		case CreateView:
			return m.handleCreateKeys(msg)
		case TransferView:
			return m.handleTransferKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgConnected:
		data := msg.data.(connectedData)
		m.busy = false
		m.status = ""
		if data.err != nil {
			m.logger.Error("spotify authorization failed", "error", data.err)
			m.err = data.err
			return m, nil
		}
		m.engine = data.engine
		m.logger.Info("spotify authorized")
		return m, m.fetchPlaylists()

	case MsgPlaylistsFetched:
		data := msg.data.(playlistsData)
		m.busy = false
		m.status = ""
		if data.err != nil {
			m.logger.Error("failed to list playlists", "error", data.err)
			m.err = data.err
			return m, nil
		}
		m.candidates = data.playlists
		m.playlists.SetItems(playlistItems(data.playlists))
		m.err = nil
		m.view = SourceView
		focusInput(m.credentials, -1)
		return m, m.source.Focus()

	case MsgProgressUpdate:
		update := msg.data.(tasks.ProgressUpdate)
		m.progress = update
		if update.Phase != tasks.Finished {
			m.updates = append(m.updates, update)
		}
		return m, m.waitForProgress()

	case MsgTransferComplete:
		data := msg.data.(transferData)
		return m.completeTransfer(data.result, data.err)
	}
	return m, nil
}

func (m *Model) handleCredentialKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.next), key.Matches(msg, m.keys.prev):
		m.credFocus = (m.credFocus + 1) % len(m.credentials)
		return m, focusInput(m.credentials, m.credFocus)
	case key.Matches(msg, m.keys.enter):
		return m, m.submitCredentials()
	}

	var cmd tea.Cmd
	m.credentials[m.credFocus], cmd = m.credentials[m.credFocus].Update(msg)
	return m, cmd
}

func (m *Model) submitCredentials() tea.Cmd {
	creds, err := tasks.Credentials{
		ClientID:     m.credentials[fieldClientID].Value(),
		ClientSecret: m.credentials[fieldClientSecret].Value(),
		RedirectURI:  m.redirect,
	}.Normalize()
	if err != nil {
		m.err = err
		return nil
	}

	m.err = nil
	m.busy = true
	m.status = "Waiting for authorization in your browser..."

	ctx, connect := m.ctx, m.connect
	return func() tea.Msg {
		engine, err := connect(ctx, creds)
		return connectedMsg(engine, err)
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	m.busy = true
	m.status = "Loading your playlists..."

	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		playlists, err := engine.Candidates(ctx)
		return playlistsFetchedMsg(playlists, err)
	}
}

func (m *Model) handleSourceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.err = nil
		m.source.Blur()
		m.view = CredentialsView
		return m, focusInput(m.credentials, m.credFocus)
	case key.Matches(msg, m.keys.enter):
		url := strings.TrimSpace(m.source.Value())
		if err := tasks.ValidateSourceURL(url); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.sourceURL = url
		m.source.Blur()
		m.view = DestinationView
		return m, nil
	}

	var cmd tea.Cmd
	m.source, cmd = m.source.Update(msg)
	return m, cmd
}

func (m *Model) handleDestinationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := m.playlists.FilterState() == list.Filtering
	filtered := m.playlists.FilterState() == list.FilterApplied

	switch {
	case filtering, key.Matches(msg, m.keys.back) && filtered:
		// the list owns the keys while a filter is being edited or cleared
	case key.Matches(msg, m.keys.back):
		m.err = nil
		m.view = SourceView
		return m, m.source.Focus()
	case key.Matches(msg, m.keys.add):
		m.mode = tasks.ModeAddExisting
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.create):
		m.mode = tasks.ModeCreateNew
		m.err = nil
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m.submitDestination()
	}

	var cmd tea.Cmd
	m.playlists, cmd = m.playlists.Update(msg)
	return m, cmd
}

func (m *Model) submitDestination() (tea.Model, tea.Cmd) {
	switch m.mode {
	case tasks.ModeCreateNew:
		m.err = nil
		m.view = CreateView
		return m, focusInput(m.form, m.formFocus)
	case tasks.ModeAddExisting:
		choice := tasks.Choice{Mode: tasks.ModeAddExisting}
		if item, ok := m.playlists.SelectedItem().(playlistItem); ok {
			choice.Selected = item.playlist.ID
		}
		if _, err := m.engine.Resolve(m.ctx, m.candidates, choice); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.startTransfer(choice)
	default:
		m.err = shared.NewValidationError(shared.NoPlaylistChosen, nil)
		return m, nil
	}
}

func (m *Model) handleCreateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const fields = fieldVisibility + 1

	switch {
	case key.Matches(msg, m.keys.back):
		m.err = nil
		focusInput(m.form, -1)
		m.view = DestinationView
		return m, nil
	case key.Matches(msg, m.keys.next):
		m.formFocus = (m.formFocus + 1) % fields
		return m, focusInput(m.form, m.formFocus)
	case key.Matches(msg, m.keys.prev):
		m.formFocus = (m.formFocus + fields - 1) % fields
		return m, focusInput(m.form, m.formFocus)
	case key.Matches(msg, m.keys.enter):
		return m.submitCreate()
	}

	if m.formFocus == fieldVisibility {
		if key.Matches(msg, m.keys.toggle) {
			if m.public == nil {
				m.public = tasks.Visibility(true)
			} else {
				m.public = tasks.Visibility(!*m.public)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m *Model) submitCreate() (tea.Model, tea.Cmd) {
	choice := tasks.Choice{
		Mode:        tasks.ModeCreateNew,
		Name:        strings.TrimSpace(m.form[fieldName].Value()),
		Description: strings.TrimSpace(m.form[fieldDescription].Value()),
		Public:      m.public,
	}
	if choice.Name == "" || choice.Public == nil {
		m.err = shared.NewValidationError(shared.MissingRequiredField, nil)
		return m, nil
	}

	focusInput(m.form, -1)
	return m, m.startTransfer(choice)
}

// startTransfer runs the engine on its own goroutine. Progress is read back one update per [tea.Cmd].
func (m *Model) startTransfer(choice tasks.Choice) tea.Cmd {
	ctx, cancel := context.WithCancel(m.ctx)
	progress := make(chan tasks.ProgressUpdate)
	done := make(chan transferData, 1)

	m.cancel = cancel
	m.progressCh = progress
	m.done = done
	m.canceling = false
	m.progress = tasks.ProgressUpdate{}
	m.updates = nil
	m.result = nil
	m.err = nil
	m.view = TransferView

	req := tasks.TransferRequest{SourceURL: m.sourceURL, Choice: choice, Candidates: m.candidates}
	engine, logger := m.engine, m.logger
	logger.Info("starting transfer", "source", req.SourceURL, "mode", choice.Mode)

	go func() {
		result, err := engine.Run(ctx, req, progress)
		done <- transferData{result: result, err: err}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress, done := m.progressCh, m.done
	if progress == nil {
		return nil
	}

	return func() tea.Msg {
		if update, ok := <-progress; ok {
			return progressUpdateMsg(update)
		}
		d := <-done
		return transferCompleteMsg(d.result, d.err)
	}
}

// completeTransfer returns validation failures raised before the first entry to the screen that owns the
// offending input; everything else lands on the result screen.
func (m *Model) completeTransfer(result *tasks.TransferRunResult, err error) (tea.Model, tea.Cmd) {
	m.stopTransfer()
	m.progressCh = nil
	m.done = nil
	m.result = result
	m.err = err

	if kind, ok := shared.ValidationKindOf(err); ok && len(m.updates) == 0 {
		switch kind {
		case shared.InvalidSourceURL, shared.SourceUnavailable:
			m.view = SourceView
			return m, m.source.Focus()
		case shared.MissingRequiredField:
			m.view = CreateView
			return m, focusInput(m.form, m.formFocus)
		default:
			m.view = DestinationView
			return m, nil
		}
	}

	if err != nil {
		m.logger.Error("transfer stopped", "error", err)
	}
	m.view = ResultView
	return m, nil
}

func (m *Model) stopTransfer() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) handleTransferKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.cancel) && m.cancel != nil && !m.canceling {
		m.logger.Warn("canceling transfer", "step", m.progress.Step, "total", m.progress.Total)
		m.canceling = true
		m.cancel()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.leave):
		return m, tea.Quit
	case key.Matches(msg, m.keys.restart):
		m.result = nil
		m.err = nil
		m.updates = nil
		m.mode = tasks.ModeUnset
		m.public = nil
		m.formFocus = fieldName
		m.source.SetValue("")
		for i := range m.form {
			m.form[i].SetValue("")
		}
		return m, m.fetchPlaylists()
	}
	return m, nil
}
