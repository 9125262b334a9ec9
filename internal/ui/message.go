package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgConnected MsgKind = iota
	MsgPlaylistsFetched
	MsgProgressUpdate
	MsgTransferComplete
)

type connectedData struct {
	engine *tasks.PlaylistEngine
	err    error
}

type playlistsData struct {
	playlists []models.Playlist
	err       error
}

type transferData struct {
	result *tasks.TransferRunResult
	err    error
}

// connectedMsg is the constructor for [MsgConnected]
func connectedMsg(engine *tasks.PlaylistEngine, err error) Msg {
	return Msg{kind: MsgConnected, data: connectedData{engine, err}}
}

// playlistsFetchedMsg is the constructor for [MsgPlaylistsFetched]
func playlistsFetchedMsg(playlists []models.Playlist, err error) Msg {
	return Msg{kind: MsgPlaylistsFetched, data: playlistsData{playlists, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// transferCompleteMsg is the constructor for [MsgTransferComplete]
func transferCompleteMsg(result *tasks.TransferRunResult, err error) Msg {
	return Msg{kind: MsgTransferComplete, data: transferData{result, err}}
}
