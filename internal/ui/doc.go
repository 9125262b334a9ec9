// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks the operator through a transfer:
//  1. [CredentialsView] : Enter the Spotify client id and secret, then authorize in the browser
//  2. [SourceView] : Enter the YouTube playlist URL
//  3. [DestinationView] : Pick an existing playlist from the preview or choose to create one
//  4. [CreateView] : Name, description and visibility of a new playlist
//  5. [TransferView] : Monitor real-time progress updates
//  6. [ResultView] : Display counts and skipped entries
//
// Validation errors are rendered inline on the screen that produced them and the operator submits again.
// Progress updates flow through a channel from the PlaylistEngine. A [tea.Cmd] waits on that channel so the
// transfer goroutine never blocks the render loop, and esc during a transfer cancels its context.
package ui
