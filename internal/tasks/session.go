package tasks

import (
	"fmt"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
)

// SessionState is the position of a [TransferSession] in the transfer state machine.
type SessionState int

const (
	Idle SessionState = iota
	Matching
	Appending
	Advancing
	Complete
	Failed
	Canceled
)

func (s SessionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Matching:
		return "matching"
	case Appending:
		return "appending"
	case Advancing:
		return "advancing"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	case Canceled:
		return "canceled"
	default:
		return ""
	}
}

// Terminal reports whether no further ticks will run.
func (s SessionState) Terminal() bool {
	return s == Complete || s == Failed || s == Canceled
}

// MissPolicy decides what a [NoMatchError] does to a running session.
type MissPolicy int

const (
	// SkipMisses records the entry as skipped and continues with the next one.
	SkipMisses MissPolicy = iota
	// AbortOnMiss stops the session with the error.
	AbortOnMiss
)

func (p MissPolicy) String() string {
	if p == AbortOnMiss {
		return "abort"
	}
	return "skip"
}

// ParseMissPolicy maps the [transfer] on_miss setting.
func ParseMissPolicy(s string) (MissPolicy, error) {
	switch s {
	case "", "skip":
		return SkipMisses, nil
	case "abort":
		return AbortOnMiss, nil
	default:
		return SkipMisses, fmt.Errorf("%w: on_miss must be skip or abort, got %q", shared.ErrInvalidArgument, s)
	}
}

// AppendedEntry is a source entry that was matched and appended.
type AppendedEntry struct {
	Index int
	Entry models.SourceEntry
	Track models.CandidateTrack
}

// SkippedEntry is a source entry that had no catalog match.
type SkippedEntry struct {
	Index int
	Entry models.SourceEntry
	Err   error
}

// TransferSession binds one destination to one ordered sequence of source entries.
//
// It is owned by the [Transfer] loop running it; read it only after Run returns.
type TransferSession struct {
	Destination models.DestinationPlaylistRef
	Entries     []models.SourceEntry

	cursor   int
	state    SessionState
	appended []AppendedEntry
	skipped  []SkippedEntry
}

// NewTransferSession creates an idle session with the cursor at 0.
func NewTransferSession(dest models.DestinationPlaylistRef, entries []models.SourceEntry) *TransferSession {
	return &TransferSession{Destination: dest, Entries: entries}
}

func (s *TransferSession) Cursor() int               { return s.cursor }
func (s *TransferSession) State() SessionState       { return s.state }
func (s *TransferSession) AppendedCount() int        { return len(s.appended) }
func (s *TransferSession) Appended() []AppendedEntry { return s.appended }
func (s *TransferSession) Skipped() []SkippedEntry   { return s.skipped }

// Exhausted reports whether every entry has been processed.
func (s *TransferSession) Exhausted() bool {
	return s.cursor >= len(s.Entries)
}

func (s *TransferSession) current() models.SourceEntry {
	return s.Entries[s.cursor]
}

func (s *TransferSession) recordAppend(track models.CandidateTrack) {
	s.appended = append(s.appended, AppendedEntry{Index: s.cursor, Entry: s.current(), Track: track})
}

func (s *TransferSession) recordSkip(err error) {
	s.skipped = append(s.skipped, SkippedEntry{Index: s.cursor, Entry: s.current(), Err: err})
}

func (s *TransferSession) advance() {
	s.state = Advancing
	s.cursor++
}
