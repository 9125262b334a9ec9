package tasks

import (
	"fmt"

	"github.com/desertthunder/ytspot/internal/models"
)

// ProgressUpdate represents a progress event during a transfer.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // 1-based entry index
	Total   int    // Number of source entries
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	TrackAdded Phase = iota
	TrackSkipped
	Finished
)

func (p Phase) String() string {
	switch p {
	case TrackAdded:
		return "track_added"
	case TrackSkipped:
		return "track_skipped"
	case Finished:
		return "finished"
	default:
		return ""
	}
}

func trackAddedUpdate(step, total int, track models.CandidateTrack) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TrackAdded,
		Step:    step,
		Total:   total,
		Message: track.DisplayLine(),
		Data:    track,
	}
}

func trackSkippedUpdate(step, total int, entry models.SourceEntry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TrackSkipped,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("No match for %q", entry.Title),
		Data:    entry,
	}
}

func finishedUpdate(s *TransferSession) ProgressUpdate {
	total := len(s.Entries)
	return ProgressUpdate{
		Phase:   Finished,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Playlist finished transferring (%d added, %d skipped)", s.AppendedCount(), len(s.skipped)),
	}
}
