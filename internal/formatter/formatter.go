// package formatter writes transfer reports as CSV, Markdown, JSON or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/ytspot/internal/shared"
	"github.com/desertthunder/ytspot/internal/tasks"
)

const (
	StatusAdded   = "added"
	StatusSkipped = "skipped"
	StatusPending = "pending"
)

// ReportRow is one source entry and what happened to it.
type ReportRow struct {
	Index     int    `json:"index"`
	Title     string `json:"title"`
	SourceID  string `json:"source_id"`
	Status    string `json:"status"`
	CatalogID string `json:"catalog_id,omitempty"`
	Track     string `json:"track,omitempty"`
}

// Report summarizes a transfer.
type Report struct {
	SourceURL   string        `json:"source_url"`
	Playlist    string        `json:"playlist"`
	PlaylistID  string        `json:"playlist_id"`
	NewPlaylist bool          `json:"new_playlist"`
	State       string        `json:"state"`
	Total       int           `json:"total"`
	Added       int           `json:"added"`
	Skipped     int           `json:"skipped"`
	Elapsed     time.Duration `json:"elapsed"`
	Rows        []ReportRow   `json:"rows"`
}

// NewReport builds a [Report] from a transfer result. Entries the run never reached are marked pending.
func NewReport(result *tasks.TransferRunResult) Report {
	r := Report{
		SourceURL:   result.SourceURL,
		Playlist:    result.Destination.Name,
		PlaylistID:  result.Destination.ID,
		NewPlaylist: result.Destination.IsNew,
		State:       result.State.String(),
		Total:       result.TotalEntries,
		Added:       len(result.Appended),
		Skipped:     len(result.Skipped),
		Elapsed:     result.Elapsed,
		Rows:        make([]ReportRow, len(result.Entries)),
	}

	for i, e := range result.Entries {
		r.Rows[i] = ReportRow{Index: i + 1, Title: e.Title, SourceID: e.SourceID, Status: StatusPending}
	}
	for _, a := range result.Appended {
		row := &r.Rows[a.Index]
		row.Status = StatusAdded
		row.CatalogID = a.Track.CatalogID
		row.Track = a.Track.DisplayLine()
	}
	for _, s := range result.Skipped {
		r.Rows[s.Index].Status = StatusSkipped
	}
	return r
}

// ReportToCSV renders one row per entry with columns: Index, Title, SourceID, Status, CatalogID, Track
func ReportToCSV(r Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Index", "Title", "SourceID", "Status", "CatalogID", "Track"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, row := range r.Rows {
		record := []string{strconv.Itoa(row.Index), row.Title, row.SourceID, row.Status, row.CatalogID, row.Track}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown renders a summary followed by a table of entries.
func ReportToMarkdown(r Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", r.Playlist)
	if r.SourceURL != "" {
		fmt.Fprintf(&buf, "**Source**: %s\n", r.SourceURL)
	}
	if r.NewPlaylist {
		buf.WriteString("**Playlist**: created\n")
	}
	fmt.Fprintf(&buf, "**State**: %s\n", r.State)
	fmt.Fprintf(&buf, "**Added**: %d of %d\n", r.Added, r.Total)
	fmt.Fprintf(&buf, "**Skipped**: %d\n\n", r.Skipped)

	buf.WriteString("## Entries\n\n")
	buf.WriteString("| # | Source title | Status | Track |\n")
	buf.WriteString("|---|---|---|---|\n")
	for _, row := range r.Rows {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s |\n", row.Index, escapeCell(row.Title), row.Status, escapeCell(row.Track))
	}

	return buf.Bytes(), nil
}

// ReportToText renders a plain text summary with one line per entry.
func ReportToText(r Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Playlist: %s\n", r.Playlist)
	fmt.Fprintf(&buf, "State: %s\n", r.State)
	fmt.Fprintf(&buf, "Added: %d/%d, skipped: %d\n\n", r.Added, r.Total, r.Skipped)

	for _, row := range r.Rows {
		switch row.Status {
		case StatusAdded:
			fmt.Fprintf(&buf, "%d. %s -> %s\n", row.Index, row.Title, row.Track)
		default:
			fmt.Fprintf(&buf, "%d. %s [%s]\n", row.Index, row.Title, row.Status)
		}
	}

	return buf.Bytes(), nil
}

// ReportToJSON renders the report as indented JSON.
func ReportToJSON(r Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// Render picks a renderer by file extension. Unknown extensions render plain text.
func Render(r Report, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReportToCSV(r)
	case ".md", ".markdown":
		return ReportToMarkdown(r)
	case ".json":
		return ReportToJSON(r)
	default:
		return ReportToText(r)
	}
}

// WriteReport renders r for path's extension and writes it, creating parent directories.
func WriteReport(r Report, path string) error {
	if path == "" {
		return fmt.Errorf("%w: report path", shared.ErrMissingArgument)
	}

	data, err := Render(r, path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
