package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
	"github.com/desertthunder/ytspot/internal/tasks"
	th "github.com/desertthunder/ytspot/internal/testing"
)

func sampleResult() *tasks.TransferRunResult {
	entries := []models.SourceEntry{
		{Title: "Song One (Official Video)", SourceID: "v1"},
		{Title: "Lost | Track", SourceID: "v2"},
		{Title: "Song Three", SourceID: "v3"},
	}
	return &tasks.TransferRunResult{
		SourceURL:    "https://www.youtube.com/playlist?list=PL1",
		Destination:  models.DestinationPlaylistRef{ID: "p1", Name: "Road Trip", IsNew: true},
		Entries:      entries,
		TotalEntries: 3,
		State:        tasks.Failed,
		Appended: []tasks.AppendedEntry{
			{Index: 0, Entry: entries[0], Track: models.CandidateTrack{CatalogID: "t1", DisplayName: "Song One", PrimaryArtist: "Band"}},
		},
		Skipped: []tasks.SkippedEntry{{Index: 1, Entry: entries[1]}},
	}
}

func TestReport(t *testing.T) {
	t.Run("NewReport", func(t *testing.T) {
		r := NewReport(sampleResult())

		if r.Playlist != "Road Trip" || !r.NewPlaylist || r.State != "failed" {
			t.Errorf("unexpected summary %+v", r)
		}
		if r.Added != 1 || r.Skipped != 1 || r.Total != 3 {
			t.Errorf("unexpected counts %+v", r)
		}

		want := []string{StatusAdded, StatusSkipped, StatusPending}
		for i, row := range r.Rows {
			if row.Status != want[i] {
				t.Errorf("row %d: expected %s, got %s", i, want[i], row.Status)
			}
		}
		if r.Rows[0].Track != "Song One by Band" || r.Rows[0].Index != 1 {
			t.Errorf("unexpected first row %+v", r.Rows[0])
		}
	})

	t.Run("ReportToCSV", func(t *testing.T) {
		data, err := ReportToCSV(NewReport(sampleResult()))
		if err != nil {
			t.Fatalf("ReportToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV: %v", err)
		}
		if len(records) != 4 {
			t.Fatalf("expected header + 3 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "Index,Title,SourceID,Status,CatalogID,Track" {
			t.Errorf("unexpected header %v", records[0])
		}
		if records[1][4] != "t1" || records[2][3] != "skipped" {
			t.Errorf("unexpected rows %v", records[1:])
		}
	})

	t.Run("ReportToMarkdown", func(t *testing.T) {
		data, _ := ReportToMarkdown(NewReport(sampleResult()))
		output := string(data)

		for _, want := range []string{"# Road Trip", "**Added**: 1 of 3", "| 1 | Song One (Official Video) | added | Song One by Band |", `Lost \| Track`} {
			if !strings.Contains(output, want) {
				t.Errorf("markdown missing %q:\n%s", want, output)
			}
		}
	})

	t.Run("ReportToText", func(t *testing.T) {
		data, _ := ReportToText(NewReport(sampleResult()))
		output := string(data)

		if !strings.Contains(output, "1. Song One (Official Video) -> Song One by Band") {
			t.Errorf("text missing added line:\n%s", output)
		}
		if !strings.Contains(output, "3. Song Three [pending]") {
			t.Errorf("text missing pending line:\n%s", output)
		}
	})

	t.Run("ReportToJSON", func(t *testing.T) {
		data, err := ReportToJSON(NewReport(sampleResult()))
		if err != nil {
			t.Fatalf("ReportToJSON failed: %v", err)
		}
		var decoded Report
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.PlaylistID != "p1" || len(decoded.Rows) != 3 {
			t.Errorf("unexpected decoded report %+v", decoded)
		}
	})
}

func TestWriteReport(t *testing.T) {
	r := NewReport(sampleResult())

	tests := []struct {
		file string
		want string
	}{
		{file: "report.csv", want: "Index,Title"},
		{file: "report.md", want: "## Entries"},
		{file: "nested/report.json", want: `"playlist_id": "p1"`},
		{file: "report.txt", want: "Playlist: Road Trip"},
		{file: "report", want: "Playlist: Road Trip"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := WriteReport(r, path); err != nil {
				t.Fatalf("WriteReport failed: %v", err)
			}

			th.AssertFileExists(t, path)
			if content := th.MustReadFile(t, path); !strings.Contains(content, tt.want) {
				t.Errorf("expected %q in %s, got:\n%s", tt.want, tt.file, content)
			}
		})
	}

	t.Run("Missing Path", func(t *testing.T) {
		if err := WriteReport(r, ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
