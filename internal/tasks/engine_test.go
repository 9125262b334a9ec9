package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
	tu "github.com/desertthunder/ytspot/internal/testing"
)

const testSourceURL = "https://www.youtube.com/playlist?list=PLtest"

func TestPlaylistEngine(t *testing.T) {
	t.Run("Run Add Existing", func(t *testing.T) {
		catalog, entries := catalogWith(3)
		catalog.Playlists = []models.Playlist{{ID: "p1", Name: "Road Trip"}, {ID: "p2", Name: "Focus"}}
		source := &tu.FakeSource{Entries: entries}

		engine := NewPlaylistEngine(catalog, source, EngineOptions{})
		progress := make(chan ProgressUpdate)
		done := collect(progress)

		result, err := engine.Run(context.Background(), TransferRequest{
			SourceURL: testSourceURL,
			Choice:    Choice{Mode: ModeAddExisting, Selected: "Focus"},
		}, progress)
		close(progress)
		updates := <-done

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Destination.ID != "p2" || result.State != Complete {
			t.Errorf("unexpected result %+v", result)
		}
		if len(result.Appended) != 3 || result.MatchPercentage != 100 {
			t.Errorf("expected 3 appended at 100%%, got %d at %.1f", len(result.Appended), result.MatchPercentage)
		}
		if len(updates) != 4 {
			t.Errorf("expected 4 updates, got %d", len(updates))
		}
		if len(catalog.Appended("p2")) != 3 {
			t.Errorf("expected 3 tracks in p2, got %v", catalog.Appended("p2"))
		}
	})

	t.Run("Run Create New", func(t *testing.T) {
		catalog, entries := catalogWith(2)
		delete(catalog.Results, "Song 1")
		engine := NewPlaylistEngine(catalog, &tu.FakeSource{Entries: entries}, EngineOptions{})

		result, err := engine.Run(context.Background(), TransferRequest{
			SourceURL: testSourceURL,
			Choice:    Choice{Mode: ModeCreateNew, Name: "My Mix", Public: Visibility(false)},
		}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !result.Destination.IsNew || len(result.Skipped) != 1 || result.MatchPercentage != 50 {
			t.Errorf("unexpected result %+v", result)
		}
	})

	t.Run("Invalid Source URL", func(t *testing.T) {
		source := &tu.FakeSource{}
		engine := NewPlaylistEngine(tu.NewFakeCatalog(), source, EngineOptions{})

		_, err := engine.Run(context.Background(), TransferRequest{SourceURL: "https://example.com", Choice: Choice{Mode: ModeCreateNew}}, nil)
		if kind, ok := shared.ValidationKindOf(err); !ok || kind != shared.InvalidSourceURL {
			t.Errorf("expected InvalidSourceURL, got %v", err)
		}
	})

	t.Run("Source Read Before Destination Created", func(t *testing.T) {
		catalog := tu.NewFakeCatalog()
		engine := NewPlaylistEngine(catalog, &tu.FakeSource{Err: errors.New("gone")}, EngineOptions{})

		_, err := engine.Run(context.Background(), TransferRequest{
			SourceURL: testSourceURL,
			Choice:    Choice{Mode: ModeCreateNew, Name: "X", Public: Visibility(true)},
		}, nil)
		if kind, _ := shared.ValidationKindOf(err); kind != shared.SourceUnavailable {
			t.Errorf("expected SourceUnavailable, got %v", err)
		}
		if len(catalog.Created) != 0 {
			t.Error("no playlist should be created when the source cannot be read")
		}
	})

	t.Run("Candidates Uses Preview Limit", func(t *testing.T) {
		catalog := tu.NewFakeCatalog()
		catalog.Playlists = make([]models.Playlist, 12)
		engine := NewPlaylistEngine(catalog, nil, EngineOptions{PreviewLimit: 4})

		candidates, err := engine.Candidates(context.Background())
		if err != nil || len(candidates) != 4 {
			t.Errorf("expected 4 candidates, got %d (%v)", len(candidates), err)
		}
	})

	t.Run("Transfer Prepared Session", func(t *testing.T) {
		catalog, entries := catalogWith(2)
		engine := NewPlaylistEngine(catalog, nil, EngineOptions{})

		result, err := engine.Transfer(context.Background(), NewTransferSession(dest, entries), nil)
		if err != nil || len(result.Appended) != 2 {
			t.Errorf("expected 2 appended, got %+v (%v)", result, err)
		}
	})

	t.Run("EngineOptionsFromConfig", func(t *testing.T) {
		cfg := shared.DefaultConfig()
		cfg.Transfer.OnMiss = "abort"
		cfg.Transfer.Scorer = "fuzzy"
		cfg.Cache.Reuse = true

		opts, err := EngineOptionsFromConfig(cfg)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if opts.MissPolicy != AbortOnMiss || opts.Scorer != (FuzzyScorer{}) || !opts.ReuseCache {
			t.Errorf("unexpected options %+v", opts)
		}
		if opts.SearchLimit != 20 || opts.PreviewLimit != 9 || opts.TickInterval != 100*time.Millisecond {
			t.Errorf("unexpected limits %+v", opts)
		}

		cfg.Transfer.OnMiss = "retry"
		if _, err := EngineOptionsFromConfig(cfg); err == nil {
			t.Error("expected error for unknown on_miss")
		}
	})
}
