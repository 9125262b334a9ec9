package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
	tu "github.com/desertthunder/ytspot/internal/testing"
)

func TestReadSource(t *testing.T) {
	const playlistURL = "https://www.youtube.com/playlist?list=PLxyz"

	t.Run("Order Preserved", func(t *testing.T) {
		lister := &tu.FakeSource{Entries: []models.SourceEntry{
			{Title: "First", SourceID: "v1"},
			{Title: "Second", SourceID: "v2"},
			{Title: "Third", SourceID: "v3"},
		}}

		entries, err := ReadSource(context.Background(), lister, playlistURL)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for i, want := range []string{"v1", "v2", "v3"} {
			if entries[i].SourceID != want {
				t.Errorf("entry %d: expected %s, got %s", i, want, entries[i].SourceID)
			}
		}
	})

	t.Run("Invalid URL", func(t *testing.T) {
		urls := []string{
			"",
			"https://www.youtube.com/watch?v=abc",
			"https://youtube.com/playlist?list=PL1",
			"http://www.youtube.com/playlist?list=PL1",
			"https://open.spotify.com/playlist/abc",
		}

		for _, u := range urls {
			lister := &tu.FakeSource{}
			_, err := ReadSource(context.Background(), lister, u)

			if kind, ok := shared.ValidationKindOf(err); !ok || kind != shared.InvalidSourceURL {
				t.Errorf("%q: expected InvalidSourceURL, got %v", u, err)
			}
			if lister.Calls != 0 {
				t.Errorf("%q: lister should not be invoked", u)
			}
		}
	})

	t.Run("Source Unavailable", func(t *testing.T) {
		cause := errors.New("playlist is private")
		lister := &tu.FakeSource{Err: cause}

		_, err := ReadSource(context.Background(), lister, playlistURL)
		if kind, ok := shared.ValidationKindOf(err); !ok || kind != shared.SourceUnavailable {
			t.Fatalf("expected SourceUnavailable, got %v", err)
		}
		if !errors.Is(err, cause) {
			t.Error("expected the cause to be preserved")
		}
		if lister.Calls != 1 {
			t.Errorf("expected exactly one attempt, got %d", lister.Calls)
		}
	})
}
