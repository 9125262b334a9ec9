package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
	tu "github.com/desertthunder/ytspot/internal/testing"
)

func TestListCandidates(t *testing.T) {
	t.Run("Bounded Preview", func(t *testing.T) {
		catalog := tu.NewFakeCatalog()
		for i := range 12 {
			catalog.Playlists = append(catalog.Playlists, models.Playlist{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Playlist %d", i)})
		}

		candidates, err := ListCandidates(context.Background(), catalog, DefaultPreviewLimit)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(candidates) != 9 {
			t.Fatalf("expected 9 candidates, got %d", len(candidates))
		}
		for i, c := range candidates {
			if c.ID != fmt.Sprintf("p%d", i) {
				t.Errorf("candidate %d: expected p%d, got %s", i, i, c.ID)
			}
		}
		if catalog.Limits[0] != 9 {
			t.Errorf("expected limit 9 passed to catalog, got %d", catalog.Limits[0])
		}
	})

	t.Run("Configurable Limit", func(t *testing.T) {
		catalog := tu.NewFakeCatalog()
		catalog.Playlists = make([]models.Playlist, 5)

		candidates, _ := ListCandidates(context.Background(), catalog, 3)
		if len(candidates) != 3 {
			t.Errorf("expected 3 candidates, got %d", len(candidates))
		}
	})

	t.Run("Catalog Error", func(t *testing.T) {
		catalog := tu.NewFakeCatalog()
		catalog.ListErr = shared.ErrAPIRequest
		if _, err := ListCandidates(context.Background(), catalog, 9); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestResolve(t *testing.T) {
	candidates := []models.Playlist{{ID: "p1", Name: "Road Trip"}, {ID: "p2", Name: "Focus"}}

	t.Run("Validation", func(t *testing.T) {
		tests := []struct {
			name   string
			choice Choice
			want   shared.ValidationKind
		}{
			{name: "Mode Unset", choice: Choice{}, want: shared.NoPlaylistChosen},
			{name: "Add Without Selection", choice: Choice{Mode: ModeAddExisting}, want: shared.NoPlaylistSelected},
			{name: "Add Whitespace Selection", choice: Choice{Mode: ModeAddExisting, Selected: "  "}, want: shared.NoPlaylistSelected},
			{name: "Add Unknown Playlist", choice: Choice{Mode: ModeAddExisting, Selected: "Gym"}, want: shared.UnknownPlaylist},
			{name: "Create Empty Name", choice: Choice{Mode: ModeCreateNew, Name: "", Public: Visibility(true)}, want: shared.MissingRequiredField},
			{name: "Create Blank Name", choice: Choice{Mode: ModeCreateNew, Name: "   ", Public: Visibility(true)}, want: shared.MissingRequiredField},
			{name: "Create Visibility Unset", choice: Choice{Mode: ModeCreateNew, Name: "My Mix"}, want: shared.MissingRequiredField},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				catalog := tu.NewFakeCatalog()
				_, err := Resolve(context.Background(), catalog, candidates, tt.choice)

				kind, ok := shared.ValidationKindOf(err)
				if !ok || kind != tt.want {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
				if len(catalog.Created) != 0 {
					t.Error("no playlist should be created on validation failure")
				}
			})
		}
	})

	t.Run("Add Existing", func(t *testing.T) {
		ref, err := Resolve(context.Background(), tu.NewFakeCatalog(), candidates, Choice{Mode: ModeAddExisting, Selected: "Focus"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ref.ID != "p2" || ref.IsNew {
			t.Errorf("unexpected ref %+v", ref)
		}
	})

	t.Run("Add Existing By ID", func(t *testing.T) {
		ref, err := Resolve(context.Background(), tu.NewFakeCatalog(), candidates, Choice{Mode: ModeAddExisting, Selected: "p1"})
		if err != nil || ref.Name != "Road Trip" {
			t.Errorf("expected Road Trip, got %+v (%v)", ref, err)
		}
	})

	t.Run("Create New", func(t *testing.T) {
		catalog := tu.NewFakeCatalog()
		ref, err := Resolve(context.Background(), catalog, nil, Choice{Mode: ModeCreateNew, Name: "My Mix", Public: Visibility(true)})
		if err != nil {
			t.Fatalf("expected no error with empty description, got %v", err)
		}
		if !ref.IsNew || ref.ID == "" || ref.Name != "My Mix" {
			t.Errorf("unexpected ref %+v", ref)
		}
		if len(catalog.Created) != 1 || !catalog.Created[0].Public || catalog.Created[0].Description != "" {
			t.Errorf("unexpected created playlists %+v", catalog.Created)
		}
	})

	t.Run("Create Private With Description", func(t *testing.T) {
		catalog := tu.NewFakeCatalog()
		_, err := Resolve(context.Background(), catalog, nil, Choice{Mode: ModeCreateNew, Name: " Gym ", Description: "loud", Public: Visibility(false)})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := catalog.Created[0]; got.Name != "Gym" || got.Public || got.Description != "loud" {
			t.Errorf("unexpected created playlist %+v", got)
		}
	})

	t.Run("Create Failure Surfaces", func(t *testing.T) {
		catalog := tu.NewFakeCatalog()
		catalog.CreateErr = shared.ErrAPIRequest
		_, err := Resolve(context.Background(), catalog, nil, Choice{Mode: ModeCreateNew, Name: "X", Public: Visibility(false)})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("ParseVisibility", func(t *testing.T) {
		if v := ParseVisibility("Public"); v == nil || !*v {
			t.Error("expected public")
		}
		if v := ParseVisibility("private"); v == nil || *v {
			t.Error("expected private")
		}
		if v := ParseVisibility(""); v != nil {
			t.Error("expected unset")
		}
	})
}
