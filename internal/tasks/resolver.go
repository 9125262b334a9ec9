package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/services"
	"github.com/desertthunder/ytspot/internal/shared"
)

// DefaultPreviewLimit bounds the destination playlist preview.
const DefaultPreviewLimit = 9

// ChoiceMode selects between appending to an existing playlist and creating one.
type ChoiceMode int

const (
	ModeUnset ChoiceMode = iota
	ModeAddExisting
	ModeCreateNew
)

func (m ChoiceMode) String() string {
	switch m {
	case ModeAddExisting:
		return "add"
	case ModeCreateNew:
		return "create"
	default:
		return "unset"
	}
}

// Choice is the operator's destination decision.
//
// Selected is used in add mode and matches a candidate by name or id. Name, Description and Public are used in
// create mode; Public must be set explicitly.
type Choice struct {
	Mode        ChoiceMode
	Selected    string
	Name        string
	Description string
	Public      *bool
}

// Visibility returns a pointer suitable for [Choice.Public].
func Visibility(public bool) *bool {
	return &public
}

// ParseVisibility maps "public" and "private" to a [Choice.Public] value. Anything else is unset.
func ParseVisibility(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return Visibility(true)
	case "private":
		return Visibility(false)
	default:
		return nil
	}
}

// ListCandidates returns at most limit playlists of the authenticated user. No pagination is performed.
func ListCandidates(ctx context.Context, catalog services.Catalog, limit int) ([]models.Playlist, error) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}

	playlists, err := catalog.ListPlaylists(ctx, limit)
	if err != nil {
		return nil, err
	}

	if len(playlists) > limit {
		playlists = playlists[:limit]
	}
	return playlists, nil
}

// Resolve turns choice into a destination, creating the playlist in create mode.
func Resolve(ctx context.Context, catalog services.Catalog, candidates []models.Playlist, choice Choice) (models.DestinationPlaylistRef, error) {
	switch choice.Mode {
	case ModeAddExisting:
		return resolveExisting(candidates, choice.Selected)
	case ModeCreateNew:
		return resolveNew(ctx, catalog, choice)
	default:
		return models.DestinationPlaylistRef{}, shared.NewValidationError(shared.NoPlaylistChosen, nil)
	}
}

func resolveExisting(candidates []models.Playlist, selected string) (models.DestinationPlaylistRef, error) {
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return models.DestinationPlaylistRef{}, shared.NewValidationError(shared.NoPlaylistSelected, nil)
	}

	for _, p := range candidates {
		if p.Name == selected || p.ID == selected {
			return models.DestinationPlaylistRef{ID: p.ID, Name: p.Name}, nil
		}
	}

	return models.DestinationPlaylistRef{}, shared.NewValidationError(shared.UnknownPlaylist, fmt.Errorf("%q", selected))
}

func resolveNew(ctx context.Context, catalog services.Catalog, choice Choice) (models.DestinationPlaylistRef, error) {
	name := strings.TrimSpace(choice.Name)
	if name == "" || choice.Public == nil {
		return models.DestinationPlaylistRef{}, shared.NewValidationError(shared.MissingRequiredField, nil)
	}

	user, err := catalog.CurrentUser(ctx)
	if err != nil {
		return models.DestinationPlaylistRef{}, err
	}

	created, err := catalog.CreatePlaylist(ctx, user.ID, models.NewPlaylist{
		Name:        name,
		Description: choice.Description,
		Public:      *choice.Public,
	})
	if err != nil {
		return models.DestinationPlaylistRef{}, err
	}

	return models.DestinationPlaylistRef{ID: created.ID, Name: created.Name, IsNew: true}, nil
}
