// package services defines the collaborators a transfer talks to over the network
//
// Spotify (catalog), YouTube (source listing), OAuth consent
package services

import (
	"context"

	"github.com/desertthunder/ytspot/internal/models"
	"golang.org/x/oauth2"
)

// Catalog is the destination music catalog: search, playlist listing, playlist creation and appends.
type Catalog interface {
	// CurrentUser returns the authenticated user.
	CurrentUser(ctx context.Context) (models.User, error)

	// SearchTracks runs a track search and returns at most limit results in catalog rank order.
	SearchTracks(ctx context.Context, query string, limit int) ([]models.CandidateTrack, error)

	// ListPlaylists returns the first limit playlists of the authenticated user.
	ListPlaylists(ctx context.Context, limit int) ([]models.Playlist, error)

	// CreatePlaylist creates a playlist owned by ownerID.
	CreatePlaylist(ctx context.Context, ownerID string, p models.NewPlaylist) (models.Playlist, error)

	// AppendTrack appends a single track to the end of a playlist.
	AppendTrack(ctx context.Context, playlistID, trackID string) error
}

// SourceLister flattens a source playlist into its entries without fetching per-item metadata.
type SourceLister interface {
	FlattenPlaylist(ctx context.Context, url string) ([]models.SourceEntry, error)
}

// Authorizer obtains an access token for cfg through interactive consent.
type Authorizer interface {
	Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}
