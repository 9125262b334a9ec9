// YouTube [SourceLister] implementation
//
// Backed by ytdlp's playlist item listing, which returns the title and video id of each item without resolving
// streams or per-video metadata.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
	"github.com/ytget/ytdlp/v2"
)

const (
	defaultListTimeout = 60 * time.Second
	playlistParam      = "list="
	paramSeparator     = "&"
)

// PlaylistFetcher lists the items of the playlist with the given id, in playlist order.
type PlaylistFetcher func(ctx context.Context, playlistID string) ([]models.SourceEntry, error)

// YouTubeService implements [SourceLister] for YouTube playlists.
type YouTubeService struct {
	timeout time.Duration
	fetch   PlaylistFetcher
}

// NewYouTubeService creates a lister backed by ytdlp.
func NewYouTubeService() *YouTubeService {
	return &YouTubeService{timeout: defaultListTimeout, fetch: ytdlpFetch}
}

// WithFetcher replaces the item fetcher.
func (y *YouTubeService) WithFetcher(fetch PlaylistFetcher) *YouTubeService {
	y.fetch = fetch
	return y
}

// SetTimeout sets the deadline applied to a single listing.
func (y *YouTubeService) SetTimeout(timeout time.Duration) {
	y.timeout = timeout
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// FlattenPlaylist implements [SourceLister].
func (y *YouTubeService) FlattenPlaylist(ctx context.Context, url string) ([]models.SourceEntry, error) {
	id := PlaylistID(url)
	if id == "" {
		return nil, fmt.Errorf("%w: no playlist id in %q", shared.ErrInvalidInput, url)
	}

	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	entries, err := y.fetch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: list playlist %s: %v", shared.ErrAPIRequest, id, err)
	}
	return entries, nil
}

// PlaylistID extracts the value of the list query parameter, or "" when absent.
func PlaylistID(url string) string {
	_, after, ok := strings.Cut(url, playlistParam)
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(after, paramSeparator)
	return id
}

func ytdlpFetch(ctx context.Context, playlistID string) ([]models.SourceEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]models.SourceEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, models.SourceEntry{Title: it.Title, SourceID: it.VideoID})
	}
	return entries, nil
}
