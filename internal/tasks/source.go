package tasks

import (
	"context"
	"strings"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/services"
	"github.com/desertthunder/ytspot/internal/shared"
)

// SourceURLMarker must appear in every source playlist URL.
const SourceURLMarker = "https://www.youtube.com/playlist?list"

// ValidateSourceURL reports InvalidSourceURL unless url is a YouTube playlist URL.
func ValidateSourceURL(url string) error {
	if !strings.Contains(url, SourceURLMarker) {
		return shared.NewValidationError(shared.InvalidSourceURL, nil)
	}
	return nil
}

// ReadSource returns the entries of the playlist at url in playlist order.
//
// The lister is not invoked for an invalid URL. Lister failures are reported as SourceUnavailable.
func ReadSource(ctx context.Context, lister services.SourceLister, url string) ([]models.SourceEntry, error) {
	url = strings.TrimSpace(url)
	if err := ValidateSourceURL(url); err != nil {
		return nil, err
	}

	entries, err := lister.FlattenPlaylist(ctx, url)
	if err != nil {
		return nil, shared.NewValidationError(shared.SourceUnavailable, err)
	}
	return entries, nil
}
