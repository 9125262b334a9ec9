package repositories

import (
	"errors"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
)

// MatchCacheAdapter implements tasks.TrackCacher using MatchRepository.
type MatchCacheAdapter struct {
	repo *MatchRepository
}

// NewMatchCacheAdapter creates a new MatchCacheAdapter with the given repository
func NewMatchCacheAdapter(repo *MatchRepository) *MatchCacheAdapter {
	return &MatchCacheAdapter{repo: repo}
}

// Lookup returns the recorded track for query. A missing row is not an error.
func (a *MatchCacheAdapter) Lookup(query string) (models.CandidateTrack, bool, error) {
	m, err := a.repo.GetByQuery(query)
	if errors.Is(err, shared.ErrTrackNotFound) {
		return models.CandidateTrack{}, false, nil
	}
	if err != nil {
		return models.CandidateTrack{}, false, err
	}
	return m.Track(), true, nil
}

// Record stores track as the answer for query, replacing any earlier answer.
func (a *MatchCacheAdapter) Record(query, sourceID string, track models.CandidateTrack) error {
	return a.repo.Upsert(&models.CachedMatch{
		Query:         query,
		SourceID:      sourceID,
		CatalogID:     track.CatalogID,
		DisplayName:   track.DisplayName,
		PrimaryArtist: track.PrimaryArtist,
	})
}
