package tasks

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/services"
	"github.com/desertthunder/ytspot/internal/shared"
	"github.com/sahilm/fuzzy"
)

// DefaultSearchLimit is the number of ranked results requested per entry.
const DefaultSearchLimit = 20

var parenthetical = regexp.MustCompile(`\(.*?\)`)

// NormalizeTitle removes every "(...)" span and trims surrounding whitespace.
//
// Nested parentheses are not handled specially; the shortest span starting at each "(" is removed.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(parenthetical.ReplaceAllString(title, ""))
}

// NoMatchError is returned when a catalog search yields nothing.
type NoMatchError struct {
	Title string
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no catalog match for %q", e.Title)
}

// Is lets callers test for [shared.ErrTrackNotFound].
func (e *NoMatchError) Is(target error) bool {
	return target == shared.ErrTrackNotFound
}

// Scorer picks one candidate out of a ranked result set.
type Scorer interface {
	Pick(query string, candidates []models.CandidateTrack) models.CandidateTrack
}

// TopRank always picks rank 0.
type TopRank struct{}

func (TopRank) Pick(_ string, candidates []models.CandidateTrack) models.CandidateTrack {
	return candidates[0]
}

// FuzzyScorer picks the candidate whose "name artist" line best fuzzy-matches the query, falling back to rank 0.
type FuzzyScorer struct{}

func (FuzzyScorer) Pick(query string, candidates []models.CandidateTrack) models.CandidateTrack {
	lines := make([]string, len(candidates))
	for i, c := range candidates {
		lines[i] = c.DisplayName + " " + c.PrimaryArtist
	}

	matches := fuzzy.Find(query, lines)
	if len(matches) == 0 {
		return candidates[0]
	}
	return candidates[matches[0].Index]
}

// ScorerByName maps the [transfer] scorer setting to a [Scorer].
func ScorerByName(name string) (Scorer, error) {
	switch name {
	case "", "top":
		return TopRank{}, nil
	case "fuzzy":
		return FuzzyScorer{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown scorer %q", shared.ErrInvalidArgument, name)
	}
}

// TrackCacher records successful lookups and optionally answers them.
//
// Implementations should treat Record as best-effort.
type TrackCacher interface {
	Lookup(query string) (models.CandidateTrack, bool, error)
	Record(query, sourceID string, track models.CandidateTrack) error
}

// Matcher resolves source titles to catalog tracks.
type Matcher struct {
	catalog services.Catalog
	limit   int
	scorer  Scorer
	cache   TrackCacher
	reuse   bool
	logger  *log.Logger
}

// MatcherOption configures a [Matcher].
type MatcherOption func(*Matcher)

// WithSearchLimit sets the search breadth.
func WithSearchLimit(limit int) MatcherOption {
	return func(m *Matcher) {
		if limit > 0 {
			m.limit = limit
		}
	}
}

// WithScorer replaces the default [TopRank] selection.
func WithScorer(s Scorer) MatcherOption {
	return func(m *Matcher) {
		if s != nil {
			m.scorer = s
		}
	}
}

// WithCache records matches in c. With reuse set, c is consulted before searching.
func WithCache(c TrackCacher, reuse bool) MatcherOption {
	return func(m *Matcher) {
		m.cache = c
		m.reuse = reuse
	}
}

// WithMatcherLogger sets the logger used for cache diagnostics.
func WithMatcherLogger(l *log.Logger) MatcherOption {
	return func(m *Matcher) { m.logger = l }
}

// NewMatcher creates a [Matcher] over catalog.
func NewMatcher(catalog services.Catalog, opts ...MatcherOption) *Matcher {
	m := &Matcher{catalog: catalog, limit: DefaultSearchLimit, scorer: TopRank{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Query returns the search string used for title.
func Query(title string) string {
	if q := NormalizeTitle(title); q != "" {
		return q
	}
	return strings.TrimSpace(title)
}

// Match resolves a raw source title.
func (m *Matcher) Match(ctx context.Context, rawTitle string) (models.CandidateTrack, error) {
	return m.MatchEntry(ctx, models.SourceEntry{Title: rawTitle})
}

// MatchEntry resolves entry and records the result in the cache when one is configured.
func (m *Matcher) MatchEntry(ctx context.Context, entry models.SourceEntry) (models.CandidateTrack, error) {
	query := Query(entry.Title)

	if m.cache != nil && m.reuse {
		if track, ok, err := m.cache.Lookup(query); err != nil {
			m.debug("match cache lookup failed", "query", query, "error", err)
		} else if ok {
			return track, nil
		}
	}

	results, err := m.catalog.SearchTracks(ctx, query, m.limit)
	if err != nil {
		return models.CandidateTrack{}, err
	}
	if len(results) == 0 {
		return models.CandidateTrack{}, &NoMatchError{Title: entry.Title, Query: query}
	}

	track := m.scorer.Pick(query, results)

	if m.cache != nil {
		if err := m.cache.Record(query, entry.SourceID, track); err != nil {
			m.debug("match cache record failed", "query", query, "error", err)
		}
	}
	return track, nil
}

func (m *Matcher) debug(msg string, kv ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, kv...)
	}
}
