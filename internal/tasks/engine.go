// package tasks implements the YouTube to Spotify playlist transfer.
package tasks

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/services"
	"github.com/desertthunder/ytspot/internal/shared"
)

// TransferRequest describes one transfer.
//
// Candidates is the preview the operator chose from in add mode; when nil it is fetched.
type TransferRequest struct {
	SourceURL  string
	Choice     Choice
	Candidates []models.Playlist
}

// TransferRunResult contains all data from a transfer.
type TransferRunResult struct {
	SourceURL       string
	Destination     models.DestinationPlaylistRef
	Entries         []models.SourceEntry
	Appended        []AppendedEntry
	Skipped         []SkippedEntry
	State           SessionState
	TotalEntries    int
	MatchPercentage float64
	Started         time.Time
	Elapsed         time.Duration
}

// EngineOptions configures a [PlaylistEngine].
type EngineOptions struct {
	SearchLimit  int
	PreviewLimit int
	TickInterval time.Duration
	MissPolicy   MissPolicy
	Scorer       Scorer
	Cache        TrackCacher
	ReuseCache   bool
	Logger       *log.Logger
}

// EngineOptionsFromConfig builds [EngineOptions] from the [transfer] and [cache] sections.
func EngineOptionsFromConfig(cfg *shared.Config) (EngineOptions, error) {
	policy, err := ParseMissPolicy(cfg.Transfer.OnMiss)
	if err != nil {
		return EngineOptions{}, err
	}

	scorer, err := ScorerByName(cfg.Transfer.Scorer)
	if err != nil {
		return EngineOptions{}, err
	}

	return EngineOptions{
		SearchLimit:  cfg.Transfer.SearchLimit,
		PreviewLimit: cfg.Transfer.PreviewLimit,
		TickInterval: cfg.Transfer.TickInterval(),
		MissPolicy:   policy,
		Scorer:       scorer,
		ReuseCache:   cfg.Cache.Reuse,
	}, nil
}

// PlaylistEngine wires the source reader, destination resolver, matcher and transfer loop together.
type PlaylistEngine struct {
	catalog services.Catalog
	source  services.SourceLister
	matcher *Matcher
	opts    EngineOptions
	logger  *log.Logger
}

// NewPlaylistEngine creates a new PlaylistEngine with the provided services.
func NewPlaylistEngine(catalog services.Catalog, source services.SourceLister, opts EngineOptions) *PlaylistEngine {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	if opts.PreviewLimit <= 0 {
		opts.PreviewLimit = DefaultPreviewLimit
	}

	matcherOpts := []MatcherOption{WithSearchLimit(opts.SearchLimit), WithScorer(opts.Scorer), WithMatcherLogger(logger)}
	if opts.Cache != nil {
		matcherOpts = append(matcherOpts, WithCache(opts.Cache, opts.ReuseCache))
	}

	return &PlaylistEngine{
		catalog: catalog,
		source:  source,
		matcher: NewMatcher(catalog, matcherOpts...),
		opts:    opts,
		logger:  logger,
	}
}

// Matcher returns the engine's track matcher.
func (e *PlaylistEngine) Matcher() *Matcher {
	return e.matcher
}

// Candidates returns the destination preview.
func (e *PlaylistEngine) Candidates(ctx context.Context) ([]models.Playlist, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	return ListCandidates(ctx, e.catalog, e.opts.PreviewLimit)
}

// Source reads the source playlist.
func (e *PlaylistEngine) Source(ctx context.Context, url string) ([]models.SourceEntry, error) {
	if e.source == nil {
		return nil, fmt.Errorf("%w: source lister not initialized", shared.ErrServiceUnavailable)
	}
	return ReadSource(ctx, e.source, url)
}

// Resolve resolves the destination for choice against candidates.
func (e *PlaylistEngine) Resolve(ctx context.Context, candidates []models.Playlist, choice Choice) (models.DestinationPlaylistRef, error) {
	return Resolve(ctx, e.catalog, candidates, choice)
}

// Run reads the source, resolves the destination and transfers every entry.
//
// The returned result is populated as far as the run got, including on error.
func (e *PlaylistEngine) Run(ctx context.Context, req TransferRequest, progress chan<- ProgressUpdate) (*TransferRunResult, error) {
	result := &TransferRunResult{SourceURL: req.SourceURL, Started: time.Now()}
	defer func() { result.Elapsed = time.Since(result.Started) }()

	if err := ValidateSourceURL(req.SourceURL); err != nil {
		return result, err
	}

	candidates := req.Candidates
	if candidates == nil && req.Choice.Mode == ModeAddExisting {
		var err error
		if candidates, err = e.Candidates(ctx); err != nil {
			return result, err
		}
	}

	entries, err := e.Source(ctx, req.SourceURL)
	if err != nil {
		return result, err
	}
	result.Entries = entries
	result.TotalEntries = len(entries)
	e.logger.Info("read source playlist", "entries", len(entries))

	dest, err := e.Resolve(ctx, candidates, req.Choice)
	if err != nil {
		return result, err
	}
	result.Destination = dest
	e.logger.Info("resolved destination", "playlist", dest.Name, "id", dest.ID, "new", dest.IsNew)

	session := NewTransferSession(dest, entries)
	transfer := NewTransfer(e.catalog, e.matcher, TransferOpts{
		TickInterval: e.opts.TickInterval,
		MissPolicy:   e.opts.MissPolicy,
		Logger:       e.logger,
	})

	err = transfer.Run(ctx, session, progress)
	e.collect(result, session)
	return result, err
}

// Transfer runs a prepared session with the engine's matcher and options.
func (e *PlaylistEngine) Transfer(ctx context.Context, session *TransferSession, progress chan<- ProgressUpdate) (*TransferRunResult, error) {
	result := &TransferRunResult{
		Destination:  session.Destination,
		Entries:      session.Entries,
		TotalEntries: len(session.Entries),
		Started:      time.Now(),
	}

	transfer := NewTransfer(e.catalog, e.matcher, TransferOpts{
		TickInterval: e.opts.TickInterval,
		MissPolicy:   e.opts.MissPolicy,
		Logger:       e.logger,
	})

	err := transfer.Run(ctx, session, progress)
	e.collect(result, session)
	result.Elapsed = time.Since(result.Started)
	return result, err
}

func (e *PlaylistEngine) collect(result *TransferRunResult, session *TransferSession) {
	result.Appended = session.Appended()
	result.Skipped = session.Skipped()
	result.State = session.State()
	if result.TotalEntries > 0 {
		result.MatchPercentage = float64(len(result.Appended)) / float64(result.TotalEntries) * 100
	}
}
