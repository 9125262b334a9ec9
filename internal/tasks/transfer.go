package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytspot/internal/services"
	"github.com/desertthunder/ytspot/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultTickInterval is the deferral between two entries.
const DefaultTickInterval = 100 * time.Millisecond

// TransferOpts configures a [Transfer].
type TransferOpts struct {
	TickInterval time.Duration
	MissPolicy   MissPolicy
	Logger       *log.Logger
}

// Transfer runs the per-entry match and append loop.
type Transfer struct {
	catalog services.Catalog
	matcher *Matcher
	limiter *rate.Limiter
	policy  MissPolicy
	logger  *log.Logger
}

// NewTransfer creates a loop that appends to catalog using matcher.
//
// A zero TickInterval disables the deferral.
func NewTransfer(catalog services.Catalog, matcher *Matcher, opts TransferOpts) *Transfer {
	limit := rate.Inf
	if opts.TickInterval > 0 {
		limit = rate.Every(opts.TickInterval)
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &Transfer{
		catalog: catalog,
		matcher: matcher,
		limiter: rate.NewLimiter(limit, 1),
		policy:  opts.MissPolicy,
		logger:  logger,
	}
}

// Run processes session one entry per tick until it is exhausted, fails or ctx is done.
//
// Each appended entry produces a TrackAdded update before its append call, each skipped entry a TrackSkipped update,
// and a complete session one Finished update. Sends block until the receiver takes the update or ctx is done, so
// progress must be drained concurrently. Run does not close progress.
func (t *Transfer) Run(ctx context.Context, session *TransferSession, progress chan<- ProgressUpdate) error {
	total := len(session.Entries)
	dest := session.Destination

	for !session.Exhausted() {
		if err := t.limiter.Wait(ctx); err != nil {
			return t.stop(ctx, session, err)
		}

		i := session.Cursor()
		entry := session.current()
		session.state = Matching

		track, err := t.matcher.MatchEntry(ctx, entry)
		if err != nil {
			var miss *NoMatchError
			if errors.As(err, &miss) && t.policy == SkipMisses {
				t.logger.Warn("no match, skipping", "entry", i+1, "title", entry.Title)
				session.recordSkip(err)
				if err := send(ctx, progress, trackSkippedUpdate(i+1, total, entry)); err != nil {
					return t.stop(ctx, session, err)
				}
				session.advance()
				continue
			}
			return t.stop(ctx, session, fmt.Errorf("entry %d %q: %w", i+1, entry.Title, err))
		}

		session.state = Appending
		if err := send(ctx, progress, trackAddedUpdate(i+1, total, track)); err != nil {
			return t.stop(ctx, session, err)
		}

		if err := t.catalog.AppendTrack(ctx, dest.ID, track.CatalogID); err != nil {
			return t.stop(ctx, session, fmt.Errorf("entry %d %q: %w", i+1, entry.Title, err))
		}

		t.logger.Debug("appended", "entry", i+1, "track", track.CatalogID, "playlist", dest.ID)
		session.recordAppend(track)
		session.advance()
	}

	session.state = Complete
	if err := send(ctx, progress, finishedUpdate(session)); err != nil {
		return err
	}
	t.logger.Info("transfer complete", "playlist", dest.Name, "appended", session.AppendedCount(), "skipped", len(session.skipped))
	return nil
}

func (t *Transfer) stop(ctx context.Context, session *TransferSession, err error) error {
	if ctx.Err() != nil {
		session.state = Canceled
		t.logger.Warn("transfer canceled", "cursor", session.Cursor(), "total", len(session.Entries))
		return ctx.Err()
	}
	session.state = Failed
	t.logger.Error("transfer failed", "cursor", session.Cursor(), "error", err)
	return err
}

// send delivers update unless ctx is done first.
func send(ctx context.Context, progress chan<- ProgressUpdate, update ProgressUpdate) error {
	if progress == nil {
		return nil
	}
	select {
	case progress <- update:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
