package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytspot/internal/models"
	"github.com/desertthunder/ytspot/internal/shared"
	"github.com/desertthunder/ytspot/internal/tasks"
	"github.com/urfave/cli/v3"
)

// SpotifyPlaylists lists the destination preview.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		limit = r.config.Transfer.PreviewLimit
	}

	catalog, err := r.spotify(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("listing spotify playlists", "limit", limit)
	playlists, err := tasks.ListCandidates(ctx, catalog, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, true)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		if p.Description != "" {
			r.writePlain("   Description: %s\n", p.Description)
		}
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Tracks: %d\n", p.TrackCount)
		if p.Public {
			r.writePlain("   Visibility: Public\n")
		} else {
			r.writePlain("   Visibility: Private\n")
		}
		r.writePlain("\n")
	}

	return nil
}

type searchOutput struct {
	Title   string                  `json:"title"`
	Query   string                  `json:"query"`
	Pick    models.CandidateTrack   `json:"pick"`
	Results []models.CandidateTrack `json:"results"`
}

// SpotifySearch runs the matcher's query and selection for one title without appending or caching anything.
func (r *Runner) SpotifySearch(ctx context.Context, cmd *cli.Command) error {
	title := strings.TrimSpace(cmd.StringArg("title"))
	if title == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	limit := int(cmd.Int("limit"))
	if limit <= 0 {
		limit = r.config.Transfer.SearchLimit
	}

	scorerName := r.config.Transfer.Scorer
	if cmd.IsSet("scorer") {
		scorerName = cmd.String("scorer")
	}
	scorer, err := tasks.ScorerByName(scorerName)
	if err != nil {
		return err
	}

	catalog, err := r.spotify(ctx)
	if err != nil {
		return err
	}

	query := tasks.Query(title)
	r.logger.Debug("searching", "title", title, "query", query, "limit", limit)

	results, err := catalog.SearchTracks(ctx, query, limit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return &tasks.NoMatchError{Title: title, Query: query}
	}

	pick := scorer.Pick(query, results)
	if cmd.Bool("json") {
		return r.writeJSON(searchOutput{Title: title, Query: query, Pick: pick, Results: results}, true)
	}

	r.writePlain("Query: %q\n\n", query)
	for _, t := range results {
		marker := " "
		if t.CatalogID == pick.CatalogID {
			marker = "→"
		}
		r.writePlain("%s %2d. %s (%s)\n", marker, t.Rank+1, t.DisplayLine(), t.CatalogID)
	}
	r.writePlain("\nMatch: %s\n", pick.DisplayLine())
	return nil
}
