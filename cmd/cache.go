package main

import (
	"context"

	"github.com/desertthunder/ytspot/internal/repositories"
	"github.com/urfave/cli/v3"
)

// CacheMatches lists or clears the recorded matches.
func (r *Runner) CacheMatches(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}
	repo := repositories.NewMatchRepository(db)

	if cmd.Bool("clear") {
		n, err := repo.Clear()
		if err != nil {
			return err
		}
		r.logger.Info("match cache cleared", "rows", n)
		r.writePlain("✓ Removed %d cached matches\n", n)
		return nil
	}

	matches, err := repo.List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(matches, true)
	}

	total, err := repo.Count()
	if err != nil {
		return err
	}

	r.writePlain("Showing %d of %d cached matches:\n\n", len(matches), total)
	for _, m := range matches {
		r.writePlain("%s\n", m.Query)
		r.writePlain("   → %s (%s)\n", m.Track().DisplayLine(), m.CatalogID)
	}
	return nil
}
