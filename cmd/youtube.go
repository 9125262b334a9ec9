package main

import (
	"context"
	"strings"

	"github.com/desertthunder/ytspot/internal/tasks"
	"github.com/urfave/cli/v3"
)

// YouTubeEntries prints the flat listing of a source playlist.
func (r *Runner) YouTubeEntries(ctx context.Context, cmd *cli.Command) error {
	url := strings.TrimSpace(cmd.StringArg("url"))

	entries, err := tasks.ReadSource(ctx, r.source, url)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	r.writePlain("Found %d entries:\n\n", len(entries))
	for i, e := range entries {
		r.writePlain("%d. %s\n", i+1, e.Title)
		if query := tasks.Query(e.Title); query != e.Title {
			r.writePlain("   Query: %s\n", query)
		}
		r.writePlain("   ID: %s\n", e.SourceID)
	}
	return nil
}
