package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/ytspot/internal/formatter"
	"github.com/desertthunder/ytspot/internal/shared"
	"github.com/desertthunder/ytspot/internal/tasks"
	"github.com/urfave/cli/v3"
)

// TransferRun copies a YouTube playlist into an existing or new Spotify playlist.
//
// Input that can be checked locally is validated before the browser is opened.
func (r *Runner) TransferRun(ctx context.Context, cmd *cli.Command) error {
	sourceURL := strings.TrimSpace(cmd.String("source"))
	if err := tasks.ValidateSourceURL(sourceURL); err != nil {
		return err
	}

	choice, err := choiceFromFlags(cmd.String("playlist"), cmd.String("create"), cmd.String("visibility"), cmd.String("description"))
	if err != nil {
		return err
	}

	if cmd.IsSet("on-miss") {
		r.config.Transfer.OnMiss = cmd.String("on-miss")
	}

	catalog, err := r.spotify(ctx)
	if err != nil {
		return err
	}

	engine, err := r.newEngine(catalog, r.logger)
	if err != nil {
		return err
	}

	r.logger.Info("starting transfer", "source", sourceURL, "mode", choice.Mode)
	r.writePlain("Starting playlist transfer...\n")
	r.writePlain("Source: %s\n", sourceURL)
	if choice.Mode == tasks.ModeCreateNew {
		r.writePlain("Destination: %s (new)\n\n", choice.Name)
	} else {
		r.writePlain("Destination: %s\n\n", choice.Selected)
	}

	progress := make(chan tasks.ProgressUpdate)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for update := range progress {
			r.printProgress(update)
		}
	}()

	result, err := engine.Run(ctx, tasks.TransferRequest{SourceURL: sourceURL, Choice: choice}, progress)
	close(progress)
	<-printed

	if path := cmd.String("report"); path != "" && len(result.Entries) > 0 {
		if werr := formatter.WriteReport(formatter.NewReport(result), path); werr != nil {
			r.logger.Warn("failed to write report", "path", path, "error", werr)
		} else {
			r.writePlain("✓ Report written to %s\n", path)
		}
	}

	if err != nil {
		if result.State.Terminal() {
			r.writePlain("\nStopped after %d of %d entries (%d added)\n", len(result.Appended)+len(result.Skipped), result.TotalEntries, len(result.Appended))
		}
		return err
	}

	r.printSummary(result)
	return nil
}

// choiceFromFlags maps the destination flags to a [tasks.Choice], rejecting incomplete input up front.
func choiceFromFlags(playlist, create, visibility, description string) (tasks.Choice, error) {
	playlist, create = strings.TrimSpace(playlist), strings.TrimSpace(create)

	switch {
	case playlist != "" && create != "":
		return tasks.Choice{}, fmt.Errorf("%w: use either --playlist or --create", shared.ErrInvalidArgument)
	case playlist != "":
		return tasks.Choice{Mode: tasks.ModeAddExisting, Selected: playlist}, nil
	case create != "":
		public := tasks.ParseVisibility(visibility)
		if public == nil {
			return tasks.Choice{}, shared.NewValidationError(shared.MissingRequiredField,
				fmt.Errorf("--visibility must be public or private"))
		}
		return tasks.Choice{Mode: tasks.ModeCreateNew, Name: create, Description: description, Public: public}, nil
	default:
		return tasks.Choice{}, shared.NewValidationError(shared.NoPlaylistChosen,
			fmt.Errorf("pass --playlist NAME or --create NAME"))
	}
}

func (r *Runner) printProgress(update tasks.ProgressUpdate) {
	switch update.Phase {
	case tasks.TrackAdded:
		r.writePlain("[%d/%d] + %s\n", update.Step, update.Total, update.Message)
	case tasks.TrackSkipped:
		r.writePlain("[%d/%d] ! %s\n", update.Step, update.Total, update.Message)
	case tasks.Finished:
		r.writePlain("\n✓ %s\n", update.Message)
	}
}

func (r *Runner) printSummary(result *tasks.TransferRunResult) {
	r.writePlain("\n")
	r.writePlainHeader("Transfer Complete!")

	name := result.Destination.Name
	if result.Destination.IsNew {
		name += " (new)"
	}
	r.writePlain("Destination: %s\n", name)
	r.writePlain("Added: %d/%d (%.1f%%)\n", len(result.Appended), result.TotalEntries, result.MatchPercentage)
	r.writePlain("Elapsed: %s\n", result.Elapsed.Round(time.Millisecond))

	if len(result.Skipped) > 0 {
		r.writePlain("\n⚠ No match for %d entries:\n", len(result.Skipped))
		for _, s := range result.Skipped {
			r.writePlain("  • %s\n", s.Entry.Title)
		}
	}
}
