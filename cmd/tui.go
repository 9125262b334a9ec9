package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/ytspot/internal/server"
	"github.com/desertthunder/ytspot/internal/shared"
	"github.com/desertthunder/ytspot/internal/tasks"
	"github.com/desertthunder/ytspot/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for playlist transfer.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	creds := tasks.CredentialsFromConfig(r.config.Credentials.Spotify)
	model := ui.NewModel(ctx, r.connect, creds, fileLogger)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if r.authorizer == nil {
		consent := server.NewBrowserConsent(fileLogger)
		consent.Prompt = func(url string) {
			p.Println("Could not open a browser. Open this URL to authorize:\n" + url)
		}
		r.authorizer = consent
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// connect is the TUI's credential gate. It authorizes once and reuses the catalog afterwards.
func (r *Runner) connect(ctx context.Context, creds tasks.Credentials) (*tasks.PlaylistEngine, error) {
	if r.catalog == nil {
		svc, err := tasks.Authenticate(ctx, creds, r.consent())
		if err != nil {
			return nil, err
		}
		r.catalog = svc
	}
	return r.newEngine(r.catalog, r.logger)
}
