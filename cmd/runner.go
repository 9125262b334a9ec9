package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytspot/internal/repositories"
	"github.com/desertthunder/ytspot/internal/server"
	"github.com/desertthunder/ytspot/internal/services"
	"github.com/desertthunder/ytspot/internal/shared"
	"github.com/desertthunder/ytspot/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The Spotify catalog is authorized lazily by the first command that needs it.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	source     services.SourceLister
	authorizer services.Authorizer
	logger     *log.Logger
	output     io.Writer
	db         *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	Source     services.SourceLister
	Authorizer services.Authorizer
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Source == nil {
		opts.Source = services.NewYouTubeService()
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		source:     opts.Source,
		authorizer: opts.Authorizer,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		transferCommand, spotifyCommand, youtubeCommand, setupCommand, cacheCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before applies the global flags: an explicit --config replaces the loaded config, credentials flags override it
// and the log level comes from --verbose or [log] level.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet("config") {
		path := cmd.String("config")
		config, err := shared.LoadOrDefault(path)
		if err != nil {
			return ctx, err
		}
		r.config, r.configPath = config, path
	}

	if id := cmd.String("client-id"); id != "" {
		r.config.Credentials.Spotify.ClientID = id
	}
	if secret := cmd.String("client-secret"); secret != "" {
		r.config.Credentials.Spotify.ClientSecret = secret
	}

	level := r.config.Log.Level
	if cmd.Bool("verbose") {
		level = "debug"
	}
	if level != "" {
		if err := shared.SetLogLevel(r.logger, level); err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

// SetLogger replaces the runner's logger.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// Close releases the match cache database, if it was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// spotify returns the authorized catalog, running the credential gate on first use.
func (r *Runner) spotify(ctx context.Context) (services.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	r.writePlain("→ Opening browser for Spotify authorization (2 minute timeout)...\n")
	svc, err := tasks.Authenticate(ctx, tasks.CredentialsFromConfig(r.config.Credentials.Spotify), r.consent())
	if err != nil {
		return nil, err
	}

	r.logger.Info("spotify authorized")
	r.catalog = svc
	return svc, nil
}

func (r *Runner) consent() services.Authorizer {
	if r.authorizer != nil {
		return r.authorizer
	}

	consent := server.NewBrowserConsent(r.logger)
	consent.Prompt = func(url string) {
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", url)
	}
	return consent
}

// newEngine builds a [tasks.PlaylistEngine] over catalog from the current config.
func (r *Runner) newEngine(catalog services.Catalog, logger *log.Logger) (*tasks.PlaylistEngine, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	opts, err := tasks.EngineOptionsFromConfig(r.config)
	if err != nil {
		return nil, err
	}
	opts.Logger = shared.WithLogger(logger, "session", shared.GenerateID()[:8])
	if cache := r.matchCache(); cache != nil {
		opts.Cache = cache
	}

	return tasks.NewPlaylistEngine(catalog, r.source, opts), nil
}

// matchCache returns the sqlite-backed cache, or nil when it is disabled or cannot be opened.
func (r *Runner) matchCache() tasks.TrackCacher {
	if !r.config.Cache.Enabled {
		return nil
	}

	db, err := r.database()
	if err != nil {
		r.logger.Warn("match cache disabled", "error", err)
		return nil
	}
	return repositories.NewMatchCacheAdapter(repositories.NewMatchRepository(db))
}

// database opens the configured database once and runs pending migrations.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, err
	}
	r.db = db
	return db, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
