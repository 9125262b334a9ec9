// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// transferCommand handles playlist transfers
func transferCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transfer",
		Usage: "Transfer a YouTube playlist to Spotify",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Match every source entry and append it to a Spotify playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "source",
						Aliases:  []string{"s"},
						Usage:    "YouTube playlist URL (https://www.youtube.com/playlist?list=...)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "playlist",
						Aliases: []string{"p"},
						Usage:   "Name or ID of an existing Spotify playlist to append to",
					},
					&cli.StringFlag{
						Name:  "create",
						Usage: "Name of a new Spotify playlist to create",
					},
					&cli.StringFlag{
						Name:  "visibility",
						Usage: "Visibility of the new playlist (public or private)",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Description of the new playlist",
					},
					&cli.StringFlag{
						Name:  "on-miss",
						Usage: "What to do when a title has no match (skip or abort)",
					},
					&cli.StringFlag{
						Name:    "report",
						Aliases: []string{"o"},
						Usage:   "Write a transfer report (.csv, .md, .json or text)",
					},
				},
				Action: r.TransferRun,
			},
		},
	}
}

// spotifyCommand handles Spotify inspection
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify operations",
		Commands: []*cli.Command{
			{
				Name:  "playlists",
				Usage: "List the playlists offered as transfer destinations",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of playlists to return (default: transfer.preview_limit)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SpotifyPlaylists,
			},
			{
				Name:  "search",
				Usage: "Show which track a source title would match",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "title",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of results to request (default: transfer.search_limit)",
					},
					&cli.StringFlag{
						Name:  "scorer",
						Usage: "Result picker (top or fuzzy)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SpotifySearch,
			},
		},
	}
}

// youtubeCommand handles YouTube inspection
func youtubeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "youtube",
		Aliases: []string{"yt"},
		Usage:   "YouTube operations",
		Commands: []*cli.Command{
			{
				Name:  "entries",
				Usage: "List the titles of a YouTube playlist in order",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "url",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.YouTubeEntries,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml from the bundled template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write",
						Value:   defaultConfigPath,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the latest migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// cacheCommand handles the match cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local match cache",
		Commands: []*cli.Command{
			{
				Name:  "matches",
				Usage: "List recorded title to track matches",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of matches to list",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "clear",
						Usage: "Delete every recorded match",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheMatches,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive transfers.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for playlist transfer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI is running",
				Value: "./tmp/ytspot-tui.log",
			},
		},
		Action: r.TUI,
	}
}
