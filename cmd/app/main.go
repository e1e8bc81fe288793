package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/notegraph/internal"
	"github.com/starford/notegraph/internal/walker"
	pkgconfig "github.com/starford/notegraph/pkg/config"
)

// loadConfig layers defaults, the optional config file and explicitly set
// flags or environment variables, in that order.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	if path := cmd.String("config"); path != "" {
		if err := pkgconfig.Read(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	set := func(name string, dst *string) {
		if cmd.IsSet(name) {
			*dst = cmd.String(name)
		}
	}
	set("root", &cfg.Notes.Root)
	set("uri", &cfg.Notes.BaseURI)
	set("format", &cfg.Notes.Format)
	set("layout", &cfg.Notes.Layout)
	set("daily-folder", &cfg.Notes.DailyFolder)
	set("repository", &cfg.Notes.Repository)
	set("output", &cfg.Output.Path)

	if cmd.IsSet("log-level") {
		if err := cfg.App.LogLevel.UnmarshalText([]byte(cmd.String("log-level"))); err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}
	if cmd.IsSet("port") {
		cfg.App.HTTP.Port = int(cmd.Int("port"))
	}
	return cfg, nil
}

func action(run func(context.Context, ...internal.Option) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		root := cmd.Root()
		if err := run(ctx,
			internal.WithConfig(cfg),
			internal.WithStdout(root.Writer),
			internal.WithStderr(root.ErrWriter),
		); err != nil {
			return fmt.Errorf("app run error: %w", err)
		}
		return nil
	}
}

func main() {
	cmd := &cli.Command{
		Name:      "notegraph",
		Usage:     "Convert a binder/divider/note folder tree of markdown files to RDF",
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		Action:    action(internal.Run),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to an optional YAML config file",
				Sources: cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "root",
				Usage:   "Root directory of the markdown tree",
				Sources: cli.EnvVars("NOTES_ROOT"),
			},
			&cli.StringFlag{
				Name:    "uri",
				Usage:   "Base URI for coined identifiers",
				Sources: cli.EnvVars("NOTES_URI"),
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "Output format: ttl, turtle, nt or ntriples",
				DefaultText: "ttl",
				Sources:     cli.EnvVars("NOTES_FORMAT"),
			},
			&cli.StringFlag{
				Name:        "layout",
				Usage:       "Graph layout: binder or topic",
				DefaultText: walker.LayoutBinder,
				Sources:     cli.EnvVars("NOTES_LAYOUT"),
			},
			&cli.StringFlag{
				Name:        "daily-folder",
				Usage:       "Name of the folder holding YYYY_MM_DD daily notes",
				DefaultText: walker.DefaultDailyFolder,
			},
			&cli.StringFlag{
				Name:    "repository",
				Usage:   "owner/name of the repository; the binder is named after name",
				Sources: cli.EnvVars("GITHUB_REPOSITORY"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the graph to this file instead of stdout",
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level: debug, info, warn or error",
				DefaultText: "info",
				Sources:     cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "watch",
				Usage:  "Rewrite --output whenever the markdown tree changes",
				Action: action(internal.Watch),
			},
			{
				Name:   "serve",
				Usage:  "Serve the graph over HTTP and rebuild it on change",
				Action: action(internal.Serve),
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "port",
						Usage:       "HTTP port",
						DefaultText: "8080",
						Sources:     cli.EnvVars("PORT"),
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
