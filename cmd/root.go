package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gitwhisperer/whisper/config"
	"github.com/gitwhisperer/whisper/internal/console"
	"github.com/gitwhisperer/whisper/internal/output"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:      "whisper",
		Usage:     "Store a repository's git history and tell its story in plain English",
		Version:   "1.0.0",
		ArgsUsage: "[repository path or URL]",
		Commands: []*cli.Command{
			AnalyzeCmd(),
			AddCmd(),
			SummaryCmd(),
			ChangelogCmd(),
			DemoCmd(),
			LastCmd(),
			SinceCmd(),
			HistoryCmd(),
			SetupCmd(),
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Action: legacyAction,
	}
}

// Common flags shared across commands
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path or clone URL of the repository (default: last added repository)",
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns of file paths to keep (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of file paths to drop (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (console, json, csv, markdown, ci)",
			Value:   "console",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Commit store URL (memory://, redis://host:port/db, bolt://file, sqlite://file)",
		},
		&cli.StringFlag{
			Name:  "namespace",
			Usage: "Collection name inside the store",
		},
		&cli.BoolFlag{
			Name:  "no-progress",
			Usage: "Disable the progress spinner",
		},
	}
}

// getOutputFormat parses the output format flag.
func getOutputFormat(s string) (output.OutputFormat, error) {
	if s == "ndjson" {
		return output.FormatCI, nil
	}
	return output.ParseFormat(s)
}

// loadConfig loads configuration from file or defaults, then applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Apply overrides from CLI
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Filters.Exclude = excludes
	}
	if storeURL := c.String("store"); storeURL != "" {
		cfg.Store.URL = storeURL
	}
	if namespace := c.String("namespace"); namespace != "" {
		cfg.Store.Namespace = namespace
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *console.Logger {
	level, err := console.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = console.LevelInfo
	}
	return console.NewLogger(nil, level)
}

// legacyAction handles the default command behavior.
// When a repository path is provided as an argument, it runs the analyze command.
func legacyAction(c *cli.Context) error {
	// If no args and no subcommand, show help
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}

	return analyzeRun(c, c.Args().First(), analyzeOptions{})
}
