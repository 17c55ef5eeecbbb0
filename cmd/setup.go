package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/gitwhisperer/whisper/config"
	"github.com/gitwhisperer/whisper/internal/store"
)

// SetupCmd returns the setup command.
func SetupCmd() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Write the configuration file and optionally check connectivity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "Gemini API key",
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: "Gemini model name",
			},
			&cli.StringFlag{
				Name:  "store",
				Usage: "Commit store URL (memory://, redis://host:port/db, bolt://file, sqlite://file)",
			},
			&cli.StringFlag{
				Name:  "namespace",
				Usage: "Collection name inside the store",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "Where to write the configuration (default: ~/.whisper.json)",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Connect to the store and call the Gemini API after saving",
			},
		},
		Action: setupAction,
	}
}

func setupAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if key := c.String("api-key"); key != "" {
		cfg.Gemini.APIKey = key
	}
	if model := c.String("model"); model != "" {
		cfg.Gemini.Model = model
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	path := c.String("path")
	if path == "" {
		path = c.String("config")
	}
	if path == "" {
		path = config.DefaultPath()
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	color.Green("Configuration saved to %s", path)

	if !c.Bool("check") {
		return nil
	}
	return checkConnectivity(c.Context, cfg)
}

// checkConnectivity opens the store and pings the model, reporting each result.
func checkConnectivity(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(ctx, store.Options{URL: cfg.Store.URL, Namespace: cfg.Store.Namespace})
	if err != nil {
		color.Red("Store check failed: %v", err)
		return err
	}
	_ = st.Close()
	color.Green("Store %s is reachable", cfg.Store.URL)

	if err := cfg.ValidateForNarrative(); err != nil {
		color.Yellow("Skipping Gemini check: %v", err)
		return err
	}
	if err := newGeminiClient(cfg).Ping(ctx); err != nil {
		color.Red("Gemini check failed: %v", err)
		return err
	}
	color.Green("Gemini model %s answered", cfg.Gemini.Model)
	return nil
}
