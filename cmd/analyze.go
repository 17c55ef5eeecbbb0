package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/gitwhisperer/whisper/internal/story"
)

// AnalyzeCmd returns the analyze command.
func AnalyzeCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.BoolFlag{
			Name:  "changelog",
			Usage: "Also generate a changelog draft",
		},
	)

	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Ingest a repository's history and tell its story",
		ArgsUsage: "[repository path or URL]",
		Flags:     flags,
		Action: func(c *cli.Context) error {
			return analyzeRun(c, c.Args().First(), analyzeOptions{Changelog: c.Bool("changelog")})
		},
	}
}

type analyzeOptions struct {
	Changelog bool
}

func analyzeRun(c *cli.Context, target string, opts analyzeOptions) error {
	cctx, err := NewCommandContext(c, contextOptions{Target: target, RequireNarrative: true})
	if err != nil {
		return err
	}
	defer cctx.Close()

	if !cctx.HasCommits() {
		cctx.Logger.Warnf("no commits found in %s", cctx.RepoPath)
	} else {
		cctx.Logger.Infof("stored %d commits from %s", len(cctx.History()), cctx.RepoPath)
	}

	requests := []narrativeRequest{{Kind: story.KindSummary}}
	if opts.Changelog {
		requests = append(requests, narrativeRequest{Kind: story.KindChangelog})
	}
	return narrate(c, cctx, requests)
}
