package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gitwhisperer/whisper/internal/story"
)

// SummaryCmd returns the summary command.
func SummaryCmd() *cli.Command {
	return narrativeCmd("summary", "Tell the story of the project", story.KindSummary, nil)
}

// ChangelogCmd returns the changelog command.
func ChangelogCmd() *cli.Command {
	return narrativeCmd("changelog", "Draft a changelog grouped by change type", story.KindChangelog, nil)
}

// DemoCmd returns the demo command.
func DemoCmd() *cli.Command {
	return narrativeCmd("demo", "Write a 60-90 second demo script from the most recent commits", story.KindDemo, []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of recent commits to cover (default: story.demoCommits from config)",
		},
	})
}

// LastCmd returns the last command.
func LastCmd() *cli.Command {
	return narrativeCmd("last", "Explain the most recent commits", story.KindRecent, []cli.Flag{
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of recent commits to explain (default: story.recentCommits from config)",
		},
	})
}

// SinceCmd returns the since command.
func SinceCmd() *cli.Command {
	cmd := narrativeCmd("since", "Explain what changed since a commit hash or message", story.KindSince, nil)
	cmd.ArgsUsage = "<hash prefix or message fragment>"
	return cmd
}

func narrativeCmd(name, usage string, kind story.Kind, extra []cli.Flag) *cli.Command {
	return &cli.Command{
		Name:   name,
		Usage:  usage,
		Flags:  append(commonFlags(), extra...),
		Action: func(c *cli.Context) error { return narrativeAction(c, kind) },
	}
}

func narrativeAction(c *cli.Context, kind story.Kind) error {
	opts := story.Options{}
	if kind == story.KindSince {
		if c.NArg() == 0 {
			return fmt.Errorf("since: %w", story.ErrMissingReference)
		}
		opts.Reference = c.Args().First()
	}

	cctx, err := NewCommandContext(c, contextOptions{RequireNarrative: true})
	if err != nil {
		return err
	}
	defer cctx.Close()

	switch kind {
	case story.KindDemo:
		opts.Limit = windowSize(c.Int("count"), cctx.Config.Story.DemoCommits)
	case story.KindRecent:
		opts.Limit = windowSize(c.Int("count"), cctx.Config.Story.RecentCommits)
	}

	return narrate(c, cctx, []narrativeRequest{{Kind: kind, Options: opts}})
}

// windowSize prefers the flag, then the config value. Zero lets the story package decide.
func windowSize(flag, configured int) int {
	if flag > 0 {
		return flag
	}
	return configured
}
