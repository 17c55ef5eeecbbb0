package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/gitwhisperer/whisper/internal/coupling"
	"github.com/gitwhisperer/whisper/internal/output"
)

// HistoryCmd returns the history command.
func HistoryCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{
			Name:    "top",
			Aliases: []string{"n"},
			Usage:   "Number of most recent commits to show (0 shows all)",
		},
	)

	return &cli.Command{
		Name:      "history",
		Usage:     "Ingest a repository and print the stored commit records",
		ArgsUsage: "[repository path or URL]",
		Flags:     flags,
		Action:    historyAction,
	}
}

func historyAction(c *cli.Context) error {
	cctx, err := NewCommandContext(c, contextOptions{Target: c.Args().First()})
	if err != nil {
		return err
	}
	defer cctx.Close()

	classifier, err := newClassifier(cctx.Config)
	if err != nil {
		return err
	}

	history := cctx.History()
	report := output.NewHistoryReport(cctx.Target, cctx.Config.Store.URL, history, classifier, len(cctx.Result.Stored))
	report.Couplings = coupling.NewAnalyzer(cctx.Config.Coupling).Analyze(history).Couplings
	cctx.Logger.Debugf("found %d coupled file pairs", len(report.Couplings))

	return writeHistoryReport(c, cctx.Format, report)
}
