package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gitwhisperer/whisper/config"
	"github.com/gitwhisperer/whisper/internal/classify"
	"github.com/gitwhisperer/whisper/internal/output"
	"github.com/gitwhisperer/whisper/internal/story"
)

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context, format output.OutputFormat) output.OutputOptions {
	return output.OutputOptions{
		Format:     format,
		Top:        c.Int("top"),
		OutputPath: c.String("output"),
	}
}

func newClassifier(cfg *config.Config) (*classify.Classifier, error) {
	classifier, err := classify.NewClassifier(cfg.Classify.Rules())
	if err != nil {
		return nil, fmt.Errorf("invalid classify patterns: %w", err)
	}
	return classifier, nil
}

func newGeminiClient(cfg *config.Config) *story.GeminiClient {
	return story.NewGeminiClient(story.GeminiOptions{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.GeminiTimeout(),
	})
}

// narrate generates one narrative per kind over the context's history and writes the report.
func narrate(c *cli.Context, cctx *CommandContext, requests []narrativeRequest) error {
	classifier, err := newClassifier(cctx.Config)
	if err != nil {
		return err
	}
	client := newGeminiClient(cctx.Config)
	narrator := story.NewNarrator(client, classifier)

	history := cctx.History()
	report := &output.NarrativeReport{
		RepoPath:    cctx.Target,
		Store:       cctx.Config.Store.URL,
		Model:       client.Model(),
		GeneratedAt: time.Now(),
		CommitCount: len(history),
		StoredCount: len(cctx.Result.Stored),
	}

	for _, req := range requests {
		var narrative *story.Narrative
		err := cctx.spin(fmt.Sprintf("Writing %s...", req.Kind.Title()), func() error {
			var genErr error
			narrative, genErr = narrator.Generate(c.Context, req.Kind, history, req.Options)
			return genErr
		})
		if err != nil {
			return err
		}
		cctx.Logger.Debugf("%s covers %d commits", req.Kind, len(narrative.Commits))
		report.Narratives = append(report.Narratives, narrative)
	}

	return writeNarrativeReport(c, cctx.Format, report)
}

type narrativeRequest struct {
	Kind    story.Kind
	Options story.Options
}

func writeNarrativeReport(c *cli.Context, format output.OutputFormat, report *output.NarrativeReport) error {
	opts := OutputOptions(c, format)
	writer := output.NewNarrativeReportWriter(opts.Format)
	return writer.Write(report, opts)
}

func writeHistoryReport(c *cli.Context, format output.OutputFormat, report *output.HistoryReport) error {
	opts := OutputOptions(c, format)
	writer := output.NewHistoryReportWriter(opts.Format)
	return writer.Write(report, opts)
}
