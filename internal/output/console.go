package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/gitwhisperer/whisper/internal/classify"
	"github.com/gitwhisperer/whisper/internal/story"
)

const ruleWidth = 60

// ConsoleNarrativeWriter writes narrative reports to the console.
type ConsoleNarrativeWriter struct{}

// Write outputs the narrative report to the console.
func (w *ConsoleNarrativeWriter) Write(report *NarrativeReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	green := color.New(color.FgGreen, color.Bold)
	green.Fprintln(out, "Git Whisperer Report")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Commits analyzed: %s\n", humanize.Comma(int64(report.CommitCount)))
	if report.StoredCount != report.CommitCount {
		fmt.Fprintf(out, "Commits in store: %s\n", humanize.Comma(int64(report.StoredCount)))
	}
	if report.Model != "" {
		fmt.Fprintf(out, "Model: %s\n", report.Model)
	}
	if report.Store != "" {
		fmt.Fprintf(out, "Store: %s\n", report.Store)
	}

	for _, n := range report.Narratives {
		c := kindColor(n.Kind)
		fmt.Fprintln(out)
		c.Fprintln(out, strings.Repeat("═", ruleWidth))
		c.Fprintf(out, "  %s\n", strings.ToUpper(n.Title))
		c.Fprintln(out, strings.Repeat("═", ruleWidth))
		fmt.Fprintf(out, "\n%s\n", strings.TrimSpace(n.Text))
	}

	return nil
}

// ConsoleHistoryWriter writes history reports to the console.
type ConsoleHistoryWriter struct{}

// Write outputs the history report to the console.
func (w *ConsoleHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	color.New(color.FgGreen).Fprintln(out, "Stored Commit History")
	fmt.Fprintf(out, "Repository: %s\n", report.RepoPath)
	fmt.Fprintf(out, "Commits: %s (store holds %s)\n", humanize.Comma(int64(len(report.Items))), humanize.Comma(int64(report.StoredCount)))
	fmt.Fprintf(out, "By type: %s\n\n", tagSummary(report.TagCounts()))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tHash\tType\tFiles\tChurn\tMessage")
	for i, item := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t+%d/-%d\t%s\n",
			i+1,
			item.Commit.ShortHash(),
			tagColor(item.Tag)("%s", item.Tag),
			len(item.Commit.FilesChanged),
			item.Shape.Added,
			item.Shape.Deleted,
			truncateMessage(item.Commit.Message, 60),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(report.MostChanged) > 0 {
		fmt.Fprintln(out)
		color.New(color.FgGreen).Fprintln(out, "Most Changed Files")
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Path\tCommits\tChurn")
		for _, fa := range report.MostChanged {
			fmt.Fprintf(tw, "%s\t%d\t+%d/-%d\n", fa.Path, fa.CommitCount, fa.Added, fa.Deleted)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(report.Couplings) > 0 {
		fmt.Fprintln(out)
		color.New(color.FgGreen).Fprintln(out, "Files That Change Together")
		tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "File A\tFile B\tTogether\tJaccard")
		for _, c := range report.Couplings {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\n", c.FileA, c.FileB, c.CoCommitCount, c.JaccardCoefficient)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Helper functions

func truncateMessage(msg string, maxLen int) string {
	if len(msg) <= maxLen {
		return msg
	}
	return msg[:maxLen-3] + "..."
}

func kindColor(k story.Kind) *color.Color {
	switch k {
	case story.KindChangelog:
		return color.New(color.FgCyan, color.Bold)
	case story.KindDemo:
		return color.New(color.FgMagenta, color.Bold)
	case story.KindRecent, story.KindSince:
		return color.New(color.FgBlue, color.Bold)
	default:
		return color.New(color.FgYellow, color.Bold)
	}
}

func tagColor(tag classify.Tag) func(string, ...interface{}) string {
	switch tag {
	case classify.TagFix:
		return color.RedString
	case classify.TagFeature:
		return color.GreenString
	case classify.TagDocs, classify.TagRefactor:
		return color.CyanString
	default:
		return fmt.Sprintf
	}
}
