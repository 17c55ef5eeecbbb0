package output

import (
	"fmt"
	"strings"
)

// MarkdownNarrativeWriter writes narrative reports as Markdown.
type MarkdownNarrativeWriter struct{}

// Write outputs the narrative report as Markdown.
func (w *MarkdownNarrativeWriter) Write(report *NarrativeReport, options OutputOptions) error {
	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Git Whisperer Report")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Commits Analyzed:** %d\n\n", report.CommitCount)
	if report.Model != "" {
		fmt.Fprintf(out, "**Model:** %s\n\n", report.Model)
	}
	fmt.Fprintf(out, "**Generated:** %s\n", report.GeneratedAt.Format(reportDateTimeLayout))

	for _, n := range report.Narratives {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "## %s\n\n", n.Title)
		fmt.Fprintln(out, strings.TrimSpace(n.Text))
	}

	return nil
}

// MarkdownHistoryWriter writes history reports as Markdown.
type MarkdownHistoryWriter struct{}

// Write outputs the history report as Markdown.
func (w *MarkdownHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	out, file, err := openOutputWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Stored Commit History")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Repository:** %s\n\n", report.RepoPath)
	fmt.Fprintf(out, "**Total Commits:** %d\n\n", len(report.Items))
	fmt.Fprintf(out, "**By Type:** %s\n\n", tagSummary(report.TagCounts()))

	fmt.Fprintln(out, "| # | Hash | Type | Message | Files |")
	fmt.Fprintln(out, "|---|------|------|---------|-------|")
	for i, item := range items {
		files := make([]string, len(item.Commit.FilesChanged))
		for j, fc := range item.Commit.FilesChanged {
			files[j] = fmt.Sprintf("`%s` (%s)", fc.FilePath, escapeMarkdown(fc.Summary))
		}
		fmt.Fprintf(out, "| %d | `%s` | %s | %s | %s |\n",
			i+1, item.Commit.ShortHash(), item.Tag, escapeMarkdown(item.Commit.Message), strings.Join(files, "<br>"))
	}

	if len(report.MostChanged) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Most Changed Files")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| Path | Commits | Added | Deleted |")
		fmt.Fprintln(out, "|------|---------|-------|---------|")
		for _, fa := range report.MostChanged {
			fmt.Fprintf(out, "| `%s` | %d | %d | %d |\n", fa.Path, fa.CommitCount, fa.Added, fa.Deleted)
		}
	}

	if len(report.Couplings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Files That Change Together")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "| File A | File B | Together | Jaccard | Confidence |")
		fmt.Fprintln(out, "|--------|--------|----------|---------|------------|")
		for _, c := range report.Couplings {
			fmt.Fprintf(out, "| `%s` | `%s` | %d | %.2f | %.2f |\n", c.FileA, c.FileB, c.CoCommitCount, c.JaccardCoefficient, c.Confidence)
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
