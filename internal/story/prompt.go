package story

import (
	"fmt"
	"strings"

	"github.com/gitwhisperer/whisper/internal/classify"
	"github.com/gitwhisperer/whisper/internal/git"
)

const (
	summaryInstruction = `Given the following git commit history, generate a concise, plain-English project summary. ` +
		`Explain what problem the project tried to solve, how it evolved, and what actually matters. ` +
		`Focus on intent and evolution, not implementation details. The summary should be similar to the example:

"This project evolved from an initial scaffold into a functional application with authentication, performance optimizations, and a refined developer experience."`

	changelogInstruction = `Given the following git commit history, generate a clean, readable CHANGELOG draft. ` +
		`Group related changes and highlight key features, fixes, and improvements. The changelog should be similar to the example:

"Added JWT-based authentication and refactored middleware to support scaling."`

	demoInstruction = `Given the following git commit history, generate a 60-90 second demo narration script. ` +
		`The script should tell the story of the project's evolution, highlighting key milestones and decisions. ` +
		`Focus on the 'why' behind the changes, not just the 'what'. The script should be similar to the example:

"I started with a basic scaffold, then focused on user authentication. After hitting performance issues, I refactored the core logic, which shaped the final architecture."`

	recentInstruction = `Explain the most recent work in this project and how it fits into the bigger picture. ` +
		`Focus on intent and impact, not implementation details.`

	sinceInstruction = `Explain what changed since '%s' in plain English. Focus on features, fixes, and impact.`
)

// FormatCommits renders commits as the "Commit History:" block sent to the model.
func FormatCommits(records []git.CommitRecord) string {
	var sb strings.Builder
	sb.WriteString("Commit History:\n")
	for _, r := range records {
		fmt.Fprintf(&sb, "- %s: %s\n", r.Hash, r.Message)
		for _, fc := range r.FilesChanged {
			fmt.Fprintf(&sb, "  - %s (%s)\n", fc.FilePath, fc.Summary)
		}
	}
	return sb.String()
}

// formatGroups lists short hashes per tag, in tag precedence order.
func formatGroups(groups map[classify.Tag][]git.CommitRecord) string {
	var sb strings.Builder
	sb.WriteString("Commits by type:\n")
	for _, tag := range classify.Order {
		records := groups[tag]
		if len(records) == 0 {
			continue
		}
		hashes := make([]string, 0, len(records))
		for _, r := range records {
			hashes = append(hashes, r.ShortHash())
		}
		fmt.Fprintf(&sb, "- %s: %s\n", tag, strings.Join(hashes, ", "))
	}
	return sb.String()
}

// BuildPrompt assembles the model prompt for kind k. A nil classifier skips grouping.
func BuildPrompt(k Kind, records []git.CommitRecord, opts Options, c *classify.Classifier) string {
	var instruction string
	switch k {
	case KindSummary:
		instruction = summaryInstruction
	case KindChangelog:
		instruction = changelogInstruction
	case KindDemo:
		instruction = demoInstruction
	case KindRecent:
		instruction = recentInstruction
	case KindSince:
		instruction = fmt.Sprintf(sinceInstruction, opts.Reference)
	}

	prompt := instruction + "\n\n" + FormatCommits(records)
	if k == KindChangelog && c != nil {
		prompt += "\n" + formatGroups(c.Group(records))
	}
	return prompt
}

// emptyMessage is returned instead of calling the model when there is nothing to narrate.
func emptyMessage(k Kind, opts Options) string {
	switch k {
	case KindChangelog:
		return "No commits provided to generate a changelog."
	case KindDemo:
		return "No commits provided to generate a demo script."
	case KindSince:
		return fmt.Sprintf("No changes found since '%s'.", opts.Reference)
	default:
		return "No commits provided to generate a summary."
	}
}
