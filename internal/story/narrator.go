package story

import (
	"context"
	"fmt"

	"github.com/gitwhisperer/whisper/internal/classify"
	"github.com/gitwhisperer/whisper/internal/git"
)

// Completer produces text for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Narrative is one generated text together with the commits it covers.
type Narrative struct {
	Kind    Kind
	Title   string
	Text    string
	Commits []git.CommitRecord
	// Generated is false when Text is the fixed empty-input message.
	Generated bool
}

// Narrator selects commits, builds prompts and asks a Completer for the text.
type Narrator struct {
	completer  Completer
	classifier *classify.Classifier
}

// NewNarrator creates a narrator. classifier may be nil.
func NewNarrator(completer Completer, classifier *classify.Classifier) *Narrator {
	return &Narrator{completer: completer, classifier: classifier}
}

// Generate writes a narrative of kind k over records (log order, newest first).
// When the selection is empty the model is not called.
func (n *Narrator) Generate(ctx context.Context, k Kind, records []git.CommitRecord, opts Options) (*Narrative, error) {
	selected, err := Select(k, records, opts)
	if err != nil {
		return nil, err
	}

	narrative := &Narrative{Kind: k, Title: k.Title(), Commits: selected}
	if k == KindSince {
		narrative.Title = fmt.Sprintf("%s '%s'", k.Title(), opts.Reference)
	}

	if len(selected) == 0 {
		narrative.Text = emptyMessage(k, opts)
		return narrative, nil
	}

	text, err := n.completer.Complete(ctx, BuildPrompt(k, selected, opts, n.classifier))
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", k, err)
	}
	narrative.Text = text
	narrative.Generated = true
	return narrative, nil
}
