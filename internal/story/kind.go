// Package story turns commit history into prose with a text generation model.
package story

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gitwhisperer/whisper/internal/git"
)

// Kind selects which narrative is generated.
type Kind string

const (
	KindSummary   Kind = "summary"
	KindChangelog Kind = "changelog"
	KindDemo      Kind = "demo"
	KindRecent    Kind = "recent"
	KindSince     Kind = "since"
)

const (
	DefaultDemoCommits   = 20
	DefaultRecentCommits = 10
)

// ErrMissingReference is returned for KindSince without a reference.
var ErrMissingReference = errors.New("a commit hash or message fragment is required")

// Kinds lists every supported kind.
var Kinds = []Kind{KindSummary, KindChangelog, KindDemo, KindRecent, KindSince}

// ParseKind maps a name to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown narrative kind %q", s)
}

// Title is the heading shown above the generated text.
func (k Kind) Title() string {
	switch k {
	case KindSummary:
		return "Project Story"
	case KindChangelog:
		return "Changelog"
	case KindDemo:
		return "Demo Script (60-90 seconds)"
	case KindRecent:
		return "Recent Work"
	case KindSince:
		return "Changes Since"
	default:
		return string(k)
	}
}

// Options narrows the commits a narrative covers.
type Options struct {
	// Limit caps KindDemo and KindRecent. Zero means the kind's default.
	Limit int
	// Reference is the hash prefix or message fragment KindSince stops at.
	Reference string
}

// Select returns the commits a narrative of kind k covers.
// records must be in log order, newest first.
func Select(k Kind, records []git.CommitRecord, opts Options) ([]git.CommitRecord, error) {
	switch k {
	case KindDemo:
		return firstN(records, opts.Limit, DefaultDemoCommits), nil
	case KindRecent:
		return firstN(records, opts.Limit, DefaultRecentCommits), nil
	case KindSince:
		if strings.TrimSpace(opts.Reference) == "" {
			return nil, ErrMissingReference
		}
		return Since(records, opts.Reference), nil
	case KindSummary, KindChangelog:
		return records, nil
	default:
		return nil, fmt.Errorf("unknown narrative kind %q", k)
	}
}

// Since returns the commits newer than the first one whose hash starts with ref
// or whose message contains it. When nothing matches, every commit is returned.
func Since(records []git.CommitRecord, ref string) []git.CommitRecord {
	for i, r := range records {
		if strings.HasPrefix(r.Hash, ref) || strings.Contains(r.Message, ref) {
			return records[:i]
		}
	}
	return records
}

func firstN(records []git.CommitRecord, n, def int) []git.CommitRecord {
	if n <= 0 {
		n = def
	}
	if len(records) <= n {
		return records
	}
	return records[:n]
}
