// Package classify tags commits by intent from their messages.
package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gitwhisperer/whisper/internal/git"
)

// Tag is the intent assigned to a commit.
type Tag string

const (
	TagFix      Tag = "fix"
	TagFeature  Tag = "feature"
	TagDocs     Tag = "docs"
	TagRefactor Tag = "refactor"
	TagChore    Tag = "chore"
	TagOther    Tag = "other"
)

// Order lists tags in match precedence. TagOther comes last and always matches.
var Order = []Tag{TagFix, TagFeature, TagDocs, TagRefactor, TagChore, TagOther}

// Rules maps a tag to the regex patterns that select it.
type Rules map[Tag][]string

// DefaultRules recognizes conventional commit prefixes and common wording.
func DefaultRules() Rules {
	return Rules{
		TagFix:      {`^fix(\(.+\))?!?:`, `\bfix(ed|es)?\b`, `\bbug\b`, `\bhotfix\b`, `\bpatch\b`},
		TagFeature:  {`^feat(\(.+\))?!?:`, `\badd(s|ed)?\b`, `\bimplement(s|ed)?\b`, `\bintroduce(s|d)?\b`},
		TagDocs:     {`^docs?(\(.+\))?:`, `\breadme\b`, `\bdocument(ation|ed)?\b`},
		TagRefactor: {`^refactor(\(.+\))?:`, `\brefactor(s|ed|ing)?\b`, `\bclean ?up\b`, `\brename(s|d)?\b`},
		TagChore:    {`^(chore|build|ci|test|style|perf)(\(.+\))?:`, `\bbump\b`, `\bdeps?\b`, `\bmerge\b`},
	}
}

// InvalidPatternError reports a rule that does not compile.
type InvalidPatternError struct {
	Tag     Tag
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Tag, e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// Classifier matches commit messages against compiled rules.
type Classifier struct {
	patterns map[Tag][]*regexp.Regexp
}

// NewClassifier compiles rules. Patterns are case-insensitive; blank ones are skipped.
func NewClassifier(rules Rules) (*Classifier, error) {
	c := &Classifier{patterns: make(map[Tag][]*regexp.Regexp, len(rules))}
	for tag, patterns := range rules {
		for _, p := range patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			if !strings.HasPrefix(p, "(?i)") {
				p = "(?i)" + p
			}
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, &InvalidPatternError{Tag: tag, Pattern: strings.TrimPrefix(p, "(?i)"), Err: err}
			}
			c.patterns[tag] = append(c.patterns[tag], re)
		}
	}
	return c, nil
}

// Classify returns the first tag in Order whose patterns match message.
func (c *Classifier) Classify(message string) Tag {
	for _, tag := range Order {
		for _, re := range c.patterns[tag] {
			if re.MatchString(message) {
				return tag
			}
		}
	}
	return TagOther
}

// Group buckets records by tag, preserving their relative order.
func (c *Classifier) Group(records []git.CommitRecord) map[Tag][]git.CommitRecord {
	groups := make(map[Tag][]git.CommitRecord)
	for _, r := range records {
		tag := c.Classify(r.Message)
		groups[tag] = append(groups[tag], r)
	}
	return groups
}

// Counts returns the number of records per tag.
func (c *Classifier) Counts(records []git.CommitRecord) map[Tag]int {
	counts := make(map[Tag]int)
	for _, r := range records {
		counts[c.Classify(r.Message)]++
	}
	return counts
}
