package aggregation

import (
	"math"
	"strconv"
	"strings"
)

// StatSummary is the decoded right-hand side of a `--stat` line, e.g. "12 +++++---".
type StatSummary struct {
	Lines   int // total lines changed as printed by git
	Added   int // estimated from the +/- histogram
	Deleted int
	Binary  bool
}

// ParseSummary decodes a stat summary. Unknown shapes decode to the zero value.
//
// git scales the histogram to the terminal width, so Added and Deleted are
// proportional estimates that always sum to Lines.
func ParseSummary(summary string) StatSummary {
	fields := strings.Fields(summary)
	if len(fields) == 0 {
		return StatSummary{}
	}
	if fields[0] == "Bin" {
		return StatSummary{Binary: true}
	}

	lines, err := strconv.Atoi(fields[0])
	if err != nil || lines < 0 {
		return StatSummary{}
	}

	var plus, minus int
	if len(fields) > 1 {
		plus = strings.Count(fields[1], "+")
		minus = strings.Count(fields[1], "-")
	}

	s := StatSummary{Lines: lines}
	switch {
	case plus+minus == 0:
		s.Added = lines
	default:
		s.Added = int(math.Round(float64(lines) * float64(plus) / float64(plus+minus)))
	}
	s.Deleted = lines - s.Added
	return s
}
