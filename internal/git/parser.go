package git

import (
	"bufio"
	"regexp"
	"strings"
	"unicode"
)

const (
	statSeparator = "|"
	// footerKeyword marks the aggregate "N files changed, ..." line git prints after the stats.
	footerKeyword = "changed"
)

// commitHeaderPattern matches a line that opens a new commit block: an abbreviated
// hash (7+ lowercase hex characters) followed by whitespace or the end of the line.
var commitHeaderPattern = regexp.MustCompile(`^[0-9a-f]{7,}(?:\s|$)`)

type parseState int

const (
	stateAwaitHeader parseState = iota
	stateInBlock
)

// ParseLog converts the output of `git log --oneline --stat` into commit records,
// preserving log order. Lines that are neither headers nor stat lines are dropped.
// Empty input yields an empty, non-nil slice.
func ParseLog(raw string) []CommitRecord {
	commits := make([]CommitRecord, 0, 64)

	scanner := bufio.NewScanner(strings.NewReader(strings.TrimSpace(raw)))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	state := stateAwaitHeader
	var block []string

	flush := func() {
		if rec, ok := parseBlock(block); ok {
			commits = append(commits, rec)
		}
		block = block[:0]
	}

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")

		switch state {
		case stateAwaitHeader:
			// The first line of the log always opens a block.
			block = append(block, line)
			state = stateInBlock
		case stateInBlock:
			if commitHeaderPattern.MatchString(line) {
				flush()
			}
			block = append(block, line)
		}
	}
	if state == stateInBlock {
		flush()
	}

	return commits
}

// parseBlock turns one commit block (header line plus stat lines) into a record.
// It reports false for blocks that are blank after trimming.
func parseBlock(block []string) (CommitRecord, bool) {
	text := strings.TrimSpace(strings.Join(block, "\n"))
	if text == "" {
		return CommitRecord{}, false
	}

	lines := strings.Split(text, "\n")
	hash, message := splitHeader(lines[0])

	rec := CommitRecord{
		Hash:         hash,
		Message:      message,
		FilesChanged: make([]FileChange, 0, len(lines)-1),
	}

	for _, line := range lines[1:] {
		if fc, ok := parseStatLine(line); ok {
			rec.FilesChanged = append(rec.FilesChanged, fc)
		}
	}

	return rec, true
}

// splitHeader splits a header line on its first whitespace run.
// Everything after that run is the message, kept as is.
func splitHeader(line string) (hash, message string) {
	idx := strings.IndexFunc(line, unicode.IsSpace)
	if idx == -1 {
		return line, ""
	}
	return line[:idx], strings.TrimLeftFunc(line[idx:], unicode.IsSpace)
}

// parseStatLine recognizes " path | summary" lines, excluding the footer.
func parseStatLine(line string) (FileChange, bool) {
	line = strings.TrimSpace(line)
	if !strings.Contains(line, statSeparator) || strings.Contains(line, footerKeyword) {
		return FileChange{}, false
	}

	path, summary, _ := strings.Cut(line, statSeparator)
	return FileChange{
		FilePath: strings.TrimSpace(path),
		Summary:  strings.TrimSpace(summary),
	}, true
}
