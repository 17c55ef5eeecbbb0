package git

import (
	"errors"
	"fmt"
)

var (
	// ErrToolUnavailable is matched by errors returned when the git executable cannot be found.
	ErrToolUnavailable = errors.New("git executable not found")
	// ErrCommandFailed is matched by errors returned when git exits with a failure.
	ErrCommandFailed = errors.New("git command failed")
	// ErrNotRepository is returned when a path is not inside a git working tree.
	ErrNotRepository = errors.New("not a git repository")
)

// ToolUnavailableError reports that the git binary could not be located.
type ToolUnavailableError struct {
	Binary string
	Err    error
}

func (e *ToolUnavailableError) Error() string {
	return fmt.Sprintf("%s is not installed or not in your PATH: %v", e.Binary, e.Err)
}

func (e *ToolUnavailableError) Unwrap() error { return e.Err }

func (e *ToolUnavailableError) Is(target error) bool { return target == ErrToolUnavailable }

// CommandFailedError reports a git invocation that did not succeed.
// Stderr holds git's diagnostic output verbatim (trimmed).
type CommandFailedError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandFailedError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("error running git log: %v", e.Err)
	}
	return fmt.Sprintf("error running git log: %s", e.Stderr)
}

func (e *CommandFailedError) Unwrap() error { return e.Err }

func (e *CommandFailedError) Is(target error) bool { return target == ErrCommandFailed }
