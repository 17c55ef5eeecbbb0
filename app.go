package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/gitwhisperer/whisper/cmd"
	"github.com/gitwhisperer/whisper/config"
	"github.com/gitwhisperer/whisper/internal/git"
	"github.com/gitwhisperer/whisper/internal/store"
	"github.com/gitwhisperer/whisper/internal/story"
)

func main() {
	if err := cmd.App().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		if hint := hintFor(err); hint != "" {
			fmt.Fprintln(os.Stderr, color.YellowString("Hint: %s", hint))
		}
		os.Exit(1)
	}
}

// hintFor suggests the next step for failures a user can fix themselves.
func hintFor(err error) string {
	var apiErr *story.APIError

	switch {
	case errors.Is(err, git.ErrToolUnavailable):
		return "install git and make sure it is on your PATH"
	case errors.Is(err, git.ErrNotRepository), errors.Is(err, git.ErrCommandFailed):
		return "check that the path points at a git working tree with at least one commit"
	case errors.Is(err, store.ErrStorageUnavailable):
		return "check --store / WHISPER_STORE_URL and that the store server is running"
	case errors.Is(err, config.ErrMissingAPIKey), errors.Is(err, story.ErrMissingAPIKey):
		return "set GEMINI_API_KEY or run `whisper setup --api-key <key>`"
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == 429 {
			return "the Gemini quota is exhausted, wait a moment and retry"
		}
		return "check your Gemini API key and model name"
	case errors.Is(err, cmd.ErrNoRepository):
		return "run `whisper add <repository>` first"
	}
	return ""
}
