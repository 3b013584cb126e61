package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ytget/yttext/errs"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", messageFor(err))
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// messageFor maps sentinel errors to the messages shown to users.
func messageFor(err error) string {
	switch {
	case errors.Is(err, errs.ErrInvalidURL):
		return err.Error()
	case errors.Is(err, errs.ErrTranscriptsDisabled):
		return "transcripts are disabled for this video"
	case errors.Is(err, errs.ErrNoTranscript):
		return "no transcript found for this video"
	case errors.Is(err, errs.ErrVideoUnavailable):
		return err.Error()
	default:
		return err.Error()
	}
}
