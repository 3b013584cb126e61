package errs

import (
	"errors"
)

var (
	// ErrInvalidURL indicates that no video ID could be extracted from the input.
	ErrInvalidURL = errors.New("invalid video url")
	// ErrTranscriptsDisabled indicates that captions are turned off for the video.
	ErrTranscriptsDisabled = errors.New("transcripts disabled")
	// ErrNoTranscript indicates that no transcript could be produced from
	// the available tracks: selection found nothing usable, or the chosen
	// track yielded no segments. A video exposing no tracks at all reports
	// ErrTranscriptsDisabled instead.
	ErrNoTranscript = errors.New("no transcript found")
	// ErrVideoUnavailable indicates that the requested video cannot be accessed.
	ErrVideoUnavailable = errors.New("video unavailable")
	// ErrFetchFailed wraps any other transport or service failure.
	ErrFetchFailed = errors.New("fetch failed")
)
