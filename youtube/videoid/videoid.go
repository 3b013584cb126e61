// Package videoid extracts the 11-character video ID from user-supplied URLs.
package videoid

import (
	"fmt"
	"regexp"

	"github.com/ytget/yttext/errs"
)

// Patterns are tried in this fixed order; the first capture wins regardless
// of which would match "best". Standard watch URLs and shortened paths first,
// then youtu.be links, then embed links.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[&?]|$)`),
	regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`embed/([0-9A-Za-z_-]{11})`),
}

// Extract returns the video ID found in rawURL. The input is matched as-is;
// no scheme or query normalization is applied. When none of the patterns
// match, the error wraps errs.ErrInvalidURL.
func Extract(rawURL string) (string, error) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(rawURL); len(m) == 2 {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: %s", errs.ErrInvalidURL, rawURL)
}

var playlistPattern = regexp.MustCompile(`[?&]list=([0-9A-Za-z_-]+)`)

// ExtractPlaylist returns the playlist ID from rawURL. A bare ID (no "list="
// parameter, "PL"/"UU"/"OL" style prefix) is returned unchanged so callers can
// pass IDs directly.
func ExtractPlaylist(rawURL string) (string, error) {
	if m := playlistPattern.FindStringSubmatch(rawURL); len(m) == 2 {
		return m[1], nil
	}
	if bareID.MatchString(rawURL) {
		return rawURL, nil
	}
	return "", fmt.Errorf("%w: %s", errs.ErrInvalidURL, rawURL)
}

var bareID = regexp.MustCompile(`^[0-9A-Za-z_-]{13,42}$`)
