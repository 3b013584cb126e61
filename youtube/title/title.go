// Package title looks up a video's display title from its watch page.
package title

import (
	"context"
	"io"
	"net/http"
	"regexp"

	"github.com/ytget/yttext/internal/logger"
)

const (
	watchURLPrefix = "https://www.youtube.com/watch?v="
	userAgentValue = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
)

var (
	// "<title>Video Title - YouTube</title>" on the watch page.
	titleTagRe = regexp.MustCompile(`<title>(.+?) - YouTube</title>`)
	// ytInitialData embeds the title as the first text run.
	initialDataRe = regexp.MustCompile(`"title":\s*\{\s*"runs":\s*\[\s*\{\s*"text":\s*"([^"]+)"`)
)

var log = logger.WithComponent(logger.ComponentTitle)

// Fetch returns the video title for the given ID. It is total: on any
// network or parse failure it returns the ID itself, never an error. The
// title tag is tried first, then the ytInitialData JSON.
func Fetch(ctx context.Context, httpClient *http.Client, videoID string) string {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURLPrefix+videoID, nil)
	if err != nil {
		return videoID
	}
	req.Header.Set("User-Agent", userAgentValue)

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Debug("title fetch failed, using video id", map[string]interface{}{"id": videoID})
		return videoID
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return videoID
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return videoID
	}

	if m := titleTagRe.FindSubmatch(body); len(m) == 2 {
		return string(m[1])
	}
	if m := initialDataRe.FindSubmatch(body); len(m) == 2 {
		return string(m[1])
	}
	return videoID
}
