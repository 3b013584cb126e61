// Package captions parses caption tracks from player responses, selects the
// best-matching track, and fetches its timed segments.
package captions

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ytget/yttext/errs"
	"github.com/ytget/yttext/internal/logger"
	"github.com/ytget/yttext/types"
	"github.com/ytget/yttext/youtube/innertube"
)

const userAgentValue = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

var log = logger.WithComponent(logger.ComponentCaptions)

// ParseTracks extracts the caption track list from an InnerTube player
// response, preserving service order. It returns ErrTranscriptsDisabled when
// the video exposes no caption tracklist and ErrVideoUnavailable when the
// video itself is not playable.
func ParseTracks(data *innertube.PlayerResponse) (types.TrackList, error) {
	status := strings.ToUpper(data.PlayabilityStatus.Status)
	switch status {
	case "", "OK":
	case "ERROR", "UNPLAYABLE", "LOGIN_REQUIRED":
		reason := data.PlayabilityStatus.Reason
		if reason == "" {
			reason = status
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrVideoUnavailable, reason)
	}

	raw := data.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(raw) == 0 {
		return nil, errs.ErrTranscriptsDisabled
	}

	tracks := make(types.TrackList, 0, len(raw))
	for _, t := range raw {
		if t.BaseURL == "" {
			continue
		}
		tracks = append(tracks, types.Track{
			LanguageCode: t.LanguageCode,
			LanguageName: t.DisplayName(),
			BaseURL:      t.BaseURL,
			IsGenerated:  t.Kind == "asr",
		})
	}
	if len(tracks) == 0 {
		return nil, errs.ErrTranscriptsDisabled
	}
	return tracks, nil
}

// json3Response is the wire shape of a caption body in the json3 format.
type json3Response struct {
	Events []struct {
		TStartMs float64 `json:"tStartMs"`
		Segs     []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// FetchSegments downloads the content of one caption track and returns its
// segments in service order. Events without text are skipped.
func FetchSegments(httpClient *http.Client, track types.Track) ([]types.Segment, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	u := track.BaseURL
	if strings.Contains(u, "?") {
		u += "&fmt=json3"
	} else {
		u += "?fmt=json3"
	}

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgentValue)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: caption fetch returned status %d", errs.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrFetchFailed, err)
	}

	var decoded json3Response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: parse caption body: %v", errs.ErrFetchFailed, err)
	}

	segments := make([]types.Segment, 0, len(decoded.Events))
	for _, ev := range decoded.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var text strings.Builder
		for _, seg := range ev.Segs {
			if seg.UTF8 == "\n" {
				continue
			}
			text.WriteString(seg.UTF8)
		}
		segments = append(segments, types.Segment{
			Text:  text.String(),
			Start: ev.TStartMs / 1000.0,
		})
	}

	log.Debug("caption segments fetched", map[string]interface{}{
		"language": track.LanguageCode,
		"segments": len(segments),
	})
	return segments, nil
}
