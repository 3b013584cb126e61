package captions

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ytget/yttext/errs"
	"github.com/ytget/yttext/types"
	"github.com/ytget/yttext/youtube/innertube"
)

func playerResponseWithTracks(tracks ...innertube.CaptionTrack) *innertube.PlayerResponse {
	pr := &innertube.PlayerResponse{}
	pr.PlayabilityStatus.Status = "OK"
	pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks = tracks
	return pr
}

func wireTrack(code, kind string) innertube.CaptionTrack {
	var t innertube.CaptionTrack
	t.BaseURL = "https://example.com/" + code
	t.LanguageCode = code
	t.Kind = kind
	t.Name.SimpleText = code
	return t
}

func TestParseTracks(t *testing.T) {
	pr := playerResponseWithTracks(wireTrack("en", ""), wireTrack("es", "asr"))
	tracks, err := ParseTracks(pr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].IsGenerated {
		t.Error("first track should be manual")
	}
	if !tracks[1].IsGenerated {
		t.Error("asr track should be generated")
	}
}

func TestParseTracks_Disabled(t *testing.T) {
	pr := &innertube.PlayerResponse{}
	pr.PlayabilityStatus.Status = "OK"
	_, err := ParseTracks(pr)
	if !errors.Is(err, errs.ErrTranscriptsDisabled) {
		t.Fatalf("expected ErrTranscriptsDisabled, got %v", err)
	}
}

func TestParseTracks_Unplayable(t *testing.T) {
	pr := &innertube.PlayerResponse{}
	pr.PlayabilityStatus.Status = "ERROR"
	pr.PlayabilityStatus.Reason = "This video is unavailable"
	_, err := ParseTracks(pr)
	if !errors.Is(err, errs.ErrVideoUnavailable) {
		t.Fatalf("expected ErrVideoUnavailable, got %v", err)
	}
}

func TestParseTracks_SkipsEmptyBaseURL(t *testing.T) {
	empty := wireTrack("de", "")
	empty.BaseURL = ""
	pr := playerResponseWithTracks(empty, wireTrack("en", ""))
	tracks, err := ParseTracks(pr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 1 || tracks[0].LanguageCode != "en" {
		t.Fatalf("unexpected tracks: %+v", tracks)
	}
}

func TestFetchSegments(t *testing.T) {
	const body = `{"events": [
		{"tStartMs": 0, "segs": [{"utf8": "hello"}, {"utf8": " world"}]},
		{"tStartMs": 1500},
		{"tStartMs": 65000, "segs": [{"utf8": "later"}]}
	]}`

	var gotFmt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFmt = r.URL.Query().Get("fmt")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	segs, err := FetchSegments(srv.Client(), types.Track{BaseURL: srv.URL + "/api/timedtext?lang=en", LanguageCode: "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotFmt != "json3" {
		t.Errorf("fmt param = %q, want json3", gotFmt)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments (empty event skipped), got %d", len(segs))
	}
	if segs[0].Text != "hello world" || segs[0].Start != 0 {
		t.Errorf("unexpected first segment: %+v", segs[0])
	}
	if segs[1].Start != 65.0 {
		t.Errorf("start = %v, want 65", segs[1].Start)
	}
}

func TestFetchSegments_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FetchSegments(srv.Client(), types.Track{BaseURL: srv.URL})
	if !errors.Is(err, errs.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}

func TestFetchSegments_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<xml>not json</xml>"))
	}))
	defer srv.Close()

	_, err := FetchSegments(srv.Client(), types.Track{BaseURL: srv.URL})
	if !errors.Is(err, errs.ErrFetchFailed) {
		t.Fatalf("expected ErrFetchFailed, got %v", err)
	}
}
