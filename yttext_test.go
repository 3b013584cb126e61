package yttext

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/yttext/errs"
)

const watchPageHTML = `<html>
"INNERTUBE_API_KEY":"test-key","INNERTUBE_CLIENT_VERSION":"2.1.0"
<title>Señor Test - YouTube</title>
</html>`

const playerJSON = `{
	"captions": {
		"playerCaptionsTracklistRenderer": {
			"captionTracks": [
				{"baseUrl": "https://captions.test/api?lang=es", "name": {"simpleText": "Spanish"}, "languageCode": "es"},
				{"baseUrl": "https://captions.test/api?lang=en", "name": {"simpleText": "English"}, "languageCode": "en", "kind": "asr"}
			]
		}
	},
	"videoDetails": {"title": "Señor Test"},
	"playabilityStatus": {"status": "OK"}
}`

const captionsJSON = `{"events": [
	{"tStartMs": 0, "segs": [{"utf8": "hola"}]},
	{"tStartMs": 65000, "segs": [{"utf8": "mundo"}]}
]}`

// routingTransport serves the watch page, the player endpoint, and the
// caption body from canned responses.
type routingTransport struct {
	playerBody string
}

func (t *routingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp := &http.Response{StatusCode: http.StatusOK, Header: make(http.Header)}
	switch {
	case req.Method == http.MethodPost:
		resp.Body = io.NopCloser(strings.NewReader(t.playerBody))
	case req.URL.Host == "captions.test":
		resp.Body = io.NopCloser(strings.NewReader(captionsJSON))
	default:
		resp.Body = io.NopCloser(strings.NewReader(watchPageHTML))
	}
	return resp, nil
}

func newTestFetcher(playerBody string) *Fetcher {
	return New().WithHTTPClient(&http.Client{Transport: &routingTransport{playerBody: playerBody}})
}

func TestFetch_PreferredLanguage(t *testing.T) {
	f := newTestFetcher(playerJSON).WithLanguages("es")

	res, err := f.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LanguageCode != "es" {
		t.Errorf("language = %q, want es", res.LanguageCode)
	}
	if res.SegmentCount != 2 {
		t.Errorf("segments = %d, want 2", res.SegmentCount)
	}
	if res.Text != "[00:00] hola\n[01:05] mundo" {
		t.Errorf("text = %q", res.Text)
	}
}

func TestFetch_NoTimestamps(t *testing.T) {
	f := newTestFetcher(playerJSON).WithLanguages("es").WithTimestamps(false)

	res, err := f.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "hola\nmundo" {
		t.Errorf("text = %q", res.Text)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	f := newTestFetcher(playerJSON)
	_, err := f.Fetch(context.Background(), "https://example.com/nothing")
	if !errors.Is(err, errs.ErrInvalidURL) {
		t.Fatalf("expected ErrInvalidURL, got %v", err)
	}
}

func TestFetch_TranscriptsDisabled(t *testing.T) {
	const noCaptions = `{"videoDetails": {"title": "x"}, "playabilityStatus": {"status": "OK"}}`
	f := newTestFetcher(noCaptions)
	_, err := f.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !errors.Is(err, errs.ErrTranscriptsDisabled) {
		t.Fatalf("expected ErrTranscriptsDisabled, got %v", err)
	}
}

func TestDownload_DerivedFilename(t *testing.T) {
	dir := t.TempDir()
	f := newTestFetcher(playerJSON).WithLanguages("es").WithOutputDir(dir)

	res, err := f.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Spanish transcript: sanitized title plus language suffix.
	want := filepath.Join(dir, "Senor_Test_es.txt")
	if res.OutputPath != want {
		t.Fatalf("output path = %q, want %q", res.OutputPath, want)
	}
	b, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(b), "hola") {
		t.Errorf("file content = %q", b)
	}
	if res.Title != "Señor Test" {
		t.Errorf("title = %q", res.Title)
	}
}

func TestDownload_EnglishHasNoSuffix(t *testing.T) {
	dir := t.TempDir()
	f := newTestFetcher(playerJSON).WithLanguages("en").WithOutputDir(dir)

	res, err := f.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := filepath.Base(res.OutputPath); got != "Senor_Test.txt" {
		t.Errorf("filename = %q, want Senor_Test.txt", got)
	}
}

func TestDownload_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "my.txt")
	f := newTestFetcher(playerJSON).WithOutputPath(target)

	res, err := f.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OutputPath != target {
		t.Errorf("output path = %q, want %q", res.OutputPath, target)
	}
}

func TestDownload_DirectoryPath(t *testing.T) {
	dir := t.TempDir()
	f := newTestFetcher(playerJSON).WithLanguages("es").WithOutputPath(dir)

	res, err := f.Download(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(res.OutputPath) != dir {
		t.Errorf("output path %q not inside %q", res.OutputPath, dir)
	}
}

func TestListTracks(t *testing.T) {
	f := newTestFetcher(playerJSON)
	tracks, err := f.ListTracks(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].LanguageCode != "es" || tracks[1].LanguageCode != "en" {
		t.Errorf("service order not preserved: %+v", tracks)
	}
}

func TestIsEnglish(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{code: "en", want: true},
		{code: "en-US", want: true},
		{code: "EN-gb", want: true},
		{code: "es", want: false},
		{code: "", want: false},
	}
	for _, tt := range tests {
		if got := isEnglish(tt.code); got != tt.want {
			t.Errorf("isEnglish(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
