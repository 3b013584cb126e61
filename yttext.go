package yttext

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/yttext/client"
	"github.com/ytget/yttext/errs"
	"github.com/ytget/yttext/internal/botguard"
	"github.com/ytget/yttext/internal/config"
	"github.com/ytget/yttext/internal/logger"
	"github.com/ytget/yttext/internal/output"
	"github.com/ytget/yttext/internal/sanitize"
	"github.com/ytget/yttext/internal/textfmt"
	"github.com/ytget/yttext/types"
	"github.com/ytget/yttext/youtube/captions"
	"github.com/ytget/yttext/youtube/innertube"
	"github.com/ytget/yttext/youtube/title"
	"github.com/ytget/yttext/youtube/videoid"
)

// Result carries the outcome of a transcript fetch.
type Result struct {
	VideoID      string
	Title        string
	LanguageCode string
	LanguageName string
	IsGenerated  bool
	Text         string
	SegmentCount int
	// OutputPath is set by Download.
	OutputPath string
}

// FetchOptions contains configuration for a single fetch invocation.
//
// Use chainable setters on Fetcher to populate these options.
type FetchOptions struct {
	HTTPClient      *http.Client
	Languages       []string
	Timestamps      bool
	OutputPath      string
	OutputDir       string
	ITClientName    string
	ITClientVersion string
}

// Fetcher provides a high-level API for retrieving video transcripts using
// internal clients and helpers.
type Fetcher struct {
	options FetchOptions
	bg      struct {
		solver botguard.Solver
		mode   botguard.Mode
		cache  botguard.Cache
		ttl    time.Duration
	}
}

var log = logger.WithComponent(logger.ComponentApp)

// New creates a new Fetcher with default options: timestamps on, output
// under the default transcripts directory.
func New() *Fetcher {
	return &Fetcher{options: FetchOptions{
		Timestamps: true,
		OutputDir:  config.DefaultOutputDir,
	}}
}

// WithHTTPClient sets a custom HTTP client to be used for all network calls.
func (f *Fetcher) WithHTTPClient(httpClient *http.Client) *Fetcher {
	f.options.HTTPClient = httpClient
	return f
}

// WithLanguages sets the ordered list of preferred language codes.
func (f *Fetcher) WithLanguages(codes ...string) *Fetcher {
	f.options.Languages = codes
	return f
}

// WithTimestamps controls whether each output line carries a [MM:SS] prefix.
func (f *Fetcher) WithTimestamps(enabled bool) *Fetcher {
	f.options.Timestamps = enabled
	return f
}

// WithOutputPath sets the output file path. If empty, a safe filename is
// derived from the video title. If a directory path is provided, the derived
// filename is placed inside that directory.
func (f *Fetcher) WithOutputPath(path string) *Fetcher {
	f.options.OutputPath = path
	return f
}

// WithOutputDir sets the directory used when no explicit output path is given.
func (f *Fetcher) WithOutputDir(dir string) *Fetcher {
	if strings.TrimSpace(dir) != "" {
		f.options.OutputDir = dir
	}
	return f
}

// WithInnertubeClient sets the InnerTube client name and version to use.
func (f *Fetcher) WithInnertubeClient(name, version string) *Fetcher {
	f.options.ITClientName = strings.TrimSpace(name)
	f.options.ITClientVersion = strings.TrimSpace(version)
	return f
}

// WithBotguard configures attestation usage for InnerTube calls.
func (f *Fetcher) WithBotguard(mode botguard.Mode, solver botguard.Solver, cache botguard.Cache) *Fetcher {
	f.bg.mode = mode
	f.bg.solver = solver
	f.bg.cache = cache
	return f
}

// WithBotguardTTL sets the default attestation TTL when the solver does not
// specify ExpiresAt.
func (f *Fetcher) WithBotguardTTL(ttl time.Duration) *Fetcher {
	f.bg.ttl = ttl
	return f
}

func (f *Fetcher) httpClient() *http.Client {
	if f.options.HTTPClient != nil {
		return f.options.HTTPClient
	}
	return client.New().HTTPClient
}

func (f *Fetcher) innertubeClient() *innertube.Client {
	it := innertube.New(f.httpClient())
	it.WithBotguard(f.bg.solver, f.bg.mode, f.bg.cache).WithBotguardTTL(f.bg.ttl)
	if f.options.ITClientName != "" || f.options.ITClientVersion != "" {
		it.WithClient(f.options.ITClientName, f.options.ITClientVersion)
	}
	return it
}

// ListTracks returns the caption tracks available for the video at videoURL,
// in service order.
func (f *Fetcher) ListTracks(ctx context.Context, videoURL string) (types.TrackList, error) {
	id, err := videoid.Extract(videoURL)
	if err != nil {
		return nil, err
	}
	return f.listTracksByID(id)
}

func (f *Fetcher) listTracksByID(id string) (types.TrackList, error) {
	pr, err := f.innertubeClient().GetPlayerResponse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrFetchFailed, err)
	}
	return captions.ParseTracks(pr)
}

// Fetch retrieves and formats the transcript for the video at videoURL
// without writing anything to disk.
func (f *Fetcher) Fetch(ctx context.Context, videoURL string) (*Result, error) {
	id, err := videoid.Extract(videoURL)
	if err != nil {
		return nil, err
	}
	return f.fetchByID(ctx, id)
}

func (f *Fetcher) fetchByID(ctx context.Context, id string) (*Result, error) {
	log.Debug("fetching transcript", map[string]interface{}{"video": id})

	tracks, err := f.listTracksByID(id)
	if err != nil {
		return nil, err
	}

	track := captions.SelectTrack(tracks, f.options.Languages)
	if track == nil {
		return nil, errs.ErrNoTranscript
	}

	segments, err := captions.FetchSegments(f.httpClient(), *track)
	if err != nil {
		return nil, err
	}
	if len(segments) == 0 {
		return nil, errs.ErrNoTranscript
	}

	return &Result{
		VideoID:      id,
		LanguageCode: track.LanguageCode,
		LanguageName: track.LanguageName,
		IsGenerated:  track.IsGenerated,
		Text:         textfmt.Lines(segments, f.options.Timestamps),
		SegmentCount: len(segments),
	}, nil
}

// Download retrieves the transcript and writes it to disk. The output path
// is the configured one when set; otherwise a filename is derived from the
// video title, suffixed with the language code for non-English tracks, under
// the output directory.
func (f *Fetcher) Download(ctx context.Context, videoURL string) (*Result, error) {
	id, err := videoid.Extract(videoURL)
	if err != nil {
		return nil, err
	}
	return f.downloadByID(ctx, id)
}

func (f *Fetcher) downloadByID(ctx context.Context, id string) (*Result, error) {
	res, err := f.fetchByID(ctx, id)
	if err != nil {
		return nil, err
	}

	outputPath := f.options.OutputPath
	switch {
	case outputPath == "":
		outputPath = filepath.Join(f.options.OutputDir, f.deriveFilename(ctx, res))
	case output.IsDir(outputPath):
		outputPath = filepath.Join(outputPath, f.deriveFilename(ctx, res))
	}

	if err := output.WriteFile(outputPath, res.Text); err != nil {
		return nil, fmt.Errorf("write transcript: %w", err)
	}
	res.OutputPath = outputPath
	return res, nil
}

// deriveFilename builds "<safe title>.txt", appending the language code for
// non-English tracks. The title lookup is best-effort; it degrades to the
// video ID.
func (f *Fetcher) deriveFilename(ctx context.Context, res *Result) string {
	rawTitle := title.Fetch(ctx, f.httpClient(), res.VideoID)
	res.Title = rawTitle

	name := sanitize.Filename(rawTitle)
	if !isEnglish(res.LanguageCode) {
		name += "_" + res.LanguageCode
	}
	return name + ".txt"
}

func isEnglish(code string) bool {
	if i := strings.Index(code, "-"); i >= 0 {
		code = code[:i]
	}
	return strings.EqualFold(code, "en")
}

// PlaylistItems returns entries of a playlist, walking continuations up to
// limit (0 means the default page size).
func (f *Fetcher) PlaylistItems(ctx context.Context, playlistID string, limit int) ([]types.PlaylistItem, error) {
	return f.innertubeClient().GetPlaylistItemsAll(playlistID, limit)
}

// DownloadByID is Download for callers that already hold a video ID.
func (f *Fetcher) DownloadByID(ctx context.Context, videoID string) (*Result, error) {
	return f.downloadByID(ctx, videoID)
}
