package types

// Track describes one available caption track for a video.
type Track struct {
	LanguageCode string
	LanguageName string
	BaseURL      string
	// IsGenerated is true for automatic (ASR) tracks, false for
	// manually authored ones.
	IsGenerated bool
}

// Segment is one timed piece of transcript text.
type Segment struct {
	Text string
	// Start offset from the beginning of the video, in seconds.
	Start float64
}

// TrackList holds the caption tracks of a video in the order the service
// returned them. That order is the last-resort tie-break during selection.
type TrackList []Track
