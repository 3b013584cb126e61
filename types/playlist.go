package types

// PlaylistItem is one video entry of a playlist as returned by the browse
// endpoint. Index is the 1-based position shown in the playlist UI; Title is
// the raw display title, not yet sanitized for filenames.
type PlaylistItem struct {
	VideoID string
	Title   string
	Index   int
}
