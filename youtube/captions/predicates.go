package captions

import (
	"strings"

	"github.com/ytget/yttext/types"
)

// codeEquals checks the full language code, ignoring case ("en-us" matches "en-US").
func codeEquals(track types.Track, code string) bool {
	return strings.EqualFold(track.LanguageCode, code)
}

// primarySubtag returns the part of a language code before the first "-",
// lower-cased ("en-US" -> "en").
func primarySubtag(code string) string {
	if i := strings.Index(code, "-"); i >= 0 {
		code = code[:i]
	}
	return strings.ToLower(code)
}

// primarySubtagEquals checks that the primary subtags of the track code and
// the requested code agree, so a preference of "en" accepts "en-GB" and a
// preference of "en-US" accepts a bare "en" track.
func primarySubtagEquals(track types.Track, code string) bool {
	return primarySubtag(track.LanguageCode) == primarySubtag(code)
}

// isManual reports whether the track was authored by a human rather than
// generated by speech recognition.
func isManual(track types.Track) bool {
	return !track.IsGenerated
}

// firstWhere returns the first track in list order satisfying pred, or nil.
func firstWhere(tracks types.TrackList, pred func(types.Track) bool) *types.Track {
	for i := range tracks {
		if pred(tracks[i]) {
			return &tracks[i]
		}
	}
	return nil
}

// firstManualThenGenerated returns the first manual track satisfying pred,
// falling back to the first generated one. List order breaks remaining ties.
func firstManualThenGenerated(tracks types.TrackList, pred func(types.Track) bool) *types.Track {
	if t := firstWhere(tracks, func(tr types.Track) bool { return isManual(tr) && pred(tr) }); t != nil {
		return t
	}
	return firstWhere(tracks, pred)
}
