package captions

import (
	"github.com/ytget/yttext/types"
)

// englishCodes are tried in this order when the caller expressed no
// preference, manual tracks across the whole set before generated ones.
var englishCodes = []string{"en", "en-US", "en-GB", "en-CA", "en-AU", "en-IE", "en-IN"}

// SelectTrack picks exactly one track from a non-empty list; it returns nil
// only for an empty list. The cascade, each step tried once with silent
// fall-through:
//
//  1. caller preferences, in preference order
//  2. manual track with an English code, codes tried in fixed order
//  3. generated track with an English code, same order
//  4. first manual track in list order
//  5. first generated track in list order
//  6. first track in list order
//
// The result is deterministic for identical inputs.
func SelectTrack(tracks types.TrackList, preferred []string) *types.Track {
	if len(tracks) == 0 {
		return nil
	}

	if len(preferred) > 0 {
		if t := matchPreferred(tracks, preferred); t != nil {
			return t
		}
	}

	for _, code := range englishCodes {
		if t := firstWhere(tracks, func(tr types.Track) bool { return isManual(tr) && codeEquals(tr, code) }); t != nil {
			return t
		}
	}
	for _, code := range englishCodes {
		if t := firstWhere(tracks, func(tr types.Track) bool { return !isManual(tr) && codeEquals(tr, code) }); t != nil {
			return t
		}
	}

	if t := firstWhere(tracks, isManual); t != nil {
		return t
	}
	if t := firstWhere(tracks, func(tr types.Track) bool { return tr.IsGenerated }); t != nil {
		return t
	}
	return &tracks[0]
}

// matchPreferred resolves a caller preference list against the tracks. For
// each preferred code in order: an exact (case-insensitive) code match wins
// first, then a primary-subtag match, manual tracks before generated ones
// within each rule.
func matchPreferred(tracks types.TrackList, preferred []string) *types.Track {
	for _, code := range preferred {
		if t := firstManualThenGenerated(tracks, func(tr types.Track) bool { return codeEquals(tr, code) }); t != nil {
			return t
		}
		if t := firstManualThenGenerated(tracks, func(tr types.Track) bool { return primarySubtagEquals(tr, code) }); t != nil {
			return t
		}
	}
	return nil
}
