package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ytget/yttext/errs"
	"github.com/ytget/yttext/types"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "transcripts disabled",
			err:  fmt.Errorf("video abc: %w", errs.ErrTranscriptsDisabled),
			want: "transcripts are disabled for this video",
		},
		{
			name: "no transcript",
			err:  errs.ErrNoTranscript,
			want: "no transcript found for this video",
		},
		{
			name: "plain error passes through",
			err:  errors.New("dial tcp: timeout"),
			want: "dial tcp: timeout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := messageFor(tt.err); got != tt.want {
				t.Errorf("messageFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderTrackTable(t *testing.T) {
	tracks := types.TrackList{
		{LanguageCode: "en", LanguageName: "English", IsGenerated: false},
		{LanguageCode: "es", LanguageName: "Spanish (auto-generated)", IsGenerated: true},
	}

	out := renderTrackTable(tracks)
	for _, want := range []string{"CODE", "en", "English", "manual", "es", "generated"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered table missing %q:\n%s", want, out)
		}
	}
}
