// Package textfmt renders transcript segments as plain multi-line text.
package textfmt

import (
	"fmt"
	"strings"

	"github.com/ytget/yttext/types"
)

// Lines joins the given segments into newline-separated text. Segment text is
// trimmed and segments that end up empty are dropped entirely; they never
// produce blank lines. When withTimestamps is set, each line is prefixed with
// a [MM:SS] marker derived from the segment start. Minutes are not capped at
// 59, so content past the one hour mark renders as e.g. [75:03]. No trailing
// newline is appended.
func Lines(segments []types.Segment, withTimestamps bool) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if withTimestamps {
			lines = append(lines, Timestamp(seg.Start)+" "+text)
		} else {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}

// Timestamp formats a start offset in seconds as [MM:SS], both fields
// zero-padded to two digits.
func Timestamp(start float64) string {
	total := int(start)
	return fmt.Sprintf("[%02d:%02d]", total/60, total%60)
}
