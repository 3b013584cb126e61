package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/yttext"
	"github.com/ytget/yttext/youtube/videoid"
)

func runFetch(cmd *cobra.Command, opts *rootOptions, url string) error {
	res, err := opts.newFetcher().Download(cmd.Context(), url)
	if err != nil {
		return err
	}
	printResult(cmd, res)
	return nil
}

// runPlaylist downloads every playlist item in order, one at a time.
// A failed item is reported and skipped; the run fails only when no
// item succeeds.
func runPlaylist(cmd *cobra.Command, opts *rootOptions, url string) error {
	playlistID, err := videoid.ExtractPlaylist(url)
	if err != nil {
		return err
	}

	f := opts.newFetcher()
	items, err := f.PlaylistItems(cmd.Context(), playlistID, opts.limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("playlist %s has no videos", playlistID)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Playlist %s: %d video(s)\n", playlistID, len(items))

	saved := 0
	for _, item := range items {
		res, err := f.DownloadByID(cmd.Context(), item.VideoID)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  [%d/%d] %s: %s\n", item.Index, len(items), item.VideoID, messageFor(err))
			continue
		}
		fmt.Fprintf(out, "  [%d/%d] ", item.Index, len(items))
		printResult(cmd, res)
		saved++
	}
	if saved == 0 {
		return fmt.Errorf("no transcripts saved from playlist %s", playlistID)
	}
	fmt.Fprintf(out, "Saved %d of %d transcript(s)\n", saved, len(items))
	return nil
}

func printResult(cmd *cobra.Command, res *yttext.Result) {
	kind := "manual"
	if res.IsGenerated {
		kind = "generated"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Transcript saved to: %s\n", res.OutputPath)
	fmt.Fprintf(out, "  %s (%s, %s), %d segment(s)\n", res.LanguageName, res.LanguageCode, kind, res.SegmentCount)
}
