package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ytget/yttext/types"
)

func newListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list <video_url>",
		Short: "List the caption tracks available for a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracks, err := opts.newFetcher().ListTracks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTrackTable(tracks))
			return nil
		},
	}
}

func renderTrackTable(tracks types.TrackList) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"CODE", "NAME", "KIND"})
	for _, t := range tracks {
		kind := "manual"
		if t.IsGenerated {
			kind = "generated"
		}
		tw.AppendRow(table.Row{t.LanguageCode, t.LanguageName, kind})
	}
	return tw.Render()
}
