package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/yttext"
	"github.com/ytget/yttext/client"
	"github.com/ytget/yttext/internal/config"
	"github.com/ytget/yttext/internal/logger"
)

// errUsage marks bad invocations so main can exit with status 2.
var errUsage = errors.New("usage")

type rootOptions struct {
	configPath   string
	output       string
	noTimestamps bool
	languages    []string
	playlist     bool
	limit        int
	httpTimeout  time.Duration
	proxy        string
	userAgent    string
	verbose      bool

	cfg config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "yttext <video_or_playlist_url>",
		Short: "Download YouTube video transcripts as text files",
		Long: `yttext fetches the transcript of a YouTube video, picks the best-matching
language track, and saves it as readable text named after the video title.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return fmt.Errorf("%w: %v", errUsage, err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.playlist {
				return runPlaylist(cmd, opts, args[0])
			}
			return runFetch(cmd, opts, args[0])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Config file path (default: <user config dir>/yttext/config.toml)")
	pf.StringSliceVarP(&opts.languages, "language", "l", nil, "Preferred language code(s), in order (e.g. -l es,en)")
	pf.DurationVar(&opts.httpTimeout, "http-timeout", 0, "HTTP timeout (e.g. 30s, 1m)")
	pf.StringVar(&opts.proxy, "proxy", "", "Proxy URL (http/https/socks)")
	pf.StringVar(&opts.userAgent, "ua", "", "Override User-Agent header")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	fl := rootCmd.Flags()
	fl.StringVarP(&opts.output, "output", "o", "", "Output file or directory (default derives from the video title)")
	fl.BoolVar(&opts.noTimestamps, "no-timestamps", false, "Omit [MM:SS] timestamps from the output")
	fl.BoolVar(&opts.playlist, "playlist", false, "Treat the argument as a playlist URL or ID")
	fl.IntVar(&opts.limit, "limit", 0, "Max playlist items to process (0 uses the service default)")

	rootCmd.AddCommand(newListCommand(opts))

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	return rootCmd
}

// setup loads the config file and applies global logger settings.
func (o *rootOptions) setup() error {
	path := o.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	o.cfg = cfg

	if o.verbose {
		logger.GetGlobalLogger().SetLevel(logger.DEBUG)
	}
	return nil
}

// newFetcher builds a Fetcher from config-file defaults overridden by flags.
func (o *rootOptions) newFetcher() *yttext.Fetcher {
	timeout := o.httpTimeout
	if timeout <= 0 {
		timeout = o.cfg.HTTPTimeout()
	}
	ua := o.userAgent
	if ua == "" {
		ua = o.cfg.UserAgent
	}
	proxy := o.proxy
	if proxy == "" {
		proxy = o.cfg.ProxyURL
	}
	c := client.NewWith(client.Config{Timeout: timeout, UserAgent: ua, ProxyURL: proxy})

	languages := o.languages
	if len(languages) == 0 {
		languages = o.cfg.Languages
	}

	f := yttext.New().
		WithHTTPClient(c.HTTPClient).
		WithLanguages(languages...).
		WithTimestamps(o.cfg.Timestamps && !o.noTimestamps).
		WithOutputDir(o.cfg.OutputDir)
	if o.output != "" {
		f.WithOutputPath(o.output)
	}
	return f
}
