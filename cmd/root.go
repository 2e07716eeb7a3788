// Package cmd implements the CLI commands using Cobra.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"magpie/internal/cache"
	"magpie/internal/config"
	"magpie/internal/extract"
	"magpie/internal/fetch"
	"magpie/internal/httputil"
	"magpie/internal/media"
	"magpie/internal/probe"
	"magpie/internal/resolve"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagOutput      string
	flagJSON        bool
	flagLimit       int
	flagNoTranscode bool
	flagDebug       bool
)

// cfg holds the loaded configuration (merged: defaults < config file < flags).
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "magpie [url...]",
	Short: "Resolve and download media from social-media links",
	Long: `Magpie resolves social-media URLs (Instagram posts and stories, TikTok,
YouTube, Pinterest) into their media files and saves them locally.
Results are cached in-process, so repeated URLs cost nothing extra.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: loadConfig,
	RunE:              resolveRun,
}

// Execute runs the root command with ctx controlling cancellation.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output directory for downloaded media")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "Print result metadata as JSON instead of saving files")
	rootCmd.PersistentFlags().IntVarP(&flagLimit, "limit", "n", 0, "Maximum items per search (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoTranscode, "no-transcode", false, "Skip ffmpeg re-encoding of videos")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads and merges configuration: defaults < config file < CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// CLI flags override config file values
	if flagOutput != "" {
		cfg.OutputDir = flagOutput
	}
	if flagLimit > 0 {
		cfg.SearchLimit = flagLimit
	}
	if flagNoTranscode {
		cfg.Transcode = false
	}
	if flagDebug {
		cfg.Debug = true
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetPrefix("[magpie] ")
	} else {
		log.SetFlags(0)
	}

	return nil
}

// debugf logs a message if debug mode is enabled.
func debugf(format string, args ...interface{}) {
	if cfg != nil && cfg.Debug {
		log.Printf(format, args...)
	}
}

// cacheSpec is the per-source cache sizing. Stories live longest because
// re-walking an account's stories is the most expensive extraction; search
// results go stale fastest.
type cacheSpec struct {
	capacity int
	ttl      time.Duration
}

var cacheSpecs = map[string]cacheSpec{
	"story":     {1000, 60 * time.Minute},
	"instagram": {1000, 30 * time.Minute},
	"tiktok":    {1000, 30 * time.Minute},
	"youtube":   {1000, 30 * time.Minute},
	"pin":       {1000, 30 * time.Minute},
	"pins":      {500, 15 * time.Minute},
}

// pipelines are per-source, created on first use, shared for the life of
// the process so repeated URLs in one invocation hit the cache.
var pipelines = map[string]*resolve.Pipeline{}

func pipelineFor(ext resolve.Extractor, limit int) *resolve.Pipeline {
	if p, ok := pipelines[ext.Kind()]; ok {
		return p
	}

	spec, ok := cacheSpecs[ext.Kind()]
	if !ok {
		spec = cacheSpec{1000, 30 * time.Minute}
	}

	client := httputil.NewClient()
	opts := []resolve.Option{resolve.WithLogf(debugf)}
	if limit > 0 {
		opts = append(opts, resolve.WithLimit(limit))
	}

	p := resolve.New(
		ext,
		probe.New(client, 0),
		fetch.New(client, 0, int64(cfg.MaxPayloadMB)<<20),
		cache.New[*media.Result](spec.capacity, spec.ttl),
		opts...,
	)
	pipelines[ext.Kind()] = p
	return p
}

// extractorFor builds the extractor responsible for rawURL.
func extractorFor(rawURL string) (resolve.Extractor, error) {
	return extract.ForURL(cfg, httputil.NewClient(), rawURL)
}
