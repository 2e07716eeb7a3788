package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"magpie/internal/config"
	"magpie/internal/history"
	"magpie/internal/media"
	"magpie/internal/relay"
	"magpie/internal/resolve"
	"magpie/internal/transcode"
)

var (
	okStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// resolveRun is the default command: magpie <url...>
func resolveRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no URL given; see magpie --help")
	}

	failed := 0
	for _, rawURL := range args {
		if err := resolveOne(cmd.Context(), rawURL); err != nil {
			fmt.Fprintln(os.Stderr, errStyle.Render("✗ ")+userMessage(err))
			debugf("resolving %s: %v", rawURL, err)
			failed++
		}
	}

	if failed == len(args) {
		return fmt.Errorf("no URL could be resolved")
	}
	return nil
}

func resolveOne(ctx context.Context, rawURL string) error {
	ext, err := extractorFor(rawURL)
	if err != nil {
		return resolve.WrapErr(resolve.InvalidInput, err, "unsupported URL")
	}

	debugf("resolving %s via %s", rawURL, ext.Kind())

	res, err := pipelineFor(ext, 0).Resolve(ctx, rawURL)
	if err != nil {
		return err
	}

	return deliver(ctx, res, ext.Kind(), rawURL)
}

// deliver hands a result to the configured output: JSON metadata on
// stdout, or files in the output directory.
func deliver(ctx context.Context, res *media.Result, kind, source string) error {
	if cfg.History {
		recordHistory(res, kind, source)
	}

	if flagJSON {
		return printJSON(res)
	}

	dir, err := cfg.ExpandOutputDir()
	if err != nil {
		return fmt.Errorf("resolving output dir: %w", err)
	}

	transport, err := relay.NewFileTransport(dir)
	if err != nil {
		return err
	}

	r := relay.New(transport, transcoderFor(res), debugf)
	if err := r.Send(ctx, res); err != nil {
		return err
	}

	cached := ""
	if res.FromCache {
		cached = dimStyle.Render(" (cached)")
	}
	fmt.Printf("%s %s: %d file(s)%s\n", okStyle.Render("✓"), res.Identity, len(transport.Written), cached)
	for _, path := range transport.Written {
		fmt.Println(dimStyle.Render("  " + path))
	}
	return nil
}

// transcoderFor returns an ffmpeg transcoder when the result carries
// video and re-encoding is enabled. A missing ffmpeg binary degrades to
// sending the original bytes.
func transcoderFor(res *media.Result) transcode.Transcoder {
	if !cfg.Transcode {
		return nil
	}
	hasVideo := false
	for _, item := range res.Items {
		if item.Type == media.Video {
			hasVideo = true
			break
		}
	}
	if !hasVideo {
		return nil
	}

	tc, err := transcode.NewFFmpeg()
	if err != nil {
		debugf("transcoding disabled: %v", err)
		return nil
	}
	return tc
}

func recordHistory(res *media.Result, kind, source string) {
	path, err := config.HistoryPath()
	if err != nil {
		debugf("history path: %v", err)
		return
	}
	store, err := history.Open(path)
	if err != nil {
		debugf("opening history: %v", err)
		return
	}
	defer store.Close()

	err = store.Record(media.HistoryEntry{
		Source:     source,
		Kind:       kind,
		Identity:   res.Identity,
		Items:      res.Count,
		ResolvedAt: time.Now(),
	})
	if err != nil {
		debugf("recording history: %v", err)
	}
}

func printJSON(res *media.Result) error {
	type itemMeta struct {
		Type     string `json:"type"`
		MIME     string `json:"mime"`
		Bytes    int    `json:"bytes"`
		Location string `json:"location"`
	}
	out := struct {
		Identity  string     `json:"identity"`
		Count     int        `json:"count"`
		FromCache bool       `json:"from_cache"`
		Items     []itemMeta `json:"items"`
	}{
		Identity:  res.Identity,
		Count:     res.Count,
		FromCache: res.FromCache,
	}
	for _, item := range res.Items {
		out.Items = append(out.Items, itemMeta{
			Type:     item.Type.String(),
			MIME:     item.MIME,
			Bytes:    len(item.Payload),
			Location: item.Location,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// userMessage turns a resolution error into an accurate one-liner. The
// wording distinguishes "nothing found", "found but unusable", and
// "temporarily unreachable".
func userMessage(err error) string {
	switch resolve.KindOf(err) {
	case resolve.InvalidInput:
		return "that doesn't look like a supported link or query"
	case resolve.NotFound:
		return "nothing found — the post or story may have expired or been removed"
	case resolve.NoUsableMedia:
		return "media was found but none of it could be downloaded"
	case resolve.Timeout:
		return "the source took too long to answer; try again later"
	default:
		return "the source is temporarily unreachable; try again later"
	}
}
