package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"magpie/internal/extract"
	"magpie/internal/httputil"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search Pinterest and download the top image results",
	Args:  cobra.MinimumNArgs(1),
	RunE:  searchRun,
}

func searchRun(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	ext := extract.NewPinSearch(cfg.PinterestBase, httputil.NewClient())

	limit := cfg.SearchLimit
	if flagLimit > 0 {
		limit = flagLimit
	}

	debugf("searching pins for %q (limit %d)", query, limit)

	res, err := pipelineFor(ext, limit).Resolve(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("%s", userMessage(err))
	}

	return deliver(cmd.Context(), res, ext.Kind(), query)
}
