package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"magpie/internal/config"
	"magpie/internal/history"
	"magpie/internal/ui"
)

var (
	flagHistoryCount int
	flagHistoryPick  bool
)

var (
	kindStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")).Width(10)
	timeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently resolved links",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryCount, "count", "c", 20, "Number of entries to show")
	historyCmd.Flags().BoolVarP(&flagHistoryPick, "pick", "p", false, "Pick an entry and resolve it again")
}

func historyRun(cmd *cobra.Command, args []string) error {
	path, err := config.HistoryPath()
	if err != nil {
		return err
	}

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(flagHistoryCount)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println(dimStyle.Render("history is empty"))
		return nil
	}

	if flagHistoryPick {
		items := make([]string, len(entries))
		for i, e := range entries {
			items[i] = fmt.Sprintf("%s  %s  %s", e.ResolvedAt.Local().Format("2006-01-02 15:04"), e.Kind, e.Identity)
		}
		idx, err := ui.Select("History", items)
		if err != nil {
			return err
		}

		selected := entries[idx]
		debugf("re-resolving %s (%s)", selected.Identity, selected.Kind)

		if selected.Kind == "pins" {
			return searchRun(cmd, []string{selected.Source})
		}
		if err := resolveOne(cmd.Context(), selected.Source); err != nil {
			return fmt.Errorf("%s", userMessage(err))
		}
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s %s %s (%d items)\n",
			timeStyle.Render(e.ResolvedAt.Local().Format("2006-01-02 15:04")),
			kindStyle.Render(e.Kind),
			e.Identity,
			e.Items,
		)
		fmt.Println(dimStyle.Render("  " + e.Source))
	}
	return nil
}
