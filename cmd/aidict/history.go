package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minseok4171/aidict/internal/config"
)

var (
	historyClear bool

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "Show recent lookups",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
)

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "forget all recent lookups")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if historyClear {
		if err := store.ClearHistory(); err != nil {
			return err
		}
		fmt.Println("history cleared")
		return nil
	}

	entries, err := store.History()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no lookups yet")
		return nil
	}
	for _, entry := range entries {
		fmt.Printf("%s  %s\n",
			labelStyle.Render(entry.LookedUpAt.Local().Format("2006-01-02 15:04")),
			entry.Term)
	}
	return nil
}
