// Package main provides the aidict command line dictionary.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/minseok4171/aidict/internal/config"
	"github.com/minseok4171/aidict/pkg/logging"
	"github.com/minseok4171/aidict/pkg/model"
	"github.com/minseok4171/aidict/pkg/utils"
	"github.com/minseok4171/aidict/pkg/wordbook"
)

var (
	verbose bool

	rootCmd = &cobra.Command{
		Use:          "aidict",
		Short:        "English dictionary for Korean students, with spoken pronunciation",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			level := "error"
			if verbose {
				level = "debug"
			}
			logging.SetLoggerFactory(logging.NewStandardFactory(level, "text"))
		},
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log request details")
	rootCmd.AddCommand(lookupCmd, speakCmd, saveCmd, wordsCmd, historyCmd)
}

func openStore(cfg config.Config) (*wordbook.Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	return wordbook.Open(cfg.DataDir)
}

func requestContext(cfg config.Config) (context.Context, context.CancelFunc) {
	if cfg.RequestTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), cfg.RequestTimeout)
}

// requireOnline probes connectivity before a remote call so a student on a
// flaky connection gets an immediate, clear message instead of a long hang.
func requireOnline(ctx context.Context) error {
	if err := utils.CheckConnectivity(ctx, utils.DefaultProbeAddr); err != nil {
		return fmt.Errorf("cannot reach the dictionary service, check your network connection: %w", model.ErrOffline)
	}
	return nil
}

// touchHistory records a successful lookup. History is best effort from the
// CLI, a full store must never fail the lookup itself.
func touchHistory(ctx context.Context, store *wordbook.Store, term string) {
	if _, err := store.TouchHistory(term); err != nil {
		logging.NewLogger(ctx).Errorf("error: %v", err)
	}
}
