package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/rlaau/wavesort/internal/logger"
	"github.com/rlaau/wavesort/store"
)

// globalOptions 모든 하위 명령이 공유하는 플래그
type globalOptions struct {
	verbose bool
	quiet   bool
	logJSON bool
	logFile string

	closeLog func() error
}

// storeOptions 저장소를 쓰는 명령의 공통 플래그
type storeOptions struct {
	backend string
	path    string
}

func (o *storeOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.backend, "store", "", "KV store backend (bbolt, badger, pebble)")
	cmd.Flags().StringVar(&o.path, "store-path", "wavesort-data", "Directory for the KV store")
}

func (o *storeOptions) enabled() bool {
	return o.backend != ""
}

func (o *storeOptions) open() (store.Store, error) {
	return store.Open(store.Options{Backend: o.backend, Path: o.path})
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	root := &cobra.Command{
		Use:   "wavesort",
		Short: "Adaptive wave sort and sorting benchmarks",
		Long: `wavesort sorts integer sequences with an adaptive, sampled-threshold
bucket sort and benchmarks it against quicksort and mergesort baselines.
Datasets and results can be kept in a bbolt, BadgerDB or PebbleDB store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			closeLog, err := logger.Init(logger.Options{
				Enabled: (g.verbose || g.logFile != "") && !g.quiet,
				JSON:    g.logJSON,
				File:    g.logFile,
				Level:   level,
			})
			g.closeLog = closeLog
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.closeLog != nil {
				return g.closeLog()
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().BoolVarP(&g.quiet, "quiet", "q", false, "Suppress all output except errors")
	root.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "Log in JSON format")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "Write logs to a file instead of stderr")

	root.AddCommand(
		newSortCmd(g),
		newGenCmd(g),
		newBenchCmd(g),
		newResultsCmd(g),
		newVersionCmd(),
	)
	return root
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printInfo quiet가 아니면 출력
func printInfo(g *globalOptions, w io.Writer, format string, args ...any) {
	if !g.quiet {
		fmt.Fprintf(w, format, args...)
	}
}

// printJSON 들여쓰기 JSON
func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(v), "encode json")
}
