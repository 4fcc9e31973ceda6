package main

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/rlaau/wavesort/numio"
	"github.com/rlaau/wavesort/wavesort"
)

type sortOptions struct {
	input    string
	output   string
	dataset  string
	seed     uint64
	maxDepth int
	maxStall int
	timeout  time.Duration
	stats    bool
	store    storeOptions
}

func newSortCmd(g *globalOptions) *cobra.Command {
	o := &sortOptions{}
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort whitespace-separated integers",
		Long: `Read integers from a file (or stdin), sort them with the adaptive wave
sort and print one value per line. With --store and --dataset the input is
loaded from a KV store instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, g, o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.input, "input", "i", "-", "Input file (- for stdin)")
	f.StringVarP(&o.output, "output", "o", "-", "Output file (- for stdout)")
	f.StringVar(&o.dataset, "dataset", "", "Read input from this stored dataset")
	f.Uint64Var(&o.seed, "seed", 0, "Sampling seed (default: time based)")
	f.IntVar(&o.maxDepth, "max-depth", wavesort.DefaultMaxDepth, "Recursion depth limit")
	f.IntVar(&o.maxStall, "max-stall", wavesort.DefaultMaxStall, "Consecutive no-progress levels allowed")
	f.DurationVar(&o.timeout, "timeout", 0, "Abort sorting after this long (0 = no limit)")
	f.BoolVar(&o.stats, "stats", false, "Print recursion statistics as JSON to stderr")
	o.store.register(cmd)
	return cmd
}

func runSort(cmd *cobra.Command, g *globalOptions, o *sortOptions) error {
	data, err := loadInput(cmd, o)
	if err != nil {
		return err
	}

	cfg := wavesort.DefaultConfig()
	cfg.MaxDepth = o.maxDepth
	cfg.MaxStall = o.maxStall
	if cmd.Flags().Changed("seed") {
		cfg.Rand = wavesort.NewRand(o.seed)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	sorted, st, err := wavesort.SortStats(ctx, data, cfg)
	if err != nil {
		return errors.Wrapf(err, "sort %d values", len(data))
	}

	if o.stats {
		if err := printJSON(cmd.ErrOrStderr(), st); err != nil {
			return err
		}
	}
	if o.output == "" || o.output == "-" {
		if g.quiet {
			return nil
		}
		return numio.WriteInts(cmd.OutOrStdout(), sorted)
	}
	return numio.WriteFile(o.output, sorted)
}

func loadInput(cmd *cobra.Command, o *sortOptions) ([]int64, error) {
	if o.dataset != "" {
		if !o.store.enabled() {
			return nil, errors.New("--dataset requires --store")
		}
		s, err := o.store.open()
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.GetDataset(o.dataset)
	}
	if o.input == "" || o.input == "-" {
		return numio.ReadInts(cmd.InOrStdin())
	}
	return numio.ReadFile(o.input)
}
