package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/rlaau/wavesort/bench"
	"github.com/rlaau/wavesort/numio"
)

type genOptions struct {
	size     int
	seed     uint64
	maxValue int64
	output   string
	name     string
	store    storeOptions
}

func newGenCmd(g *globalOptions) *cobra.Command {
	o := &genOptions{}
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a reproducible random dataset",
		Long: `Generate random integers in [0, max) from a fixed seed and write them
to a file (one per line) or, with --store, into a KV store under --name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.size < 0 {
				return errors.Newf("size must not be negative, got %d", o.size)
			}
			if o.maxValue <= 0 {
				return errors.Newf("max must be positive, got %d", o.maxValue)
			}
			data := bench.GenerateRandomData(o.seed, o.size, o.maxValue)

			if !o.store.enabled() {
				if o.output == "" || o.output == "-" {
					return numio.WriteInts(cmd.OutOrStdout(), data)
				}
				return numio.WriteFile(o.output, data)
			}

			name := o.name
			if name == "" {
				name = bench.DatasetName(o.size, o.seed)
			}
			s, err := o.store.open()
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.PutDataset(name, data); err != nil {
				return err
			}
			printInfo(g, cmd.OutOrStdout(), "stored dataset %q (%d values) in %s\n", name, len(data), o.store.backend)
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&o.size, "size", "n", 1000, "Number of values")
	f.Uint64Var(&o.seed, "seed", 42, "Random seed")
	f.Int64Var(&o.maxValue, "max", 1000000, "Exclusive upper bound of values")
	f.StringVarP(&o.output, "output", "o", "-", "Output file (- for stdout)")
	f.StringVar(&o.name, "name", "", "Dataset name in the store (default random-<size>-seed<seed>)")
	o.store.register(cmd)
	return cmd
}
