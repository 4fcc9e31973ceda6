package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rlaau/wavesort/store"
)

type resultsOptions struct {
	jsonOut bool
	store   storeOptions
}

func newResultsCmd(g *globalOptions) *cobra.Command {
	o := &resultsOptions{}
	cmd := &cobra.Command{
		Use:   "results",
		Short: "List datasets and benchmark results kept in a store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !o.store.enabled() {
				o.store.backend = store.BackendBolt
			}
			s, err := o.store.open()
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.Datasets()
			if err != nil {
				return err
			}
			results, err := s.Results()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if o.jsonOut {
				return printJSON(w, map[string]any{
					"datasets": names,
					"results":  results,
				})
			}

			size, err := store.DiskUsage(o.store.path)
			if err != nil {
				return err
			}
			printInfo(g, w, "store: %s (%s, %s)\n", o.store.path, o.store.backend, humanize.Bytes(uint64(size)))
			printInfo(g, w, "datasets: %d\n", len(names))
			for _, n := range names {
				printInfo(g, w, "  %s\n", n)
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ALGORITHM\tSIZE\tRUN\tDURATION\tMEMORY\tVERIFIED")
			for _, r := range results {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%v\t%s\t%t\n",
					r.Algorithm, humanize.Comma(int64(r.DataSize)), r.TestRun, r.Duration,
					humanize.IBytes(r.MemoryUsage), r.Verified)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "Output in JSON format")
	o.store.register(cmd)
	return cmd
}
