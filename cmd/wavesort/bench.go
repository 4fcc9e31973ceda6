package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/rlaau/wavesort/bench"
	"github.com/rlaau/wavesort/numio"
	"github.com/rlaau/wavesort/store"
)

type benchOptions struct {
	cfg      bench.Config
	datasets []string
	viaFile  bool
	mdPath   string
	jsonPath string
	store    storeOptions
}

func newBenchCmd(g *globalOptions) *cobra.Command {
	o := &benchOptions{cfg: bench.DefaultConfig()}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark wavesort against baseline sorts",
		Long: `Run every selected algorithm on seeded random datasets, verify each
output against a reference sort and write markdown and JSON reports.
With --store the results are also persisted, and --dataset adds stored
datasets to the run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, g, o)
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&o.cfg.Sizes, "sizes", o.cfg.Sizes, "Dataset sizes")
	f.IntVar(&o.cfg.Runs, "runs", o.cfg.Runs, "Runs per algorithm and dataset")
	f.StringSliceVar(&o.cfg.Algorithms, "algos", nil, "Algorithms to run (default all)")
	f.Uint64Var(&o.cfg.Seed, "seed", o.cfg.Seed, "Seed for data and sampling")
	f.Int64Var(&o.cfg.MaxValue, "max", o.cfg.MaxValue, "Exclusive upper bound of generated values")
	f.IntVar(&o.cfg.Workers, "workers", 0, "Worker pool size for parallel sorts (0 = CPUs)")
	f.StringSliceVar(&o.datasets, "dataset", nil, "Stored datasets to include (requires --store)")
	f.BoolVar(&o.viaFile, "via-file", false, "Round-trip generated datasets through a temp file")
	f.StringVar(&o.mdPath, "md", "benchmark_results.md", "Markdown report path (empty to skip)")
	f.StringVar(&o.jsonPath, "json", "benchmark_results.json", "JSON report path (empty to skip)")
	o.store.register(cmd)
	return cmd
}

func runBench(cmd *cobra.Command, g *globalOptions, o *benchOptions) error {
	out := cmd.OutOrStdout()
	if len(o.datasets) > 0 && !o.store.enabled() {
		return errors.New("--dataset requires --store")
	}

	var (
		s    store.Store
		sink bench.Sink
	)
	if o.store.enabled() {
		var err error
		if s, err = o.store.open(); err != nil {
			return err
		}
		defer s.Close()
		sink = s.PutResult
	}

	runner, err := bench.NewRunner(o.cfg, sink)
	if err != nil {
		return err
	}

	datasets := runner.Datasets()
	if o.viaFile {
		if datasets, err = viaFile(datasets); err != nil {
			return err
		}
	}
	for _, name := range o.datasets {
		data, err := s.GetDataset(name)
		if err != nil {
			return err
		}
		datasets = append(datasets, bench.Dataset{Name: name, StorageType: bench.StorageKV, Data: data})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	printInfo(g, out, "정렬 알고리즘 벤치마크 시작 (%d개 데이터셋)\n", len(datasets))
	results, err := runner.RunAll(ctx, datasets)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}

	if o.mdPath != "" {
		if err := writeReport(o.mdPath, func(f *os.File) error {
			return bench.WriteMarkdown(f, results, time.Now())
		}); err != nil {
			return err
		}
		printInfo(g, out, "%s 파일이 생성되었습니다.\n", o.mdPath)
	}
	if o.jsonPath != "" {
		if err := writeReport(o.jsonPath, func(f *os.File) error {
			return bench.WriteJSON(f, results)
		}); err != nil {
			return err
		}
		printInfo(g, out, "%s 파일이 생성되었습니다.\n", o.jsonPath)
	}

	printInfo(g, out, "벤치마크 완료: %d회 실행, 실패 %d회\n", len(results), failed)
	if failed > 0 {
		return errors.Newf("%d of %d runs failed", failed, len(results))
	}
	return nil
}

// viaFile 데이터셋을 임시 파일에 쓰고 다시 읽는다 (파일 저장 방식 측정용)
func viaFile(datasets []bench.Dataset) ([]bench.Dataset, error) {
	dir, err := os.MkdirTemp("", "wavesort-bench-")
	if err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	out := make([]bench.Dataset, 0, len(datasets))
	for _, ds := range datasets {
		path := filepath.Join(dir, ds.Name+".txt")
		if err := numio.WriteFile(path, ds.Data); err != nil {
			return nil, err
		}
		data, err := numio.ReadFile(path)
		if err != nil {
			return nil, err
		}
		out = append(out, bench.Dataset{Name: ds.Name, StorageType: bench.StorageFile, Data: data})
	}
	return out, nil
}

func writeReport(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
