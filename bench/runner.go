package bench

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/rlaau/wavesort/baseline"
	"github.com/rlaau/wavesort/internal/logger"
	"github.com/rlaau/wavesort/store"
	"github.com/rlaau/wavesort/wavesort"
)

// Dataset 벤치마크 입력 한 벌
type Dataset struct {
	Name        string
	StorageType string
	Data        []int64
}

// Sink 결과를 받을 곳 (예: store.Store.PutResult)
type Sink func(Result) error

// systemStats 측정 시작 시점 상태
type systemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
}

// startStats GC를 두 번 돌려 안정화한 뒤 측정 시작
func startStats() *systemStats {
	runtime.GC()
	runtime.GC()

	s := &systemStats{}
	runtime.ReadMemStats(&s.startMem)
	s.startTime = time.Now()
	return s
}

// endStats 경과 시간, 할당 바이트, 할당 횟수
func (s *systemStats) endStats() (time.Duration, uint64, uint64) {
	duration := time.Since(s.startTime)

	var end runtime.MemStats
	runtime.ReadMemStats(&end)
	return duration, end.TotalAlloc - s.startMem.TotalAlloc, end.Mallocs - s.startMem.Mallocs
}

// Runner 알고리즘 × 데이터셋 × 반복 실행기
type Runner struct {
	cfg      Config
	registry *Registry
	sink     Sink
}

// NewRunner 설정 검증 후 실행기 생성. sink는 nil 가능.
func NewRunner(cfg Config, sink Sink) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(cfg.Algorithms) == 0 {
		cfg.Algorithms = Algorithms()
	}
	pool := baseline.NewWorkerPool(cfg.Workers)
	return &Runner{
		cfg:      cfg,
		registry: NewRegistry(pool, cfg.Seed),
		sink:     sink,
	}, nil
}

// Datasets 설정된 크기별 랜덤 데이터셋
func (r *Runner) Datasets() []Dataset {
	out := make([]Dataset, 0, len(r.cfg.Sizes))
	for _, n := range r.cfg.Sizes {
		out = append(out, Dataset{
			Name:        DatasetName(n, r.cfg.Seed),
			StorageType: StorageMemory,
			Data:        GenerateRandomData(r.cfg.Seed, n, r.cfg.MaxValue),
		})
	}
	return out
}

// RunAll 모든 조합 실행. 정렬 실패는 결과의 Error에 남기고 계속한다.
// 컨텍스트 취소와 sink 오류는 즉시 반환.
func (r *Runner) RunAll(ctx context.Context, datasets []Dataset) ([]Result, error) {
	var results []Result
	for _, ds := range datasets {
		want := slices.Sorted(slices.Values(ds.Data))
		for _, algo := range r.cfg.Algorithms {
			for run := 1; run <= r.cfg.Runs; run++ {
				if err := ctx.Err(); err != nil {
					return results, errors.Wrap(err, "bench canceled")
				}
				res, err := r.Run(ctx, algo, ds, want)
				if err != nil {
					return results, err
				}
				res.TestRun = run
				logger.L.Info("bench run",
					"algorithm", algo, "size", res.DataSize, "run", run,
					"duration", res.Duration, "verified", res.Verified)

				if r.sink != nil {
					if err := r.sink(res); err != nil {
						return results, errors.Wrap(err, "bench sink")
					}
				}
				results = append(results, res)
			}
		}
	}
	return results, nil
}

// Run 한 번 실행하고 결과를 want와 비교한다
func (r *Runner) Run(ctx context.Context, algo string, ds Dataset, want []int64) (Result, error) {
	sortFn, err := r.registry.Lookup(algo)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Algorithm:    algo,
		DataSize:     len(ds.Data),
		StorageType:  ds.StorageType,
		Dataset:      ds.Name,
		Digest:       store.Digest(ds.Data),
		GoroutineNum: runtime.NumGoroutine(),
	}

	stats := startStats()
	out, waveStats, sortErr := r.safeSort(ctx, sortFn, ds.Data)
	res.Duration, res.MemoryUsage, res.Mallocs = stats.endStats()
	res.RecordedAt = time.Now()
	res.WaveStats = waveStats

	if sortErr != nil {
		if errors.Is(sortErr, context.Canceled) || errors.Is(sortErr, context.DeadlineExceeded) {
			return Result{}, sortErr
		}
		res.Error = sortErr.Error()
		logger.L.Warn("sort failed", "algorithm", algo, "size", res.DataSize, "err", sortErr)
		return res, nil
	}
	res.Verified = slices.Equal(out, want)
	if !res.Verified {
		res.Error = "output differs from reference sort"
	}
	return res, nil
}

// safeSort 정렬 중 패닉을 오류로 바꾸고 워커 풀 슬롯을 정리한다
func (r *Runner) safeSort(ctx context.Context, fn SortFunc, data []int64) (out []int64, st *wavesort.Stats, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.registry.pool.Reset()
			err = errors.Newf("sort panicked: %s", fmt.Sprint(p))
		}
	}()
	return fn(ctx, data)
}
