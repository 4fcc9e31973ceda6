package bench

import (
	"context"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/rlaau/wavesort/baseline"
	"github.com/rlaau/wavesort/wavesort"
)

// 알고리즘 이름
const (
	AlgoWaveSort          = "wavesort"
	AlgoQuickSort         = "quicksort"
	AlgoParallelQuickSort = "parallel_quicksort"
	AlgoMergeSort         = "mergesort"
	AlgoParallelMergeSort = "parallel_mergesort"
)

// ErrUnknownAlgorithm 등록되지 않은 알고리즘
var ErrUnknownAlgorithm = errors.New("bench: unknown algorithm")

var algorithmNames = []string{
	AlgoWaveSort,
	AlgoQuickSort,
	AlgoParallelQuickSort,
	AlgoMergeSort,
	AlgoParallelMergeSort,
}

// Algorithms 지원 알고리즘 (보고서 순서)
func Algorithms() []string {
	return slices.Clone(algorithmNames)
}

func isAlgorithm(name string) bool {
	return slices.Contains(algorithmNames, name)
}

// SortFunc 입력을 건드리지 않고 정렬 결과를 돌려주는 함수.
// wavesort만 통계를 채운다.
type SortFunc func(ctx context.Context, data []int64) ([]int64, *wavesort.Stats, error)

// Registry 이름 → 정렬 함수
type Registry struct {
	pool *baseline.WorkerPool
	seed uint64
}

// NewRegistry pool은 병렬 정렬 공용, seed는 wavesort 표본용
func NewRegistry(pool *baseline.WorkerPool, seed uint64) *Registry {
	return &Registry{pool: pool, seed: seed}
}

// Lookup 이름으로 정렬 함수 찾기
func (r *Registry) Lookup(name string) (SortFunc, error) {
	switch name {
	case AlgoWaveSort:
		return func(ctx context.Context, data []int64) ([]int64, *wavesort.Stats, error) {
			// 실행마다 같은 시드로 시작해야 재현된다
			out, st, err := wavesort.SortStats(ctx, data, wavesort.Seeded(r.seed))
			if err != nil {
				return nil, &st, err
			}
			return out, &st, nil
		}, nil
	case AlgoQuickSort:
		return inPlace(baseline.QuickSort[int64]), nil
	case AlgoParallelQuickSort:
		return inPlace(func(arr []int64) { baseline.ParallelQuickSort(r.pool, arr) }), nil
	case AlgoMergeSort:
		return copying(baseline.MergeSort[int64]), nil
	case AlgoParallelMergeSort:
		return copying(func(arr []int64) []int64 { return baseline.ParallelMergeSort(r.pool, arr) }), nil
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
	}
}

func inPlace(fn func([]int64)) SortFunc {
	return func(_ context.Context, data []int64) ([]int64, *wavesort.Stats, error) {
		out := slices.Clone(data)
		fn(out)
		return out, nil, nil
	}
}

func copying(fn func([]int64) []int64) SortFunc {
	return func(_ context.Context, data []int64) ([]int64, *wavesort.Stats, error) {
		return fn(data), nil, nil
	}
}
