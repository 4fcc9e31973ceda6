package baseline

import (
	"runtime"
	"sync"

	"golang.org/x/exp/constraints"
)

// ParallelQuickSort 워커 풀을 쓰는 병렬 퀵소트 (제자리)
func ParallelQuickSort[T constraints.Ordered](pool *WorkerPool, arr []T) {
	if len(arr) < 2 {
		return
	}
	parallelQuickSortRange(pool, arr, 0, len(arr)-1, len(arr), runtime.NumCPU())
}

func parallelQuickSortRange[T constraints.Ordered](pool *WorkerPool, arr []T, low, high, total, depth int) {
	if low >= high {
		return
	}
	size := high - low + 1
	if depth <= 1 || size <= parallelThreshold(total) {
		quickSortRange(arr, low, high)
		return
	}

	lt, gt := partition3Way(arr, low, high)

	var wg sync.WaitGroup
	wg.Add(2)
	spawn := func(lo, hi int) {
		defer wg.Done()
		if pool.TryAcquire() {
			defer pool.Release()
			parallelQuickSortRange(pool, arr, lo, hi, total, depth/2)
			return
		}
		// 슬롯 없으면 순차 처리
		quickSortRange(arr, lo, hi)
	}
	go spawn(low, lt-1)
	go spawn(gt+1, high)
	wg.Wait()
}

// ParallelMergeSort 워커 풀을 쓰는 병렬 머지소트. 새 슬라이스를 돌려준다.
func ParallelMergeSort[T constraints.Ordered](pool *WorkerPool, arr []T) []T {
	return parallelMergeSort(pool, arr, len(arr), runtime.NumCPU())
}

func parallelMergeSort[T constraints.Ordered](pool *WorkerPool, arr []T, total, depth int) []T {
	if depth <= 1 || len(arr) < parallelThreshold(total) || len(arr) <= insertionCutoff {
		return MergeSort(arr)
	}

	mid := len(arr) / 2
	var left, right []T

	var wg sync.WaitGroup
	wg.Add(2)
	sortHalf := func(dst *[]T, part []T) {
		defer wg.Done()
		if pool.TryAcquire() {
			defer pool.Release()
			*dst = parallelMergeSort(pool, part, total, depth/2)
			return
		}
		*dst = MergeSort(part)
	}
	go sortHalf(&left, arr[:mid])
	go sortHalf(&right, arr[mid:])
	wg.Wait()

	return Merge(left, right)
}

// parallelThreshold 전체 크기에 따른 병렬화 임계값. 작은 입력은 병렬화하지 않는다.
func parallelThreshold(total int) int {
	switch {
	case total < 1000:
		return total + 1
	case total < 10000:
		return 300
	case total < 100000:
		return 800
	default:
		return 1500
	}
}
