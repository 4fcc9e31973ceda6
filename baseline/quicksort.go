package baseline

import "golang.org/x/exp/constraints"

// insertionCutoff 이 크기 이하의 구간은 삽입정렬
const insertionCutoff = 16

// QuickSort 제자리 하이브리드 퀵소트 (3-way 분할 + 삽입정렬)
func QuickSort[T constraints.Ordered](arr []T) {
	if len(arr) < 2 {
		return
	}
	quickSortRange(arr, 0, len(arr)-1)
}

func quickSortRange[T constraints.Ordered](arr []T, low, high int) {
	for low < high {
		if high-low+1 <= insertionCutoff {
			insertionSort(arr, low, high)
			return
		}

		lt, gt := partition3Way(arr, low, high)

		// 작은 쪽만 재귀, 큰 쪽은 루프로
		if lt-low < high-gt {
			quickSortRange(arr, low, lt-1)
			low = gt + 1
		} else {
			quickSortRange(arr, gt+1, high)
			high = lt - 1
		}
	}
}

// partition3Way 중복값에 강한 3-way 분할.
// 반환 후 arr[low..lt-1] < pivot, arr[lt..gt] == pivot, arr[gt+1..high] > pivot.
func partition3Way[T constraints.Ordered](arr []T, low, high int) (int, int) {
	medianOfThree(arr, low, low+(high-low)/2, high)
	pivot := arr[low]

	lt := low
	i := low + 1
	gt := high + 1

	for i < gt {
		switch {
		case arr[i] < pivot:
			arr[lt], arr[i] = arr[i], arr[lt]
			lt++
			i++
		case arr[i] > pivot:
			gt--
			arr[i], arr[gt] = arr[gt], arr[i]
		default:
			i++
		}
	}

	return lt, gt - 1
}

// medianOfThree 세 위치의 중앙값을 a로 옮긴다
func medianOfThree[T constraints.Ordered](arr []T, a, b, c int) {
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	if arr[b] > arr[c] {
		arr[b], arr[c] = arr[c], arr[b]
	}
	if arr[a] > arr[b] {
		arr[a], arr[b] = arr[b], arr[a]
	}
	arr[a], arr[b] = arr[b], arr[a]
}

// insertionSort arr[low..high] 구간 삽입정렬
func insertionSort[T constraints.Ordered](arr []T, low, high int) {
	for i := low + 1; i <= high; i++ {
		key := arr[i]
		j := i - 1

		for j >= low && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}
