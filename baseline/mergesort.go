package baseline

import "golang.org/x/exp/constraints"

// MergeSort 안정 머지소트. 새 슬라이스를 돌려주며 arr은 건드리지 않는다.
func MergeSort[T constraints.Ordered](arr []T) []T {
	if len(arr) <= insertionCutoff {
		result := make([]T, len(arr))
		copy(result, arr)
		insertionSort(result, 0, len(result)-1)
		return result
	}

	mid := len(arr) / 2
	return Merge(MergeSort(arr[:mid]), MergeSort(arr[mid:]))
}

// Merge 정렬된 두 슬라이스의 안정 병합 (같으면 왼쪽 먼저)
func Merge[T constraints.Ordered](left, right []T) []T {
	result := make([]T, 0, len(left)+len(right))
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			result = append(result, left[i])
			i++
		} else {
			result = append(result, right[j])
			j++
		}
	}

	result = append(result, left[i:]...)
	result = append(result, right[j:]...)
	return result
}
