package wavesort

import "golang.org/x/exp/constraints"

// merge 정렬된 두 시퀀스를 새 슬라이스로 병합.
// 같은 값이면 오른쪽을 먼저 내보낸다.
func merge[T constraints.Ordered](left, right []T) []T {
	result := make([]T, 0, len(left)+len(right))
	i, j := 0, 0

	for i < len(left) && j < len(right) {
		if left[i] < right[j] {
			result = append(result, left[i])
			i++
		} else {
			result = append(result, right[j])
			j++
		}
	}

	// 남은 요소들 한 번에 추가
	result = append(result, left[i:]...)
	result = append(result, right[j:]...)
	return result
}
