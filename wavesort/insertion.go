package wavesort

import "golang.org/x/exp/constraints"

// insertionSort 작은 입력용 삽입정렬. arr을 제자리에서 정렬하므로
// 호출자는 자기 소유의 복사본을 넘겨야 한다.
func insertionSort[T constraints.Ordered](arr []T) {
	for i := 1; i < len(arr); i++ {
		key := arr[i]
		j := i - 1

		for j >= 0 && arr[j] > key {
			arr[j+1] = arr[j]
			j--
		}
		arr[j+1] = key
	}
}
