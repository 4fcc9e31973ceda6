package wavesort

// cacheBlocks arr을 size 크기의 연속 블록으로 나눈다. 마지막 블록은 짧을 수 있다.
// 블록은 arr의 뷰이며 cap을 잘라 두어 append가 이웃 블록을 덮지 않는다.
func cacheBlocks[T any](arr []T, size int) [][]T {
	if size <= 0 {
		size = CacheLine
	}
	blocks := make([][]T, 0, (len(arr)+size-1)/size)
	for i := 0; i < len(arr); i += size {
		end := min(i+size, len(arr))
		blocks = append(blocks, arr[i:end:end])
	}
	return blocks
}
