package bench

import (
	"fmt"

	"github.com/rlaau/wavesort/wavesort"
)

// GenerateRandomData 시드 고정 랜덤 데이터 [0, max)
func GenerateRandomData(seed uint64, size int, maxValue int64) []int64 {
	gen := wavesort.NewRand(seed)
	data := make([]int64, size)
	for i := range data {
		data[i] = gen.Int64N(maxValue)
	}
	return data
}

// DatasetName 생성 데이터셋의 기본 이름
func DatasetName(size int, seed uint64) string {
	return fmt.Sprintf("random-%d-seed%d", size, seed)
}
