package wavesort

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertionSort(t *testing.T) {
	data := []int{8, 7, 6, 5, 4, 3, 2, 1, 1, 9}
	insertionSort(data)
	assert.Equal(t, []int{1, 1, 2, 3, 4, 5, 6, 7, 8, 9}, data)

	var empty []int
	insertionSort(empty)
	assert.Empty(t, empty)
}

func TestMerge(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, merge([]int{1, 3, 5}, []int{2, 4, 6}))
	assert.Equal(t, []int{1, 2}, merge(nil, []int{1, 2}))
	assert.Equal(t, []int{1, 2}, merge([]int{1, 2}, nil))
	assert.Empty(t, merge[int](nil, nil))
}

func TestMergeTiesPreferRight(t *testing.T) {
	// +0 과 -0 은 같지만 부호 비트로 구분된다
	negZero := math.Copysign(0, -1)
	got := merge([]float64{0}, []float64{negZero})
	require.Len(t, got, 2)
	assert.True(t, math.Signbit(got[0]), "right element must come first on ties")
	assert.False(t, math.Signbit(got[1]))
}

func TestCacheBlocks(t *testing.T) {
	arr := make([]int, 37)
	for i := range arr {
		arr[i] = i
	}

	blocks := cacheBlocks(arr, 16)
	require.Len(t, blocks, 3)
	assert.Len(t, blocks[0], 16)
	assert.Len(t, blocks[1], 16)
	assert.Len(t, blocks[2], 5)
	assert.Equal(t, arr, slices.Concat(blocks...))

	// cap을 잘라 두었으므로 append가 다음 블록을 덮지 않는다
	_ = append(blocks[0], -1)
	assert.Equal(t, 16, arr[16])

	assert.Empty(t, cacheBlocks([]int{}, 16))
	assert.Len(t, cacheBlocks(arr, 0), 3)
}

func TestSampleSize(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 0}, {1, 1}, {2, 2}, {3, 2}, {17, 5}, {21, 5}, {24, 5}, {25, 6}, {1000, 32}, {1 << 20, 1025},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sampleSize(tt.n), "n=%d", tt.n)
	}
}

func TestSample(t *testing.T) {
	rng := NewRand(1)
	src := []int{10, 20, 30, 40, 50, 60, 70}

	got, err := sample(rng, src, len(src))
	require.NoError(t, err)
	assert.ElementsMatch(t, src, got)

	got, err = sample(rng, src, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Len(t, slices.Compact(slices.Sorted(slices.Values(got))), 3, "sample drawn without replacement")
	for _, v := range got {
		assert.Contains(t, src, v)
	}

	_, err = sample(rng, src, 8)
	assert.ErrorIs(t, err, ErrSampleSizeInvalid)
	_, err = sample(rng, src, -1)
	assert.ErrorIs(t, err, ErrSampleSizeInvalid)
}

func TestSampleUniform(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	counts := make([]int, 10)
	src := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	for i := 0; i < 20000; i++ {
		got, err := sample(rng, src, 3)
		require.NoError(t, err)
		for _, v := range got {
			counts[v]++
		}
	}
	// 기대값 6000, 넉넉한 허용 오차
	for v, c := range counts {
		assert.InDelta(t, 6000, c, 400, "value %d", v)
	}
}

func TestDynamicThresholds(t *testing.T) {
	smp := []int{9, 1, 8, 2, 7, 3, 6, 4, 5}
	th := dynamicThresholds(smp)
	assert.Equal(t, [3]int{3, 5, 7}, th)
	assert.True(t, slices.IsSorted(smp), "sample is sorted in place")

	assert.Equal(t, [3]int{4, 4, 4}, dynamicThresholds([]int{4}))
	assert.Equal(t, [3]int{1, 2, 2}, dynamicThresholds([]int{2, 1}))
}

func TestBlockMean(t *testing.T) {
	tests := []struct {
		name  string
		block []int64
		want  int64
	}{
		{"positive", []int64{1, 2, 3, 4}, 2},
		{"truncate toward zero", []int64{-1, -2}, -1},
		{"negative exact", []int64{-4, -6}, -5},
		{"mixed", []int64{-10, 3}, -3},
		{"no overflow", []int64{math.MaxInt64, math.MaxInt64}, math.MaxInt64},
		{"min", []int64{math.MinInt64, math.MinInt64, math.MinInt64}, math.MinInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, int64(blockMean(tt.block)))
		})
	}

	assert.Equal(t, uint64(math.MaxUint64), blockMean([]uint64{math.MaxUint64, math.MaxUint64}))
	assert.Equal(t, uint64(math.MaxUint64-1), blockMean([]uint64{math.MaxUint64, math.MaxUint64 - 2}))
	assert.Equal(t, int64(127), int64(int8(blockMean([]int8{127, 127}))))
	assert.Equal(t, int64(-128), int64(int8(blockMean([]int8{-128, -128, -128}))))
}

func TestAdaptThresholds(t *testing.T) {
	th := [3]int{10, 20, 30}

	assert.Equal(t, th, adaptThresholds(th, []int{}))

	// 평균 5 → 각 임계값 ^ 5
	got := adaptThresholds(th, []int{4, 6})
	assert.Equal(t, [3]int{10 ^ 5, 20 ^ 5, 30 ^ 5}, got)

	// 하위 16비트만 쓴다
	got = adaptThresholds([3]int{0, 0, 0}, []int{0x12345})
	assert.Equal(t, [3]int{0x2345, 0x2345, 0x2345}, got)

	// 음수 평균: -1 & 0xFFFF = 0xFFFF
	got = adaptThresholds([3]int{0, 1, -1}, []int{-1})
	assert.Equal(t, [3]int{0xFFFF, 0xFFFF ^ 1, -1 ^ 0xFFFF}, got)

	// 8비트 타입에서는 마스크 값이 T로 잘린다: 0xFFFF → int8(-1)
	assert.Equal(t, [3]int8{-1, -2, 0}, adaptThresholds([3]int8{0, 1, -1}, []int8{-1}))
	assert.Equal(t, [3]uint8{200, 201, 55}, adaptThresholds([3]uint8{0, 1, 255}, []uint8{200}))

	// 같은 블록 평균이면 두 번 적용하면 원래대로
	twice := adaptThresholds(adaptThresholds(th, []int{77}), []int{77})
	assert.Equal(t, th, twice)
}

func TestBucketIndex(t *testing.T) {
	th := [3]int{10, 20, 30}
	assert.Equal(t, 0, bucketIndex(5, th))
	assert.Equal(t, 0, bucketIndex(10, th), "equal to threshold is not greater")
	assert.Equal(t, 1, bucketIndex(11, th))
	assert.Equal(t, 2, bucketIndex(30, th))
	assert.Equal(t, 3, bucketIndex(31, th))

	// 정렬이 깨진 임계값도 개수만 센다
	assert.Equal(t, 2, bucketIndex(15, [3]int{30, 10, 0}))
}

func TestPartitionPreservesMultiset(t *testing.T) {
	s, err := New[int](Seeded(1))
	require.NoError(t, err)

	gen := rand.New(rand.NewPCG(2, 2))
	arr := make([]int, 333)
	for i := range arr {
		arr[i] = gen.IntN(1000)
	}

	var st Stats
	buckets := s.partition(arr, [3]int{250, 500, 750}, &st)
	assert.Equal(t, (len(arr)+CacheLine-1)/CacheLine, st.Blocks)

	var all []int
	for _, b := range buckets {
		all = append(all, b...)
	}
	assert.ElementsMatch(t, arr, all)

	// 첫 블록은 적응 전 임계값으로 나뉜다
	for _, v := range arr[:CacheLine] {
		idx := bucketIndex(v, [3]int{250, 500, 750})
		assert.Contains(t, buckets[idx], v)
	}
}

func TestPartitionAdaptsBetweenBlocks(t *testing.T) {
	s, err := New[int](Seeded(1))
	require.NoError(t, err)

	th0 := [3]int{250, 500, 750}
	first := slices.Repeat([]int{100}, CacheLine)
	second := append(slices.Repeat([]int{200}, CacheLine/2), slices.Repeat([]int{700}, CacheLine/2)...)
	arr := append(slices.Clone(first), second...)

	// 평균 100 → 각 임계값에 100을 XOR
	th1 := adaptThresholds(th0, first)
	require.Equal(t, [3]int{158, 400, 650}, th1)

	// 적응 전 임계값이었다면 버킷이 달라지는 값들이다
	require.NotEqual(t, bucketIndex(200, th0), bucketIndex(200, th1))
	require.NotEqual(t, bucketIndex(700, th0), bucketIndex(700, th1))

	var st Stats
	buckets := s.partition(arr, th0, &st)
	assert.Equal(t, 2, st.Blocks)
	assert.Equal(t, first, buckets[0])
	assert.Equal(t, slices.Repeat([]int{200}, CacheLine/2), buckets[1])
	assert.Empty(t, buckets[2])
	assert.Equal(t, slices.Repeat([]int{700}, CacheLine/2), buckets[3])
}
