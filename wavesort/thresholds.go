package wavesort

import (
	"math"
	"math/bits"
	"slices"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// sampleSize floor(sqrt(n))+1, n을 넘지 않게 자른다
func sampleSize(n int) int {
	if n <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return min(r+1, n)
}

// sample src에서 k개를 비복원 추출 (Floyd 알고리즘, O(k) 메모리)
func sample[T any](rng Rand, src []T, k int) ([]T, error) {
	n := len(src)
	if k < 0 || k > n {
		return nil, errors.Wrapf(ErrSampleSizeInvalid, "k=%d population=%d", k, n)
	}

	chosen := make(map[int]struct{}, k)
	out := make([]T, 0, k)
	for j := n - k; j < n; j++ {
		t := rng.IntN(j + 1)
		if _, dup := chosen[t]; dup {
			t = j
		}
		chosen[t] = struct{}{}
		out = append(out, src[t])
	}
	return out, nil
}

// dynamicThresholds 표본을 제자리 정렬하고 n/4, n/2, 3n/4 위치 값을 돌려준다.
// 표본이 4개 미만이면 인덱스가 겹칠 수 있다.
func dynamicThresholds[T constraints.Ordered](smp []T) [numThresholds]T {
	slices.Sort(smp)
	n := len(smp)
	return [numThresholds]T{
		smp[n/4],
		smp[n/2],
		smp[3*n/4],
	}
}

// adaptThresholds 블록 평균(0 방향 절삭)의 하위 16비트를 각 임계값에 XOR.
// 재정렬은 하지 않는다. 빈 블록이면 그대로.
func adaptThresholds[T constraints.Integer](th [numThresholds]T, block []T) [numThresholds]T {
	if len(block) == 0 {
		return th
	}
	m := T(blockMean(block) & adaptMask)
	for i := range th {
		th[i] ^= m
	}
	return th
}

// blockMean 블록의 산술 평균을 0 방향으로 절삭해 2의 보수 uint64로 돌려준다.
// 합은 128비트로 누적하므로 어떤 정수 폭에서도 넘치지 않는다.
func blockMean[T constraints.Integer](block []T) uint64 {
	var zero T
	signed := ^zero < 0

	var hi, lo, carry uint64
	for _, v := range block {
		var ext uint64
		if signed && v < 0 {
			ext = math.MaxUint64
		}
		lo, carry = bits.Add64(lo, uint64(v), 0)
		hi, _ = bits.Add64(hi, ext, carry)
	}

	neg := signed && int64(hi) < 0
	if neg {
		lo, hi = ^lo, ^hi
		lo, carry = bits.Add64(lo, 1, 0)
		hi += carry
	}

	// |합| < n·2^64 이므로 hi < n 이 보장된다
	q, _ := bits.Div64(hi, lo, uint64(len(block)))
	if neg {
		q = -q
	}
	return q
}
