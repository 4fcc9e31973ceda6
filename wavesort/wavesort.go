package wavesort

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Stats 한 번의 정렬 호출에서 모은 재귀 통계
type Stats struct {
	Calls        int `json:"calls"`         // 재귀 진입 횟수
	Fallbacks    int `json:"fallbacks"`     // 삽입정렬 경로
	Partitions   int `json:"partitions"`    // 표본 추출 + 버킷 분할 경로
	Blocks       int `json:"blocks"`        // 처리한 캐시 블록 수 (= 임계값 적응 횟수)
	Merges       int `json:"merges"`        // 병합 횟수
	MaxDepth     int `json:"max_depth"`     // 도달한 최대 깊이
	Stalls       int `json:"stalls"`        // 버킷이 부모 전체를 받은 횟수
	ConstantRuns int `json:"constant_runs"` // 전부 같은 값이라 재귀 없이 받은 버킷
}

// Sorter 설정과 난수원을 묶은 정렬기. 동시 사용은 안전하지 않다
// (Rand가 호출마다 상태를 바꾼다).
type Sorter[T constraints.Integer] struct {
	cfg Config
}

// New 설정을 검증하고 정렬기를 만든다
func New[T constraints.Integer](cfg Config) (*Sorter[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Sorter[T]{cfg: cfg.withDefaults()}, nil
}

// Sort data의 정렬된 새 슬라이스를 돌려준다. data는 건드리지 않는다.
// 임계값 적응용 0xFFFF 마스크는 T로 변환되므로 8비트 타입에서는 잘린다
// (int8이면 -1, uint8이면 0xFF). 이때 버킷 배정이 무한 정밀도 정수 기준과
// 달라지지만 결과는 여전히 정렬된다.
func Sort[T constraints.Integer](ctx context.Context, data []T, cfg Config) ([]T, error) {
	out, _, err := SortStats(ctx, data, cfg)
	return out, err
}

// SortStats Sort와 같지만 재귀 통계도 함께 돌려준다
func SortStats[T constraints.Integer](ctx context.Context, data []T, cfg Config) ([]T, Stats, error) {
	s, err := New[T](cfg)
	if err != nil {
		return nil, Stats{}, err
	}
	return s.SortStats(ctx, data)
}

// Sort data의 정렬된 새 슬라이스
func (s *Sorter[T]) Sort(ctx context.Context, data []T) ([]T, error) {
	out, _, err := s.SortStats(ctx, data)
	return out, err
}

// SortStats 정렬 결과와 통계. 오류 시 부분 결과는 없다.
func (s *Sorter[T]) SortStats(ctx context.Context, data []T) ([]T, Stats, error) {
	var st Stats
	out, err := s.sort(ctx, data, 0, 0, &st)
	if err != nil {
		return nil, st, err
	}
	return out, st, nil
}

// sort 재귀 본체. stall은 부모로부터 이어진 무진전 단계 수.
func (s *Sorter[T]) sort(ctx context.Context, arr []T, depth, stall int, st *Stats) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrapf(err, "wavesort: canceled at depth %d", depth)
	}
	st.Calls++
	st.MaxDepth = max(st.MaxDepth, depth)

	// 작은 입력은 삽입정렬 (복사본에서)
	if len(arr) <= s.cfg.CacheLine {
		st.Fallbacks++
		out := make([]T, len(arr))
		copy(out, arr)
		insertionSort(out)
		return out, nil
	}

	// 1. 동적 표본 추출
	st.Partitions++
	smp, err := sample(s.cfg.Rand, arr, sampleSize(len(arr)))
	if err != nil {
		return nil, err
	}
	th := dynamicThresholds(smp)

	// 2. 캐시 블록 단위 분할
	buckets := s.partition(arr, th, st)

	// 3. 재귀 + 순차 병합
	var result []T
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}

		next := 0
		if len(bucket) == len(arr) {
			if isConstant(bucket) {
				// 같은 값뿐이면 이미 정렬된 상태
				st.ConstantRuns++
				s.cfg.Logger.Debug("constant bucket taken as sorted",
					"depth", depth, "bucket", i, "size", len(bucket))
				result = merge(result, bucket)
				st.Merges++
				continue
			}
			next = stall + 1
			st.Stalls++
			s.cfg.Logger.Debug("bucket did not shrink",
				"depth", depth, "bucket", i, "size", len(bucket), "stall", next)
			if next > s.cfg.MaxStall {
				return nil, errors.Wrapf(ErrResourceExhausted,
					"no progress for %d levels at depth %d (size %d)", next, depth, len(bucket))
			}
		}
		if depth+1 > s.cfg.MaxDepth {
			s.cfg.Logger.Debug("recursion depth limit", "depth", depth+1, "limit", s.cfg.MaxDepth)
			return nil, errors.Wrapf(ErrResourceExhausted,
				"recursion depth %d exceeds limit %d", depth+1, s.cfg.MaxDepth)
		}

		sorted, err := s.sort(ctx, bucket, depth+1, next, st)
		if err != nil {
			return nil, err
		}
		result = merge(result, sorted)
		st.Merges++
	}
	return result, nil
}

// partition 입력 전체를 블록 단위로 훑어 4개 버킷에 나눈다.
// 한 블록 안에서는 같은 임계값을 쓰고, 적응 결과는 다음 블록부터 보인다.
func (s *Sorter[T]) partition(arr []T, th [numThresholds]T, st *Stats) [numBuckets][]T {
	var buckets [numBuckets][]T
	for _, block := range cacheBlocks(arr, s.cfg.CacheLine) {
		for _, elem := range block {
			idx := bucketIndex(elem, th)
			buckets[idx] = append(buckets[idx], elem)
		}
		th = adaptThresholds(th, block)
		st.Blocks++
	}
	return buckets
}

// bucketIndex elem보다 엄격히 작은 임계값의 개수 (0..3)
func bucketIndex[T constraints.Ordered](elem T, th [numThresholds]T) int {
	idx := 0
	for _, t := range th {
		if elem > t {
			idx++
		}
	}
	return idx
}

// isConstant 모든 원소가 같은지
func isConstant[T comparable](arr []T) bool {
	for _, v := range arr[1:] {
		if v != arr[0] {
			return false
		}
	}
	return true
}
