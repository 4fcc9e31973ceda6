package wavesort

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidInput 지원하지 않는 입력 또는 잘못된 설정
	ErrInvalidInput = errors.New("wavesort: invalid input")

	// ErrResourceExhausted 재귀 깊이 또는 정체 횟수가 한도를 넘음
	ErrResourceExhausted = errors.New("wavesort: resource exhausted")

	// ErrSampleSizeInvalid 표본 크기가 모집단 범위를 벗어남
	ErrSampleSizeInvalid = errors.New("wavesort: sample size invalid")
)
