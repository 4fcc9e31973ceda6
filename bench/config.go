// Package bench 정렬 알고리즘 벤치마크: 데이터 생성, 측정, 검증, 보고서.
package bench

import (
	"github.com/cockroachdb/errors"

	"github.com/rlaau/wavesort/store"
)

// Result 저장소와 같은 결과 레코드
type Result = store.Result

// 저장 방식 표기
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageKV     = "kv"
)

// Config 벤치마크 설정
type Config struct {
	Sizes      []int    // 데이터 크기들
	Runs       int      // 크기/알고리즘당 반복 횟수
	Seed       uint64   // 데이터 생성과 wavesort 표본 시드
	MaxValue   int64    // 생성 값 범위 [0, MaxValue)
	Algorithms []string // 실행할 알고리즘 (비면 전체)
	Workers    int      // 병렬 정렬 워커 수 (0이면 CPU 수)
}

// DefaultConfig 기본 설정 (1천/1만/10만, 3회, 시드 42)
func DefaultConfig() Config {
	return Config{
		Sizes:    []int{1000, 10000, 100000},
		Runs:     3,
		Seed:     42,
		MaxValue: 1000000,
	}
}

// Validate 설정 검증
func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return errors.New("bench: no sizes")
	}
	for _, n := range c.Sizes {
		if n < 0 {
			return errors.Newf("bench: negative size %d", n)
		}
	}
	if c.Runs <= 0 {
		return errors.Newf("bench: runs must be positive, got %d", c.Runs)
	}
	if c.MaxValue <= 0 {
		return errors.Newf("bench: max value must be positive, got %d", c.MaxValue)
	}
	for _, name := range c.Algorithms {
		if !isAlgorithm(name) {
			return errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
		}
	}
	return nil
}
