package wavesort

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/rlaau/wavesort/internal/logger"
)

const (
	// CacheLine 캐시 라인 하나에 들어가는 원소 수 (64바이트 가정)
	CacheLine = 16

	// DefaultMaxDepth 기본 재귀 깊이 한도
	DefaultMaxDepth = 512

	// DefaultMaxStall 버킷이 줄어들지 않는 연속 단계 허용 횟수
	DefaultMaxStall = 64

	numThresholds = 3
	numBuckets    = numThresholds + 1

	adaptMask = 0xFFFF
)

// Rand 표본 추출에 쓰는 난수원. *rand.Rand(math/rand/v2)가 만족한다.
type Rand interface {
	IntN(n int) int
}

// Config 정렬기 설정
type Config struct {
	// CacheLine 작은 입력 기준이자 블록 크기
	CacheLine int
	// MaxDepth 최대 재귀 깊이 (0이면 기본값)
	MaxDepth int
	// MaxStall 진전 없는 연속 재귀 허용 횟수 (0이면 기본값)
	MaxStall int
	// Rand nil이면 현재 시각으로 시드
	Rand Rand
	// Logger nil이면 logger.L
	Logger *slog.Logger
}

// DefaultConfig 기본 설정
func DefaultConfig() Config {
	return Config{
		CacheLine: CacheLine,
		MaxDepth:  DefaultMaxDepth,
		MaxStall:  DefaultMaxStall,
	}
}

// Seeded 고정 시드 PCG 난수원을 쓰는 기본 설정 (재현 가능한 실행용)
func Seeded(seed uint64) Config {
	cfg := DefaultConfig()
	cfg.Rand = NewRand(seed)
	return cfg
}

// NewRand 시드 고정 난수원
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Validate 설정 검증
func (c Config) Validate() error {
	if c.CacheLine < 0 {
		return errors.Wrapf(ErrInvalidInput, "cache line %d", c.CacheLine)
	}
	if c.MaxDepth < 0 {
		return errors.Wrapf(ErrInvalidInput, "max depth %d", c.MaxDepth)
	}
	if c.MaxStall < 0 {
		return errors.Wrapf(ErrInvalidInput, "max stall %d", c.MaxStall)
	}
	return nil
}

// withDefaults 0값 필드를 기본값으로 채움
func (c Config) withDefaults() Config {
	if c.CacheLine == 0 {
		c.CacheLine = CacheLine
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxStall == 0 {
		c.MaxStall = DefaultMaxStall
	}
	if c.Rand == nil {
		c.Rand = NewRand(uint64(time.Now().UnixNano()))
	}
	if c.Logger == nil {
		c.Logger = logger.L
	}
	return c
}
