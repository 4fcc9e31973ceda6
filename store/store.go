// Package store 데이터셋과 벤치마크 결과를 임베디드 KV 저장소에 보관한다.
// bbolt, BadgerDB, PebbleDB 세 가지 백엔드를 같은 인터페이스로 제공한다.
package store

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/rlaau/wavesort/wavesort"
)

// 지원 백엔드
const (
	BackendBolt   = "bbolt"
	BackendBadger = "badger"
	BackendPebble = "pebble"
)

var (
	// ErrNotFound 키 없음
	ErrNotFound = errors.New("store: not found")
	// ErrCorrupt 저장된 값의 길이나 다이제스트가 맞지 않음
	ErrCorrupt = errors.New("store: corrupt value")
	// ErrUnknownBackend 지원하지 않는 백엔드 이름
	ErrUnknownBackend = errors.New("store: unknown backend")
)

// Result 벤치마크 한 번의 실행 결과
type Result struct {
	Algorithm    string          `json:"algorithm"`
	DataSize     int             `json:"data_size"`
	StorageType  string          `json:"storage_type"`
	Dataset      string          `json:"dataset,omitempty"`
	Digest       uint64          `json:"digest"`
	TestRun      int             `json:"test_run"`
	Duration     time.Duration   `json:"duration"`
	MemoryUsage  uint64          `json:"memory_usage_bytes"`
	Mallocs      uint64          `json:"mallocs"`
	GoroutineNum int             `json:"goroutine_num"`
	Verified     bool            `json:"verified"`
	Error        string          `json:"error,omitempty"`
	WaveStats    *wavesort.Stats `json:"wave_stats,omitempty"`
	RecordedAt   time.Time       `json:"recorded_at"`
}

// Store 데이터셋/결과 저장소
type Store interface {
	// PutDataset 이름으로 데이터셋 저장 (덮어씀)
	PutDataset(name string, data []int64) error
	// GetDataset 저장된 데이터셋. 없으면 ErrNotFound, 손상 시 ErrCorrupt.
	GetDataset(name string) ([]int64, error)
	// Datasets 저장된 데이터셋 이름 (사전순)
	Datasets() ([]string, error)
	// PutResult 결과 추가
	PutResult(r Result) error
	// Results 알고리즘, 크기, 실행 번호 순으로 정렬된 전체 결과
	Results() ([]Result, error)
	Close() error
}

// Options 저장소 열기 옵션
type Options struct {
	Backend string // bbolt | badger | pebble
	Path    string // 디렉터리 (bbolt는 그 안에 bbolt.db 파일)
}

// Backends 지원 백엔드 목록
func Backends() []string {
	return []string{BackendBolt, BackendBadger, BackendPebble}
}

// Open 백엔드에 맞는 저장소를 연다
func Open(opts Options) (Store, error) {
	if opts.Path == "" {
		return nil, errors.New("store: empty path")
	}
	if err := os.MkdirAll(opts.Path, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create store dir %s", opts.Path)
	}

	switch opts.Backend {
	case BackendBolt:
		return openBolt(filepath.Join(opts.Path, boltFile))
	case BackendBadger:
		return openBadger(opts.Path)
	case BackendPebble:
		return openPebble(opts.Path)
	default:
		return nil, errors.Wrapf(ErrUnknownBackend, "%q", opts.Backend)
	}
}

// DiskUsage 디렉터리 아래 파일 크기 합
func DiskUsage(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, errors.Wrapf(err, "walk %s", path)
}
