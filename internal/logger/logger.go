package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// L 전역 로거. 기본값은 모든 출력을 버린다. Init 호출 전까지 조용하다.
var L = discard()

// discard 어떤 레벨도 켜지지 않는 로거
func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(127)}))
}

// Options 로거 초기화 옵션
type Options struct {
	Enabled bool       // false면 모든 로그를 버림
	JSON    bool       // JSON 핸들러 사용 여부
	File    string     // 비어 있으면 stderr
	Level   slog.Level // 최소 레벨 (기본 Info)
}

// Init 로거 설정. main에서 다른 로그 호출 전에 부른다.
// 파일을 열었다면 닫기 함수를 돌려준다.
func Init(opts Options) (func() error, error) {
	noop := func() error { return nil }
	if !opts.Enabled {
		L = discard()
		return noop, nil
	}

	var w io.Writer = os.Stderr
	closeFn := noop
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return noop, errors.Wrap(err, "create log dir")
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return noop, errors.Wrapf(err, "open log file %s", opts.File)
		}
		w = f
		closeFn = f.Close
	}

	L = New(w, opts.JSON, opts.Level)
	return closeFn, nil
}

// New 주어진 writer로 향하는 로거 생성 (테스트에서 버퍼 주입용)
func New(w io.Writer, json bool, level slog.Level) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
