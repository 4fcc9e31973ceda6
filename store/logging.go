package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rlaau/wavesort/internal/logger"
)

// kvLogger BadgerDB/PebbleDB 로그를 slog로 넘긴다.
// 두 라이브러리의 Logger 인터페이스를 함께 만족한다.
type kvLogger struct {
	backend string
}

func (l kvLogger) log(level slog.Level, format string, args ...any) {
	logger.L.Log(context.Background(), level, strings.TrimSpace(fmt.Sprintf(format, args...)), "backend", l.backend)
}

func (l kvLogger) Debugf(format string, args ...any)   { l.log(slog.LevelDebug, format, args...) }
func (l kvLogger) Infof(format string, args ...any)    { l.log(slog.LevelDebug, format, args...) }
func (l kvLogger) Warningf(format string, args ...any) { l.log(slog.LevelWarn, format, args...) }
func (l kvLogger) Errorf(format string, args ...any)   { l.log(slog.LevelError, format, args...) }

// Fatalf pebble은 반환을 기대하지 않는다
func (l kvLogger) Fatalf(format string, args ...any) {
	l.log(slog.LevelError, format, args...)
	panic(fmt.Sprintf(format, args...))
}
