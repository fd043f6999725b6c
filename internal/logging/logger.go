package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/char5742/stylus-remap/internal/config"
)

var (
	rootLogger = New(os.Stdout, config.DebugQuiet)
	rootMutex  sync.RWMutex
)

// New はコンソール向けのロガーを作成する
func New(w io.Writer, level config.DebugLevel) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(Level(level)).
		With().
		Timestamp().
		Logger()
}

// Level はデバッグレベルをzerologのレベルに変換する
func Level(level config.DebugLevel) zerolog.Level {
	switch level {
	case config.DebugMinimal:
		return zerolog.DebugLevel
	case config.DebugTrace:
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init はルートロガーを差し替える
// 以降に取得したサブシステムロガーが新しい出力先とレベルを使う
func Init(w io.Writer, level config.DebugLevel) {
	zerolog.SetGlobalLevel(Level(level))

	rootMutex.Lock()
	defer rootMutex.Unlock()
	rootLogger = New(w, level)
}

// GetSubsystemLogger はsubsystemフィールド付きの子ロガーを返す
func GetSubsystemLogger(subsystem string) *zerolog.Logger {
	rootMutex.RLock()
	defer rootMutex.RUnlock()

	l := rootLogger.With().Str("subsystem", subsystem).Logger()
	return &l
}
