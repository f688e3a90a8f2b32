// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ayoisaiah/selfremember/internal/osutil"
)

const (
	maxSizeMB  = 10
	maxBackups = 3
)

// Setup points the default logger at a rotating JSON log file and returns
// the writer so the caller can close it on exit.
func Setup(path, level string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), osutil.DirPermission); err != nil {
		return nil, err
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}

	slog.SetDefault(New(w, level))

	return w, nil
}

// New returns a JSON logger writing to w at the named level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything
// else is info.
func ParseLevel(level string) slog.Level {
	var l slog.Level

	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return slog.LevelInfo
	}

	return l
}
