// Package logger builds the CLI's slog.Logger from config.Log.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dmagro/evm-rpc-client/internal/config"
)

// FileName is the log file written when config.Log.Output is a directory.
const FileName = "evmrpc.log"

// New returns a logger for cfg and a closer for its output. The closer is a
// no-op for stderr and stdout.
func New(cfg config.Log) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("logger setup failed: %w", err)
	}

	out, closer := writer(cfg.Output)

	handler, err := toSlogHandler(cfg.Format, out, &slog.HandlerOptions{Level: level})
	if err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("logger setup failed: %w", err)
	}

	return slog.New(handler), closer, nil
}

// ParseLevel converts a config level name to a slog.Level. Empty means info.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported logger level: %s", level)
	}
}

func toSlogHandler(format string, out io.Writer, opts *slog.HandlerOptions) (slog.Handler, error) {
	switch format {
	case "json":
		return slog.NewJSONHandler(out, opts), nil
	case "text", "":
		return slog.NewTextHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func writer(output string) (io.Writer, io.Closer) {
	switch output {
	case "", "stderr":
		return os.Stderr, nopCloser{}
	case "stdout":
		return os.Stdout, nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(output, FileName),
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	}
	return file, file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
