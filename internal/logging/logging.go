package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rogerio-castellano/product-values/internal/config"
)

const timeFormat = "2006-01-02 15:04:05"

// Setup configures the global zerolog logger from cfg and returns a closer
// for the log file, if one was opened.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		return nil, fmt.Errorf("invalid log level %q", cfg.Level)
	}
	zerolog.SetGlobalLevel(level)

	writers := []io.Writer{consoleWriter(cfg.Format, os.Stdout, false)}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := ensureLogDir(cfg.File); err != nil {
			return nil, fmt.Errorf("failed to prepare log directory: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		writers = append(writers, consoleWriter(cfg.Format, fileWriter, true))
		closer = fileWriter
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	return closer, nil
}

func consoleWriter(format string, out io.Writer, noColor bool) io.Writer {
	if format == "json" {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat, NoColor: noColor}
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
