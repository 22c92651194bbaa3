// Package logger configures the process-wide logrus logger.
//
// Log output never goes to stdout: stdout carries the command interpreter's
// prompt and results, which must stay byte-exact.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cabewaldrop/pagedb/internal/config"
)

// Init configures logrus.StandardLogger from cfg and returns a closer for
// the log file, if one was opened.
func Init(cfg config.LogConfig) (io.Closer, error) {
	return Configure(logrus.StandardLogger(), cfg, os.Stderr)
}

// Configure applies cfg to log. When cfg.File is empty, output goes to
// fallback.
func Configure(log *logrus.Logger, cfg config.LogConfig, fallback io.Writer) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "parse log level")
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05 MST 2006/01/02",
	})

	if cfg.File == "" {
		log.SetOutput(fallback)
		return nopCloser{}, nil
	}

	file, err := openLogFile(cfg.File)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", cfg.File)
	}
	log.SetOutput(file)
	return file, nil
}

// openLogFile opens path for appending, creating its directory if needed.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
