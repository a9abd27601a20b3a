// Package logging builds the rotating file logger used while the terminal UI
// owns stdout and stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Prefix tags every line written by the application.
const Prefix = "CUADERNO: "

// New returns a logger writing to a size-rotated file at path.
// An empty path discards output.
func New(path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	return log.New(rotator, Prefix, log.LstdFlags), rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard, Prefix, 0)
}

// Goose adapts a log.Logger to the migration library's logger. Fatalf logs
// instead of exiting; the failed migration is reported through its error.
type Goose struct {
	L *log.Logger
}

func (g Goose) Printf(format string, v ...interface{}) {
	g.logger().Printf(format, v...)
}

func (g Goose) Fatalf(format string, v ...interface{}) {
	g.logger().Printf("fatal: "+format, v...)
}

func (g Goose) logger() *log.Logger {
	if g.L == nil {
		return Discard()
	}
	return g.L
}
