// Package log configures the simulator's leveled loggers. Records go to a
// rotating file when a directory is given, otherwise to stderr.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const header = `{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}","file":"${short_file}","line":"${line}"}`

func ParseLevel(level string) (log.Lvl, error) {
	switch level {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return log.INFO, fmt.Errorf("%s: invalid log level", level)
	}
}

// New returns a logger with the given prefix. An empty dir logs to stderr.
func New(prefix, level, dir string) (*log.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var w io.Writer = os.Stderr
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		w = &lumberjack.Logger{
			Filename:   filepath.Join(dir, prefix+".log"),
			MaxSize:    32, // MB
			MaxBackups: 1,
		}
	}

	l := log.New(prefix)
	l.SetHeader(header)
	l.SetLevel(lvl)
	l.SetOutput(w)
	return l, nil
}

// Discard returns a logger that drops everything; used by tests and by
// callers that pass a nil logger.
func Discard() *log.Logger {
	l := log.New("discard")
	l.SetOutput(io.Discard)
	l.SetLevel(log.OFF)
	return l
}
