// Package logging configures the global zerolog logger: level, console or
// JSON output on stderr, and an optional rotating log file.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects the log output.
type Options struct {
	Level  string // zerolog level name; unknown values fall back to info
	Format string // "auto", "console" or "json"
	File   string // rotating JSON log file, optional
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup installs the global logger. The returned Closer flushes the log
// file, if any.
func Setup(opts Options, stderr io.Writer) (io.Closer, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = stderr
	if useConsole(opts.Format, stderr) {
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = zerolog.MultiLevelWriter(out, file)
		closer = file
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

func useConsole(format string, w io.Writer) bool {
	switch strings.ToLower(format) {
	case "console":
		return true
	case "json":
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
