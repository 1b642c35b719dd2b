package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const LevelEnv = "ENVTABLE_LOG_LEVEL"

// Level is shared by every logger created with New so the level can be
// changed after construction (e.g. from a flag).
var Level = new(slog.LevelVar)

func init() {
	Level.Set(slog.LevelWarn)
}

// New returns a logger writing to w. Colour is only used when w is a
// terminal.
func New(w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      Level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(w),
	}))
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: must be debug, info, warn, or error", s)
	}
}

// SetLevel applies flag, falling back to $ENVTABLE_LOG_LEVEL when flag is
// empty.
func SetLevel(flag string) error {
	if flag == "" {
		flag = os.Getenv(LevelEnv)
	}
	level, err := ParseLevel(flag)
	if err != nil {
		return err
	}
	Level.Set(level)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
