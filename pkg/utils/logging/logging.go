package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/masq"
)

// Format is the output format of the logger
type Format int

const (
	FormatConsole Format = iota
	FormatJSON
)

var defaultLogger = New(os.Stdout, slog.LevelInfo, FormatConsole)

// Default returns the process-wide logger
func Default() *slog.Logger {
	return defaultLogger
}

// SetDefault replaces the process-wide logger
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
}

var colorMap = &clog.ColorMap{
	Level: map[slog.Level]*color.Color{
		slog.LevelDebug: color.New(color.FgGreen, color.Bold),
		slog.LevelInfo:  color.New(color.FgCyan, color.Bold),
		slog.LevelWarn:  color.New(color.FgYellow, color.Bold),
		slog.LevelError: color.New(color.FgRed, color.Bold),
	},
	LevelDefault: color.New(color.FgBlue, color.Bold),
	Time:         color.New(color.FgWhite),
	Message:      color.New(color.FgHiWhite),
	AttrKey:      color.New(color.FgHiCyan),
	AttrValue:    color.New(color.FgHiWhite),
}

// New creates a logger. Fields tagged `masq:"secret"` are redacted before
// they reach any output.
func New(w io.Writer, level slog.Level, format Format) *slog.Logger {
	filter := masq.New(masq.WithTag("secret"))

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   true,
			Level:       level,
			ReplaceAttr: filter,
		})
	default:
		handler = clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter),
			clog.WithSource(true),
			clog.WithColorMap(colorMap),
		)
	}

	return slog.New(handler)
}

// ErrAttr wraps an error as a slog attribute
func ErrAttr(err error) slog.Attr {
	return slog.Any("error", err)
}
