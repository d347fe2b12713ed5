package log

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	charmlog "github.com/charmbracelet/log"
)

type (
	Level  = charmlog.Level
	Styles = charmlog.Styles
)

const (
	DebugLevel     = charmlog.DebugLevel
	InfoLevel      = charmlog.InfoLevel
	WarnLevel      = charmlog.WarnLevel
	ErrorLevel     = charmlog.ErrorLevel
	FatalLevel     = charmlog.FatalLevel
	ImportantLevel = WarnLevel + 1
)

var (
	defaultStylesOnce sync.Once
	defaultStyles     atomic.Pointer[Styles]
)

// LevelString returns the label printed for the level
func LevelString(l Level) string {
	switch l {
	case ImportantLevel:
		return "important"
	default:
		return l.String()
	}
}

// ParseLevel maps a config value ("debug", "info", ...) to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "important":
		return ImportantLevel, nil
	case "":
		return InfoLevel, nil
	}
	l, err := charmlog.ParseLevel(s)
	if err != nil {
		return InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

func initializeStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for _, ls := range levelStyles {
		label := strings.ToUpper(LevelString(ls.level))
		if len(label) < ls.maxWidth {
			label += strings.Repeat(" ", ls.maxWidth-len(label))
		}
		styles.Levels[ls.level] = ls.style.SetString(label)
	}
	return styles
}

// DefaultStyles returns the level styles including the Important level
func DefaultStyles() *Styles {
	defaultStylesOnce.Do(func() {
		defaultStyles.Store(initializeStyles())
	})
	return defaultStyles.Load()
}

// New creates a new slog logger backed by a charm log handler
func New(opts ...Option) *slog.Logger {
	o := DefaultOptions()
	o.Apply(opts...)

	handler := charmlog.NewWithOptions(o.Writer, o.handlerOptions())
	handler.SetStyles(DefaultStyles())

	logger := slog.New(handler)
	if len(o.Attrs) > 0 {
		logger = logger.With(o.Attrs...)
	}

	if o.Default {
		charmlog.SetDefault(handler)
		slog.SetDefault(logger)
	}

	return logger
}

// Important logs at the Important level through the default slog logger
func Important(msg string, args ...any) {
	slog.Default().Log(context.Background(), slog.Level(ImportantLevel), msg, args...)
}
