package log

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Options configures the logger built by New
type Options struct {
	Level  Level
	Writer io.Writer
	Caller bool
	// TimeFormat is the timestamp layout; empty leaves timestamps out
	TimeFormat string
	Attrs      []any
	Default    bool
}

// DefaultOptions logs info and above to stderr without caller or timestamp
func DefaultOptions() *Options {
	return &Options{
		Level:  InfoLevel,
		Writer: os.Stderr,
	}
}

func (o *Options) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(o)
	}
}

func (o *Options) handlerOptions() charmlog.Options {
	return charmlog.Options{
		Level:           o.Level,
		ReportCaller:    o.Caller,
		ReportTimestamp: o.TimeFormat != "",
		TimeFormat:      o.TimeFormat,
	}
}

type Option func(*Options)

func UseLevel(l Level) Option {
	return func(o *Options) {
		o.Level = l
	}
}

func UseOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

// UseCaller adds the source file and line of the log call
func UseCaller() Option {
	return func(o *Options) {
		o.Caller = true
	}
}

// UseTimestamp prefixes records with the time in the given layout
func UseTimestamp(layout string) Option {
	return func(o *Options) {
		o.TimeFormat = layout
	}
}

// UseAttrs attaches the key-value pairs to every record
func UseAttrs(args ...any) Option {
	return func(o *Options) {
		o.Attrs = append(o.Attrs, args...)
	}
}

// AsDefault installs the logger as the slog default
func AsDefault() Option {
	return func(o *Options) {
		o.Default = true
	}
}
