// Package logger builds the slog loggers used by the fieldschema command.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format selects the handler a logger writes with.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Option configures [New].
type Option func(*config)

type config struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

// WithLevel sets the minimum level.
func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the output format. Unknown formats panic.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets the destination. The default is stderr so command output
// on stdout stays machine-readable.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// New returns a logger; JSON at info level on stderr unless configured.
func New(opts ...Option) *slog.Logger {
	c := &config{level: slog.LevelInfo, format: FormatJSON, output: os.Stderr}
	for _, o := range opts {
		o(c)
	}
	ho := &slog.HandlerOptions{Level: c.level}
	var h slog.Handler
	if c.format == FormatText {
		h = slog.NewTextHandler(c.output, ho)
	} else {
		h = slog.NewJSONHandler(c.output, ho)
	}
	if len(c.attrs) > 0 {
		h = h.WithAttrs(c.attrs)
	}
	return slog.New(h)
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}
