package homebrew

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bimmel1231/homebrew/selection"
)

// Option configures compiler selection.
type Option func(*selectConfig) error

// selectConfig holds all selection configuration.
type selectConfig struct {
	priority       selection.PriorityList
	standards      []string
	defaultFamily  selection.Family
	defaultFromOpt bool

	// logger is the structured logger for debug/info output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithPriority replaces the host's default priority list.
func WithPriority(families ...selection.Family) Option {
	return func(c *selectConfig) error {
		if len(families) == 0 {
			return errors.New("priority list must not be empty")
		}
		c.priority = append(selection.PriorityList(nil), families...)
		return nil
	}
}

// WithStandards adds standards whose registered failure rules apply on top
// of the package's own.
func WithStandards(ids ...string) Option {
	return func(c *selectConfig) error {
		c.standards = append(c.standards, ids...)
		return nil
	}
}

// WithDefaultCompiler overrides the default compiler family reported by the host.
func WithDefaultCompiler(f selection.Family) Option {
	return func(c *selectConfig) error {
		c.defaultFamily = f
		c.defaultFromOpt = true
		return nil
	}
}

// WithLogger sets a structured logger for selection diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "compilers")
//	homebrew.SelectCompiler(pkg, host, homebrew.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *selectConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *selectConfig) validate() error {
	for _, f := range c.priority {
		switch f {
		case selection.Clang, selection.GCC, selection.LLVM, selection.GCC40, selection.GNU:
		default:
			return fmt.Errorf("invalid priority list entry %s", f)
		}
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *selectConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newSelectConfig applies the given options and validates the result.
func newSelectConfig(opts ...Option) (*selectConfig, error) {
	c := &selectConfig{}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}
