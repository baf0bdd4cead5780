package lang

import "github.com/ardnew/marmoset/log"

// DefaultMaxCallDepth is the call depth limit applied when no
// [WithMaxCallDepth] option is given. Zero means unlimited.
var DefaultMaxCallDepth = 0

// config holds the options shared by parsing and evaluation.
type config struct {
	logger       log.Logger
	maxCallDepth int
	cache        bool
}

// Option configures parsing or evaluation behavior.
type Option func(*config)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxCallDepth limits how deeply function calls may nest during
// evaluation. Zero means unlimited.
func WithMaxCallDepth(depth int) Option {
	return func(c *config) {
		c.maxCallDepth = depth
	}
}

// WithCache enables or disables the process-wide parse cache.
func WithCache(enabled bool) Option {
	return func(c *config) {
		c.cache = enabled
	}
}

func makeConfig(opts ...Option) config {
	c := config{
		maxCallDepth: DefaultMaxCallDepth,
		cache:        true,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
