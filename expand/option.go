package expand

import "github.com/cedarparse/cedar/log"

// config holds expansion options shared by the entry points.
type config struct {
	scope     Scope
	transform func(any) any
	logger    log.Logger
}

// Option configures an expansion.
type Option func(*config)

// WithScope supplies the bindings that Ref atoms resolve against.
func WithScope(scope Scope) Option {
	return func(c *config) {
		c.scope = scope
	}
}

// WithTransform maps the nested pair produced by a sequence into its final
// value. The transform receives the full right-nested pair, runs only when
// the underlying sequence succeeds, and runs once per successful attempt.
// It applies to [Sequence] only; [Choice] and [Select] ignore it.
func WithTransform(f func(any) any) Option {
	return func(c *config) {
		c.transform = f
	}
}

// WithLogger sets the structured logger for trace-level expansion logging.
// The zero value logger is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// makeConfig applies functional options over a zero config.
func makeConfig(opts ...Option) config {
	var c config

	for _, opt := range opts {
		opt(&c)
	}

	return c
}
