package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool

	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// DefaultAuthor is the attribution used for comments when the
	// caller supplies none.
	DefaultAuthor string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
		EnableMetrics:    true,
		DefaultAuthor:    "Editor",
	}
}

// WithMetrics returns a copy of the config with metrics set.
func (c Config) WithMetrics(enabled bool) Config {
	c.EnableMetrics = enabled
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(enabled bool) Config {
	c.RecoverFromPanic = enabled
	return c
}

// WithDefaultAuthor returns a copy of the config with the comment
// author set.
func (c Config) WithDefaultAuthor(author string) Config {
	c.DefaultAuthor = author
	return c
}
