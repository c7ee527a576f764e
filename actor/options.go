package actor

// EngineOption configures an Engine at construction time.
type EngineOption func(*engineConfig)

type engineConfig struct {
	maxWorkers int
	metrics    *Metrics
}

// WithMaxWorkers caps the number of workers Spawn will accept; Spawn past
// the cap fails with ErrTooManyWorkers. Zero (the default) means
// unbounded.
func WithMaxWorkers(n int) EngineOption {
	return func(c *engineConfig) { c.maxWorkers = n }
}

// WithMetrics attaches a prometheus Metrics bundle to the engine. Without
// this option the engine runs uninstrumented.
func WithMetrics(m *Metrics) EngineOption {
	return func(c *engineConfig) { c.metrics = m }
}
