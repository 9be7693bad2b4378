package services

import "go.uber.org/atomic"

// EvaluationCounter counts cost-function invocations for one scenario.
// The zero value is ready to use and safe for concurrent increments.
type EvaluationCounter struct {
	n atomic.Int64
}

func (c *EvaluationCounter) Inc() {
	c.n.Inc()
}

func (c *EvaluationCounter) Load() int64 {
	return c.n.Load()
}

func (c *EvaluationCounter) Reset() {
	c.n.Store(0)
}
