package domain

import "time"

// Represents the outcome of one optimization scenario.
// TotalDistanceMiles is the reciprocal of Score; a degenerate zero-distance
// layout carries an infinite score and a zero total.
type HubPlacement struct {
	RunID              string
	Strategy           string
	Hubs               []Coordinates
	Score              float64
	TotalDistanceMiles float64
	Evaluations        int64
	Iterations         int
	Converged          bool
	Duration           time.Duration
	CreatedAt          time.Time
}
