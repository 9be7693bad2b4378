package services

import (
	"context"
	"delivery-hub-service/internal/domain"
	"errors"
	"fmt"
	"math"
	"slices"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxIterations bounds a climb when ClimbOptions leaves it unset.
const DefaultMaxIterations = 1_000_000

var ErrInvalidClimb = errors.New("invalid hill climb input")

type ClimbOptions struct {
	// Upper bound on rounds. A climb that reaches it stops with
	// Converged=false and still returns its best state.
	MaxIterations int
	// Evaluate the eight neighbors of a round concurrently. Results are
	// identical to sequential evaluation.
	Parallel bool
	// Record the score after every round.
	Trace bool
}

type ClimbResult struct {
	Hubs       []domain.Coordinates
	Score      float64
	Iterations int
	Converged  bool
	// Trace[0] is the starting score, Trace[k] the score after round k.
	Trace []float64
}

// offset is a sign pattern applied to every hub: lat moves by i*step and
// lon by j*step, with each hub using its own step.
type offset struct{ i, j int }

// neighborhood is the 3x3 grid without its center, in row-major order.
// Reduction walks it in this order, so ties resolve to the last offset.
var neighborhood = func() []offset {
	out := make([]offset, 0, 8)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if i == 0 && j == 0 {
				continue
			}
			out = append(out, offset{i: i, j: j})
		}
	}
	return out
}()

// HillClimb runs steepest-ascent hill climbing over a tuple of hub
// coordinates.
//
// Each round scores the eight neighbors of the current state and moves to
// the best one whose score is >= the current score, preferring the last
// such neighbor on ties. The climb stops after the first round that does
// not strictly improve the score, or when MaxIterations rounds have run.
func HillClimb(
	ctx context.Context,
	objective Objective,
	start []domain.Coordinates,
	steps []float64,
	opts ClimbOptions,
) (ClimbResult, error) {
	if objective == nil {
		return ClimbResult{}, fmt.Errorf("hill climb: %w: objective is nil", ErrInvalidClimb)
	}
	if len(start) == 0 || len(start) != len(steps) {
		return ClimbResult{}, fmt.Errorf(
			"hill climb: %w: %d hubs with %d steps",
			ErrInvalidClimb, len(start), len(steps),
		)
	}
	for h, s := range steps {
		if !(s > 0) || math.IsInf(s, 0) {
			return ClimbResult{}, fmt.Errorf("hill climb: %w: step %d is %v", ErrInvalidClimb, h, s)
		}
	}

	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	current := slices.Clone(start)
	currentScore := objective(current)

	res := ClimbResult{}
	if opts.Trace {
		res.Trace = append(res.Trace, currentScore)
	}

	scores := make([]float64, len(neighborhood))

	for {
		if err := ctx.Err(); err != nil {
			return ClimbResult{}, fmt.Errorf("hill climb: round %d: %w", res.Iterations+1, err)
		}

		if res.Iterations >= maxIter {
			break
		}

		if err := evaluateNeighbors(ctx, objective, current, steps, scores, opts.Parallel); err != nil {
			return ClimbResult{}, fmt.Errorf("hill climb: round %d: %w", res.Iterations+1, err)
		}

		before := currentScore
		best, bestScore := bestNeighbor(scores, currentScore)
		if best >= 0 {
			current = neighbor(current, steps, neighborhood[best])
			currentScore = bestScore
		}

		res.Iterations++
		if opts.Trace {
			res.Trace = append(res.Trace, currentScore)
		}

		if !(currentScore > before) {
			res.Converged = true
			break
		}
	}

	res.Hubs = current
	res.Score = currentScore
	return res, nil
}

// bestNeighbor returns the index of the last neighbor whose score is >= the
// running best, starting from floor. It returns -1 when none qualifies.
func bestNeighbor(scores []float64, floor float64) (int, float64) {
	best := -1
	bestScore := floor
	for k, s := range scores {
		if s >= bestScore {
			best = k
			bestScore = s
		}
	}
	return best, bestScore
}

func evaluateNeighbors(
	ctx context.Context,
	objective Objective,
	current []domain.Coordinates,
	steps []float64,
	scores []float64,
	parallel bool,
) error {
	if !parallel {
		for k, off := range neighborhood {
			scores[k] = objective(neighbor(current, steps, off))
		}
		return nil
	}

	// Each goroutine owns one slot of scores; reduction happens afterwards
	// in neighborhood order.
	g, gctx := errgroup.WithContext(ctx)
	for k, off := range neighborhood {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[k] = objective(neighbor(current, steps, off))
			return nil
		})
	}
	return g.Wait()
}

func neighbor(current []domain.Coordinates, steps []float64, off offset) []domain.Coordinates {
	out := make([]domain.Coordinates, len(current))
	for h, c := range current {
		out[h] = c.Offset(float64(off.i)*steps[h], float64(off.j)*steps[h])
	}
	return out
}
