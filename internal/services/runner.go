package services

import (
	"context"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/logger"
	"delivery-hub-service/internal/platform/metrics"
	"delivery-hub-service/internal/platform/obs"
	"delivery-hub-service/internal/ports"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Options tunes the scenarios run by a Runner.
type Options struct {
	// Step size in degrees for single-hub scenarios and for the first hub
	// of the two-hub scenario.
	Step float64
	// Step size in degrees for the second hub of the two-hub scenario.
	SecondHubStep float64
	// Padding added around the place bounds when drawing the second hub's
	// starting position.
	SecondHubPadLat float64
	SecondHubPadLon float64
	MaxIterations   int
	Parallel        bool
}

func DefaultOptions() Options {
	return Options{
		Step:            0.01,
		SecondHubStep:   0.02,
		SecondHubPadLat: 10,
		SecondHubPadLon: 0.5,
		MaxIterations:   DefaultMaxIterations,
	}
}

func (o Options) Validate() error {
	if !(o.Step > 0) || !(o.SecondHubStep > 0) {
		return fmt.Errorf("runner options: steps must be positive (step=%v second_hub_step=%v)", o.Step, o.SecondHubStep)
	}
	if o.SecondHubPadLat < 0 || o.SecondHubPadLon < 0 {
		return fmt.Errorf("runner options: padding must not be negative (lat=%v lon=%v)", o.SecondHubPadLat, o.SecondHubPadLon)
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("runner options: max iterations must not be negative: %d", o.MaxIterations)
	}
	return nil
}

// Runner orchestrates independent optimization scenarios over one place
// set. Each scenario draws its own random start, uses a fresh evaluation
// counter and never mutates the places.
type Runner struct {
	Distance ports.DistanceProvider
	Sampler  ports.Sampler
	Options  Options
	Logger   *slog.Logger
}

func NewRunner(dist ports.DistanceProvider, sampler ports.Sampler, opts Options) (*Runner, error) {
	if dist == nil {
		return nil, errors.New("new runner: distance provider is nil")
	}
	if sampler == nil {
		return nil, errors.New("new runner: sampler is nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("new runner: %w", err)
	}

	return &Runner{
		Distance: dist,
		Sampler:  sampler,
		Options:  opts,
		Logger:   logger.L(),
	}, nil
}

// Run executes every strategy in AllStrategies order.
func (r *Runner) Run(ctx context.Context, places domain.PlaceSet) ([]domain.HubPlacement, error) {
	return r.RunStrategies(ctx, places, AllStrategies)
}

func (r *Runner) RunStrategies(
	ctx context.Context,
	places domain.PlaceSet,
	strategies []Strategy,
) ([]domain.HubPlacement, error) {
	out := make([]domain.HubPlacement, 0, len(strategies))
	for _, s := range strategies {
		res, err := r.RunScenario(ctx, places, s)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// RunScenario optimizes the hub position(s) for a single strategy.
func (r *Runner) RunScenario(
	ctx context.Context,
	places domain.PlaceSet,
	strategy Strategy,
) (_ domain.HubPlacement, err error) {
	defer obs.Time(ctx, "runner."+string(strategy))(&err)

	bounds, err := domain.FindBounds(places)
	if err != nil {
		return domain.HubPlacement{}, fmt.Errorf("run scenario %s: %w", strategy, err)
	}

	counter := &EvaluationCounter{}
	model := NewCostModel(places, r.Distance, counter)
	objective, err := model.Objective(strategy)
	if err != nil {
		return domain.HubPlacement{}, fmt.Errorf("run scenario %s: %w", strategy, err)
	}

	start, steps := r.initialState(strategy, bounds)

	began := time.Now()
	res, err := HillClimb(ctx, objective, start, steps, ClimbOptions{
		MaxIterations: r.Options.MaxIterations,
		Parallel:      r.Options.Parallel,
	})
	if err != nil {
		return domain.HubPlacement{}, fmt.Errorf("run scenario %s: %w", strategy, err)
	}
	dur := time.Since(began)

	metrics.ObserveScenario(string(strategy), counter.Load(), res.Iterations, dur)

	if !res.Converged {
		r.logger().Warn("scenario stopped at iteration limit",
			"strategy", strategy,
			"iterations", res.Iterations,
		)
	}

	placement := domain.HubPlacement{
		RunID:              uuid.NewString(),
		Strategy:           string(strategy),
		Hubs:               res.Hubs,
		Score:              res.Score,
		TotalDistanceMiles: TotalDistance(res.Score),
		Evaluations:        counter.Load(),
		Iterations:         res.Iterations,
		Converged:          res.Converged,
		Duration:           dur,
		CreatedAt:          time.Now().UTC(),
	}

	r.logger().Info("scenario complete",
		"strategy", strategy,
		"hubs", len(placement.Hubs),
		"total_miles", placement.TotalDistanceMiles,
		"evaluations", placement.Evaluations,
		"iterations", placement.Iterations,
	)

	return placement, nil
}

// initialState draws the starting hubs. The second hub of the two-hub
// scenario starts inside a padded box and moves with its own step.
func (r *Runner) initialState(strategy Strategy, bounds domain.Bounds) ([]domain.Coordinates, []float64) {
	start := []domain.Coordinates{r.sample(bounds)}
	steps := []float64{r.Options.Step}

	if strategy.Hubs() == 2 {
		padded := bounds.Pad(r.Options.SecondHubPadLat, r.Options.SecondHubPadLon)
		start = append(start, r.sample(padded))
		steps = append(steps, r.Options.SecondHubStep)
	}

	return start, steps
}

func (r *Runner) sample(b domain.Bounds) domain.Coordinates {
	return domain.Coordinates{
		Lat: r.Sampler.Uniform(b.MinLat, b.MaxLat),
		Lon: r.Sampler.Uniform(b.MinLon, b.MaxLon),
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return logger.L()
}
