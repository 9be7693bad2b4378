package main

import (
	"context"
	"delivery-hub-service/internal/adapters/distance"
	"delivery-hub-service/internal/adapters/placefile"
	"delivery-hub-service/internal/adapters/random"
	"delivery-hub-service/internal/adapters/repositories"
	"delivery-hub-service/internal/config"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/db"
	"delivery-hub-service/internal/platform/logger"
	"delivery-hub-service/internal/services"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

type options struct {
	ConfigPath    string   `long:"config" description:"YAML file with optimizer settings"`
	PlacesPath    string   `short:"f" long:"places" description:"Place CSV (name,type,population,latitude,longitude)"`
	Seed          uint64   `long:"seed" description:"Random seed for starting positions (0 picks one)"`
	Strategies    []string `short:"s" long:"strategy" description:"Scenario to run (round_trip, chained, two_hub_nearest); repeatable, default all"`
	MaxIterations int      `long:"max-iterations" description:"Upper bound on hill climb rounds per scenario"`
	Parallel      bool     `long:"parallel" description:"Evaluate neighbors concurrently"`
	Lenient       bool     `long:"lenient" description:"Skip malformed records instead of failing"`
	SaveRuns      string   `long:"save-runs" description:"Persist results to this SQLite path or postgres:// URL"`
}

func main() {
	var opts options
	p := flags.NewParser(&opts, flags.Default)
	if _, err := p.Parse(); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	envErr := godotenv.Load()
	logger.Setup()
	if envErr != nil {
		logger.L().Debug("no .env file found (using environment variables)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		logger.L().Error("hubopt failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	strategies, err := parseStrategies(opts.Strategies)
	if err != nil {
		return err
	}

	places, err := placefile.LoadFile(ctx, cfg.PlacesPath, placefile.Options{Lenient: !cfg.Strict})
	if err != nil {
		return err
	}

	sampler := random.NewUniformSampler(cfg.Seed)
	runner, err := services.NewRunner(distance.NewGreatCircle(), sampler, cfg.Options())
	if err != nil {
		return err
	}

	logger.L().Info("optimizing hubs", "places", len(places), "seed", sampler.Seed(), "strategies", len(strategies))

	results, err := runner.RunStrategies(ctx, places, strategies)
	if err != nil {
		return err
	}

	if err := printReport(os.Stdout, results); err != nil {
		return fmt.Errorf("print report: %w", err)
	}

	if opts.SaveRuns != "" {
		if err := saveRuns(ctx, opts.SaveRuns, results); err != nil {
			return err
		}
	}

	return nil
}

// applyFlags lets explicit flags win over file and environment settings.
func applyFlags(cfg *config.Config, opts options) {
	if opts.PlacesPath != "" {
		cfg.PlacesPath = opts.PlacesPath
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed
	}
	if opts.MaxIterations != 0 {
		cfg.MaxIterations = opts.MaxIterations
	}
	if opts.Parallel {
		cfg.Parallel = true
	}
	if opts.Lenient {
		cfg.Strict = false
	}
}

func parseStrategies(names []string) ([]services.Strategy, error) {
	if len(names) == 0 {
		return services.AllStrategies, nil
	}
	out := make([]services.Strategy, 0, len(names))
	for _, n := range names {
		s, err := services.ParseStrategy(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func saveRuns(ctx context.Context, dsn string, results []domain.HubPlacement) error {
	conn, driver, err := db.OpenAny(dsn)
	if err != nil {
		return fmt.Errorf("save runs: %w", err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn, driver); err != nil {
		return fmt.Errorf("save runs: %w", err)
	}
	if err := repositories.NewSQLRunStore(conn, driver).SaveRuns(ctx, results); err != nil {
		return fmt.Errorf("save runs: %w", err)
	}

	logger.L().Info("runs saved", "count", len(results), "driver", driver)
	return nil
}
