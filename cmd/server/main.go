package main

import (
	"context"
	"database/sql"
	"delivery-hub-service/internal/adapters/cache"
	"delivery-hub-service/internal/adapters/distance"
	"delivery-hub-service/internal/adapters/placefile"
	"delivery-hub-service/internal/adapters/random"
	"delivery-hub-service/internal/adapters/repositories"
	"delivery-hub-service/internal/api"
	"delivery-hub-service/internal/config"
	"delivery-hub-service/internal/platform/db"
	"delivery-hub-service/internal/platform/logger"
	"delivery-hub-service/internal/platform/metrics"
	"delivery-hub-service/internal/ports"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (SQL, Redis) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()
	log := logger.Setup()
	if envErr != nil {
		log.Info("no .env file found (using environment variables)")
	}

	if err := run(); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.L()

	cfg, err := config.Load(config.Get("HUBOPT_CONFIG", ""))
	if err != nil {
		return err
	}

	dsn := config.Get("DATABASE_URL", config.Get("DB_PATH", "data/app.db"))
	seedPath := config.Get("SEED_PATH", cfg.PlacesPath)
	port := config.Get("PORT", "8080")

	conn, driver, err := db.OpenAny(dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize schema and seed place data on startup for local runs.
	if err := initAndSeed(ctx, conn, driver, seedPath, !cfg.Strict); err != nil {
		return err
	}

	redisClient := cache.OpenRedis(cfg.RedisAddr, os.Getenv("REDIS_PASSWORD"), cfg.RedisDB)
	var resultCache ports.ResultCache
	if redisClient != nil {
		defer redisClient.Close()
		resultCache = cache.NewRedisResultCache(redisClient, cfg.CacheTTL)
		log.Info("result cache enabled", "addr", redisClient.Options().Addr, "ttl", cfg.CacheTTL)
	}

	metrics.RegisterDefault()

	router := api.NewRouter(api.Config{
		Places:     repositories.NewSQLPlaceRepository(conn, driver),
		Runs:       repositories.NewSQLRunStore(conn, driver),
		Cache:      resultCache,
		Distance:   distance.NewGreatCircle(),
		NewSampler: func(seed uint64) ports.Sampler { return random.NewUniformSampler(seed) },
		Options:    cfg.Options(),
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.RateBurst,
	})

	// Write timeout leaves room for large place sets on the optimize route.
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "driver", driver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func initAndSeed(ctx context.Context, conn *sql.DB, driver, seedPath string, lenient bool) error {
	if err := repositories.InitSchema(ctx, conn, driver); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	places, err := placefile.LoadFile(ctx, seedPath, placefile.Options{Lenient: lenient})
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedPlaces(ctx, conn, driver, places); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
