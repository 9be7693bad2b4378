package main

import (
	"context"
	"database/sql"
	"delivery-hub-service/internal/adapters/placefile"
	"delivery-hub-service/internal/adapters/repositories"
	"delivery-hub-service/internal/config"
	"delivery-hub-service/internal/platform/db"
	"delivery-hub-service/internal/platform/logger"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	log := logger.Setup()
	if envErr != nil {
		log.Info("no .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Error("open database failed", "err", err)
		os.Exit(1)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/places.csv")
	lenient := config.Get("HUBOPT_STRICT", "true") == "false"
	if err := initAndSeed(context.Background(), conn, seedPath, lenient); err != nil {
		log.Error("init and seed failed", "err", err)
		conn.Close()
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string, lenient bool) error {
	log := logger.L()

	log.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn, db.DriverPostgres); err != nil {
		return err
	}
	log.Info("schema ready")

	places, err := placefile.LoadFile(ctx, seedPath, placefile.Options{Lenient: lenient})
	if err != nil {
		return err
	}

	log.Info("seeding places", "path", seedPath, "count", len(places))
	if err := repositories.SeedPlaces(ctx, conn, db.DriverPostgres, places); err != nil {
		return err
	}
	log.Info("seeding complete")

	return nil
}
