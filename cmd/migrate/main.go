package main

import (
	"context"
	"flag"
	"time"

	mongoMigration "library/internal/migrations/mongo"
	pgMigration "library/internal/migrations/postgres"
	"library/pkg/config"
)

const JobName = "stocks-migration"

func main() {
	down := flag.Int("down", 0, "roll back N postgres migrations instead of applying")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting migration job", "storage_driver", cfg.StorageDriver)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		migratePostgres(cfg, *down)
	default:
		migrateMongo(ctx, cfg)
	}
	cfg.Log.Info("Migration completed successfully")
}

func migrateMongo(ctx context.Context, cfg *config.Config) {
	cfg.SetStore()
	defer cfg.GracefulShutdown()

	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}

func migratePostgres(cfg *config.Config, down int) {
	var err error
	if down > 0 {
		err = pgMigration.Down(cfg.PostgresDSN, down, cfg.Log)
	} else {
		err = pgMigration.Up(cfg.PostgresDSN, cfg.Log)
	}
	if err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}
