package main

import (
	"context"
	"time"

	"newsagency.com/newsroom/internal/bootstrap"
	"newsagency.com/newsroom/internal/config"
	"newsagency.com/newsroom/internal/server"
	"newsagency.com/newsroom/pkg/database"
	"newsagency.com/newsroom/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)

	db, err := database.Connect(cfg.DatabaseDSN(), !cfg.IsProduction())
	if err != nil {
		logger.Log.WithField("database", cfg.RedactedDatabaseURL()).Fatalf("%v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		logger.Log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminRedactor(db, cfg.AdminPassword); err != nil {
			logger.Log.Fatalf("failed to seed admin redactor: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := database.ConnectRedis(ctx, cfg.RedisURL)
	cancel()
	if err != nil {
		logger.Log.Fatalf("%v", err)
	}
	if redisClient == nil {
		logger.Log.Warn("REDIS_URL not set, visit counters are kept in memory")
	} else {
		defer redisClient.Close()
	}

	srv := server.NewServer(cfg, db, redisClient)

	logger.Log.WithField("port", cfg.Port).Info("Starting server")
	if err := srv.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("server exited with error: %v", err)
	}
}
