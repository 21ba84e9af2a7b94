package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/marco0212/wedding-tracker/internal/config"
	"github.com/marco0212/wedding-tracker/internal/database"
	"github.com/marco0212/wedding-tracker/internal/router"
	"github.com/marco0212/wedding-tracker/pkg/logging"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// local .env overrides come before viper reads the environment
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	db, err := database.Init(cfg.Database)
	if err != nil {
		slog.Error("init database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	r := router.SetupRouter(cfg, db)

	// optional self-ping so free-tier hosts don't idle the instance;
	// operational concern only, nothing downstream depends on it
	if cfg.KeepAlive.URL != "" {
		go keepAlive(cfg.KeepAlive, db)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	slog.Info("server listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		slog.Error("run server", "error", err)
		os.Exit(1)
	}
}

func keepAlive(cfg config.KeepAliveConfig, db *gorm.DB) {
	interval := time.Duration(cfg.IntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 14 * time.Minute
	}
	slog.Info("keep-alive enabled", "url", cfg.URL, "interval", interval)

	client := &http.Client{Timeout: 10 * time.Second}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Ping()
		}
		resp, err := client.Get(cfg.URL + "/health")
		if err != nil {
			slog.Warn("keep-alive ping failed", "error", err)
			continue
		}
		resp.Body.Close()
	}
}
