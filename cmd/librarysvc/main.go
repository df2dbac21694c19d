package main

import (
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"librarysvc/internal/app"
	"librarysvc/internal/config"
	"librarysvc/internal/ratelimit"
	"librarysvc/internal/server"
	"librarysvc/internal/util"
)

func main() {
	// Local development reads DATABASE_URL and friends from .env.
	_ = godotenv.Load()

	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	appCore, err := app.New(app.Config{DatabaseURL: cfg.DatabaseURL})
	if err != nil {
		log.Fatalf("failed to init app: %v", err)
	}

	var writeLimiter *ratelimit.Limiter
	if cfg.RedisAddr != "" {
		writeLimiter, err = ratelimit.NewFromAddr(
			cfg.RedisAddr,
			cfg.RedisPassword,
			"librarysvc:ratelimit:write",
			cfg.WriteRateLimit,
			time.Duration(cfg.WriteRateWindowSeconds)*time.Second,
		)
		if err != nil {
			log.Fatalf("failed to init rate limiter: %v", err)
		}
	}

	httpServer := server.New(server.Config{
		App:          appCore,
		WriteLimiter: writeLimiter,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("library server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
	}
}
