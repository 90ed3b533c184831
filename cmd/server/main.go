package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/abhaypanjeta/TimeDesk/internal/auth"
	"github.com/abhaypanjeta/TimeDesk/internal/config"
	"github.com/abhaypanjeta/TimeDesk/internal/handler"
	"github.com/abhaypanjeta/TimeDesk/internal/middleware"
	"github.com/abhaypanjeta/TimeDesk/internal/store"
	"github.com/abhaypanjeta/TimeDesk/internal/timezone"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := newLogger(cfg.LogLevel)

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Error("db", "err", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Error("db ping", "err", err)
		os.Exit(1)
	}
	log.Info("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile("db/migrations/001_init.sql"); err != nil {
		log.Warn("migration file not found, skipping", "err", err)
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		log.Warn("migration", "err", err)
	} else {
		log.Info("migration applied")
	}

	st := store.New(pool)
	mgr := auth.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tz, err := timezone.NewResolver(st, cfg.DefaultTimezone)
	if err != nil {
		log.Error("timezone", "err", err)
		os.Exit(1)
	}
	h := handler.New(st, mgr, tz, log)
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// nightly refresh-token purge
	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := st.PurgeRefreshTokens(ctx, time.Now().Add(-cfg.RefreshTokenTTL))
		if err != nil {
			log.Error("token purge", "err", err)
			return
		}
		log.Info("token purge", "removed", n)
	}); err != nil {
		log.Error("cron", "err", err)
		os.Exit(1)
	}
	c.Start()
	defer c.Stop()

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.Routes(rl),
	}
	go func() {
		log.Info("http listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http", "err", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
