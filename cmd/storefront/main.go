package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	applog "storefront/internal/log"
	"storefront/internal/metrics"
	"storefront/internal/repos"
	"storefront/internal/storage"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	var sinks []io.Writer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			applog.Logger().Warn().Err(err).Str("file", cfg.LogFile).Msg("could not open log file")
		} else {
			sinks = append(sinks, f)
			defer f.Close()
		}
	}
	applog.Init(cfg.LogLevel, cfg.Development(), sinks...)
	lg := applog.Logger()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		lg.Fatal().Err(err).Str("dsn", cfg.DBDSN).Msg("open database")
	}
	defer db.Close()
	if cfg.DBDSN != ":memory:" {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}

	store, err := newStore(cfg)
	if err != nil {
		lg.Fatal().Err(err).Msg("init upload store")
	}

	deps, err := handlers.NewDeps(db, store)
	if err != nil {
		lg.Fatal().Err(err).Msg("prepare statements")
	}

	ctx := context.Background()
	if err := deps.Auth.SeedAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		lg.Fatal().Err(err).Msg("seed admin")
	}
	if cfg.SeedDemo {
		n, err := deps.Catalog.SeedDemo(ctx)
		if err != nil {
			lg.Fatal().Err(err).Msg("seed demo catalog")
		}
		if n > 0 {
			lg.Info().Int("products", n).Msg("seeded demo catalog")
		}
	}

	app := handlers.NewApp(cfg, deps, metrics.NewHTTP())

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		lg.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			lg.Error().Err(err).Msg("shutdown")
		}
	}()

	lg.Info().Str("port", cfg.Port).Str("static", cfg.StaticDir).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		lg.Fatal().Err(err).Msg("listen")
	}
}

// newStore picks S3 when a bucket is configured, else the public static dir.
func newStore(cfg config.Config) (storage.Store, error) {
	if cfg.S3.Bucket != "" {
		s3, err := storage.NewS3Store(cfg.S3.Bucket, cfg.S3.Region, cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey, "images/products", cfg.S3.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return s3, nil
	}
	dir := filepath.Join(cfg.StaticDir, "images", "products")
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return storage.NewLocalStore(dir, "/images/products"), nil
}
