package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "eyecare_site/internal/adapters/http_server"
	"eyecare_site/internal/adapters/observability"
	redisad "eyecare_site/internal/adapters/redis"
	"eyecare_site/internal/app"
	"eyecare_site/internal/content"
	"eyecare_site/internal/domain"
	"eyecare_site/internal/shared"
	mysqlrepo "eyecare_site/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// content
	var src domain.ContentSource
	switch cfg.Source {
	case shared.SourceMySQL:
		db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("mysql connection failed")
		}
		defer db.Close()
		log.Info().Msg("database connection ok")
		src = mysqlrepo.New(db)
	default:
		emb, err := content.NewEmbedded()
		if err != nil {
			log.Fatal().Err(err).Msg("embedded content is invalid")
		}
		src = emb
	}

	// cache is optional; without Redis every request rebuilds the sitemap
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, continuing")
		}
		defer rc.Close()
		cache = rc
	}
	sitemap := app.NewSitemapService(src, cache, cfg.CacheTTL, cfg.BaseURL)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Sitemap:     sitemap,
		IndexNowKey: cfg.IndexNowKey,
		StaticDir:   cfg.StaticDir,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("source", cfg.Source).Str("base_url", cfg.BaseURL).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
