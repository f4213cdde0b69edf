package main

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"eyecare_site/internal/adapters/observability"
	redisad "eyecare_site/internal/adapters/redis"
	"eyecare_site/internal/app"
	"eyecare_site/internal/content"
	"eyecare_site/internal/domain"
	"eyecare_site/internal/shared"
	mysqlrepo "eyecare_site/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	coll, err := content.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("embedded content is invalid")
	}
	log.Info().
		Int("workers", cfg.SyncWorkers).
		Int("routes", coll.Size()).
		Msg("content sync starting")

	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("mysql connection failed")
	}
	defer db.Close()
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}
	syncer := app.NewContentSyncService(repo, cache)

	if err := syncer.SyncStatic(ctx, coll); err != nil {
		log.Fatal().Err(err).Msg("static routes sync failed")
	}

	workers := cfg.SyncWorkers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, it := range app.SyncItems(coll) {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(it app.SyncItem) {
			defer wg.Done()
			defer sem.Release(1)

			if err := syncer.SyncItem(ctx, it); err != nil {
				failed.Add(1)
				log.Warn().Str("kind", string(it.Kind)).Str("locale", string(it.Locale)).
					Str("slug", it.Slug()).Err(err).Msg("sync failed")
				return
			}
			log.Debug().Str("kind", string(it.Kind)).Str("locale", string(it.Locale)).
				Str("slug", it.Slug()).Msg("sync ok")
		}(it)
	}
	wg.Wait()

	// prune only after a clean pass
	if failed.Load() == 0 {
		n, err := syncer.Prune(ctx, coll)
		if err != nil {
			failed.Add(1)
			log.Warn().Err(err).Msg("prune failed")
		} else {
			log.Info().Int64("removed", n).Msg("stale content pruned")
		}
	}

	if err := syncer.Finish(ctx); err != nil {
		log.Warn().Err(err).Msg("sitemap cache eviction failed")
	}
	if n := failed.Load(); n > 0 {
		log.Fatal().Int32("failed", n).Msg("content sync finished with errors")
	}
	log.Info().Msg("content sync completed")
}
