package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"eyecare_site/internal/adapters/indexnow"
	"eyecare_site/internal/adapters/observability"
	"eyecare_site/internal/app"
	"eyecare_site/internal/content"
	"eyecare_site/internal/domain"
	"eyecare_site/internal/shared"
	mysqlrepo "eyecare_site/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if err := newApp(cfg, os.Stdout).Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("sitemap generation failed")
	}
}

func newApp(cfg shared.Config, out io.Writer) *cli.App {
	return &cli.App{
		Name:  "sitemapgen",
		Usage: "write sitemap.xml into the public and dist directories",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Value: cfg.BaseURL, Usage: "absolute site URL used for <loc>"},
			&cli.StringFlag{Name: "public-dir", Value: cfg.PublicDir, Usage: "always written, created if missing"},
			&cli.StringFlag{Name: "dist-dir", Value: cfg.DistDir, Usage: "written only if the directory exists"},
			&cli.StringFlag{Name: "source", Value: cfg.Source, Usage: "content source: embedded or mysql"},
			&cli.IntFlag{Name: "samples", Value: 5, Usage: "sample URLs to print"},
			&cli.BoolFlag{Name: "indexnow", Usage: "submit every URL to IndexNow after writing"},
		},
		Action: func(c *cli.Context) error {
			return run(c.Context, cfg, c, out)
		},
	}
}

func run(ctx context.Context, cfg shared.Config, c *cli.Context, out io.Writer) error {
	src, closeSrc, err := openSource(ctx, c.String("source"), cfg.MySQLDSN)
	if err != nil {
		return err
	}
	defer closeSrc()

	base := c.String("base-url")
	svc := app.NewSitemapService(src, nil, 0, base)
	body, entries, err := svc.XML(ctx)
	if err != nil {
		return err
	}

	rep, err := app.WriteSitemap(body, c.String("public-dir"), c.String("dist-dir"))
	if err != nil {
		return err
	}
	for _, p := range rep.Skipped {
		log.Info().Str("path", p).Msg("directory missing, skipped")
	}

	sum := app.Summarize(base, entries, body, c.Int("samples"))
	fmt.Fprintf(out, "Sitemap generated with %d URLs (%s)\n", sum.URLCount, humanize.Bytes(uint64(sum.Bytes)))
	for _, p := range rep.Written {
		fmt.Fprintf(out, "  wrote %s\n", p)
	}
	if len(sum.Samples) > 0 {
		fmt.Fprintln(out, "Sample URLs:")
		for _, u := range sum.Samples {
			fmt.Fprintf(out, "  %s\n", u)
		}
	}

	if !c.Bool("indexnow") {
		return nil
	}
	client, err := indexnow.New(indexnow.Options{
		Endpoint:    cfg.IndexNowEndpoint,
		Host:        shared.HostOf(base),
		Key:         cfg.IndexNowKey,
		KeyLocation: app.AbsoluteURL(base, "/api/indexnow"),
		RPS:         cfg.IndexNowRPS,
	})
	if err != nil {
		return err
	}
	start := time.Now()
	n, err := svc.Submit(ctx, client)
	if err != nil {
		return err
	}
	log.Info().Int("urls", n).Dur("took", time.Since(start)).Msg("indexnow submission accepted")
	fmt.Fprintf(out, "Submitted %d URLs to IndexNow\n", n)
	return nil
}

func openSource(ctx context.Context, source, dsn string) (domain.ContentSource, func(), error) {
	if source == shared.SourceMySQL {
		db, err := mysqlrepo.Open(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return mysqlrepo.New(db), func() { _ = db.Close() }, nil
	}
	emb, err := content.NewEmbedded()
	if err != nil {
		return nil, nil, err
	}
	return emb, func() {}, nil
}
