package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"eyecare_site/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Repo stores the site collections so editors can change cities and articles
// without a rebuild.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

// UpsertStatic replaces the static route list of one locale atomically.
func (r *Repo) UpsertStatic(ctx context.Context, locale domain.Locale, paths []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteStaticSQL, string(locale)); err != nil {
		return err
	}
	for i, p := range paths {
		if _, err := tx.ExecContext(ctx, insertStaticSQL, string(locale), p, i); err != nil {
			return fmt.Errorf("insert static %s: %w", p, err)
		}
	}
	return tx.Commit()
}

func (r *Repo) UpsertCity(ctx context.Context, locale domain.Locale, position int, c domain.City) error {
	_, err := r.db.ExecContext(ctx, upsertCitySQL,
		string(locale),
		c.Slug,
		c.Name,
		valStr(c.Region),
		position,
	)
	return err
}

func (r *Repo) UpsertArticle(ctx context.Context, locale domain.Locale, position int, a domain.Article) error {
	_, err := r.db.ExecContext(ctx, upsertArticleSQL,
		string(locale),
		a.Slug,
		a.Title,
		a.PublishDate.UTC(),
		position,
	)
	return err
}

// DeleteCitiesNotIn removes the cities of locale that are no longer authored.
func (r *Repo) DeleteCitiesNotIn(ctx context.Context, locale domain.Locale, slugs []string) (int64, error) {
	return r.deleteNotIn(ctx, deleteCitiesSQL, locale, slugs)
}

// DeleteArticlesNotIn removes the articles of locale that are no longer authored.
func (r *Repo) DeleteArticlesNotIn(ctx context.Context, locale domain.Locale, slugs []string) (int64, error) {
	return r.deleteNotIn(ctx, deleteArticlesSQL, locale, slugs)
}

func (r *Repo) deleteNotIn(ctx context.Context, base string, locale domain.Locale, slugs []string) (int64, error) {
	q := base
	args := make([]any, 0, len(slugs)+1)
	args = append(args, string(locale))
	if len(slugs) > 0 {
		q += " AND slug NOT IN (?" + strings.Repeat(", ?", len(slugs)-1) + ")"
		for _, s := range slugs {
			args = append(args, s)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func (r *Repo) LoadCollections(ctx context.Context) (domain.Collections, error) {
	var c domain.Collections

	rows, err := r.db.QueryContext(ctx, listStaticSQL)
	if err != nil {
		return c, err
	}
	for rows.Next() {
		var loc, path string
		if err := rows.Scan(&loc, &path); err != nil {
			rows.Close()
			return c, err
		}
		switch domain.Locale(loc) {
		case domain.English:
			c.StaticEN = append(c.StaticEN, path)
		case domain.Spanish:
			c.StaticES = append(c.StaticES, path)
		}
	}
	if err := closeRows(rows); err != nil {
		return c, err
	}

	rows, err = r.db.QueryContext(ctx, listCitiesSQL)
	if err != nil {
		return c, err
	}
	for rows.Next() {
		var loc string
		var city domain.City
		var region sql.NullString
		if err := rows.Scan(&loc, &city.Slug, &city.Name, &region); err != nil {
			rows.Close()
			return c, err
		}
		city.Region = region.String
		switch domain.Locale(loc) {
		case domain.English:
			c.CitiesEN = append(c.CitiesEN, city)
		case domain.Spanish:
			c.CitiesES = append(c.CitiesES, city)
		}
	}
	if err := closeRows(rows); err != nil {
		return c, err
	}

	rows, err = r.db.QueryContext(ctx, listArticlesSQL)
	if err != nil {
		return c, err
	}
	for rows.Next() {
		var loc string
		var a domain.Article
		var published time.Time
		if err := rows.Scan(&loc, &a.Slug, &a.Title, &published); err != nil {
			rows.Close()
			return c, err
		}
		a.PublishDate = published.UTC()
		switch domain.Locale(loc) {
		case domain.English:
			c.ArticlesEN = append(c.ArticlesEN, a)
		case domain.Spanish:
			c.ArticlesES = append(c.ArticlesES, a)
		}
	}
	if err := closeRows(rows); err != nil {
		return c, err
	}

	if c.Size() == 0 {
		return c, fmt.Errorf("content tables are empty: %w", domain.ErrNotFound)
	}
	return c, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

// Open connects with the go-sql-driver and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}
