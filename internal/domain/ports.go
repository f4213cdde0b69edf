package domain

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidContent = errors.New("invalid content")
	ErrWriteFailure   = errors.New("sitemap write failed")
)

// ContentSource supplies the collections a sitemap is built from.
type ContentSource interface {
	LoadCollections(ctx context.Context) (Collections, error)
}

// ContentRepository is the writable side used by the content sync command.
type ContentRepository interface {
	ContentSource
	UpsertStatic(ctx context.Context, locale Locale, paths []string) error
	// position orders items within their language collection
	UpsertCity(ctx context.Context, locale Locale, position int, c City) error
	UpsertArticle(ctx context.Context, locale Locale, position int, a Article) error
	// DeleteCitiesNotIn and DeleteArticlesNotIn remove rows of locale whose
	// slug is not listed and report how many were removed.
	DeleteCitiesNotIn(ctx context.Context, locale Locale, slugs []string) (int64, error)
	DeleteArticlesNotIn(ctx context.Context, locale Locale, slugs []string) (int64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// URLSubmitter pushes changed URLs to a search engine notification endpoint.
type URLSubmitter interface {
	Submit(ctx context.Context, urls []string) error
}
