package app

import (
	"context"
	"fmt"

	"eyecare_site/internal/domain"
)

type SyncKind string

const (
	SyncCity    SyncKind = "city"
	SyncArticle SyncKind = "article"
)

// SyncItem is one city or article to copy into the content repository.
type SyncItem struct {
	Kind     SyncKind
	Locale   domain.Locale
	Position int
	City     domain.City
	Article  domain.Article
}

func (it SyncItem) Slug() string {
	if it.Kind == SyncArticle {
		return it.Article.Slug
	}
	return it.City.Slug
}

// SyncItems flattens the dynamic collections into independent work items.
func SyncItems(c domain.Collections) []SyncItem {
	items := make([]SyncItem, 0, len(c.CitiesEN)+len(c.CitiesES)+len(c.ArticlesEN)+len(c.ArticlesES))
	for i, city := range c.CitiesEN {
		items = append(items, SyncItem{Kind: SyncCity, Locale: domain.English, Position: i, City: city})
	}
	for i, city := range c.CitiesES {
		items = append(items, SyncItem{Kind: SyncCity, Locale: domain.Spanish, Position: i, City: city})
	}
	for i, a := range c.ArticlesEN {
		items = append(items, SyncItem{Kind: SyncArticle, Locale: domain.English, Position: i, Article: a})
	}
	for i, a := range c.ArticlesES {
		items = append(items, SyncItem{Kind: SyncArticle, Locale: domain.Spanish, Position: i, Article: a})
	}
	return items
}

type ContentSyncService struct {
	repo  domain.ContentRepository
	cache domain.Cache
}

func NewContentSyncService(r domain.ContentRepository, cache domain.Cache) *ContentSyncService {
	return &ContentSyncService{repo: r, cache: cache}
}

// SyncStatic replaces the static route list of both languages.
func (s *ContentSyncService) SyncStatic(ctx context.Context, c domain.Collections) error {
	if err := s.repo.UpsertStatic(ctx, domain.English, c.StaticEN); err != nil {
		return fmt.Errorf("upsert static en: %w", err)
	}
	if err := s.repo.UpsertStatic(ctx, domain.Spanish, c.StaticES); err != nil {
		return fmt.Errorf("upsert static es: %w", err)
	}
	return nil
}

func (s *ContentSyncService) SyncItem(ctx context.Context, it SyncItem) error {
	var err error
	switch it.Kind {
	case SyncCity:
		err = s.repo.UpsertCity(ctx, it.Locale, it.Position, it.City)
	case SyncArticle:
		err = s.repo.UpsertArticle(ctx, it.Locale, it.Position, it.Article)
	default:
		return fmt.Errorf("unknown sync kind %q", it.Kind)
	}
	if err != nil {
		return fmt.Errorf("upsert %s %s/%s: %w", it.Kind, it.Locale, it.Slug(), err)
	}
	return nil
}

// Prune deletes cities and articles that are no longer part of c, so the
// repository holds exactly the synced set. It returns the number of rows removed.
func (s *ContentSyncService) Prune(ctx context.Context, c domain.Collections) (int64, error) {
	var total int64
	for _, set := range []struct {
		locale   domain.Locale
		cities   []domain.City
		articles []domain.Article
	}{{domain.English, c.CitiesEN, c.ArticlesEN}, {domain.Spanish, c.CitiesES, c.ArticlesES}} {
		slugs := make([]string, len(set.cities))
		for i, city := range set.cities {
			slugs[i] = city.Slug
		}
		n, err := s.repo.DeleteCitiesNotIn(ctx, set.locale, slugs)
		if err != nil {
			return total, fmt.Errorf("prune cities %s: %w", set.locale, err)
		}
		total += n

		slugs = make([]string, len(set.articles))
		for i, a := range set.articles {
			slugs[i] = a.Slug
		}
		n, err = s.repo.DeleteArticlesNotIn(ctx, set.locale, slugs)
		if err != nil {
			return total, fmt.Errorf("prune articles %s: %w", set.locale, err)
		}
		total += n
	}
	return total, nil
}

// Finish evicts the cached sitemap so the next request sees the new content.
func (s *ContentSyncService) Finish(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, sitemapCacheKey)
}
