package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"eyecare_site/internal/adapters/observability"
	"eyecare_site/internal/domain"
)

const sitemapCacheKey = "sitemap:entries"

type SitemapService struct {
	src      domain.ContentSource
	cache    domain.Cache
	cacheTTL time.Duration
	baseURL  string
	now      func() time.Time
	flight   singleflight.Group
}

func NewSitemapService(src domain.ContentSource, cache domain.Cache, ttl time.Duration, baseURL string) *SitemapService {
	return &SitemapService{src: src, cache: cache, cacheTTL: ttl, baseURL: baseURL, now: time.Now}
}

// WithClock replaces the build-time clock. Used by tests and the sitemap command.
func (s *SitemapService) WithClock(now func() time.Time) *SitemapService {
	s.now = now
	return s
}

func (s *SitemapService) BaseURL() string { return s.baseURL }

// Entries returns the current sitemap, from cache when possible. Concurrent
// misses share a single build.
func (s *SitemapService) Entries(ctx context.Context) ([]domain.RouteEntry, error) {
	var cached []domain.RouteEntry
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, sitemapCacheKey, &cached); ok {
			return cached, nil
		}
	}

	v, err, _ := s.flight.Do(sitemapCacheKey, func() (any, error) {
		// detach so one caller's cancellation doesn't fail the others
		bctx := context.WithoutCancel(ctx)
		c, err := s.src.LoadCollections(bctx)
		if err != nil {
			return nil, fmt.Errorf("load collections: %w", err)
		}
		entries := BuildSitemap(c, s.now().UTC())
		observability.ObserveSitemapBuild(len(entries))
		if s.cache != nil {
			_ = s.cache.Set(bctx, sitemapCacheKey, entries, int(s.cacheTTL.Seconds()))
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	// copy so callers can't mutate the slice shared by the flight
	shared := v.([]domain.RouteEntry)
	out := make([]domain.RouteEntry, len(shared))
	copy(out, shared)
	return out, nil
}

// XML renders the current sitemap document.
func (s *SitemapService) XML(ctx context.Context) ([]byte, []domain.RouteEntry, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, nil, err
	}
	body, err := RenderSitemapXML(s.baseURL, entries)
	if err != nil {
		return nil, nil, fmt.Errorf("render sitemap: %w", err)
	}
	return body, entries, nil
}

// URLs returns the absolute URL of every sitemap entry.
func (s *SitemapService) URLs(ctx context.Context) ([]string, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]string, len(entries))
	for i, e := range entries {
		urls[i] = AbsoluteURL(s.baseURL, e.Path)
	}
	return urls, nil
}

// Invalidate drops the cached sitemap so the next request rebuilds it.
func (s *SitemapService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, sitemapCacheKey)
}

// Submit pushes every sitemap URL to the given submitter.
func (s *SitemapService) Submit(ctx context.Context, sub domain.URLSubmitter) (int, error) {
	urls, err := s.URLs(ctx)
	if err != nil {
		return 0, err
	}
	if err := sub.Submit(ctx, urls); err != nil {
		return 0, fmt.Errorf("submit urls: %w", err)
	}
	return len(urls), nil
}
