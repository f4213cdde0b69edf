package app_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"eyecare_site/internal/app"
	"eyecare_site/internal/content"
	"eyecare_site/internal/domain"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func fixture() domain.Collections {
	return domain.Collections{
		StaticEN: []string{"/", "/about", "/contact"},
		StaticES: []string{"/es", "/es/contacto"},
		CitiesEN: []domain.City{{Slug: "mcallen", Name: "McAllen"}, {Slug: "edinburg", Name: "Edinburg"}},
		CitiesES: []domain.City{{Slug: "mcallen", Name: "McAllen"}},
		ArticlesEN: []domain.Article{
			{Slug: "what-is-a-cataract", PublishDate: day(2024, 2, 12)},
			{Slug: "lasik-vs-prk", PublishDate: day(2024, 3, 5)},
		},
		ArticlesES: []domain.Article{{Slug: "que-es-una-catarata", PublishDate: day(2024, 2, 19)}},
	}
}

func TestBuildSitemap_OneEntryPerInput(t *testing.T) {
	c := fixture()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	out := app.BuildSitemap(c, now)

	if len(out) != c.Size() {
		t.Fatalf("len=%d want %d", len(out), c.Size())
	}
	seen := map[string]bool{}
	for _, e := range out {
		if seen[e.Path] {
			t.Fatalf("duplicate path %s", e.Path)
		}
		seen[e.Path] = true
	}
}

func TestBuildSitemap_Order(t *testing.T) {
	out := app.BuildSitemap(fixture(), time.Now())
	want := []string{
		"/", "/about", "/contact",
		"/es", "/es/contacto",
		"/locations/mcallen", "/locations/edinburg",
		"/es/ubicaciones/mcallen",
		"/resources/what-is-a-cataract", "/resources/lasik-vs-prk",
		"/es/recursos/que-es-una-catarata",
	}
	got := make([]string, len(out))
	for i, e := range out {
		got[i] = e.Path
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}
}

func TestBuildSitemap_PriorityAndFrequency(t *testing.T) {
	for _, e := range app.BuildSitemap(fixture(), time.Now()) {
		if e.Priority < 0 || e.Priority > 1 {
			t.Fatalf("%s: priority %v out of range", e.Path, e.Priority)
		}
		var wantPrio float64
		var wantFreq domain.ChangeFrequency
		switch {
		case e.Path == "/" || e.Path == "/es":
			wantPrio, wantFreq = 1.0, domain.Weekly
		case strings.HasPrefix(e.Path, "/locations/") || strings.HasPrefix(e.Path, "/es/ubicaciones/"):
			wantPrio, wantFreq = 0.9, domain.Monthly
		case strings.HasPrefix(e.Path, "/resources/") || strings.HasPrefix(e.Path, "/es/recursos/"):
			wantPrio, wantFreq = 0.8, domain.Monthly
		default:
			wantPrio, wantFreq = 0.8, domain.Weekly
		}
		if e.Priority != wantPrio || e.ChangeFrequency != wantFreq {
			t.Fatalf("%s: got (%v,%s) want (%v,%s)", e.Path, e.Priority, e.ChangeFrequency, wantPrio, wantFreq)
		}
	}
}

func TestBuildSitemap_LastModified(t *testing.T) {
	c := fixture()
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	published := map[string]time.Time{}
	for _, a := range c.ArticlesEN {
		published[domain.ArticlePath(domain.English, a.Slug)] = a.PublishDate
	}
	for _, a := range c.ArticlesES {
		published[domain.ArticlePath(domain.Spanish, a.Slug)] = a.PublishDate
	}

	for _, e := range app.BuildSitemap(c, now) {
		if pd, ok := published[e.Path]; ok {
			if !e.LastModified.Equal(pd) {
				t.Fatalf("%s: lastModified %v want publish date %v", e.Path, e.LastModified, pd)
			}
			continue
		}
		if !e.LastModified.Equal(now) {
			t.Fatalf("%s: lastModified %v want build time %v", e.Path, e.LastModified, now)
		}
	}
}

func TestBuildSitemap_IdempotentExceptNow(t *testing.T) {
	c := fixture()
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(36 * time.Hour)

	a := app.BuildSitemap(c, t1)
	b := app.BuildSitemap(c, t1)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same inputs differ:\n%s", diff)
	}

	later := app.BuildSitemap(c, t2)
	for i := range later {
		if later[i].LastModified.Equal(t2) {
			later[i].LastModified = t1
		}
	}
	if diff := cmp.Diff(a, later); diff != "" {
		t.Fatalf("builds differ beyond the now field:\n%s", diff)
	}
}

func TestBuildSitemap_EmbeddedContent(t *testing.T) {
	c, err := content.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	out := app.BuildSitemap(c, time.Now())
	want := len(c.StaticEN) + len(c.StaticES) + len(c.CitiesEN) + len(c.CitiesES) + len(c.ArticlesEN) + len(c.ArticlesES)
	if len(out) != want {
		t.Fatalf("len=%d want %d", len(out), want)
	}
	homes := 0
	for _, e := range out {
		if e.Priority == app.HomePriority {
			homes++
		}
	}
	if homes != 2 {
		t.Fatalf("expected exactly two home entries at priority 1.0, got %d", homes)
	}
}

func TestRenderSitemapXML(t *testing.T) {
	entries := []domain.RouteEntry{
		{Path: "/", LastModified: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), ChangeFrequency: domain.Weekly, Priority: 1},
		{Path: "/es/ubicaciones/mcallen", LastModified: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), ChangeFrequency: domain.Monthly, Priority: 0.9},
	}
	body, err := app.RenderSitemapXML("https://example.com/", entries)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	out := string(body)
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`,
		`<loc>https://example.com/</loc>`,
		`<loc>https://example.com/es/ubicaciones/mcallen</loc>`,
		`<lastmod>2026-10-18T00:00:00Z</lastmod>`,
		`<changefreq>monthly</changefreq>`,
		`<priority>1.0</priority>`,
		`<priority>0.9</priority>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "<url>"); n != 2 {
		t.Fatalf("url count=%d want 2", n)
	}
}
