package content_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"eyecare_site/internal/content"
	"eyecare_site/internal/domain"
)

func TestLoad_EmbeddedDataIsValid(t *testing.T) {
	c, err := content.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.StaticEN) == 0 || len(c.StaticES) == 0 {
		t.Fatalf("expected static routes in both languages, got en=%d es=%d", len(c.StaticEN), len(c.StaticES))
	}
	if len(c.CitiesEN) == 0 || len(c.ArticlesEN) == 0 {
		t.Fatalf("expected cities and articles, got %+v", c)
	}
	if c.StaticEN[0] != "/" || c.StaticES[0] != "/es" {
		t.Fatalf("home paths should lead the static lists: %q %q", c.StaticEN[0], c.StaticES[0])
	}
	for _, a := range append(c.ArticlesEN, c.ArticlesES...) {
		if a.PublishDate.IsZero() {
			t.Fatalf("article %s parsed without publish date", a.Slug)
		}
	}
}

func TestEmbedded_LoadCollections(t *testing.T) {
	src, err := content.NewEmbedded()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	c, err := src.LoadCollections(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Size() == 0 {
		t.Fatalf("empty collections")
	}
}

func TestValidate_Rejects(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	cases := map[string]domain.Collections{
		"relative static": {StaticEN: []string{"about"}},
		"duplicate static": {StaticEN: []string{"/", "/about", "/about"}},
		"duplicate city slug": {CitiesES: []domain.City{{Slug: "mcallen"}, {Slug: "mcallen"}}},
		"empty slug":          {CitiesEN: []domain.City{{Name: "Nowhere"}}},
		"slash in slug":       {ArticlesEN: []domain.Article{{Slug: "a/b", PublishDate: day}}},
		"missing publish":     {ArticlesES: []domain.Article{{Slug: "que-es"}}},
		"static shadows city": {
			StaticEN: []string{"/locations/mcallen"},
			CitiesEN: []domain.City{{Slug: "mcallen"}},
		},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			err := content.Validate(c)
			if !errors.Is(err, domain.ErrInvalidContent) {
				t.Fatalf("expected ErrInvalidContent, got %v", err)
			}
		})
	}
}

func TestValidate_SameSlugAcrossLanguages(t *testing.T) {
	c := domain.Collections{
		CitiesEN: []domain.City{{Slug: "mcallen"}},
		CitiesES: []domain.City{{Slug: "mcallen"}},
	}
	if err := content.Validate(c); err != nil {
		t.Fatalf("slugs only need to be unique per language: %v", err)
	}
}
