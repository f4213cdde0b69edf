// Package content holds the hand-authored site collections (static routes,
// cities and articles in both languages) compiled into the binary.
package content

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"eyecare_site/internal/domain"
)

//go:embed data/*.yaml
var dataFS embed.FS

type localized[T any] struct {
	EN []T `yaml:"en"`
	ES []T `yaml:"es"`
}

// Embedded serves the collections parsed from the embedded YAML files.
type Embedded struct{ c domain.Collections }

// NewEmbedded parses and validates the embedded data once.
func NewEmbedded() (*Embedded, error) {
	c, err := Load()
	if err != nil {
		return nil, err
	}
	return &Embedded{c: c}, nil
}

func (e *Embedded) LoadCollections(ctx context.Context) (domain.Collections, error) {
	return e.c, nil
}

// Load parses the embedded data files and validates the result.
func Load() (domain.Collections, error) {
	var (
		static   localized[string]
		cities   localized[domain.City]
		articles localized[domain.Article]
	)
	if err := decode("data/static.yaml", &static); err != nil {
		return domain.Collections{}, err
	}
	if err := decode("data/cities.yaml", &cities); err != nil {
		return domain.Collections{}, err
	}
	if err := decode("data/articles.yaml", &articles); err != nil {
		return domain.Collections{}, err
	}
	c := domain.Collections{
		StaticEN:   static.EN,
		StaticES:   static.ES,
		CitiesEN:   cities.EN,
		CitiesES:   cities.ES,
		ArticlesEN: articles.EN,
		ArticlesES: articles.ES,
	}
	if err := Validate(c); err != nil {
		return domain.Collections{}, err
	}
	return c, nil
}

func decode(name string, dst any) error {
	b, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Validate reports the first defect that would produce a broken or
// duplicated sitemap entry. Errors wrap domain.ErrInvalidContent.
func Validate(c domain.Collections) error {
	seen := make(map[string]string, c.Size())
	add := func(path, origin string) error {
		if prev, ok := seen[path]; ok {
			return fmt.Errorf("%w: duplicate path %q (%s and %s)", domain.ErrInvalidContent, path, prev, origin)
		}
		seen[path] = origin
		return nil
	}

	for _, set := range []struct {
		locale domain.Locale
		paths  []string
	}{{domain.English, c.StaticEN}, {domain.Spanish, c.StaticES}} {
		for _, p := range set.paths {
			if !strings.HasPrefix(p, "/") {
				return fmt.Errorf("%w: static path %q must start with /", domain.ErrInvalidContent, p)
			}
			if err := add(p, "static:"+string(set.locale)); err != nil {
				return err
			}
		}
	}

	for _, set := range []struct {
		locale domain.Locale
		cities []domain.City
	}{{domain.English, c.CitiesEN}, {domain.Spanish, c.CitiesES}} {
		for i, city := range set.cities {
			if err := checkSlug(city.Slug); err != nil {
				return fmt.Errorf("%w: city %d (%s): %v", domain.ErrInvalidContent, i, set.locale, err)
			}
			if err := add(domain.CityPath(set.locale, city.Slug), "city:"+string(set.locale)); err != nil {
				return err
			}
		}
	}

	for _, set := range []struct {
		locale   domain.Locale
		articles []domain.Article
	}{{domain.English, c.ArticlesEN}, {domain.Spanish, c.ArticlesES}} {
		for i, a := range set.articles {
			if err := checkSlug(a.Slug); err != nil {
				return fmt.Errorf("%w: article %d (%s): %v", domain.ErrInvalidContent, i, set.locale, err)
			}
			if a.PublishDate.IsZero() {
				return fmt.Errorf("%w: article %q (%s) has no publish date", domain.ErrInvalidContent, a.Slug, set.locale)
			}
			if err := add(domain.ArticlePath(set.locale, a.Slug), "article:"+string(set.locale)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkSlug(s string) error {
	if s == "" {
		return fmt.Errorf("empty slug")
	}
	if strings.ContainsAny(s, "/?# ") {
		return fmt.Errorf("slug %q contains a reserved character", s)
	}
	return nil
}
