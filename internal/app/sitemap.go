package app

import (
	"time"

	"eyecare_site/internal/domain"
)

const (
	HomePriority    = 1.0
	CityPriority    = 0.9
	DefaultPriority = 0.8
)

// BuildSitemap turns the site collections into sitemap entries, in order:
// static EN, static ES, cities EN, cities ES, articles EN, articles ES.
// Static and city pages are stamped with now; articles keep their publish date.
func BuildSitemap(c domain.Collections, now time.Time) []domain.RouteEntry {
	out := make([]domain.RouteEntry, 0, c.Size())

	for _, set := range []struct {
		locale domain.Locale
		paths  []string
	}{{domain.English, c.StaticEN}, {domain.Spanish, c.StaticES}} {
		home := set.locale.Home()
		for _, p := range set.paths {
			prio := DefaultPriority
			if p == home {
				prio = HomePriority
			}
			out = append(out, domain.RouteEntry{
				Path:            p,
				LastModified:    now,
				ChangeFrequency: domain.Weekly,
				Priority:        prio,
			})
		}
	}

	for _, set := range []struct {
		locale domain.Locale
		cities []domain.City
	}{{domain.English, c.CitiesEN}, {domain.Spanish, c.CitiesES}} {
		for _, city := range set.cities {
			out = append(out, domain.RouteEntry{
				Path:            domain.CityPath(set.locale, city.Slug),
				LastModified:    now,
				ChangeFrequency: domain.Monthly,
				Priority:        CityPriority,
			})
		}
	}

	for _, set := range []struct {
		locale   domain.Locale
		articles []domain.Article
	}{{domain.English, c.ArticlesEN}, {domain.Spanish, c.ArticlesES}} {
		for _, a := range set.articles {
			out = append(out, domain.RouteEntry{
				Path:            domain.ArticlePath(set.locale, a.Slug),
				LastModified:    a.PublishDate,
				ChangeFrequency: domain.Monthly,
				Priority:        DefaultPriority,
			})
		}
	}

	return out
}
