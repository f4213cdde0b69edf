package domain

import "time"

type ChangeFrequency string

const (
	Weekly  ChangeFrequency = "weekly"
	Monthly ChangeFrequency = "monthly"
)

// RouteEntry is one indexable URL plus its sitemap metadata.
type RouteEntry struct {
	Path            string          `json:"path"` // no host
	LastModified    time.Time       `json:"lastModified"`
	ChangeFrequency ChangeFrequency `json:"changeFrequency"`
	Priority        float64         `json:"priority"`
}

type Locale string

const (
	English Locale = "en"
	Spanish Locale = "es"

	DefaultLocale   = English
	AlternateLocale = Spanish
)

// Home returns the root path for the locale.
func (l Locale) Home() string {
	if l == DefaultLocale {
		return "/"
	}
	return "/" + string(l)
}

func ParseLocale(s string) (Locale, bool) {
	switch Locale(s) {
	case English:
		return English, true
	case Spanish:
		return Spanish, true
	}
	return "", false
}

// CityPath is the canonical location page path for a city slug.
func CityPath(l Locale, slug string) string {
	if l == Spanish {
		return "/es/ubicaciones/" + slug
	}
	return "/locations/" + slug
}

// ArticlePath is the canonical resource page path for an article slug.
func ArticlePath(l Locale, slug string) string {
	if l == Spanish {
		return "/es/recursos/" + slug
	}
	return "/resources/" + slug
}
