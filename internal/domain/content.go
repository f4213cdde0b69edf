package domain

import "time"

type City struct {
	Slug   string `yaml:"slug" json:"slug"`
	Name   string `yaml:"name" json:"name"`
	Region string `yaml:"region" json:"region"`
}

type Article struct {
	Slug        string    `yaml:"slug" json:"slug"`
	Title       string    `yaml:"title" json:"title"`
	PublishDate time.Time `yaml:"publishDate" json:"publishDate"`
}

// Collections is every input the sitemap needs: the hand-authored static
// routes plus the per-language city and article lists.
type Collections struct {
	StaticEN   []string
	StaticES   []string
	CitiesEN   []City
	CitiesES   []City
	ArticlesEN []Article
	ArticlesES []Article
}

// Size is the number of routes a sitemap built from c contains.
func (c Collections) Size() int {
	return len(c.StaticEN) + len(c.StaticES) +
		len(c.CitiesEN) + len(c.CitiesES) +
		len(c.ArticlesEN) + len(c.ArticlesES)
}
