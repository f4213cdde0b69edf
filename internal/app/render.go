package app

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"eyecare_site/internal/domain"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNs   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// AbsoluteURL joins the site base URL and a route path.
func AbsoluteURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if path == "/" {
		return base + "/"
	}
	return base + path
}

// RenderSitemapXML serializes entries as a sitemaps.org urlset document.
func RenderSitemapXML(base string, entries []domain.RouteEntry) ([]byte, error) {
	set := urlset{XMLNs: sitemapNS, URLs: make([]sitemapURL, 0, len(entries))}
	for _, e := range entries {
		u := sitemapURL{
			Loc:        AbsoluteURL(base, e.Path),
			ChangeFreq: string(e.ChangeFrequency),
			Priority:   strconv.FormatFloat(e.Priority, 'f', 1, 64),
		}
		if !e.LastModified.IsZero() {
			u.LastMod = e.LastModified.UTC().Format(time.RFC3339)
		}
		set.URLs = append(set.URLs, u)
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
