package app

import (
	"fmt"
	"os"
	"path/filepath"

	"eyecare_site/internal/domain"
)

const SitemapFile = "sitemap.xml"

type WriteReport struct {
	Written []string // files written, in order
	Skipped []string // targets skipped because their directory is absent
}

// WriteSitemap writes body to <publicDir>/sitemap.xml, creating publicDir if
// needed, and to <distDir>/sitemap.xml only when distDir already exists.
// Any failure wraps domain.ErrWriteFailure; nothing is retried.
func WriteSitemap(body []byte, publicDir, distDir string) (WriteReport, error) {
	var rep WriteReport

	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		return rep, fmt.Errorf("%w: create %s: %v", domain.ErrWriteFailure, publicDir, err)
	}
	p := filepath.Join(publicDir, SitemapFile)
	if err := os.WriteFile(p, body, 0o644); err != nil {
		return rep, fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
	}
	rep.Written = append(rep.Written, p)

	if distDir == "" {
		return rep, nil
	}
	d := filepath.Join(distDir, SitemapFile)
	if st, err := os.Stat(distDir); err != nil || !st.IsDir() {
		rep.Skipped = append(rep.Skipped, d)
		return rep, nil
	}
	if err := os.WriteFile(d, body, 0o644); err != nil {
		return rep, fmt.Errorf("%w: %v", domain.ErrWriteFailure, err)
	}
	rep.Written = append(rep.Written, d)
	return rep, nil
}

type Summary struct {
	URLCount int
	Bytes    int
	Samples  []string
}

// Summarize describes a generated sitemap for the command-line report.
func Summarize(base string, entries []domain.RouteEntry, body []byte, samples int) Summary {
	if samples > len(entries) {
		samples = len(entries)
	}
	if samples < 0 {
		samples = 0
	}
	s := Summary{URLCount: len(entries), Bytes: len(body), Samples: make([]string, 0, samples)}
	for _, e := range entries[:samples] {
		s.Samples = append(s.Samples, AbsoluteURL(base, e.Path))
	}
	return s
}
