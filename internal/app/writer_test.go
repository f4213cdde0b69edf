package app_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"eyecare_site/internal/app"
	"eyecare_site/internal/domain"
)

func TestWriteSitemap_PublicAndDist(t *testing.T) {
	root := t.TempDir()
	public := filepath.Join(root, "public") // created on demand
	dist := filepath.Join(root, "dist")
	if err := os.Mkdir(dist, 0o755); err != nil {
		t.Fatal(err)
	}

	body := []byte("<urlset/>")
	rep, err := app.WriteSitemap(body, public, dist)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(rep.Written) != 2 || len(rep.Skipped) != 0 {
		t.Fatalf("unexpected report %+v", rep)
	}
	for _, p := range rep.Written {
		got, err := os.ReadFile(p)
		if err != nil || string(got) != string(body) {
			t.Fatalf("%s: %q %v", p, got, err)
		}
	}
}

func TestWriteSitemap_SkipsMissingDist(t *testing.T) {
	root := t.TempDir()
	rep, err := app.WriteSitemap([]byte("x"), filepath.Join(root, "public"), filepath.Join(root, "dist"))
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(rep.Written) != 1 || len(rep.Skipped) != 1 {
		t.Fatalf("unexpected report %+v", rep)
	}
	if _, err := os.Stat(filepath.Join(root, "dist")); !os.IsNotExist(err) {
		t.Fatalf("dist must not be created")
	}
}

func TestWriteSitemap_Failure(t *testing.T) {
	root := t.TempDir()
	// a regular file where the public directory should be
	blocker := filepath.Join(root, "public")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := app.WriteSitemap([]byte("x"), blocker, "")
	if !errors.Is(err, domain.ErrWriteFailure) {
		t.Fatalf("expected ErrWriteFailure, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	entries := app.BuildSitemap(fixture(), time.Now())
	s := app.Summarize("https://example.com", entries, []byte("12345"), 3)
	if s.URLCount != len(entries) || s.Bytes != 5 {
		t.Fatalf("unexpected summary %+v", s)
	}
	want := []string{"https://example.com/", "https://example.com/about", "https://example.com/contact"}
	for i, u := range want {
		if s.Samples[i] != u {
			t.Fatalf("sample %d = %s want %s", i, s.Samples[i], u)
		}
	}
	if got := app.Summarize("https://example.com", entries[:1], nil, 10); len(got.Samples) != 1 {
		t.Fatalf("samples should be capped at entry count")
	}
}
