// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"eyecare_site/internal/app"
)

type Handlers struct {
	Sitemap     *app.SitemapService
	IndexNowKey string // served verbatim for search engine key verification
	StaticDir   string // exported site; empty disables static serving
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// apiTimeout bounds the generated routes; static files stream without one.
const apiTimeout = 15 * time.Second

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(apiTimeout))
		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
		r.Get("/sitemap.xml", h.sitemapXML)
		r.Get("/robots.txt", h.robots)
		r.Get("/api/sitemap", h.sitemapJSON)
		r.Get("/api/indexnow", h.indexNowKey)
	})
	if h.StaticDir != "" {
		s.mountStatic(http.FileServer(http.Dir(h.StaticDir)))
	}
}

// mountStatic serves the exported site under a single route pattern.
func (s *Server) mountStatic(fs http.Handler) {
	s.mux.Handle("/*", fs)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func weakETag(body []byte) string {
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`
}

// etagMatch reports whether an If-None-Match header names etag, using the
// weak comparison: W/ prefixes are ignored and "*" matches anything.
func etagMatch(header, etag string) bool {
	want := strings.TrimPrefix(etag, "W/")
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || (tag != "" && strings.TrimPrefix(tag, "W/") == want) {
			return true
		}
	}
	return false
}

// writeCached writes body with an ETag, or 304 if the client already has it.
func writeCached(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := weakETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if etagMatch(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write response body")
	}
}

func (h *Handlers) sitemapXML(w http.ResponseWriter, r *http.Request) {
	body, _, err := h.Sitemap.XML(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("sitemap build failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "sitemap unavailable")
		return
	}
	writeCached(w, r, "application/xml; charset=utf-8", body)
}

func (h *Handlers) sitemapJSON(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Sitemap.Entries(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("sitemap build failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "sitemap unavailable")
		return
	}
	body, err := json.Marshal(entries)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal sitemap entries")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	writeCached(w, r, "application/json", body)
}

func (h *Handlers) robots(w http.ResponseWriter, r *http.Request) {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n\n")
	b.WriteString("Sitemap: " + app.AbsoluteURL(h.Sitemap.BaseURL(), "/"+app.SitemapFile) + "\n")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(b.String()))
}

func (h *Handlers) indexNowKey(w http.ResponseWriter, r *http.Request) {
	if h.IndexNowKey == "" {
		writeProblem(w, http.StatusNotFound, "Not Found", "no verification key configured")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(h.IndexNowKey))
}
