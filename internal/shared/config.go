package shared

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	SourceEmbedded = "embedded"
	SourceMySQL    = "mysql"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string
	BaseURL     string
	StaticDir   string
	PublicDir   string
	DistDir     string
	Source      string // embedded|mysql
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	IndexNowKey      string
	IndexNowEndpoint string
	IndexNowRPS      int

	SyncWorkers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:           env("APP_ENV", "prod"),
		LogLevel:         env("LOG_LEVEL", "info"),
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		MetricsAddr:      env("METRICS_ADDR", ""),
		BaseURL:          env("SITE_BASE_URL", "https://www.valleyeyecenter.com"),
		StaticDir:        env("STATIC_DIR", "dist"),
		PublicDir:        env("PUBLIC_DIR", "public"),
		DistDir:          env("DIST_DIR", "dist"),
		Source:           env("CONTENT_SOURCE", SourceEmbedded),
		MySQLDSN:         env("MYSQL_DSN", "root:root@tcp(localhost:3306)/eyecare?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:        env("REDIS_ADDR", ""),
		RedisPass:        env("REDIS_PASSWORD", ""),
		RedisDB:          atoi("REDIS_DB", 0),
		CacheTTL:         time.Duration(atoi("CACHE_TTL_SECONDS", 3600)) * time.Second,
		IndexNowKey:      env("INDEXNOW_KEY", ""),
		IndexNowEndpoint: env("INDEXNOW_ENDPOINT", "https://api.indexnow.org/indexnow"),
		IndexNowRPS:      atoi("INDEXNOW_RPS", 2),
		SyncWorkers:      atoi("CONTENT_SYNC_WORKERS", 4),
	}
	if c.Source != SourceEmbedded && c.Source != SourceMySQL {
		log.Warn().Str("source", c.Source).Msg("unknown CONTENT_SOURCE, using embedded")
		c.Source = SourceEmbedded
	}
	if u, err := url.Parse(c.BaseURL); err != nil || u.Host == "" {
		log.Warn().Str("base_url", c.BaseURL).Msg("SITE_BASE_URL is not an absolute URL")
	}
	return c
}

// Host returns the host part of the site base URL.
func (c Config) Host() string { return HostOf(c.BaseURL) }

// HostOf returns the host of an absolute URL, or "" when it has none.
func HostOf(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	return u.Host
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
