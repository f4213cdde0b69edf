// internal/adapters/indexnow/client.go
package indexnow

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"eyecare_site/internal/adapters/observability"
)

const (
	DefaultEndpoint = "https://api.indexnow.org/indexnow"
	MaxBatch        = 10000 // protocol limit per request
)

var (
	ErrBadRequest    = errors.New("indexnow: bad request")
	ErrForbidden     = errors.New("indexnow: key not valid for host")
	ErrUnprocessable = errors.New("indexnow: urls do not belong to host")
)

type Options struct {
	Endpoint    string
	Host        string // site host the URLs belong to, e.g. www.example.com
	Key         string
	KeyLocation string // absolute URL serving the key, optional
	RPS         int
	BatchSize   int
	Workers     int
	HTTPClient  *http.Client
}

type Client struct {
	endpoint    string
	host        string
	key         string
	keyLocation string
	hc          *http.Client
	rl          *rate.Limiter
	batch       int
	workers     int
}

func New(o Options) (*Client, error) {
	if err := ValidateKey(o.Key); err != nil {
		return nil, err
	}
	if o.Host == "" {
		return nil, fmt.Errorf("indexnow: host is required")
	}
	if o.Endpoint == "" {
		o.Endpoint = DefaultEndpoint
	}
	if o.RPS <= 0 {
		o.RPS = 2
	}
	if o.BatchSize <= 0 || o.BatchSize > MaxBatch {
		o.BatchSize = MaxBatch
	}
	if o.Workers <= 0 {
		o.Workers = 2
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		endpoint:    o.Endpoint,
		host:        o.Host,
		key:         o.Key,
		keyLocation: o.KeyLocation,
		hc:          hc,
		rl:          rate.NewLimiter(rate.Limit(o.RPS), o.RPS),
		batch:       o.BatchSize,
		workers:     o.Workers,
	}, nil
}

// ValidateKey checks the protocol's key format: 8-128 characters of
// a-z, A-Z, 0-9 and '-'.
func ValidateKey(key string) error {
	if len(key) < 8 || len(key) > 128 {
		return fmt.Errorf("indexnow: key must be 8-128 characters, got %d", len(key))
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return fmt.Errorf("indexnow: key contains invalid character %q", r)
		}
	}
	return nil
}

type payload struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation,omitempty"`
	URLList     []string `json:"urlList"`
}

// Submit notifies the endpoint about urls, split into protocol-sized batches
// sent with bounded concurrency. The first failing batch cancels the rest.
func (c *Client) Submit(ctx context.Context, urls []string) error {
	if len(urls) == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for start := 0; start < len(urls); start += c.batch {
		end := min(start+c.batch, len(urls))
		batch := urls[start:end]
		g.Go(func() error { return c.post(gctx, batch) })
	}
	return g.Wait()
}

// ---- Internals ----

// post sends one batch with client-side rate limiting and retries.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) post(ctx context.Context, urls []string) error {
	body, err := json.Marshal(payload{Host: c.host, Key: c.key, KeyLocation: c.keyLocation, URLList: urls})
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		if err := c.rl.Wait(ctx); err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		req.Header.Set("User-Agent", "eyecare-site/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("indexnow", "submit", 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			log.Debug().Err(err).Str("err_type", observability.LabelErr(err)).Int("attempt", i+1).Msg("indexnow transport error")
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("indexnow", "submit", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusAccepted:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusBadRequest:
			resp.Body.Close()
			return ErrBadRequest

		case http.StatusForbidden:
			resp.Body.Close()
			return ErrForbidden

		case http.StatusUnprocessableEntity:
			resp.Body.Close()
			return ErrUnprocessable

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("indexnow: remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("indexnow: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
