package loader

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP data source.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond throttles fetches against the host. Zero means
	// the default of 20.
	RequestsPerSecond float64
}

// HTTPSource serves study documents from a base URL, typically a static
// file host. Fetches are rate-limited but never retried: the load path
// drops a failing record instead of hammering the host.
type HTTPSource struct {
	base    *url.URL
	client  *http.Client
	limiter *rate.Limiter
	opts    HTTPOptions
}

// NewHTTPSource creates a source rooted at baseURL.
func NewHTTPSource(baseURL string, opts HTTPOptions) (*HTTPSource, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, eris.Wrap(err, "http source: parse base url")
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "trialboard/1.0"
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 20
	}
	return &HTTPSource{
		base:    base,
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), int(rps)),
		opts:    opts,
	}, nil
}

func (s *HTTPSource) get(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "http source: rate limiter wait")
	}

	ref, err := url.Parse(name)
	if err != nil {
		return nil, eris.Wrapf(err, "http source: parse name %s", name)
	}
	target := s.base.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, eris.Wrap(err, "http source: create request")
	}
	req.Header.Set("User-Agent", s.opts.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "http source: get %s", target)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, eris.Errorf("http source: unexpected status %d from %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

// Manifest fetches and decodes the manifest resource.
func (s *HTTPSource) Manifest(ctx context.Context) (Manifest, error) {
	body, err := s.get(ctx, ManifestName)
	if err != nil {
		return Manifest{}, err
	}
	defer body.Close() //nolint:errcheck

	var m Manifest
	if err := json.NewDecoder(body).Decode(&m); err != nil {
		return Manifest{}, eris.Wrap(err, "http source: decode manifest")
	}
	return m, nil
}

// Record fetches one study document.
func (s *HTTPSource) Record(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.get(ctx, name)
}
