package fragment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxBody caps fragment reads to prevent runaway downloads.
const maxBody = 10 << 20

// HTTPSource performs a single GET per Fetch.
type HTTPSource struct {
	url    string
	client *http.Client
	ua     string
	logger *slog.Logger
}

// Option configures an HTTPSource.
type Option func(*HTTPSource)

// WithClient sets a custom HTTP client. Its Timeout, if any, is the only
// deadline besides the caller's context.
func WithClient(c *http.Client) Option {
	return func(s *HTTPSource) { s.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *HTTPSource) { s.ua = ua }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *HTTPSource) { s.logger = l }
}

// HTTP creates a Source fetching rawURL. The default client has no timeout.
func HTTP(rawURL string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		url:    rawURL,
		client: &http.Client{},
		ua:     "Mozilla/5.0 (compatible; FooterLoader/1.0)",
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// URL returns the fetched URL.
func (s *HTTPSource) URL() string { return s.url }

// Fetch GETs the fragment. Any response that arrives is returned, whatever
// its status; only transport and read failures are errors.
func (s *HTTPSource) Fetch(ctx context.Context) (*Fragment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fragment: new request: %w", err)
	}
	req.Header.Set("User-Agent", s.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fragment: do: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("fragment: read body: %w", err)
	}
	if len(body) > maxBody {
		return nil, fmt.Errorf("fragment: read body: %w (limit %d bytes)", ErrTooLarge, maxBody)
	}

	s.logger.Debug("fragment: fetched",
		"url", s.url, "status", resp.StatusCode, "size", len(body))

	return &Fragment{URL: s.url, Status: resp.StatusCode, Body: body}, nil
}
