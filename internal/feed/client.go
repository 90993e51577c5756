package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/httpclient"
)

// Fetcher returns the raw payload of a catalog feed path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// Client fetches feeds relative to a base URL through a rate-limited executor.
type Client struct {
	base   *url.URL
	exec   *httpclient.Executor
	logger *zap.Logger
}

// NewClient validates baseURL and returns a Client. A missing trailing slash is added
// so that relative catalog paths resolve beneath it.
func NewClient(baseURL string, exec *httpclient.Executor, logger *zap.Logger) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("feed base url %q must be absolute", baseURL)
	}
	return &Client{base: u, exec: exec, logger: logger}, nil
}

// URL resolves a catalog path against the base URL.
func (c *Client) URL(path string) string {
	return c.base.ResolveReference(&url.URL{Path: path}).String()
}

// Fetch GETs the feed at path. The limiter is keyed by upstream host.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	target := c.URL(path)
	body, err := c.exec.Get(ctx, target, c.base.Host)
	if err != nil {
		c.logger.Warn("feed.fetch_failed", zap.String("url", target), zap.Error(err))
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	return body, nil
}

// Load fetches and decodes the feed at path.
func Load(ctx context.Context, f Fetcher, path string) (*Document, error) {
	body, err := f.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
