package douban

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mediashelf/internal/config"
	"mediashelf/internal/logging"
	"mediashelf/internal/media"
)

// maxBodyBytes caps how much of a page is read; detail pages are well below it.
const maxBodyBytes = 8 << 20

// Source defines the page operations used by the import pipeline.
type Source interface {
	Fetch(ctx context.Context, category media.Category, externalID string) (string, error)
	Search(ctx context.Context, keyword string, category media.Category) ([]SearchResult, error)
}

// Client retrieves detail and search pages from the source site.
type Client struct {
	bases       map[media.Category]string
	searchBase  string
	userAgent   string
	mobileAgent string
	cookie      string
	httpClient  *http.Client
	logger      *slog.Logger
}

var _ Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "douban")
	}
}

// New creates a client from the douban configuration section.
func New(cfg config.Douban, opts ...Option) (*Client, error) {
	bases := map[media.Category]string{
		media.CategoryBook:  strings.TrimRight(strings.TrimSpace(cfg.BookBaseURL), "/"),
		media.CategoryMovie: strings.TrimRight(strings.TrimSpace(cfg.MovieBaseURL), "/"),
		media.CategoryMusic: strings.TrimRight(strings.TrimSpace(cfg.MusicBaseURL), "/"),
	}
	for category, base := range bases {
		if base == "" {
			return nil, fmt.Errorf("douban %s base url required", category)
		}
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &Client{
		bases:       bases,
		searchBase:  strings.TrimRight(strings.TrimSpace(cfg.SearchBaseURL), "/"),
		userAgent:   strings.TrimSpace(cfg.UserAgent),
		mobileAgent: strings.TrimSpace(cfg.MobileAgent),
		cookie:      strings.TrimSpace(cfg.Cookie),
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SubjectURL builds the detail page address for an item.
func (c *Client) SubjectURL(category media.Category, externalID string) (string, error) {
	base, ok := c.bases[category]
	if !ok {
		return "", fmt.Errorf("unsupported category %q", category)
	}
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return "", errors.New("external id must not be empty")
	}
	return base + "/subject/" + url.PathEscape(externalID) + "/", nil
}

// Fetch retrieves the detail page for an item. Failures are returned as
// *FetchError and are not retried.
func (c *Client) Fetch(ctx context.Context, category media.Category, externalID string) (string, error) {
	target, err := c.SubjectURL(category, externalID)
	if err != nil {
		return "", err
	}
	return c.FetchURL(ctx, target)
}

// FetchURL retrieves an arbitrary page with the desktop header set.
func (c *Client) FetchURL(ctx context.Context, target string) (string, error) {
	headers := c.desktopHeaders(target)
	return c.get(ctx, target, headers)
}

func (c *Client) desktopHeaders(target string) http.Header {
	headers := http.Header{}
	headers.Set("User-Agent", c.userAgent)
	headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	headers.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	if origin := originOf(target); origin != "" {
		headers.Set("Referer", origin+"/")
	}
	if c.cookie != "" {
		headers.Set("Cookie", c.cookie)
	}
	return headers
}

func (c *Client) mobileHeaders() http.Header {
	headers := http.Header{}
	agent := c.mobileAgent
	if agent == "" {
		agent = c.userAgent
	}
	headers.Set("User-Agent", agent)
	headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	headers.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	headers.Set("Referer", c.searchBase+"/")
	if c.cookie != "" {
		headers.Set("Cookie", c.cookie)
	}
	return headers
}

func (c *Client) get(ctx context.Context, target string, headers http.Header) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	for key, values := range headers {
		for _, value := range values {
			if value != "" {
				req.Header.Add(key, value)
			}
		}
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		kind := KindNetwork
		if isTimeout(err) {
			kind = KindTimeout
		}
		return "", &FetchError{Kind: kind, URL: target, Latency: latency, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("page fetched",
		logging.String("url", target),
		logging.Int("status", resp.StatusCode),
		logging.Duration("latency", latency),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return "", &FetchError{Kind: KindHTTPStatus, URL: target, StatusCode: resp.StatusCode, Latency: latency}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		kind := KindNetwork
		if isTimeout(err) {
			kind = KindTimeout
		}
		return "", &FetchError{Kind: kind, URL: target, Latency: time.Since(requestStart), Err: fmt.Errorf("read body: %w", err)}
	}
	return string(body), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func originOf(target string) string {
	parsed, err := url.Parse(target)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
