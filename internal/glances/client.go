package glances

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"glances-hub/internal/metrics"
	"glances-hub/internal/model"
)

const (
	// AllPath is the Glances endpoint that returns every plugin in one document.
	AllPath = "all"

	DefaultTimeout = 5 * time.Second
	maxBodyBytes   = 10 << 20
)

// Client performs single-shot fetches against Glances agents. It is safe
// for concurrent use.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

func NewClient(timeout time.Duration, version string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		timeout:    timeout,
		userAgent:  "glances-hub/" + version,
	}
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Fetch GETs baseURL+"all" once, bounded by the client timeout, and returns
// the decoded JSON object without looking inside it.
func (c *Client) Fetch(ctx context.Context, baseURL string) (model.RawRecord, error) {
	start := time.Now()
	rec, err := c.fetch(ctx, baseURL)
	metrics.AgentFetchDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())
	return rec, err
}

func (c *Client) fetch(ctx context.Context, baseURL string) (model.RawRecord, error) {
	fullURL, err := ResolveAllURL(baseURL)
	if err != nil {
		return nil, upstreamError(baseURL, err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, upstreamError(fullURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(reqCtx, err) {
			return nil, timeoutError(baseURL, fullURL, err)
		}
		return nil, upstreamError(fullURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, upstreamError(fullURL, fmt.Errorf("%s for url: %s", resp.Status, fullURL))
	}

	rec, err := decodeRecord(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		if isTimeout(reqCtx, err) {
			return nil, timeoutError(baseURL, fullURL, err)
		}
		return nil, upstreamError(fullURL, err)
	}
	return rec, nil
}

// ResolveAllURL resolves "all" against base the way a browser would: a
// trailing slash appends, otherwise the last path segment is replaced.
func ResolveAllURL(baseURL string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", fmt.Errorf("base url %q is not absolute", baseURL)
	}
	return base.ResolveReference(&url.URL{Path: AllPath}).String(), nil
}

func decodeRecord(r io.Reader) (model.RawRecord, error) {
	lr := &countingReader{r: r}
	dec := json.NewDecoder(lr)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if lr.n > maxBodyBytes {
			return nil, fmt.Errorf("response body exceeds %d bytes", maxBodyBytes)
		}
		return nil, fmt.Errorf("decode response body: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected response body type %T, want JSON object", v)
	}
	return obj, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	var fe *FetchError
	if errors.As(err, &fe) && fe.Timeout() {
		return metrics.OutcomeTimeout
	}
	return metrics.OutcomeUpstream
}
