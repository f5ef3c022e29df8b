// Package transport is the shared HTTP layer used by the wire-level providers.
//
// It owns request construction (base URL resolution, default headers, request
// IDs), bounded retries with exponential backoff, and the split between
// buffered JSON calls and streaming calls whose body is handed to the caller.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type RetryConfig struct {
	// MaxAttempts includes the initial attempt. If <= 1, retries are disabled.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// RespectRetryAfter uses the Retry-After header as the backoff for 429/503
	// responses when present.
	RespectRetryAfter bool

	// MaxRetryAfter caps Retry-After. If zero, no cap is applied.
	MaxRetryAfter time.Duration
}

func DefaultRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    250 * time.Millisecond,
		MaxBackoff:        2 * time.Second,
		RespectRetryAfter: true,
		MaxRetryAfter:     30 * time.Second,
	}
}

type Client struct {
	HTTPClient *http.Client
	BaseURL    *url.URL

	DefaultHeaders http.Header
	UserAgent      string
	Logger         *slog.Logger
	Retry          RetryConfig
}

func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{
		HTTPClient:     httpClient,
		BaseURL:        u,
		DefaultHeaders: make(http.Header),
		UserAgent:      "chatoyant/1",
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		Retry:          DefaultRetry(),
	}, nil
}

func (c *Client) Clone() *Client {
	out := *c
	out.DefaultHeaders = c.DefaultHeaders.Clone()
	return &out
}

func (c *Client) Resolve(path string) string {
	// url.JoinPath would clean too aggressively for some base URLs with paths.
	u := *c.BaseURL
	u.Path = joinPath(u.Path, path)
	return u.String()
}

func joinPath(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if a[len(a)-1] == '/' {
		if b[0] == '/' {
			return a + b[1:]
		}
		return a + b
	}
	if b[0] == '/' {
		return a + b
	}
	return a + "/" + b
}

// DoJSON POSTs (or otherwise sends) a JSON body and returns the buffered
// response bytes. Non-2xx responses become *HTTPStatusError. Retries follow
// the client's RetryConfig.
func (c *Client) DoJSON(ctx context.Context, method, path string, hdr http.Header, reqBody any) (*http.Response, []byte, error) {
	var bodyBytes []byte
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return nil, nil, err
		}
		bodyBytes = b
	}

	attempts := c.Retry.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		resp, raw, err := c.doOnce(ctx, method, path, hdr, bodyBytes)
		if err == nil {
			return resp, raw, nil
		}
		if attempt == attempts || !shouldRetry(err) {
			return nil, raw, err
		}

		sleep := backoff(c.Retry.InitialBackoff, c.Retry.MaxBackoff, attempt-1)
		if c.Retry.RespectRetryAfter {
			if ra, ok := retryAfterOf(err); ok {
				sleep = ra
				if c.Retry.MaxRetryAfter > 0 && sleep > c.Retry.MaxRetryAfter {
					sleep = c.Retry.MaxRetryAfter
				}
			}
		}

		c.Logger.Debug("chatoyant http retry", "attempt", attempt, "sleep", sleep, "err", err)
		select {
		case <-ctx.Done():
			return nil, raw, ctx.Err()
		case <-time.After(sleep):
		}
	}

	return nil, nil, errors.New("unreachable")
}

// DoStream sends a JSON body and returns the live response for SSE
// consumption. The caller owns resp.Body. Streaming requests are not retried.
func (c *Client) DoStream(ctx context.Context, method, path string, hdr http.Header, body any) (*http.Response, error) {
	var bodyBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyBytes = b
	}
	return c.doStreamOnce(ctx, method, path, hdr, bodyBytes)
}

func (c *Client) doOnce(ctx context.Context, method, path string, hdr http.Header, bodyBytes []byte) (*http.Response, []byte, error) {
	req, err := c.newRequest(ctx, method, path, hdr, bodyBytes)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, raw, nil
	}
	return nil, raw, &HTTPStatusError{StatusCode: resp.StatusCode, Body: raw, Header: resp.Header.Clone()}
}

func (c *Client) doStreamOnce(ctx context.Context, method, path string, hdr http.Header, bodyBytes []byte) (*http.Response, error) {
	req, err := c.newRequest(ctx, method, path, hdr, bodyBytes)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: raw, Header: resp.Header.Clone()}
}

func (c *Client) newRequest(ctx context.Context, method, path string, hdr http.Header, bodyBytes []byte) (*http.Request, error) {
	var body io.Reader
	if bodyBytes != nil {
		body = bytes.NewReader(bodyBytes)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Resolve(path), body)
	if err != nil {
		return nil, err
	}

	mergeHeaders(req.Header, c.DefaultHeaders)
	mergeHeaders(req.Header, hdr)
	if c.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
	if method == http.MethodPost && req.Header.Get("Idempotency-Key") == "" {
		req.Header.Set("Idempotency-Key", req.Header.Get("X-Request-Id"))
	}
	return req, nil
}

// HTTPStatusError carries a non-2xx response for upper layers to classify.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

func (e *HTTPStatusError) Error() string {
	return http.StatusText(e.StatusCode)
}

// RetryAfter parses the Retry-After header, supporting both the seconds and
// HTTP-date forms.
func (e *HTTPStatusError) RetryAfter() (time.Duration, bool) {
	if e == nil || e.Header == nil {
		return 0, false
	}
	v := e.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

func retryAfterOf(err error) (time.Duration, bool) {
	var se *HTTPStatusError
	if !errors.As(err, &se) {
		return 0, false
	}
	switch se.StatusCode {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return se.RetryAfter()
	}
	return 0, false
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *HTTPStatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusTooManyRequests, http.StatusRequestTimeout:
			return true
		case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	// network / io errors are generally retryable
	return true
}

func backoff(initial, max time.Duration, attempt int) time.Duration {
	if initial <= 0 {
		initial = 250 * time.Millisecond
	}
	if max <= 0 {
		max = 2 * time.Second
	}

	d := initial
	for i := 0; i < attempt; i++ {
		if d >= max/2 {
			d = max
			break
		}
		d *= 2
	}
	if d > max {
		d = max
	}
	return d
}

func mergeHeaders(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}
