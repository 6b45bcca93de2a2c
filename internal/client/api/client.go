// Package api is the storefront's single point of outbound HTTP communication
// with the commerce backend. It attaches the API key and session cookie to
// every request and normalizes backend responses into Result envelopes.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionCookie is the cookie that carries the session token.
const SessionCookie = "OCSESSID"

// Header names sent on every request.
const (
	HeaderAPIKey    = "X-API-Key"
	HeaderRequestID = "X-Request-ID"
)

// Client talks to the commerce backend. It is safe for concurrent use.
// Calls are made exactly once: no retries and no client-imposed timeout.
type Client struct {
	base       *url.URL
	routeParam string
	apiKey     string
	http       *http.Client
	log        *zap.Logger
	metrics    *Metrics

	mu    sync.RWMutex
	token string
	// guest is the anonymous session the backend issued while signed out.
	guest string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for transport failures.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithMetrics records per-endpoint request counts and latencies.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client for the backend at baseURL.
//
// Two base URL styles are supported. A path style base such as
// "https://shop.example/api/mobile/" gets the endpoint name appended to its
// path. A route style base such as "https://shop.example/index.php?route=api/mobile/"
// (a query parameter whose value ends in "/") gets the endpoint name appended
// to that parameter instead.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		base:   u,
		apiKey: apiKey,
		http:   &http.Client{},
		log:    zap.NewNop(),
	}
	for k, vs := range u.Query() {
		if len(vs) == 1 && strings.HasSuffix(vs[0], "/") {
			c.routeParam = k
			break
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetSessionToken sets the token attached to subsequent requests.
// An empty token detaches the session. Either way any guest session is
// forgotten.
func (c *Client) SetSessionToken(token string) {
	c.mu.Lock()
	c.token = token
	c.guest = ""
	c.mu.Unlock()
}

// SessionToken returns the current session token, or "" when signed out.
func (c *Client) SessionToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// endpointURL builds the absolute URL for endpoint with extra query values.
func (c *Client) endpointURL(endpoint string, query url.Values) string {
	u := *c.base
	q := u.Query()
	if c.routeParam != "" {
		q.Set(c.routeParam, q.Get(c.routeParam)+endpoint)
	} else {
		u.Path = strings.TrimSuffix(u.Path, "/") + "/" + endpoint
		u.RawPath = ""
	}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, query, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values, out any) error {
	if form == nil {
		form = url.Values{}
	}
	return c.do(ctx, http.MethodPost, endpoint, nil, form, out)
}

// do performs one request and decodes a 2xx JSON body into out.
// Every failure is returned as *TransportError.
func (c *Client) do(ctx context.Context, method, endpoint string, query, form url.Values, out any) error {
	start := time.Now()
	code := 0
	defer func() { c.metrics.observe(endpoint, code, time.Since(start)) }()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint, query), body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.apiKey != "" {
		req.Header.Set(HeaderAPIKey, c.apiKey)
	}
	if tok := c.cookieValue(); tok != "" {
		req.Header.Set("Cookie", SessionCookie+"="+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("api request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()
	code = resp.StatusCode
	c.adoptGuest(resp)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, StatusCode: code, Err: fmt.Errorf("read body: %w", err)}
	}

	if code < 200 || code >= 300 {
		c.log.Error("api request rejected",
			zap.String("endpoint", endpoint),
			zap.Int("status", code),
		)
		return &TransportError{Endpoint: endpoint, StatusCode: code, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Error("api response undecodable", zap.String("endpoint", endpoint), zap.Error(err))
		return &TransportError{Endpoint: endpoint, StatusCode: code, Err: fmt.Errorf("invalid response: %w", err)}
	}
	return nil
}

func (c *Client) cookieValue() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token != "" {
		return c.token
	}
	return c.guest
}

// adoptGuest keeps the session cookie the backend issues to anonymous
// callers so a signed-out cart survives between requests.
func (c *Client) adoptGuest(resp *http.Response) {
	for _, ck := range resp.Cookies() {
		if ck.Name != SessionCookie || ck.Value == "" {
			continue
		}
		c.mu.Lock()
		if c.token == "" {
			c.guest = ck.Value
		}
		c.mu.Unlock()
	}
}
