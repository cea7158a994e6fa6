package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/orderdesk/internal/orders"
)

// TokenSource supplies the persisted bearer token. An empty token means no
// Authorization header is sent.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource for a fixed value.
type StaticToken string

// Token implements TokenSource.
func (t StaticToken) Token() string { return string(t) }

// Client talks to the orders/products HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	tokens    TokenSource
	log       *zap.Logger
}

const (
	defaultAPIURL    = "http://127.0.0.1:5001/api"
	defaultUserAgent = "orderdesk/0.1"
	maxErrorBody     = 4 << 10
)

// NewClient builds a Client for the given base URL. Relative resource paths
// are appended to the base path, so "http://host/api" serves /api/orders.
func NewClient(baseURL string, tokens TokenSource, log *zap.Logger) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		tokens:    tokens,
		log:       log,
	}, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Orders returns the remote orders resource.
func (c *Client) Orders() *RemoteOrders {
	return &RemoteOrders{client: c, name: "orders"}
}

// Products returns the remote products resource.
func (c *Client) Products() *RemoteProducts {
	return &RemoteProducts{client: c, name: "products"}
}

// RemoteOrders is the HTTP implementation of OrderAccess.
type RemoteOrders = resource[orders.Order, orders.OrderInput]

// RemoteProducts is the HTTP implementation of ProductAccess.
type RemoteProducts = resource[orders.Product, orders.Product]

// resource maps the five CRUD calls onto /{name} and /{name}/{id}.
type resource[T any, In any] struct {
	client *Client
	name   string
}

func (r *resource[T, In]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, r.name, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *resource[T, In]) Get(ctx context.Context, id string) (T, error) {
	var out T
	path, err := r.itemPath(http.MethodGet, id)
	if err != nil {
		return out, err
	}
	err = r.client.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (r *resource[T, In]) Create(ctx context.Context, in In) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPost, r.name, in, &out)
	return out, err
}

func (r *resource[T, In]) Update(ctx context.Context, id string, in In) (T, error) {
	var out T
	path, err := r.itemPath(http.MethodPut, id)
	if err != nil {
		return out, err
	}
	err = r.client.do(ctx, http.MethodPut, path, in, &out)
	return out, err
}

func (r *resource[T, In]) Delete(ctx context.Context, id string) error {
	path, err := r.itemPath(http.MethodDelete, id)
	if err != nil {
		return err
	}
	return r.client.do(ctx, http.MethodDelete, path, nil, nil)
}

func (r *resource[T, In]) itemPath(method, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &Error{Kind: KindClient, Op: method + " /" + r.name, Err: errors.New("id required")}
	}
	return r.name + "/" + url.PathEscape(id), nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if c == nil {
		return &Error{Kind: KindClient, Op: method + " /" + path, Err: errors.New("client is nil")}
	}
	reqURL := c.baseURL.JoinPath(path)
	op := method + " " + reqURL.EscapedPath()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindClient, Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return &Error{Kind: KindClient, Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := strings.TrimSpace(c.tokens.Token()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log := c.log.With(zap.String("method", method), zap.String("url", reqURL.String()), zap.String("request_id", requestID))
	log.Info("api request")
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("api network error", zap.Error(err), zap.Duration("elapsed", time.Since(started)))
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	log = log.With(zap.Int("status", resp.StatusCode), zap.Duration("elapsed", time.Since(started)))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		log.Error("api error response", zap.ByteString("body", msg))
		apiErr := &Error{Kind: KindServer, Op: op, Status: resp.StatusCode}
		if text := strings.TrimSpace(string(msg)); text != "" {
			apiErr.Err = errors.New(text)
		}
		return apiErr
	}
	log.Info("api response")

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		log.Error("api decode failed", zap.Error(err))
		return &Error{Kind: KindServer, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
