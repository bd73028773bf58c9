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

	"github.com/bnema/camp-cli/internal/domain"
	"github.com/bnema/camp-cli/internal/ports"
	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"
)

const (
	maxResponseBytes = 8 << 20
	requestIDHeader  = "X-Request-Id"
	defaultUserAgent = "camp-cli"
)

var errMissingTokenSource = errors.New("authenticated call without a token source")

// HTTPError is a non-2xx answer from the API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case domain.ErrNotAuthenticated:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

type Client struct {
	baseURL   string
	http      *http.Client
	tokens    ports.TokenSource
	userAgent string
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

func WithTokenSource(tokens ports.TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	c := &Client{
		baseURL:   strings.TrimRight(parsed.String(), "/"),
		http:      http.DefaultClient,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	method      string
	endpoint    string
	body        any
	rawBody     io.Reader
	contentType string
	anonymous   bool
}

// Do sends one request and decodes the JSON answer into T. An empty or
// unparsable 2xx body yields (nil, nil).
func Do[T any](ctx context.Context, c *Client, method, endpoint string, body any) (*T, error) {
	raw, err := c.roundTrip(ctx, request{method: method, endpoint: endpoint, body: body})
	if err != nil {
		return nil, err
	}
	return decode[T](raw), nil
}

// Send is Do for calls whose answer carries nothing the caller needs.
func (c *Client) Send(ctx context.Context, method, endpoint string, body any) error {
	_, err := c.roundTrip(ctx, request{method: method, endpoint: endpoint, body: body})
	return err
}

func (c *Client) roundTrip(ctx context.Context, req request) ([]byte, error) {
	response, err := c.open(ctx, req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return body, nil
}

// open performs the request and returns the response only when its status is 2xx.
func (c *Client) open(ctx context.Context, req request) (*http.Response, error) {
	var token string
	if !req.anonymous {
		if c.tokens == nil {
			return nil, errMissingTokenSource
		}
		t, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		token = t
	}

	bodyReader := req.rawBody
	contentType := req.contentType
	if bodyReader == nil && req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}
	if contentType == "" {
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+"/"+strings.TrimLeft(req.endpoint, "/"), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := ulid.Make().String()
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(requestIDHeader, requestID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	glog.V(2).Infof("[api][%s] %s %s", requestID, req.method, req.endpoint)

	response, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("perform request: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		defer response.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
		httpErr := &HTTPError{StatusCode: response.StatusCode, Message: errorMessage(body, response.StatusCode)}
		glog.V(1).Infof("[api][%s] %s %s -> %v", requestID, req.method, req.endpoint, httpErr)
		return nil, httpErr
	}

	return response, nil
}

type errorBody struct {
	Message string `json:"message"`
	Title   string `json:"title"`
	Detail  string `json:"error"`
}

func errorMessage(body []byte, status int) string {
	var payload errorBody
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, candidate := range []string{payload.Message, payload.Title, payload.Detail} {
			if msg := strings.TrimSpace(candidate); msg != "" {
				return msg
			}
		}
	}

	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("unexpected status %d", status)
}

func decode[T any](raw []byte) *T {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		glog.V(1).Infof("[api] treating unparsable body as empty: %v", err)
		return nil
	}
	return &out
}

func joinPath(segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}
	return strings.Join(escaped, "/")
}
