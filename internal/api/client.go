package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout is the default per-request HTTP timeout.
const DefaultTimeout = 30 * time.Second

// apiPrefix is prepended to every resource path.
const apiPrefix = "/api/v1"

// TokenSource supplies the bearer token attached to each request.
// Implementations may refresh the token before returning it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
// Useful for tests and one-off scripts.
type StaticToken string

// Token returns the static token value.
func (t StaticToken) Token(_ context.Context) (string, error) {
	return string(t), nil
}

// Options configures the client.
type Options struct {
	Timeout time.Duration
	// HTTPClient overrides the underlying client; Timeout is ignored when set.
	HTTPClient *http.Client
}

// Client talks to the OptiHire backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, tokens TokenSource, opts *Options) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	httpClient := &http.Client{Timeout: DefaultTimeout}
	if opts != nil {
		if opts.HTTPClient != nil {
			httpClient = opts.HTTPClient
		} else if opts.Timeout > 0 {
			httpClient = &http.Client{Timeout: opts.Timeout}
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}, nil
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil). Empty 204 bodies are allowed.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// send attaches authentication and executes the request.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if c.tokens != nil {
		token, err := c.tokens.Token(req.Context())
		if err != nil {
			return nil, fmt.Errorf("failed to resolve access token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{
			Op:    req.Method + " " + req.URL.Path,
			Cause: err,
		}
	}
	return resp, nil
}

// errorBody is the backend's failure shape.
type errorBody struct {
	Detail string `json:"detail"`
}

// checkResponse converts non-2xx responses into an APIError.
// It consumes the response body on failure.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		var body errorBody
		if json.Unmarshal(data, &body) == nil && body.Detail != "" {
			apiErr.Detail = body.Detail
		}
	}
	return apiErr
}
