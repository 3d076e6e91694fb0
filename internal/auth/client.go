package auth

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

	"github.com/go-playground/validator/v10"
)

// DefaultTimeout bounds each auth request.
const DefaultTimeout = 30 * time.Second

var validate = validator.New()

// Client is a minimal GoTrue client: password grant, refresh grant,
// signup, signout, password recovery, and the user endpoint.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// Options configures a new Client.
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient validates the service URL and returns a client. anonKey is
// the public API key sent with every request.
func NewClient(baseURL, anonKey string, opts Options) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid auth URL: %s", baseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		anonKey:    anonKey,
		httpClient: httpClient,
	}, nil
}

// SignUp registers a new user. Depending on service settings the session
// may be nil until the email is confirmed.
func (c *Client) SignUp(ctx context.Context, creds Credentials) (*Session, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, credentialError(err)
	}
	var session Session
	if err := c.post(ctx, "/auth/v1/signup", "", creds, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignInWithPassword exchanges credentials for a session.
func (c *Client) SignInWithPassword(ctx context.Context, creds Credentials) (*Session, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, credentialError(err)
	}
	var session Session
	if err := c.post(ctx, "/auth/v1/token?grant_type=password", "", creds, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Refresh exchanges a refresh token for a fresh session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var session Session
	if err := c.post(ctx, "/auth/v1/token?grant_type=refresh_token", "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SignOut revokes the session's refresh token server-side.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.post(ctx, "/auth/v1/logout", accessToken, nil, nil)
}

// User fetches the identity behind an access token.
func (c *Client) User(ctx context.Context, accessToken string) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := c.do(req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword sets a new password for the signed-in user.
func (c *Client) UpdatePassword(ctx context.Context, accessToken, newPassword string) error {
	if len(newPassword) < 8 {
		return &AuthError{StatusCode: 422, Message: "Password must be at least 8 characters."}
	}
	body := map[string]string{"password": newPassword}
	return c.put(ctx, "/auth/v1/user", accessToken, body)
}

// ResetPassword asks the service to email a recovery link.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return &AuthError{StatusCode: 422, Message: "Please enter a valid email address."}
	}
	body := map[string]string{"email": email}
	return c.post(ctx, "/auth/v1/recover", "", body, nil)
}

func (c *Client) post(ctx context.Context, path, accessToken string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, accessToken, body)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) put(ctx context.Context, path, accessToken string, body any) error {
	req, err := c.newRequest(ctx, http.MethodPut, path, accessToken, body)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path, accessToken string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: req.Method + " " + req.URL.Path, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode auth response: %w", err)
	}
	return nil
}

// parseError extracts a message from the service's error body, which
// uses a few different shapes across endpoints.
func parseError(resp *http.Response) error {
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	message := body.ErrorDescription
	if message == "" {
		message = body.Msg
	}
	if message == "" {
		message = body.Message
	}
	if message == "" {
		message = body.Error
	}
	return &AuthError{StatusCode: resp.StatusCode, Message: message}
}

// credentialError converts a validator failure into a user-facing error.
func credentialError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Email":
			return &AuthError{StatusCode: 422, Message: "Please enter a valid email address."}
		case "Password":
			return &AuthError{StatusCode: 422, Message: "Password must be at least 8 characters."}
		}
	}
	return &AuthError{StatusCode: 422, Message: "Invalid credentials."}
}
