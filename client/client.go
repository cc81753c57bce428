// Package client implements the client half of the auth flow: a thin HTTP
// client for the backend API and a session state manager that owns the
// current user, the persisted token and the transitions between
// authenticated and unauthenticated states.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// User is the profile returned by the backend. ID and Username are decoded
// for convenience; Raw preserves the profile exactly as the server sent it,
// including any fields this package does not know about.
type User struct {
	ID       any             `json:"id"`
	Username string          `json:"username"`
	Raw      json.RawMessage `json:"-"`
}

// APIError is a non-2xx response from the backend, carrying the
// human-readable message the server supplied.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to the backend auth API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a Client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	resp, err := c.post(ctx, "/login", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("login response contained no token")
	}

	return out.Token, nil
}

// Register creates an account. data is passed through to the server as-is.
func (c *Client) Register(ctx context.Context, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}

	resp, err := c.post(ctx, "/register", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

// Profile fetches the profile of the user owning token.
func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/user/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out struct {
		User json.RawMessage `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding profile response: %w", err)
	}

	var user User
	if err := json.Unmarshal(out.User, &user); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	user.Raw = out.User

	return &user, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.HTTPClient.Do(req)
}

// checkStatus turns a non-2xx response into an *APIError with the server's
// message. The body is consumed on failure.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Message != "" {
		apiErr.Message = out.Message
	}

	return apiErr
}
