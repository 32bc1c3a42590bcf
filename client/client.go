// Package client is a typed Go client for the socialnet REST API. It covers
// the same surface the web client's service layer consumes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"socialnet/api"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken caches the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken drops the cached token.
func (c *Client) ClearToken() {
	c.token = ""
}

// APIError is a failure envelope returned by the server.
type APIError struct {
	Status  int
	Code    string
	Message string
	Fields  []api.FieldError
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// envelope mirrors api.Response with the data left raw so each call can
// decode its own payload type.
type envelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    json.RawMessage  `json:"data"`
	Errors  []api.FieldError `json:"errors"`
	Error   string           `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}, out interface{}) (string, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		reader = bytes.NewReader(encoded)
	}
	return c.do(ctx, method, path, reader, "application/json", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) (string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if !env.Success {
		return "", &APIError{
			Status:  resp.StatusCode,
			Code:    env.Error,
			Message: env.Message,
			Fields:  env.Errors,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("decoding response data: %w", err)
		}
	}
	return env.Message, nil
}

func pageQuery(page, limit int) string {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
