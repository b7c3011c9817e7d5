package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"farmbot/config"
	"farmbot/model"
)

const (
	DefaultBaseURL = "http://localhost:5000"

	optionsPath         = "/api/options"
	chatPath            = "/api/chat"
	recommendationsPath = "/api/recommendations"

	statusSuccess = "success"
)

// Client talks to the crop recommendation server. It implements
// model.Backend.
type Client struct {
	http    *http.Client
	baseURL *url.URL
}

var _ model.Backend = (*Client)(nil)

// NewClient builds a client for baseURL. A nil httpClient uses
// http.DefaultClient; per-request deadlines come from the caller's context.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend URL %q: scheme must be http or https", baseURL)
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{http: httpClient, baseURL: parsed}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// envelope is the common shape of every response
type envelope struct {
	Status   string              `json:"status"`
	Message  string              `json:"message,omitempty"`
	Options  []string            `json:"options,omitempty"`
	Response *string             `json:"response,omitempty"`
	Data     *model.ChartDataset `json:"data,omitempty"`
}

type chatRequest struct {
	Message string        `json:"message"`
	Filters model.Filters `json:"filters"`
}

// Options returns the valid values for field
func (c *Client) Options(ctx context.Context, field model.OptionField) ([]string, error) {
	q := url.Values{}
	q.Set("type", string(field))

	env, err := c.do(ctx, http.MethodGet, optionsPath, q, nil)
	if err != nil {
		return nil, err
	}
	if env.Options == nil {
		return []string{}, nil
	}
	return env.Options, nil
}

// Chat sends message with filters and returns the bot's reply
func (c *Client) Chat(ctx context.Context, message string, filters model.Filters) (string, error) {
	body, err := json.Marshal(chatRequest{Message: message, Filters: filters})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	env, err := c.do(ctx, http.MethodPost, chatPath, nil, body)
	if err != nil {
		return "", err
	}
	if env.Response == nil {
		return "", &APIError{Endpoint: chatPath, Status: env.Status, Message: "response has no reply"}
	}
	return *env.Response, nil
}

// Recommendations returns suitability scores for filters. Empty fields are
// left out of the query string. A success without data returns a nil
// dataset.
func (c *Client) Recommendations(ctx context.Context, filters model.Filters) (*model.ChartDataset, error) {
	env, err := c.do(ctx, http.MethodGet, recommendationsPath, filters.Query(), nil)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, nil
	}
	if err := env.Data.Validate(); err != nil {
		return nil, &APIError{Endpoint: recommendationsPath, Status: env.Status, Message: err.Error()}
	}
	return env.Data, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Backend] %s %s", method, req.URL.String())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Endpoint: path, Code: resp.StatusCode}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s response: %w", ErrTransport, path, err)
	}

	if env.Status != statusSuccess {
		return nil, &APIError{Endpoint: path, Status: env.Status, Message: env.Message}
	}

	return &env, nil
}
