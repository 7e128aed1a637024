package umami

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
)

const (
	DefaultBaseURL = "https://api.umami.is/v1"

	// Cloudflare in front of the hosted API rejects Go's default User-Agent.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/122.0.0.0 Safari/537.36"

	defaultTimeout  = 30 * time.Second
	reportsPageSize = 100
)

var (
	ErrMissingCredentials      = errors.New("missing credentials: set an API key (cloud) or a bearer token (self-hosted)")
	ErrCatalogFetch            = errors.New("funnel report catalog fetch failed")
	ErrUnexpectedResponseShape = errors.New("unexpected response shape")
)

// APIError reports a non-2xx response from the Umami API.
type APIError struct {
	Status int
	Method string
	URL    string
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d when calling %s %s: %s", e.Status, e.Method, e.URL, e.Body)
}

// Config carries everything needed to reach one Umami deployment. APIKey
// takes precedence over BearerToken when both are set.
type Config struct {
	BaseURL     string
	APIKey      string
	BearerToken string
	UserAgent   string
	Timeout     time.Duration
}

// Client is a minimal Umami HTTP API client. Calls are blocking with a
// single timeout and no retry.
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": userAgent,
	}
	switch {
	case strings.TrimSpace(cfg.APIKey) != "":
		headers["x-umami-api-key"] = strings.TrimSpace(cfg.APIKey)
	case strings.TrimSpace(cfg.BearerToken) != "":
		headers["Authorization"] = "Bearer " + strings.TrimSpace(cfg.BearerToken)
	default:
		return nil, ErrMissingCredentials
	}

	return &Client{
		baseURL: baseURL,
		headers: headers,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// request performs one API call and returns the raw JSON payload. Transport
// failures, non-2xx statuses and non-JSON bodies are all errors; an empty
// 2xx body returns nil.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s request body: %w", method, endpoint, err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s request: %w", method, endpoint, err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			Status: resp.StatusCode,
			Method: method,
			URL:    endpoint,
			Body:   strings.TrimSpace(string(raw)),
		}
	}

	if len(raw) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		snippet := raw
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		return nil, fmt.Errorf("non-JSON response from %s %s: %s", method, endpoint, snippet)
	}
	return json.RawMessage(raw), nil
}
