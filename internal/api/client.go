package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// BaseURL is the default bubbly-todo server address.
	BaseURL = "http://localhost:8084"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader carries the per-request correlation id.
	RequestIDHeader = "X-Request-ID"
)

// Client is the bubbly-todo API client.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	logger      zerolog.Logger
}

// NewClient creates a new client for the server at baseURL.
// An empty baseURL selects BaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  zerolog.Nop(),
	}
}

// SetHTTPClient allows overriding the default HTTP client (useful for testing).
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetTimeout changes the timeout of the underlying HTTP client.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// SetAccessToken sets the bearer token sent with every request.
// The bubbly-todo server does not require one; it is only sent when set.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// SetLogger sets the logger used for request tracing.
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// BaseURL returns the server address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// response is a raw HTTP response with its body fully read.
type response struct {
	StatusCode int
	Body       []byte
}

// do performs an HTTP request and returns the raw response.
// Transport failures are returned as *NetworkError; status codes are not inspected.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*response, error) {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
		c.logger.Debug().Str("path", path).RawJSON("body", jsonBody).Msg("sending request body")
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With().Str("request_id", requestID).Str("method", method).Str("path", path).Logger()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("request failed")
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Msg("failed to read response body")
		return nil, &NetworkError{Op: method + " " + path, Err: err}
	}

	log.Info().Int("status", resp.StatusCode).Int("bytes", len(respBody)).Msg("response received")

	return &response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// getJSON performs a GET request and decodes a 200 JSON response into result.
func (c *Client) getJSON(ctx context.Context, path string, result interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(resp.Body),
		}
	}

	if err := json.Unmarshal(resp.Body, result); err != nil {
		return &DecodeError{Path: path, Err: err}
	}

	return nil
}

// postText performs a POST request with a JSON body and returns the plain-text
// response body. Any status other than 200 is returned as *APIError.
func (c *Client) postText(ctx context.Context, path string, body interface{}) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(resp.Body),
		}
	}

	return string(resp.Body), nil
}
