package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is an HTTP client for the API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is an error response from the API
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// IsCode reports whether err is an APIError with the given code
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// Do performs an HTTP request
func (c *Client) Do(method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err == nil && apiErr.Code != "" {
			return apiErr
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Get performs a GET request
func (c *Client) Get(path string, result any) error {
	return c.Do(http.MethodGet, path, nil, result)
}

// Post performs a POST request
func (c *Client) Post(path string, body, result any) error {
	return c.Do(http.MethodPost, path, body, result)
}

// Join enters a wallet into matchmaking
func (c *Client) Join(walletID string) (*JoinResult, error) {
	var result JoinResult
	if err := c.Post("/api/v1/rooms", map[string]string{"walletId": walletID}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Submit reports a wallet's metrics for a room
func (c *Client) Submit(roomID, walletID string, resourceUsed, duration float64) (*Submission, error) {
	req := map[string]any{
		"roomId":       roomID,
		"walletId":     walletID,
		"resourceUsed": resourceUsed,
		"duration":     duration,
	}
	var result Submission
	if err := c.Post("/api/v1/results", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Room fetches a room by id
func (c *Client) Room(roomID string) (*Room, error) {
	var result Room
	if err := c.Get("/api/v1/rooms/"+url.PathEscape(roomID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Result fetches the arbitrated outcome of a room
func (c *Client) Result(roomID string) (*Outcome, error) {
	var result Outcome
	if err := c.Get("/api/v1/results/"+url.PathEscape(roomID), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
