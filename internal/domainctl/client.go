package domainctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// NewClient creates a client. timeout has to cover a whole registration,
// which waits for the certificate authority.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Get(path string) (*Response, error) {
	return c.do(http.MethodGet, path, nil)
}

func (c *Client) Post(path string, body any) (*Response, error) {
	return c.do(http.MethodPost, path, body)
}

func (c *Client) Patch(path string, body any) (*Response, error) {
	return c.do(http.MethodPatch, path, body)
}

// Delete sends a DELETE with an optional JSON body; /domains takes the
// domain in the body.
func (c *Client) Delete(path string, body any) (*Response, error) {
	return c.do(http.MethodDelete, path, body)
}

func (c *Client) do(method, path string, body any) (*Response, error) {
	url := c.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	r := &Response{
		StatusCode: resp.StatusCode,
		Body:       json.RawMessage(respBody),
	}

	if resp.StatusCode >= 400 {
		return r, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: respBody}
	}

	return r, nil
}

// APIError is returned for 4xx and 5xx responses.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	var msg struct {
		Message        string   `json:"message"`
		PendingDomains []string `json:"pendingDomains"`
	}
	if json.Unmarshal(e.Body, &msg) == nil && msg.Message != "" {
		if len(msg.PendingDomains) > 0 {
			return fmt.Sprintf("%s %s: status %d: %s (pending: %s)", e.Method, e.Path, e.StatusCode, msg.Message, strings.Join(msg.PendingDomains, ", "))
		}
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, msg.Message)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, string(e.Body))
}
