package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
)

const DefaultBaseURL = "https://api.openai.com/v1"

const (
	betaHeader    = "assistants=v2"
	stepPageLimit = 100
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.Mutex
	apiKey string

	// Trace, when set, observes every request after it completes. Transport
	// failures report status 0.
	Trace func(method, url string, status int, elapsed time.Duration, err error)
}

func New(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetAPIKey is safe to call while a request is in flight.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiKey
}

// StatusError reports a non-2xx response; Body keeps the raw payload.
type StatusError struct {
	StatusCode int
	Message    string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api status %d", e.StatusCode)
}

// DecodeError reports a 2xx body that is not valid JSON.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	url := fmt.Sprintf("%s/threads/%s/runs/%s", c.baseURL, threadID, runID)
	var run Run
	if err := c.getJSON(ctx, url, &run); err != nil {
		return nil, fmt.Errorf("fetch run %s: %w", runID, err)
	}
	return &run, nil
}

// ListRunSteps fetches only the first page.
func (c *Client) ListRunSteps(ctx context.Context, threadID, runID string) ([]RunStep, error) {
	url := fmt.Sprintf("%s/threads/%s/runs/%s/steps?limit=%d", c.baseURL, threadID, runID, stepPageLimit)
	var list stepList
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, fmt.Errorf("fetch steps for run %s: %w", runID, err)
	}
	return list.Data, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	req.Header.Set("OpenAI-Beta", betaHeader)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.trace(url, 0, started, err)
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()
	c.trace(url, resp.StatusCode, started, nil)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		var envelope errorEnvelope
		if err := sonic.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
			se.Message = envelope.Error.Message
		}
		return se
	}

	if err := sonic.Unmarshal(body, out); err != nil {
		return &DecodeError{Body: string(body), Err: err}
	}
	return nil
}

func (c *Client) trace(url string, status int, started time.Time, err error) {
	if c.Trace == nil {
		return
	}
	c.Trace(http.MethodGet, url, status, time.Since(started), err)
}
