// Package agentclient is an HTTP client for the remote agent service: it
// opens response streams and manages conversation threads. It knows nothing
// about transcripts; callers feed the decoded events to the folding engine.
package agentclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/germanamz/chatwire/pkg/stream"
)

// Default transport retry policy, applied when the corresponding Client
// fields are zero.
const (
	DefaultRetries    = 3
	DefaultBackoff    = 100 * time.Millisecond
	DefaultMaxBackoff = 5 * time.Second
)

// TransportError reports a failure to reach the service or an error status
// from it. It wraps the underlying cause.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("agentclient: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client talks to one agent service instance. The zero retry fields fall
// back to the package defaults at call time.
type Client struct {
	BaseURL    string        // Service endpoint (no trailing slash).
	Client     *http.Client  // HTTP client; falls back to http.DefaultClient.
	Retries    int           // Attempts beyond the first on retryable failures.
	Backoff    time.Duration // Initial retry delay, doubled per attempt.
	MaxBackoff time.Duration // Retry delay cap.
}

// New creates a Client for the given base URL with the default retry policy.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Retries:    DefaultRetries,
		Backoff:    DefaultBackoff,
		MaxBackoff: DefaultMaxBackoff,
	}
}

// Agent returns a handle for the named agent.
func (c *Client) Agent(id string) *Agent {
	return &Agent{client: c, id: id}
}

// Agent addresses one agent exposed by the service.
type Agent struct {
	client *Client
	id     string
}

// StreamRequest is the body of a stream call. Option fields are forwarded to
// the service verbatim and omitted when zero.
type StreamRequest struct {
	Messages     []CoreMessage  `json:"messages"`
	ThreadID     string         `json:"threadId,omitempty"`
	ResourceID   string         `json:"resourceId,omitempty"`
	MaxSteps     int            `json:"maxSteps,omitempty"`
	Temperature  *float64       `json:"temperature,omitempty"`
	Instructions string         `json:"instructions,omitempty"`
	Output       map[string]any `json:"output,omitempty"`
}

// Stream opens a response stream for the given request. The caller owns the
// returned decoder and must Close it. Opening is retried per the client's
// retry policy; reading is not.
func (a *Agent) Stream(ctx context.Context, req StreamRequest) (*stream.Decoder, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Op: "encode stream request", Err: err}
	}

	path := fmt.Sprintf("/api/agents/%s/stream", a.id)

	var resp *http.Response
	err = a.client.withRetries(ctx, "open stream", func() (retryable bool, err error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.client.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return false, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err = a.client.httpClient().Do(httpReq)
		if err != nil {
			return true, err
		}
		if resp.StatusCode != http.StatusOK {
			defer resp.Body.Close()
			return retryableStatus(resp.StatusCode), statusError(resp)
		}
		return false, nil
	})
	if err != nil {
		return nil, err
	}

	return stream.NewDecoder(resp.Body), nil
}

// doJSON performs a request with a JSON body (optional) and decodes a JSON
// response into out (optional), retrying per the client's policy.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return &TransportError{Op: "encode " + path, Err: err}
		}
	}

	op := method + " " + path
	return c.withRetries(ctx, op, func() (bool, error) {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
		if err != nil {
			return false, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient().Do(req)
		if err != nil {
			return true, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return retryableStatus(resp.StatusCode), statusError(resp)
		}

		if out == nil {
			return false, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
		return false, nil
	})
}

// withRetries runs attempt until it succeeds, the error is not retryable, or
// the retry budget is exhausted. Delays double from Backoff up to MaxBackoff.
func (c *Client) withRetries(ctx context.Context, op string, attempt func() (retryable bool, err error)) error {
	retries := c.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}
	delay := c.Backoff
	if delay <= 0 {
		delay = DefaultBackoff
	}
	maxDelay := c.MaxBackoff
	if maxDelay <= 0 {
		maxDelay = DefaultMaxBackoff
	}

	var lastErr error
	for i := 0; i <= retries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return &TransportError{Op: op, Err: ctx.Err()}
			case <-time.After(delay):
			}
			delay = min(delay*2, maxDelay)
		}

		retryable, err := attempt()
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return &TransportError{Op: op, Err: lastErr}
}

func (c *Client) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	if len(snippet) == 0 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return fmt.Errorf("unexpected status %s: %s", resp.Status, snippet)
}
