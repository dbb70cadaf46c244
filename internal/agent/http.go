package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient calls the warehouse-hosted sourcing agent over its
// request/response endpoint.
type HTTPClient struct {
	url        string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the agent endpoint at url.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Provider returns the backend name.
func (c *HTTPClient) Provider() string {
	return "warehouse-agent"
}

type agentRequest struct {
	Messages []agentMessage `json:"messages"`
	Stream   bool           `json:"stream"`
}

type agentMessage struct {
	Role    string             `json:"role"`
	Content []agentContentPart `json:"content"`
}

type agentContentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Ask sends one question as a single synchronous call. The call is
// never retried here; repeated agent invocation has real cost and
// idempotency of the backend is not assumed.
func (c *HTTPClient) Ask(ctx context.Context, question, contextTag string) (*Exchange, error) {
	payload := agentRequest{
		Messages: []agentMessage{
			{
				Role: "user",
				Content: []agentContentPart{
					{Type: "text", Text: userContent(question, contextTag)},
				},
			},
		},
		Stream: false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal agent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &SemanticError{
			Message: fmt.Sprintf("API error (%d): %s", resp.StatusCode, truncate(string(respBody), 500)),
		}
	}

	exchange, err := decodeResponse(respBody)
	if err != nil {
		return nil, err
	}
	exchange.Question = question
	return exchange, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
