// Package agent provides clients for the conversational sourcing
// assistant backend.
//
// A Client turns one natural-language question into one synchronous
// backend call. Which backend answers is decided at construction
// time: the warehouse-hosted agent over HTTP, a hosted LLM provider,
// or the offline simulator when nothing is configured.
package agent

import (
	"context"
	"fmt"

	"github.com/snowcore/sourcing-assistant/internal/config"
)

// Exchange is the decoded outcome of one successful assistant call.
type Exchange struct {
	Question    string   `json:"question"`
	Response    string   `json:"response"`
	ToolResults []string `json:"tool_results,omitempty"`

	// Simulated marks answers produced by the offline simulator so
	// callers can distinguish canned output from live backend output.
	Simulated bool `json:"simulated,omitempty"`
}

// Client is the assistant backend contract.
type Client interface {
	// Ask sends one question, optionally tagged with the caller's
	// role context, and returns the decoded exchange. Calls are not
	// retried; a failure surfaces to the caller.
	Ask(ctx context.Context, question, contextTag string) (*Exchange, error)

	// Provider returns the backend name for logging and metrics.
	Provider() string
}

// TransportError indicates the assistant backend could not be
// reached or did not answer in time.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("assistant request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// SemanticError indicates the backend answered but embedded an
// explicit error event or field. The service-provided message is
// surfaced verbatim.
type SemanticError struct {
	Message string
}

func (e *SemanticError) Error() string {
	return e.Message
}

// New selects the assistant backend from configuration. Precedence:
// warehouse agent URL, then Anthropic, then OpenAI, then the offline
// simulator.
func New(cfg *config.Config) Client {
	switch {
	case cfg.AgentURL != "":
		return NewHTTPClient(cfg.AgentURL, cfg.AgentTimeout)
	case cfg.AnthropicAPIKey != "":
		if c, err := NewAnthropicClient(cfg.AnthropicAPIKey); err == nil {
			return c
		}
		return NewSimulator()
	case cfg.OpenAIAPIKey != "":
		if c, err := NewOpenAIClient(cfg.OpenAIAPIKey); err == nil {
			return c
		}
		return NewSimulator()
	default:
		return NewSimulator()
	}
}

// userContent prefixes the question with the caller's role context
// when present, matching the agent's prompt contract.
func userContent(question, contextTag string) string {
	if contextTag == "" {
		return question
	}
	return fmt.Sprintf("[Context: %s]\n\n%s", contextTag, question)
}
