package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// The agent service answers in one of two shapes: a sequence of typed
// events (streaming format, delivered whole), or a single flat object
// carrying the message. decodeResponse dispatches on the shape and
// folds either into one Exchange.

type agentEvent struct {
	Event string         `json:"event"`
	Data  agentEventData `json:"data"`
}

type agentEventData struct {
	Text    string `json:"text"`
	Message string `json:"message"`
}

type flatResponse struct {
	Message  string `json:"message"`
	Response string `json:"response"`
}

func decodeResponse(body []byte) (*Exchange, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &SemanticError{Message: "empty response from assistant backend"}
	}

	if trimmed[0] == '[' {
		var events []agentEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, &SemanticError{Message: fmt.Sprintf("malformed event stream: %v", err)}
		}
		return foldEvents(events)
	}

	var flat flatResponse
	if err := json.Unmarshal(trimmed, &flat); err != nil {
		return nil, &SemanticError{Message: fmt.Sprintf("malformed response: %v", err)}
	}

	text := flat.Message
	if text == "" {
		text = flat.Response
	}
	return &Exchange{Response: text}, nil
}

// foldEvents concatenates text events in emission order and collects
// tool and analyst outputs alongside. An error event anywhere
// short-circuits: a response that contains an explicit error is not
// partially recovered.
func foldEvents(events []agentEvent) (*Exchange, error) {
	var text strings.Builder
	var toolResults []string

	for _, ev := range events {
		switch ev.Event {
		case "text":
			text.WriteString(ev.Data.Text)
		case "tool_result", "analyst_result":
			toolResults = append(toolResults, ev.Data.Text)
		case "error":
			msg := ev.Data.Message
			if msg == "" {
				msg = "unknown assistant error"
			}
			return nil, &SemanticError{Message: msg}
		}
	}

	return &Exchange{
		Response:    text.String(),
		ToolResults: toolResults,
	}, nil
}
