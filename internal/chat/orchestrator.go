package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snowcore/sourcing-assistant/internal/agent"
	"github.com/snowcore/sourcing-assistant/internal/events"
	"github.com/snowcore/sourcing-assistant/internal/model"
	"github.com/snowcore/sourcing-assistant/pkg/logger"
	"github.com/snowcore/sourcing-assistant/pkg/metrics"
)

// errorPrefix marks assistant turns that carry an error description
// instead of an answer.
const errorPrefix = "**Error:**"

// Orchestrator glues the thread store to the assistant client: one
// user question in, exactly one user turn and one assistant turn out.
type Orchestrator struct {
	store     *ThreadStore
	client    agent.Client
	publisher *events.Publisher
	logger    *logger.Logger
}

// NewOrchestrator creates a conversation orchestrator. publisher may
// be nil when no audit stream is configured.
func NewOrchestrator(store *ThreadStore, client agent.Client, publisher *events.Publisher, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		client:    client,
		publisher: publisher,
		logger:    log,
	}
}

// Store returns the underlying thread store.
func (o *Orchestrator) Store() *ThreadStore {
	return o.store
}

// HandleUserMessage appends the question as a user turn, asks the
// assistant, and appends exactly one assistant turn: the decoded
// answer with tool outputs rendered as fenced blocks, or a marked
// error description if the call failed. Errors are folded into the
// conversation rather than returned; a question never yields zero or
// more than two turns.
func (o *Orchestrator) HandleUserMessage(ctx context.Context, question, contextID, contextTag string) []model.Turn {
	if _, err := o.store.Append(contextID, model.RoleUser, question); err != nil {
		// Role is a constant here; this cannot happen.
		o.logger.Error("failed to append user turn", zap.Error(err))
	}

	start := time.Now()
	exchange, err := o.client.Ask(ctx, question, contextTag)
	duration := time.Since(start).Seconds()

	var content string
	if err != nil {
		metrics.RecordAgentRequest(o.client.Provider(), "error", duration)
		o.logger.Warn("assistant call failed",
			zap.String("persona", contextID),
			zap.String("provider", o.client.Provider()),
			zap.Error(err),
		)
		content = fmt.Sprintf("%s %v", errorPrefix, err)
	} else {
		metrics.RecordAgentRequest(o.client.Provider(), "success", duration)
		content = renderExchange(exchange)
	}

	if _, appendErr := o.store.Append(contextID, model.RoleAssistant, content); appendErr != nil {
		o.logger.Error("failed to append assistant turn", zap.Error(appendErr))
	}

	o.audit(ctx, contextID, question, exchange, err)

	return o.store.Thread(contextID)
}

// renderExchange builds the assistant turn content: response text
// first, then each tool output in its own fenced block, in the order
// received.
func renderExchange(exchange *agent.Exchange) string {
	content := exchange.Response
	if content == "" {
		content = "No response received."
	}

	if len(exchange.ToolResults) > 0 {
		var b strings.Builder
		b.WriteString(content)
		b.WriteString("\n\n**Tool Results:**\n")
		for _, tr := range exchange.ToolResults {
			b.WriteString("```\n")
			b.WriteString(tr)
			b.WriteString("\n```\n")
		}
		content = b.String()
	}

	return content
}

func (o *Orchestrator) audit(ctx context.Context, persona, question string, exchange *agent.Exchange, askErr error) {
	if o.publisher == nil {
		return
	}

	record := model.ExchangeAudit{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Persona:   persona,
		Question:  question,
		Provider:  o.client.Provider(),
		Failed:    askErr != nil,
		CreatedAt: time.Now(),
	}
	if exchange != nil {
		record.Simulated = exchange.Simulated
		record.ToolOutputs = len(exchange.ToolResults)
	}

	o.publisher.PublishExchange(ctx, record)
}
