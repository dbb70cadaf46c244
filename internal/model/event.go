package model

import (
	"time"
)

// AuditEventType labels audit stream records.
type AuditEventType string

const (
	AuditEventExchange AuditEventType = "exchange"
	AuditEventBatch    AuditEventType = "batch"
)

// ExchangeAudit records one assistant exchange for the audit stream.
// It carries metadata only, not the thread itself; threads stay
// session-scoped and non-durable.
type ExchangeAudit struct {
	ID          string    `json:"id"`
	Persona     string    `json:"persona"`
	Question    string    `json:"question"`
	Provider    string    `json:"provider"`
	Simulated   bool      `json:"simulated"`
	ToolOutputs int       `json:"tool_outputs"`
	Failed      bool      `json:"failed"`
	CreatedAt   time.Time `json:"created_at"`
}

// BatchAudit records one dashboard batch execution for the audit stream.
type BatchAudit struct {
	ID         string    `json:"id"`
	Page       string    `json:"page"`
	Queries    int       `json:"queries"`
	DurationMs int64     `json:"duration_ms"`
	Failed     bool      `json:"failed"`
	CreatedAt  time.Time `json:"created_at"`
}
