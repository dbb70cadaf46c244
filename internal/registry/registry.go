// Package registry provides a process-wide table of named warehouse queries.
//
// Pages register the SQL they issue under a stable key so the same
// logical query is never silently rebound to different text by two
// call sites.
package registry

import (
	"fmt"
	"sync"

	"github.com/snowcore/sourcing-assistant/pkg/metrics"
)

// Entry is a registered query.
type Entry struct {
	Text        string
	Description string
}

// ConflictError indicates a key was re-registered with different text.
// It signals two call sites disagreeing about what a named query
// means, and is never recovered automatically.
type ConflictError struct {
	Key string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("query key %q already registered with different text", e.Key)
}

// Registry maps logical query keys to their exact text and description.
// Entries live for the process lifetime; keys are expected to come
// from a bounded set (callers hash free-text input rather than
// embedding it raw).
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register stores text under key and returns it. Registration is
// idempotent for identical text; divergent text for an existing key
// fails with a *ConflictError and leaves the stored entry unchanged.
func (r *Registry) Register(key, text, description string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[key]; ok {
		if existing.Text != text {
			return "", &ConflictError{Key: key}
		}
		return text, nil
	}

	r.entries[key] = Entry{Text: text, Description: description}
	metrics.RegisteredQueries.Set(float64(len(r.entries)))
	return text, nil
}

// MustRegister is Register for statically known queries, where a
// conflict is a programming error.
func (r *Registry) MustRegister(key, text, description string) string {
	sql, err := r.Register(key, text, description)
	if err != nil {
		panic(err)
	}
	return sql
}

// List returns a snapshot copy of all registered queries. Mutating
// the returned map does not affect the registry.
func (r *Registry) List() map[string]Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Entry, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out
}

// Len returns the number of registered queries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
