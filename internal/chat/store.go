// Package chat holds per-persona conversation threads and the
// orchestration that turns a user question into an assistant turn.
package chat

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/snowcore/sourcing-assistant/internal/model"
	"github.com/snowcore/sourcing-assistant/pkg/metrics"
)

// ThreadStore keeps ordered conversation turns keyed by context
// identifier (persona). Threads are in-memory and session-scoped: a
// restarted process starts empty.
//
// Chat interactions for one persona are serialized by the caller's
// event loop, but the store is shared process state, so it locks
// anyway.
type ThreadStore struct {
	mu      sync.RWMutex
	threads map[string][]model.Turn
}

// NewThreadStore creates an empty thread store.
func NewThreadStore() *ThreadStore {
	return &ThreadStore{
		threads: make(map[string][]model.Turn),
	}
}

// Thread returns a snapshot of the thread for contextID, creating an
// empty one on first use. Appends through the store are visible to
// subsequent calls.
func (s *ThreadStore) Thread(contextID string) []model.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, ok := s.threads[contextID]
	if !ok {
		s.threads[contextID] = []model.Turn{}
		return []model.Turn{}
	}

	out := make([]model.Turn, len(thread))
	copy(out, thread)
	return out
}

// Append adds one turn to the thread for contextID and returns it.
func (s *ThreadStore) Append(contextID string, role model.Role, content string) (model.Turn, error) {
	if !role.Valid() {
		return model.Turn{}, fmt.Errorf("unrecognized role %q", role)
	}

	turn := model.Turn{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.threads[contextID] = append(s.threads[contextID], turn)
	s.mu.Unlock()

	metrics.ConversationTurnsTotal.WithLabelValues(contextID, string(role)).Inc()
	return turn, nil
}

// Clear resets the thread for contextID to empty. Clearing a thread
// that was never created is not an error.
func (s *ThreadStore) Clear(contextID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[contextID] = []model.Turn{}
}
