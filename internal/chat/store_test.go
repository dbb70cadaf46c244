package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowcore/sourcing-assistant/internal/model"
)

func TestThreadStore_AppendClearRoundtrip(t *testing.T) {
	store := NewThreadStore()

	assert.Empty(t, store.Thread("vp"))

	_, err := store.Append("vp", model.RoleUser, "Which suppliers have the highest risk?")
	require.NoError(t, err)
	_, err = store.Append("vp", model.RoleAssistant, "SUP010 leads the risk table.")
	require.NoError(t, err)

	thread := store.Thread("vp")
	require.Len(t, thread, 2)
	assert.Equal(t, model.RoleUser, thread[0].Role)
	assert.Equal(t, model.RoleAssistant, thread[1].Role)
	assert.Equal(t, "Which suppliers have the highest risk?", thread[0].Content)

	store.Clear("vp")
	assert.Empty(t, store.Thread("vp"))
}

func TestThreadStore_ClearUnknownContext(t *testing.T) {
	store := NewThreadStore()
	assert.NotPanics(t, func() {
		store.Clear("never-seen")
	})
}

func TestThreadStore_ThreadsAreIsolated(t *testing.T) {
	store := NewThreadStore()

	_, err := store.Append("vp", model.RoleUser, "vp question")
	require.NoError(t, err)
	_, err = store.Append("procurement", model.RoleUser, "procurement question")
	require.NoError(t, err)

	assert.Len(t, store.Thread("vp"), 1)
	assert.Len(t, store.Thread("procurement"), 1)

	store.Clear("vp")
	assert.Empty(t, store.Thread("vp"))
	assert.Len(t, store.Thread("procurement"), 1)
}

func TestThreadStore_RejectsUnknownRole(t *testing.T) {
	store := NewThreadStore()

	_, err := store.Append("vp", model.Role("system"), "not allowed")
	require.Error(t, err)
	assert.Empty(t, store.Thread("vp"))
}

func TestThreadStore_SnapshotIsCopy(t *testing.T) {
	store := NewThreadStore()

	_, err := store.Append("vp", model.RoleUser, "original")
	require.NoError(t, err)

	snapshot := store.Thread("vp")
	snapshot[0].Content = "mutated"

	assert.Equal(t, "original", store.Thread("vp")[0].Content)
}
