package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowcore/sourcing-assistant/internal/warehouse"
)

// fakeStore answers every query with a single-cell result echoing the
// query text, except queries containing "boom" which fail.
type fakeStore struct {
	delay      time.Duration
	inFlight   atomic.Int32
	maxSeen    atomic.Int32
	queryCount atomic.Int32
}

func (f *fakeStore) Query(ctx context.Context, sql string) (*warehouse.ResultSet, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		max := f.maxSeen.Load()
		if n <= max || f.maxSeen.CompareAndSwap(max, n) {
			break
		}
	}
	f.queryCount.Add(1)

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if strings.Contains(sql, "boom") {
		return nil, errors.New("table not found")
	}

	return &warehouse.ResultSet{
		Columns: []string{"query"},
		Rows:    [][]any{{sql}},
	}, nil
}

func (f *fakeStore) Ping(ctx context.Context) error { return nil }
func (f *fakeStore) Close() error                   { return nil }

func TestRunBatch_Completeness(t *testing.T) {
	store := &fakeStore{}
	batch := map[string]string{
		"kpis":      "SELECT 1",
		"savings":   "SELECT 2",
		"breakdown": "SELECT 3",
	}

	results, err := RunBatch(context.Background(), store, batch)
	require.NoError(t, err)

	require.Len(t, results, len(batch))
	for name, sql := range batch {
		rs, ok := results[name]
		require.True(t, ok, "missing result for %q", name)
		assert.Equal(t, sql, rs.Rows[0][0])
	}
}

func TestRunBatch_Empty(t *testing.T) {
	store := &fakeStore{}

	results, err := RunBatch(context.Background(), store, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, store.queryCount.Load(), "empty batch must not touch the store")
}

func TestRunBatch_FailFast(t *testing.T) {
	store := &fakeStore{}
	batch := map[string]string{
		"good_one": "SELECT 1",
		"bad":      "SELECT boom",
		"good_two": "SELECT 2",
	}

	results, err := RunBatch(context.Background(), store, batch)
	require.Error(t, err)
	assert.Nil(t, results, "no partial result set on failure")

	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, "bad", batchErr.Name)
	assert.ErrorContains(t, batchErr, "table not found")
}

func TestRunBatch_ConcurrencyCap(t *testing.T) {
	store := &fakeStore{delay: 10 * time.Millisecond}
	batch := make(map[string]string, 24)
	for i := 0; i < 24; i++ {
		batch[fmt.Sprintf("q%02d", i)] = fmt.Sprintf("SELECT %d", i)
	}

	_, err := RunBatch(context.Background(), store, batch)
	require.NoError(t, err)
	assert.LessOrEqual(t, store.maxSeen.Load(), int32(maxConcurrency))
}

func TestRunBatch_ConcurrentCallers(t *testing.T) {
	store := &fakeStore{}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			batch := map[string]string{
				fmt.Sprintf("a%d", i): fmt.Sprintf("SELECT %d", i),
				fmt.Sprintf("b%d", i): fmt.Sprintf("SELECT %d", i+100),
			}
			results, err := RunBatch(context.Background(), store, batch)
			assert.NoError(t, err)
			assert.Len(t, results, 2)
		}()
	}
	wg.Wait()
}
