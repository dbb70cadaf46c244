// Package executor runs dashboard query batches concurrently against
// the warehouse.
package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/snowcore/sourcing-assistant/internal/warehouse"
	"github.com/snowcore/sourcing-assistant/pkg/metrics"
)

// maxConcurrency caps how many queries one batch runs at once, so a
// wide page cannot open unbounded concurrent connections against the
// warehouse.
const maxConcurrency = 8

// BatchError reports the first query failure observed in a batch.
// The batch fails as a whole; sibling results are discarded so a page
// never renders a partial, silently misleading result set.
type BatchError struct {
	Name string
	Err  error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch query %q failed: %v", e.Name, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// RunBatch executes every query in batch concurrently against store
// and returns a result per name. The returned map has exactly the
// key set of batch. An empty batch returns an empty map without
// touching the store.
//
// Each call owns its own scratch state, so independent page contexts
// may call RunBatch concurrently. There is no internal timeout and no
// way to abandon an in-flight batch; deadlines belong to ctx and the
// store's own request handling.
func RunBatch(ctx context.Context, store warehouse.Store, batch map[string]string) (map[string]*warehouse.ResultSet, error) {
	results := make(map[string]*warehouse.ResultSet, len(batch))
	if len(batch) == 0 {
		return results, nil
	}

	start := time.Now()

	limit := maxConcurrency
	if len(batch) < limit {
		limit = len(batch)
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for name, sql := range batch {
		g.Go(func() error {
			rs, err := store.Query(gctx, sql)
			if err != nil {
				return &BatchError{Name: name, Err: err}
			}
			mu.Lock()
			results[name] = rs
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.RecordBatch("error", time.Since(start).Seconds(), len(batch))
		return nil, err
	}

	metrics.RecordBatch("success", time.Since(start).Seconds(), len(batch))
	return results, nil
}
