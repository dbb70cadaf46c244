package queries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snowcore/sourcing-assistant/internal/executor"
	"github.com/snowcore/sourcing-assistant/internal/registry"
	"github.com/snowcore/sourcing-assistant/internal/warehouse"
)

func seededStore(t *testing.T) *warehouse.SQLiteStore {
	t.Helper()
	store, err := warehouse.NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Seed(120, 300))
	return store
}

func TestLanding_RegistrationIdempotent(t *testing.T) {
	r := registry.New()

	first := Landing(r)
	second := Landing(r)

	assert.Equal(t, first, second)
	assert.Equal(t, len(first), r.Len())
}

func TestFilteredPages_DistinctKeysPerFilter(t *testing.T) {
	r := registry.New()

	Procurement(r, "Valve")
	before := r.Len()
	Procurement(r, "Motor")
	assert.Greater(t, r.Len(), before, "a new filter value registers new keys")

	// Same filter again adds nothing.
	atMotor := r.Len()
	Procurement(r, "Motor")
	assert.Equal(t, atMotor, r.Len())
}

func TestFilteredPages_CaseDifferingFiltersDoNotCollide(t *testing.T) {
	r := registry.New()

	require.NotPanics(t, func() {
		SupplyChain(r, "Aerospace")
		SupplyChain(r, "aerospace")
	})

	Procurement(r, "Valve")
	before := r.Len()
	require.NotPanics(t, func() {
		Procurement(r, "valve")
	})
	assert.Greater(t, r.Len(), before, "case-differing filters register under distinct keys")
}

func TestFilteredPages_RawFilterNeverAppearsInKeys(t *testing.T) {
	r := registry.New()

	SupplyChain(r, "Snowcore Industrial")
	Procurement(r, "O'Ring")

	for key := range r.List() {
		assert.NotContains(t, key, " ")
		assert.NotContains(t, key, "'")
	}
}

func TestSearchDocs_HashedKeys(t *testing.T) {
	r := registry.New()

	SearchDocs(r, "sterilization requirements for valves", 3)
	SearchDocs(r, "sterilization requirements for valves", 3)
	assert.Equal(t, 1, r.Len())

	SearchDocs(r, "torque testing", 3)
	assert.Equal(t, 2, r.Len())

	for key := range r.List() {
		assert.NotContains(t, key, " ", "raw free text must not appear in keys")
	}
}

func TestLandingBatch_RunsAgainstWarehouse(t *testing.T) {
	store := seededStore(t)
	r := registry.New()
	batch := Landing(r)

	results, err := executor.RunBatch(context.Background(), store, batch)
	require.NoError(t, err)
	require.Len(t, results, len(batch))

	kpis := results["kpis"]
	require.Len(t, kpis.Rows, 1)
	assert.Contains(t, kpis.Columns, "total_skus")
	assert.EqualValues(t, 120, kpis.Rows[0][0])

	savings := results["savings"]
	require.Len(t, savings.Rows, 1)
	assert.InDelta(t, 1554000.0, toFloat(t, savings.Rows[0][0]), 1.0)
}

func TestSupplyChainBatch_RunsAgainstWarehouse(t *testing.T) {
	store := seededStore(t)
	r := registry.New()
	batch := SupplyChain(r, "All")

	results, err := executor.RunBatch(context.Background(), store, batch)
	require.NoError(t, err)

	risk := results["supplier_risk"]
	assert.Len(t, risk.Rows, 12, "one row per seeded supplier")

	scenarios := results["consolidation_scenarios"]
	assert.Len(t, scenarios.Rows, 6)
}

func TestProcurementBatch_RunsAgainstWarehouse(t *testing.T) {
	store := seededStore(t)
	r := registry.New()
	batch := Procurement(r, "Valve")

	results, err := executor.RunBatch(context.Background(), store, batch)
	require.NoError(t, err)
	require.Len(t, results, len(batch))

	kpi := results["maverick_kpi"]
	require.Len(t, kpi.Rows, 1)
	total := toFloat(t, kpi.Rows[0][0])
	maverick := toFloat(t, kpi.Rows[0][1])
	assert.Greater(t, total, 0.0)
	assert.Greater(t, maverick, 0.0)
	assert.Less(t, maverick, total)
}

func TestAnalyst_GoldenVsFallback(t *testing.T) {
	r := registry.New()

	golden := Analyst(r, "What is the inventory value of duplicate stainless parts?")
	assert.Contains(t, golden, "Stainless Steel")

	fallback := Analyst(r, "Show me something else")
	assert.NotContains(t, fallback, "Stainless Steel")
}

func toFloat(t *testing.T, v any) float64 {
	t.Helper()
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	default:
		t.Fatalf("unexpected numeric type %T", v)
		return 0
	}
}
