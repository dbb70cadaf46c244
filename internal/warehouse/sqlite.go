package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (and if needed creates) a SQLite-backed warehouse
// at dbPath. Pass ":memory:" for an ephemeral database.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		// WAL mode for better concurrency under parallel batches.
		dsn = dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if dbPath == ":memory:" {
		// A second connection to :memory: would see a different,
		// empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS supplier_master (
		supplier_id TEXT PRIMARY KEY,
		supplier_name TEXT NOT NULL,
		supplier_region TEXT NOT NULL,
		rating REAL NOT NULL,
		lead_time_days INTEGER NOT NULL,
		is_preferred INTEGER NOT NULL,
		annual_spend REAL NOT NULL,
		tier TEXT NOT NULL,
		contract_end TEXT,
		quality_cert TEXT
	);

	CREATE TABLE IF NOT EXISTS supplier_risk_scores (
		supplier_id TEXT PRIMARY KEY REFERENCES supplier_master(supplier_id),
		financial_risk REAL NOT NULL,
		delivery_risk REAL NOT NULL,
		quality_risk REAL NOT NULL,
		composite_risk REAL NOT NULL,
		supply_continuity REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS consolidation_scenarios (
		scenario_id TEXT PRIMARY KEY,
		scenario_name TEXT NOT NULL,
		source_suppliers TEXT NOT NULL,
		target_supplier TEXT NOT NULL,
		parts_affected INTEGER NOT NULL,
		projected_savings REAL NOT NULL,
		implementation_cost REAL NOT NULL,
		roi_pct REAL NOT NULL,
		status TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS part_master (
		global_id TEXT PRIMARY KEY,
		source_system TEXT NOT NULL,
		business_unit TEXT NOT NULL,
		part_category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS parts_analytics (
		global_id TEXT PRIMARY KEY,
		business_unit TEXT NOT NULL,
		part_category TEXT NOT NULL,
		material TEXT NOT NULL,
		supplier_id TEXT NOT NULL REFERENCES supplier_master(supplier_id),
		supplier_region TEXT NOT NULL,
		unit_cost REAL NOT NULL,
		total_spend REAL NOT NULL,
		inventory_value REAL NOT NULL,
		is_duplicate INTEGER NOT NULL,
		compliance_status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_parts_bu ON parts_analytics(business_unit);
	CREATE INDEX IF NOT EXISTS idx_parts_category ON parts_analytics(part_category);

	CREATE TABLE IF NOT EXISTS purchase_orders (
		po_id TEXT PRIMARY KEY,
		supplier_id TEXT NOT NULL REFERENCES supplier_master(supplier_id),
		part_category TEXT NOT NULL,
		po_date TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price REAL NOT NULL,
		benchmark_price REAL NOT NULL,
		total_amount REAL NOT NULL,
		on_contract INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_po_supplier ON purchase_orders(supplier_id);

	CREATE TABLE IF NOT EXISTS engineering_docs (
		doc_id TEXT PRIMARY KEY,
		part_category TEXT NOT NULL,
		standard TEXT NOT NULL,
		content TEXT NOT NULL,
		doc_path TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Query executes one query and returns its full result set. Column
// order follows the statement; values are returned as driver-native
// Go values.
func (s *SQLiteStore) Query(ctx context.Context, query string) (*ResultSet, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &ResultSet{
		Columns: columns,
		Rows:    [][]any{},
	}

	for rows.Next() {
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			// Normalize TEXT columns to string for JSON rendering.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// IsSeeded reports whether the warehouse already holds supplier data.
func (s *SQLiteStore) IsSeeded(ctx context.Context) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM supplier_master").Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count suppliers: %w", err)
	}
	return count > 0, nil
}

