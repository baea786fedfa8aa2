// Package outbox keeps a durable local queue of orders that still have to
// be copied to the replica store. Orders are enqueued at creation time and
// drained by a background worker, so replication never blocks the POS.
package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cetadcco/carwash-pos/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS order_outbox (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	order_id TEXT NOT NULL,
	payload TEXT NOT NULL,
	replicated INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_order_outbox_pending ON order_outbox (replicated) WHERE replicated = 0;
`

// Record is one queued order awaiting replication.
type Record struct {
	ID      int64
	OrderID string
	Payload []byte
}

// Order decodes the queued order payload.
func (r Record) Order() (models.Order, error) {
	var order models.Order
	if err := json.Unmarshal(r.Payload, &order); err != nil {
		return models.Order{}, fmt.Errorf("decode outbox payload %d: %w", r.ID, err)
	}
	return order, nil
}

// Store is the sqlite-backed outbox queue.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the outbox database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open outbox db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init outbox schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Enqueue adds an order to the replication queue.
func (s *Store) Enqueue(ctx context.Context, order models.Order) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO order_outbox (order_id, payload) VALUES (?, ?)`,
		order.ID.Hex(), string(payload),
	)
	if err != nil {
		return fmt.Errorf("enqueue order %s: %w", order.ID.Hex(), err)
	}
	return nil
}

// Pending returns up to limit not-yet-replicated records, oldest first.
func (s *Store) Pending(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, order_id, payload FROM order_outbox WHERE replicated = 0 ORDER BY id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query pending: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var payload string
		if err := rows.Scan(&rec.ID, &rec.OrderID, &payload); err != nil {
			return nil, err
		}
		rec.Payload = []byte(payload)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkReplicated marks a record as copied to the replica store.
func (s *Store) MarkReplicated(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE order_outbox SET replicated = 1 WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("mark replicated %d: %w", id, err)
	}
	return nil
}

// PendingCount returns the number of records still waiting for replication.
func (s *Store) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM order_outbox WHERE replicated = 0`,
	).Scan(&n)
	return n, err
}
