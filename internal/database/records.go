package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maltedev/marketplace-product-extractor/internal/models"
)

// StoredRecord is one extraction result persisted for later comparison.
// The structured payload lives in a JSONB column; the page URL is the
// natural key, so re-extracting the same page updates in place.
type StoredRecord struct {
	ID        uuid.UUID             `db:"id"`
	URL       string                `db:"url"`
	Record    *models.ProductRecord `db:"record"`
	CreatedAt time.Time             `db:"created_at"`
	UpdatedAt time.Time             `db:"updated_at"`
}

var ErrRecordNotFound = errors.New("record not found")

const recordsSchema = `
CREATE TABLE IF NOT EXISTS product_records (
	id UUID PRIMARY KEY,
	url TEXT NOT NULL UNIQUE,
	record JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migrate creates the product_records table if it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, recordsSchema); err != nil {
		return fmt.Errorf("failed to create product_records table: %w", err)
	}
	return nil
}

// SaveRecord upserts one extraction result keyed by page URL.
func (db *DB) SaveRecord(ctx context.Context, record *models.ProductRecord) (*StoredRecord, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record: %w", err)
	}

	stored := &StoredRecord{
		URL:    record.URL,
		Record: record,
	}

	query := `
		INSERT INTO product_records (id, url, record)
		VALUES ($1, $2, $3)
		ON CONFLICT (url) DO UPDATE SET
			record = EXCLUDED.record,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`

	err = db.pool.QueryRow(ctx, query, uuid.New(), record.URL, payload).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}

	return stored, nil
}

// GetRecordByURL returns the stored extraction result for one page.
func (db *DB) GetRecordByURL(ctx context.Context, url string) (*StoredRecord, error) {
	query := `
		SELECT id, url, record, created_at, updated_at
		FROM product_records
		WHERE url = $1`

	return db.scanRecord(db.pool.QueryRow(ctx, query, url))
}

// GetRecord returns one stored extraction result by id.
func (db *DB) GetRecord(ctx context.Context, id uuid.UUID) (*StoredRecord, error) {
	query := `
		SELECT id, url, record, created_at, updated_at
		FROM product_records
		WHERE id = $1`

	return db.scanRecord(db.pool.QueryRow(ctx, query, id))
}

// ListRecords returns the most recently updated records.
func (db *DB) ListRecords(ctx context.Context, limit int) ([]*StoredRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, url, record, created_at, updated_at
		FROM product_records
		ORDER BY updated_at DESC
		LIMIT $1`

	rows, err := db.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := make([]*StoredRecord, 0)
	for rows.Next() {
		stored, err := db.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, stored)
	}

	return records, rows.Err()
}

func (db *DB) scanRecord(row pgx.Row) (*StoredRecord, error) {
	stored := &StoredRecord{}
	var payload []byte

	err := row.Scan(&stored.ID, &stored.URL, &payload, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	if err := json.Unmarshal(payload, &stored.Record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return stored, nil
}
