package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"txscope/internal/model"
)

// Store provides Postgres persistence for classified events and report rows.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutEventBatch inserts or updates classified event records.
func (s *Store) PutEventBatch(events []model.EventRecord) error {
	return s.UpsertEvents(context.Background(), events)
}

// UpsertEvents inserts or updates classified event records keyed by
// transaction hash and ordinal, so re-classifying a block is idempotent.
func (s *Store) UpsertEvents(ctx context.Context, events []model.EventRecord) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(`
			INSERT INTO known_events (
				chain_id, block_number, tx_hash, ordinal, event_type, rendered, parts, failed, block_ts, ingested_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
			ON CONFLICT (chain_id, tx_hash, ordinal)
			DO UPDATE SET
				block_number = EXCLUDED.block_number,
				event_type = EXCLUDED.event_type,
				rendered = EXCLUDED.rendered,
				parts = EXCLUDED.parts,
				failed = EXCLUDED.failed,
				block_ts = EXCLUDED.block_ts,
				ingested_at = EXCLUDED.ingested_at,
				updated_at = now()
		`,
			int64(event.ChainID),
			int64(event.BlockNumber),
			event.TxHash,
			event.Ordinal,
			event.EventType,
			event.Rendered,
			[]byte(event.Parts),
			event.Failed,
			int64(event.Timestamp),
			event.IngestedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range events {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// UpsertWindows inserts or updates per-event-type window counts.
func (s *Store) UpsertWindows(ctx context.Context, windows []model.EventTypeWindow) error {
	if len(windows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, w := range windows {
		batch.Queue(`
			INSERT INTO event_type_windows (
				chain_id, event_type, window_size_seconds, window_start_ts, window_end_ts,
				event_count, failed_count, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
			ON CONFLICT (chain_id, event_type, window_size_seconds, window_start_ts)
			DO UPDATE SET
				window_end_ts = EXCLUDED.window_end_ts,
				event_count = EXCLUDED.event_count,
				failed_count = EXCLUDED.failed_count,
				updated_at = now()
		`,
			int64(w.ChainID),
			w.EventType,
			w.WindowSizeSecs,
			int64(w.WindowStart),
			int64(w.WindowEnd),
			int64(w.Count),
			int64(w.FailedCount),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range windows {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns last_processed_ts for a name.
func (s *Store) LoadState(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var ts uint64
	row := s.pool.QueryRow(ctx, `SELECT last_processed_ts FROM pipeline_state WHERE name=$1`, name)
	if err := row.Scan(&ts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return ts, true, nil
}

// SaveState upserts last_processed_ts for a name.
func (s *Store) SaveState(ctx context.Context, name string, ts uint64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pipeline_state (name, last_processed_ts, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_processed_ts = EXCLUDED.last_processed_ts, updated_at = now()
	`, name, ts)
	return err
}
