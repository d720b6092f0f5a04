package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-radar/internal/types"
)

// CreateImportRun records the start of an ingestion pass.
func (db *DB) CreateImportRun(ctx context.Context, run *types.ImportRun) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO import_runs (id, source_id, started_at, inserted_count, updated_count, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		run.ID, run.SourceID, run.StartedAt, run.InsertedCount, run.UpdatedCount, run.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create import run: %w", err)
	}
	return nil
}

// FinishImportRun finalizes a run with its outcome and counts.
func (db *DB) FinishImportRun(ctx context.Context, run *types.ImportRun) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE import_runs
		 SET finished_at = $1, inserted_count = $2, updated_count = $3, status = $4, error = $5
		 WHERE id = $6`,
		run.FinishedAt, run.InsertedCount, run.UpdatedCount, run.Status, run.Error, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish import run: %w", err)
	}
	return nil
}

// GetImportRun retrieves one run by id, nil when absent.
func (db *DB) GetImportRun(ctx context.Context, id uuid.UUID) (*types.ImportRun, error) {
	var run types.ImportRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, source_id, started_at, finished_at, inserted_count, updated_count,
		        status, COALESCE(error, '')
		 FROM import_runs WHERE id = $1`,
		id,
	).Scan(&run.ID, &run.SourceID, &run.StartedAt, &run.FinishedAt,
		&run.InsertedCount, &run.UpdatedCount, &run.Status, &run.Error)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get import run: %w", err)
	}
	return &run, nil
}

// ListImportRuns retrieves runs for one source, newest first.
func (db *DB) ListImportRuns(ctx context.Context, sourceID uuid.UUID, limit int) ([]types.ImportRun, error) {
	if limit == 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, source_id, started_at, finished_at, inserted_count, updated_count,
		        status, COALESCE(error, '')
		 FROM import_runs WHERE source_id = $1
		 ORDER BY started_at DESC LIMIT $2`,
		sourceID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list import runs: %w", err)
	}
	defer rows.Close()

	var runs []types.ImportRun
	for rows.Next() {
		var run types.ImportRun
		if err := rows.Scan(&run.ID, &run.SourceID, &run.StartedAt, &run.FinishedAt,
			&run.InsertedCount, &run.UpdatedCount, &run.Status, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
