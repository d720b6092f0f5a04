package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-radar/internal/types"
)

// CreateSource stores a new source configuration.
func (db *DB) CreateSource(ctx context.Context, source *types.SourceConfig) error {
	var configJSON []byte
	var err error
	if source.Config != nil {
		configJSON, err = json.Marshal(source.Config)
		if err != nil {
			return fmt.Errorf("failed to marshal source config: %w", err)
		}
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO sources (id, type, name, url, config, is_enabled)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		source.ID, source.Type, source.Name, source.URL, configJSON, source.IsEnabled,
	)
	if err != nil {
		return fmt.Errorf("failed to create source: %w", err)
	}
	return nil
}

// GetSource retrieves one source by id, nil when absent.
func (db *DB) GetSource(ctx context.Context, id uuid.UUID) (*types.SourceConfig, error) {
	var s types.SourceConfig
	var configJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, type, name, COALESCE(url, ''), config, is_enabled
		 FROM sources WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Type, &s.Name, &s.URL, &configJSON, &s.IsEnabled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get source: %w", err)
	}

	if configJSON != nil {
		_ = json.Unmarshal(configJSON, &s.Config)
	}
	return &s, nil
}

// ListSources retrieves source configurations, optionally limited to
// enabled ones.
func (db *DB) ListSources(ctx context.Context, enabledOnly bool) ([]types.SourceConfig, error) {
	query := `SELECT id, type, name, COALESCE(url, ''), config, is_enabled FROM sources`
	if enabledOnly {
		query += ` WHERE is_enabled`
	}
	query += ` ORDER BY name`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sources: %w", err)
	}
	defer rows.Close()

	var sources []types.SourceConfig
	for rows.Next() {
		var s types.SourceConfig
		var configJSON []byte
		if err := rows.Scan(&s.ID, &s.Type, &s.Name, &s.URL, &configJSON, &s.IsEnabled); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		if configJSON != nil {
			_ = json.Unmarshal(configJSON, &s.Config)
		}
		sources = append(sources, s)
	}
	return sources, nil
}

// UpdateSource overwrites a source configuration.
func (db *DB) UpdateSource(ctx context.Context, source *types.SourceConfig) error {
	var configJSON []byte
	var err error
	if source.Config != nil {
		configJSON, err = json.Marshal(source.Config)
		if err != nil {
			return fmt.Errorf("failed to marshal source config: %w", err)
		}
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE sources SET type = $1, name = $2, url = $3, config = $4, is_enabled = $5
		 WHERE id = $6`,
		source.Type, source.Name, source.URL, configJSON, source.IsEnabled, source.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update source: %w", err)
	}
	return nil
}

// DeleteSource removes a source configuration. Vacancies imported from it
// stay, with source_id cleared by the schema's ON DELETE SET NULL.
func (db *DB) DeleteSource(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM sources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete source: %w", err)
	}
	return nil
}
