package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/job-radar/internal/types"
)

const vacancyColumns = `id, source_id, COALESCE(external_id, ''), title,
	COALESCE(company, ''), COALESCE(location, ''), remote, salary_min,
	salary_max, COALESCE(currency, ''), COALESCE(description, ''), source,
	COALESCE(url, ''), created_at`

func scanVacancy(row pgx.Row) (*types.Vacancy, error) {
	var v types.Vacancy
	err := row.Scan(&v.ID, &v.SourceID, &v.ExternalID, &v.Title, &v.Company,
		&v.Location, &v.Remote, &v.SalaryMin, &v.SalaryMax, &v.Currency,
		&v.Description, &v.Source, &v.URL, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// InsertVacancy stores a new vacancy.
func (db *DB) InsertVacancy(ctx context.Context, vacancy *types.Vacancy) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO vacancies (id, source_id, external_id, title, company, location,
		   remote, salary_min, salary_max, currency, description, source, url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		vacancy.ID, vacancy.SourceID, vacancy.ExternalID, vacancy.Title,
		vacancy.Company, vacancy.Location, vacancy.Remote, vacancy.SalaryMin,
		vacancy.SalaryMax, vacancy.Currency, vacancy.Description,
		vacancy.Source, vacancy.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert vacancy: %w", err)
	}
	return nil
}

// UpdateVacancy overwrites the mergeable content fields of an existing
// vacancy. Identity, source tagging and creation time are never touched.
func (db *DB) UpdateVacancy(ctx context.Context, vacancy *types.Vacancy) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE vacancies
		 SET title = $1, url = $2, description = $3, company = $4, location = $5
		 WHERE id = $6`,
		vacancy.Title, vacancy.URL, vacancy.Description, vacancy.Company,
		vacancy.Location, vacancy.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vacancy: %w", err)
	}
	return nil
}

// FindVacancyByExternalID looks up a vacancy by its source and upstream
// identifier. Returns nil without error when nothing matches.
func (db *DB) FindVacancyByExternalID(ctx context.Context, sourceID uuid.UUID, externalID string) (*types.Vacancy, error) {
	vacancy, err := scanVacancy(db.pool.QueryRow(ctx,
		`SELECT `+vacancyColumns+` FROM vacancies
		 WHERE source_id = $1 AND external_id = $2`,
		sourceID, externalID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vacancy by external id: %w", err)
	}
	return vacancy, nil
}

// FindVacancyByDedupKey looks up a vacancy by a content hash stored in
// the external-id slot, regardless of source.
func (db *DB) FindVacancyByDedupKey(ctx context.Context, key string) (*types.Vacancy, error) {
	vacancy, err := scanVacancy(db.pool.QueryRow(ctx,
		`SELECT `+vacancyColumns+` FROM vacancies WHERE external_id = $1`,
		key,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vacancy by dedup key: %w", err)
	}
	return vacancy, nil
}

// GetVacancy retrieves one vacancy by id, nil when absent.
func (db *DB) GetVacancy(ctx context.Context, id uuid.UUID) (*types.Vacancy, error) {
	vacancy, err := scanVacancy(db.pool.QueryRow(ctx,
		`SELECT `+vacancyColumns+` FROM vacancies WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vacancy: %w", err)
	}
	return vacancy, nil
}

// VacancyFilters holds optional filters for listing vacancies.
type VacancyFilters struct {
	SourceID *uuid.UUID
	Remote   *bool
	Limit    int
}

// ListVacancies retrieves vacancies, newest first.
func (db *DB) ListVacancies(ctx context.Context, filters VacancyFilters) ([]types.Vacancy, error) {
	if filters.Limit == 0 {
		filters.Limit = 500
	}

	query := `SELECT ` + vacancyColumns + ` FROM vacancies WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.SourceID != nil {
		query += fmt.Sprintf(" AND source_id = $%d", argNum)
		args = append(args, *filters.SourceID)
		argNum++
	}
	if filters.Remote != nil {
		query += fmt.Sprintf(" AND remote = $%d", argNum)
		args = append(args, *filters.Remote)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vacancies: %w", err)
	}
	defer rows.Close()

	var vacancies []types.Vacancy
	for rows.Next() {
		vacancy, err := scanVacancy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacancy: %w", err)
		}
		vacancies = append(vacancies, *vacancy)
	}
	return vacancies, nil
}
