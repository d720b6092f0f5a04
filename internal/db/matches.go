package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/types"
)

// ReplaceMatches swaps out a user's entire match set atomically. A rerun
// of the matcher either lands in full or not at all.
func (db *DB) ReplaceMatches(ctx context.Context, userID uuid.UUID, matches []types.Match) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `DELETE FROM matches WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear matches: %w", err)
	}

	for _, m := range matches {
		missingJSON, err := json.Marshal(m.MissingSkills)
		if err != nil {
			return fmt.Errorf("failed to marshal missing skills: %w", err)
		}
		matchedJSON, err := json.Marshal(m.MatchedSkills)
		if err != nil {
			return fmt.Errorf("failed to marshal matched skills: %w", err)
		}
		reasonsJSON, err := json.Marshal(m.Reasons)
		if err != nil {
			return fmt.Errorf("failed to marshal reasons: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO matches (id, user_id, vacancy_id, score, explanation,
			   missing_skills, matched_skills, reasons)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			m.ID, m.UserID, m.VacancyID, m.Score, m.Explanation,
			missingJSON, matchedJSON, reasonsJSON,
		)
		if err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit matches: %w", err)
	}
	return nil
}

// ListMatches retrieves a user's current matches, best score first.
func (db *DB) ListMatches(ctx context.Context, userID uuid.UUID) ([]types.Match, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, vacancy_id, score, COALESCE(explanation, ''),
		        missing_skills, matched_skills, reasons, created_at
		 FROM matches WHERE user_id = $1
		 ORDER BY score DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []types.Match
	for rows.Next() {
		var m types.Match
		var missingJSON, matchedJSON, reasonsJSON []byte
		if err := rows.Scan(&m.ID, &m.UserID, &m.VacancyID, &m.Score, &m.Explanation,
			&missingJSON, &matchedJSON, &reasonsJSON, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		if missingJSON != nil {
			_ = json.Unmarshal(missingJSON, &m.MissingSkills)
		}
		if matchedJSON != nil {
			_ = json.Unmarshal(matchedJSON, &m.MatchedSkills)
		}
		if reasonsJSON != nil {
			_ = json.Unmarshal(reasonsJSON, &m.Reasons)
		}
		matches = append(matches, m)
	}
	return matches, nil
}
