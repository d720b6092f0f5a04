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

func scanProfile(row pgx.Row) (*types.Profile, error) {
	var p types.Profile
	var rolesJSON, skillsJSON, languagesJSON []byte

	err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Location,
		&rolesJSON, &skillsJSON, &languagesJSON, &p.SalaryMin, &p.SalaryMax)
	if err != nil {
		return nil, err
	}

	if rolesJSON != nil {
		_ = json.Unmarshal(rolesJSON, &p.DesiredRoles)
	}
	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &p.Skills)
	}
	if languagesJSON != nil {
		_ = json.Unmarshal(languagesJSON, &p.Languages)
	}
	return &p, nil
}

func marshalProfileFields(profile *types.Profile) (rolesJSON, skillsJSON, languagesJSON []byte, err error) {
	if profile.DesiredRoles != nil {
		rolesJSON, err = json.Marshal(profile.DesiredRoles)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal desired roles: %w", err)
		}
	}
	if profile.Skills != nil {
		skillsJSON, err = json.Marshal(profile.Skills)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal skills: %w", err)
		}
	}
	if profile.Languages != nil {
		languagesJSON, err = json.Marshal(profile.Languages)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to marshal languages: %w", err)
		}
	}
	return rolesJSON, skillsJSON, languagesJSON, nil
}

// UpsertProfile creates or replaces the single profile a user owns.
func (db *DB) UpsertProfile(ctx context.Context, profile *types.Profile) error {
	rolesJSON, skillsJSON, languagesJSON, err := marshalProfileFields(profile)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (id, user_id, full_name, location, desired_roles,
		   skills, languages, salary_min, salary_max)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE SET
		     full_name = $3,
		     location = $4,
		     desired_roles = $5,
		     skills = $6,
		     languages = $7,
		     salary_min = $8,
		     salary_max = $9`,
		profile.ID, profile.UserID, profile.FullName, profile.Location,
		rolesJSON, skillsJSON, languagesJSON, profile.SalaryMin, profile.SalaryMax,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetProfileByUserID retrieves the profile owned by a user, nil when the
// user has not created one yet.
func (db *DB) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	profile, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT id, user_id, COALESCE(full_name, ''), COALESCE(location, ''),
		        desired_roles, skills, languages, salary_min, salary_max
		 FROM profiles WHERE user_id = $1`,
		userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}
