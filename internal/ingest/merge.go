package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/types"
)

// Action says what Merge did with an incoming record.
type Action string

// Merge outcomes.
const (
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
)

// Lookup finds existing vacancies during deduplication. The db package
// implements it; tests use an in-memory fake.
type Lookup interface {
	// FindVacancyByExternalID matches on the (source, external id) pair.
	FindVacancyByExternalID(ctx context.Context, sourceID uuid.UUID, externalID string) (*types.Vacancy, error)
	// FindVacancyByDedupKey matches a computed content hash stored in the
	// external-id slot, regardless of source.
	FindVacancyByDedupKey(ctx context.Context, key string) (*types.Vacancy, error)
}

// Merge resolves one incoming record against the existing vacancies.
//
// Records with a natural external id are looked up by (source, external
// id); the rest by their content hash. A hit overwrites exactly the
// title, url, description, company and location fields and reports
// ActionUpdated — identity and creation metadata stay untouched. A miss
// constructs a fresh vacancy, with the content hash standing in for the
// missing external id, and reports ActionInserted; persisting it is the
// caller's job.
func Merge(ctx context.Context, lookup Lookup, source types.SourceConfig, sourceType types.VacancySource, rec Record) (Action, *types.Vacancy, error) {
	externalID := rec.ExternalID

	var existing *types.Vacancy
	var err error
	if externalID != "" {
		existing, err = lookup.FindVacancyByExternalID(ctx, source.ID, externalID)
	} else {
		externalID = DedupKey(rec.Company, rec.Title, rec.Location, rec.URL)
		existing, err = lookup.FindVacancyByDedupKey(ctx, externalID)
	}
	if err != nil {
		return "", nil, fmt.Errorf("vacancy lookup: %w", err)
	}

	if existing != nil {
		existing.Title = rec.Title
		existing.URL = rec.URL
		existing.Description = rec.Description
		existing.Company = rec.Company
		existing.Location = rec.Location
		return ActionUpdated, existing, nil
	}

	sourceID := source.ID
	vacancy := &types.Vacancy{
		ID:          uuid.New(),
		SourceID:    &sourceID,
		ExternalID:  externalID,
		Title:       rec.Title,
		Company:     rec.Company,
		Location:    rec.Location,
		Description: rec.Description,
		URL:         rec.URL,
		Source:      sourceType,
	}
	return ActionInserted, vacancy, nil
}
