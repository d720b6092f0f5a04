// Package types provides type definitions for structured data used throughout the job-radar system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// VacancySource identifies where a vacancy record originated.
type VacancySource string

// Vacancy origins. Manual covers records created directly by a user.
const (
	SourceRSS    VacancySource = "rss"
	SourceHTML   VacancySource = "html"
	SourceCSVURL VacancySource = "csv_url"
	SourceManual VacancySource = "manual"
)

// Vacancy represents a single job opening, either imported from a source
// or created manually.
//
// ExternalID holds the identifier the upstream source assigned to the
// record. When the source provides none, it holds the content hash computed
// by the ingest package instead, so a vacancy is always addressable by
// (SourceID, ExternalID).
type Vacancy struct {
	ID          uuid.UUID     `json:"id"`
	SourceID    *uuid.UUID    `json:"source_id,omitempty"`
	ExternalID  string        `json:"external_id,omitempty"`
	Title       string        `json:"title"`
	Company     string        `json:"company,omitempty"`
	Location    string        `json:"location,omitempty"`
	Remote      bool          `json:"remote"`
	SalaryMin   *float64      `json:"salary_min,omitempty"`
	SalaryMax   *float64      `json:"salary_max,omitempty"`
	Currency    string        `json:"currency,omitempty"`
	Description string        `json:"description,omitempty"`
	Source      VacancySource `json:"source"`
	URL         string        `json:"url,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// SourceType identifies how a configured source is fetched and parsed.
type SourceType string

// Supported source types.
const (
	SourceTypeRSS    SourceType = "rss"
	SourceTypeHTML   SourceType = "html"
	SourceTypeCSVURL SourceType = "csv_url"
	SourceTypeManual SourceType = "manual"
)

// SourceConfig describes one configured vacancy source. Config carries
// type-specific settings (CSS selectors for HTML sources) as raw JSON.
type SourceConfig struct {
	ID        uuid.UUID      `json:"id"`
	Type      SourceType     `json:"type"`
	Name      string         `json:"name"`
	URL       string         `json:"url,omitempty"`
	Config    map[string]any `json:"config,omitempty"`
	IsEnabled bool           `json:"is_enabled"`
}
