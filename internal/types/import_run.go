package types

import (
	"time"

	"github.com/google/uuid"
)

// ImportRunStatus is the lifecycle state of one ingestion pass.
type ImportRunStatus string

// Run states. A run is created running and finalized exactly once as
// either success or failed.
const (
	RunStatusRunning ImportRunStatus = "running"
	RunStatusSuccess ImportRunStatus = "success"
	RunStatusFailed  ImportRunStatus = "failed"
)

// ImportRun records one ingestion pass against one configured source.
type ImportRun struct {
	ID            uuid.UUID       `json:"id"`
	SourceID      uuid.UUID       `json:"source_id"`
	StartedAt     time.Time       `json:"started_at"`
	FinishedAt    *time.Time      `json:"finished_at,omitempty"`
	InsertedCount int             `json:"inserted_count"`
	UpdatedCount  int             `json:"updated_count"`
	Status        ImportRunStatus `json:"status"`
	Error         string          `json:"error,omitempty"`
}
