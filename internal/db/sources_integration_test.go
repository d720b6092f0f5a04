//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/types"
)

func TestIntegration_SourceCRUD(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	source := &types.SourceConfig{
		ID:   uuid.New(),
		Type: types.SourceTypeHTML,
		Name: "itest board",
		URL:  "https://test.example.com/jobs",
		Config: map[string]any{
			"list_selector":  "div.job",
			"title_selector": "h3",
		},
		IsEnabled: true,
	}
	if err := db.CreateSource(ctx, source); err != nil {
		t.Fatalf("CreateSource failed: %v", err)
	}

	found, err := db.GetSource(ctx, source.ID)
	if err != nil {
		t.Fatalf("GetSource failed: %v", err)
	}
	if found == nil {
		t.Fatal("Expected source, got nil")
	}
	if found.Config["list_selector"] != "div.job" {
		t.Errorf("Expected config round-trip, got %+v", found.Config)
	}

	found.Name = "itest board renamed"
	found.IsEnabled = false
	if err := db.UpdateSource(ctx, found); err != nil {
		t.Fatalf("UpdateSource failed: %v", err)
	}

	enabled, err := db.ListSources(ctx, true)
	if err != nil {
		t.Fatalf("ListSources failed: %v", err)
	}
	for _, s := range enabled {
		if s.ID == source.ID {
			t.Error("Disabled source should not appear in enabled-only list")
		}
	}

	if err := db.DeleteSource(ctx, source.ID); err != nil {
		t.Fatalf("DeleteSource failed: %v", err)
	}
	gone, err := db.GetSource(ctx, source.ID)
	if err != nil {
		t.Fatalf("GetSource after delete failed: %v", err)
	}
	if gone != nil {
		t.Error("Expected nil after delete")
	}
}

func TestIntegration_ImportRunLifecycle(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	source := createTestSource(t, db)

	run := &types.ImportRun{
		ID:        uuid.New(),
		SourceID:  source.ID,
		StartedAt: time.Now().UTC(),
		Status:    types.RunStatusRunning,
	}
	if err := db.CreateImportRun(ctx, run); err != nil {
		t.Fatalf("CreateImportRun failed: %v", err)
	}

	finished := time.Now().UTC()
	run.FinishedAt = &finished
	run.InsertedCount = 5
	run.UpdatedCount = 2
	run.Status = types.RunStatusSuccess
	if err := db.FinishImportRun(ctx, run); err != nil {
		t.Fatalf("FinishImportRun failed: %v", err)
	}

	found, err := db.GetImportRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetImportRun failed: %v", err)
	}
	if found.Status != types.RunStatusSuccess {
		t.Errorf("Expected success status, got %q", found.Status)
	}
	if found.InsertedCount != 5 || found.UpdatedCount != 2 {
		t.Errorf("Expected counts 5/2, got %d/%d", found.InsertedCount, found.UpdatedCount)
	}
	if found.FinishedAt == nil {
		t.Error("Expected finished_at to be set")
	}

	runs, err := db.ListImportRuns(ctx, source.ID, 0)
	if err != nil {
		t.Fatalf("ListImportRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("Expected 1 run, got %d", len(runs))
	}
}
