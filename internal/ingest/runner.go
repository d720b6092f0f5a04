package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/types"
)

// Store is the persistence surface the runner needs. The db package
// satisfies it.
type Store interface {
	Lookup
	InsertVacancy(ctx context.Context, vacancy *types.Vacancy) error
	UpdateVacancy(ctx context.Context, vacancy *types.Vacancy) error
	CreateImportRun(ctx context.Context, run *types.ImportRun) error
	FinishImportRun(ctx context.Context, run *types.ImportRun) error
}

// Fetcher retrieves the raw bytes of a source URL.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Runner executes ingestion passes. Concurrent passes against the same
// source are serialized with a per-source lock so two ingests of one feed
// cannot race into duplicate inserts.
type Runner struct {
	store   Store
	fetcher Fetcher

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewRunner creates a Runner on top of a store and a fetcher.
func NewRunner(store Store, fetcher Fetcher) *Runner {
	return &Runner{
		store:   store,
		fetcher: fetcher,
		locks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

// IngestSource runs one ingestion pass for a source and returns its
// finalized import run. Source-level failures (unreachable feed,
// unsupported type, missing URL) mark the run failed with the captured
// error; the returned error is reserved for persistence problems with the
// run record itself. Per-record problems are logged, skipped and visible
// only through the counts.
func (r *Runner) IngestSource(ctx context.Context, source types.SourceConfig) (*types.ImportRun, error) {
	lock := r.sourceLock(source.ID)
	lock.Lock()
	defer lock.Unlock()

	run := &types.ImportRun{
		ID:        uuid.New(),
		SourceID:  source.ID,
		StartedAt: time.Now().UTC(),
		Status:    types.RunStatusRunning,
	}
	if err := r.store.CreateImportRun(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create import run: %w", err)
	}

	inserted, updated, ingestErr := r.ingest(ctx, source)
	run.InsertedCount = inserted
	run.UpdatedCount = updated

	finished := time.Now().UTC()
	run.FinishedAt = &finished
	if ingestErr != nil {
		log.Printf("[INGEST] source %s (%s) failed: %v", source.Name, source.ID, ingestErr)
		run.Status = types.RunStatusFailed
		run.Error = ingestErr.Error()
	} else {
		run.Status = types.RunStatusSuccess
	}

	if err := r.store.FinishImportRun(ctx, run); err != nil {
		return run, fmt.Errorf("failed to finalize import run: %w", err)
	}
	return run, nil
}

// ingest fetches and parses the source feed, then merges every record.
func (r *Runner) ingest(ctx context.Context, source types.SourceConfig) (int, int, error) {
	switch source.Type {
	case types.SourceTypeRSS:
		records, err := r.fetchRecords(ctx, source, func(body []byte) ([]Record, error) {
			return ParseRSS(bytes.NewReader(body))
		})
		if err != nil {
			return 0, 0, err
		}
		ins, upd := r.applyRecords(ctx, source, types.SourceRSS, records)
		return ins, upd, nil

	case types.SourceTypeHTML:
		if err := ValidateSelectorConfig(source.Config); err != nil {
			return 0, 0, err
		}
		selectors := SelectorConfigFromMap(source.Config)
		records, err := r.fetchRecords(ctx, source, func(body []byte) ([]Record, error) {
			return ParseHTML(source.URL, bytes.NewReader(body), selectors)
		})
		if err != nil {
			return 0, 0, err
		}
		ins, upd := r.applyRecords(ctx, source, types.SourceHTML, records)
		return ins, upd, nil

	case types.SourceTypeCSVURL:
		records, err := r.fetchRecords(ctx, source, func(body []byte) ([]Record, error) {
			return ParseCSV(bytes.NewReader(body))
		})
		if err != nil {
			return 0, 0, err
		}
		ins, upd := r.applyRecords(ctx, source, types.SourceCSVURL, records)
		return ins, upd, nil

	default:
		return 0, 0, fmt.Errorf("unsupported source type %q", source.Type)
	}
}

// fetchRecords downloads the source URL and runs the format parser.
func (r *Runner) fetchRecords(ctx context.Context, source types.SourceConfig, parse func([]byte) ([]Record, error)) ([]Record, error) {
	if source.URL == "" {
		return nil, fmt.Errorf("source %q has no URL", source.Name)
	}
	body, err := r.fetcher.Get(ctx, source.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source.URL, err)
	}
	return parse(body)
}

// applyRecords merges every record and persists the outcome. A record
// that fails to merge or persist is logged and skipped; it simply never
// reaches the counts.
func (r *Runner) applyRecords(ctx context.Context, source types.SourceConfig, sourceType types.VacancySource, records []Record) (inserted, updated int) {
	for _, rec := range records {
		action, vacancy, err := Merge(ctx, r.store, source, sourceType, rec)
		if err != nil {
			log.Printf("[INGEST] skipping record %q from %s: %v", rec.Title, source.Name, err)
			continue
		}

		switch action {
		case ActionInserted:
			if err := r.store.InsertVacancy(ctx, vacancy); err != nil {
				log.Printf("[INGEST] failed to insert %q from %s: %v", rec.Title, source.Name, err)
				continue
			}
			inserted++
		case ActionUpdated:
			if err := r.store.UpdateVacancy(ctx, vacancy); err != nil {
				log.Printf("[INGEST] failed to update %q from %s: %v", rec.Title, source.Name, err)
				continue
			}
			updated++
		}
	}
	return inserted, updated
}

// sourceLock returns the mutex guarding one source id.
func (r *Runner) sourceLock(id uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}
