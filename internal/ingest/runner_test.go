package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-radar/internal/types"
)

// fakeStore implements Store in memory for runner tests.
type fakeStore struct {
	memoryLookup
	runs      []*types.ImportRun
	insertErr error
}

func (s *fakeStore) InsertVacancy(_ context.Context, vacancy *types.Vacancy) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.vacancies = append(s.vacancies, vacancy)
	return nil
}

func (s *fakeStore) UpdateVacancy(_ context.Context, _ *types.Vacancy) error {
	return nil
}

func (s *fakeStore) CreateImportRun(_ context.Context, run *types.ImportRun) error {
	s.runs = append(s.runs, run)
	return nil
}

func (s *fakeStore) FinishImportRun(_ context.Context, _ *types.ImportRun) error {
	return nil
}

// fakeFetcher serves canned bodies by URL.
type fakeFetcher struct {
	bodies map[string][]byte
	err    error
}

func (f *fakeFetcher) Get(_ context.Context, url string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.bodies[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return body, nil
}

func rssSource(url string) types.SourceConfig {
	return types.SourceConfig{
		ID:        uuid.New(),
		Type:      types.SourceTypeRSS,
		Name:      "test feed",
		URL:       url,
		IsEnabled: true,
	}
}

func TestIngestSourceSuccess(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{bodies: map[string][]byte{
		"https://jobs.test/feed": []byte(sampleFeed),
	}}
	runner := NewRunner(store, fetcher)

	run, err := runner.IngestSource(context.Background(), rssSource("https://jobs.test/feed"))

	require.NoError(t, err)
	assert.Equal(t, types.RunStatusSuccess, run.Status)
	assert.Equal(t, 2, run.InsertedCount)
	assert.Equal(t, 0, run.UpdatedCount)
	assert.Empty(t, run.Error)
	require.NotNil(t, run.FinishedAt)
	assert.False(t, run.FinishedAt.Before(run.StartedAt))
	assert.Len(t, store.vacancies, 2)
}

func TestIngestSourceSecondPassUpdates(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{bodies: map[string][]byte{
		"https://jobs.test/feed": []byte(sampleFeed),
	}}
	runner := NewRunner(store, fetcher)
	source := rssSource("https://jobs.test/feed")

	first, err := runner.IngestSource(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, 2, first.InsertedCount)

	second, err := runner.IngestSource(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, 0, second.InsertedCount)
	assert.Equal(t, 2, second.UpdatedCount)
	assert.Len(t, store.vacancies, 2)
}

func TestIngestSourceFetchFailure(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	runner := NewRunner(store, fetcher)

	run, err := runner.IngestSource(context.Background(), rssSource("https://jobs.test/feed"))

	require.NoError(t, err)
	assert.Equal(t, types.RunStatusFailed, run.Status)
	assert.Contains(t, run.Error, "connection refused")
	assert.Equal(t, 0, run.InsertedCount)
	assert.Equal(t, 0, run.UpdatedCount)
	require.NotNil(t, run.FinishedAt)
}

func TestIngestSourceUnsupportedType(t *testing.T) {
	store := &fakeStore{}
	runner := NewRunner(store, &fakeFetcher{})

	run, err := runner.IngestSource(context.Background(), types.SourceConfig{
		ID:   uuid.New(),
		Type: types.SourceTypeManual,
		Name: "manual entries",
		URL:  "https://unused.test",
	})

	require.NoError(t, err)
	assert.Equal(t, types.RunStatusFailed, run.Status)
	assert.Contains(t, run.Error, "unsupported source type")
}

func TestIngestSourceMissingURL(t *testing.T) {
	store := &fakeStore{}
	runner := NewRunner(store, &fakeFetcher{})

	run, err := runner.IngestSource(context.Background(), types.SourceConfig{
		ID:   uuid.New(),
		Type: types.SourceTypeRSS,
		Name: "broken",
	})

	require.NoError(t, err)
	assert.Equal(t, types.RunStatusFailed, run.Status)
	assert.Contains(t, run.Error, "has no URL")
}

func TestIngestSourcePerRecordFailureDoesNotAbort(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("constraint violation")}
	fetcher := &fakeFetcher{bodies: map[string][]byte{
		"https://jobs.test/feed": []byte(sampleFeed),
	}}
	runner := NewRunner(store, fetcher)

	run, err := runner.IngestSource(context.Background(), rssSource("https://jobs.test/feed"))

	require.NoError(t, err)
	// Failed inserts are skipped, not fatal: the run still succeeds with
	// nothing counted.
	assert.Equal(t, types.RunStatusSuccess, run.Status)
	assert.Equal(t, 0, run.InsertedCount)
	assert.Equal(t, 0, run.UpdatedCount)
}

func TestIngestSourceHTML(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{bodies: map[string][]byte{
		"https://jobs.test/list": []byte(samplePage),
	}}
	runner := NewRunner(store, fetcher)

	run, err := runner.IngestSource(context.Background(), types.SourceConfig{
		ID:   uuid.New(),
		Type: types.SourceTypeHTML,
		Name: "careers page",
		URL:  "https://jobs.test/list",
		Config: map[string]any{
			"company_selector": ".company",
			"external_id_attr": "data-job-id",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, types.RunStatusSuccess, run.Status)
	assert.Equal(t, 3, run.InsertedCount)
}

func TestIngestSourceHTMLBadConfig(t *testing.T) {
	store := &fakeStore{}
	runner := NewRunner(store, &fakeFetcher{})

	run, err := runner.IngestSource(context.Background(), types.SourceConfig{
		ID:   uuid.New(),
		Type: types.SourceTypeHTML,
		Name: "careers page",
		URL:  "https://jobs.test/list",
		Config: map[string]any{
			"list_selektor": "article",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, types.RunStatusFailed, run.Status)
	assert.Contains(t, run.Error, "validation failed")
}

func TestIngestSourceCSV(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{bodies: map[string][]byte{
		"https://jobs.test/export.csv": []byte("title,company,url\nGo Developer,Acme,https://jobs.test/1\n"),
	}}
	runner := NewRunner(store, fetcher)

	run, err := runner.IngestSource(context.Background(), types.SourceConfig{
		ID:   uuid.New(),
		Type: types.SourceTypeCSVURL,
		Name: "csv export",
		URL:  "https://jobs.test/export.csv",
	})

	require.NoError(t, err)
	assert.Equal(t, types.RunStatusSuccess, run.Status)
	assert.Equal(t, 1, run.InsertedCount)
}
