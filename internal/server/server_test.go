package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/advice"
	"github.com/jonathan/job-radar/internal/config"
	"github.com/jonathan/job-radar/internal/db"
	"github.com/jonathan/job-radar/internal/server/middleware"
	"github.com/jonathan/job-radar/internal/types"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]types.User
	profiles  map[uuid.UUID]types.Profile
	vacancies map[uuid.UUID]types.Vacancy
	sources   map[uuid.UUID]types.SourceConfig
	runs      map[uuid.UUID][]types.ImportRun
	matches   map[uuid.UUID][]types.Match

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[uuid.UUID]types.User),
		profiles:  make(map[uuid.UUID]types.Profile),
		vacancies: make(map[uuid.UUID]types.Vacancy),
		sources:   make(map[uuid.UUID]types.SourceConfig),
		runs:      make(map[uuid.UUID][]types.ImportRun),
		matches:   make(map[uuid.UUID][]types.Match),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, user *types.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email")
		}
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpdateUserPassword(_ context.Context, id uuid.UUID, hashedPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("no such user")
	}
	u.HashedPassword = hashedPassword
	f.users[id] = u
	return nil
}

func (f *fakeStore) UpsertProfile(_ context.Context, profile *types.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[profile.UserID] = *profile
	return nil
}

func (f *fakeStore) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*types.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[userID]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakeStore) ListVacancies(_ context.Context, filters db.VacancyFilters) ([]types.Vacancy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.Vacancy
	for _, v := range f.vacancies {
		if filters.SourceID != nil && (v.SourceID == nil || *v.SourceID != *filters.SourceID) {
			continue
		}
		if filters.Remote != nil && v.Remote != *filters.Remote {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeStore) GetVacancy(_ context.Context, id uuid.UUID) (*types.Vacancy, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.vacancies[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateSource(_ context.Context, source *types.SourceConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[source.ID] = *source
	return nil
}

func (f *fakeStore) GetSource(_ context.Context, id uuid.UUID) (*types.SourceConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sources[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeStore) ListSources(_ context.Context, enabledOnly bool) ([]types.SourceConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.SourceConfig
	for _, s := range f.sources {
		if enabledOnly && !s.IsEnabled {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) UpdateSource(_ context.Context, source *types.SourceConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources[source.ID] = *source
	return nil
}

func (f *fakeStore) DeleteSource(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sources, id)
	return nil
}

func (f *fakeStore) ListImportRuns(_ context.Context, sourceID uuid.UUID, _ int) ([]types.ImportRun, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.runs[sourceID], nil
}

func (f *fakeStore) ReplaceMatches(_ context.Context, userID uuid.UUID, matches []types.Match) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.matches[userID] = matches
	return nil
}

func (f *fakeStore) ListMatches(_ context.Context, userID uuid.UUID) ([]types.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matches[userID], nil
}

// fakeIngester records the sources it was asked to ingest.
type fakeIngester struct {
	run    *types.ImportRun
	err    error
	called []types.SourceConfig
}

func (f *fakeIngester) IngestSource(_ context.Context, source types.SourceConfig) (*types.ImportRun, error) {
	f.called = append(f.called, source)
	return f.run, f.err
}

// newTestServer wires a Server around fakes, without touching the
// network, Postgres or Redis.
func newTestServer(store *fakeStore, ingester Ingester) *Server {
	passwordConfig := &config.PasswordConfig{BcryptCost: 10}
	jwtService := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	userService := NewUserService(store, passwordConfig)

	return &Server{
		store:       store,
		ingester:    ingester,
		advisor:     advice.NewAdvisor(nil),
		locale:      "en",
		jwtService:  jwtService,
		userService: userService,
		authHandler: NewAuthHandler(userService, jwtService),
	}
}

// authedRequest builds a request whose context already carries a user ID,
// bypassing the middleware.
func authedRequest(method, target string, body io.Reader, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}
