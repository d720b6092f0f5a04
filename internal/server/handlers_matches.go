package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/db"
	"github.com/jonathan/job-radar/internal/matching"
	"github.com/jonathan/job-radar/internal/server/middleware"
	"github.com/jonathan/job-radar/internal/types"
)

// handleListMatches returns the caller's current match set, computing it
// on first access. The cache answers repeat reads until the profile or
// the vacancy pool changes.
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if cached, ok := s.matchCache.GetMatches(r.Context(), userID); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	matches, err := s.store.ListMatches(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if matches == nil {
		matches = []types.Match{}
	}

	s.matchCache.SetMatches(r.Context(), userID, matches)
	writeJSON(w, http.StatusOK, matches)
}

// handleRefreshMatches recomputes the caller's matches against the
// current vacancy pool and replaces the persisted set.
func (s *Server) handleRefreshMatches(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	matches, err := s.refreshMatches(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, matches)
}

// refreshMatches runs the scorer for one user and persists the outcome.
func (s *Server) refreshMatches(ctx context.Context, userID uuid.UUID) ([]types.Match, error) {
	profile, err := s.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, &ErrNotFound{Resource: "profile", ID: userID}
	}

	vacancies, err := s.store.ListVacancies(ctx, db.VacancyFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to load vacancies: %w", err)
	}

	matches := matching.BuildMatches(profile, vacancies, s.locale)
	for i := range matches {
		matches[i].ID = uuid.New()
		matches[i].UserID = userID
	}

	if err := s.store.ReplaceMatches(ctx, userID, matches); err != nil {
		return nil, fmt.Errorf("failed to persist matches: %w", err)
	}

	s.matchCache.SetMatches(ctx, userID, matches)
	return matches, nil
}

// handleSkillGap builds the learning plan for one vacancy against the
// caller's profile.
func (s *Server) handleSkillGap(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vacancyID, ok := pathID(w, r)
	if !ok {
		return
	}

	vacancy, err := s.store.GetVacancy(r.Context(), vacancyID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if vacancy == nil {
		http.Error(w, "Vacancy not found", http.StatusNotFound)
		return
	}

	profile, err := s.store.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if profile == nil {
		http.Error(w, "Profile not found", http.StatusNotFound)
		return
	}

	result := matching.Score(profile, *vacancy, s.locale)
	plan := s.advisor.BuildPlan(r.Context(), *vacancy, result)
	writeJSON(w, http.StatusOK, plan)
}
