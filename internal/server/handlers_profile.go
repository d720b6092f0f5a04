package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/server/middleware"
	"github.com/jonathan/job-radar/internal/types"
)

// handleGetProfile returns the caller's candidate profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
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
	writeJSON(w, http.StatusOK, profile)
}

// handlePutProfile creates or replaces the caller's candidate profile.
// The cached match set is dropped since scoring inputs changed.
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req types.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.authHandler.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		http.Error(w, "salary_min must not exceed salary_max", http.StatusBadRequest)
		return
	}

	profile := &types.Profile{
		ID:           uuid.New(),
		UserID:       userID,
		FullName:     req.FullName,
		Location:     req.Location,
		DesiredRoles: req.DesiredRoles,
		Skills:       req.Skills,
		Languages:    req.Languages,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
	}
	if existing, err := s.store.GetProfileByUserID(r.Context(), userID); err == nil && existing != nil {
		profile.ID = existing.ID
	}

	if err := s.store.UpsertProfile(r.Context(), profile); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.matchCache.InvalidateMatches(r.Context(), userID)
	writeJSON(w, http.StatusOK, profile)
}
