package server

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/db"
	"github.com/jonathan/job-radar/internal/types"
)

// handleListVacancies returns vacancies, newest first. Supports
// ?source_id= and ?remote= filters.
func (s *Server) handleListVacancies(w http.ResponseWriter, r *http.Request) {
	var filters db.VacancyFilters

	if raw := r.URL.Query().Get("source_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid source_id", http.StatusBadRequest)
			return
		}
		filters.SourceID = &id
	}
	switch r.URL.Query().Get("remote") {
	case "":
	case "true":
		remote := true
		filters.Remote = &remote
	case "false":
		remote := false
		filters.Remote = &remote
	default:
		http.Error(w, "Invalid remote filter", http.StatusBadRequest)
		return
	}

	vacancies, err := s.store.ListVacancies(r.Context(), filters)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if vacancies == nil {
		vacancies = []types.Vacancy{}
	}
	writeJSON(w, http.StatusOK, vacancies)
}

// handleGetVacancy returns one vacancy by id.
func (s *Server) handleGetVacancy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	vacancy, err := s.store.GetVacancy(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if vacancy == nil {
		http.Error(w, "Vacancy not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, vacancy)
}
