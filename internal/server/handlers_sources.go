package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/job-radar/internal/ingest"
	"github.com/jonathan/job-radar/internal/types"
)

// decodeSourceRequest parses and validates a source payload. A false
// return means the response has already been written.
func (s *Server) decodeSourceRequest(w http.ResponseWriter, r *http.Request) (types.SourceRequest, bool) {
	var req types.SourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	if err := s.authHandler.validator.Struct(req); err != nil {
		http.Error(w, extractValidationErrors(err), http.StatusBadRequest)
		return req, false
	}
	if req.Type == types.SourceTypeHTML {
		if err := ingest.ValidateSelectorConfig(req.Config); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return req, false
		}
	}
	return req, true
}

// handleCreateSource registers a new vacancy source.
func (s *Server) handleCreateSource(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSourceRequest(w, r)
	if !ok {
		return
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}
	source := &types.SourceConfig{
		ID:        uuid.New(),
		Type:      req.Type,
		Name:      req.Name,
		URL:       req.URL,
		Config:    req.Config,
		IsEnabled: enabled,
	}

	if err := s.store.CreateSource(r.Context(), source); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, source)
}

// handleListSources returns all configured sources. ?enabled=true limits
// to enabled ones.
func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	enabledOnly := r.URL.Query().Get("enabled") == "true"

	sources, err := s.store.ListSources(r.Context(), enabledOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if sources == nil {
		sources = []types.SourceConfig{}
	}
	writeJSON(w, http.StatusOK, sources)
}

// handleGetSource returns one source by id.
func (s *Server) handleGetSource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	source, err := s.store.GetSource(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if source == nil {
		http.Error(w, "Source not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, source)
}

// handleUpdateSource replaces a source's configuration.
func (s *Server) handleUpdateSource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := s.store.GetSource(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "Source not found", http.StatusNotFound)
		return
	}

	req, ok := s.decodeSourceRequest(w, r)
	if !ok {
		return
	}

	existing.Type = req.Type
	existing.Name = req.Name
	existing.URL = req.URL
	existing.Config = req.Config
	if req.IsEnabled != nil {
		existing.IsEnabled = *req.IsEnabled
	}

	if err := s.store.UpdateSource(r.Context(), existing); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// handleDeleteSource removes a source.
func (s *Server) handleDeleteSource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteSource(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListImportRuns returns the ingestion history for one source.
func (s *Server) handleListImportRuns(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	runs, err := s.store.ListImportRuns(r.Context(), id, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []types.ImportRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

// handleIngestSource triggers one ingestion pass and returns the
// finalized import run. Cached match sets are dropped afterwards since
// the vacancy pool may have changed.
func (s *Server) handleIngestSource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	source, err := s.store.GetSource(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if source == nil {
		http.Error(w, "Source not found", http.StatusNotFound)
		return
	}
	if !source.IsEnabled {
		http.Error(w, "Source is disabled", http.StatusConflict)
		return
	}

	run, err := s.ingester.IngestSource(r.Context(), *source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if run.InsertedCount > 0 || run.UpdatedCount > 0 {
		s.matchCache.InvalidateAll(r.Context())
	}
	writeJSON(w, http.StatusOK, run)
}
