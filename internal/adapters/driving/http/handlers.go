package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.queue != nil {
		if err := s.queue.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "queue unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleLogin authenticates with email and password and returns a JWT
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSetup creates the initial user; rejected once any user exists
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req driving.SetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.authService.Setup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email and password are required")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusForbidden, "setup already completed")
		default:
			writeError(w, http.StatusInternalServerError, "setup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, authCtx)
}

// Search endpoints

// handleListSearches returns the caller's search history, newest first
func (s *Server) handleListSearches(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	searches, err := s.searchService.ListByUser(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list searches")
		return
	}
	if searches == nil {
		searches = []*domain.Search{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"searches": searches})
}

// startSearchRequest is the body for POST /api/v1/searches
type startSearchRequest struct {
	Query string `json:"query"`
}

// handleStartSearch creates a search and dispatches the start trigger.
// Results arrive asynchronously via the lead webhook.
func (s *Server) handleStartSearch(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req startSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	search, err := s.searchService.StartSearch(r.Context(), authCtx.UserID, authCtx.Name, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyQuery):
			writeError(w, http.StatusBadRequest, "query is required")
		case errors.Is(err, domain.ErrTriggerNotConfigured):
			writeError(w, http.StatusConflict, "scrape engine is not configured")
		default:
			writeError(w, http.StatusBadGateway, domain.ErrorMessage(err))
		}
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"status":    "success",
		"search_id": search.ID,
	})
}

// handleListLeads returns a search's accumulated results
func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := s.searchService.ListLeads(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "search not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}
	if leads == nil {
		leads = []*domain.Lead{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

// handleNextPage dispatches a continuation trigger for a search
func (s *Server) handleNextPage(w http.ResponseWriter, r *http.Request) {
	err := s.searchService.RequestNextPage(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "search not found")
		case errors.Is(err, domain.ErrNoNextPage):
			writeError(w, http.StatusConflict, "no next page available")
		case errors.Is(err, domain.ErrSearchRunning):
			writeError(w, http.StatusConflict, "search is still processing")
		case errors.Is(err, domain.ErrTriggerNotConfigured):
			writeError(w, http.StatusConflict, "scrape engine is not configured")
		default:
			writeError(w, http.StatusBadGateway, domain.ErrorMessage(err))
		}
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "success"})
}

// Lead endpoints

func (s *Server) handleGetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := s.leadService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load lead")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// outreachRequest is the body for the WhatsApp and email actions.
// UseDefault selects the message configured in settings.
type outreachRequest struct {
	Message    string `json:"message,omitempty"`
	Body       string `json:"body,omitempty"`
	UseDefault bool   `json:"use_default"`
}

func (s *Server) handleWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	var req outreachRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	link, err := s.leadService.WhatsAppLink(r.Context(), r.PathValue("id"), req.Message, req.UseDefault)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "lead not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusConflict, "lead has no phone number")
		default:
			writeError(w, http.StatusInternalServerError, "failed to build link")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

func (s *Server) handleEmailDraft(w http.ResponseWriter, r *http.Request) {
	var req outreachRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	draft, err := s.leadService.EmailDraft(r.Context(), r.PathValue("id"), req.Body, req.UseDefault)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "lead not found")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusConflict, "lead has no email address")
		default:
			writeError(w, http.StatusInternalServerError, "failed to build draft")
		}
		return
	}

	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	contact, err := s.leadService.CreateContact(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "lead not found")
		case errors.Is(err, domain.ErrContactExists):
			writeError(w, http.StatusConflict, "contact already exists")
		default:
			writeError(w, http.StatusInternalServerError, "failed to create contact")
		}
		return
	}

	writeJSON(w, http.StatusCreated, contact)
}

func (s *Server) handleDeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := s.leadService.Delete(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete lead")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Settings endpoints

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settingsService.Get(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.settingsService.Update(r.Context(), &settings); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "trigger URL must be http(s)")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to save settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Webhook endpoints.
// The scrape engine posts results here; responses use its
// {status, message} envelope.

func (s *Server) handleLeadWebhook(w http.ResponseWriter, r *http.Request) {
	var req driving.IngestLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWebhookError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	lead, err := s.ingestService.IngestLead(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeWebhookError(w, http.StatusBadRequest, "search_id and name are required")
		case errors.Is(err, domain.ErrNotFound):
			writeWebhookError(w, http.StatusNotFound, "unknown search")
		default:
			writeWebhookError(w, http.StatusInternalServerError, "failed to store lead")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"status":  "success",
		"lead_id": lead.ID,
	})
}

func (s *Server) handleSearchUpdateWebhook(w http.ResponseWriter, r *http.Request) {
	var update domain.SearchUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeWebhookError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := s.ingestService.ApplyUpdate(r.Context(), &update); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeWebhookError(w, http.StatusBadRequest, "update must carry a terminal status")
		case errors.Is(err, domain.ErrNotFound):
			writeWebhookError(w, http.StatusNotFound, "unknown search")
		default:
			writeWebhookError(w, http.StatusInternalServerError, "failed to apply update")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeWebhookError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}
