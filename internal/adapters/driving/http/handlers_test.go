package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
	"github.com/prospecta-labs/prospecta-core/internal/runtime"
)

// Mock services for testing

type mockAuthService struct {
	authenticateFn  func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	validateTokenFn func(ctx context.Context, token string) (*domain.AuthContext, error)
	setupFn         func(ctx context.Context, req driving.SetupRequest) (*domain.User, error)
}

func (m *mockAuthService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.validateTokenFn != nil {
		return m.validateTokenFn(ctx, token)
	}
	return &domain.AuthContext{UserID: "u1", Email: "alice@example.com", Name: "Alice"}, nil
}

func (m *mockAuthService) Setup(ctx context.Context, req driving.SetupRequest) (*domain.User, error) {
	if m.setupFn != nil {
		return m.setupFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

type mockSearchService struct {
	startFn     func(ctx context.Context, userID, userName, query string) (*domain.Search, error)
	nextPageFn  func(ctx context.Context, searchID string) error
	listFn      func(ctx context.Context, userID string) ([]*domain.Search, error)
	listLeadsFn func(ctx context.Context, searchID string) ([]*domain.Lead, error)
}

func (m *mockSearchService) StartSearch(ctx context.Context, userID, userName, query string) (*domain.Search, error) {
	if m.startFn != nil {
		return m.startFn(ctx, userID, userName, query)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSearchService) RequestNextPage(ctx context.Context, searchID string) error {
	if m.nextPageFn != nil {
		return m.nextPageFn(ctx, searchID)
	}
	return errors.New("not implemented")
}

func (m *mockSearchService) ListByUser(ctx context.Context, userID string) ([]*domain.Search, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSearchService) ListLeads(ctx context.Context, searchID string) ([]*domain.Lead, error) {
	if m.listLeadsFn != nil {
		return m.listLeadsFn(ctx, searchID)
	}
	return nil, nil
}

type mockLeadService struct {
	getFn      func(ctx context.Context, id string) (*domain.Lead, error)
	whatsappFn func(ctx context.Context, id, message string, useDefault bool) (string, error)
	emailFn    func(ctx context.Context, id, body string, useDefault bool) (*domain.EmailDraft, error)
	contactFn  func(ctx context.Context, id string) (*domain.Contact, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockLeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockLeadService) WhatsAppLink(ctx context.Context, id, message string, useDefault bool) (string, error) {
	if m.whatsappFn != nil {
		return m.whatsappFn(ctx, id, message, useDefault)
	}
	return "", errors.New("not implemented")
}

func (m *mockLeadService) EmailDraft(ctx context.Context, id, body string, useDefault bool) (*domain.EmailDraft, error) {
	if m.emailFn != nil {
		return m.emailFn(ctx, id, body, useDefault)
	}
	return nil, errors.New("not implemented")
}

func (m *mockLeadService) CreateContact(ctx context.Context, id string) (*domain.Contact, error) {
	if m.contactFn != nil {
		return m.contactFn(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockLeadService) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return errors.New("not implemented")
}

type mockIngestService struct {
	ingestFn func(ctx context.Context, req driving.IngestLeadRequest) (*domain.Lead, error)
	updateFn func(ctx context.Context, update *domain.SearchUpdate) error
}

func (m *mockIngestService) IngestLead(ctx context.Context, req driving.IngestLeadRequest) (*domain.Lead, error) {
	if m.ingestFn != nil {
		return m.ingestFn(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockIngestService) ApplyUpdate(ctx context.Context, update *domain.SearchUpdate) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, update)
	}
	return errors.New("not implemented")
}

type mockSettingsService struct {
	getFn    func(ctx context.Context) (*domain.Settings, error)
	updateFn func(ctx context.Context, settings *domain.Settings) error
}

func (m *mockSettingsService) Get(ctx context.Context) (*domain.Settings, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return domain.DefaultSettings(), nil
}

func (m *mockSettingsService) Update(ctx context.Context, settings *domain.Settings) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, settings)
	}
	return nil
}

// serverFixture bundles the server and its mocks
type serverFixture struct {
	server   *Server
	auth     *mockAuthService
	search   *mockSearchService
	lead     *mockLeadService
	ingest   *mockIngestService
	settings *mockSettingsService
	config   *runtime.Config
}

func newServerFixture() *serverFixture {
	f := &serverFixture{
		auth:     &mockAuthService{},
		search:   &mockSearchService{},
		lead:     &mockLeadService{},
		ingest:   &mockIngestService{},
		settings: &mockSettingsService{},
		config:   runtime.NewConfig(nil),
	}
	f.server = NewServer(DefaultConfig(), f.auth, f.search, f.lead, f.ingest, f.settings, f.config, nil, nil)
	return f
}

func (f *serverFixture) request(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer test-token")
	}
	rec := httptest.NewRecorder()
	f.server.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHandleLogin(t *testing.T) {
	f := newServerFixture()
	f.auth.authenticateFn = func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
		if req.Email != "alice@example.com" {
			return nil, domain.ErrInvalidCredentials
		}
		return &domain.LoginResponse{
			Token:     "tok",
			ExpiresAt: time.Now().Add(time.Hour),
			User:      &domain.User{ID: "u1", Email: req.Email},
		}, nil
	}

	rec := f.request(t, http.MethodPost, "/api/v1/auth/login",
		domain.LoginRequest{Email: "alice@example.com", Password: "pw"}, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["token"] != "tok" {
		t.Errorf("body = %v", body)
	}

	rec = f.request(t, http.MethodPost, "/api/v1/auth/login",
		domain.LoginRequest{Email: "eve@example.com", Password: "pw"}, false)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad credentials: status = %d", rec.Code)
	}
}

func TestHandleSetup_AlreadyDone(t *testing.T) {
	f := newServerFixture()
	f.auth.setupFn = func(ctx context.Context, req driving.SetupRequest) (*domain.User, error) {
		return nil, domain.ErrUnauthorized
	}

	rec := f.request(t, http.MethodPost, "/api/v1/setup",
		driving.SetupRequest{Email: "x@y.z", Password: "pw"}, false)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleStartSearch(t *testing.T) {
	f := newServerFixture()
	var gotQuery, gotUser string
	f.search.startFn = func(ctx context.Context, userID, userName, query string) (*domain.Search, error) {
		gotQuery, gotUser = query, userID
		return &domain.Search{ID: "s1", Query: query, Status: domain.StatusProcessing}, nil
	}

	rec := f.request(t, http.MethodPost, "/api/v1/searches",
		startSearchRequest{Query: "bakeries"}, true)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["status"] != "success" || body["search_id"] != "s1" {
		t.Errorf("body = %v", body)
	}
	if gotQuery != "bakeries" || gotUser != "u1" {
		t.Errorf("service called with query=%q user=%q", gotQuery, gotUser)
	}
}

func TestHandleStartSearch_Unauthenticated(t *testing.T) {
	f := newServerFixture()
	f.auth.validateTokenFn = func(ctx context.Context, token string) (*domain.AuthContext, error) {
		return nil, domain.ErrTokenInvalid
	}

	rec := f.request(t, http.MethodPost, "/api/v1/searches",
		startSearchRequest{Query: "bakeries"}, true)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleStartSearch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty query", domain.ErrEmptyQuery, http.StatusBadRequest},
		{"engine unconfigured", domain.ErrTriggerNotConfigured, http.StatusConflict},
		{"engine failure", &domain.BackendError{Message: "quota exceeded"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture()
			f.search.startFn = func(ctx context.Context, userID, userName, query string) (*domain.Search, error) {
				return nil, tt.err
			}

			rec := f.request(t, http.MethodPost, "/api/v1/searches",
				startSearchRequest{Query: "x"}, true)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleNextPage_Conflicts(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ok", nil, http.StatusAccepted},
		{"no token", domain.ErrNoNextPage, http.StatusConflict},
		{"still running", domain.ErrSearchRunning, http.StatusConflict},
		{"unknown", domain.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture()
			f.search.nextPageFn = func(ctx context.Context, searchID string) error {
				return tt.err
			}

			rec := f.request(t, http.MethodPost, "/api/v1/searches/s1/next-page", nil, true)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandleListSearches_Empty(t *testing.T) {
	f := newServerFixture()

	rec := f.request(t, http.MethodGet, "/api/v1/searches", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	// Empty history must serialize as [], not null
	body := decodeBody(t, rec)
	if _, ok := body["searches"].([]any); !ok {
		t.Errorf("searches = %v", body["searches"])
	}
}

func TestHandleWhatsAppLink(t *testing.T) {
	f := newServerFixture()
	f.lead.whatsappFn = func(ctx context.Context, id, message string, useDefault bool) (string, error) {
		if !useDefault {
			t.Errorf("expected use_default passed through")
		}
		return "https://wa.me/5519998887766?text=Oi", nil
	}

	rec := f.request(t, http.MethodPost, "/api/v1/leads/l1/whatsapp",
		outreachRequest{UseDefault: true}, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if body := decodeBody(t, rec); body["url"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleCreateContact_Duplicate(t *testing.T) {
	f := newServerFixture()
	f.lead.contactFn = func(ctx context.Context, id string) (*domain.Contact, error) {
		return nil, domain.ErrContactExists
	}

	rec := f.request(t, http.MethodPost, "/api/v1/leads/l1/contact", nil, true)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleLeadWebhook(t *testing.T) {
	f := newServerFixture()
	f.config.Apply(&domain.Settings{LeadWebhookSecret: "whk"})
	f.ingest.ingestFn = func(ctx context.Context, req driving.IngestLeadRequest) (*domain.Lead, error) {
		return &domain.Lead{ID: "l1", SearchID: req.SearchID, Name: req.Name}, nil
	}

	payload, _ := json.Marshal(driving.IngestLeadRequest{SearchID: "s1", Name: "Acme"})
	req := httptest.NewRequest(http.MethodPost, "/webhooks/leads", bytes.NewReader(payload))
	req.Header.Set(leadSecretHeader, "whk")
	rec := httptest.NewRecorder()
	f.server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["status"] != "success" || body["lead_id"] != "l1" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleLeadWebhook_BadSecret(t *testing.T) {
	f := newServerFixture()
	f.config.Apply(&domain.Settings{LeadWebhookSecret: "whk"})

	payload, _ := json.Marshal(driving.IngestLeadRequest{SearchID: "s1", Name: "Acme"})
	req := httptest.NewRequest(http.MethodPost, "/webhooks/leads", bytes.NewReader(payload))
	req.Header.Set(leadSecretHeader, "wrong")
	rec := httptest.NewRecorder()
	f.server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleSearchUpdateWebhook(t *testing.T) {
	f := newServerFixture()
	var applied *domain.SearchUpdate
	f.ingest.updateFn = func(ctx context.Context, update *domain.SearchUpdate) error {
		applied = update
		return nil
	}

	// No secret configured: validation disabled
	payload, _ := json.Marshal(domain.SearchUpdate{
		SearchID: "s1", Status: domain.StatusSuccess, NextPageToken: "tok2",
	})
	req := httptest.NewRequest(http.MethodPost, "/webhooks/search-update", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	f.server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if applied == nil || applied.SearchID != "s1" || applied.NextPageToken != "tok2" {
		t.Errorf("applied = %+v", applied)
	}
}

func TestHandleSearchUpdateWebhook_NonTerminal(t *testing.T) {
	f := newServerFixture()
	f.ingest.updateFn = func(ctx context.Context, update *domain.SearchUpdate) error {
		return domain.ErrInvalidInput
	}

	payload, _ := json.Marshal(domain.SearchUpdate{SearchID: "s1", Status: domain.StatusProcessing})
	req := httptest.NewRequest(http.MethodPost, "/webhooks/search-update", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	f.server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["status"] != "error" || body["message"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleUpdateSettings_BadTriggerURL(t *testing.T) {
	f := newServerFixture()
	f.settings.updateFn = func(ctx context.Context, settings *domain.Settings) error {
		return domain.ErrInvalidInput
	}

	rec := f.request(t, http.MethodPut, "/api/v1/settings",
		domain.Settings{TriggerURL: "ftp://nope"}, true)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	f := newServerFixture()

	rec := f.request(t, http.MethodGet, "/health", nil, false)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
