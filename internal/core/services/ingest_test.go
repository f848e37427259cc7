package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven/mocks"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driving"
	"github.com/prospecta-labs/prospecta-core/internal/normalisers"
)

func newIngestService() (*ingestService, *mocks.MockSearchStore, *mocks.MockLeadStore, *mocks.MockUpdateFeed) {
	searches := mocks.NewMockSearchStore()
	leads := mocks.NewMockLeadStore()
	feed := mocks.NewMockUpdateFeed()
	svc := NewIngestService(IngestServiceConfig{
		Searches: searches,
		Leads:    leads,
		Feed:     feed,
	}).(*ingestService)
	return svc, searches, leads, feed
}

func seedSearch(t *testing.T, searches *mocks.MockSearchStore, id string) {
	t.Helper()
	err := searches.Save(context.Background(), &domain.Search{
		ID: id, UserID: "u1", Query: "q",
		Status: domain.StatusProcessing, CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seeding search: %v", err)
	}
}

func TestIngestService_IngestLead(t *testing.T) {
	svc, searches, leads, _ := newIngestService()
	seedSearch(t, searches, "s1")

	lead, err := svc.IngestLead(context.Background(), driving.IngestLeadRequest{
		SearchID: "s1",
		Name:     "  Padaria Central  ",
		Phone:    "(19) 99888-7766",
		Email:    "contato@padaria.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.Name != "Padaria Central" {
		t.Errorf("expected trimmed name, got %q", lead.Name)
	}
	if leads.Count() != 1 {
		t.Errorf("expected one persisted lead, got %d", leads.Count())
	}
}

func TestIngestService_IngestLead_Normalisation(t *testing.T) {
	searches := mocks.NewMockSearchStore()
	leads := mocks.NewMockLeadStore()
	svc := NewIngestService(IngestServiceConfig{
		Searches:    searches,
		Leads:       leads,
		Normalisers: normalisers.DefaultRegistry(),
	}).(*ingestService)
	seedSearch(t, searches, "s1")

	lead, err := svc.IngestLead(context.Background(), driving.IngestLeadRequest{
		SearchID: "s1",
		Name:     "Padaria   Central",
		Phone:    "(19) 99888-7766",
		Email:    "Contato@Padaria.COM",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.Name != "Padaria Central" {
		t.Errorf("name = %q, want collapsed whitespace", lead.Name)
	}
	if lead.Phone != "19998887766" {
		t.Errorf("phone = %q, want digits only", lead.Phone)
	}
	if lead.Email != "contato@padaria.com" {
		t.Errorf("email = %q, want lowercase", lead.Email)
	}
}

func TestIngestService_IngestLead_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     driving.IngestLeadRequest
		wantErr error
	}{
		{
			name:    "missing search id",
			req:     driving.IngestLeadRequest{Name: "Acme"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing name",
			req:     driving.IngestLeadRequest{SearchID: "s1"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "unknown search",
			req:     driving.IngestLeadRequest{SearchID: "ghost", Name: "Acme"},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, searches, leads, _ := newIngestService()
			seedSearch(t, searches, "s1")

			_, err := svc.IngestLead(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if leads.Count() != 0 {
				t.Error("expected nothing persisted")
			}
		})
	}
}

func TestIngestService_ApplyUpdate(t *testing.T) {
	svc, searches, _, feed := newIngestService()
	seedSearch(t, searches, "s1")
	ctx := context.Background()

	err := svc.ApplyUpdate(ctx, &domain.SearchUpdate{
		SearchID:      "s1",
		Status:        domain.StatusSuccess,
		NextPageToken: "tok2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := searches.Get(ctx, "s1")
	if stored.Status != domain.StatusSuccess || stored.NextPageToken != "tok2" {
		t.Errorf("stored = %+v", stored)
	}
	if len(feed.Published) != 1 || feed.Published[0].SearchID != "s1" {
		t.Errorf("expected update published, got %v", feed.Published)
	}
}

func TestIngestService_ApplyUpdate_ClearsToken(t *testing.T) {
	svc, searches, _, _ := newIngestService()
	ctx := context.Background()
	_ = searches.Save(ctx, &domain.Search{
		ID: "s1", UserID: "u1",
		Status: domain.StatusProcessing, NextPageToken: "tok1",
		CreatedAt: time.Now(),
	})

	// The engine reporting no token ends pagination
	err := svc.ApplyUpdate(ctx, &domain.SearchUpdate{
		SearchID: "s1",
		Status:   domain.StatusSuccess,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := searches.Get(ctx, "s1")
	if stored.NextPageToken != "" {
		t.Errorf("expected token cleared, got %q", stored.NextPageToken)
	}
}

func TestIngestService_ApplyUpdate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		update *domain.SearchUpdate
	}{
		{
			name:   "missing search id",
			update: &domain.SearchUpdate{Status: domain.StatusSuccess},
		},
		{
			name:   "non-terminal status",
			update: &domain.SearchUpdate{SearchID: "s1", Status: domain.StatusProcessing},
		},
		{
			name:   "error without message",
			update: &domain.SearchUpdate{SearchID: "s1", Status: domain.StatusError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, searches, _, feed := newIngestService()
			seedSearch(t, searches, "s1")

			err := svc.ApplyUpdate(context.Background(), tt.update)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(feed.Published) != 0 {
				t.Error("expected nothing published")
			}
		})
	}
}

func TestIngestService_ApplyUpdate_ErrorReport(t *testing.T) {
	svc, searches, _, _ := newIngestService()
	seedSearch(t, searches, "s1")
	ctx := context.Background()

	err := svc.ApplyUpdate(ctx, &domain.SearchUpdate{
		SearchID:     "s1",
		Status:       domain.StatusError,
		ErrorMessage: "scrape quota exhausted",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := searches.Get(ctx, "s1")
	if stored.Status != domain.StatusError || stored.ErrorMessage != "scrape quota exhausted" {
		t.Errorf("stored = %+v", stored)
	}
}
