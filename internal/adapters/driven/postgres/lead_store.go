package postgres

import (
	"context"
	"database/sql"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.LeadStore = (*LeadStore)(nil)

// LeadStore implements driven.LeadStore using PostgreSQL
type LeadStore struct {
	db *DB
}

// NewLeadStore creates a new LeadStore
func NewLeadStore(db *DB) *LeadStore {
	return &LeadStore{db: db}
}

// Save creates or updates a lead
func (s *LeadStore) Save(ctx context.Context, lead *domain.Lead) error {
	query := `
		INSERT INTO leads (id, search_id, name, phone, email, address, activity_summary, contact_created, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			address = EXCLUDED.address,
			activity_summary = EXCLUDED.activity_summary,
			contact_created = EXCLUDED.contact_created
	`

	_, err := s.db.ExecContext(ctx, query,
		lead.ID,
		lead.SearchID,
		lead.Name,
		NullString(lead.Phone),
		NullString(lead.Email),
		NullString(lead.Address),
		NullString(lead.ActivitySummary),
		lead.ContactCreated,
		lead.CreatedAt,
	)
	return err
}

// Get retrieves a lead by ID
func (s *LeadStore) Get(ctx context.Context, id string) (*domain.Lead, error) {
	query := `
		SELECT id, search_id, name, phone, email, address, activity_summary, contact_created, created_at
		FROM leads
		WHERE id = $1
	`

	lead, err := scanLead(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// ListBySearch retrieves a search's leads ordered by creation time descending
func (s *LeadStore) ListBySearch(ctx context.Context, searchID string) ([]*domain.Lead, error) {
	query := `
		SELECT id, search_id, name, phone, email, address, activity_summary, contact_created, created_at
		FROM leads
		WHERE search_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, searchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// SetContactCreated marks a lead as promoted to a contact
func (s *LeadStore) SetContactCreated(ctx context.Context, id string, created bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE leads SET contact_created = $2 WHERE id = $1`, id, created)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a lead
func (s *LeadStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanLead(row rowScanner) (*domain.Lead, error) {
	var lead domain.Lead
	var phone, email, address, summary sql.NullString

	err := row.Scan(
		&lead.ID,
		&lead.SearchID,
		&lead.Name,
		&phone,
		&email,
		&address,
		&summary,
		&lead.ContactCreated,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Phone = phone.String
	lead.Email = email.String
	lead.Address = address.String
	lead.ActivitySummary = summary.String
	return &lead, nil
}
