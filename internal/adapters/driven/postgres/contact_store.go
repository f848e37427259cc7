package postgres

import (
	"context"
	"database/sql"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ContactStore = (*ContactStore)(nil)

// ContactStore implements driven.ContactStore using PostgreSQL
type ContactStore struct {
	db *DB
}

// NewContactStore creates a new ContactStore
func NewContactStore(db *DB) *ContactStore {
	return &ContactStore{db: db}
}

// Save creates a contact
func (s *ContactStore) Save(ctx context.Context, contact *domain.Contact) error {
	query := `
		INSERT INTO contacts (id, name, phone, email, street, notes, is_company, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		contact.ID,
		contact.Name,
		NullString(contact.Phone),
		NullString(contact.Email),
		NullString(contact.Street),
		NullString(contact.Notes),
		contact.IsCompany,
		contact.CreatedAt,
	)
	return err
}

// FindMatch returns an existing contact with the same email or phone.
// Empty values never match.
func (s *ContactStore) FindMatch(ctx context.Context, email, phone string) (*domain.Contact, error) {
	query := `
		SELECT id, name, phone, email, street, notes, is_company, created_at
		FROM contacts
		WHERE ($1 <> '' AND email = $1) OR ($2 <> '' AND phone = $2)
		LIMIT 1
	`

	var contact domain.Contact
	var phoneCol, emailCol, street, notes sql.NullString

	err := s.db.QueryRowContext(ctx, query, email, phone).Scan(
		&contact.ID,
		&contact.Name,
		&phoneCol,
		&emailCol,
		&street,
		&notes,
		&contact.IsCompany,
		&contact.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	contact.Phone = phoneCol.String
	contact.Email = emailCol.String
	contact.Street = street.String
	contact.Notes = notes.String
	return &contact, nil
}
