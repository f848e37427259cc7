package postgres

import (
	"context"
	"database/sql"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchStore = (*SearchStore)(nil)

// SearchStore implements driven.SearchStore using PostgreSQL
type SearchStore struct {
	db *DB
}

// NewSearchStore creates a new SearchStore
func NewSearchStore(db *DB) *SearchStore {
	return &SearchStore{db: db}
}

// Save creates or updates a search record
func (s *SearchStore) Save(ctx context.Context, search *domain.Search) error {
	query := `
		INSERT INTO searches (id, user_id, query, status, next_page_token, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			query = EXCLUDED.query,
			status = EXCLUDED.status,
			next_page_token = EXCLUDED.next_page_token,
			error_message = EXCLUDED.error_message
	`

	_, err := s.db.ExecContext(ctx, query,
		search.ID,
		search.UserID,
		search.Query,
		string(search.Status),
		NullString(search.NextPageToken),
		NullString(search.ErrorMessage),
		search.CreatedAt,
	)
	return err
}

// Get retrieves a search by ID, including its lead count
func (s *SearchStore) Get(ctx context.Context, id string) (*domain.Search, error) {
	query := `
		SELECT s.id, s.user_id, s.query, s.status, s.next_page_token, s.error_message, s.created_at,
			   (SELECT COUNT(*) FROM leads l WHERE l.search_id = s.id)
		FROM searches s
		WHERE s.id = $1
	`

	search, err := scanSearch(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return search, nil
}

// ListByUser retrieves a user's searches ordered by creation time descending
func (s *SearchStore) ListByUser(ctx context.Context, userID string) ([]*domain.Search, error) {
	query := `
		SELECT s.id, s.user_id, s.query, s.status, s.next_page_token, s.error_message, s.created_at,
			   (SELECT COUNT(*) FROM leads l WHERE l.search_id = s.id)
		FROM searches s
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []*domain.Search
	for rows.Next() {
		search, err := scanSearch(rows)
		if err != nil {
			return nil, err
		}
		searches = append(searches, search)
	}
	return searches, rows.Err()
}

// UpdateStatus updates the mutable fields of one search. A nil token leaves
// the stored token untouched.
func (s *SearchStore) UpdateStatus(ctx context.Context, id string, status domain.SearchStatus, token *string, errorMessage string) error {
	query := `
		UPDATE searches
		SET status = $2,
			next_page_token = CASE WHEN $3::boolean THEN $4 ELSE next_page_token END,
			error_message = $5
		WHERE id = $1
	`

	var tokenValue sql.NullString
	if token != nil {
		tokenValue = NullString(*token)
	}

	result, err := s.db.ExecContext(ctx, query,
		id,
		string(status),
		token != nil,
		tokenValue,
		NullString(errorMessage),
	)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSearch(row rowScanner) (*domain.Search, error) {
	var search domain.Search
	var token, errorMessage sql.NullString

	err := row.Scan(
		&search.ID,
		&search.UserID,
		&search.Query,
		&search.Status,
		&token,
		&errorMessage,
		&search.CreatedAt,
		&search.LeadCount,
	)
	if err != nil {
		return nil, err
	}

	search.NextPageToken = token.String
	search.ErrorMessage = errorMessage.String
	return &search, nil
}
