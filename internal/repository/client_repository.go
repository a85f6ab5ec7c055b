package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ayushkalathiya945/investment--sub001/internal/apperrors"
	"github.com/Ayushkalathiya945/investment--sub001/internal/model"
)

// ClientRepository provides data access methods for the client table.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new ClientRepository with the provided database connection.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetClient retrieves a single client by ID.
// Returns apperrors.ErrClientNotFound if no client exists with the given ID.
func (r *ClientRepository) GetClient(clientID string) (model.Client, error) {
	query := `
		SELECT id, code, name, email, created_at
		FROM client
		WHERE id = ?
	`

	var c model.Client
	var email sql.NullString
	var createdAtStr string

	err := r.db.QueryRow(query, clientID).Scan(&c.ID, &c.Code, &c.Name, &email, &createdAtStr)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Client{}, apperrors.ErrClientNotFound
	}
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to query client table: %w", err)
	}

	c.Email = email.String
	c.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Client{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return c, nil
}

// GetAllClients retrieves all clients ordered by account code.
func (r *ClientRepository) GetAllClients() ([]model.Client, error) {
	query := `
		SELECT id, code, name, email, created_at
		FROM client
		ORDER BY code ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query client table: %w", err)
	}
	defer rows.Close()

	clients := []model.Client{}
	for rows.Next() {
		var c model.Client
		var email sql.NullString
		var createdAtStr string

		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &email, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan client table results: %w", err)
		}

		c.Email = email.String
		c.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		clients = append(clients, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client table: %w", err)
	}

	return clients, nil
}

// InsertClient inserts a new client row.
// Returns apperrors.ErrDuplicateEntry when the account code is already taken.
func (r *ClientRepository) InsertClient(ctx context.Context, c *model.Client) error {
	query := `
		INSERT INTO client (id, code, name, email, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Code, c.Name, c.Email, c.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert client: %w", err)
	}

	return nil
}

// UpdateClient updates the mutable fields of an existing client.
func (r *ClientRepository) UpdateClient(ctx context.Context, c *model.Client) error {
	query := `
		UPDATE client
		SET code = ?, name = ?, email = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, c.Code, c.Name, c.Email, c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to update client: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrClientNotFound
	}

	return nil
}

// DeleteClient removes a client row.
func (r *ClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM client WHERE id = ?`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrClientNotFound
	}

	return nil
}

// CountTrades returns the number of trades recorded for a client. Used before
// deletion so that trade history is never silently discarded.
func (r *ClientRepository) CountTrades(clientID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM trade WHERE client_id = ?`, clientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return count, nil
}
