// Package entries provides the PostgreSQL repository for sealed vault
// entries, keyed by (user, label).
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/dmitrijs2005/zkvault/internal/dbx"
	"github.com/dmitrijs2005/zkvault/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements entry storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new entry. A label already used by the same user yields
// common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO entries (id, user_id, label, ciphertext, nonce, auth_tag)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	id := uuid.NewString()
	err := r.db.QueryRowContext(ctx, query,
		id, entry.UserID, entry.Label, entry.Ciphertext, entry.Nonce, entry.AuthTag).
		Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// List returns labels and timestamps only, ordered by label.
func (r *PostgresRepository) List(ctx context.Context, userID string) ([]*models.Entry, error) {
	query := `
		SELECT id, label, created_at, updated_at
		FROM entries
		WHERE user_id = $1
		ORDER BY label
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		e := &models.Entry{UserID: userID}
		if err := rows.Scan(&e.ID, &e.Label, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

// ListWithEnvelopes returns every entry of the user including ciphertext.
func (r *PostgresRepository) ListWithEnvelopes(ctx context.Context, userID string) ([]*models.Entry, error) {
	query := `
		SELECT id, label, ciphertext, nonce, auth_tag, created_at, updated_at
		FROM entries
		WHERE user_id = $1
		ORDER BY label
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		e := &models.Entry{UserID: userID}
		if err := rows.Scan(&e.ID, &e.Label, &e.Ciphertext, &e.Nonce, &e.AuthTag, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, label string) (*models.Entry, error) {
	query := `
		SELECT id, ciphertext, nonce, auth_tag, created_at, updated_at
		FROM entries
		WHERE user_id = $1 AND label = $2
	`
	e := &models.Entry{UserID: userID, Label: label}
	err := r.db.QueryRowContext(ctx, query, userID, label).
		Scan(&e.ID, &e.Ciphertext, &e.Nonce, &e.AuthTag, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Update replaces the envelope of an existing entry and bumps updated_at.
func (r *PostgresRepository) Update(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	query := `
		UPDATE entries
		SET ciphertext = $3, nonce = $4, auth_tag = $5, updated_at = now()
		WHERE user_id = $1 AND label = $2
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.Label, entry.Ciphertext, entry.Nonce, entry.AuthTag).
		Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, label string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE user_id = $1 AND label = $2`, userID, label)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
