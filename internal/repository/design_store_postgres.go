package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/ypamar/newsletter/internal/domain"
)

// SQLDesignStore is a SQL implementation of the DesignStore interface
type SQLDesignStore struct {
	systemDB *sql.DB
	now      func() time.Time
}

// NewSQLDesignStore creates a new SQLDesignStore
func NewSQLDesignStore(db *sql.DB) *SQLDesignStore {
	return &SQLDesignStore{
		systemDB: db,
		now:      time.Now,
	}
}

// Get retrieves an entry by key
func (r *SQLDesignStore) Get(ctx context.Context, key string) (*domain.StoreEntry, error) {
	var entry domain.StoreEntry
	err := r.systemDB.QueryRowContext(ctx,
		"SELECT key, value, created_at, updated_at FROM design_store WHERE key = $1",
		key,
	).Scan(&entry.Key, &entry.Value, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &domain.ErrEntryNotFound{Key: key}
		}
		return nil, fmt.Errorf("failed to get design store entry: %w", err)
	}

	return &entry, nil
}

// Set creates or updates an entry
func (r *SQLDesignStore) Set(ctx context.Context, key, value string) error {
	now := r.now().UTC()

	_, err := r.systemDB.ExecContext(ctx, `
		INSERT INTO design_store (key, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key)
		DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`, key, value, now, now)
	if err != nil {
		return fmt.Errorf("failed to set design store entry: %w", err)
	}

	return nil
}

// Delete removes an entry by key
func (r *SQLDesignStore) Delete(ctx context.Context, key string) error {
	query, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Delete("design_store").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.systemDB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete design store entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return &domain.ErrEntryNotFound{Key: key}
	}

	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// List retrieves entries whose key starts with prefix
func (r *SQLDesignStore) List(ctx context.Context, prefix string) ([]*domain.StoreEntry, error) {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("key", "value", "created_at", "updated_at").
		From("design_store").
		OrderBy("key")
	if prefix != "" {
		builder = builder.Where(sq.Like{"key": likeEscaper.Replace(prefix) + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list design store entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.StoreEntry
	for rows.Next() {
		entry := &domain.StoreEntry{}
		if err := rows.Scan(&entry.Key, &entry.Value, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan design store entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
