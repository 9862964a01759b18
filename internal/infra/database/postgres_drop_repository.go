package database

import (
	"context"
	"database/sql"
	"fmt" // For error wrapping
	"strings"

	"drop_notification_bot/internal/domain/drop"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrDropNotFound = fmt.Errorf("drop not found")
var ErrDuplicateSlug = fmt.Errorf("drop with this slug already exists")

type PostgresDropRepository struct {
	db *sql.DB
}

func NewPostgresDropRepository(db *sql.DB) *PostgresDropRepository {
	return &PostgresDropRepository{db: db}
}

func (r *PostgresDropRepository) Create(ctx context.Context, d *drop.Drop) error {
	query := `INSERT INTO drops (slug, name, start_at, end_at, is_active)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, d.Slug, d.Name, d.StartAt, d.EndAt, d.IsActive).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		// Basic check for unique violation on slug.
		if strings.Contains(err.Error(), "unique constraint") && strings.Contains(err.Error(), "drops_slug_key") {
			return ErrDuplicateSlug
		}
		return fmt.Errorf("error creating drop: %w", err)
	}
	return nil
}

func (r *PostgresDropRepository) GetByID(ctx context.Context, id int64) (*drop.Drop, error) {
	query := `SELECT id, slug, name, start_at, end_at, is_active, created_at, updated_at
               FROM drops WHERE id = $1`
	d := &drop.Drop{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&d.ID, &d.Slug, &d.Name, &d.StartAt, &d.EndAt, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrDropNotFound
		}
		return nil, fmt.Errorf("error getting drop by ID: %w", err)
	}
	return d, nil
}

func (r *PostgresDropRepository) GetBySlug(ctx context.Context, slug string) (*drop.Drop, error) {
	query := `SELECT id, slug, name, start_at, end_at, is_active, created_at, updated_at
               FROM drops WHERE slug = $1`
	d := &drop.Drop{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&d.ID, &d.Slug, &d.Name, &d.StartAt, &d.EndAt, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrDropNotFound
		}
		return nil, fmt.Errorf("error getting drop by slug: %w", err)
	}
	return d, nil
}

func (r *PostgresDropRepository) Update(ctx context.Context, d *drop.Drop) error {
	query := `UPDATE drops
               SET name = $1, start_at = $2, end_at = $3, is_active = $4, updated_at = NOW()
               WHERE id = $5
               RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, d.Name, d.StartAt, d.EndAt, d.IsActive, d.ID).Scan(&d.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrDropNotFound
		}
		return fmt.Errorf("error updating drop: %w", err)
	}
	return nil
}

func (r *PostgresDropRepository) ListActive(ctx context.Context) ([]*drop.Drop, error) {
	query := `SELECT id, slug, name, start_at, end_at, is_active, created_at, updated_at
               FROM drops WHERE is_active = TRUE ORDER BY start_at NULLS FIRST, id`
	return r.list(ctx, query)
}

func (r *PostgresDropRepository) ListAll(ctx context.Context) ([]*drop.Drop, error) {
	query := `SELECT id, slug, name, start_at, end_at, is_active, created_at, updated_at
               FROM drops ORDER BY id`
	return r.list(ctx, query)
}

func (r *PostgresDropRepository) list(ctx context.Context, query string) ([]*drop.Drop, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing drops: %w", err)
	}
	defer rows.Close()

	var drops []*drop.Drop
	for rows.Next() {
		d := &drop.Drop{}
		if err := rows.Scan(&d.ID, &d.Slug, &d.Name, &d.StartAt, &d.EndAt, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning drop row: %w", err)
		}
		drops = append(drops, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drop rows: %w", err)
	}
	return drops, nil
}
