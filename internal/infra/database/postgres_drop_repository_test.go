package database

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"drop_notification_bot/internal/domain/drop"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

var dropColumns = []string{"id", "slug", "name", "start_at", "end_at", "is_active", "created_at", "updated_at"}

func TestCreateDrop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresDropRepository(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)

	mock.ExpectQuery("INSERT INTO drops").
		WithArgs("spring", "Spring Drop", sqlmock.AnyArg(), sqlmock.AnyArg(), true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	d := &drop.Drop{
		Slug:     "spring",
		Name:     "Spring Drop",
		StartAt:  sql.NullTime{Time: start, Valid: true},
		IsActive: true,
	}
	require.NoError(t, repo.Create(context.Background(), d))
	assert.Equal(t, int64(7), d.ID)
	assert.Equal(t, now, d.CreatedAt)
}

func TestCreateDropDuplicateSlug(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresDropRepository(db)

	mock.ExpectQuery("INSERT INTO drops").
		WillReturnError(fmt.Errorf(`pq: duplicate key value violates unique constraint "drops_slug_key"`))

	err := repo.Create(context.Background(), &drop.Drop{Slug: "spring", Name: "Spring Drop", IsActive: true})
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestGetBySlug(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresDropRepository(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM drops WHERE slug = \\$1").
		WithArgs("spring").
		WillReturnRows(sqlmock.NewRows(dropColumns).
			AddRow(int64(7), "spring", "Spring Drop", now.Add(time.Hour), nil, true, now, now))

	d, err := repo.GetBySlug(context.Background(), "spring")
	require.NoError(t, err)
	assert.Equal(t, int64(7), d.ID)
	assert.Equal(t, "Spring Drop", d.Name)
	assert.True(t, d.StartAt.Valid)
	assert.False(t, d.EndAt.Valid)
}

func TestGetBySlugNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresDropRepository(db)

	mock.ExpectQuery("SELECT .+ FROM drops WHERE slug = \\$1").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(dropColumns))

	_, err := repo.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDropNotFound)
}

func TestListActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresDropRepository(db)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM drops WHERE is_active = TRUE").
		WillReturnRows(sqlmock.NewRows(dropColumns).
			AddRow(int64(1), "alpha", "Alpha", nil, nil, true, now, now).
			AddRow(int64(2), "beta", "Beta", now.Add(time.Hour), now.Add(2*time.Hour), true, now, now))

	drops, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, drops, 2)
	assert.Equal(t, "alpha", drops[0].Slug)
	assert.False(t, drops[0].StartAt.Valid)
	assert.True(t, drops[1].EndAt.Valid)
}

func TestUpdateDropNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgresDropRepository(db)

	mock.ExpectQuery("UPDATE drops").
		WillReturnError(sql.ErrNoRows)

	err := repo.Update(context.Background(), &drop.Drop{ID: 404, Slug: "gone", Name: "Gone"})
	assert.ErrorIs(t, err, ErrDropNotFound)
}
