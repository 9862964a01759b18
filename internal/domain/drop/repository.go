// internal/domain/drop/repository.go
package drop

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Drop entities.
type Repository interface {
	Create(ctx context.Context, d *Drop) error
	GetByID(ctx context.Context, id int64) (*Drop, error)
	GetBySlug(ctx context.Context, slug string) (*Drop, error)
	Update(ctx context.Context, d *Drop) error // handles Name, StartAt, EndAt, IsActive
	ListActive(ctx context.Context) ([]*Drop, error)
	ListAll(ctx context.Context) ([]*Drop, error) // for admin purposes
}
