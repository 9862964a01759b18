package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"drop_notification_bot/internal/domain/drop"
	idb "drop_notification_bot/internal/infra/database"
)

// Custom application-level errors for admin service
var ErrAdminNotAuthorized = fmt.Errorf("performing user is not authorized as an admin")
var ErrDropAlreadyExists = fmt.Errorf("drop with this slug already exists")
var ErrDropAlreadyInactive = fmt.Errorf("drop is already inactive")

type AdminService struct {
	dropRepo        drop.Repository
	adminTelegramID int64
}

func NewAdminService(dr drop.Repository, adminID int64) *AdminService {
	return &AdminService{
		dropRepo:        dr,
		adminTelegramID: adminID,
	}
}

// AddDrop handles the business logic for adding a new drop. The start
// and end timestamps are optional RFC 3339 strings; an unparseable value
// degrades to an absent boundary and is reported in the ParseResult so
// the caller can surface the bad input.
func (s *AdminService) AddDrop(ctx context.Context, performingAdminID int64, slug, name, startRaw, endRaw string) (*drop.Drop, drop.ParseResult, error) {
	if performingAdminID != s.adminTelegramID {
		return nil, drop.ParseResult{}, ErrAdminNotAuthorized
	}

	slug = strings.ToLower(strings.TrimSpace(slug))

	// Check if a drop with this slug already exists
	_, err := s.dropRepo.GetBySlug(ctx, slug)
	if err == nil { // Drop found, so already exists
		return nil, drop.ParseResult{}, ErrDropAlreadyExists
	}
	if err != idb.ErrDropNotFound { // Another error occurred during lookup
		return nil, drop.ParseResult{}, fmt.Errorf("failed to check existing drop: %w", err)
	}

	window, parseRes := drop.ParseWindow(startRaw, endRaw)

	newDrop := &drop.Drop{
		Slug:     slug,
		Name:     name,
		IsActive: true, // New drops are active by default
	}
	if window.StartAt != nil {
		newDrop.StartAt = sql.NullTime{Time: *window.StartAt, Valid: true}
	}
	if window.EndAt != nil {
		newDrop.EndAt = sql.NullTime{Time: *window.EndAt, Valid: true}
	}

	err = s.dropRepo.Create(ctx, newDrop)
	if err != nil {
		if err == idb.ErrDuplicateSlug { // Safety net behind the GetBySlug check
			return nil, parseRes, ErrDropAlreadyExists
		}
		return nil, parseRes, fmt.Errorf("failed to create drop in repository: %w", err)
	}

	return newDrop, parseRes, nil
}

// RemoveDrop handles the business logic for deactivating a drop.
func (s *AdminService) RemoveDrop(ctx context.Context, performingAdminID int64, slug string) (*drop.Drop, error) {
	if performingAdminID != s.adminTelegramID {
		return nil, ErrAdminNotAuthorized
	}

	targetDrop, err := s.dropRepo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if err == idb.ErrDropNotFound {
			return nil, idb.ErrDropNotFound // Propagate specific error
		}
		return nil, fmt.Errorf("failed to get drop by slug for removal: %w", err)
	}

	// Check if already inactive
	if !targetDrop.IsActive {
		return targetDrop, ErrDropAlreadyInactive
	}

	targetDrop.IsActive = false
	err = s.dropRepo.Update(ctx, targetDrop)
	if err != nil {
		return nil, fmt.Errorf("failed to update drop to inactive in repository: %w", err)
	}

	return targetDrop, nil
}

// ListDrops returns active drops by default, or every drop when
// includeInactive is set.
func (s *AdminService) ListDrops(ctx context.Context, performingAdminID int64, includeInactive bool) ([]*drop.Drop, error) {
	if performingAdminID != s.adminTelegramID {
		return nil, ErrAdminNotAuthorized
	}
	if includeInactive {
		return s.dropRepo.ListAll(ctx)
	}
	return s.dropRepo.ListActive(ctx)
}
