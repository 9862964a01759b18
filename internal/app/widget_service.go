// internal/app/widget_service.go
package app

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"drop_notification_bot/internal/domain/drop"
	"drop_notification_bot/internal/infra/bus"
	"drop_notification_bot/internal/infra/clock"

	"github.com/sirupsen/logrus"
)

// WidgetService owns the set of attached widgets, one per active drop.
// It holds the single bus subscription through which every widget's
// status presentation is refreshed whenever any widget publishes a
// status change.
type WidgetService struct {
	dropRepo  drop.Repository
	statusBus *bus.StatusBus
	clock     clock.Clock
	logger    *logrus.Entry

	mu     sync.Mutex
	byID   map[int64]*Widget
	bySlug map[string]*Widget
}

func NewWidgetService(dropRepo drop.Repository, statusBus *bus.StatusBus, clk clock.Clock, logger *logrus.Entry) *WidgetService {
	s := &WidgetService{
		dropRepo:  dropRepo,
		statusBus: statusBus,
		clock:     clk,
		logger:    logger,
		byID:      make(map[int64]*Widget),
		bySlug:    make(map[string]*Widget),
	}
	statusBus.Subscribe(func(ev drop.StatusChange) {
		s.logger.WithFields(logrus.Fields{
			"drop_slug": ev.Slug,
			"status":    ev.Status,
		}).Debug("Status change received, refreshing widgets")
		s.RefreshAll()
	})
	return s
}

// Attach creates and starts a widget for the drop. An existing widget
// for the same drop is left untouched.
func (s *WidgetService) Attach(d *drop.Drop) *Widget {
	s.mu.Lock()
	if existing, ok := s.byID[d.ID]; ok {
		s.mu.Unlock()
		return existing
	}
	w := NewWidget(d, s.clock, s.statusBus, s.logger)
	s.byID[d.ID] = w
	s.bySlug[d.Slug] = w
	s.mu.Unlock()

	w.Attach()
	return w
}

// Detach disposes the widget for the given drop, if any.
func (s *WidgetService) Detach(dropID int64) {
	s.mu.Lock()
	w, ok := s.byID[dropID]
	if ok {
		delete(s.byID, dropID)
		delete(s.bySlug, w.Slug)
	}
	s.mu.Unlock()
	if ok {
		w.Detach()
	}
}

// Get returns the widget for a slug, or nil if none is attached.
func (s *WidgetService) Get(slug string) *Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bySlug[slug]
}

// List returns the attached widgets ordered by slug.
func (s *WidgetService) List() []*Widget {
	s.mu.Lock()
	widgets := make([]*Widget, 0, len(s.byID))
	for _, w := range s.byID {
		widgets = append(widgets, w)
	}
	s.mu.Unlock()
	sort.Slice(widgets, func(i, j int) bool { return widgets[i].Slug < widgets[j].Slug })
	return widgets
}

// RefreshAll re-applies the status presentation of every widget. Each
// widget recomputes its own status independently.
func (s *WidgetService) RefreshAll() {
	for _, w := range s.snapshot() {
		w.Refresh()
	}
}

func (s *WidgetService) snapshot() []*Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	widgets := make([]*Widget, 0, len(s.byID))
	for _, w := range s.byID {
		widgets = append(widgets, w)
	}
	return widgets
}

// Sync reconciles the widget set against the active drops in the
// repository: widgets attach for new drops and detach for drops that
// disappeared or were deactivated.
func (s *WidgetService) Sync(ctx context.Context) error {
	active, err := s.dropRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active drops: %w", err)
	}

	seen := make(map[int64]bool, len(active))
	attached := 0
	for _, d := range active {
		seen[d.ID] = true
		s.mu.Lock()
		_, exists := s.byID[d.ID]
		s.mu.Unlock()
		if !exists {
			s.Attach(d)
			attached++
		}
	}

	detached := 0
	for _, w := range s.snapshot() {
		if !seen[w.DropID] {
			s.Detach(w.DropID)
			detached++
		}
	}

	if attached > 0 || detached > 0 {
		s.logger.WithFields(logrus.Fields{
			"attached": attached,
			"detached": detached,
			"total":    len(active),
		}).Info("Widget set reconciled")
	}
	return nil
}

// DisposeAll detaches every widget. Used on shutdown.
func (s *WidgetService) DisposeAll() {
	for _, w := range s.snapshot() {
		s.Detach(w.DropID)
	}
	s.logger.Info("All widgets disposed")
}
