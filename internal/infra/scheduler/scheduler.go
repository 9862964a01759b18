package scheduler

import (
	"context"
	"time"

	"drop_notification_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DropSyncScheduler periodically reconciles the attached widget set
// against the drops table, so drops added or deactivated while the bot
// is running pick up widgets without a restart.
type DropSyncScheduler struct {
	cronEngine    *cron.Cron
	widgetService *app.WidgetService
	logger        *logrus.Entry
	cronSpecSync  string
}

func NewDropSyncScheduler(
	widgetService *app.WidgetService,
	logger *logrus.Entry,
	cronSpecSync string, // e.g. "@every 1m"
) *DropSyncScheduler {
	return &DropSyncScheduler{
		cronEngine:    cron.New(cron.WithLocation(time.Local)), // Use server's local time for cron
		widgetService: widgetService,
		logger:        logger,
		cronSpecSync:  cronSpecSync,
	}
}

func (s *DropSyncScheduler) Start() error {
	s.logger.Info("Starting drop sync scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecSync, func() {
		s.logger.Debug("Cron job triggered for drop sync.")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.widgetService.Sync(ctx); err != nil {
			s.logger.WithError(err).Error("Error during drop sync")
		}
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.WithField("cron_spec", s.cronSpecSync).Info("Drop sync scheduler started.")
	return nil
}

func (s *DropSyncScheduler) Stop() {
	s.logger.Info("Stopping drop sync scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Drop sync scheduler gracefully stopped.")
}
