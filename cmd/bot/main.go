package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drop_notification_bot/internal/app"
	"drop_notification_bot/internal/infra/bus"
	"drop_notification_bot/internal/infra/clock"
	"drop_notification_bot/internal/infra/config"
	idb "drop_notification_bot/internal/infra/database"
	"drop_notification_bot/internal/infra/logger"
	"drop_notification_bot/internal/infra/scheduler"
	isub "drop_notification_bot/internal/infra/subscription"
	"drop_notification_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	mainLogger := logger.Log.WithField("component", "main")
	mainLogger.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Admin ID: %d", cfg.LogLevel, cfg.Environment, cfg.AdminTelegramID)

	// Initialize Database Connection
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not connect to database: %v", err)
	}
	defer db.Close()
	mainLogger.Info("Database connection established successfully.")

	// Initialize Repository
	dropRepo := idb.NewPostgresDropRepository(db)
	mainLogger.Info("Drop repository initialized.")

	// Initialize the status bus and the widget layer
	statusBus := bus.New()
	systemClock := &clock.System{}
	widgetService := app.NewWidgetService(dropRepo, statusBus, systemClock, logger.Log.WithField("component", "widgets"))
	mainLogger.Info("Widget service initialized.")

	// Initialize NotifyService against the external subscription endpoint
	subscribeClient := isub.NewHTTPClient(cfg.SubscribeURL, cfg.SubscribeTag)
	notifyService := app.NewNotifyService(widgetService, subscribeClient, logger.Log.WithField("component", "notify"), cfg.NotifyGuard)
	mainLogger.Info("Notify service initialized.")

	// Initialize AdminService
	adminService := app.NewAdminService(dropRepo, cfg.AdminTelegramID)
	mainLogger.Info("Admin service initialized.")

	// Attach widgets for the drops already on the calendar
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if err := widgetService.Sync(startupCtx); err != nil {
		cancelStartup()
		mainLogger.Fatalf("FATAL: Could not attach widgets for active drops: %v", err)
	}
	cancelStartup()
	mainLogger.Info("Initial widget sync complete.")

	// Initialize the drop sync scheduler
	dropScheduler := scheduler.NewDropSyncScheduler(widgetService, logger.Log.WithField("component", "scheduler"), cfg.CronSpecDropSync)
	if err := dropScheduler.Start(); err != nil {
		mainLogger.Fatalf("FATAL: Could not start drop sync scheduler: %v", err)
	}

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := logger.Log.WithField("component", "telebot").WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(map[string]interface{}{
					"message": c.Text(),
					"sender":  c.Sender().ID,
					"chat":    c.Chat().ID,
				})
			}
			entry.Error("Telebot error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not create Telegram bot: %v", err)
	}

	// Register Handlers
	handlerCtx, cancelHandlers := context.WithCancel(context.Background())
	defer cancelHandlers()
	telegram.RegisterDropHandlers(handlerCtx, bot, widgetService, notifyService, logger.Log.WithField("component", "handlers"))
	mainLogger.Info("Drop command handlers registered.")
	telegram.RegisterAdminHandlers(handlerCtx, bot, adminService, widgetService, cfg.AdminTelegramID, logger.Log.WithField("component", "handlers"))
	mainLogger.Info("Admin command handlers registered.")

	// Wire the announcer if a chat is configured
	if cfg.AnnounceChatID != 0 {
		announcer := telegram.NewAnnouncer(telegram.NewTelebotAdapter(bot), cfg.AnnounceChatID, logger.Log.WithField("component", "announcer"))
		announcer.Register(statusBus)
		mainLogger.Infof("Announcer registered for chat %d.", cfg.AnnounceChatID)
	}

	mainLogger.Info("Application setup complete. Bot and scheduler are starting...")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	go bot.Start()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	dropScheduler.Stop()
	widgetService.DisposeAll()
	bot.Stop()
	mainLogger.Info("Application shut down gracefully.")
}
