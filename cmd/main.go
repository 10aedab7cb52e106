package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledger-service/internal/handler"
	mid "ledger-service/internal/middleware"
	"ledger-service/internal/model"
	"ledger-service/internal/notify"
	"ledger-service/internal/scheduler"
	"ledger-service/internal/service"
	"ledger-service/pkg/config"
	"ledger-service/pkg/database"
	"ledger-service/pkg/jwtutil"
	"ledger-service/pkg/logger"
	"ledger-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const serviceName = "ledger-service"

func main() {
	// Load configuration
	appConfig, err := config.Load(serviceName)
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting "+serviceName, appConfig.LogConfig()...)

	// Initialize database
	db, err := database.InitDB(&appConfig.DB, log)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.MigrateModels(db, model.All()...); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}
	log.Info("Database migrated")

	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      appConfig.JWT.SigningKey,
		ExpirationHours: appConfig.JWT.ExpirationHours,
	})

	clock := service.Clock(time.Now)
	reminders := service.NewReminderService(db, log, clock, notifiers(appConfig, log), appConfig.Reminder.FailSilently)

	handlers := &handler.Handlers{
		Health:    handler.NewHealthHandler(db),
		Auth:      handler.NewAuthHandler(service.NewAuthService(db, log, jwtUtil)),
		Customers: handler.NewCustomerHandler(service.NewCustomerService(db, log)),
		Products:  handler.NewProductHandler(service.NewProductService(db, log)),
		Purchases: handler.NewPurchaseHandler(service.NewPurchaseService(db, log, clock, appConfig.Reminder.PaymentTermDays)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(db, log, clock)),
		Reminders: handler.NewReminderHandler(reminders),
		Profile:   handler.NewProfileHandler(service.NewProfileService(db, log)),
	}

	// Pending payment reminders
	var sched *scheduler.Scheduler
	if appConfig.Reminder.Enabled {
		sched, err = scheduler.New(appConfig.Reminder.Schedule, reminders, log)
		if err != nil {
			log.Fatal("Failed to create reminder scheduler", zap.Error(err))
		}
		sched.Start()
	}

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.Middleware())

	handler.RegisterRoutes(e, handlers, mid.JWTAuthMiddleware(jwtUtil))

	// Start server
	go func() {
		port := appConfig.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if sched != nil {
		sched.Stop(ctx)
	}
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// notifiers builds one transport per configured reminder channel
func notifiers(appConfig *config.Config, log *zap.Logger) []notify.Notifier {
	var out []notify.Notifier
	for _, channel := range appConfig.Reminder.Channels {
		switch notify.Channel(channel) {
		case notify.ChannelEmail:
			out = append(out, notify.NewEmailNotifier(appConfig.SMTP, log))
		case notify.ChannelWhatsApp:
			out = append(out, notify.NewWhatsAppNotifier(appConfig.WhatsApp, log))
		default:
			log.Warn("Unknown reminder channel ignored", zap.String("channel", channel))
		}
	}
	return out
}
