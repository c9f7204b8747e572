package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garagepro-backend/config"
	"garagepro-backend/controllers"
	"garagepro-backend/repositories"
	"garagepro-backend/routes"
	"garagepro-backend/services"
	"garagepro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	settings := config.Load()
	logger := utils.InitLogger(settings.AppEnv)
	if settings.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(settings)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect database")
	}
	if err := config.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	gateway, err := newGateway(settings, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure messaging gateway")
	}

	reminderService := services.NewReminderService(services.Stores{
		Tenants:   repositories.NewTenantRepository(db),
		Customers: repositories.NewCustomerRepository(db),
		Vehicles:  repositories.NewVehicleRepository(db),
		Templates: repositories.NewTemplateRepository(db),
		SentLogs:  repositories.NewSentLogRepository(db),
	}, gateway, services.Options{
		BookingBaseURL: settings.BookingBaseURL,
		MonthWorkers:   settings.MonthScanWorkers,
		Logger:         logger,
	})

	if settings.ReminderCron != "" {
		scheduler, err := services.NewScheduler(reminderService, settings.ReminderCron, settings.Location, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to start reminder scheduler")
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	r := routes.SetupRouter(routes.Deps{
		Settings:  settings,
		Logger:    logger,
		Reminders: &controllers.ReminderController{Service: reminderService},
	})
	printRoutes(logger, r)

	srv := &http.Server{Addr: ":" + settings.Port, Handler: r}
	go func() {
		logger.Info().Str("port", settings.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
}

func newGateway(s config.Settings, logger zerolog.Logger) (services.MessagingGateway, error) {
	switch s.Gateway {
	case "twilio":
		return services.NewTwilioGateway(services.TwilioConfig{
			AccountSID:     s.Twilio.AccountSID,
			AuthToken:      s.Twilio.AuthToken,
			PhoneNumber:    s.Twilio.PhoneNumber,
			WhatsAppNumber: s.Twilio.WhatsAppNumber,
		}, logger)
	default:
		return services.LogGateway{Logger: logger}, nil
	}
}

func printRoutes(logger zerolog.Logger, r *gin.Engine) {
	for _, route := range r.Routes() {
		logger.Debug().Str("method", route.Method).Str("path", route.Path).Msg("route")
	}
}
