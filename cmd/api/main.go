package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/praxisops/dienstplan-api/internal/config"
	"github.com/praxisops/dienstplan-api/internal/email"
	absenceHandler "github.com/praxisops/dienstplan-api/internal/handler/absence"
	availabilityHandler "github.com/praxisops/dienstplan-api/internal/handler/availability"
	"github.com/praxisops/dienstplan-api/internal/handler/health"
	plannerHandler "github.com/praxisops/dienstplan-api/internal/handler/planner"
	shiftHandler "github.com/praxisops/dienstplan-api/internal/handler/shift"
	shifttypeHandler "github.com/praxisops/dienstplan-api/internal/handler/shifttype"
	swapHandler "github.com/praxisops/dienstplan-api/internal/handler/swap"
	templateHandler "github.com/praxisops/dienstplan-api/internal/handler/template"
	"github.com/praxisops/dienstplan-api/internal/middleware"
	"github.com/praxisops/dienstplan-api/internal/repository/postgres"
	"github.com/praxisops/dienstplan-api/internal/router"
	absenceService "github.com/praxisops/dienstplan-api/internal/service/absence"
	availabilityService "github.com/praxisops/dienstplan-api/internal/service/availability"
	plannerService "github.com/praxisops/dienstplan-api/internal/service/planner"
	settingsService "github.com/praxisops/dienstplan-api/internal/service/settings"
	shiftService "github.com/praxisops/dienstplan-api/internal/service/shift"
	shifttypeService "github.com/praxisops/dienstplan-api/internal/service/shifttype"
	statsService "github.com/praxisops/dienstplan-api/internal/service/stats"
	swapService "github.com/praxisops/dienstplan-api/internal/service/swap"
	templateService "github.com/praxisops/dienstplan-api/internal/service/template"
	"github.com/praxisops/dienstplan-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	shiftRepo := postgres.NewShiftRepository(db)
	shiftTypeRepo := postgres.NewShiftTypeRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	templateRepo := postgres.NewTemplateRepository(db)
	swapRepo := postgres.NewSwapRepository(db)
	holidayRepo := postgres.NewHolidayRequestRepository(db)
	sickLeaveRepo := postgres.NewSickLeaveRepository(db)
	memberRepo := postgres.NewTeamMemberRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Notifications
	notifier := email.NewNotifier(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, appLogger)

	// Services
	shiftSvc := shiftService.NewService(shiftRepo, shiftTypeRepo, outboxRepo)
	shiftTypeSvc := shifttypeService.NewService(shiftTypeRepo)
	availabilitySvc := availabilityService.NewService(availabilityRepo)
	templateSvc := templateService.NewService(templateRepo, shiftRepo, shiftTypeRepo, memberRepo, outboxRepo)
	swapSvc := swapService.NewService(swapRepo, shiftRepo, memberRepo, notifier, appLogger)
	statsSvc := statsService.NewService(shiftRepo, swapRepo)
	settingsSvc := settingsService.NewService(settingsRepo, cfg.Scheduler.DefaultPlannerDays, appLogger)
	plannerSvc := plannerService.NewService(shiftRepo, availabilityRepo, swapRepo, memberRepo, settingsSvc)
	absenceSvc := absenceService.NewService(holidayRepo, sickLeaveRepo)

	// Handlers
	healthH := health.NewHandler(db)
	practiceHandlers := []router.Handler{
		shiftHandler.NewHandler(shiftSvc),
		shifttypeHandler.NewHandler(shiftTypeSvc),
		availabilityHandler.NewHandler(availabilitySvc),
		templateHandler.NewHandler(templateSvc),
		swapHandler.NewHandler(swapSvc),
		absenceHandler.NewHandler(absenceSvc),
		plannerHandler.NewHandler(plannerSvc, statsSvc),
	}

	r := router.NewRouter(healthH, practiceHandlers, router.Config{
		RateLimit:     rate.Limit(100),
		RateBurst:     200,
		CORSConfig:    middleware.DefaultCORSConfig(),
		MetricsPrefix: "dienstplan_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Server.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
