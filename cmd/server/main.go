package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paddy-backend/internal/auth"
	"paddy-backend/internal/cache"
	"paddy-backend/internal/config"
	"paddy-backend/internal/database"
	"paddy-backend/internal/db"
	"paddy-backend/internal/handlers"
	"paddy-backend/internal/health"
	httproute "paddy-backend/internal/http"
	"paddy-backend/internal/logger"
	"paddy-backend/internal/middleware"
	"paddy-backend/internal/repositories"
	"paddy-backend/internal/services"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Server.Mode)
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pool, err := db.Connect(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	defer pool.Close()

	migrator := database.NewMigrator(pool, log)
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	err = migrator.RunMigrations(ctx)
	cancel()
	if err != nil {
		log.Fatal("migrations failed", "error", err)
	}

	// Redis is optional; the cache degrades to a pass-through when unavailable.
	statsCache := cache.New(cfg, log)
	defer statsCache.Close()

	jwtManager := auth.NewJWTManager(cfg)

	userRepo := repositories.NewUserRepository(pool)
	seasonRepo := repositories.NewSeasonRepository(pool)
	districtRepo := repositories.NewDistrictRepository(pool)
	societyRepo := repositories.NewSocietyRepository(pool)
	partyRepo := repositories.NewPartyRepository(pool)
	entryRepo := repositories.NewEntryRepository(pool)
	statsRepo := repositories.NewStatsRepository(pool)

	authService := services.NewAuthService(userRepo, jwtManager, log)
	seasonService := services.NewSeasonService(seasonRepo, statsCache, log)
	districtService := services.NewDistrictService(districtRepo, log)
	societyService := services.NewSocietyService(societyRepo, districtRepo, log)
	partyService := services.NewPartyService(partyRepo, societyRepo, log)
	entryService := services.NewEntryService(entryRepo, seasonRepo, societyRepo, partyService, statsCache, log)
	dashboardService := services.NewDashboardService(statsRepo, seasonRepo, entryRepo, statsCache, log)
	reportService := services.NewReportService(statsRepo, seasonRepo, log)

	healthChecker := health.NewHealthChecker(pool, statsCache)

	authHandler := handlers.NewAuthHandler(authService, log)
	seasonHandler := handlers.NewSeasonHandler(seasonService, log)
	districtHandler := handlers.NewDistrictHandler(districtService, log)
	societyHandler := handlers.NewSocietyHandler(societyService, log)
	partyHandler := handlers.NewPartyHandler(partyService, log)
	entryHandler := handlers.NewEntryHandler(entryService, log)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)
	reportHandler := handlers.NewReportHandler(reportService, log)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	router := httproute.NewRouter(
		authHandler,
		seasonHandler,
		districtHandler,
		societyHandler,
		partyHandler,
		entryHandler,
		dashboardHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.PanicRecovery(log)(
		corsMiddleware(
			middleware.RequestLogging(log)(
				middleware.Metrics(router))))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr, "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
