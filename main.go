// @title Wealthboard API
// @version 1.0
// @description Personal finance dashboard: accounts, combined allocation and currency conversion.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/wealthboard/config"
	_ "github.com/epeers/wealthboard/docs"
	"github.com/epeers/wealthboard/internal/cache"
	"github.com/epeers/wealthboard/internal/database"
	"github.com/epeers/wealthboard/internal/fxrate"
	"github.com/epeers/wealthboard/internal/handlers"
	"github.com/epeers/wealthboard/internal/middleware"
	"github.com/epeers/wealthboard/internal/models"
	"github.com/epeers/wealthboard/internal/repository"
	"github.com/epeers/wealthboard/internal/scheduler"
	"github.com/epeers/wealthboard/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ConfigureLogging()

	// Create context for initialization
	ctx := context.Background()

	// Choose the account source
	var source services.AccountSource
	var rateRepo *repository.RateRepository
	if cfg.PGURL != "" {
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		accountRepo := repository.NewAccountRepository(db.Pool)
		if err := seedAccounts(ctx, accountRepo, cfg.FixturesPath); err != nil {
			log.Fatalf("Failed to seed accounts: %v", err)
		}
		source = accountRepo
		rateRepo = repository.NewRateRepository(db.Pool)
	} else {
		fixtures := repository.DefaultFixtures()
		if cfg.FixturesPath != "" {
			fixtures, err = repository.LoadFixturesFile(cfg.FixturesPath)
			if err != nil {
				log.Fatalf("Failed to load fixtures: %v", err)
			}
		}
		log.WithField("accounts", len(fixtures.Accounts)).Info("Serving accounts from fixtures")
		source = repository.NewFixtureRepository(fixtures)
	}

	// Exchange rate client, cache and conversion
	fxClient := fxrate.NewClientWithBaseURL(cfg.FXAPIURL)
	rateCache := cache.NewRateCache(cfg.FXCacheTTL)
	currencySvc := services.NewCurrencyService(fxClient, rateCache, cfg.FXBase, cfg.FXQuote, cfg.FXFallbackRate)
	if rateRepo != nil {
		currencySvc.WithStore(rateRepo)
		if err := currencySvc.Warm(ctx); err != nil {
			log.Warnf("Starting without a stored rate: %v", err)
		}
	}

	// Background rate refresh
	sched := scheduler.New()
	if err := sched.AddJob(cfg.FXRefreshSchedule, currencySvc); err != nil {
		log.Fatalf("Failed to schedule rate refresh: %v", err)
	}
	// readers fall back to the fixed rate if this fails
	go func() {
		if err := sched.RunNow(currencySvc); err != nil {
			log.Warnf("Initial rate refresh failed, using fallback %s: %v", cfg.FXFallbackRate, err)
		}
	}()
	sched.Start()
	defer sched.Stop()

	// Initialize services
	dashboardSvc := services.NewDashboardService(source, currencySvc)
	accountSvc := services.NewAccountService(source, currencySvc)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc, accountSvc)
	allocationHandler := handlers.NewAllocationHandler()
	fxHandler := handlers.NewFXHandler(currencySvc)
	helpHandler := handlers.NewHelpHandler(services.NewHelpService(source))

	// Setup Gin router
	router := gin.New()

	// Apply global middleware
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.Warnings())

	handlers.RegisterRoutes(router, dashboardHandler, allocationHandler, fxHandler, helpHandler)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// seedAccounts stores the fixtures file when one is given, or the built-in
// accounts when the database holds none yet.
func seedAccounts(ctx context.Context, repo *repository.AccountRepository, fixturesPath string) error {
	var fixtures models.Fixtures
	switch {
	case fixturesPath != "":
		f, err := repository.LoadFixturesFile(fixturesPath)
		if err != nil {
			return err
		}
		fixtures = f
	default:
		_, err := repo.Load(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrNoAccounts) {
			return err
		}
		fixtures = repository.DefaultFixtures()
	}

	if err := repo.Replace(ctx, fixtures); err != nil {
		return err
	}
	log.WithField("accounts", len(fixtures.Accounts)).Info("Seeded accounts")
	return nil
}
