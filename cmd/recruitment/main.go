package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-recruitment-platform/config"
	v1 "go-recruitment-platform/internal/delivery/http/v1"
	"go-recruitment-platform/internal/repository/postgres"
	"go-recruitment-platform/internal/usecase"
	"go-recruitment-platform/pkg/database"
	"go-recruitment-platform/pkg/logger"

	"github.com/go-playground/validator/v10"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting recruitment service", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	profileRepo := postgres.NewProfileRepository(dbPool)
	competenceRepo := postgres.NewCompetenceRepository(dbPool)
	availabilityRepo := postgres.NewAvailabilityRepository(dbPool)

	// 5. Setup UseCases
	validate := validator.New()
	applicationUC := usecase.NewApplicationUsecase(profileRepo, competenceRepo, availabilityRepo, validate)

	// 6. Setup Router
	router := v1.NewRecruitmentRouter(v1.RecruitmentRouterDeps{
		ApplicationUC: applicationUC,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down recruitment service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Recruitment service exiting")
}
