package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"freelance_backend/database"
	"freelance_backend/internal/config"
	"freelance_backend/internal/handlers"
	"freelance_backend/internal/logger"
	"freelance_backend/internal/middleware"
	"freelance_backend/internal/repositories"
	"freelance_backend/internal/routes"
	"freelance_backend/internal/services"
	"freelance_backend/internal/services/dto"
	"freelance_backend/internal/validator"
	"freelance_backend/internal/workers"
	"freelance_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	cfg := config.MustLoad()
	logger.Init(cfg.Server.Env, cfg.Log.Level)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.ConnectGorm(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	serviceContainer := services.NewServiceContainer(validator.New())

	if err := seedFirstAdmin(gormDB, cfg, serviceContainer.UserService); err != nil {
		// Если не удалось создать админа - не запускаем сервер
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workers.NewLedgerWorker(
		gormDB,
		repositories.NewPointRepository(),
		serviceContainer.PointService,
		cfg.Workers.LedgerInterval,
		cfg.Workers.LedgerBatchSize,
	).Start(ctx)

	ginRouter := SetupRouter(cfg, gormDB)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      ginRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает gin с middleware и служебными маршрутами.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, handlers.NewAppHandlers())
	return ginRouter
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin создает суперпользователя из конфига, если его еще нет.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config, userService services.UserService) error {
	adminEmail := cfg.Seed.AdminEmail
	if adminEmail == "" {
		logger.Warn("SEED_ADMIN_EMAIL is not set. Skipping admin seeding.")
		return nil
	}

	_, err := userService.GetUserByEmail(db, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !apperrors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	password := cfg.Seed.AdminPassword
	admin, err := userService.CreateSuperuser(db, &dto.CreateUserRequest{
		Email:     adminEmail,
		Password:  &password,
		FirstName: cfg.Seed.AdminFirstName,
		LastName:  cfg.Seed.AdminLastName,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", admin.Email, "user_id", admin.ID)
	return nil
}
