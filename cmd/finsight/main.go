package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"finsight/internal/api"
	"finsight/internal/api/handlers"
	"finsight/internal/extract/ocr"
	"finsight/internal/extract/pdftable"
	"finsight/internal/extract/raster"
	"finsight/internal/repository"
	"finsight/internal/service"
	"finsight/pkg/auth"
	"finsight/pkg/config"
	"finsight/pkg/logger"
	"finsight/pkg/postgres"

	"go.uber.org/zap"
)

// @title Finsight API
// @version 1.0
// @description Extracts candidate transactions from receipts and bank statements for user review.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting finsight service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)

	// Extraction engines
	tableExtractor := pdftable.NewExtractor(pdftable.DefaultConfig(), appLogger)
	rasterizer := raster.NewFitzRasterizer(cfg.OCR.DPI, appLogger)
	recognizer := ocr.NewTesseractRecognizer(cfg.OCR.Language, appLogger)

	// Services
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	importService := service.NewImportService(
		tableExtractor,
		rasterizer,
		recognizer,
		cfg.Upload.Dir,
		cfg.Upload.AllowedExts,
		appLogger,
	)
	txService := service.NewTransactionService(txRepo, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, appLogger)
	importHandler := handlers.NewImportHandler(importService, appLogger)
	txHandler := handlers.NewTransactionHandler(txService, appLogger)

	app := api.SetupRouter(authHandler, importHandler, txHandler, jwtManager, cfg.Upload.MaxSize, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
