// File: cmd/server/providers.go
package main

import (
	"krikins_backend/internal/card"
	"krikins_backend/internal/config"
	"krikins_backend/internal/filestorage"
	"krikins_backend/internal/platform/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func provideFileStorage(cfg *config.Config, logger *zap.Logger) (*filestorage.FileStorageService, error) {
	return filestorage.NewFileStorageService(cfg.ImageStoragePath, logger)
}

func provideRenderer(cfg *config.Config) (*card.Renderer, error) {
	return card.NewRenderer(cfg.ExportPixelRatio)
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		_ = logger.Sync()
	}
}
