// File: cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log" // Standard log for critical startup/shutdown messages before/after zap is active
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"krikins_backend/internal/card"
	"krikins_backend/internal/config"
	"krikins_backend/internal/export"
	"krikins_backend/internal/platform/database"
	"krikins_backend/internal/platform/logger"
	"krikins_backend/internal/profile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	exportCmd := flag.NewFlagSet("export-card", flag.ExitOnError)
	profileID := exportCmd.String("id", "", "ID of the saved profile to export")
	outPath := exportCmd.String("out", "", "Output path for the PNG (defaults to the profile's download filename)")

	if len(os.Args) > 1 && os.Args[1] == "export-card" {
		exportCmd.Parse(os.Args[2:])
		if err := runCardExport(*profileID, *outPath); err != nil {
			log.Fatalf("FATAL: Card export failed: %v", err)
		}
		return
	}

	startServer()
}

func startServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	server, cleanup, err := initializeServer(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize server: %v", err)
	}
	defer cleanup()

	go func() {
		if err := server.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Fatalf("FATAL: Server failed to start or crashed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("INFO: Received signal '%s'. Shutting down server...", sig)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Server forced to shutdown due to error: %v", err)
	} else {
		log.Println("INFO: Server shutdown complete.")
	}
	log.Println("INFO: Application exiting.")
}

// runCardExport renders a stored profile's card to a local PNG file without
// starting the HTTP server.
func runCardExport(rawID, outPath string) error {
	if rawID == "" {
		return fmt.Errorf("missing required -id flag")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid profile ID %q: %w", rawID, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	db, err := database.NewGORM(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.CloseGORMDB(db)

	renderer, err := card.NewRenderer(cfg.ExportPixelRatio)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	repo := profile.NewGORMRepository(db)
	profileService := profile.NewService(repo, cfg, appLogger)
	exportService := export.NewService(profileService, renderer, appLogger)

	data, filename, err := exportService.ExportCard(context.Background(), id)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = filename
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write card file: %w", err)
	}

	appLogger.Info("Card exported",
		zap.String("profileID", id.String()),
		zap.String("path", outPath),
		zap.Int("bytes", len(data)),
	)
	return nil
}
