// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"krikins_backend/internal/app"
	"krikins_backend/internal/config"
	"krikins_backend/internal/export"
	"krikins_backend/internal/jobs"
	"krikins_backend/internal/platform/database"
	"krikins_backend/internal/platform/logger"
	"krikins_backend/internal/profile"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideFileStorage,
		provideRenderer,

		// Profile Module
		profile.NewGORMRepository,
		profile.NewService,
		wire.Bind(new(profile.Service), new(*profile.ServiceImplementation)),
		profile.NewHandler,

		// Export Module
		export.NewService,
		wire.Bind(new(export.Service), new(*export.ServiceImplementation)),
		export.NewHandler,

		// Jobs
		jobs.NewUploadCleanupJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
