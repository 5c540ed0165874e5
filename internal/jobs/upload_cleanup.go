// File: internal/jobs/upload_cleanup.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"krikins_backend/internal/config"
	"krikins_backend/internal/filestorage"
	"krikins_backend/internal/profile"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// UploadCleanupJob removes stored portrait uploads that no saved profile
// references anymore. It only runs when uploads are stored on disk.
type UploadCleanupJob struct {
	repo          profile.Repository
	storage       *filestorage.FileStorageService
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewUploadCleanupJob creates a new UploadCleanupJob.
func NewUploadCleanupJob(
	repo profile.Repository,
	storage *filestorage.FileStorageService,
	logger *zap.Logger,
	cfg *config.Config,
) *UploadCleanupJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &UploadCleanupJob{
		repo:          repo,
		storage:       storage,
		logger:        logger.Named("UploadCleanupJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *UploadCleanupJob) SetupAndStart() error {
	if j.cfg.UploadMode != config.UploadModeDisk {
		j.logger.Info("Uploads are served inline, cleanup job will not run.")
		return nil
	}
	jobSpec := j.cfg.UploadCleanupJobSchedule // e.g., "@daily"
	if jobSpec == "" {
		j.logger.Warn("Upload cleanup job schedule not defined (UPLOAD_CLEANUP_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule upload cleanup job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Upload cleanup job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob deletes uploads older than the configured age that no profile row
// references. Files younger than the cutoff are kept so an upload still
// sitting unsaved in an editor session is not swept away.
func (j *UploadCleanupJob) runJob() {
	j.logger.Info("Starting upload cleanup job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-time.Duration(j.cfg.UploadMaxAgeHours) * time.Hour)
	stale, err := j.storage.ListFilesOlderThan("uploads", cutoff)
	if err != nil {
		j.logger.Error("Upload cleanup job run failed", zap.Error(err))
		return
	}

	removed := 0
	for _, relPath := range stale {
		count, err := j.repo.CountByImageURLContaining(ctx, relPath)
		if err != nil {
			j.logger.Error("Failed to check upload references", zap.String("path", relPath), zap.Error(err))
			continue
		}
		if count > 0 {
			continue
		}
		if err := j.storage.DeleteFile(relPath); err != nil {
			j.logger.Error("Failed to delete orphaned upload", zap.String("path", relPath), zap.Error(err))
			continue
		}
		removed++
	}
	j.logger.Info("Upload cleanup job run completed",
		zap.Int("candidates", len(stale)), zap.Int("uploads_removed", removed))
}

// Stop gracefully stops the cron scheduler.
func (j *UploadCleanupJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping upload cleanup job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Upload cleanup job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Upload cleanup job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
