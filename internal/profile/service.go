// File: internal/profile/service.go
package profile

import (
	"context"

	"krikins_backend/internal/common"
	"krikins_backend/internal/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for profile-related business logic.
type Service interface {
	// SaveProfile persists the payload. A non-nil id updates the record it
	// names; a nil id inserts a new record. The returned profile carries the
	// identifier the session should adopt.
	SaveProfile(ctx context.Context, id *uuid.UUID, req ProfileRequest) (*Profile, bool, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	ListProfiles(ctx context.Context) ([]Profile, error)
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

// ServiceImplementation implements the profile Service interface.
type ServiceImplementation struct {
	repo   Repository
	cfg    *config.Config
	logger *zap.Logger
}

// NewService creates a new profile service.
func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// SaveProfile implements the insert-vs-update decision: the presence of an
// identifier is the sole signal. The bool result reports whether a new record
// was created.
func (s *ServiceImplementation) SaveProfile(ctx context.Context, id *uuid.UUID, req ProfileRequest) (*Profile, bool, error) {
	if id != nil && *id != uuid.Nil {
		existing, err := s.repo.FindByID(ctx, *id)
		if err != nil {
			s.logger.Warn("Save: profile to update not found", zap.String("profileID", id.String()), zap.Error(err))
			return nil, false, err
		}
		existing.ApplyRequest(req, s.cfg.PlaceholderImageURL)
		if err := s.repo.Update(ctx, existing); err != nil {
			s.logger.Error("Failed to update profile", zap.String("profileID", id.String()), zap.Error(err))
			return nil, false, err
		}
		updated, err := s.repo.FindByID(ctx, *id)
		if err != nil {
			s.logger.Error("Failed to reload updated profile", zap.String("profileID", id.String()), zap.Error(err))
			return nil, false, err
		}
		s.logger.Info("Profile updated", zap.String("profileID", updated.ID.String()))
		return updated, false, nil
	}

	created := NewProfile(s.cfg.PlaceholderImageURL)
	created.ApplyRequest(req, s.cfg.PlaceholderImageURL)
	if err := s.repo.Create(ctx, created); err != nil {
		s.logger.Error("Failed to create profile", zap.Error(err))
		return nil, false, err
	}
	s.logger.Info("Profile created", zap.String("profileID", created.ID.String()))
	return created, true, nil
}

// GetProfile loads one persisted record by identifier.
func (s *ServiceImplementation) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return nil, err
		}
		s.logger.Error("Failed to fetch profile", zap.String("profileID", id.String()), zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve the profile.")
	}
	return p, nil
}

// ListProfiles returns every persisted record, newest first.
func (s *ServiceImplementation) ListProfiles(ctx context.Context) ([]Profile, error) {
	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list profiles", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve saved profiles.")
	}
	return profiles, nil
}

// DeleteProfile permanently removes one record. Any working copy a client
// still holds in memory is untouched.
func (s *ServiceImplementation) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if _, ok := common.IsAPIError(err); ok {
			return err
		}
		s.logger.Error("Failed to delete profile", zap.String("profileID", id.String()), zap.Error(err))
		return common.ErrInternalServer.WithDetails("Could not delete the profile.")
	}
	s.logger.Info("Profile deleted", zap.String("profileID", id.String()))
	return nil
}
