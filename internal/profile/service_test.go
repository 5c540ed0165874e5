package profile

import (
	"context"
	"testing"

	"krikins_backend/internal/common"
	"krikins_backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockRepository is a mock type for profile.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, p *Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Profile), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CountByImageURLContaining(ctx context.Context, fragment string) (int64, error) {
	args := m.Called(ctx, fragment)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(repo Repository) *ServiceImplementation {
	cfg := &config.Config{PlaceholderImageURL: "https://example.com/placeholder.jpg"}
	return NewService(repo, cfg, zap.NewNop())
}

func TestSaveProfileWithoutIDCreates(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*profile.Profile")).Return(nil).Once()

	saved, created, err := svc.SaveProfile(context.Background(), nil, ProfileRequest{
		Name:  "Jane Doe",
		Theme: "midnight",
	})

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Jane Doe", saved.Name)
	assert.Equal(t, "midnight", saved.Theme)
	assert.Equal(t, "https://example.com/placeholder.jpg", saved.ImageURL)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSaveProfileWithIDUpdates(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	existing := NewProfile("https://example.com/placeholder.jpg")
	existing.ID = id
	existing.Name = "Old Name"

	repo.On("FindByID", mock.Anything, id).Return(existing, nil).Twice()
	repo.On("Update", mock.Anything, mock.AnythingOfType("*profile.Profile")).Return(nil).Once()

	saved, created, err := svc.SaveProfile(context.Background(), &id, ProfileRequest{
		Name:  "Jane Doe",
		Theme: "midnight",
	})

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, saved.ID)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaveProfileWithUnknownIDFails(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, common.ErrNotFound).Once()

	_, _, err := svc.SaveProfile(context.Background(), &id, ProfileRequest{Name: "Jane Doe"})

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestGetProfileNotFoundPassesThrough(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, common.ErrNotFound).Once()

	_, err := svc.GetProfile(context.Background(), id)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
}

func TestListProfiles(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	stored := []Profile{{Name: "Newest"}, {Name: "Oldest"}}
	repo.On("FindAll", mock.Anything).Return(stored, nil).Once()

	profiles, err := svc.ListProfiles(context.Background())

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Newest", profiles[0].Name)
}

func TestDeleteProfileMissing(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(common.ErrNotFound).Once()

	err := svc.DeleteProfile(context.Background(), id)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
}
