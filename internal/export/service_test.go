package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"krikins_backend/internal/card"
	"krikins_backend/internal/common"
	"krikins_backend/internal/profile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProfileService is a mock type for profile.Service
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) SaveProfile(ctx context.Context, id *uuid.UUID, req profile.ProfileRequest) (*profile.Profile, bool, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*profile.Profile), args.Bool(1), args.Error(2)
}

func (m *MockProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*profile.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.Profile), args.Error(1)
}

func (m *MockProfileService) ListProfiles(ctx context.Context) ([]profile.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]profile.Profile), args.Error(1)
}

func (m *MockProfileService) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Jane Doe", "jane_doe.png"},
		{"  Jane   Doe  ", "jane_doe.png"},
		{"Jānis Bērziņš", "janis_berzins.png"},
		{"", "card.png"},
		{"!!!", "card.png"},
		{"O'Brien-Smith", "o_brien_smith.png"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, Filename(tc.name), "name %q", tc.name)
	}
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newTestService(t *testing.T, profiles profile.Service) *ServiceImplementation {
	t.Helper()
	renderer, err := card.NewRenderer(2)
	require.NoError(t, err)
	return NewService(profiles, renderer, zap.NewNop())
}

func TestExportCard(t *testing.T) {
	profiles := new(MockProfileService)
	svc := newTestService(t, profiles)

	id := uuid.New()
	p := profile.NewProfile(pngDataURI(t))
	p.ID = id
	p.Name = "Jane Doe"
	p.EventName = "Summit 2026"
	profiles.On("GetProfile", mock.Anything, id).Return(p, nil).Once()

	data, filename, err := svc.ExportCard(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, "jane_doe.png", filename)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 750, img.Bounds().Dx())
	profiles.AssertExpectations(t)
}

func TestExportCardProfileMissing(t *testing.T) {
	profiles := new(MockProfileService)
	svc := newTestService(t, profiles)

	id := uuid.New()
	profiles.On("GetProfile", mock.Anything, id).Return(nil, common.ErrNotFound).Once()

	_, _, err := svc.ExportCard(context.Background(), id)

	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, common.ErrNotFound.Code, apiErr.Code)
}

func TestRenderCardToleratesBrokenImageURL(t *testing.T) {
	profiles := new(MockProfileService)
	svc := newTestService(t, profiles)

	p := profile.NewProfile("data:image/png;base64,not-base64-at-all")
	p.Name = "Jane Doe"

	data, err := svc.RenderCard(context.Background(), p)

	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestResolveImageRejectsUnknownScheme(t *testing.T) {
	profiles := new(MockProfileService)
	svc := newTestService(t, profiles)

	_, err := svc.resolveImage(context.Background(), "ftp://example.com/photo.png")
	assert.Error(t, err)

	img, err := svc.resolveImage(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, img)
}
