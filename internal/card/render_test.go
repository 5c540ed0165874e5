package card

import (
	"image"
	"image/color"
	"testing"

	"krikins_backend/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *profile.Profile {
	p := profile.NewProfile("")
	p.Name = "Jane Doe"
	p.Role = "Coordinator"
	p.Age = 34
	p.Nationality = "Latvian"
	p.EventName = "Summit 2026"
	p.Languages = profile.StringList{"English", "Latvian"}
	p.Experience = profile.ExperienceList{
		{ID: "1", Company: "Acme", Role: "Lead"},
		{ID: "2", Company: "Globex", Role: "Analyst"},
	}
	return p
}

func testPhoto() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 200, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	return img
}

func TestNewRendererRejectsBadRatio(t *testing.T) {
	_, err := NewRenderer(0)
	assert.Error(t, err)
	_, err = NewRenderer(-1)
	assert.Error(t, err)
}

func TestRenderDimensionsScaleWithPixelRatio(t *testing.T) {
	p := testProfile()

	r1, err := NewRenderer(1)
	require.NoError(t, err)
	img1, err := r1.Render(p, testPhoto())
	require.NoError(t, err)

	r2, err := NewRenderer(2)
	require.NoError(t, err)
	img2, err := r2.Render(p, testPhoto())
	require.NoError(t, err)

	assert.Equal(t, 375, img1.Bounds().Dx())
	assert.Equal(t, 750, img2.Bounds().Dx())
	assert.InDelta(t, img1.Bounds().Dy()*2, img2.Bounds().Dy(), 1)
}

func TestRenderWithoutPhoto(t *testing.T) {
	r, err := NewRenderer(1)
	require.NoError(t, err)

	img, err := r.Render(testProfile(), nil)
	require.NoError(t, err)
	assert.Equal(t, 375, img.Bounds().Dx())
}

func TestRenderUnknownThemeMatchesDefault(t *testing.T) {
	r, err := NewRenderer(1)
	require.NoError(t, err)

	known := testProfile()
	known.Theme = profile.DefaultTheme
	unknown := testProfile()
	unknown.Theme = "sparkles"

	imgKnown, err := r.Render(known, nil)
	require.NoError(t, err)
	imgUnknown, err := r.Render(unknown, nil)
	require.NoError(t, err)

	require.Equal(t, imgKnown.Bounds(), imgUnknown.Bounds())
	// Sample the header band; both renders must use the default palette.
	assert.Equal(t, imgKnown.At(10, 10), imgUnknown.At(10, 10))
	assert.Equal(t, imgKnown.At(187, 150), imgUnknown.At(187, 150))
}

func TestRenderDoesNotMutateProfile(t *testing.T) {
	r, err := NewRenderer(1)
	require.NoError(t, err)

	p := testProfile()
	p.Theme = "sparkles"
	languagesBefore := append(profile.StringList{}, p.Languages...)

	_, err = r.Render(p, testPhoto())
	require.NoError(t, err)

	assert.Equal(t, "sparkles", p.Theme)
	assert.Equal(t, languagesBefore, p.Languages)
}

func TestRenderGrowsWithContent(t *testing.T) {
	r, err := NewRenderer(1)
	require.NoError(t, err)

	small := testProfile()
	small.Languages = profile.StringList{}
	small.Experience = profile.ExperienceList{}

	big := testProfile()
	for i := 0; i < 8; i++ {
		big.AddExperience()
		big.AddLanguage()
	}

	imgSmall, err := r.Render(small, nil)
	require.NoError(t, err)
	imgBig, err := r.Render(big, nil)
	require.NoError(t, err)

	assert.Greater(t, imgBig.Bounds().Dy(), imgSmall.Bounds().Dy())
}
