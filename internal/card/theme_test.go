package card

import (
	"testing"

	"krikins_backend/internal/profile"

	"github.com/stretchr/testify/assert"
)

func TestPaletteForKnownThemes(t *testing.T) {
	for _, tag := range profile.Themes {
		_, ok := palettes[tag]
		assert.True(t, ok, "theme %q has no palette", tag)
	}
}

func TestPaletteForUnknownThemeFallsBack(t *testing.T) {
	assert.Equal(t, palettes[profile.DefaultTheme], PaletteFor("sparkles"))
	assert.Equal(t, palettes[profile.DefaultTheme], PaletteFor(""))
}

func TestPalettesAreDistinct(t *testing.T) {
	assert.NotEqual(t, PaletteFor("modern"), PaletteFor("midnight"))
	assert.NotEqual(t, PaletteFor("horizon"), PaletteFor("oceanic"))
}

func TestGradientThemesHaveTwoStops(t *testing.T) {
	horizon := PaletteFor("horizon")
	assert.NotEqual(t, horizon.HeaderFrom, horizon.HeaderTo)

	modern := PaletteFor("modern")
	assert.Equal(t, modern.HeaderFrom, modern.HeaderTo)
}
