// File: internal/card/theme.go
package card

import (
	"image/color"

	"krikins_backend/internal/profile"
)

// Palette holds the five color roles a theme assigns to card regions. Header
// and badge backgrounds are gradients; solid themes use the same color for
// both stops.
type Palette struct {
	HeaderFrom color.RGBA // header band gradient start
	HeaderTo   color.RGBA // header band gradient end
	AccentText color.RGBA // name, age and nationality values
	SubText    color.RGBA // section labels and the role line
	BadgeFrom  color.RGBA // language pills and footer band gradient start
	BadgeTo    color.RGBA // language pills and footer band gradient end
	HeaderText color.RGBA // text inside the header band
}

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// palettes maps each theme tag to its fixed palette. The hex values mirror
// the visual identity of the themed web card this service renders for.
var palettes = map[string]Palette{
	"modern": {
		HeaderFrom: hex(0x1a1a1a),
		HeaderTo:   hex(0x1a1a1a),
		AccentText: hex(0x111827),
		SubText:    hex(0x6b7280),
		BadgeFrom:  hex(0x111111),
		BadgeTo:    hex(0x111111),
		HeaderText: white,
	},
	"midnight": {
		HeaderFrom: hex(0x1e3a8a),
		HeaderTo:   hex(0x1e3a8a),
		AccentText: hex(0x1e3a8a),
		SubText:    hex(0x2563eb),
		BadgeFrom:  hex(0x172554),
		BadgeTo:    hex(0x172554),
		HeaderText: hex(0xeff6ff),
	},
	"emerald": {
		HeaderFrom: hex(0x064e3b),
		HeaderTo:   hex(0x064e3b),
		AccentText: hex(0x064e3b),
		SubText:    hex(0x059669),
		BadgeFrom:  hex(0x022c22),
		BadgeTo:    hex(0x022c22),
		HeaderText: hex(0xecfdf5),
	},
	"crimson": {
		HeaderFrom: hex(0x7f1d1d),
		HeaderTo:   hex(0x7f1d1d),
		AccentText: hex(0x7f1d1d),
		SubText:    hex(0xdc2626),
		BadgeFrom:  hex(0x450a0a),
		BadgeTo:    hex(0x450a0a),
		HeaderText: hex(0xfef2f2),
	},
	"executive": {
		HeaderFrom: hex(0x0f172a),
		HeaderTo:   hex(0x1e293b),
		AccentText: hex(0x1e293b),
		SubText:    hex(0x64748b),
		BadgeFrom:  hex(0x0f172a),
		BadgeTo:    hex(0x0f172a),
		HeaderText: hex(0xf59e0b),
	},
	"horizon": {
		HeaderFrom: hex(0xfb923c),
		HeaderTo:   hex(0xec4899),
		AccentText: hex(0xdb2777),
		SubText:    hex(0xea580c),
		BadgeFrom:  hex(0xfb923c),
		BadgeTo:    hex(0xec4899),
		HeaderText: white,
	},
	"oceanic": {
		HeaderFrom: hex(0x0891b2),
		HeaderTo:   hex(0x1e40af),
		AccentText: hex(0x1e40af),
		SubText:    hex(0x0e7490),
		BadgeFrom:  hex(0x164e63),
		BadgeTo:    hex(0x164e63),
		HeaderText: hex(0xecfeff),
	},
	"nebula": {
		HeaderFrom: hex(0x7c3aed),
		HeaderTo:   hex(0x4f46e5),
		AccentText: hex(0x312e81),
		SubText:    hex(0x7c3aed),
		BadgeFrom:  hex(0x312e81),
		BadgeTo:    hex(0x312e81),
		HeaderText: hex(0xe0e7ff),
	},
}

// PaletteFor resolves a theme tag to its palette. Unknown or blank tags fall
// back to the default theme so a render never fails on bad input.
func PaletteFor(theme string) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[profile.DefaultTheme]
}

func hex(rgb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 0xff,
	}
}
