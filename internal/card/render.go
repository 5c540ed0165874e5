// File: internal/card/render.go
package card

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"krikins_backend/internal/profile"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Logical card geometry. All values are in CSS-like logical pixels and are
// multiplied by the pixel ratio when rasterized.
const (
	cardWidth    = 375.0
	headerHeight = 160.0
	frameSize    = 160.0
	frameTop     = 80.0
	framePad     = 8.0
	sideMargin   = 24.0
	gridMargin   = 40.0
)

// Renderer rasterizes badge cards to raster images. It is safe for
// concurrent use; all state is immutable after construction.
type Renderer struct {
	ratio   float64
	regular *sfnt.Font
	bold    *sfnt.Font
}

// NewRenderer parses the embedded typefaces and returns a renderer that
// rasterizes at the given pixel ratio. Ratios above one produce sharper
// output for the same logical card size.
func NewRenderer(pixelRatio float64) (*Renderer, error) {
	if pixelRatio <= 0 {
		return nil, fmt.Errorf("pixel ratio must be positive, got %v", pixelRatio)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular typeface: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold typeface: %w", err)
	}
	return &Renderer{ratio: pixelRatio, regular: regular, bold: bold}, nil
}

// PixelRatio reports the configured rasterization scale.
func (r *Renderer) PixelRatio() float64 {
	return r.ratio
}

func (r *Renderer) face(f *sfnt.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size * r.ratio,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Render draws the full themed card for one profile and returns the raster.
// The photo argument may be nil, in which case the portrait frame keeps its
// neutral background. The profile is never mutated.
func (r *Renderer) Render(p *profile.Profile, photo image.Image) (image.Image, error) {
	pal := PaletteFor(p.Theme)

	faces, err := r.loadFaces()
	if err != nil {
		return nil, err
	}

	pillRows := layoutPills(faces.pill, p.Languages, r.ratio)
	height := cardContentHeight(p, pillRows)

	dc := gg.NewContext(r.px(cardWidth), r.px(height))
	dc.SetColor(white)
	dc.Clear()

	r.drawHeader(dc, pal, faces)
	r.drawPortrait(dc, p, photo)

	y := frameTop + frameSize + 24.0

	// Name and role.
	dc.SetFontFace(faces.name)
	dc.SetColor(pal.AccentText)
	dc.DrawStringAnchored(p.Name, r.s(cardWidth/2), r.s(y+15), 0.5, 0.5)
	y += 30 + 8
	dc.SetFontFace(faces.label)
	dc.SetColor(pal.SubText)
	r.drawTracked(dc, strings.ToUpper(p.Role), cardWidth/2, y+6, 2.0, 0.5)
	y += 12 + 32

	// Age and nationality grid.
	y = r.drawDetailsGrid(dc, p, pal, faces, y)

	// Languages.
	dc.SetFontFace(faces.label)
	dc.SetColor(pal.SubText)
	r.drawTracked(dc, "LANGUAGES", cardWidth/2, y+6, 2.0, 0.5)
	y += 12 + 16
	y = r.drawPills(dc, pal, faces, pillRows, y)
	y += 40

	// Experience.
	dc.SetFontFace(faces.label)
	dc.SetColor(pal.SubText)
	r.drawTracked(dc, "EXPERIENCE", gridMargin, y+6, 2.0, 0)
	y += 12 + 24
	y = r.drawExperience(dc, p, pal, faces, y)
	y += 48

	// Footer band with the event name.
	r.drawFooter(dc, p, pal, faces, y)

	return dc.Image(), nil
}

type faceSet struct {
	headerLabel font.Face // 10px header eyebrow
	headerTitle font.Face // 12px header title
	name        font.Face // 24px bold
	label       font.Face // 10px section labels
	value       font.Face // 18px bold grid values
	pill        font.Face // 10px bold pill text
	experience  font.Face // 14px row text
	footer      font.Face // 12px bold footer
}

func (r *Renderer) loadFaces() (*faceSet, error) {
	var fs faceSet
	var err error
	if fs.headerLabel, err = r.face(r.regular, 10); err != nil {
		return nil, err
	}
	if fs.headerTitle, err = r.face(r.bold, 12); err != nil {
		return nil, err
	}
	if fs.name, err = r.face(r.bold, 24); err != nil {
		return nil, err
	}
	if fs.label, err = r.face(r.regular, 10); err != nil {
		return nil, err
	}
	if fs.value, err = r.face(r.bold, 18); err != nil {
		return nil, err
	}
	if fs.pill, err = r.face(r.bold, 10); err != nil {
		return nil, err
	}
	if fs.experience, err = r.face(r.regular, 14); err != nil {
		return nil, err
	}
	if fs.footer, err = r.face(r.bold, 12); err != nil {
		return nil, err
	}
	return &fs, nil
}

// pillRow is one wrapped row of language pills with precomputed widths.
type pillRow struct {
	labels []string
	widths []float64
	total  float64
}

const (
	pillHeight   = 30.0
	pillMinWidth = 80.0
	pillGap      = 8.0
	pillPadding  = 16.0
)

// layoutPills measures every language label and wraps the pills into rows
// that fit the card's content width.
func layoutPills(face font.Face, languages []string, ratio float64) []pillRow {
	maxRow := cardWidth - 2*sideMargin
	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)

	var rows []pillRow
	var current pillRow
	for _, lang := range languages {
		label := strings.ToUpper(lang)
		textW, _ := measure.MeasureString(label)
		w := math.Max(pillMinWidth, textW/ratio+2*pillPadding)
		needed := w
		if len(current.labels) > 0 {
			needed += pillGap
		}
		if len(current.labels) > 0 && current.total+needed > maxRow {
			rows = append(rows, current)
			current = pillRow{}
			needed = w
		}
		current.labels = append(current.labels, label)
		current.widths = append(current.widths, w)
		current.total += needed
	}
	if len(current.labels) > 0 {
		rows = append(rows, current)
	}
	return rows
}

// cardContentHeight computes the logical card height from the profile's
// content so the footer always sits below the last section.
func cardContentHeight(p *profile.Profile, pillRows []pillRow) float64 {
	y := frameTop + frameSize + 24.0
	y += 30 + 8      // name
	y += 12 + 32     // role
	y += 16 + 22 + 32 // details grid
	y += 12 + 16     // languages label
	if n := len(pillRows); n > 0 {
		y += float64(n)*pillHeight + float64(n-1)*pillGap
	}
	y += 40
	y += 12 + 24 // experience label
	if n := len(p.Experience); n > 0 {
		y += float64(n)*20 + float64(n-1)*24
	}
	y += 48
	y += 44 + 32 // footer band and bottom padding
	return y
}

func (r *Renderer) drawHeader(dc *gg.Context, pal Palette, faces *faceSet) {
	grad := gg.NewLinearGradient(0, 0, r.s(cardWidth), 0)
	grad.AddColorStop(0, pal.HeaderFrom)
	grad.AddColorStop(1, pal.HeaderTo)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, r.s(cardWidth), r.s(headerHeight))
	dc.Fill()

	dc.SetColor(withAlpha(pal.HeaderText, 0.9))
	dc.SetFontFace(faces.headerLabel)
	r.drawTracked(dc, "EVENT STAFF", cardWidth/2, 38, 2.0, 0.5)
	dc.SetColor(pal.HeaderText)
	dc.SetFontFace(faces.headerTitle)
	r.drawTracked(dc, "IDENTIFICATION", cardWidth/2, 56, 2.4, 0.5)
}

// drawPortrait renders the white padded frame and the contain-fitted photo
// with the profile's pan and zoom applied about the frame center.
func (r *Renderer) drawPortrait(dc *gg.Context, p *profile.Profile, photo image.Image) {
	frameX := (cardWidth - frameSize) / 2

	dc.SetColor(white)
	dc.DrawRoundedRectangle(r.s(frameX), r.s(frameTop), r.s(frameSize), r.s(frameSize), r.s(32))
	dc.Fill()

	innerX := frameX + framePad
	innerY := frameTop + framePad
	innerSize := frameSize - 2*framePad

	dc.Push()
	dc.DrawRoundedRectangle(r.s(innerX), r.s(innerY), r.s(innerSize), r.s(innerSize), r.s(24))
	dc.Clip()

	dc.SetColor(hex(0xf3f4f6))
	dc.DrawRectangle(r.s(innerX), r.s(innerY), r.s(innerSize), r.s(innerSize))
	dc.Fill()

	if photo != nil {
		pos := p.Position()
		cx := r.s(innerX + innerSize/2)
		cy := r.s(innerY + innerSize/2)

		bounds := photo.Bounds()
		iw := float64(bounds.Dx())
		ih := float64(bounds.Dy())
		if iw > 0 && ih > 0 {
			fit := math.Min(r.s(innerSize)/iw, r.s(innerSize)/ih)

			dc.Translate(r.s(pos.X), r.s(pos.Y))
			dc.ScaleAbout(pos.Scale*fit, pos.Scale*fit, cx, cy)
			dc.DrawImageAnchored(photo, int(cx), int(cy), 0.5, 0.5)
		}
	}
	dc.Pop()
}

func (r *Renderer) drawDetailsGrid(dc *gg.Context, p *profile.Profile, pal Palette, faces *faceSet, y float64) float64 {
	columnWidth := (cardWidth - 2*gridMargin) / 2
	leftX := gridMargin
	rightX := gridMargin + columnWidth

	dc.SetFontFace(faces.label)
	dc.SetColor(pal.SubText)
	r.drawTracked(dc, "AGE", leftX, y+6, 1.0, 0)
	r.drawTracked(dc, "NATIONALITY", rightX, y+6, 1.0, 0)
	y += 16

	dc.SetFontFace(faces.value)
	dc.SetColor(pal.AccentText)
	dc.DrawStringAnchored(fmt.Sprintf("%d", p.Age), r.s(leftX), r.s(y+11), 0, 0.5)
	dc.DrawStringAnchored(p.Nationality, r.s(rightX), r.s(y+11), 0, 0.5)
	return y + 22 + 32
}

func (r *Renderer) drawPills(dc *gg.Context, pal Palette, faces *faceSet, rows []pillRow, y float64) float64 {
	dc.SetFontFace(faces.pill)
	for i, row := range rows {
		x := (cardWidth - row.total) / 2
		for j, label := range row.labels {
			w := row.widths[j]
			grad := gg.NewLinearGradient(r.s(x), 0, r.s(x+w), 0)
			grad.AddColorStop(0, pal.BadgeFrom)
			grad.AddColorStop(1, pal.BadgeTo)
			dc.SetFillStyle(grad)
			dc.DrawRoundedRectangle(r.s(x), r.s(y), r.s(w), r.s(pillHeight), r.s(pillHeight/2))
			dc.Fill()

			dc.SetColor(white)
			dc.DrawStringAnchored(label, r.s(x+w/2), r.s(y+pillHeight/2), 0.5, 0.5)
			x += w + pillGap
		}
		if i < len(rows)-1 {
			y += pillHeight + pillGap
		} else {
			y += pillHeight
		}
	}
	return y
}

func (r *Renderer) drawExperience(dc *gg.Context, p *profile.Profile, pal Palette, faces *faceSet, y float64) float64 {
	for i, exp := range p.Experience {
		rowCenter := y + 10

		dc.SetColor(hex(0xd1d5db))
		dc.SetLineWidth(r.s(1))
		dc.DrawCircle(r.s(gridMargin+8), r.s(rowCenter), r.s(8))
		dc.Stroke()
		dc.SetColor(pal.SubText)
		dc.DrawCircle(r.s(gridMargin+8), r.s(rowCenter), r.s(3))
		dc.Fill()

		dc.SetFontFace(faces.experience)
		dc.SetColor(hex(0x1f2937))
		line := exp.Company + " — " + exp.Role
		dc.DrawStringAnchored(line, r.s(gridMargin+32), r.s(rowCenter), 0, 0.5)

		y += 20
		if i < len(p.Experience)-1 {
			y += 24
		}
	}
	return y
}

func (r *Renderer) drawFooter(dc *gg.Context, p *profile.Profile, pal Palette, faces *faceSet, y float64) {
	bandWidth := cardWidth - 2*sideMargin
	grad := gg.NewLinearGradient(r.s(sideMargin), 0, r.s(sideMargin+bandWidth), 0)
	grad.AddColorStop(0, pal.BadgeFrom)
	grad.AddColorStop(1, pal.BadgeTo)
	dc.SetFillStyle(grad)
	dc.DrawRoundedRectangle(r.s(sideMargin), r.s(y), r.s(bandWidth), r.s(44), r.s(16))
	dc.Fill()

	dc.SetColor(white)
	dc.SetFontFace(faces.footer)
	r.drawTracked(dc, strings.ToUpper(p.EventName), cardWidth/2, y+22, 3.6, 0.5)
}

// drawTracked draws a string with letter spacing, either left-aligned
// (ax == 0) or centered (ax == 0.5) at the given logical position. The y
// coordinate is the vertical center of the line.
func (r *Renderer) drawTracked(dc *gg.Context, s string, x, y, tracking, ax float64) {
	runes := []rune(s)
	if len(runes) == 0 {
		return
	}
	track := r.s(tracking)

	total := 0.0
	widths := make([]float64, len(runes))
	for i, ch := range runes {
		w, _ := dc.MeasureString(string(ch))
		widths[i] = w
		total += w
	}
	total += track * float64(len(runes)-1)

	cursor := r.s(x) - ax*total
	for i, ch := range runes {
		dc.DrawStringAnchored(string(ch), cursor, r.s(y), 0, 0.5)
		cursor += widths[i] + track
	}
}

// s converts a logical coordinate to device pixels.
func (r *Renderer) s(v float64) float64 {
	return v * r.ratio
}

// px converts a logical dimension to an integer device pixel count.
func (r *Renderer) px(v float64) int {
	return int(math.Ceil(v * r.ratio))
}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	c.A = uint8(math.Round(alpha * 255))
	return c
}
