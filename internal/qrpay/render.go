package qrpay

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/base48/vietqr-portal/internal/vietqr"
)

// Layout of the captioned card.
const (
	captionQRSize   = 840
	captionTop      = 16
	captionSpacing  = 20
	captionBottom   = 65
	captionLabelPx  = 48
	captionValuePx  = 60
	logoWidthRatio  = 0.45
	logoHeightRatio = 0.15
)

// Layout of the poster. Custom backgrounds are expected to follow the same
// 1460x2100 canvas.
const (
	posterWidth    = 1460
	posterHeight   = 2100
	posterQRSize   = 540
	posterQRTop    = 936
	posterRadius   = 40
	posterLogoW    = 240
	posterLogoH    = 80
	posterNameY    = 1665
	posterAccountY = 1815
	posterTextPx   = 60
)

var (
	colorBrand  = color.RGBA{R: 0x00, G: 0x7C, B: 0x71, A: 0xFF}
	colorPoster = color.RGBA{R: 0, G: 102, B: 102, A: 0xFF}
	colorPaper  = color.RGBA{R: 0xE6, G: 0xF4, B: 0xF1, A: 0xFF}
)

// RendererOptions points to optional image and font assets. Empty paths use
// built-in fallbacks.
type RendererOptions struct {
	LogoPath       string
	FontPath       string
	BackgroundPath string
	// Size is the width of the logo presentation in pixels.
	Size int
}

// Renderer draws the three VietQR presentations. Assets are loaded once and
// never modified, so a Renderer may be shared between goroutines.
type Renderer struct {
	size       int
	logo       image.Image
	background image.Image
	font       *opentype.Font
	// builtinFont has no Vietnamese glyphs, so captions are folded to ASCII.
	builtinFont bool
}

// NewRenderer loads the configured assets.
func NewRenderer(opts RendererOptions) (*Renderer, error) {
	r := &Renderer{size: opts.Size}
	if r.size <= 0 {
		r.size = DefaultQRSize
	}

	var err error
	if opts.LogoPath != "" {
		if r.logo, err = loadImage(opts.LogoPath); err != nil {
			return nil, fmt.Errorf("failed to load logo: %w", err)
		}
	}
	if opts.BackgroundPath != "" {
		if r.background, err = loadImage(opts.BackgroundPath); err != nil {
			return nil, fmt.Errorf("failed to load background: %w", err)
		}
	}

	ttf := gobold.TTF
	r.builtinFont = true
	if opts.FontPath != "" {
		if ttf, err = os.ReadFile(opts.FontPath); err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		r.builtinFont = false
	}
	if r.font, err = opentype.Parse(ttf); err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	return r, nil
}

// HasLogo reports whether a logo is overlaid on the codes.
func (r *Renderer) HasLogo() bool {
	return r.logo != nil
}

// RenderLogo draws the payload as a QR code with the logo in the middle.
func (r *Renderer) RenderLogo(payload string) ([]byte, error) {
	return r.RenderLogoSize(payload, r.size)
}

// RenderLogoSize is RenderLogo with an explicit width in pixels.
func (r *Renderer) RenderLogoSize(payload string, size int) ([]byte, error) {
	img, err := r.logoQR(payload, size)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

// RenderCaptioned draws the logo QR code above the account name and id.
func (r *Renderer) RenderCaptioned(payload, accountName, accountID string) ([]byte, error) {
	qr, err := r.logoQR(payload, captionQRSize)
	if err != nil {
		return nil, err
	}

	lines := []struct {
		text string
		px   int
		col  color.Color
	}{
		{"Tên tài khoản:", captionLabelPx, color.Black},
		{strings.ToUpper(accountName), captionValuePx, colorBrand},
		{"Tài khoản định danh:", captionLabelPx, color.Black},
		{accountID, captionValuePx, colorBrand},
	}

	textHeight := captionSpacing * (len(lines) - 1)
	for _, l := range lines {
		textHeight += l.px
	}

	qb := qr.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, qb.Dx(), qb.Dy()+textHeight+captionBottom))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, image.Rect(0, 0, qb.Dx(), qb.Dy()), qr, qb.Min, draw.Src)

	y := qb.Dy() + captionTop
	for _, l := range lines {
		if err := r.drawCentered(canvas, l.text, l.px, y, l.col); err != nil {
			return nil, err
		}
		y += l.px + captionSpacing
	}

	return encodePNG(canvas)
}

// RenderPoster draws a rounded QR code on the background with the account
// name and id underneath.
func (r *Renderer) RenderPoster(payload, accountName, accountID string) ([]byte, error) {
	qr, err := generateQRImage(payload, posterQRSize)
	if err != nil {
		return nil, err
	}

	// Scale to the exact slot size; skip2 may return a slightly larger image
	square := image.NewRGBA(image.Rect(0, 0, posterQRSize, posterQRSize))
	draw.NearestNeighbor.Scale(square, square.Bounds(), qr, qr.Bounds(), draw.Src, nil)
	if r.logo != nil {
		logoRect := centeredRect(square.Bounds(), posterLogoW, posterLogoH)
		draw.CatmullRom.Scale(square, logoRect, r.logo, r.logo.Bounds(), draw.Over, nil)
	}

	canvas := r.posterBackground()
	cb := canvas.Bounds()
	x := cb.Min.X + (cb.Dx()-posterQRSize)/2
	slot := image.Rect(x, cb.Min.Y+posterQRTop, x+posterQRSize, cb.Min.Y+posterQRTop+posterQRSize)
	mask := roundedMask{rect: square.Bounds(), radius: posterRadius}
	draw.DrawMask(canvas, slot, square, image.Point{}, mask, image.Point{}, draw.Over)

	if err := r.drawCentered(canvas, strings.ToUpper(accountName), posterTextPx, posterNameY, colorPoster); err != nil {
		return nil, err
	}
	if err := r.drawCentered(canvas, accountID, posterTextPx, posterAccountY, colorPoster); err != nil {
		return nil, err
	}

	return encodePNG(canvas)
}

// logoQR renders the QR code and pastes the logo over its centre, scaled to
// 45% of the width and 15% of the height.
func (r *Renderer) logoQR(payload string, size int) (*image.RGBA, error) {
	qr, err := generateQRImage(payload, size)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(qr.Bounds())
	draw.Draw(canvas, canvas.Bounds(), qr, qr.Bounds().Min, draw.Src)

	if r.logo != nil {
		b := canvas.Bounds()
		w := int(float64(b.Dx()) * logoWidthRatio)
		h := int(float64(b.Dy()) * logoHeightRatio)
		draw.CatmullRom.Scale(canvas, centeredRect(b, w, h), r.logo, r.logo.Bounds(), draw.Over, nil)
	}

	return canvas, nil
}

func (r *Renderer) posterBackground() *image.RGBA {
	if r.background != nil {
		b := r.background.Bounds()
		canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(canvas, canvas.Bounds(), r.background, b.Min, draw.Src)
		return canvas
	}

	canvas := image.NewRGBA(image.Rect(0, 0, posterWidth, posterHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(colorPaper), image.Point{}, draw.Src)
	band := image.Rect(0, 0, posterWidth, posterHeight/8)
	draw.Draw(canvas, band, image.NewUniform(colorBrand), image.Point{}, draw.Src)
	return canvas
}

// drawCentered writes text horizontally centred on dst with its top edge at y.
func (r *Renderer) drawCentered(dst draw.Image, text string, px, y int, col color.Color) error {
	if text == "" {
		return nil
	}
	if r.builtinFont {
		text = vietqr.RemoveDiacritics(text)
	}

	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	width := d.MeasureString(text).Ceil()
	b := dst.Bounds()
	x := b.Min.X + (b.Dx()-width)/2
	d.Dot = fixed.P(x, y+face.Metrics().Ascent.Ceil())
	d.DrawString(text)

	return nil
}

func centeredRect(b image.Rectangle, w, h int) image.Rectangle {
	x := b.Min.X + (b.Dx()-w)/2
	y := b.Min.Y + (b.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return img, nil
}

// roundedMask is an alpha mask that is opaque inside a rectangle with rounded corners.
type roundedMask struct {
	rect   image.Rectangle
	radius int
}

func (m roundedMask) ColorModel() color.Model { return color.AlphaModel }

func (m roundedMask) Bounds() image.Rectangle { return m.rect }

func (m roundedMask) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.rect) {
		return color.Transparent
	}

	r := m.radius
	cx, cy := x, y
	switch {
	case x < m.rect.Min.X+r:
		cx = m.rect.Min.X + r
	case x >= m.rect.Max.X-r:
		cx = m.rect.Max.X - r - 1
	}
	switch {
	case y < m.rect.Min.Y+r:
		cy = m.rect.Min.Y + r
	case y >= m.rect.Max.Y-r:
		cy = m.rect.Max.Y - r - 1
	}

	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy > r*r {
		return color.Transparent
	}
	return color.Opaque
}
