// Package render draws printable event badges: a participant name as up
// to two centered lines with an optional QR code and category label
// below, on a canvas sized from physical dimensions and a DPI.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// The badge template is fixed at 50mm x 80mm. Content is always drawn
// in landscape orientation; portrait output is reached via rotation.
const (
	BadgeWidthMM  = 80.0
	BadgeHeightMM = 50.0
)

// DPI bounds and default.
const (
	MinDPI     = 72
	MaxDPI     = 1200
	DefaultDPI = 300
)

// Virtual layout ruler: a 500x800 reference grid from which all
// physical positions are derived. Horizontal quantities scale by
// contentWidth/500, vertical by contentHeight/800, and square elements
// (QR, fonts) by the smaller of the two.
const (
	virtualWidth     = 500.0
	virtualHeight    = 800.0
	virtualTitleSize = 140.0
	virtualLineGap   = 40.0
	virtualTextGap   = 220.0
	virtualQRSize    = 330.0
	virtualQRInset   = 40.0
	virtualSoloGap   = 30.0
	virtualCatGap    = 18.0
)

// Absolute pixel constants, not scaled.
const (
	topPaddingPx      = 40.0
	bottomPaddingPx   = 30.0
	textGapFloorPx    = 40.0
	minCategorySizePx = 6.0
)

// Request describes a single badge render.
type Request struct {
	Name      string
	QRPayload string // empty means no QR and no category
	Category  string
	DPI       int
	WidthMM   float64
	HeightMM  float64
	Rotation  int // degrees clockwise, one of 0/90/180/270
	MaxLine1  int
	MaxLine2  int
}

// Renderer draws badges using a fixed set of typefaces.
type Renderer struct {
	Fonts *FontSet
}

func New(fonts *FontSet) *Renderer {
	return &Renderer{Fonts: fonts}
}

// MMToPx converts a physical length to pixels at the given DPI.
func MMToPx(mm float64, dpi int) int {
	return int(math.Round(mm / 25.4 * float64(dpi)))
}

// ClampDPI bounds a DPI value to [MinDPI, MaxDPI].
func ClampDPI(dpi int) int {
	if dpi < MinDPI {
		return MinDPI
	}
	if dpi > MaxDPI {
		return MaxDPI
	}
	return dpi
}

// NormalizeRotation snaps a rotation to the supported set. Anything
// outside {0, 90, 180, 270} falls back to 0 rather than erroring.
func NormalizeRotation(degrees int) int {
	switch degrees {
	case 90, 180, 270:
		return degrees
	}
	return 0
}

// Render produces the final PNG bytes for a badge request.
func (r *Renderer) Render(req Request) ([]byte, error) {
	dpi := ClampDPI(req.DPI)
	contentW := MMToPx(req.WidthMM, dpi)
	contentH := MMToPx(req.HeightMM, dpi)

	dc := gg.NewContext(contentW, contentH)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	scaleX := float64(contentW) / virtualWidth
	scaleY := float64(contentH) / virtualHeight
	uniform := math.Min(scaleX, scaleY)

	innerWidth := float64(contentW)
	centerX := innerWidth / 2

	lineGap := virtualLineGap * scaleY
	afterTextGap := math.Max(textGapFloorPx, virtualTextGap*scaleY)
	titleSize := math.Round(virtualTitleSize * uniform)

	plan := PlanLines(req.Name, req.MaxLine1, req.MaxLine2)

	dc.SetRGB(0, 0, 0)
	y := topPaddingPx
	if plan.Line1 != "" {
		face, err := r.Fonts.BoldFace(titleSize)
		if err != nil {
			return nil, fmt.Errorf("title face: %w", err)
		}
		dc.SetFontFace(face)
		dc.DrawStringAnchored(plan.Line1, centerX, y, 0.5, 1)
	}
	if plan.Line2 != "" {
		y += titleSize + lineGap
		face, err := r.Fonts.RegularFace(titleSize)
		if err != nil {
			return nil, fmt.Errorf("second line face: %w", err)
		}
		dc.SetFontFace(face)
		dc.DrawStringAnchored(plan.Line2, centerX, y, 0.5, 1)
	} else {
		// Extra breathing room under a single-line name.
		y += titleSize + lineGap + virtualSoloGap*scaleY
	}
	y += afterTextGap

	if payload := strings.TrimSpace(req.QRPayload); payload != "" {
		if err := r.drawQR(dc, payload, strings.TrimSpace(req.Category), y, titleSize, uniform, centerX); err != nil {
			return nil, err
		}
	}

	out := rotated(dc.Image(), NormalizeRotation(req.Rotation))

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// drawQR places the QR bitmap centered at y, clamped so that the code
// plus any category line below it stays above the bottom padding. The
// category is only ever drawn together with a QR.
func (r *Renderer) drawQR(dc *gg.Context, payload, category string, y, titleSize, uniform, centerX float64) error {
	contentW := dc.Width()
	contentH := dc.Height()

	qrSize := int(math.Round((virtualQRSize - virtualQRInset) * uniform))
	if qrSize > contentW {
		qrSize = contentW
	}

	var catSize, catGap float64
	if category != "" {
		catSize = math.Max(minCategorySizePx, math.Round(titleSize*0.25))
		catGap = math.Round(virtualCatGap * uniform)
	}

	qrImg, err := EncodeQR(payload, qrSize)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}

	qrX := int(math.Round((float64(contentW) - float64(qrSize)) / 2))
	qrY := int(math.Round(y))
	maxY := int(float64(contentH)-bottomPaddingPx-catGap-catSize) - qrSize
	if qrY > maxY {
		qrY = maxY
	}
	if qrY < 0 {
		qrY = 0
	}
	dc.DrawImage(qrImg, qrX, qrY)

	if category != "" {
		face, err := r.Fonts.RegularFace(catSize)
		if err != nil {
			return fmt.Errorf("category face: %w", err)
		}
		dc.SetFontFace(face)
		dc.DrawStringAnchored(category, centerX, float64(qrY+qrSize)+catGap, 0.5, 1)
	}
	return nil
}

// rotated composes the landscape content onto its final orientation.
// The imaging rotations are counter-clockwise while the request's are
// clockwise, so 90 and 270 swap.
func rotated(img image.Image, degrees int) image.Image {
	switch degrees {
	case 90:
		return imaging.Rotate270(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate90(img)
	}
	return img
}
