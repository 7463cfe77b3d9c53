package render

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// FontSet holds the parsed typefaces used by the renderer. It is built
// once at startup and never mutated afterwards. Faces are created per
// render call because font.Face values are not safe for concurrent use.
type FontSet struct {
	Regular *opentype.Font
	Bold    *opentype.Font
}

func (fs *FontSet) RegularFace(sizePx float64) (font.Face, error) {
	return newFace(fs.Regular, sizePx)
}

func (fs *FontSet) BoldFace(sizePx float64) (font.Face, error) {
	return newFace(fs.Bold, sizePx)
}

// newFace creates a face sized in pixels (points at 72 DPI).
func newFace(f *opentype.Font, sizePx float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
