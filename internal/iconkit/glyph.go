package iconkit

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// glyphOversample - во сколько раз надпись растеризуется крупнее
// перед масштабированием в итоговый прямоугольник.
const glyphOversample = 4

// loadFont разбирает шрифт стиля, при ошибке - Go Bold.
func loadFont(data []byte) (*opentype.Font, error) {
	if len(data) > 0 {
		if f, err := opentype.Parse(data); err == nil {
			return f, nil
		}
	}
	return opentype.Parse(gobold.TTF)
}

// renderGlyph растеризует текст надписи в маску по её собственным границам.
// Межбуквенный интервал задаётся в пунктах, размер - pointSize*scale.
func renderGlyph(f *opentype.Font, text string, pointSize, letterSpacing, scale float64) (*image.Alpha, error) {
	if text == "" {
		return nil, nil
	}
	size := math.Max(pointSize, 1) * scale * glyphOversample
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	defer face.Close()

	spacing := fixed.Int26_6(math.Round(letterSpacing * scale * glyphOversample * 64))
	runes := []rune(text)

	// Первый проход: позиции пера и общие границы
	pens := make([]fixed.Int26_6, len(runes))
	var bounds fixed.Rectangle26_6
	var pen fixed.Int26_6
	prev := rune(-1)
	for i, r := range runes {
		if prev >= 0 {
			pen += face.Kern(prev, r)
		}
		pens[i] = pen
		b, advance, ok := face.GlyphBounds(r)
		if ok {
			b = b.Add(fixed.Point26_6{X: pen})
			if i == 0 {
				bounds = b
			} else {
				bounds = bounds.Union(b)
			}
		}
		pen += advance + spacing
		prev = r
	}

	w := (bounds.Max.X - bounds.Min.X).Ceil()
	h := (bounds.Max.Y - bounds.Min.Y).Ceil()
	if w <= 0 || h <= 0 {
		return nil, nil
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face}
	for i, r := range runes {
		d.Dot = fixed.Point26_6{X: pens[i] - bounds.Min.X, Y: -bounds.Min.Y}
		d.DrawString(string(r))
	}
	return mask, nil
}
