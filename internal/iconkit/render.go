package iconkit

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Icon - готовый кадр для строки меню.
type Icon struct {
	PNG      []byte
	Template bool
}

// Renderer рисует кадры иконки. Стиль можно менять между вызовами Render.
type Renderer struct {
	mu     sync.Mutex
	style  Style
	symbol Symbol

	glyph     *image.Alpha
	glyphDone bool
}

// NewRenderer создаёт рендерер со стрелками CircularArrows.
func NewRenderer(style Style) *Renderer {
	return &Renderer{style: style, symbol: CircularArrows{}}
}

// Style возвращает текущий стиль.
func (r *Renderer) Style() Style {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.style
}

// SetStyle заменяет стиль и сбрасывает кэш надписи.
func (r *Renderer) SetStyle(style Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.style = style
	r.glyph = nil
	r.glyphDone = false
}

// SetSymbol заменяет источник стрелок. nil - стрелки не рисуются.
func (r *Renderer) SetSymbol(symbol Symbol) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.symbol = symbol
}

// Render рисует кадр состояния; angle используется только для Working*.
func (r *Renderer) Render(state State, angle float64) *image.NRGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.style
	k := s.scale()
	w, h := s.PixelSize()
	canvas := pillMask(w, h, Rect{W: float64(w), H: float64(h)}, s.CornerRadius*k, s.LineWidth*k, state.filled())

	padded := Rect{W: float64(w), H: float64(h)}.Inset(s.Padding * k)
	var layer *image.Alpha
	if state.Working() {
		layer = r.arrowLayer(w, h, padded, angle)
	} else {
		layer = r.glyphLayer(w, h, padded)
	}

	if layer != nil {
		if state.filled() {
			cutOut(canvas, layer)
		} else {
			drawOver(canvas, layer)
		}
	}
	return tint(canvas)
}

// PNG рисует кадр и кодирует его в PNG.
func (r *Renderer) PNG(state State, angle float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, r.Render(state, angle)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Icon рисует кадр вместе с флагом template для состояния.
func (r *Renderer) Icon(state State, angle float64) (Icon, error) {
	data, err := r.PNG(state, angle)
	if err != nil {
		return Icon{}, err
	}
	return Icon{PNG: data, Template: r.Style().template(state)}, nil
}

// glyphLayer вписывает надпись в padded. Вызывается под r.mu.
func (r *Renderer) glyphLayer(w, h int, padded Rect) *image.Alpha {
	if !r.glyphDone {
		r.glyphDone = true
		f, err := loadFont(r.style.GlyphFont)
		if err == nil {
			r.glyph, _ = renderGlyph(f, r.style.GlyphText, r.style.GlyphPointSize, r.style.GlyphLetterSpacing, r.style.scale())
		}
	}
	if r.glyph == nil {
		return nil
	}

	b := r.glyph.Bounds()
	fit := FitRect(float64(b.Dx()), float64(b.Dy()), padded)
	// BaselineAdjust в пунктах, положительное значение поднимает надпись
	fit.Y -= r.style.BaselineAdjust * r.style.scale()

	layer := image.NewAlpha(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(layer, fit.Image(), r.glyph, b, xdraw.Over, nil)
	return layer
}

// arrowLayer вписывает повёрнутые стрелки в padded. Вызывается под r.mu.
func (r *Renderer) arrowLayer(w, h int, padded Rect, angle float64) *image.Alpha {
	if r.symbol == nil {
		return nil
	}
	sw, sh := r.symbol.Size(r.style.ArrowPointSize)
	dst := FitRect(sw, sh, padded).Image()
	mask := r.symbol.Mask(dst.Dx(), dst.Dy(), wrapAngle(angle))
	if mask == nil {
		return nil
	}

	layer := image.NewAlpha(image.Rect(0, 0, w, h))
	xdraw.Draw(layer, dst, mask, mask.Bounds().Min, xdraw.Over)
	return layer
}

// drawOver накладывает layer поверх canvas.
func drawOver(canvas, layer *image.Alpha) {
	for i, m := range layer.Pix {
		if m == 0 {
			continue
		}
		c := uint32(canvas.Pix[i])
		canvas.Pix[i] = uint8(uint32(m) + c*(255-uint32(m))/255)
	}
}

// cutOut вырезает layer из canvas (destination-out).
func cutOut(canvas, layer *image.Alpha) {
	for i, m := range layer.Pix {
		if m == 0 {
			continue
		}
		c := uint32(canvas.Pix[i])
		canvas.Pix[i] = uint8(c * (255 - uint32(m)) / 255)
	}
}

// tint превращает маску в чёрное изображение с альфой.
func tint(mask *image.Alpha) *image.NRGBA {
	img := image.NewNRGBA(mask.Bounds())
	for y := mask.Rect.Min.Y; y < mask.Rect.Max.Y; y++ {
		for x := mask.Rect.Min.X; x < mask.Rect.Max.X; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: mask.AlphaAt(x, y).A})
		}
	}
	return img
}
