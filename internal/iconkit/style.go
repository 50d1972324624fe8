// Package iconkit рисует иконку строки меню в четырёх состояниях
// и анимирует вращающиеся стрелки, пока идёт переключение.
package iconkit

import (
	"math"
	"time"
)

// State - визуальное состояние иконки.
type State int

const (
	// Off - контурная «таблетка» с надписью fn.
	Off State = iota
	// On - залитая «таблетка» с вырезанной надписью fn.
	On
	// WorkingFromOff - контур и вращающиеся стрелки поверх.
	WorkingFromOff
	// WorkingFromOn - заливка и вырезанные вращающиеся стрелки.
	WorkingFromOn
)

// Working сообщает, анимируется ли состояние.
func (s State) Working() bool {
	return s == WorkingFromOff || s == WorkingFromOn
}

// filled сообщает, залита ли «таблетка».
func (s State) filled() bool {
	return s == On || s == WorkingFromOn
}

func (s State) String() string {
	switch s {
	case Off:
		return "off"
	case On:
		return "on"
	case WorkingFromOff:
		return "working-from-off"
	case WorkingFromOn:
		return "working-from-on"
	default:
		return "unknown"
	}
}

// AllStates - все состояния в порядке отображения.
var AllStates = []State{Off, On, WorkingFromOff, WorkingFromOn}

// Style описывает геометрию, надпись и анимацию иконки.
// Размеры задаются в пунктах; Scale переводит их в пиксели.
type Style struct {
	Width        float64
	Height       float64
	Scale        float64
	CornerRadius float64
	LineWidth    float64

	GlyphText          string
	GlyphPointSize     float64
	GlyphFont          []byte // TTF/OTF; nil - Go Bold
	GlyphLetterSpacing float64
	BaselineAdjust     float64

	ArrowPointSize float64
	Padding        float64

	OutlineUsesTemplateTint bool
	FillUsesTemplateTint    bool

	SpinsPerSecond float64
	FrameRate      float64
}

// DefaultStyle возвращает стиль 24x20 pt для Retina (2x).
func DefaultStyle() Style {
	return Style{
		Width:                   24,
		Height:                  20,
		Scale:                   2,
		CornerRadius:            6,
		LineWidth:               1,
		GlyphText:               "fn",
		GlyphPointSize:          13,
		ArrowPointSize:          13,
		Padding:                 3,
		OutlineUsesTemplateTint: true,
		FillUsesTemplateTint:    true,
		SpinsPerSecond:          -1,
		FrameRate:               30,
	}
}

func (s Style) scale() float64 {
	if s.Scale <= 0 {
		return 1
	}
	return s.Scale
}

// PixelSize возвращает размер растра в пикселях.
func (s Style) PixelSize() (int, int) {
	k := s.scale()
	return int(math.Round(s.Width * k)), int(math.Round(s.Height * k))
}

func (s Style) frameRate() float64 {
	return math.Max(s.FrameRate, 1)
}

// FrameInterval - период тика анимации, 1/FrameRate секунд.
func (s Style) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / s.frameRate())
}

// StepPerFrame - угол поворота за тик в градусах.
// Отрицательная скорость вращает по часовой стрелке.
func (s Style) StepPerFrame() float64 {
	return s.SpinsPerSecond * 360 / s.frameRate()
}

// template сообщает, помечать ли иконку состояния как template-изображение.
func (s Style) template(state State) bool {
	if state.filled() {
		return s.FillUsesTemplateTint
	}
	return s.OutlineUsesTemplateTint
}
