// Package preview показывает окно со всеми состояниями иконки, стрелки крутятся вживую.
package preview

import (
	"image"
	"image/color"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"fnflip/internal/iconkit"
)

var (
	colorBG   = color.NRGBA{R: 236, G: 236, B: 240, A: 255}
	colorCell = color.NRGBA{R: 250, G: 250, B: 252, A: 255}
	colorText = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
	colorDim  = color.NRGBA{R: 110, G: 110, B: 120, A: 255}
)

// Frame - кадр одного состояния.
type Frame struct {
	State iconkit.State
	Image *image.NRGBA
}

// Frames рисует все состояния. Угол стрелок зависит от elapsed
// так же, как в аниматоре: spins*360 градусов в секунду.
func Frames(r *iconkit.Renderer, elapsed time.Duration) []Frame {
	angle := elapsed.Seconds() * r.Style().SpinsPerSecond * 360
	frames := make([]Frame, 0, len(iconkit.AllStates))
	for _, s := range iconkit.AllStates {
		frames = append(frames, Frame{State: s, Image: r.Render(s, angle)})
	}
	return frames
}

// Window - окно предпросмотра иконок.
type Window struct {
	renderer *iconkit.Renderer
	theme    *material.Theme

	mu      sync.Mutex
	running bool
	started time.Time
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New создаёт окно предпросмотра.
func New(renderer *iconkit.Renderer) *Window {
	th := material.NewTheme()
	th.Palette.Fg = colorText
	return &Window{renderer: renderer, theme: th}
}

// Show открывает окно.
func (w *Window) Show() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.started = time.Now()
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.runEventLoop()
}

// Hide закрывает окно.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.stopCh = nil
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}

	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// Wait ждёт, пока окно закроют.
func (w *Window) Wait() {
	w.mu.Lock()
	doneCh := w.doneCh
	w.mu.Unlock()
	if doneCh != nil {
		<-doneCh
	}
}

func (w *Window) runEventLoop() {
	w.mu.Lock()
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()
	defer close(doneCh)

	win := new(app.Window)
	win.Option(
		app.Title("FnFlip Icon Preview"),
		app.Size(unit.Dp(520), unit.Dp(180)),
		app.MinSize(unit.Dp(520), unit.Dp(180)),
	)
	// Перерисовка с частотой анимации
	interval := w.renderer.Style().FrameInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				win.Perform(system.ActionClose)
				return
			case <-ticker.C:
				win.Invalidate()
			}
		}
	}()

	var ops op.Ops
	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) draw(gtx layout.Context) layout.Dimensions {
	// Фон
	paint.FillShape(gtx.Ops, colorBG, clip.Rect{Max: gtx.Constraints.Max}.Op())

	frames := Frames(w.renderer, time.Since(w.started))
	children := make([]layout.FlexChild, 0, len(frames))
	for _, f := range frames {
		f := f
		children = append(children, layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return w.drawCell(gtx, f)
			})
		}))
	}

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx, children...)
	})
}

func (w *Window) drawCell(gtx layout.Context, f Frame) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
		// Иконка в увеличенном виде
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			size := image.Pt(gtx.Dp(unit.Dp(96)), gtx.Dp(unit.Dp(80)))
			gtx.Constraints = layout.Exact(size)
			rr := gtx.Dp(unit.Dp(8))
			paint.FillShape(gtx.Ops, colorCell, clip.UniformRRect(image.Rectangle{Max: size}, rr).Op(gtx.Ops))
			img := widget.Image{Src: paint.NewImageOp(f.Image), Fit: widget.Contain}
			return img.Layout(gtx)
		}),

		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),

		// Название состояния
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			lbl := material.Label(w.theme, unit.Sp(12), f.State.String())
			lbl.Font.Weight = font.Medium
			lbl.Color = colorDim
			return lbl.Layout(gtx)
		}),
	)
}
