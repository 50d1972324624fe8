package iconkit

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// Rect - прямоугольник в пикселях, ось Y направлена вниз.
type Rect struct {
	X, Y, W, H float64
}

// Inset сжимает прямоугольник на d с каждой стороны.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

func (r Rect) MidX() float64 { return r.X + r.W/2 }
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

// Image округляет прямоугольник до целых пикселей.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)),
	)
}

// FitRect вписывает изображение w x h в bounds с сохранением пропорций
// и центрирует его.
func FitRect(w, h float64, bounds Rect) Rect {
	iw := math.Max(w, 0.001)
	ih := math.Max(h, 0.001)
	imageAspect := iw / ih
	boundsAspect := bounds.W / math.Max(bounds.H, 0.001)

	fw, fh := bounds.W, bounds.H
	if imageAspect > boundsAspect {
		fh = fw / imageAspect
	} else {
		fw = fh * imageAspect
	}
	return Rect{X: bounds.MidX() - fw/2, Y: bounds.MidY() - fh/2, W: fw, H: fh}
}

type point struct{ x, y float64 }

// roundedRectPoints возвращает контур скруглённого прямоугольника
// по часовой стрелке (в экранных координатах).
func roundedRectPoints(r Rect, radius float64) []point {
	radius = math.Max(0, math.Min(radius, math.Min(r.W, r.H)/2))
	const steps = 8

	corners := []struct {
		cx, cy float64
		from   float64
	}{
		{r.X + r.W - radius, r.Y + radius, -90},       // правый верхний
		{r.X + r.W - radius, r.Y + r.H - radius, 0},   // правый нижний
		{r.X + radius, r.Y + r.H - radius, 90},        // левый нижний
		{r.X + radius, r.Y + radius, 180},             // левый верхний
	}

	pts := make([]point, 0, len(corners)*(steps+1))
	for _, c := range corners {
		for i := 0; i <= steps; i++ {
			a := (c.from + 90*float64(i)/steps) * math.Pi / 180
			pts = append(pts, point{c.cx + radius*math.Cos(a), c.cy + radius*math.Sin(a)})
		}
	}
	return pts
}

// addPolygon добавляет замкнутый контур в растеризатор.
// Обратный обход вычитает площадь при заливке с учётом направления.
func addPolygon(z *vector.Rasterizer, pts []point, reverse bool) {
	if len(pts) == 0 {
		return
	}
	at := func(i int) point {
		if reverse {
			return pts[len(pts)-1-i]
		}
		return pts[i]
	}
	first := at(0)
	z.MoveTo(float32(first.x), float32(first.y))
	for i := 1; i < len(pts); i++ {
		p := at(i)
		z.LineTo(float32(p.x), float32(p.y))
	}
	z.ClosePath()
}

// pillMask рисует маску «таблетки»: залитой или контурной толщиной lineWidth.
func pillMask(w, h int, bounds Rect, radius, lineWidth float64, filled bool) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z := vector.NewRasterizer(w, h)

	if filled {
		addPolygon(z, roundedRectPoints(bounds, radius), false)
	} else {
		// Обводка центрирована по контуру, утопленному на половину толщины
		path := bounds.Inset(lineWidth / 2)
		outer := path.Inset(-lineWidth / 2)
		inner := path.Inset(lineWidth / 2)
		addPolygon(z, roundedRectPoints(outer, radius+lineWidth/2), false)
		addPolygon(z, roundedRectPoints(inner, math.Max(radius-lineWidth/2, 0)), true)
	}

	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// wrapAngle приводит угол к диапазону [0, 360).
func wrapAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
