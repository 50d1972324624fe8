package iconkit

import (
	"image"
	"math"

	"golang.org/x/image/vector"
)

// Symbol - источник глифа стрелок.
type Symbol interface {
	// Size возвращает собственные размеры символа для кегля pointSize.
	Size(pointSize float64) (w, h float64)
	// Mask рисует символ в маску w x h, повёрнутую на angle градусов
	// против часовой стрелки. nil - символ недоступен.
	Mask(w, h int, angle float64) *image.Alpha
}

// CircularArrows - две дуговые стрелки по кругу, как значок обновления.
type CircularArrows struct{}

func (CircularArrows) Size(pointSize float64) (float64, float64) {
	return pointSize, pointSize
}

func (CircularArrows) Mask(w, h int, angle float64) *image.Alpha {
	if w <= 0 || h <= 0 {
		return nil
	}
	side := math.Min(float64(w), float64(h))
	cx, cy := float64(w)/2, float64(h)/2
	radius := side * 0.33
	thickness := side * 0.13
	head := thickness * 1.2

	// Полярная точка в математических координатах (Y вверх)
	at := func(r, deg float64) point {
		a := deg * math.Pi / 180
		return point{cx + r*math.Cos(a), cy - r*math.Sin(a)}
	}

	z := vector.NewRasterizer(w, h)
	const arc = 125.0
	const step = 5.0
	for k := 0; k < 2; k++ {
		from := angle + 20 + 180*float64(k)
		to := from + arc

		var pts []point
		for a := from; a < to; a += step {
			pts = append(pts, at(radius+thickness/2, a))
		}
		pts = append(pts,
			at(radius+thickness/2, to),
			at(radius+thickness/2+head, to),
			at(radius, to+30),
			at(radius-thickness/2-head, to),
		)
		for a := to; a > from; a -= step {
			pts = append(pts, at(radius-thickness/2, a))
		}
		pts = append(pts, at(radius-thickness/2, from))
		addPolygon(z, pts, false)
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}
