package timeline

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/ivlev/listvideo/internal/effects"
)

// Layer - эффект, видимый только в интервале [Start, End) своей дорожки.
type Layer struct {
	Start  float64
	End    float64
	Effect effects.Effect
}

func (l Layer) Visible(t float64) bool {
	return t >= l.Start && t < l.End
}

// VisualTrack is a background plus time-windowed layers, stacked in order.
type VisualTrack struct {
	Canvas   Canvas
	Layers   []Layer
	duration float64
}

func NewVisualTrack(canvas Canvas, duration float64) *VisualTrack {
	return &VisualTrack{Canvas: canvas, duration: duration}
}

func (v *VisualTrack) Duration() float64 { return v.duration }

func (v *VisualTrack) Add(l Layer) {
	v.Layers = append(v.Layers, l)
}

// DrawFrame рисует дорожку в момент t (локальное время) в dst с размерами
// холста.
func (v *VisualTrack) DrawFrame(dst draw.Image, t float64) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(v.Canvas.Background), image.Point{}, draw.Src)
	if t >= v.duration {
		t = math.Nextafter(v.duration, 0)
	}
	for _, l := range v.Layers {
		if !l.Visible(t) {
			continue
		}
		local := t - l.Start
		if d := l.Effect.Duration(); local >= d {
			local = math.Nextafter(d, 0)
		}
		l.Effect.DrawAt(dst, local)
	}
}
