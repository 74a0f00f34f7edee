package effects

import (
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"
)

// Effect is a time-indexed visual layer. DrawAt must only be called with
// t in [0, Duration()).
type Effect interface {
	Duration() float64
	DrawAt(dst draw.Image, t float64)
}

// ParseFilter maps a config name to a resampling kernel. Nearest-neighbour is
// not offered: it visibly steps a slow zoom.
func ParseFilter(name string) (draw.Interpolator, error) {
	switch strings.ToLower(name) {
	case "", "catmullrom":
		return draw.CatmullRom, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "approxbilinear":
		return draw.ApproxBiLinear, nil
	default:
		return nil, fmt.Errorf("unknown resampling filter: %s", name)
	}
}

// Zoom линейно масштабирует Source от 1.0 до 1.0+Range за Window секунд,
// по центру кадра.
type Zoom struct {
	Source image.Image
	Range  float64
	Window float64
	Filter draw.Interpolator
}

func NewZoom(src image.Image, window, zoomRange float64, filter draw.Interpolator) *Zoom {
	if filter == nil {
		filter = draw.CatmullRom
	}
	return &Zoom{Source: src, Range: zoomRange, Window: window, Filter: filter}
}

func (z *Zoom) Duration() float64 { return z.Window }

// Scale returns the zoom factor at local time t.
func (z *Zoom) Scale(t float64) float64 {
	if t < 0 || t >= z.Window {
		panic(fmt.Sprintf("effects: zoom evaluated at t=%f outside [0, %f)", t, z.Window))
	}
	return lerp(1.0, 1.0+z.Range, t/z.Window)
}

// Size is the scaled pixel size of the source at t.
func (z *Zoom) Size(t float64) image.Point {
	s := z.Scale(t)
	b := z.Source.Bounds()
	return image.Pt(int(math.Round(float64(b.Dx())*s)), int(math.Round(float64(b.Dy())*s)))
}

// Frame returns the resampled source at t as a new image.
func (z *Zoom) Frame(t float64) *image.RGBA {
	size := z.Size(t)
	out := image.NewRGBA(image.Rectangle{Max: size})
	z.Filter.Scale(out, out.Bounds(), z.Source, z.Source.Bounds(), draw.Src, nil)
	return out
}

// DrawAt composites the frame at t centered on dst. Parts outside dst are
// clipped.
func (z *Zoom) DrawAt(dst draw.Image, t float64) {
	size := z.Size(t)
	db := dst.Bounds()
	origin := image.Pt(
		db.Min.X+(db.Dx()-size.X)/2,
		db.Min.Y+(db.Dy()-size.Y)/2,
	)
	dr := image.Rectangle{Min: origin, Max: origin.Add(size)}
	z.Filter.Scale(dst, dr, z.Source, z.Source.Bounds(), draw.Over, nil)
}

// FitWidth масштабирует src до заданной ширины с сохранением пропорций.
func FitWidth(src image.Image, width int, filter draw.Interpolator) *image.RGBA {
	b := src.Bounds()
	if b.Dx() == 0 {
		return image.NewRGBA(image.Rect(0, 0, width, 0))
	}
	height := int(float64(width) * float64(b.Dy()) / float64(b.Dx()))
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	filter.Scale(out, out.Bounds(), src, b, draw.Src, nil)
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
