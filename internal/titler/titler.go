// Package titler lays out the captioned stills the video is cut from: a
// blurred, veiled copy of the source as backdrop, the source fitted to the
// frame width, and the item title below it.
package titler

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/ivlev/listvideo/internal/effects"
)

// blurFactor is how far the backdrop is shrunk before being scaled back up.
// At 1080 wide this is roughly a 90px blur radius.
const blurFactor = 32

var veil = color.NRGBA{255, 255, 255, 128}

type Options struct {
	Width    int
	Height   int
	Gap      int
	FontSize float64
	QRURL    string
	Filter   draw.Interpolator
}

// Titler renders titled images. It holds a font face and is not safe for
// concurrent use.
type Titler struct {
	opts Options
	face font.Face
	qr   image.Image
}

func New(opts Options) (*Titler, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("titler: invalid canvas %dx%d", opts.Width, opts.Height)
	}
	if opts.Filter == nil {
		opts.Filter = draw.CatmullRom
	}
	face, err := newFace(opts.FontSize)
	if err != nil {
		return nil, err
	}
	t := &Titler{opts: opts, face: face}
	if opts.QRURL != "" {
		if t.qr, err = qrBadge(opts.QRURL, opts.Width/6); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Titler) Close() error {
	return t.face.Close()
}

// Render composes src and title onto a Width x Height canvas.
func (t *Titler) Render(src image.Image, title string) *image.RGBA {
	w, h := t.opts.Width, t.opts.Height
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	t.backdrop(canvas, src)

	lines := wrap(t.face, title, w-2*t.opts.Gap)
	textHeight := len(lines) * lineHeight(t.face)

	fg := t.fit(src, h-2*t.opts.Gap-textHeight)
	fb := fg.Bounds()
	x := (w - fb.Dx()) / 2
	y := (h - fb.Dy() - t.opts.Gap) / 2
	if y < 0 {
		y = 0
	}
	draw.Draw(canvas, fb.Add(image.Pt(x, y)), fg, fb.Min, draw.Src)

	// Первая строка центрируется на Gap пикселей ниже изображения
	drawLines(canvas, t.face, lines, w/2, y+fb.Dy()+t.opts.Gap)

	if t.qr != nil {
		qb := t.qr.Bounds()
		margin := t.opts.Gap / 2
		at := image.Pt(w-qb.Dx()-margin, h-qb.Dy()-margin)
		draw.Draw(canvas, qb.Add(at), t.qr, qb.Min, draw.Src)
	}
	return canvas
}

func (t *Titler) backdrop(dst *image.RGBA, src image.Image) {
	b := dst.Bounds()
	small := image.NewRGBA(image.Rect(0, 0, max(b.Dx()/blurFactor, 1), max(b.Dy()/blurFactor, 1)))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), src, src.Bounds(), draw.Src, nil)
	draw.BiLinear.Scale(dst, b, small, small.Bounds(), draw.Src, nil)
	draw.Draw(dst, b, image.NewUniform(veil), image.Point{}, draw.Over)
}

// fit scales src to the canvas width, shrinking further if it would be
// taller than maxHeight.
func (t *Titler) fit(src image.Image, maxHeight int) *image.RGBA {
	fg := effects.FitWidth(src, t.opts.Width, t.opts.Filter)
	if maxHeight <= 0 || fg.Bounds().Dy() <= maxHeight {
		return fg
	}
	sb := src.Bounds()
	width := int(float64(maxHeight) * float64(sb.Dx()) / float64(sb.Dy()))
	out := image.NewRGBA(image.Rect(0, 0, width, maxHeight))
	t.opts.Filter.Scale(out, out.Bounds(), src, sb, draw.Src, nil)
	return out
}
