package titler

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func newFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse title font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("title font face: %w", err)
	}
	return face, nil
}

func lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// wrap breaks s into lines no wider than maxWidth. A single word wider
// than maxWidth gets a line of its own.
func wrap(face font.Face, s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}

// drawLines draws black text with the first line's middle at (cx, cy).
func drawLines(dst draw.Image, face font.Face, lines []string, cx, cy int) {
	m := face.Metrics()
	// Смещение от середины строки до базовой линии
	mid := (m.Ascent - m.Descent) / 2
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	for i, line := range lines {
		width := d.MeasureString(line)
		d.Dot = fixed.Point26_6{
			X: fixed.I(cx) - width/2,
			Y: fixed.I(cy+i*lineHeight(face)) + mid,
		}
		d.DrawString(line)
	}
}
