package timeline

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Canvas - фон фиксированного размера, на котором собирается каждый пункт.
type Canvas struct {
	Width      int
	Height     int
	Background color.RGBA
}

func (c Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.Width, c.Height)
}

// ParseHexColor accepts "#rrggbb" or "#rgb".
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var r, g, b uint8
	switch len(s) {
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
	case 3:
		if _, err := fmt.Sscanf(s, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
