package titler

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/ivlev/listvideo/internal/source"
)

// GridPadding is the gap between cells of a contact sheet.
const GridPadding = 20

// Grid lays the images out on white in ceil(sqrt(n)) columns. Every cell has
// the size of the first image; other sizes are drawn from their top-left.
func Grid(loader source.Loader, paths []string, padding int) (*image.RGBA, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("grid: no images")
	}
	first, err := loader.Load(paths[0])
	if err != nil {
		return nil, err
	}
	cell := first.Bounds().Size()

	cols := int(math.Ceil(math.Sqrt(float64(len(paths)))))
	rows := (len(paths) + cols - 1) / cols
	width := cell.X*cols + padding*(cols-1)
	height := cell.Y*rows + padding*(rows-1)

	sheet := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, p := range paths {
		img := first
		if i > 0 {
			if img, err = loader.Load(p); err != nil {
				return nil, err
			}
		}
		at := image.Pt((i%cols)*(cell.X+padding), (i/cols)*(cell.Y+padding))
		b := img.Bounds()
		r := image.Rectangle{Min: at, Max: at.Add(b.Size())}.Intersect(image.Rectangle{Min: at, Max: at.Add(cell)})
		draw.Draw(sheet, r, img, b.Min, draw.Src)
	}
	return sheet, nil
}
