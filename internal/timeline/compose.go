package timeline

import (
	"context"

	"golang.org/x/image/draw"

	"github.com/ivlev/listvideo/internal/audio"
	"github.com/ivlev/listvideo/internal/effects"
	"github.com/ivlev/listvideo/internal/source"
)

// ItemAssets is everything the composer needs for one item. Index is the
// 1-based list position; Audio is the already padded narration.
type ItemAssets struct {
	Index      int
	Title      string
	ImagePaths []string
	Audio      audio.Track
}

// Composer собирает ItemUnit из ресурсов пункта. Не пропускает и не повторяет.
type Composer struct {
	Canvas    Canvas
	Loader    source.Loader
	ZoomRange float64
	Filter    draw.Interpolator
	FitWidth  bool
}

func (c *Composer) Compose(ctx context.Context, a ItemAssets) (*ItemUnit, error) {
	total := a.Audio.Duration()
	segments, err := Sequence(total, len(a.ImagePaths))
	if err != nil {
		switch e := err.(type) {
		case *InvalidDurationError:
			e.Item = a.Index
		case *InvalidSegmentCountError:
			e.Item = a.Index
		}
		return nil, err
	}

	filter := c.Filter
	if filter == nil {
		filter = draw.CatmullRom
	}

	visual := NewVisualTrack(c.Canvas, total)
	for i := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := a.ImagePaths[i]
		img, err := c.Loader.Load(path)
		if err != nil {
			return nil, &AssetMissingError{Item: a.Index, Segment: i + 1, Path: path, Err: err}
		}
		if c.FitWidth && c.Canvas.Width > 0 && img.Bounds().Dx() != c.Canvas.Width {
			img = effects.FitWidth(img, c.Canvas.Width, filter)
		}

		seg := &segments[i]
		seg.Path = path
		seg.Image = img
		end := total
		if i+1 < len(segments) {
			end = segments[i+1].Start
		}
		visual.Add(Layer{
			Start:  seg.Start,
			End:    end,
			Effect: effects.NewZoom(img, seg.Duration, c.ZoomRange, filter),
		})
	}

	unit, err := NewItemUnit(a.Index, a.Title, visual, a.Audio)
	if err != nil {
		return nil, err
	}
	unit.Segments = segments
	return unit, nil
}
