package timeline

import (
	"image"
	"math"
)

// Segment is one time slice of an item showing one image. Start is relative
// to the item.
type Segment struct {
	Index    int
	Path     string
	Image    image.Image
	Start    float64
	Duration float64
}

func (s Segment) End() float64 { return s.Start + s.Duration }

// Sequence splits total into count equal, contiguous segments starting at 0.
// The last segment ends exactly at total.
func Sequence(total float64, count int) ([]Segment, error) {
	if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, &InvalidDurationError{Duration: total}
	}
	if count < 1 {
		return nil, &InvalidSegmentCountError{Count: count}
	}

	d := total / float64(count)
	segments := make([]Segment, count)
	for i := range segments {
		start := float64(i) * d
		dur := d
		if i == count-1 {
			dur = total - start
		}
		segments[i] = Segment{Index: i, Start: start, Duration: dur}
	}
	return segments, nil
}
