package timeline

import (
	"fmt"
	"image"
	"sort"

	"golang.org/x/image/draw"
)

// Timeline is the ordered, gapless concatenation of item units. It is owned
// by a single run and is not safe for concurrent mutation.
type Timeline struct {
	Units  []*ItemUnit
	starts []float64
	total  float64
}

// Concat joins units back to back in the given order. Item indices are kept
// as they are, so skipped items leave holes in the numbering.
func Concat(units []*ItemUnit) (*Timeline, error) {
	if len(units) == 0 {
		return nil, &EmptyTimelineError{}
	}

	tl := &Timeline{
		Units:  make([]*ItemUnit, len(units)),
		starts: make([]float64, len(units)),
	}
	offset := 0.0
	for i, u := range units {
		if u == nil {
			return nil, fmt.Errorf("timeline: unit at position %d is nil", i)
		}
		tl.Units[i] = u
		tl.starts[i] = offset
		offset += u.Duration()
	}
	tl.total = offset
	return tl, nil
}

func (tl *Timeline) Duration() float64 { return tl.total }

// Bounds is the frame rectangle shared by every unit.
func (tl *Timeline) Bounds() image.Rectangle {
	if len(tl.Units) == 0 || tl.Units[0].Visual == nil {
		return image.Rectangle{}
	}
	return tl.Units[0].Visual.Canvas.Bounds()
}

// Boundaries returns the start offset of each unit.
func (tl *Timeline) Boundaries() []float64 {
	out := make([]float64, len(tl.starts))
	copy(out, tl.starts)
	return out
}

// Indices returns the item index of each unit in timeline order.
func (tl *Timeline) Indices() []int {
	out := make([]int, len(tl.Units))
	for i, u := range tl.Units {
		out[i] = u.Index
	}
	return out
}

// UnitAt finds the unit playing at global time t and the time local to it.
func (tl *Timeline) UnitAt(t float64) (*ItemUnit, float64, bool) {
	if t < 0 || t >= tl.total || len(tl.Units) == 0 {
		return nil, 0, false
	}
	i := sort.Search(len(tl.starts), func(i int) bool { return tl.starts[i] > t }) - 1
	if i < 0 {
		i = 0
	}
	return tl.Units[i], t - tl.starts[i], true
}

// DrawFrame rasterizes the program at global time t. It reports false when t
// is outside the timeline.
func (tl *Timeline) DrawFrame(dst draw.Image, t float64) bool {
	u, local, ok := tl.UnitAt(t)
	if !ok {
		return false
	}
	u.Visual.DrawFrame(dst, local)
	return true
}

// Release drops decoded images held by the units.
func (tl *Timeline) Release() {
	for _, u := range tl.Units {
		u.Release()
	}
}
