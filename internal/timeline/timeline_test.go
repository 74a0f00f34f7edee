package timeline

import (
	"context"
	"errors"
	"image"
	"math"
	"reflect"
	"testing"

	"github.com/ivlev/listvideo/internal/audio"
)

func unitWithDuration(index int, total float64) *ItemUnit {
	track := audio.FromAsset(audio.Asset{Path: "n.mp3", Duration: total})
	u, err := NewItemUnit(index, "", NewVisualTrack(Canvas{Width: 2, Height: 2}, total), track)
	if err != nil {
		panic(err)
	}
	return u
}

func TestConcatBoundaries(t *testing.T) {
	tl, err := Concat([]*ItemUnit{
		unitWithDuration(1, 5.0),
		unitWithDuration(2, 3.0),
		unitWithDuration(3, 4.0),
	})
	if err != nil {
		t.Fatal(err)
	}

	if tl.Duration() != 12.0 {
		t.Errorf("total duration %f, want 12.0", tl.Duration())
	}
	if got := tl.Boundaries(); !reflect.DeepEqual(got, []float64{0, 5.0, 8.0}) {
		t.Errorf("boundaries %v, want [0 5 8]", got)
	}
}

func TestConcatPreservesOrder(t *testing.T) {
	tests := [][]int{
		{1, 2, 3},
		{1, 3},
		{3, 1, 2},
		{2},
		{1, 2, 4, 5, 9},
	}
	for _, indices := range tests {
		var units []*ItemUnit
		for _, idx := range indices {
			units = append(units, unitWithDuration(idx, float64(idx)+0.5))
		}
		tl, err := Concat(units)
		if err != nil {
			t.Fatal(err)
		}
		if got := tl.Indices(); !reflect.DeepEqual(got, indices) {
			t.Errorf("order %v, want %v", got, indices)
		}
	}
}

func TestConcatEmpty(t *testing.T) {
	_, err := Concat(nil)
	var empty *EmptyTimelineError
	if !errors.As(err, &empty) {
		t.Errorf("expected EmptyTimelineError, got %v", err)
	}
	if _, err := Concat([]*ItemUnit{unitWithDuration(1, 1), nil}); err == nil {
		t.Error("expected error for nil unit")
	}
}

func TestUnitAt(t *testing.T) {
	tl, _ := Concat([]*ItemUnit{
		unitWithDuration(1, 5.0),
		unitWithDuration(3, 3.0),
		unitWithDuration(4, 4.0),
	})

	tests := []struct {
		t     float64
		index int
		local float64
		ok    bool
	}{
		{0, 1, 0, true},
		{4.999, 1, 4.999, true},
		{5.0, 3, 0, true},
		{7.5, 3, 2.5, true},
		{8.0, 4, 0, true},
		{11.99, 4, 3.99, true},
		{12.0, 0, 0, false},
		{-1, 0, 0, false},
	}
	for _, tt := range tests {
		u, local, ok := tl.UnitAt(tt.t)
		if ok != tt.ok {
			t.Errorf("UnitAt(%f): ok=%v", tt.t, ok)
			continue
		}
		if !ok {
			continue
		}
		if u.Index != tt.index || math.Abs(local-tt.local) > 1e-9 {
			t.Errorf("UnitAt(%f) = item %d @ %f, want item %d @ %f", tt.t, u.Index, local, tt.index, tt.local)
		}
	}
}

func TestDrawFrameAcrossItems(t *testing.T) {
	a1, l1 := itemAssets(1, 0.3, red)   // 1.0s
	a2, l2 := itemAssets(2, 1.3, green) // 2.0s
	loader := memLoader{}
	for k, v := range l1 {
		loader[k] = v
	}
	for k, v := range l2 {
		loader[k] = v
	}
	c := testComposer(loader)
	u1, err := c.Compose(context.Background(), a1)
	if err != nil {
		t.Fatal(err)
	}
	u2, err := c.Compose(context.Background(), a2)
	if err != nil {
		t.Fatal(err)
	}
	tl, _ := Concat([]*ItemUnit{u1, u2})

	frame := image.NewRGBA(c.Canvas.Bounds())
	if !tl.DrawFrame(frame, 0.5) || frame.RGBAAt(30, 50) != red {
		t.Errorf("t=0.5 should show item 1")
	}
	if !tl.DrawFrame(frame, 1.5) || frame.RGBAAt(30, 50) != green {
		t.Errorf("t=1.5 should show item 2")
	}
	if tl.DrawFrame(frame, 3.0) {
		t.Errorf("t=3.0 is past the end")
	}

	tl.Release()
	if u1.Segments[0].Image != nil || u1.Visual.Layers != nil {
		t.Error("Release should drop decoded images")
	}
}
