package renderer

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/draw"
)

type stubProgram struct {
	duration float64
	bounds   image.Rectangle
	times    []float64
}

func (s *stubProgram) Duration() float64 { return s.duration }
func (s *stubProgram) Bounds() image.Rectangle { return s.bounds }
func (s *stubProgram) DrawFrame(dst draw.Image, t float64) bool {
	s.times = append(s.times, t)
	dst.Set(0, 0, color.RGBA{uint8(len(s.times)), 0, 0, 255})
	return t >= 0 && t < s.duration
}

func TestFrameCount(t *testing.T) {
	tests := []struct {
		duration float64
		fps      int
		want     int
	}{
		{4.7, 24, 113},
		{12.0, 24, 288},
		{1.0, 30, 30},
		{0.02, 24, 0},
		{0, 24, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := FrameCount(tt.duration, tt.fps); got != tt.want {
			t.Errorf("FrameCount(%f, %d) = %d, want %d", tt.duration, tt.fps, got, tt.want)
		}
	}
}

func TestFramesVisitsEveryInstant(t *testing.T) {
	p := &stubProgram{duration: 4.7, bounds: image.Rect(0, 0, 4, 4)}
	var seen []int
	err := Frames(context.Background(), p, 24, func(n int, frame *image.RGBA) error {
		if frame.Bounds() != p.bounds {
			t.Fatalf("frame bounds %v, want %v", frame.Bounds(), p.bounds)
		}
		seen = append(seen, n)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(seen) != 113 {
		t.Fatalf("got %d frames, want 113", len(seen))
	}
	for i, at := range p.times {
		if at < 0 || at >= p.duration {
			t.Errorf("frame %d drawn at %f, outside [0, %f)", i, at, p.duration)
		}
		if i > 0 && at < p.times[i-1] {
			t.Errorf("frame %d goes back in time", i)
		}
	}
}

func TestFramesStops(t *testing.T) {
	p := &stubProgram{duration: 2, bounds: image.Rect(0, 0, 2, 2)}
	boom := errors.New("pipe closed")
	err := Frames(context.Background(), p, 10, func(n int, _ *image.RGBA) error {
		if n == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected callback error, got %v", err)
	}
	if len(p.times) != 4 {
		t.Errorf("drew %d frames after failure, want 4", len(p.times))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = Frames(ctx, &stubProgram{duration: 2, bounds: image.Rect(0, 0, 2, 2)}, 10, func(int, *image.RGBA) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestProgress(t *testing.T) {
	var lines []string
	pr := &Progress{Total: 50, FPS: 24, Print: func(format string, args ...any) {
		lines = append(lines, format)
	}}
	for n := 0; n < 50; n++ {
		pr.Frame(n)
	}
	// 24, 48 and the final frame.
	if len(lines) != 3 {
		t.Errorf("printed %d lines, want 3", len(lines))
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "[>]") {
			t.Errorf("unexpected line %q", l)
		}
	}
}
