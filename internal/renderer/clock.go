package renderer

import (
	"context"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/ivlev/listvideo/internal/system"
)

// Program is anything that can be rasterized at an absolute time.
type Program interface {
	Duration() float64
	Bounds() image.Rectangle
	DrawFrame(dst draw.Image, t float64) bool
}

// FrameCount returns the number of frames needed to cover duration at fps.
func FrameCount(duration float64, fps int) int {
	if duration <= 0 || fps <= 0 {
		return 0
	}
	return int(math.Round(duration * float64(fps)))
}

// FrameTime is the presentation time of frame n.
func FrameTime(n, fps int) float64 {
	return float64(n) / float64(fps)
}

// Frames draws every frame of p into a pooled buffer and hands it to fn. The
// buffer is reused between calls, so fn must not retain it.
func Frames(ctx context.Context, p Program, fps int, fn func(n int, frame *image.RGBA) error) error {
	total := FrameCount(p.Duration(), fps)
	frame := system.GetImage(p.Bounds())
	defer system.PutImage(frame)

	last := math.Nextafter(p.Duration(), 0)
	for n := 0; n < total; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Округление числа кадров может поставить последний кадр ровно на
		// конец таймлайна: повторяем последний отрисовываемый момент
		t := FrameTime(n, fps)
		if t > last {
			t = last
		}
		p.DrawFrame(frame, t)
		if err := fn(n, frame); err != nil {
			return err
		}
	}
	return nil
}

// Progress prints a "[>]" line roughly once per second of output.
type Progress struct {
	Total int
	FPS   int
	Print func(format string, args ...any)
}

func (pr *Progress) Frame(n int) {
	if pr == nil || pr.Print == nil || pr.FPS <= 0 {
		return
	}
	done := n + 1
	if done%pr.FPS == 0 || done == pr.Total {
		pr.Print("[>] Кадры: %d/%d (%.0f%%)\n", done, pr.Total, 100*float64(done)/float64(max(pr.Total, 1)))
	}
}
