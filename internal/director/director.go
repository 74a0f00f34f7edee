package director

import (
	"fmt"
	"math"

	"github.com/ivlev/listvideo/internal/timeline"
)

const PlanVersion = "1.0"

// Director describes a timeline as a Plan.
type Director struct {
	FPS       int
	ZoomRange float64
}

func NewDirector(fps int, zoomRange float64) *Director {
	return &Director{FPS: fps, ZoomRange: zoomRange}
}

// Plan captures the timing of tl. It reads only durations and paths, so it
// may be called before or after the timeline is released.
func (d *Director) Plan(tl *timeline.Timeline) *Plan {
	bounds := tl.Bounds()
	plan := &Plan{
		Version:  PlanVersion,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		FPS:      d.FPS,
		Duration: tl.Duration(),
	}

	starts := tl.Boundaries()
	for i, u := range tl.Units {
		item := ItemPlan{
			Index:    u.Index,
			Title:    u.Title,
			Start:    starts[i],
			Duration: u.Duration(),
		}
		for _, p := range u.Audio.Pieces {
			item.Audio = append(item.Audio, AudioPiece{Kind: p.Kind.String(), Path: p.Path, Duration: p.Duration})
		}
		for _, s := range u.Segments {
			item.Segments = append(item.Segments, SegmentPlan{
				Image:    s.Path,
				Start:    s.Start,
				Duration: s.Duration,
				ZoomFrom: 1.0,
				ZoomTo:   1.0 + d.ZoomRange,
			})
		}
		plan.Items = append(plan.Items, item)
	}
	return plan
}

const planTolerance = 1e-6

// Check verifies that a plan, possibly edited by hand, is still internally
// consistent: items back to back, segments covering each item, audio
// matching the visuals.
func (p *Plan) Check() error {
	if len(p.Items) == 0 {
		return fmt.Errorf("plan has no items")
	}
	offset := 0.0
	for _, it := range p.Items {
		if math.Abs(it.Start-offset) > planTolerance {
			return fmt.Errorf("item %02d starts at %.6fs, expected %.6fs", it.Index, it.Start, offset)
		}
		if it.Duration <= 0 {
			return fmt.Errorf("item %02d has non-positive duration %.6fs", it.Index, it.Duration)
		}

		audioTotal := 0.0
		for _, a := range it.Audio {
			audioTotal += a.Duration
		}
		if math.Abs(audioTotal-it.Duration) > planTolerance {
			return fmt.Errorf("item %02d audio lasts %.6fs, visuals %.6fs", it.Index, audioTotal, it.Duration)
		}

		segEnd := 0.0
		for j, s := range it.Segments {
			if math.Abs(s.Start-segEnd) > planTolerance {
				return fmt.Errorf("item %02d segment %02d starts at %.6fs, expected %.6fs", it.Index, j+1, s.Start, segEnd)
			}
			if s.ZoomTo < s.ZoomFrom {
				return fmt.Errorf("item %02d segment %02d zooms out", it.Index, j+1)
			}
			segEnd = s.Start + s.Duration
		}
		if len(it.Segments) == 0 || math.Abs(segEnd-it.Duration) > planTolerance {
			return fmt.Errorf("item %02d segments end at %.6fs, item ends at %.6fs", it.Index, segEnd, it.Duration)
		}
		offset += it.Duration
	}
	if math.Abs(offset-p.Duration) > planTolerance {
		return fmt.Errorf("items sum to %.6fs, plan says %.6fs", offset, p.Duration)
	}
	return nil
}
