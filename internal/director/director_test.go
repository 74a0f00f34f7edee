package director

import (
	"context"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/draw"

	"github.com/ivlev/listvideo/internal/audio"
	"github.com/ivlev/listvideo/internal/timeline"
)

type blankLoader struct{}

func (blankLoader) Load(path string) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func buildTimeline(t *testing.T) *timeline.Timeline {
	t.Helper()
	c := &timeline.Composer{
		Canvas:    timeline.Canvas{Width: 8, Height: 16},
		Loader:    blankLoader{},
		ZoomRange: 0.2,
		Filter:    draw.NearestNeighbor,
	}
	var units []*timeline.ItemUnit
	for _, item := range []struct {
		index     int
		narration float64
		images    []string
	}{
		{1, 4.3, []string{"i1_1.png", "i1_2.png", "i1_3.png"}},
		{3, 2.3, []string{"i3_1.png", "i3_2.png"}},
	} {
		track := audio.Pad(audio.FromAsset(audio.Asset{Path: "a.mp3", Duration: item.narration}), 0.2, 0.5)
		u, err := c.Compose(context.Background(), timeline.ItemAssets{Index: item.index, Title: "t", ImagePaths: item.images, Audio: track})
		if err != nil {
			t.Fatal(err)
		}
		units = append(units, u)
	}
	tl, err := timeline.Concat(units)
	if err != nil {
		t.Fatal(err)
	}
	return tl
}

func TestPlanFromTimeline(t *testing.T) {
	plan := NewDirector(24, 0.2).Plan(buildTimeline(t))

	if plan.Width != 8 || plan.Height != 16 || plan.FPS != 24 {
		t.Errorf("unexpected header %+v", plan)
	}
	if math.Abs(plan.Duration-8.0) > 1e-9 {
		t.Errorf("duration %f, want 8.0", plan.Duration)
	}
	if len(plan.Items) != 2 || plan.Items[0].Index != 1 || plan.Items[1].Index != 3 {
		t.Fatalf("items %+v", plan.Items)
	}
	if math.Abs(plan.Items[1].Start-5.0) > 1e-9 {
		t.Errorf("item 3 starts at %f, want 5.0", plan.Items[1].Start)
	}

	segs := plan.Items[0].Segments
	if len(segs) != 3 || segs[1].Image != "i1_2.png" {
		t.Fatalf("segments %+v", segs)
	}
	if segs[0].ZoomFrom != 1.0 || math.Abs(segs[0].ZoomTo-1.2) > 1e-9 {
		t.Errorf("zoom %f -> %f, want 1.0 -> 1.2", segs[0].ZoomFrom, segs[0].ZoomTo)
	}

	kinds := []string{}
	for _, a := range plan.Items[0].Audio {
		kinds = append(kinds, a.Kind)
	}
	if strings.Join(kinds, ",") != "silence,clip,silence" {
		t.Errorf("audio pieces %v", kinds)
	}

	if err := plan.Check(); err != nil {
		t.Errorf("fresh plan fails Check: %v", err)
	}
}

func TestPlanCheck(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Plan)
		want   string
	}{
		{"gap between items", func(p *Plan) { p.Items[1].Start += 0.5 }, "item 03 starts"},
		{"audio drift", func(p *Plan) { p.Items[0].Audio[1].Duration += 0.1 }, "audio lasts"},
		{"segment overlap", func(p *Plan) { p.Items[0].Segments[1].Start -= 0.1 }, "segment 02"},
		{"zoom out", func(p *Plan) { p.Items[1].Segments[0].ZoomTo = 0.9 }, "zooms out"},
		{"short segments", func(p *Plan) { p.Items[1].Segments = p.Items[1].Segments[:1] }, "segments end"},
		{"total", func(p *Plan) { p.Duration = 9 }, "plan says"},
		{"empty", func(p *Plan) { p.Items = nil }, "no items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := NewDirector(24, 0.2).Plan(buildTimeline(t))
			tt.mutate(plan)
			err := plan.Check()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestPlanWriteRead(t *testing.T) {
	plan := NewDirector(24, 0.2).Plan(buildTimeline(t))
	path := filepath.Join(t.TempDir(), "plans", "plan.yaml")

	if err := WritePlan(plan, path); err != nil {
		t.Fatalf("WritePlan failed: %v", err)
	}
	read, err := ReadPlan(path)
	if err != nil {
		t.Fatalf("ReadPlan failed: %v", err)
	}
	if read.Version != PlanVersion || len(read.Items) != len(plan.Items) {
		t.Errorf("round trip lost data: %+v", read)
	}
	if err := read.Check(); err != nil {
		t.Errorf("plan read back fails Check: %v", err)
	}
}

func TestFindLatestPlan(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "plan_2026-02-12_10-00-00.yaml"),
		filepath.Join(dir, "plan_2026-02-13_01-00-00.yaml"),
		filepath.Join(dir, "plan_2026-02-11_15-30-00.yaml"),
	}
	for i, f := range files {
		if err := os.WriteFile(f, []byte("version: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		modTime := time.Now().Add(time.Duration(i) * time.Hour)
		os.Chtimes(f, modTime, modTime)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	latest, err := FindLatestPlan(dir)
	if err != nil {
		t.Fatalf("FindLatestPlan failed: %v", err)
	}
	if latest != files[len(files)-1] {
		t.Errorf("expected %s, got %s", files[len(files)-1], latest)
	}

	if _, err := FindLatestPlan(t.TempDir()); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestGeneratePlanPath(t *testing.T) {
	path := GeneratePlanPath("plans")
	if !strings.HasPrefix(path, filepath.Join("plans", "plan_")) || filepath.Ext(path) != ".yaml" {
		t.Errorf("unexpected path %s", path)
	}
	t.Logf("Generated path: %s", path)
}
