package system

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindLatestList(t *testing.T) {
	dir := t.TempDir()
	files := []string{"a.json", "b.JSON", "c.json"}
	for i, name := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("[]"), 0644); err != nil {
			t.Fatal(err)
		}
		mod := time.Now().Add(time.Duration(i) * time.Minute)
		os.Chtimes(p, mod, mod)
	}
	// Newer, but not a list.
	later := time.Now().Add(time.Hour)
	os.WriteFile(filepath.Join(dir, "z.txt"), nil, 0644)
	os.Chtimes(filepath.Join(dir, "z.txt"), later, later)

	got, err := FindLatestList(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "c.json") {
		t.Errorf("got %s, want c.json", got)
	}

	if _, err := FindLatestList(t.TempDir()); err == nil {
		t.Error("expected error for a directory without lists")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"4.000000\n", 4.0, false},
		{" 12.345 ", 12.345, false},
		{"N/A\n", 0, true},
		{"0.000000", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDuration(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDuration(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestProbeMissingFile(t *testing.T) {
	_, err := FFprobe{}.Duration(context.Background(), filepath.Join(t.TempDir(), "item_01.mp3"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestBinaryOverrides(t *testing.T) {
	t.Setenv("LISTVIDEO_FFMPEG", "/opt/ff/ffmpeg")
	t.Setenv("LISTVIDEO_FFPROBE", "")
	if FFmpegPath() != "/opt/ff/ffmpeg" {
		t.Errorf("override ignored: %s", FFmpegPath())
	}
	if FFprobePath() != "ffprobe" {
		t.Errorf("empty override should fall back: %s", FFprobePath())
	}
}

func TestPickEncoder(t *testing.T) {
	tests := []struct {
		listing string
		want    string
	}{
		{" V....D libx264  H.264\n V....D h264_nvenc NVIDIA", "h264_nvenc"},
		{" V....D h264_videotoolbox VT\n V....D h264_nvenc", "h264_videotoolbox"},
		{" V....D libx264", "libx264"},
		{"", "libx264"},
	}
	for _, tt := range tests {
		if got := pickEncoder(tt.listing); got != tt.want {
			t.Errorf("pickEncoder(%q) = %s, want %s", tt.listing, got, tt.want)
		}
	}
}

func TestWorkersFor(t *testing.T) {
	tests := []struct {
		cores     int
		available uint64
		want      int
	}{
		{8, 16 << 30, 8},
		{8, 1 << 30, 4},
		{8, 0, 1},
		{2, 64 << 30, 2},
	}
	for _, tt := range tests {
		if got := workersFor(tt.cores, tt.available); got != tt.want {
			t.Errorf("workersFor(%d, %d) = %d, want %d", tt.cores, tt.available, got, tt.want)
		}
	}
	if RecommendedWorkers() < 1 {
		t.Error("RecommendedWorkers must be at least 1")
	}
	t.Logf("Memory: %s", MemoryReport())
}

func TestFormatMemory(t *testing.T) {
	if got := formatMemory(2<<30, 8<<30, 25); got != "2.0/8.0 GiB (25%)" {
		t.Errorf("got %q", got)
	}
}

func TestImagePool(t *testing.T) {
	rect := image.Rect(0, 0, 16, 9)
	img := GetImage(rect)
	if img.Bounds() != rect {
		t.Fatalf("bounds %v, want %v", img.Bounds(), rect)
	}
	PutImage(img)
	PutImage(nil)
	if again := GetImage(rect); again.Bounds() != rect {
		t.Errorf("pooled image has bounds %v", again.Bounds())
	}
}
