package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ivlev/listvideo/internal/config"
	"github.com/ivlev/listvideo/internal/renderer"
	"github.com/ivlev/listvideo/internal/system"
)

const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
)

type ItemOutcome struct {
	Index    int     `json:"index"`
	Title    string  `json:"title"`
	Status   string  `json:"status"`
	Reason   string  `json:"reason,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Segments int     `json:"segments,omitempty"`
}

type Stats struct {
	TotalSeconds   float64 `json:"total_seconds"`
	ComposeSeconds float64 `json:"compose_seconds"`
	EncodeSeconds  float64 `json:"encode_seconds"`
	Frames         int     `json:"frames"`
	EffectiveFPS   float64 `json:"effective_fps"`
	Memory         string  `json:"memory"`
}

// Manifest records what a render produced, for later auditing.
type Manifest struct {
	RunID    string        `json:"run_id"`
	Build    string        `json:"build,omitempty"`
	Started  time.Time     `json:"started"`
	ListPath string        `json:"list_path"`
	Output   string        `json:"output"`
	Duration float64       `json:"duration"`
	Order    []int         `json:"order"` // Индексы пунктов в порядке показа
	Items    []ItemOutcome `json:"items"`
	Stats    Stats         `json:"stats"`
}

func newManifest(cfg *config.Config) *Manifest {
	return &Manifest{
		RunID:   uuid.NewString(),
		Build:   cfg.BuildVersion,
		Started: time.Now(),
	}
}

func newStats(total, compose, encode time.Duration, duration float64, fps int) Stats {
	frames := renderer.FrameCount(duration, fps)
	s := Stats{
		TotalSeconds:   total.Seconds(),
		ComposeSeconds: compose.Seconds(),
		EncodeSeconds:  encode.Seconds(),
		Frames:         frames,
		Memory:         system.MemoryReport(),
	}
	if encode > 0 {
		s.EffectiveFPS = float64(frames) / encode.Seconds()
	}
	return s
}

// Skipped returns the items that did not make it into the video.
func (m *Manifest) Skipped() []ItemOutcome {
	var out []ItemOutcome
	for _, it := range m.Items {
		if it.Status == StatusSkipped {
			out = append(out, it)
		}
	}
	return out
}

// ManifestPath places the manifest next to the video: out.mp4 -> out.manifest.json.
func ManifestPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".manifest.json"
}

func WriteManifest(m *Manifest, path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (p *VideoProject) report(m *Manifest) {
	s := m.Stats
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Run: %s\n"+
			"Total Time: %.2fs\n"+
			"Composition (CPU): %.2fs\n"+
			"Encoding: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"Memory: %s\n"+
			"----------------------------\n",
		m.Build, m.RunID, s.TotalSeconds, s.ComposeSeconds, s.EncodeSeconds, s.EffectiveFPS, s.Memory,
	)
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | List: %s | Items: %d/%d | Video: %.2fs | Total: %.2fs | Compose: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		m.Build,
		filepath.Base(m.ListPath),
		len(m.Items)-len(m.Skipped()),
		len(m.Items),
		m.Duration,
		s.TotalSeconds,
		s.ComposeSeconds,
		s.EncodeSeconds,
		s.EffectiveFPS,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}
