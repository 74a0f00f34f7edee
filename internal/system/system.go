package system

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// FFmpegPath returns the ffmpeg binary, honouring LISTVIDEO_FFMPEG.
func FFmpegPath() string {
	if p := os.Getenv("LISTVIDEO_FFMPEG"); p != "" {
		return p
	}
	return "ffmpeg"
}

// FFprobePath returns the ffprobe binary, honouring LISTVIDEO_FFPROBE.
func FFprobePath() string {
	if p := os.Getenv("LISTVIDEO_FFPROBE"); p != "" {
		return p
	}
	return "ffprobe"
}

// FindLatestList returns the newest *.json file in dir.
func FindLatestList(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if !f.IsDir() && strings.HasSuffix(strings.ToLower(f.Name()), ".json") {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено JSON-списков", dir)
	}

	return latestFile, nil
}

// Prober reports the playback length of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// FFprobe is a Prober backed by the ffprobe binary.
type FFprobe struct {
	Binary string
}

func (p FFprobe) Duration(ctx context.Context, path string) (float64, error) {
	bin := p.Binary
	if bin == "" {
		bin = FFprobePath()
	}
	return GetAudioDuration(ctx, bin, path)
}

func GetAudioDuration(ctx context.Context, bin, path string) (float64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, err
	}
	cmd := exec.CommandContext(ctx, bin, "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w: %s", path, err, strings.TrimSpace(string(out)))
	}
	return parseDuration(string(out))
}

func parseDuration(out string) (float64, error) {
	s := strings.TrimSpace(out)
	duration, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("не удалось разобрать длительность %q: %w", s, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("нулевая длительность аудио: %q", s)
	}
	return duration, nil
}

func GetBestH264Encoder() (string, string) {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)
	out, err := exec.Command(FFmpegPath(), "-hide_banner", "-encoders").CombinedOutput()
	if err != nil {
		return "libx264", ""
	}
	return pickEncoder(string(out)), ""
}

func pickEncoder(listing string) string {
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if strings.Contains(listing, name) {
			return name
		}
	}
	return "libx264"
}
