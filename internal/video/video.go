package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ivlev/listvideo/internal/audio"
	"github.com/ivlev/listvideo/internal/renderer"
	"github.com/ivlev/listvideo/internal/system"
	"github.com/ivlev/listvideo/internal/timeline"
)

// VideoEncoder turns a finished timeline into a single media file.
type VideoEncoder interface {
	Emit(ctx context.Context, tl *timeline.Timeline, outputPath string, opts EmitOptions) error
}

type EmitOptions struct {
	FPS        int
	VideoCodec string
	AudioCodec string
	Quality    int
	SampleRate int
}

func (o EmitOptions) withDefaults() EmitOptions {
	if o.FPS <= 0 {
		o.FPS = 24
	}
	if o.VideoCodec == "" {
		o.VideoCodec = "libx264"
	}
	if o.AudioCodec == "" {
		o.AudioCodec = "aac"
	}
	if o.Quality <= 0 {
		o.Quality = DefaultQuality(o.VideoCodec)
	}
	if o.SampleRate <= 0 {
		o.SampleRate = 44100
	}
	return o
}

// EncodingError wraps any failure of the external encoder. Output holds the
// tail of its diagnostic stream.
type EncodingError struct {
	Op     string
	Output string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("ffmpeg %s: %v\n%s", e.Op, e.Err, e.Output)
	}
	return fmt.Sprintf("ffmpeg %s: %v", e.Op, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

type FFmpegEncoder struct {
	// Путь к ffmpeg; пусто - system.FFmpegPath()
	Binary string
	// Вывод прогресса по кадрам; nil - без вывода
	Progress func(format string, args ...any)
}

func (e *FFmpegEncoder) binary() string {
	if e.Binary != "" {
		return e.Binary
	}
	return system.FFmpegPath()
}

// Emit streams every frame of tl to ffmpeg over stdin together with the
// narration clips, and writes outputPath. The timeline is released when Emit
// returns. ffmpeg writes to a partial file next to outputPath, which replaces
// outputPath only after a clean exit; on failure an existing outputPath is
// left untouched.
func (e *FFmpegEncoder) Emit(ctx context.Context, tl *timeline.Timeline, outputPath string, opts EmitOptions) error {
	if tl == nil {
		return &EncodingError{Op: "prepare", Err: &timeline.EmptyTimelineError{}}
	}
	defer tl.Release()

	opts = opts.withDefaults()
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &EncodingError{Op: "prepare", Err: err}
		}
	}

	partial := PartialPath(outputPath)
	inputs, graph := buildAudioGraph(tl, opts.SampleRate)
	args := buildArgs(tl.Bounds(), tl.Duration(), inputs, graph, partial, opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.binary(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	// Удаляем только временный файл: готовое видео прошлого запуска не трогаем
	fail := func(op string, err error) error {
		os.Remove(partial)
		return &EncodingError{Op: op, Err: err, Output: tail(stderr.String(), 2048)}
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fail("pipe", err)
	}
	if err := cmd.Start(); err != nil {
		return fail("start", err)
	}

	progress := &renderer.Progress{
		Total: renderer.FrameCount(tl.Duration(), opts.FPS),
		FPS:   opts.FPS,
		Print: e.Progress,
	}
	writeErr := renderer.Frames(ctx, tl, opts.FPS, func(n int, frame *image.RGBA) error {
		if err := writeRawRGBA(stdin, frame); err != nil {
			return err
		}
		progress.Frame(n)
		return nil
	})
	stdin.Close()

	if writeErr != nil {
		// Останавливаем ffmpeg и дожидаемся выхода, чтобы не оставить зомби
		cancel()
		cmd.Wait()
		return fail("write", writeErr)
	}
	if err := cmd.Wait(); err != nil {
		return fail("wait", err)
	}
	if err := os.Rename(partial, outputPath); err != nil {
		return fail("rename", err)
	}
	return nil
}

// PartialPath is where Emit encodes before the result is moved into place:
// out.mp4 -> out.partial.mp4. The extension is kept so ffmpeg picks the
// same container.
func PartialPath(outputPath string) string {
	ext := filepath.Ext(outputPath)
	return strings.TrimSuffix(outputPath, ext) + ".partial" + ext
}

// buildAudioGraph lays the padded tracks of every unit end to end. Each clip
// piece gets its own input so the graph has no shared streams.
func buildAudioGraph(tl *timeline.Timeline, sampleRate int) ([]string, string) {
	format := fmt.Sprintf("aformat=sample_fmts=fltp:sample_rates=%d:channel_layouts=stereo", sampleRate)

	var inputs, chains, labels []string
	for _, u := range tl.Units {
		// Входы 1..N: по одному на каждый клип, в порядке воспроизведения
		for _, c := range u.Audio.Clips() {
			inputs = append(inputs, c.Path)
		}
	}

	clip := 0
	for _, u := range tl.Units {
		for _, p := range u.Audio.Pieces {
			label := fmt.Sprintf("[a%d]", len(labels))
			switch p.Kind {
			case audio.Silence:
				chains = append(chains, fmt.Sprintf("anullsrc=r=%d:cl=stereo,atrim=duration=%.6f,%s%s",
					sampleRate, p.Duration, format, label))
			case audio.Clip:
				// Вход 0 - сырой видеопоток
				clip++
				chains = append(chains, fmt.Sprintf("[%d:a]atrim=start=%.6f:duration=%.6f,asetpts=PTS-STARTPTS,aresample=%d,%s,apad=whole_dur=%.6f%s",
					clip, p.Offset, p.Duration, sampleRate, format, p.Duration, label))
			}
			labels = append(labels, label)
		}
	}
	chains = append(chains, fmt.Sprintf("%sconcat=n=%d:v=0:a=1[aout]", strings.Join(labels, ""), len(labels)))
	return inputs, strings.Join(chains, ";")
}

func buildArgs(bounds image.Rectangle, duration float64, inputs []string, graph, outputPath string, opts EmitOptions) []string {
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", bounds.Dx(), bounds.Dy()),
		"-framerate", fmt.Sprintf("%d", opts.FPS),
		"-i", "-",
	}
	for _, in := range inputs {
		args = append(args, "-i", in)
	}
	args = append(args,
		"-filter_complex", graph,
		"-map", "0:v",
		"-map", "[aout]",
		"-c:v", opts.VideoCodec,
		"-pix_fmt", "yuv420p",
	)
	args = append(args, qualityArgs(opts.VideoCodec, opts.Quality)...)
	args = append(args,
		"-r", fmt.Sprintf("%d", opts.FPS),
		"-c:a", opts.AudioCodec,
		"-b:a", "192k",
		"-t", fmt.Sprintf("%f", duration),
		"-movflags", "+faststart",
		outputPath,
	)
	return args
}

// DefaultQuality picks a sensible quality value for the encoder.
func DefaultQuality(codec string) int {
	switch codec {
	case "h264_videotoolbox":
		return 75 // Хорошее качество для VideoToolbox
	case "h264_nvenc":
		return 28 // Эквивалент CRF для NVENC
	default:
		return 23 // Стандартный CRF для x264
	}
}

func qualityArgs(codec string, quality int) []string {
	switch codec {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую. Используем битрейт: 75 -> 7.5Мбит/с
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || img.Rect.Min.X != 0 || img.Rect.Min.Y != 0 {
		packed := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(packed, packed.Bounds(), img, bounds.Min, draw.Src)
		img = packed
	}
	_, err := w.Write(img.Pix)
	return err
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
