package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ivlev/listvideo/internal/config"
	"github.com/ivlev/listvideo/internal/engine"
	"github.com/ivlev/listvideo/internal/source"
	"github.com/ivlev/listvideo/internal/system"
	"github.com/ivlev/listvideo/internal/video"
)

var renderFlags struct {
	list     string
	output   string
	fps      int
	workers  int
	quality  int
	codec    string
	segments int
	plan     string
	stats    bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the list into one video",
	Long:  "Compose every item of the list and encode the result with ffmpeg. Items with missing assets are skipped.",
	Args:  cobra.NoArgs,
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderFlags.list, "list", "l", "", "Путь к JSON-списку (по умолчанию: самый свежий файл в list_dir)")
	f.StringVarP(&renderFlags.output, "output", "o", "", "Путь к видео")
	f.IntVar(&renderFlags.fps, "fps", 0, "FPS")
	f.IntVar(&renderFlags.workers, "workers", 0, "Потоки (0 - по ресурсам системы)")
	f.IntVar(&renderFlags.quality, "quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	f.StringVar(&renderFlags.codec, "codec", "", "Видеокодек (по умолчанию: лучший доступный H.264)")
	f.IntVar(&renderFlags.segments, "segments", 0, "Число изображений на пункт (0 - по image_prompts)")
	f.StringVar(&renderFlags.plan, "plan", "", "Сохранить план таймлайна в YAML")
	f.BoolVar(&renderFlags.stats, "stats", false, "Показать отчет о производительности")
}

func applyRenderFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("list") {
		cfg.ListPath = renderFlags.list
	}
	if f.Changed("output") {
		cfg.OutputPath = renderFlags.output
	}
	if f.Changed("fps") {
		cfg.FPS = renderFlags.fps
	}
	if f.Changed("workers") {
		cfg.Workers = renderFlags.workers
	}
	if f.Changed("quality") {
		cfg.Quality = renderFlags.quality
	}
	if f.Changed("codec") {
		cfg.VideoCodec = renderFlags.codec
	}
	if f.Changed("segments") {
		cfg.SegmentCount = renderFlags.segments
	}
	if f.Changed("plan") {
		cfg.PlanOutput = renderFlags.plan
	}
	if f.Changed("stats") {
		cfg.ShowStats = renderFlags.stats
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRenderFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	if cfg.VideoCodec == "" {
		cfg.VideoCodec, _ = system.GetBestH264Encoder()
		if cfg.VideoCodec != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", cfg.VideoCodec)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	encoder := &video.FFmpegEncoder{Progress: func(format string, args ...any) { fmt.Printf(format, args...) }}
	project := engine.NewVideoProject(cfg, source.FileLoader{}, system.FFprobe{}, encoder)
	manifest, err := project.Run(ctx)
	if err != nil {
		return fmt.Errorf("ошибка проекта: %w", err)
	}

	if skipped := manifest.Skipped(); len(skipped) > 0 {
		fmt.Printf("[!] Пропущено пунктов: %d из %d\n", len(skipped), len(manifest.Items))
	}
	fmt.Printf("[+++] Успех! Результат: %s (%.2fs)\n", cfg.OutputPath, manifest.Duration)
	return nil
}
