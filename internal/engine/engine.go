package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/listvideo/internal/audio"
	"github.com/ivlev/listvideo/internal/config"
	"github.com/ivlev/listvideo/internal/director"
	"github.com/ivlev/listvideo/internal/effects"
	"github.com/ivlev/listvideo/internal/items"
	"github.com/ivlev/listvideo/internal/renderer"
	"github.com/ivlev/listvideo/internal/source"
	"github.com/ivlev/listvideo/internal/system"
	"github.com/ivlev/listvideo/internal/timeline"
	"github.com/ivlev/listvideo/internal/video"
)

type VideoProject struct {
	Config  *config.Config
	Loader  source.Loader
	Prober  system.Prober
	Encoder video.VideoEncoder
}

func NewVideoProject(cfg *config.Config, loader source.Loader, prober system.Prober, ve video.VideoEncoder) *VideoProject {
	return &VideoProject{
		Config:  cfg,
		Loader:  loader,
		Prober:  prober,
		Encoder: ve,
	}
}

// Run renders the whole list into Config.OutputPath. Items whose assets are
// unusable are skipped; the run fails only if nothing is left, on
// cancellation, or when encoding fails.
func (p *VideoProject) Run(ctx context.Context) (*Manifest, error) {
	startTime := time.Now()
	manifest := newManifest(p.Config)

	listPath, list, err := p.loadList()
	if err != nil {
		return manifest, err
	}
	manifest.ListPath = listPath

	fmt.Println("--- [PROJECT: LIST VIDEO] ---")
	fmt.Printf("[*] Список: %s | Пунктов: %d\n", listPath, len(list))
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Кодек: %s\n", p.Config.Width, p.Config.Height, p.Config.FPS, p.videoCodec())
	fmt.Println("-----------------------------")

	composeStart := time.Now()
	tl, outcomes, err := p.buildTimeline(ctx, list)
	manifest.Items = outcomes
	composeTime := time.Since(composeStart)
	if err != nil {
		return manifest, err
	}
	manifest.Duration = tl.Duration()
	manifest.Order = tl.Indices()
	fmt.Printf("[*] Пункты в видео: %v\n", manifest.Order)

	if p.Config.PlanOutput != "" {
		plan := director.NewDirector(p.Config.FPS, p.Config.ZoomRange).Plan(tl)
		if err := director.WritePlan(plan, p.Config.PlanOutput); err != nil {
			log.Printf("[!] Не удалось сохранить план: %v", err)
		} else {
			fmt.Printf("[*] План сохранен: %s\n", p.Config.PlanOutput)
		}
	}

	fmt.Printf("[*] Кодирование %.2fs видео (%d кадров)...\n", tl.Duration(), renderer.FrameCount(tl.Duration(), p.Config.FPS))
	encodeStart := time.Now()
	err = p.Encoder.Emit(ctx, tl, p.Config.OutputPath, video.EmitOptions{
		FPS:        p.Config.FPS,
		VideoCodec: p.videoCodec(),
		AudioCodec: p.Config.AudioCodec,
		Quality:    p.Config.Quality,
	})
	encodeTime := time.Since(encodeStart)
	if err != nil {
		return manifest, fmt.Errorf("ошибка сборки финального видео: %w", err)
	}

	manifest.Output = p.Config.OutputPath
	manifest.Stats = newStats(time.Since(startTime), composeTime, encodeTime, tl.Duration(), p.Config.FPS)

	if err := WriteManifest(manifest, ManifestPath(p.Config.OutputPath)); err != nil {
		log.Printf("[!] Не удалось записать манифест: %v", err)
	}
	if p.Config.ShowStats {
		p.report(manifest)
	}
	return manifest, nil
}

// Plan composes every item and describes the resulting timeline without
// encoding it.
func (p *VideoProject) Plan(ctx context.Context) (*director.Plan, []ItemOutcome, error) {
	_, list, err := p.loadList()
	if err != nil {
		return nil, nil, err
	}
	tl, outcomes, err := p.buildTimeline(ctx, list)
	if err != nil {
		return nil, outcomes, err
	}
	defer tl.Release()
	return director.NewDirector(p.Config.FPS, p.Config.ZoomRange).Plan(tl), outcomes, nil
}

func (p *VideoProject) loadList() (string, []items.Item, error) {
	listPath := p.Config.ListPath
	if listPath == "" {
		latest, err := system.FindLatestList(p.Config.ListDir)
		if err != nil {
			return "", nil, fmt.Errorf("список не найден: %w", err)
		}
		listPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", listPath)
	}
	list, err := items.LoadList(listPath)
	if err != nil {
		return listPath, nil, err
	}
	if len(list) == 0 {
		return listPath, nil, fmt.Errorf("список %s пуст", listPath)
	}
	return listPath, list, nil
}

func (p *VideoProject) videoCodec() string {
	if p.Config.VideoCodec != "" {
		return p.Config.VideoCodec
	}
	return "libx264"
}

func (p *VideoProject) workers(n int) int {
	w := p.Config.Workers
	if w <= 0 {
		w = system.RecommendedWorkers()
	}
	return min(w, n)
}

func (p *VideoProject) composer() (*timeline.Composer, error) {
	bg, err := timeline.ParseHexColor(p.Config.Background)
	if err != nil {
		return nil, err
	}
	filter, err := effects.ParseFilter(p.Config.Filter)
	if err != nil {
		return nil, err
	}
	return &timeline.Composer{
		Canvas:    timeline.Canvas{Width: p.Config.Width, Height: p.Config.Height, Background: bg},
		Loader:    p.Loader,
		ZoomRange: p.Config.ZoomRange,
		Filter:    filter,
		FitWidth:  p.Config.FitWidth,
	}, nil
}

// buildTimeline собирает пункты в ограниченном пуле. Каждая горутина пишет
// только в свой слот, таймлайн склеивается в порядке списка после Wait.
func (p *VideoProject) buildTimeline(ctx context.Context, list []items.Item) (*timeline.Timeline, []ItemOutcome, error) {
	composer, err := p.composer()
	if err != nil {
		return nil, nil, err
	}

	units := make([]*timeline.ItemUnit, len(list))
	outcomes := make([]ItemOutcome, len(list))
	var done atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers(len(list)))
	for i, item := range list {
		i, item := i, item
		index := i + 1
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			unit, err := p.composeItem(gctx, composer, index, item)
			if err != nil {
				// Отмена прерывает весь прогон, остальные ошибки пропускают только пункт
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				log.Printf("[!] Item %02d skipped: %v", index, err)
				outcomes[i] = ItemOutcome{Index: index, Title: item.Title, Status: StatusSkipped, Reason: err.Error()}
				return nil
			}
			units[i] = unit
			outcomes[i] = ItemOutcome{Index: index, Title: item.Title, Status: StatusOK, Duration: unit.Duration(), Segments: len(unit.Segments)}
			fmt.Printf("[>] Готово: %d/%d\n", done.Add(1), len(list))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		// Освобождаем уже собранные пункты
		for _, u := range units {
			if u != nil {
				u.Release()
			}
		}
		return nil, outcomes, err
	}

	// Склейка в порядке списка, пропущенные пункты оставляют дыры в нумерации
	ordered := make([]*timeline.ItemUnit, 0, len(units))
	for _, u := range units {
		if u != nil {
			ordered = append(ordered, u)
		}
	}
	tl, err := timeline.Concat(ordered)
	if err != nil {
		var empty *timeline.EmptyTimelineError
		if errors.As(err, &empty) {
			return nil, outcomes, fmt.Errorf("все пункты пропущены: %w", err)
		}
		return nil, outcomes, err
	}
	return tl, outcomes, nil
}

func (p *VideoProject) composeItem(ctx context.Context, composer *timeline.Composer, index int, item items.Item) (*timeline.ItemUnit, error) {
	naming := p.Config.Naming()

	audioPath := naming.AudioPath(index)
	dur, err := p.Prober.Duration(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("narration %s: %w", filepath.Base(audioPath), err)
	}
	track := audio.Pad(audio.FromAsset(audio.Asset{Path: audioPath, Duration: dur}), p.Config.LeadDelay, p.Config.TrailDelay)

	// 0 - по числу image_prompts пункта
	count := p.Config.SegmentCount
	if count == 0 {
		count = len(item.ImagePrompts)
	}

	return composer.Compose(ctx, timeline.ItemAssets{
		Index:      index,
		Title:      item.Title,
		ImagePaths: naming.ImagePaths(index, count),
		Audio:      track,
	})
}
