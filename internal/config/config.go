package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/listvideo/internal/items"
)

type Config struct {
	ListPath       string `yaml:"list_path"`
	ListDir        string `yaml:"list_dir"`
	AudioDir       string `yaml:"audio_dir" validate:"required"`
	ImageDir       string `yaml:"image_dir" validate:"required"`
	SourceImageDir string `yaml:"source_image_dir"`
	OutputPath     string `yaml:"output_path" validate:"required"`
	AudioExt       string `yaml:"audio_ext" validate:"required,alphanum"`
	ImageExt       string `yaml:"image_ext" validate:"required,alphanum"`

	Width        int     `yaml:"width" validate:"gt=0,even"`
	Height       int     `yaml:"height" validate:"gt=0,even"`
	FPS          int     `yaml:"fps" validate:"gt=0,lte=120"`
	SegmentCount int     `yaml:"segment_count" validate:"gte=0"`
	LeadDelay    float64 `yaml:"lead_delay" validate:"gte=0"`
	TrailDelay   float64 `yaml:"trail_delay" validate:"gte=0"`
	ZoomRange    float64 `yaml:"zoom_range" validate:"gte=0,lte=2"`
	Background   string  `yaml:"background" validate:"hexcolor"`
	FitWidth     bool    `yaml:"fit_width"`
	// Ядро масштабирования для зума; nearest не допускается - дает видимую "лесенку"
	Filter       string  `yaml:"filter" validate:"oneof=catmullrom bilinear approxbilinear"`

	VideoCodec string `yaml:"video_codec"`
	AudioCodec string `yaml:"audio_codec" validate:"required"`
	Quality    int    `yaml:"quality" validate:"gte=0"`
	Workers    int    `yaml:"workers" validate:"gte=0"`

	PlanOutput   string `yaml:"plan_output"`
	ShowStats    bool   `yaml:"show_stats"`
	BuildVersion string `yaml:"-"`

	// Titling and archive options.
	TitleFontSize float64 `yaml:"title_font_size" validate:"gt=0"`
	TitleGap      int     `yaml:"title_gap" validate:"gte=0"`
	QRURL         string  `yaml:"qr_url" validate:"omitempty,url"`
	ArchiveRoot   string  `yaml:"archive_root"`
	GridPath      string  `yaml:"grid_path"`
}

// Default returns the settings of the original vertical-shorts layout.
func Default() *Config {
	return &Config{
		ListDir:        "outputs/json_output",
		AudioDir:       "outputs/audio_output",
		ImageDir:       "outputs/titled_image_output",
		SourceImageDir: "outputs/image_output",
		OutputPath:     "outputs/video_output/final_video_short.mp4",
		AudioExt:       "mp3",
		ImageExt:       "png",
		Width:          1080,
		Height:         1920,
		FPS:            24,
		LeadDelay:      0.2,
		TrailDelay:     0.5,
		ZoomRange:      0.2,
		Background:     "#ffffff",
		FitWidth:       true,
		Filter:         "catmullrom",
		AudioCodec:     "aac",
		TitleFontSize:  80,
		TitleGap:       80,
		ArchiveRoot:    "generated_data",
		GridPath:       "outputs/grid_output/grid_image.png",
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error
// when optional is set.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

var validate = newValidator()

// yuv420p needs even frame dimensions.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("even", func(fl validator.FieldLevel) bool {
		return fl.Field().Int()%2 == 0
	})
	return v
}

// Naming returns the asset naming scheme for the configured directories.
func (c *Config) Naming() items.Naming {
	return items.Naming{
		AudioDir:       c.AudioDir,
		ImageDir:       c.ImageDir,
		SourceImageDir: c.SourceImageDir,
		AudioExt:       c.AudioExt,
		ImageExt:       c.ImageExt,
	}
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var msgs []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
