package director

// Plan is the computed timing of a render, in a form that can be reviewed
// or diffed before encoding.
type Plan struct {
	Version  string     `yaml:"version"`
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	FPS      int        `yaml:"fps"`
	Duration float64    `yaml:"duration"` // Общая длительность в секундах
	Items    []ItemPlan `yaml:"items"`
}

// ItemPlan is one item's slot on the timeline. Start is global.
type ItemPlan struct {
	Index    int           `yaml:"index"`
	Title    string        `yaml:"title,omitempty"`
	Start    float64       `yaml:"start"`
	Duration float64       `yaml:"duration"`
	Audio    []AudioPiece  `yaml:"audio"`
	Segments []SegmentPlan `yaml:"segments"`
}

type AudioPiece struct {
	Kind     string  `yaml:"kind"` // silence или clip
	Path     string  `yaml:"path,omitempty"`
	Duration float64 `yaml:"duration"`
}

// SegmentPlan describes one image slice. Start is relative to the item.
type SegmentPlan struct {
	Image    string  `yaml:"image"`
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"`
	ZoomFrom float64 `yaml:"zoom_from"`
	ZoomTo   float64 `yaml:"zoom_to"`
}
