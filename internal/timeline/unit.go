package timeline

import (
	"fmt"

	"github.com/ivlev/listvideo/internal/audio"
)

// ItemUnit is the synchronized audio and visual result for one item.
type ItemUnit struct {
	Index    int
	Title    string
	Segments []Segment
	Visual   *VisualTrack
	Audio    audio.Track
}

// NewItemUnit pairs a visual and an audio track of identical length.
func NewItemUnit(index int, title string, visual *VisualTrack, track audio.Track) (*ItemUnit, error) {
	if visual.Duration() != track.Duration() {
		return nil, fmt.Errorf("item %02d: visual track %.6fs does not match audio track %.6fs",
			index, visual.Duration(), track.Duration())
	}
	return &ItemUnit{Index: index, Title: title, Visual: visual, Audio: track}, nil
}

func (u *ItemUnit) Duration() float64 { return u.Audio.Duration() }

// Release drops the decoded images of the unit.
func (u *ItemUnit) Release() {
	for i := range u.Segments {
		u.Segments[i].Image = nil
	}
	if u.Visual != nil {
		u.Visual.Layers = nil
	}
}
