package audio

// Asset is a narration clip on disk. Duration is in seconds.
type Asset struct {
	Path     string
	Duration float64
}

type PieceKind int

const (
	Silence PieceKind = iota
	Clip
)

func (k PieceKind) String() string {
	if k == Clip {
		return "clip"
	}
	return "silence"
}

// Piece is one contiguous run of a track: either silence or a window of a
// source clip starting at Offset within that clip.
type Piece struct {
	Kind     PieceKind
	Path     string
	Offset   float64
	Duration float64
}

// Track is an ordered, gapless list of pieces.
type Track struct {
	Pieces []Piece
}

// FromAsset returns a track that plays the whole asset unmodified.
func FromAsset(a Asset) Track {
	return Track{Pieces: []Piece{{Kind: Clip, Path: a.Path, Duration: a.Duration}}}
}

func (t Track) Duration() float64 {
	total := 0.0
	for _, p := range t.Pieces {
		total += p.Duration
	}
	return total
}

// Pad wraps a track with leading and trailing silence. Zero-length pads add
// no pieces, so Pad(t, 0, 0) equals t.
func Pad(t Track, lead, trail float64) Track {
	pieces := make([]Piece, 0, len(t.Pieces)+2)
	if lead > 0 {
		pieces = append(pieces, Piece{Kind: Silence, Duration: lead})
	}
	pieces = append(pieces, t.Pieces...)
	if trail > 0 {
		pieces = append(pieces, Piece{Kind: Silence, Duration: trail})
	}
	return Track{Pieces: pieces}
}

// At reports the piece playing at time t and the position inside the piece's
// source. ok is false outside [0, Duration()).
func (t Track) At(at float64) (p Piece, pos float64, ok bool) {
	if at < 0 {
		return Piece{}, 0, false
	}
	start := 0.0
	for _, piece := range t.Pieces {
		if at < start+piece.Duration {
			return piece, piece.Offset + (at - start), true
		}
		start += piece.Duration
	}
	return Piece{}, 0, false
}

// Clips returns the source clips of the track in play order.
func (t Track) Clips() []Piece {
	var clips []Piece
	for _, p := range t.Pieces {
		if p.Kind == Clip {
			clips = append(clips, p)
		}
	}
	return clips
}

func (t Track) Equal(o Track) bool {
	if len(t.Pieces) != len(o.Pieces) {
		return false
	}
	for i := range t.Pieces {
		if t.Pieces[i] != o.Pieces[i] {
			return false
		}
	}
	return true
}
