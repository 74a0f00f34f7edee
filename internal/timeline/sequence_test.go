package timeline

import (
	"errors"
	"math"
	"testing"
)

func TestSequenceCoverage(t *testing.T) {
	totals := []float64{0.001, 1, 4.7, 5, 7.3333, 12.25, 59.99, 3600}
	counts := []int{1, 2, 3, 4, 7, 10, 33}

	for _, total := range totals {
		for _, count := range counts {
			segs, err := Sequence(total, count)
			if err != nil {
				t.Fatalf("Sequence(%f, %d): %v", total, count, err)
			}
			if len(segs) != count {
				t.Fatalf("Sequence(%f, %d): got %d segments", total, count, len(segs))
			}

			sum := 0.0
			for i, s := range segs {
				sum += s.Duration
				if i == 0 && s.Start != 0 {
					t.Errorf("first segment starts at %f", s.Start)
				}
				if i > 0 && math.Abs(s.Start-segs[i-1].End()) > 1e-9 {
					t.Errorf("gap/overlap between segments %d and %d: %f vs %f", i-1, i, segs[i-1].End(), s.Start)
				}
				if s.Duration <= 0 {
					t.Errorf("segment %d has non-positive duration %f", i, s.Duration)
				}
			}
			if math.Abs(sum-total) > 1e-6 {
				t.Errorf("Sequence(%f, %d): durations sum to %f", total, count, sum)
			}
			if last := segs[count-1].End(); last != total {
				t.Errorf("Sequence(%f, %d): last segment ends at %f", total, count, last)
			}
		}
	}
}

func TestSequencePaddedNarration(t *testing.T) {
	// 4.0s narration with 0.2s lead and 0.5s trail.
	total := 0.2 + 4.0 + 0.5
	segs, err := Sequence(total, 3)
	if err != nil {
		t.Fatal(err)
	}

	wantStarts := []float64{0, 1.5667, 3.1333}
	for i, s := range segs {
		if math.Abs(s.Duration-4.7/3) > 1e-9 {
			t.Errorf("segment %d duration %f, want %f", i, s.Duration, 4.7/3)
		}
		if math.Abs(s.Start-wantStarts[i]) > 1e-4 {
			t.Errorf("segment %d start %f, want ~%f", i, s.Start, wantStarts[i])
		}
	}
}

func TestSequenceErrors(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		count int
		check func(error) bool
	}{
		{"zero count", 5, 0, func(err error) bool {
			var e *InvalidSegmentCountError
			return errors.As(err, &e) && e.Count == 0
		}},
		{"negative count", 5, -2, func(err error) bool {
			var e *InvalidSegmentCountError
			return errors.As(err, &e)
		}},
		{"zero duration", 0, 3, func(err error) bool {
			var e *InvalidDurationError
			return errors.As(err, &e)
		}},
		{"negative duration", -1, 3, func(err error) bool {
			var e *InvalidDurationError
			return errors.As(err, &e)
		}},
		{"nan duration", math.NaN(), 3, func(err error) bool {
			var e *InvalidDurationError
			return errors.As(err, &e)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := Sequence(tt.total, tt.count)
			if err == nil {
				t.Fatalf("expected error, got %d segments", len(segs))
			}
			if !tt.check(err) {
				t.Errorf("unexpected error kind: %T %v", err, err)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"#ffffff", 255, 255, 255, false},
		{"#102030", 0x10, 0x20, 0x30, false},
		{"#fff", 255, 255, 255, false},
		{"000000", 0, 0, 0, false},
		{"#12345", 0, 0, 0, true},
		{"#zzzzzz", 0, 0, 0, true},
	}
	for _, tt := range tests {
		c, err := ParseHexColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseHexColor(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHexColor(%q): %v", tt.in, err)
			continue
		}
		if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != 255 {
			t.Errorf("ParseHexColor(%q) = %v", tt.in, c)
		}
	}
}
