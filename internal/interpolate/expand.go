package interpolate

import (
	"errors"
	"fmt"
	"image"
)

var ErrNegativeSubdivisions = errors.New("subdivisions must not be negative")

// Mode controls how ExpandSequence lays out its output.
type Mode int

const (
	// Faithful reproduces the historical layout: ExpandedLen(n, s) slots, where
	// the blends for gap k (between frames k-1 and k) occupy slots
	// k*(s+1) .. k*(s+1)+s at fractions 0/s .. s/s, and every other slot,
	// index 0 included, is left nil. With s == 0 the single fraction is 0/0
	// and the synthetic frame is black.
	Faithful Mode = iota

	// Compact emits the same blends with no nil slots, (n-1)*(s+1) frames in
	// total. With s == 0 each gap contributes its leading frame unchanged.
	Compact
)

func (m Mode) String() string {
	if m == Compact {
		return "compact"
	}
	return "faithful"
}

func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "faithful":
		return Faithful, nil
	case "compact":
		return Compact, nil
	}
	return Faithful, fmt.Errorf("unknown expansion mode %q (expected faithful or compact)", name)
}

// ExpandedLen is the length of a Faithful expansion of n frames.
func ExpandedLen(n, subdivisions int) int {
	return n*(subdivisions+1) + subdivisions + 1
}

// ExpandSequence synthesises subdivisions+1 blended frames for every pair of
// adjacent frames.
func ExpandSequence(frames []image.Image, subdivisions int, mode Mode, opts ...Option) ([]image.Image, error) {
	if subdivisions < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeSubdivisions, subdivisions)
	}

	step := subdivisions + 1
	out := make([]image.Image, ExpandedLen(len(frames), subdivisions))
	for k := 1; k < len(frames); k++ {
		for i := 0; i <= subdivisions; i++ {
			img, err := Blend(frames[k-1], frames[k], fraction(i, subdivisions, mode), opts...)
			if err != nil {
				return nil, fmt.Errorf("failed to blend frames %d and %d: %w", k-1, k, err)
			}
			out[k*step+i] = img
		}
	}

	if mode == Compact {
		compacted := make([]image.Image, 0, len(out))
		for _, img := range out {
			if img != nil {
				compacted = append(compacted, img)
			}
		}
		return compacted, nil
	}

	return out, nil
}

func fraction(i, subdivisions int, mode Mode) float64 {
	if subdivisions == 0 && mode == Compact {
		return 0
	}
	return float64(i) / float64(subdivisions)
}
