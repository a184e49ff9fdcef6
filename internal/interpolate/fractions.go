package interpolate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

var easings = map[string]func(float64) float64{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
}

// Easings lists the curve names accepted by Fractions.
func Easings() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fractions returns n blend fractions spaced evenly strictly between 0 and 1
// and then reshaped by the named easing curve.
func Fractions(n int, easing string) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("fraction count must not be negative, got %d", n)
	}

	if easing == "" {
		easing = "linear"
	}
	fn, ok := easings[strings.ToLower(easing)]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (expected one of %s)", easing, strings.Join(Easings(), ", "))
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = fn(float64(i+1) / float64(n+1))
	}
	return out, nil
}
