package stage

import (
	"github.com/anthonynsimon/bild/effect"
	"github.com/rm-hull/frame-interpolator/internal/png"
)

type GreyscaleStage struct{}

// Process converts the frame to greyscale using luminance weighting. The frame
// stays opaque.
func (s *GreyscaleStage) Process(f *png.Frame) error {
	f.Img = effect.Grayscale(f.Img)
	f.Bounds = f.Img.Bounds()
	return nil
}
