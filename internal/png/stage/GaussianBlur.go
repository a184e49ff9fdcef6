package stage

import (
	"github.com/anthonynsimon/bild/blur"
	"github.com/rm-hull/frame-interpolator/internal/png"
)

type GaussianBlurStage struct {
	Sigma float64
}

// Process softens the frame with a Gaussian blur of the given Sigma; a Sigma
// of zero leaves the frame untouched.
func (s *GaussianBlurStage) Process(f *png.Frame) error {
	if s.Sigma <= 0 {
		return nil
	}
	f.Img = blur.Gaussian(f.Img, s.Sigma)
	f.Bounds = f.Img.Bounds()
	return nil
}
