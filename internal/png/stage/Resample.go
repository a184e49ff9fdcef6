package stage

import (
	"fmt"
	"image"

	"github.com/rm-hull/frame-interpolator/internal/png"
	"golang.org/x/image/draw"
)

type ResampleStage struct {
	Width  int
	Height int
}

// Process rescales the frame to Width x Height with Catmull-Rom resampling.
// A zero dimension keeps the frame's own size on that axis.
func (s *ResampleStage) Process(f *png.Frame) error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("invalid resample size %dx%d", s.Width, s.Height)
	}

	size := f.Bounds.Size()
	if s.Width > 0 {
		size.X = s.Width
	}
	if s.Height > 0 {
		size.Y = s.Height
	}

	target := image.Rect(0, 0, size.X, size.Y)
	resampled := image.NewRGBA(target)
	draw.CatmullRom.Scale(resampled, target, f.Img, f.Bounds, draw.Src, nil)
	f.Img = resampled
	f.Bounds = target
	return nil
}
