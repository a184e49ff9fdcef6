package stage

import "github.com/rm-hull/frame-interpolator/internal/png"

type ChainOptions struct {
	Width     int
	Height    int
	Sigma     float64
	Greyscale bool
}

// Chain assembles the post-processing stages selected by opts, in the order
// resample, greyscale, blur. No stages are returned when nothing is selected.
func Chain(opts ChainOptions) []png.PipelineStage {
	stages := []png.PipelineStage{}
	if opts.Width > 0 || opts.Height > 0 {
		stages = append(stages, &ResampleStage{Width: opts.Width, Height: opts.Height})
	}
	if opts.Greyscale {
		stages = append(stages, &GreyscaleStage{})
	}
	if opts.Sigma > 0 {
		stages = append(stages, &GaussianBlurStage{Sigma: opts.Sigma})
	}
	return stages
}
