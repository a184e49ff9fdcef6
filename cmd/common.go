package cmd

import (
	"fmt"
	"image"

	"github.com/rm-hull/frame-interpolator/internal/config"
	"github.com/rm-hull/frame-interpolator/internal/export"
	"github.com/rm-hull/frame-interpolator/internal/frames"
	"github.com/rm-hull/frame-interpolator/internal/interpolate"
	"github.com/rm-hull/frame-interpolator/internal/png/stage"
)

func interpolateOptions(cfg config.Config) ([]interpolate.Option, error) {
	space, err := interpolate.ParseSpace(cfg.Space)
	if err != nil {
		return nil, err
	}
	return []interpolate.Option{interpolate.WithSpace(space)}, nil
}

func loadOptions(cfg config.Config) []frames.LoadOption {
	if cfg.RequireUniformSize != nil && *cfg.RequireUniformSize {
		return []frames.LoadOption{frames.RequireUniformSize()}
	}
	return nil
}

func newExporter(target string, cfg config.Config) *export.Exporter {
	return export.NewExporter(target,
		export.WithPoolSize(cfg.Workers),
		export.WithStages(stage.Chain(stage.ChainOptions{
			Width:     cfg.Export.Width,
			Height:    cfg.Export.Height,
			Sigma:     cfg.Export.Sigma,
			Greyscale: cfg.Export.Greyscale,
		})...),
	)
}

// expand loads srcDir and interpolates it according to cfg.
func expand(srcDir string, cfg config.Config) ([]image.Image, error) {
	store, err := frames.Load(srcDir, loadOptions(cfg)...)
	if err != nil {
		return nil, err
	}

	mode, err := interpolate.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	opts, err := interpolateOptions(cfg)
	if err != nil {
		return nil, err
	}

	expanded, err := interpolate.ExpandSequence(store.Snapshot(), cfg.Subdivisions, mode, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", srcDir, err)
	}
	return expanded, nil
}

func countFrames(images []image.Image) int {
	count := 0
	for _, img := range images {
		if img != nil {
			count++
		}
	}
	return count
}
