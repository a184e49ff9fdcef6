package cmd

import (
	"fmt"
	"image"

	"github.com/rm-hull/frame-interpolator/internal/config"
	"github.com/rm-hull/frame-interpolator/internal/frames"
	"github.com/rm-hull/frame-interpolator/internal/interpolate"
	log "github.com/sirupsen/logrus"
)

// Blend writes the in-between frames of two images. Explicit fractions take
// precedence over steps, which are spaced by the configured easing.
func Blend(cfg config.Config, fromPath, toPath, outDir string, steps int, fractions []float64) error {
	origin, err := frames.DecodeFile(fromPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", frames.ErrDecodeFailure, fromPath, err)
	}
	target, err := frames.DecodeFile(toPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", frames.ErrDecodeFailure, toPath, err)
	}

	if len(fractions) == 0 {
		fractions, err = interpolate.Fractions(steps, cfg.Easing)
		if err != nil {
			return err
		}
	}

	opts, err := interpolateOptions(cfg)
	if err != nil {
		return err
	}

	blended, err := interpolate.BlendMany(origin, target, fractions, opts...)
	if err != nil {
		return err
	}

	images := make([]image.Image, len(blended))
	for i, img := range blended {
		images[i] = img
	}

	exporter := newExporter(outDir, cfg)
	if err := exporter.WriteAll(images); err != nil {
		return err
	}

	dir, _ := exporter.Dir()
	log.Infof("Wrote %d blended frames to %s", len(images), dir)
	return nil
}
