package cmd

import (
	"fmt"
	"io"

	"github.com/rm-hull/frame-interpolator/internal/config"
	"github.com/rm-hull/frame-interpolator/internal/export"
	"github.com/rm-hull/frame-interpolator/internal/frames"
	"github.com/rm-hull/frame-interpolator/internal/png"
	log "github.com/sirupsen/logrus"
)

// Animate encodes the frames of srcDir, as loaded, into a single APNG file.
func Animate(cfg config.Config, srcDir, outFile string) error {
	store, err := frames.Load(srcDir, loadOptions(cfg)...)
	if err != nil {
		return err
	}

	err = export.WriteFileAtomic(outFile, func(w io.Writer) error {
		return png.Animate(w, store.Snapshot(), 1/float64(cfg.FPS))
	})
	if err != nil {
		return fmt.Errorf("failed to animate %s: %w", srcDir, err)
	}

	log.Infof("Wrote %d frame animation to %s", store.Len(), outFile)
	return nil
}
