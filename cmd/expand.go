package cmd

import (
	"github.com/rm-hull/frame-interpolator/internal/config"
	log "github.com/sirupsen/logrus"
)

func Expand(cfg config.Config, srcDir, outDir string, animate bool) error {
	expanded, err := expand(srcDir, cfg)
	if err != nil {
		return err
	}

	exporter := newExporter(outDir, cfg)
	if err := exporter.WriteAll(expanded); err != nil {
		return err
	}

	dir, _ := exporter.Dir()
	log.WithFields(log.Fields{
		"mode":         cfg.Mode,
		"subdivisions": cfg.Subdivisions,
		"slots":        len(expanded),
		"frames":       countFrames(expanded),
	}).Infof("Exported expanded sequence to %s", dir)

	if !animate {
		return nil
	}

	path, err := exporter.WriteAnimation(expanded, 1/float64(cfg.FPS))
	if err != nil {
		return err
	}
	log.Infof("Wrote animation to %s", path)
	return nil
}
