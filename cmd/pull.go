package cmd

import (
	"fmt"
	"image"
	"io"
	"os"

	"github.com/rm-hull/frame-interpolator/internal"
	"github.com/rm-hull/frame-interpolator/internal/config"
	"github.com/rm-hull/frame-interpolator/internal/export"
	"github.com/rm-hull/frame-interpolator/internal/frames"
	log "github.com/sirupsen/logrus"
)

// Pull downloads every frame served by a remote api-server and exports them
// locally, post-processed with the configured stages. For each fraction the
// remote server is also asked for the blend between every pair of
// neighbouring frames, which is written between the two.
func Pull(cfg config.Config, baseUrl, outDir string, fractions []float64) error {
	internal.UserInfo()
	internal.EnvironmentVars()

	exporter := newExporter(outDir, cfg)
	written, err := pull(internal.NewFramesClient(baseUrl), exporter, fractions)
	if err != nil {
		return err
	}

	dir, _ := exporter.Dir()
	log.Infof("Pulled %d frames into %s", written, dir)
	return nil
}

func pull(client internal.FramesClient, exporter *export.Exporter, fractions []float64) (int, error) {
	if _, err := exporter.Dir(); err != nil {
		return 0, err
	}

	info, err := client.GetInfo()
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve frame info: %w", err)
	}
	if info.Count < 0 {
		return 0, fmt.Errorf("remote reported an invalid frame count %d", info.Count)
	}
	log.Infof("Remote sequence has %d frames (%dx%d)", info.Count, info.Width, info.Height)

	written := 0
	save := func(label string, open func() (io.ReadCloser, error)) error {
		img, err := fetchImage(label, open)
		if err != nil {
			return err
		}
		if err := exporter.WriteFrame(written, img); err != nil {
			return err
		}
		written++
		return nil
	}

	for i := 0; i < info.Count; i++ {
		err := save(fmt.Sprintf("frame %d", i), func() (io.ReadCloser, error) {
			return client.GetFrame(i)
		})
		if err != nil {
			return written, err
		}

		if i == info.Count-1 {
			break
		}
		for _, t := range fractions {
			err := save(fmt.Sprintf("blend %d-%d at %g", i, i+1, t), func() (io.ReadCloser, error) {
				return client.GetBlend(i, i+1, t)
			})
			if err != nil {
				return written, err
			}
		}
	}

	return written, nil
}

func fetchImage(label string, open func() (io.ReadCloser, error)) (image.Image, error) {
	body, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve %s: %w", label, err)
	}
	defer func() {
		if err := body.Close(); err != nil {
			// Log the error, but don't return it as it might mask a more important error
			fmt.Fprintf(os.Stderr, "warning: failed to close %s: %v\n", label, err)
		}
	}()

	img, err := frames.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: remote %s: %w", frames.ErrDecodeFailure, label, err)
	}
	return img, nil
}
