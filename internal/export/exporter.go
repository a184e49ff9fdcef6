package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rm-hull/frame-interpolator/internal/png"
	log "github.com/sirupsen/logrus"
)

var ErrExportTargetInvalid = errors.New("invalid export target")

// Exporter writes frames as numbered PNG files into a single directory. The
// directory is created if needed and must be empty the first time it is
// used; after that it is remembered for the lifetime of the Exporter.
type Exporter struct {
	mu       sync.Mutex
	target   string
	dir      string
	poolSize int
	stages   []png.PipelineStage
}

type Option func(*Exporter)

func WithPoolSize(poolSize int) Option {
	return func(e *Exporter) {
		e.poolSize = poolSize
	}
}

// WithStages post-processes every frame before it is written.
func WithStages(stages ...png.PipelineStage) Option {
	return func(e *Exporter) {
		e.stages = stages
	}
}

func NewExporter(target string, opts ...Option) *Exporter {
	e := &Exporter{
		target:   target,
		poolSize: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the export directory, validating it on first use.
func (e *Exporter) Dir() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.dir != "" {
		return e.dir, nil
	}

	dir, err := filepath.Abs(e.target)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportTargetInvalid, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportTargetInvalid, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExportTargetInvalid, err)
	}
	if len(entries) != 0 {
		return "", fmt.Errorf("%w: %s is not empty", ErrExportTargetInvalid, dir)
	}

	log.Infof("Exporting frames to %s", dir)
	e.dir = dir
	return dir, nil
}

// FileName is the name given to frame index inside dir: <dir-name>_<index>.png.
func FileName(dir string, index int) string {
	return fmt.Sprintf("%s_%d.png", filepath.Base(dir), index)
}

// WriteFrame writes a single frame under the given index.
func (e *Exporter) WriteFrame(index int, img image.Image) error {
	dir, err := e.Dir()
	if err != nil {
		return err
	}
	return e.writeFrame(dir, index, img)
}

// WriteAll writes every non-nil frame, numbered by its position in images.
// A failed write does not stop the others or remove frames already written;
// all failures are returned together.
func (e *Exporter) WriteAll(images []image.Image) error {
	dir, err := e.Dir()
	if err != nil {
		return err
	}

	processor, err := NewProcessor(e.poolSize, images, func(index int, img image.Image) error {
		return e.writeFrame(dir, index, img)
	})
	if err != nil {
		return err
	}

	processor.StartWorkers()
	processor.DispatchJobs()

	var result *multierror.Error
	for _, err := range processor.Wait() {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// WriteAnimation writes the frames as one animated PNG next to the numbered
// frames and returns its path.
func (e *Exporter) WriteAnimation(images []image.Image, frameDelay float64) (string, error) {
	dir, err := e.Dir()
	if err != nil {
		return "", err
	}

	processed := make([]image.Image, len(images))
	for i, img := range images {
		if img == nil {
			continue
		}
		if processed[i], err = png.Apply(img, e.stages...); err != nil {
			return "", fmt.Errorf("failed to process frame %d: %w", i, err)
		}
	}

	filename := filepath.Join(dir, filepath.Base(dir)+"_animated.png")
	err = writeAtomic(dir, filename, func(f *os.File) error {
		return png.Animate(f, processed, frameDelay)
	})
	if err != nil {
		return "", fmt.Errorf("failed to write animation: %w", err)
	}
	return filename, nil
}

func (e *Exporter) writeFrame(dir string, index int, img image.Image) error {
	frame := png.NewFrame(img)
	if err := frame.Pipeline(e.stages...); err != nil {
		return fmt.Errorf("failed to process frame %d: %w", index, err)
	}

	filename := filepath.Join(dir, FileName(dir, index))
	if err := writeAtomic(dir, filename, func(f *os.File) error { return frame.Write(f) }); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", index, err)
	}

	log.Debugf("Wrote %s", filename)
	return nil
}

// WriteFileAtomic writes filename through a temporary file in the same
// directory; filename only appears once write has succeeded.
func WriteFileAtomic(filename string, write func(w io.Writer) error) error {
	return writeAtomic(filepath.Dir(filename), filename, func(f *os.File) error {
		return write(f)
	})
}

// writeAtomic writes to a temporary file in dir and renames it into place.
func writeAtomic(dir, filename string, write func(f *os.File) error) error {
	tmpFile, err := os.CreateTemp(dir, "export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := write(tmpFile); err != nil {
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false
	return nil
}
