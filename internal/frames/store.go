package frames

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/rm-hull/frame-interpolator/internal/interpolate"
	log "github.com/sirupsen/logrus"
)

// MinFrames is the smallest number of images a usable sequence holds.
const MinFrames = 2

var (
	ErrInvalidSource   = errors.New("invalid frame source")
	ErrDecodeFailure   = errors.New("failed to decode frame")
	ErrIndexOutOfRange = errors.New("frame index out of range")
)

// Store holds an ordered, validated sequence of frames. The sequence is read
// only apart from Replace and Reload, which swap the whole buffer at once.
type Store struct {
	mu     sync.RWMutex
	frames []image.Image
	source string
}

type loadOptions struct {
	uniformSize bool
}

type LoadOption func(*loadOptions)

// RequireUniformSize rejects sequences whose frames are not all the same
// width and height.
func RequireUniformSize() LoadOption {
	return func(o *loadOptions) {
		o.uniformSize = true
	}
}

func newLoadOptions(opts []LoadOption) loadOptions {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load builds a Store from every entry of dir, in directory listing order.
// Loading is all or nothing: a directory that is missing, has fewer than
// MinFrames entries, contains a sub-directory or contains anything that does
// not decode as an image yields an error and no Store.
func Load(dir string, opts ...LoadOption) (*Store, error) {
	images, err := ReadDir(dir, opts...)
	if err != nil {
		return nil, err
	}

	return &Store{frames: images, source: dir}, nil
}

// FromImages builds a Store around an existing slice, skipping nil entries.
func FromImages(images []image.Image, opts ...LoadOption) (*Store, error) {
	valid, err := validate(images, newLoadOptions(opts))
	if err != nil {
		return nil, err
	}

	return &Store{frames: valid}, nil
}

// ReadDir decodes the frames of dir without wrapping them in a Store.
func ReadDir(dir string, opts ...LoadOption) ([]image.Image, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidSource, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	if len(entries) < MinFrames {
		return nil, fmt.Errorf("%w: %s has %d entries, need at least %d", ErrInvalidSource, dir, len(entries), MinFrames)
	}

	images := make([]image.Image, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			return nil, fmt.Errorf("%w: %s contains sub-directory %s", ErrInvalidSource, dir, entry.Name())
		}

		img, err := DecodeFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailure, entry.Name(), err)
		}
		log.Debugf("Decoded frame %d from %s (%v)", len(images), entry.Name(), img.Bounds().Size())
		images = append(images, img)
	}

	return validate(images, newLoadOptions(opts))
}

func validate(images []image.Image, o loadOptions) ([]image.Image, error) {
	valid := make([]image.Image, 0, len(images))
	for _, img := range images {
		if img != nil {
			valid = append(valid, img)
		}
	}

	if len(valid) < MinFrames {
		return nil, fmt.Errorf("%w: %d images supplied, need at least %d", ErrInvalidSource, len(valid), MinFrames)
	}

	if o.uniformSize {
		size := valid[0].Bounds().Size()
		for i, img := range valid[1:] {
			if img.Bounds().Size() != size {
				return nil, fmt.Errorf("%w: frame %d is %v, expected %v", interpolate.ErrDimensionMismatch, i+1, img.Bounds().Size(), size)
			}
		}
	}

	return valid, nil
}

// Replace substitutes the whole sequence, typically with the result of an
// expansion. The current frames are kept if images fails validation.
func (s *Store) Replace(images []image.Image, opts ...LoadOption) error {
	valid, err := validate(images, newLoadOptions(opts))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = valid
	return nil
}

// Reload re-reads the directory the Store was loaded from.
func (s *Store) Reload(opts ...LoadOption) error {
	s.mu.RLock()
	source := s.source
	s.mu.RUnlock()

	if source == "" {
		return fmt.Errorf("%w: store was not loaded from a directory", ErrInvalidSource)
	}

	images, err := ReadDir(source, opts...)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = images
	return nil
}

func (s *Store) FrameAt(index int) (image.Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.frames) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(s.frames))
	}
	return s.frames[index], nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.frames)
}

// Snapshot returns a copy of the sequence; changing it does not affect the
// Store.
func (s *Store) Snapshot() []image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]image.Image, len(s.frames))
	copy(out, s.frames)
	return out
}

// Size is the size of the first frame.
func (s *Store) Size() image.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.frames) == 0 {
		return image.Point{}
	}
	return s.frames[0].Bounds().Size()
}

// Source is the directory the Store was loaded from, if any.
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}
