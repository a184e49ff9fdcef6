package playback

import (
	"fmt"
	"image"
)

// Sequence is a FrameSource over an in-memory slice. Unlike a frames.Store it
// accepts any number of frames, so a single synthesised frame can be played.
type Sequence []image.Image

// NewSequence keeps the non-nil images, in order.
func NewSequence(images []image.Image) Sequence {
	seq := make(Sequence, 0, len(images))
	for _, img := range images {
		if img != nil {
			seq = append(seq, img)
		}
	}
	return seq
}

func (s Sequence) FrameAt(index int) (image.Image, error) {
	if index < 0 || index >= len(s) {
		return nil, fmt.Errorf("frame %d not in [0, %d)", index, len(s))
	}
	return s[index], nil
}

func (s Sequence) Len() int {
	return len(s)
}
