package png

import (
	"image"
	"image/png"
	"io"
)

// Frame is an image moving through a chain of post-processing stages.
type Frame struct {
	Img    image.Image
	Bounds image.Rectangle
}

type PipelineStage interface {
	Process(f *Frame) error
}

func NewFrame(img image.Image) *Frame {
	return &Frame{
		Img:    img,
		Bounds: img.Bounds(),
	}
}

func NewFrameFromReader(r io.Reader) (*Frame, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, err
	}
	return NewFrame(img), nil
}

func (f *Frame) Write(w io.Writer) error {
	encoder := png.Encoder{CompressionLevel: png.DefaultCompression}
	return encoder.Encode(w, f.Img)
}

func (f *Frame) Pipeline(stages ...PipelineStage) error {
	for _, stage := range stages {
		if err := stage.Process(f); err != nil {
			return err
		}
	}
	return nil
}

// Apply runs img through the stages and returns the processed image.
func Apply(img image.Image, stages ...PipelineStage) (image.Image, error) {
	if len(stages) == 0 {
		return img, nil
	}

	f := NewFrame(img)
	if err := f.Pipeline(stages...); err != nil {
		return nil, err
	}
	return f.Img, nil
}
