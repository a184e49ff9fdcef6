package interpolate

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var ErrDimensionMismatch = errors.New("dimension mismatch")

type options struct {
	space Space
}

type Option func(*options)

// WithSpace blends pixels in the given colour space instead of RGB.
func WithSpace(space Space) Option {
	return func(o *options) {
		o.space = space
	}
}

func newOptions(opts []Option) options {
	o := options{space: RGB}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Blend produces the image found t of the way between a and b. Both images
// must have the same width and height; the result has the same size and is
// fully opaque.
func Blend(a, b image.Image, t float64, opts ...Option) (*image.RGBA, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: missing source image", ErrDimensionMismatch)
	}

	if a.Bounds().Size() != b.Bounds().Size() {
		return nil, fmt.Errorf("%w: cannot blend %v with %v", ErrDimensionMismatch, a.Bounds().Size(), b.Bounds().Size())
	}

	return BlendSize(a.Bounds().Size(), a, b, t, opts...)
}

// BlendSize is Blend with an explicit output size, which must not exceed the
// bounds of either source. Pixels are read from the top-left corner of each
// source.
func BlendSize(size image.Point, a, b image.Image, t float64, opts ...Option) (*image.RGBA, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: missing source image", ErrDimensionMismatch)
	}

	ab, bb := a.Bounds(), b.Bounds()
	if size.X < 0 || size.Y < 0 ||
		size.X > ab.Dx() || size.Y > ab.Dy() ||
		size.X > bb.Dx() || size.Y > bb.Dy() {
		return nil, fmt.Errorf("%w: output size %v exceeds source bounds %v and %v", ErrDimensionMismatch, size, ab.Size(), bb.Size())
	}

	o := newOptions(opts)
	out := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			c1 := color.NRGBAModel.Convert(a.At(ab.Min.X+x, ab.Min.Y+y)).(color.NRGBA)
			c2 := color.NRGBAModel.Convert(b.At(bb.Min.X+x, bb.Min.Y+y)).(color.NRGBA)
			out.SetRGBA(x, y, o.space.mix(c1, c2, t))
		}
	}

	return out, nil
}

// BlendMany applies Blend once per fraction, preserving the order of
// fractions in the result.
func BlendMany(a, b image.Image, fractions []float64, opts ...Option) ([]*image.RGBA, error) {
	out := make([]*image.RGBA, 0, len(fractions))
	for _, t := range fractions {
		img, err := Blend(a, b, t, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to blend at %v: %w", t, err)
		}
		out = append(out, img)
	}
	return out, nil
}
