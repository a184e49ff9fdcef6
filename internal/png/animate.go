package png

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/kettek/apng"
)

// Animate encodes the frames as a looping animated PNG, showing each one for
// frameDelay seconds. Nil frames are skipped.
func Animate(w io.Writer, frames []image.Image, frameDelay float64) error {
	num, den, err := delayFraction(frameDelay)
	if err != nil {
		return err
	}

	a := apng.APNG{
		Frames:    make([]apng.Frame, 0, len(frames)),
		LoopCount: 0,
	}

	for _, img := range frames {
		if img == nil {
			continue
		}
		a.Frames = append(a.Frames, apng.Frame{
			Image:            img,
			DelayNumerator:   num,
			DelayDenominator: den,
		})
	}

	if len(a.Frames) == 0 {
		return errors.New("no frames to animate")
	}

	return apng.Encode(w, a)
}

// maxDelay is the longest delay expressible in milliseconds by the
// uint16 numerator of an fcTL chunk.
const maxDelay = float64(math.MaxUint16) / 1000

// delayFraction expresses frameDelay seconds as num/den seconds. Delays of
// a millisecond or more are counted in milliseconds; shorter ones become
// 1/den, so frame rates up to 65535 fps survive.
func delayFraction(frameDelay float64) (uint16, uint16, error) {
	if math.IsNaN(frameDelay) || frameDelay <= 0 || frameDelay > maxDelay {
		return 0, 0, fmt.Errorf("frame delay must be in (0, %g] seconds, got %g", maxDelay, frameDelay)
	}

	if num := math.Round(frameDelay * 1000); num >= 1 {
		return uint16(num), 1000, nil
	}

	den := math.Round(1 / frameDelay)
	if den > math.MaxUint16 {
		return 0, 0, fmt.Errorf("frame delay %g seconds is too short", frameDelay)
	}
	return 1, uint16(den), nil
}
