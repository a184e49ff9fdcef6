package interpolate

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Space selects the colour space in which two pixels are blended.
type Space int

const (
	// RGB blends each 8-bit channel independently with LerpChannel255.
	RGB Space = iota
	// HCL blends in the perceptual hue/chroma/luminance space.
	HCL
	// Lab blends in CIE L*a*b*.
	Lab
)

func (s Space) String() string {
	switch s {
	case HCL:
		return "hcl"
	case Lab:
		return "lab"
	default:
		return "rgb"
	}
}

func ParseSpace(name string) (Space, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rgb":
		return RGB, nil
	case "hcl":
		return HCL, nil
	case "lab":
		return Lab, nil
	}
	return RGB, fmt.Errorf("unknown blend space %q (expected rgb, hcl or lab)", name)
}

func (s Space) mix(c1, c2 color.NRGBA, t float64) color.RGBA {
	switch s {
	case HCL, Lab:
		a := colorful.Color{R: float64(c1.R) / 255, G: float64(c1.G) / 255, B: float64(c1.B) / 255}
		b := colorful.Color{R: float64(c2.R) / 255, G: float64(c2.G) / 255, B: float64(c2.B) / 255}

		var m colorful.Color
		if s == HCL {
			m = a.BlendHcl(b, t)
		} else {
			m = a.BlendLab(b, t)
		}
		r, g, bl := m.Clamped().RGB255()
		return color.RGBA{R: r, G: g, B: bl, A: 255}
	default:
		// Out of range channels keep their low 8 bits, matching a packed RGB raster.
		return color.RGBA{
			R: uint8(LerpChannel255(c1.R, c2.R, t)),
			G: uint8(LerpChannel255(c1.G, c2.G, t)),
			B: uint8(LerpChannel255(c1.B, c2.B, t)),
			A: 255,
		}
	}
}
