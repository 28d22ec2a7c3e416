package rsmplot

import (
	"fmt"
	"image/color"
)

// A Stop anchors a color at a fraction of the intensity scale.
type Stop struct {
	Frac  float64
	Color color.RGBA
}

// Colormap is a lookup table of color stops over [0, 1]. Fractions must
// increase monotonically, starting at 0 and ending at 1; colors between
// stops are interpolated linearly per channel.
type Colormap []Stop

// Jet is the default intensity colormap, matching the one the
// acquisition software uses for RSM intensity scales.
var Jet = Colormap{
	{0.000, color.RGBA{0, 0, 131, 255}},
	{0.125, color.RGBA{0, 60, 170, 255}},
	{0.375, color.RGBA{5, 255, 255, 255}},
	{0.625, color.RGBA{255, 255, 0, 255}},
	{0.875, color.RGBA{250, 0, 0, 255}},
	{1.000, color.RGBA{128, 0, 0, 255}},
}

// Validate returns an error unless the map has at least two stops, with
// strictly increasing fractions from exactly 0 to exactly 1.
func (m Colormap) Validate() error {
	if len(m) < 2 {
		return fmt.Errorf("colormap needs at least 2 stops, has %d", len(m))
	}
	if m[0].Frac != 0 || m[len(m)-1].Frac != 1 {
		return fmt.Errorf("colormap must span fractions 0 to 1, spans %g to %g", m[0].Frac, m[len(m)-1].Frac)
	}
	for i := 1; i < len(m); i++ {
		if m[i].Frac <= m[i-1].Frac {
			return fmt.Errorf("colormap fractions not increasing at stop %d", i)
		}
	}
	return nil
}

// At returns the color at the given fraction of the scale. Fractions
// outside [0, 1] clamp to the end stops.
func (m Colormap) At(frac float64) color.RGBA {
	if frac <= m[0].Frac {
		return m[0].Color
	}
	for i := 1; i < len(m); i++ {
		if frac > m[i].Frac {
			continue
		}
		lo, hi := m[i-1], m[i]
		t := (frac - lo.Frac) / (hi.Frac - lo.Frac)
		return color.RGBA{
			R: lerp(lo.Color.R, hi.Color.R, t),
			G: lerp(lo.Color.G, hi.Color.G, t),
			B: lerp(lo.Color.B, hi.Color.B, t),
			A: lerp(lo.Color.A, hi.Color.A, t),
		}
	}
	return m[len(m)-1].Color
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)) + 0.5)
}
