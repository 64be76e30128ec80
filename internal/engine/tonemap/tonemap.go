// Package tonemap maps linear HDR radiance to displayable [0,1] colour.
//
// Each Mode has a GLSL implementation spliced into fragment shaders and a
// CPU reference implementation with identical maths.
package tonemap

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Mode selects a tone mapping operator.
type Mode int

const (
	None Mode = iota
	Linear
	Reinhard
	ACESFilmic
)

var modeNames = map[Mode]string{
	None:       "none",
	Linear:     "linear",
	Reinhard:   "reinhard",
	ACESFilmic: "aces",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names returned by String, case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return None, fmt.Errorf("unknown tone mapping %q", s)
}

// Apply tone maps a linear colour with the given exposure. None returns the
// colour unchanged; every other mode saturates the result.
func Apply(m Mode, c [3]float32, exposure float32) [3]float32 {
	switch m {
	case Linear:
		return saturate3(scale3(c, exposure))
	case Reinhard:
		c = scale3(c, exposure)
		for i := range c {
			c[i] = c[i] / (1 + c[i])
		}
		return saturate3(c)
	case ACESFilmic:
		return acesFilmic(c, exposure)
	default:
		return c
	}
}

// ACES input and output matrices, row-major, sRGB => AP1 => sRGB.
var (
	acesInput = [3][3]float32{
		{0.59719, 0.35458, 0.04823},
		{0.07600, 0.90834, 0.01566},
		{0.02840, 0.13383, 0.83777},
	}
	acesOutput = [3][3]float32{
		{1.60475, -0.53108, -0.07367},
		{-0.10208, 1.10813, -0.00605},
		{-0.00327, -0.07276, 1.07602},
	}
)

// acesFilmic is the Stephen Hill fit, with exposure pre-scaled by 1/0.6.
func acesFilmic(c [3]float32, exposure float32) [3]float32 {
	c = scale3(c, exposure/0.6)
	c = mul3(acesInput, c)
	for i := range c {
		c[i] = rrtAndODTFit(c[i])
	}
	return saturate3(mul3(acesOutput, c))
}

func rrtAndODTFit(v float32) float32 {
	a := v*(v+0.0245786) - 0.000090537
	b := v*(0.983729*v+0.4329510) + 0.238081
	return a / b
}

// LinearToSRGB applies the sRGB transfer function to one channel.
func LinearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}

func scale3(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}

func mul3(m [3][3]float32, c [3]float32) [3]float32 {
	var out [3]float32
	for r := 0; r < 3; r++ {
		out[r] = m[r][0]*c[0] + m[r][1]*c[1] + m[r][2]*c[2]
	}
	return out
}

func saturate3(c [3]float32) [3]float32 {
	for i := range c {
		c[i] = math32.Max(0, math32.Min(1, c[i]))
	}
	return c
}
