package model

// This module defines the color and pixel frame types shared by the
// animation engine and the strip backends

import (
	"fmt"
	"math"

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"github.com/lucasb-eyer/go-colorful"
)

// LEDCount is the number of addressable pixels the engine drives
const LEDCount = 5

// Color is an RGB triple with 8 bit channels, there is no alpha
type Color struct {
	R, G, B uint8
}

// Frame holds the colors for one rendered animation step, index 0 is the
// left most pixel of the strip
type Frame [LEDCount]Color

var (
	Black   = Color{0x00, 0x00, 0x00}
	White   = Color{0xFF, 0xFF, 0xFF}
	Red     = Color{0xFF, 0x00, 0x00}
	Green   = Color{0x00, 0xFF, 0x00}
	Blue    = Color{0x00, 0x00, 0xFF}
	Magenta = Color{0xFF, 0x00, 0xFF}
)

// Clamp01 limits v to the closed interval [0,1], NaN is treated as 0
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 1:
		return 1
	}
	return v
}

// Scale returns the color with every channel multiplied by intensity.  The
// intensity is clamped to [0,1] first and the scaled channel is truncated
// toward zero, matching an integer cast of the product.
func (c Color) Scale(intensity float64) Color {
	i := Clamp01(intensity)
	return Color{
		R: uint8(float64(c.R) * i),
		G: uint8(float64(c.G) * i),
		B: uint8(float64(c.B) * i),
	}
}

// IsBlack is true when all channels are off
func (c Color) IsBlack() bool {
	return c == Black
}

// Hex formats the color as #rrggbb
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return c.Hex()
}

// FromColorful converts a go-colorful color, clamping out of gamut values
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// ParseColor accepts #rrggbb and #rgb hex forms
func ParseColor(hex string) (c Color, err errors.Error) {
	if len(hex) == 4 && hex[0] == '#' {
		hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
	}
	parsed, errGo := colorful.Hex(hex)
	if errGo != nil {
		return Black, errors.Wrap(errGo).With("color", hex).With("stack", stack.Trace().TrimRuntime())
	}
	return FromColorful(parsed), nil
}

// MarshalText emits the hex form so colors read naturally in yaml and json
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts the forms understood by ParseColor
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// IsDark is true when every pixel in the frame is off
func (f Frame) IsDark() bool {
	for _, c := range f {
		if !c.IsBlack() {
			return false
		}
	}
	return true
}
