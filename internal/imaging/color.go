package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a packed 24-bit RGB value laid out as 0xRRGGBB.
type Color uint32

// Common reference colors.
const (
	White Color = 0xFFFFFF
	Black Color = 0x000000
)

// NewColor packs three 8-bit channels into a Color.
func NewColor(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R returns the red channel.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c Color) B() uint8 { return uint8(c) }

// RGBA implements color.Color so a Color can be drawn directly.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xFF}.RGBA()
}

// String formats the color as "#RRGGBB".
func (c Color) String() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xFFFFFF)
}

// ColorOf converts any color.Color to a packed Color, dropping alpha.
func ColorOf(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return NewColor(n.R, n.G, n.B)
}

// ColorAt returns the color at (x, y) relative to the image's top-left corner.
// The caller is responsible for staying within bounds.
func ColorAt(img image.Image, x, y int) Color {
	origin := img.Bounds().Min
	return ColorOf(img.At(origin.X+x, origin.Y+y))
}

// Distance is the Chebyshev distance between two colors: the largest of the
// three per-channel absolute differences, in [0,255].
func Distance(c1, c2 Color) int {
	return max(absDiff(c1.R(), c2.R()), absDiff(c1.G(), c2.G()), absDiff(c1.B(), c2.B()))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// SampleColor extracts the color at a specific pixel coordinate.
//
// Returns ErrOutOfBounds if (x, y) lies outside the image.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	b := img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside %dx%d image: %w", x, y, b.Dx(), b.Dy(), ErrOutOfBounds)
	}
	return describeColor(ColorAt(img, x, y)), nil
}

func describeColor(c Color) *ColorResult {
	cf := colorful.Color{
		R: float64(c.R()) / 255.0,
		G: float64(c.G()) / 255.0,
		B: float64(c.B()) / 255.0,
	}
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return &ColorResult{
		Hex: strings.ToUpper(cf.Hex()),
		RGB: RGBColor{R: c.R(), G: c.G(), B: c.B()},
		HSL: HSLColor{H: int(math.Round(h)), S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
	}
}
