package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
)

// Outline is a rectangle to be drawn on an overlay.
type Outline struct {
	Rect  image.Rectangle // relative to the image's top-left corner
	Color string          // "#RRGGBB" or "#RRGGBBAA"
}

// OverlayResult contains an image with outlines drawn on top.
type OverlayResult struct {
	CropResult
	Outlines int `json:"outlines"`
}

// DrawOutlines copies img and draws a one-pixel border around every outline.
// Parts of an outline that fall outside the image are clipped.
func DrawOutlines(img image.Image, outlines []Outline) (*OverlayResult, error) {
	b := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(result, result.Bounds(), img, b.Min, draw.Src)

	for _, o := range outlines {
		c, err := parseHexColor(o.Color)
		if err != nil {
			return nil, fmt.Errorf("outline %v: %w", o.Rect, err)
		}
		drawRect(result, o.Rect, c)
	}

	encoded, err := EncodePNG(result)
	if err != nil {
		return nil, err
	}
	return &OverlayResult{CropResult: *encoded, Outlines: len(outlines)}, nil
}

func drawRect(img *image.RGBA, r image.Rectangle, c color.NRGBA) {
	if r.Empty() {
		return
	}
	set := func(x, y int) {
		if (image.Point{X: x, Y: y}).In(img.Rect) {
			img.Set(x, y, c)
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		set(x, r.Min.Y)
		set(x, r.Max.Y-1)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		set(r.Min.X, y)
		set(r.Max.X-1, y)
	}
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}
