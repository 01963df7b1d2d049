package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// BackgroundThreshold is the color distance above which a pixel is treated
// as foreground when trimming.
const BackgroundThreshold = 50

var (
	// ErrOutOfBounds is returned when a point or rectangle does not fit
	// inside the image it is applied to.
	ErrOutOfBounds = errors.New("outside image bounds")

	// ErrInvalidRegion is returned for corner coordinates that do not
	// describe a rectangle running left to right and top to bottom.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrNoForeground is returned by Trim when some edge scan never meets a
	// pixel that differs from the background.
	ErrNoForeground = errors.New("no foreground found")
)

// SubImage copies the half-open rectangle r, given relative to the image's
// top-left corner, into a new image whose origin is (0,0).
//
// The rectangle must be non-empty and lie entirely inside the image.
func SubImage(img image.Image, r image.Rectangle) (image.Image, error) {
	b := img.Bounds()
	if r.Empty() {
		return nil, fmt.Errorf("region %v must have positive width and height: %w", r, ErrInvalidRegion)
	}
	if r.Min.X < 0 || r.Min.Y < 0 || r.Max.X > b.Dx() || r.Max.Y > b.Dy() {
		return nil, fmt.Errorf("region %v in %dx%d image: %w", r, b.Dx(), b.Dy(), ErrOutOfBounds)
	}
	return imaging.Crop(img, r.Add(b.Min)), nil
}

// TrimBounds finds the tight bounding box of the foreground of img against
// the background color bg.
//
// The four edges are scanned inward together, one row or column per step;
// the first line holding a pixel further than BackgroundThreshold from bg
// fixes that edge and is never revisited. The returned rectangle is relative
// to the image's top-left corner and includes both boundary lines, so
// trimming an already trimmed image is a no-op.
//
// Returns ErrNoForeground if an edge is never found.
func TrimBounds(img image.Image, bg Color) (image.Rectangle, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	top, bottom, left, right := -1, -1, -1, -1

	fg := func(x, y int) bool {
		return Distance(ColorAt(img, x, y), bg) > BackgroundThreshold
	}

	zMax := max(w, h)
	for z := 0; z < zMax; z++ {
		if top >= 0 && bottom >= 0 && left >= 0 && right >= 0 {
			break
		}
		if z < h {
			for t := 0; t < w && (top < 0 || bottom < 0); t++ {
				if top < 0 && fg(t, z) {
					top = z
				}
				if bottom < 0 && fg(t, h-z-1) {
					bottom = h - z - 1
				}
			}
		}
		if z < w {
			for t := 0; t < h && (left < 0 || right < 0); t++ {
				if left < 0 && fg(z, t) {
					left = z
				}
				if right < 0 && fg(w-z-1, t) {
					right = w - z - 1
				}
			}
		}
	}

	if top < 0 || bottom < 0 || left < 0 || right < 0 {
		return image.Rectangle{}, fmt.Errorf("trim %dx%d image against %s: %w", w, h, bg, ErrNoForeground)
	}
	return image.Rect(left, top, right+1, bottom+1), nil
}

// Trim crops img to its foreground bounding box against bg.
// See TrimBounds for the scan rules and failure mode.
func Trim(img image.Image, bg Color) (image.Image, error) {
	r, err := TrimBounds(img, bg)
	if err != nil {
		return nil, err
	}
	return SubImage(img, r)
}

// CropResult contains a cropped image encoded as base64 PNG.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Region builds the rectangle (x1,y1)-(x2,y2). Unlike image.Rect it does not
// swap inverted corners: x1 must be < x2 and y1 must be < y2.
func Region(x1, y1, x2, y2 int) (image.Rectangle, error) {
	if x1 >= x2 || y1 >= y2 {
		return image.Rectangle{}, fmt.Errorf("(%d,%d)-(%d,%d): x1 must be < x2, y1 must be < y2: %w", x1, y1, x2, y2, ErrInvalidRegion)
	}
	return image.Rect(x1, y1, x2, y2), nil
}

// Crop extracts the region (x1,y1)-(x2,y2) and returns it as PNG, optionally
// resized by scale.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	r, err := Region(x1, y1, x2, y2)
	if err != nil {
		return nil, err
	}
	cropped, err := SubImage(img, r)
	if err != nil {
		return nil, err
	}

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.NearestNeighbor)
	}

	return EncodePNG(cropped)
}

// EncodePNG encodes img as a base64 PNG result.
func EncodePNG(img image.Image) (*CropResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &CropResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
