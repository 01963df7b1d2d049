// Package imaging provides the pixel-grid plumbing used by the card reader.
//
// It covers loading and caching decoded images, reading packed RGB colors,
// the Chebyshev color distance, rectangular sub-image extraction, background
// trimming, and rendering debug overlays. All operations work with standard
// Go image.Image values.
//
// # Coordinate System
//
// Coordinates are 0-based and relative to the top-left corner of the image
// they are applied to, whatever its Bounds().Min happens to be:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Rectangles are half-open: Min is inclusive, Max is exclusive
//
// Sub-images produced by this package are copies whose origin is (0,0).
//
// # Colors
//
// Pixels are reduced to 24-bit RGB (8 bits per channel). Alpha is ignored:
// colors are read non-premultiplied, so a translucent pixel keeps its
// channel values.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Every other function is a pure
// function of its arguments and may be called concurrently on shared,
// unmodified images.
//
// # Error Handling
//
// Functions return errors for:
//   - Regions whose corners are inverted or empty (ErrInvalidRegion)
//   - Rectangles or points outside the image (ErrOutOfBounds)
//   - Trimming an image with no foreground pixel (ErrNoForeground)
//   - File I/O and decoding failures (*DecodeError, carrying the path)
package imaging
