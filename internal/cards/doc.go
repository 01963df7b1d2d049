// Package cards reads playing cards out of a card-table screenshot.
//
// The pipeline is template matching over fixed geometry, nothing is learned
// or detected:
//
//  1. Segment cuts the composite into at most MaxCards card images using
//     proportional slot coordinates (see Layout).
//  2. ClassifyRank trims the rank glyph in the card's upper-left corner,
//     reduces it to a 3x3 ink density grid and picks the closest entry of
//     the reference pattern table.
//  3. ClassifySuit trims the suit mark near the bottom-right corner and
//     decides red/black from its center pixel, then tells the two suits of a
//     color apart by counting ink pixels on one row.
//
// Colors are sampled at fixed relative points of each card: the center is
// assumed to be background and the point at 2/3 width, 4/5 height is assumed
// to be ink.
//
// Everything here is a pure function of the input image; the pattern table is
// read-only. Different images may be processed concurrently.
package cards
