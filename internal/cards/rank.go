package cards

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/card-tools-mcp/internal/imaging"
)

const (
	// InkThreshold is the distance below which a pixel counts as ink.
	InkThreshold = 30

	// MaxPatternDiff abandons a pattern once its running cell difference
	// exceeds it.
	MaxPatternDiff = 100

	gridSize = 3
)

// DensityVector holds the percentage (0-100) of ink pixels in each cell of a
// 3x3 grid, row by row.
type DensityVector [gridSize * gridSize]int

// DensityGrid splits region into 3x3 equal cells, dropping the remainder
// columns and rows, and measures the ink share of each cell. A cell with no
// pixels scores 0.
func DensityGrid(region image.Image, ink imaging.Color) DensityVector {
	var v DensityVector
	b := region.Bounds()
	cw, ch := b.Dx()/gridSize, b.Dy()/gridSize
	total := cw * ch
	if total == 0 {
		return v
	}

	for yc := 0; yc < gridSize; yc++ {
		for xc := 0; xc < gridSize; xc++ {
			inked := 0
			for y := yc * ch; y < (yc+1)*ch; y++ {
				for x := xc * cw; x < (xc+1)*cw; x++ {
					if imaging.Distance(imaging.ColorAt(region, x, y), ink) < InkThreshold {
						inked++
					}
				}
			}
			v[yc*gridSize+xc] = cellPercent(inked, total)
		}
	}
	return v
}

// cellPercent is the truncated ink share of a cell. The reference patterns
// were measured as a float ratio scaled by 100, so a share such as 29/100
// scores 28, not 29.
func cellPercent(inked, total int) int {
	return int(float64(inked) / float64(total) * 100)
}

// RankRegion returns the upper-left area of a card where the rank glyph is
// printed: half the card width starting at a tenth of it, top third.
func RankRegion(card image.Image) image.Rectangle {
	w, h := card.Bounds().Dx(), card.Bounds().Dy()
	return image.Rect(w/10, 0, w/10+w/2, h/3)
}

// RankVector computes the density grid of the card's trimmed rank glyph.
func RankVector(card image.Image) (DensityVector, error) {
	if err := checkCard(card); err != nil {
		return DensityVector{}, err
	}
	region, err := imaging.SubImage(card, RankRegion(card))
	if err != nil {
		return DensityVector{}, fmt.Errorf("rank region: %w", err)
	}
	glyph, err := imaging.Trim(region, BackgroundColor(card))
	if err != nil {
		return DensityVector{}, fmt.Errorf("rank glyph: %w", err)
	}
	return DensityGrid(glyph, InkColor(card)), nil
}

// MatchRank returns the rank whose pattern is closest to v by summed absolute
// cell difference.
//
// Cells are compared in order and a pattern is dropped as soon as its running
// sum exceeds MaxPatternDiff, even if it might otherwise have won. Ties go to
// the earlier pattern. UnknownRank is returned when every pattern is dropped.
func MatchRank(v DensityVector) string {
	best, bestDiff := UnknownRank, math.MaxInt
	for _, p := range rankPatterns {
		diff, ok := patternDiff(v, p.Cells)
		if ok && diff < bestDiff {
			best, bestDiff = p.Rank, diff
		}
	}
	return best
}

func patternDiff(v, pattern DensityVector) (int, bool) {
	acc := 0
	for i := range v {
		d := v[i] - pattern[i]
		if d < 0 {
			d = -d
		}
		acc += d
		if acc > MaxPatternDiff {
			return acc, false
		}
	}
	return acc, true
}

// ClassifyRank reads the rank label of a card image, or UnknownRank.
func ClassifyRank(card image.Image) (string, error) {
	v, err := RankVector(card)
	if err != nil {
		return "", err
	}
	return MatchRank(v), nil
}
