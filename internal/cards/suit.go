package cards

import (
	"fmt"
	"image"

	"github.com/ironsheep/card-tools-mcp/internal/imaging"
)

// Suit is a one-letter suit code.
type Suit string

// Suit codes.
const (
	Clubs    Suit = "c"
	Diamonds Suit = "d"
	Hearts   Suit = "h"
	Spades   Suit = "s"
)

const (
	// SuitStripHeight is the height of the bottom strip holding the suit mark.
	SuitStripHeight = 32

	// suitStripInset shifts the strip right of the first third of the card.
	suitStripInset = 3

	// RedCutoff is the red channel value below which a mark is black.
	RedCutoff = 40

	// SuitInkCount separates spades from clubs and diamonds from hearts:
	// fewer exact ink pixels on the probe row means spade or diamond.
	SuitInkCount = 5

	suitProbeRow = 2
)

// SuitRegion returns the strip near the bottom-right corner searched for the
// suit mark.
func SuitRegion(card image.Image) image.Rectangle {
	w, h := card.Bounds().Dx(), card.Bounds().Dy()
	return image.Rect(w/3+suitStripInset, h-SuitStripHeight, w, h)
}

// ClassifySuit reads the suit of a card image. Any card that can be trimmed
// resolves to one of the four suits.
func ClassifySuit(card image.Image) (Suit, error) {
	if err := checkCard(card); err != nil {
		return "", err
	}
	ink := InkColor(card)

	strip, err := imaging.SubImage(card, SuitRegion(card))
	if err != nil {
		return "", fmt.Errorf("suit region: %w", err)
	}
	mark, err := imaging.Trim(strip, BackgroundColor(card))
	if err != nil {
		return "", fmt.Errorf("suit mark: %w", err)
	}

	w, h := mark.Bounds().Dx(), mark.Bounds().Dy()
	if h <= suitProbeRow {
		return "", fmt.Errorf("suit mark %dx%d has no row %d: %w", w, h, suitProbeRow, ErrCardTooSmall)
	}

	inked := 0
	for x := 0; x < w; x++ {
		if imaging.ColorAt(mark, x, suitProbeRow) == ink {
			inked++
		}
	}

	black := imaging.ColorAt(mark, w/2, h/2).R() < RedCutoff
	few := inked < SuitInkCount
	switch {
	case black && few:
		return Spades, nil
	case black:
		return Clubs, nil
	case few:
		return Diamonds, nil
	default:
		return Hearts, nil
	}
}
