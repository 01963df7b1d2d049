package cards

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/ironsheep/card-tools-mcp/internal/imaging"
)

var (
	// ErrTableTooSmall is returned for composites too small for the slot
	// layout.
	ErrTableTooSmall = errors.New("table image too small for card layout")

	// ErrCardTooSmall is returned for card images too small to hold the rank
	// and suit regions.
	ErrCardTooSmall = errors.New("card image too small")
)

// Minimum card dimensions for which RankRegion and SuitRegion are non-empty.
const (
	MinCardWidth  = 5
	MinCardHeight = SuitStripHeight
)

// InkColor samples the color assumed to be the suit ink, at 2/3 of the width
// and 4/5 of the height.
func InkColor(card image.Image) imaging.Color {
	w, h := card.Bounds().Dx(), card.Bounds().Dy()
	return imaging.ColorAt(card, 2*w/3, 4*h/5)
}

// BackgroundColor samples the card's center pixel.
func BackgroundColor(card image.Image) imaging.Color {
	w, h := card.Bounds().Dx(), card.Bounds().Dy()
	return imaging.ColorAt(card, w/2, h/2)
}

func checkCard(card image.Image) error {
	w, h := card.Bounds().Dx(), card.Bounds().Dy()
	if w < MinCardWidth || h < MinCardHeight {
		return fmt.Errorf("%dx%d, need at least %dx%d: %w", w, h, MinCardWidth, MinCardHeight, ErrCardTooSmall)
	}
	return nil
}

// Card is one classified card.
type Card struct {
	Rank   string          `json:"rank"`
	Suit   Suit            `json:"suit"`
	Bounds image.Rectangle `json:"bounds"` // position in the table image, if segmented
}

// Code returns the "<rank><suit>" form, e.g. "10h".
func (c Card) Code() string {
	return c.Rank + string(c.Suit)
}

// Hand is a left-to-right sequence of cards read from one table image.
type Hand []Card

// String concatenates the card codes, e.g. "10h10s7d5h".
func (h Hand) String() string {
	var sb strings.Builder
	for _, c := range h {
		sb.WriteString(c.Code())
	}
	return sb.String()
}

// Classify reads rank and suit of a single card image.
func Classify(card image.Image) (Card, error) {
	rank, err := ClassifyRank(card)
	if err != nil {
		return Card{}, err
	}
	suit, err := ClassifySuit(card)
	if err != nil {
		return Card{}, err
	}
	return Card{Rank: rank, Suit: suit, Bounds: card.Bounds()}, nil
}

// ReadTable segments a table image and classifies every card found.
func ReadTable(table image.Image) (Hand, error) {
	rects, err := SegmentRects(table)
	if err != nil {
		return nil, err
	}

	hand := make(Hand, 0, len(rects))
	for i, r := range rects {
		img, err := imaging.SubImage(table, r)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		c, err := Classify(img)
		if err != nil {
			return nil, fmt.Errorf("card %d at %v: %w", i, r, err)
		}
		c.Bounds = r
		hand = append(hand, c)
	}
	return hand, nil
}

// ReadFile loads a table image from disk and reads its cards.
// Decoding failures are returned as *imaging.DecodeError.
func ReadFile(path string) (Hand, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	hand, err := ReadTable(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return hand, nil
}
