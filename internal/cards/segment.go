package cards

import (
	"fmt"
	"image"

	"github.com/ironsheep/card-tools-mcp/internal/imaging"
)

// MaxCards is the most cards a table image can hold.
const MaxCards = 5

// Table geometry, as fractions of the table image.
const (
	BandTopNum, BandBottomNum, BandDen = 122, 137, 240 // of height
	LeftNum, RightNum, ExtentDen       = 18, 62, 80    // of width
	SlotWidthNum, SlotGapNum, SlotDen  = 36, 6, 200    // of the extent
	PresenceRowOffset                  = 24            // rows below the band top
)

// PlaceholderGray marks a card outline alongside pure white.
var PlaceholderGray = imaging.NewColor(120, 120, 120)

// Layout is the slot geometry computed for one table size.
type Layout struct {
	Top, Height int // card band rows [Top, Top+Height)
	Left, Right int // slot starts run from Left while <= Right
	SlotWidth   int
	SlotGap     int
	PresenceRow int // row probed for a card in each slot
	TableWidth  int
	TableHeight int
}

// NewLayout computes the slot geometry for a width x height table image.
//
// Returns ErrTableTooSmall if a card cut from the band could not hold the suit
// strip or the slots would be empty.
func NewLayout(width, height int) (Layout, error) {
	top := BandTopNum * height / BandDen
	left := LeftNum * width / ExtentDen
	right := RightNum * width / ExtentDen
	l := Layout{
		Top:         top,
		Height:      BandBottomNum*height/BandDen - top,
		Left:        left,
		Right:       right,
		SlotWidth:   SlotWidthNum * (right - left) / SlotDen,
		SlotGap:     SlotGapNum * (right - left) / SlotDen,
		PresenceRow: top + PresenceRowOffset,
		TableWidth:  width,
		TableHeight: height,
	}
	if l.Height < MinCardHeight || l.Height <= PresenceRowOffset || l.SlotWidth < MinCardWidth {
		return Layout{}, fmt.Errorf("%dx%d gives %dx%d card slots: %w", width, height, l.SlotWidth, l.Height, ErrTableTooSmall)
	}
	return l, nil
}

// Slots returns the slot rectangles in left-to-right order, at most MaxCards,
// skipping any slot that would leave the image.
func (l Layout) Slots() []image.Rectangle {
	slots := make([]image.Rectangle, 0, MaxCards)
	for x := l.Left; x <= l.Right && len(slots) < MaxCards; x += l.SlotWidth + l.SlotGap {
		if x+l.SlotWidth > l.TableWidth {
			break
		}
		slots = append(slots, image.Rect(x, l.Top, x+l.SlotWidth, l.Top+l.Height))
	}
	return slots
}

// isCardEdge reports whether c is a color that only appears where a card is.
func isCardEdge(c imaging.Color) bool {
	return c == imaging.White || c == PlaceholderGray
}

// SegmentRects locates the cards of a table image.
//
// Each slot is probed along the presence row; the card spans from the first
// to the last white or placeholder-gray pixel found there, and the full band
// height. Slots without such a pixel hold no card. Rectangles come back in
// slot order, which is the physical left-to-right order.
//
// The last matching pixel is part of the card, so a card is one pixel wider
// than the crops the reference patterns were measured on, which stopped just
// before it. Regions and color probes derived from the width move by at most
// one pixel.
func SegmentRects(table image.Image) ([]image.Rectangle, error) {
	b := table.Bounds()
	l, err := NewLayout(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	var rects []image.Rectangle
	for _, slot := range l.Slots() {
		first, last := -1, -1
		for x := slot.Min.X; x < slot.Max.X; x++ {
			if isCardEdge(imaging.ColorAt(table, x, l.PresenceRow)) {
				if first < 0 {
					first = x
				}
				last = x
			}
		}
		if first < 0 {
			continue
		}
		rects = append(rects, image.Rect(first, slot.Min.Y, last+1, slot.Max.Y))
	}
	return rects, nil
}

// Segment cuts a table image into card images, left to right.
func Segment(table image.Image) ([]image.Image, error) {
	rects, err := SegmentRects(table)
	if err != nil {
		return nil, err
	}
	out := make([]image.Image, 0, len(rects))
	for _, r := range rects {
		img, err := imaging.SubImage(table, r)
		if err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, nil
}

// LayoutOverlay draws the card band, every slot, the presence row and the
// cards found on top of the table image, for checking the geometry against a
// new screenshot source.
func LayoutOverlay(table image.Image) (*imaging.OverlayResult, error) {
	b := table.Bounds()
	l, err := NewLayout(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	rects, err := SegmentRects(table)
	if err != nil {
		return nil, err
	}

	outlines := []imaging.Outline{
		{Rect: image.Rect(l.Left, l.Top, l.Right, l.Top+l.Height), Color: "#FFFF00"},
		{Rect: image.Rect(l.Left, l.PresenceRow, l.Right, l.PresenceRow+1), Color: "#FF00FF"},
	}
	for _, s := range l.Slots() {
		outlines = append(outlines, imaging.Outline{Rect: s, Color: "#0000FF"})
	}
	for _, r := range rects {
		outlines = append(outlines, imaging.Outline{Rect: r, Color: "#FF0000"})
	}
	return imaging.DrawOutlines(table, outlines)
}
