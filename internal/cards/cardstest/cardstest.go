// Package cardstest builds synthetic cards and table screenshots whose rank
// glyphs measure exactly like a given density vector.
package cardstest

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"testing"

	"github.com/ironsheep/card-tools-mcp/internal/cards"
)

// Card geometry. A 100x150 card puts its rank region at (10,0)-(60,50), the
// suit strip at (36,118)-(100,150), the background probe at (50,75) and the
// ink probe at (66,120).
const (
	CardWidth  = 100
	CardHeight = 150

	glyphX    = 15 // 3x3 cells of glyphCell pixels start here
	glyphY    = 3
	glyphCell = 15
)

// Table geometry: a 1600x2400 table gives a band at rows [1220,1370), slots
// 158 wide starting at SlotStart(0..4) and the presence row at PresenceRow.
const (
	Width, Height = 1600, 2400
	BandTop       = 1220
	PresenceRow   = 1244
	cardInset     = 20
)

var slotStarts = [cards.MaxCards]int{360, 544, 728, 912, 1096}

// Palette.
var (
	White    = color.RGBA{255, 255, 255, 255}
	Filler   = color.RGBA{128, 128, 128, 255} // neither background nor ink
	BlackInk = color.RGBA{0, 0, 0, 255}
	RedInk   = color.RGBA{200, 0, 0, 255}
	Green    = color.RGBA{0, 100, 0, 255}
)

// SuitMark is where the suit mark is painted on a card.
var SuitMark = image.Rect(60, 119, 80, 140)

// InkFor returns the ink color of suit s.
func InkFor(s cards.Suit) color.RGBA {
	if s == cards.Hearts || s == cards.Diamonds {
		return RedInk
	}
	return BlackInk
}

// Fill paints r with c.
func Fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// inkPixels returns the fewest pixels of a total-pixel cell that measure as
// pct percent ink.
func inkPixels(pct, total int) int {
	for n := 0; n <= total; n++ {
		if int(float64(n)/float64(total)*100) == pct {
			return n
		}
	}
	return total
}

// PaintCard draws a card at origin whose rank glyph has exactly the given ink
// percentages per cell and whose suit mark reads as s.
func PaintCard(dst draw.Image, origin image.Point, cells cards.DensityVector, s cards.Suit) {
	ink := InkFor(s)
	Fill(dst, image.Rect(0, 0, CardWidth, CardHeight).Add(origin), White)

	const total = glyphCell * glyphCell
	for k, pct := range cells {
		cx := glyphX + (k%3)*glyphCell
		cy := glyphY + (k/3)*glyphCell
		n := inkPixels(pct, total)
		for i := 0; i < total; i++ {
			c := Filler
			if i < n {
				c = ink
			}
			dst.Set(origin.X+cx+i%glyphCell, origin.Y+cy+i/glyphCell, c)
		}
	}

	Fill(dst, SuitMark.Add(origin), ink)
	if s == cards.Spades || s == cards.Diamonds {
		// Probe row of the trimmed mark: only two exact ink pixels.
		row := image.Rect(SuitMark.Min.X+2, SuitMark.Min.Y+2, SuitMark.Max.X, SuitMark.Min.Y+3)
		Fill(dst, row.Add(origin), Filler)
	}
}

// CardWithCells returns a single card image with the given glyph densities.
func CardWithCells(cells cards.DensityVector, s cards.Suit) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CardWidth, CardHeight))
	PaintCard(img, image.Point{}, cells, s)
	return img
}

// Card returns a single card image for code ("10h", "Qs", ...), its glyph
// measuring exactly like the rank's reference pattern.
func Card(t testing.TB, code string) *image.RGBA {
	t.Helper()
	cells, suit := parse(t, code)
	return CardWithCells(cells, suit)
}

// SlotStart returns the left edge of slot.
func SlotStart(slot int) int {
	return slotStarts[slot]
}

// CardOrigin returns the top-left corner of the card painted into slot.
func CardOrigin(slot int) image.Point {
	return image.Pt(slotStarts[slot]+cardInset, BandTop)
}

// Table paints one card per code into consecutive slots on a green table.
// An empty code leaves its slot empty.
func Table(t testing.TB, codes ...string) *image.RGBA {
	t.Helper()
	if len(codes) > cards.MaxCards {
		t.Fatalf("at most %d cards fit on a table, got %d", cards.MaxCards, len(codes))
	}
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	Fill(img, img.Bounds(), Green)
	for slot, code := range codes {
		if code == "" {
			continue
		}
		cells, suit := parse(t, code)
		PaintCard(img, CardOrigin(slot), cells, suit)
	}
	return img
}

// WritePNG encodes img to path.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
}

func parse(t testing.TB, code string) (cards.DensityVector, cards.Suit) {
	t.Helper()
	if len(code) < 2 {
		t.Fatalf("bad card code %q", code)
	}
	rank, suit := code[:len(code)-1], cards.Suit(code[len(code)-1:])
	p, ok := cards.PatternFor(rank)
	if !ok {
		t.Fatalf("no pattern for rank %q", rank)
	}
	return p.Cells, suit
}
