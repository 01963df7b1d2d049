package cards_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/card-tools-mcp/internal/cards"
	"github.com/ironsheep/card-tools-mcp/internal/cards/cardstest"
	"github.com/ironsheep/card-tools-mcp/internal/imaging"
)

var allSuits = []cards.Suit{cards.Clubs, cards.Diamonds, cards.Hearts, cards.Spades}

func TestClassifyRank_ReferenceSamples(t *testing.T) {
	for _, rank := range cards.Ranks {
		for _, s := range allSuits {
			code := rank + string(s)
			t.Run(code, func(t *testing.T) {
				got, err := cards.ClassifyRank(cardstest.Card(t, code))
				if err != nil {
					t.Fatalf("ClassifyRank failed: %v", err)
				}
				if got != rank {
					t.Errorf("rank: got %s, want %s", got, rank)
				}
			})
		}
	}
}

func TestRankVector_MatchesPattern(t *testing.T) {
	for _, p := range cards.Patterns() {
		t.Run(p.Rank, func(t *testing.T) {
			v, err := cards.RankVector(cardstest.CardWithCells(p.Cells, cards.Hearts))
			if err != nil {
				t.Fatalf("RankVector failed: %v", err)
			}
			if v != p.Cells {
				t.Errorf("vector: got %v, want %v", v, p.Cells)
			}
		})
	}
}

func TestDensityGrid(t *testing.T) {
	ink := imaging.NewColor(0, 0, 0)

	t.Run("all ink", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 9, 9))
		cardstest.Fill(img, img.Bounds(), color.RGBA{20, 20, 20, 255}) // within 30 of ink
		want := cards.DensityVector{100, 100, 100, 100, 100, 100, 100, 100, 100}
		if got := cards.DensityGrid(img, ink); got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("threshold is exclusive", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 3, 3))
		cardstest.Fill(img, img.Bounds(), color.RGBA{30, 0, 0, 255})
		if got := cards.DensityGrid(img, ink); got != (cards.DensityVector{}) {
			t.Errorf("got %v, want all zero", got)
		}
	})

	t.Run("one cell", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 6, 6))
		cardstest.Fill(img, img.Bounds(), cardstest.White)
		cardstest.Fill(img, image.Rect(4, 2, 6, 4), cardstest.BlackInk) // center-right cell
		want := cards.DensityVector{0, 0, 0, 0, 0, 100, 0, 0, 0}
		if got := cards.DensityGrid(img, ink); got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("share truncates like the reference patterns", func(t *testing.T) {
		// 29 of 100 pixels is 28.999... percent as a float ratio.
		img := image.NewRGBA(image.Rect(0, 0, 30, 30))
		cardstest.Fill(img, img.Bounds(), cardstest.White)
		for i := 0; i < 29; i++ {
			img.Set(i%10, i/10, cardstest.BlackInk)
		}
		if got := cards.DensityGrid(img, ink); got[0] != 28 {
			t.Errorf("cell 0: got %d, want 28", got[0])
		}
	})

	t.Run("remainder pixels dropped", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 7, 7))
		cardstest.Fill(img, img.Bounds(), cardstest.White)
		cardstest.Fill(img, image.Rect(6, 0, 7, 7), cardstest.BlackInk)
		cardstest.Fill(img, image.Rect(0, 6, 7, 7), cardstest.BlackInk)
		if got := cards.DensityGrid(img, ink); got != (cards.DensityVector{}) {
			t.Errorf("got %v, want all zero", got)
		}
	})

	t.Run("too small for cells", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 2, 10))
		cardstest.Fill(img, img.Bounds(), cardstest.BlackInk)
		if got := cards.DensityGrid(img, ink); got != (cards.DensityVector{}) {
			t.Errorf("got %v, want all zero", got)
		}
	})
}

func TestDensityGrid_Range(t *testing.T) {
	for _, p := range cards.Patterns() {
		for _, s := range []cards.Suit{cards.Clubs, cards.Hearts} {
			v, err := cards.RankVector(cardstest.CardWithCells(p.Cells, s))
			if err != nil {
				t.Fatalf("RankVector(%s%s) failed: %v", p.Rank, s, err)
			}
			for i, c := range v {
				if c < 0 || c > 100 {
					t.Errorf("%s%s cell %d = %d out of [0,100]", p.Rank, s, i, c)
				}
			}
		}
	}
}

func TestMatchRank(t *testing.T) {
	two, _ := cards.PatternFor("2")

	atLimit := two.Cells
	atLimit[3] += 50
	atLimit[4] += 50

	overLimit := atLimit
	overLimit[4]++

	tie := cards.DensityVector{51, 44, 63, 51, 47, 70, 34, 31, 57} // 29 from both 8 and 9

	tests := []struct {
		name string
		v    cards.DensityVector
		want string
	}{
		{"exact pattern", two.Cells, "2"},
		{"difference of exactly 100 still completes", atLimit, "2"},
		{"difference over 100 is pruned", overLimit, cards.UnknownRank},
		{"tie goes to earlier pattern", tie, "8"},
		{"nothing close", cards.DensityVector{100, 100, 100, 100, 100, 100, 100, 100, 100}, cards.UnknownRank},
		{"empty grid", cards.DensityVector{}, cards.UnknownRank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cards.MatchRank(tt.v); got != tt.want {
				t.Errorf("MatchRank(%v): got %s, want %s", tt.v, got, tt.want)
			}
		})
	}
}

func TestClassifyRank_Errors(t *testing.T) {
	t.Run("blank card", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, cardstest.CardWidth, cardstest.CardHeight))
		cardstest.Fill(img, img.Bounds(), cardstest.White)
		if _, err := cards.ClassifyRank(img); !errors.Is(err, imaging.ErrNoForeground) {
			t.Errorf("got %v, want ErrNoForeground", err)
		}
	})

	t.Run("too small", func(t *testing.T) {
		img := image.NewRGBA(image.Rect(0, 0, 40, 20))
		if _, err := cards.ClassifyRank(img); !errors.Is(err, cards.ErrCardTooSmall) {
			t.Errorf("got %v, want ErrCardTooSmall", err)
		}
	})
}

func TestPatterns_ReturnsCopy(t *testing.T) {
	p := cards.Patterns()
	p[0].Cells[0] = 99
	p[0].Rank = "Z"
	if again, _ := cards.PatternFor("2"); again.Cells[0] != 40 {
		t.Errorf("pattern table was mutated: %v", again.Cells)
	}
	if len(cards.Patterns()) != len(cards.Ranks) {
		t.Errorf("Patterns: got %d entries, want %d", len(cards.Patterns()), len(cards.Ranks))
	}
}
