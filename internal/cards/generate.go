package cards

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Sample is a single-card image with a known rank.
type Sample struct {
	Name  string
	Rank  string
	Image image.Image
}

// ParseSampleName extracts rank and suit from a sample file name of the form
// "<rank><suit>[.anything].<ext>", e.g. "10h.png" or "5h.1.png".
func ParseSampleName(name string) (string, Suit, bool) {
	base := filepath.Base(name)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if len(base) < 2 {
		return "", "", false
	}
	rank, suit := base[:len(base)-1], Suit(base[len(base)-1:])
	switch suit {
	case Clubs, Diamonds, Hearts, Spades:
	default:
		return "", "", false
	}
	if _, ok := PatternFor(rank); !ok {
		return "", "", false
	}
	return rank, suit, true
}

// BuildPatterns derives a pattern table from labeled samples: each cell of a
// rank's pattern is the mean of that cell over the rank's samples, truncated.
// Every rank needs at least one sample.
func BuildPatterns(samples []Sample) ([]RankPattern, error) {
	vectors := make(map[string][]DensityVector, len(Ranks))
	for _, s := range samples {
		v, err := RankVector(s.Image)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", s.Name, err)
		}
		vectors[s.Rank] = append(vectors[s.Rank], v)
	}

	patterns := make([]RankPattern, 0, len(Ranks))
	for _, rank := range Ranks {
		vs := vectors[rank]
		if len(vs) == 0 {
			return nil, fmt.Errorf("no samples for rank %s", rank)
		}
		p := RankPattern{Rank: rank}
		cell := make([]float64, len(vs))
		for i := range p.Cells {
			for j, v := range vs {
				cell[j] = float64(v[i])
			}
			p.Cells[i] = int(stat.Mean(cell, nil))
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// FormatPattern renders a pattern as a table row, e.g.
// "{40, 45, 69, 0, 17, 62, 55, 67, 28}, // 2".
func FormatPattern(p RankPattern) string {
	cells := make([]string, len(p.Cells))
	for i, c := range p.Cells {
		cells[i] = fmt.Sprint(c)
	}
	return fmt.Sprintf("{%s}, // %s", strings.Join(cells, ", "), p.Rank)
}
