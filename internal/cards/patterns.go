package cards

// UnknownRank is returned when no reference pattern is close enough.
const UnknownRank = "U"

// Ranks lists the rank labels in pattern table order.
var Ranks = [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// RankPattern is the reference density grid of one rank.
type RankPattern struct {
	Rank  string
	Cells DensityVector
}

// rankPatterns were averaged over sample cards of every suit.
var rankPatterns = [len(Ranks)]RankPattern{
	{"2", DensityVector{40, 45, 69, 0, 17, 62, 55, 67, 28}},
	{"3", DensityVector{31, 51, 80, 0, 60, 47, 43, 29, 71}},
	{"4", DensityVector{0, 35, 62, 34, 26, 62, 36, 42, 77}},
	{"5", DensityVector{58, 43, 42, 44, 42, 57, 38, 29, 69}},
	{"6", DensityVector{44, 49, 48, 83, 40, 56, 63, 31, 60}},
	{"7", DensityVector{40, 42, 76, 0, 33, 54, 17, 64, 3}},
	{"8", DensityVector{51, 44, 63, 51, 47, 70, 63, 31, 57}},
	{"9", DensityVector{51, 44, 60, 54, 45, 63, 31, 28, 65}},
	{"10", DensityVector{56, 47, 50, 38, 39, 33, 38, 49, 51}},
	{"J", DensityVector{0, 0, 36, 0, 0, 37, 37, 32, 65}},
	{"Q", DensityVector{42, 45, 55, 54, 4, 34, 51, 39, 89}},
	{"K", DensityVector{58, 17, 51, 74, 71, 3, 60, 11, 57}},
	{"A", DensityVector{2, 76, 7, 33, 30, 45, 55, 31, 59}},
}

// Patterns returns a copy of the reference pattern table in rank order.
func Patterns() []RankPattern {
	out := make([]RankPattern, len(rankPatterns))
	copy(out, rankPatterns[:])
	return out
}

// PatternFor returns the reference pattern of rank.
func PatternFor(rank string) (RankPattern, bool) {
	for _, p := range rankPatterns {
		if p.Rank == rank {
			return p, true
		}
	}
	return RankPattern{}, false
}
