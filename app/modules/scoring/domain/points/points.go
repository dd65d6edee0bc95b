// Package points converts ranks, junk and multipliers into point totals.
package points

// TableEntry awards Points to the item holding (Rank, TieCount).
type TableEntry struct {
	Rank     int     `json:"rank"`
	TieCount int     `json:"tieCount"`
	Points   float64 `json:"points"`
}

// FromTable looks up the exact (rank, tieCount) pair. No entry means 0; the
// table never guesses.
func FromTable(rank, tieCount int, table []TableEntry) float64 {
	for _, e := range table {
		if e.Rank == rank && e.TieCount == tieCount {
			return e.Points
		}
	}
	return 0
}

// Calculate applies the points formula: (base + sum of junk) * product of
// multipliers. No multipliers means a neutral product of 1.
func Calculate(base float64, junkValues, multiplierValues []float64) float64 {
	total := base
	for _, j := range junkValues {
		total += j
	}
	product := 1.0
	for _, m := range multiplierValues {
		product *= m
	}
	return total * product
}

// Split returns the arithmetic mean, used when tied items share overlapping
// rank prizes. Empty input yields 0.
func Split(pointsToSplit []float64) float64 {
	if len(pointsToSplit) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range pointsToSplit {
		sum += p
	}
	return sum / float64(len(pointsToSplit))
}

// ForPosition awards a tied block the average of the tieCount consecutive
// rank prizes starting at rank: ties consume the following ranks' prizes.
func ForPosition(rank, tieCount int, pointsPerRank func(rank int) float64) float64 {
	if tieCount <= 0 {
		return 0
	}
	prizes := make([]float64, 0, tieCount)
	for r := rank; r < rank+tieCount; r++ {
		prizes = append(prizes, pointsPerRank(r))
	}
	return Split(prizes)
}
