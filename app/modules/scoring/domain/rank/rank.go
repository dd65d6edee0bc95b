// Package rank orders scored items with golf tie semantics: tied items share
// a rank and the next distinct score's rank skips past the tie block.
package rank

import "sort"

// Direction selects which score is better.
type Direction string

const (
	// Lower is the golf convention for strokes.
	Lower Direction = "lower"
	// Higher is used for points.
	Higher Direction = "higher"
)

// Ranked pairs an item with its computed rank. TieCount is the number of
// items sharing the rank (1 when untied).
type Ranked[T any] struct {
	Item     T
	Score    float64
	Rank     int
	TieCount int
}

// WithTies sorts items by score and assigns ranks. Scores [3,3,4,5] with
// direction Lower yield ranks [1,1,3,4]. The sort is stable, so items with
// equal scores keep their input order.
func WithTies[T any](items []T, score func(T) float64, dir Direction) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	for _, it := range items {
		out = append(out, Ranked[T]{Item: it, Score: score(it)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Higher {
			return out[i].Score > out[j].Score
		}
		return out[i].Score < out[j].Score
	})

	for i := 0; i < len(out); {
		j := i
		for j < len(out) && out[j].Score == out[i].Score {
			j++
		}
		for k := i; k < j; k++ {
			out[k].Rank = i + 1
			out[k].TieCount = j - i
		}
		i = j
	}
	return out
}

// Winners returns the items ranked first.
func Winners[T any](ranked []Ranked[T]) []Ranked[T] {
	return AtRank(ranked, 1)
}

// AtRank returns the items holding the given rank.
func AtRank[T any](ranked []Ranked[T], r int) []Ranked[T] {
	var out []Ranked[T]
	for _, item := range ranked {
		if item.Rank == r {
			out = append(out, item)
		}
	}
	return out
}

// HasTieAt reports whether more than one item holds the given rank.
func HasTieAt[T any](ranked []Ranked[T], r int) bool {
	return len(AtRank(ranked, r)) > 1
}
