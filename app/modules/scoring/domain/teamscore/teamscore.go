// Package teamscore aggregates player hole scores into team scores. The
// method is selected purely by the "calculation" field on option data, never
// by game identity.
package teamscore

import "sort"

// Methods accepted by Calculate.
const (
	MethodBestBall  = "best_ball"
	MethodSum       = "sum"
	MethodWorstBall = "worst_ball"
	MethodAverage   = "average"
)

// Result carries the selected score plus the metrics condition expressions
// read regardless of method.
type Result struct {
	Score   float64
	LowBall float64
	Total   float64
	Average float64
}

// Calculate aggregates the scored players of a team. ok is false when no
// player has a score yet; the caller surfaces that as an incomplete-hole
// warning rather than treating 0 as a real score.
func Calculate(method string, playerScores []float64) (Result, bool) {
	if len(playerScores) == 0 {
		return Result{}, false
	}
	res := Result{LowBall: playerScores[0]}
	worst := playerScores[0]
	for _, s := range playerScores {
		if s < res.LowBall {
			res.LowBall = s
		}
		if s > worst {
			worst = s
		}
		res.Total += s
	}
	res.Average = res.Total / float64(len(playerScores))

	switch method {
	case MethodSum:
		res.Score = res.Total
	case MethodWorstBall:
		res.Score = worst
	case MethodAverage:
		res.Score = res.Average
	default:
		// Best ball is the default when the option names no method.
		res.Score = res.LowBall
	}
	return res, true
}

// VegasResult is the digit-concatenated team score.
type VegasResult struct {
	Score   float64
	Flipped bool
	Digits  []int
}

// Vegas concatenates team digits low-first (scores 4 and 5 become 45). An
// opponent birdie flips the order to high-first unless birdies_cancel_flip
// is on and this team also made birdie or eagle; an opponent eagle is only
// cancelled by a matching eagle.
func Vegas(playerScores []int, opponentBirdie, opponentEagle, teamBirdie, teamEagle, birdiesCancelFlip bool) VegasResult {
	digits := append([]int(nil), playerScores...)
	sort.Ints(digits)
	if len(digits) < 2 {
		return VegasResult{Digits: digits}
	}

	flip := false
	if opponentBirdie && (!birdiesCancelFlip || !(teamBirdie || teamEagle)) {
		flip = true
	}
	if opponentEagle && (!birdiesCancelFlip || !teamEagle) {
		flip = true
	}
	if flip {
		sort.Sort(sort.Reverse(sort.IntSlice(digits)))
	}

	score := 0
	for _, d := range digits {
		score = score*10 + d
	}
	return VegasResult{Score: float64(score), Flipped: flip, Digits: digits}
}
