package pipeline

import (
	"fmt"

	scoringtypes "github.com/spicy-golf/scorekeeper/app/modules/scoring/domain"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/opts"
	"github.com/spicy-golf/scorekeeper/app/modules/scoring/domain/rank"
)

// computeCumulatives derives per-player and per-team totals across all
// computed holes, then cumulative ranks and, for two-team match play, the
// match status.
func (e *Engine) computeCumulatives(g *scoringtypes.Game, board *scoringtypes.Scoreboard, better string) {
	for _, p := range g.Players {
		board.Cumulative.Players[p.ID] = &scoringtypes.PlayerCumulative{PlayerID: p.ID}
	}

	holes := g.Scope.HoleNumbers()
	for _, n := range holes {
		hr := board.HoleResultFor(n)
		if hr == nil {
			continue
		}
		anyScore := false
		for _, pid := range orderedPlayerIDs(hr) {
			pr := hr.Players[pid]
			if !pr.HasScore {
				continue
			}
			anyScore = true
			pc := board.Cumulative.Players[pid]
			if pc == nil {
				continue
			}
			pc.GrossTotal += pr.Gross
			pc.PopsTotal += pr.Pops
			pc.NetTotal += pr.Net
			pc.HolesPlayed++
			for _, j := range pr.Junk {
				pc.JunkTotal += j.Value
			}
			// Players are credited with their team's hole total, which is
			// zero until the hole completes.
			if tr := hr.Teams[pr.TeamID]; tr != nil {
				pc.PointsTotal += tr.Points
			}
		}
		for _, tr := range orderedTeamResults(hr) {
			tc := board.Cumulative.Teams[tr.TeamID]
			if tc == nil {
				tc = &scoringtypes.TeamCumulative{TeamID: tr.TeamID}
				board.Cumulative.Teams[tr.TeamID] = tc
			}
			// RunningTotal already gates on completeness, so the final value
			// on the last hole is the cumulative points total.
			tc.PointsTotal = tr.RunningTotal
			for _, j := range tr.Junk {
				tc.JunkTotal += j.Value
			}
		}
		if anyScore {
			board.Meta.HolesPlayed = append(board.Meta.HolesPlayed, hr.Hole)
		}
	}

	rankPlayerCumulatives(board)
	rankTeamCumulatives(board, better)

	if opts.BoolForHole(scoringtypes.OptionNameMatchPlay, nil, g) {
		applyMatchStatus(g, board, better)
	}
}

// rankPlayerCumulatives ranks players who have played at least one hole by
// cumulative net, lower first.
func rankPlayerCumulatives(board *scoringtypes.Scoreboard) {
	var played []*scoringtypes.PlayerCumulative
	for _, pc := range board.Cumulative.Players {
		if pc.HolesPlayed > 0 {
			played = append(played, pc)
		}
	}
	ranked := rank.WithTies(played, func(p *scoringtypes.PlayerCumulative) float64 {
		return float64(p.NetTotal)
	}, rank.Lower)
	for _, r := range ranked {
		r.Item.Rank = r.Rank
		r.Item.TieCount = r.TieCount
	}
}

func rankTeamCumulatives(board *scoringtypes.Scoreboard, better string) {
	dir := rank.Higher
	if better == "lower" {
		dir = rank.Lower
	}
	var teams []*scoringtypes.TeamCumulative
	for _, tc := range board.Cumulative.Teams {
		teams = append(teams, tc)
	}
	ranked := rank.WithTies(teams, func(t *scoringtypes.TeamCumulative) float64 {
		return t.PointsTotal
	}, dir)
	for _, r := range ranked {
		r.Item.Rank = r.Rank
		r.Item.TieCount = r.TieCount
	}
}

// applyMatchStatus reports a two-team match in match-play terms. The match
// is over once the lead exceeds the holes remaining ("3 & 2"); otherwise the
// leader is "N UP" and a level match is all square.
func applyMatchStatus(g *scoringtypes.Game, board *scoringtypes.Scoreboard, better string) {
	holes := g.Scope.HoleNumbers()

	// Walk the consecutive fully scored prefix: the match state is only
	// settled through the last hole everyone has finished in order.
	var last *scoringtypes.HoleResult
	played := 0
	for _, n := range holes {
		hr := board.HoleResultFor(n)
		if hr == nil || !hr.Complete {
			break
		}
		last = hr
		played++
	}
	if last == nil {
		return
	}
	teams := orderedTeamResults(last)
	if len(teams) != 2 {
		return
	}

	diff := teams[0].RunningDiff
	leader, trailer := teams[0], teams[1]
	if diff < 0 {
		diff = -diff
		leader, trailer = trailer, leader
	}
	remaining := len(holes) - played
	lead := int(diff)

	var status string
	over := lead > remaining && lead > 0
	switch {
	case over && remaining > 0:
		status = fmt.Sprintf("%d & %d", lead, remaining)
	case over:
		status = fmt.Sprintf("%d", lead)
	case lead == 0:
		status = "AS"
	default:
		status = fmt.Sprintf("%d UP", lead)
	}
	board.Cumulative.MatchStatus = status

	lc := board.Cumulative.Teams[leader.TeamID]
	tc := board.Cumulative.Teams[trailer.TeamID]
	if lc == nil || tc == nil {
		return
	}
	lc.MatchOver, tc.MatchOver = over, over
	if lead == 0 {
		lc.MatchDiff, tc.MatchDiff = "AS", "AS"
		return
	}
	if over {
		lc.MatchDiff, tc.MatchDiff = status, status
		return
	}
	lc.MatchDiff = fmt.Sprintf("%d UP", lead)
	tc.MatchDiff = fmt.Sprintf("%d DN", lead)
}
