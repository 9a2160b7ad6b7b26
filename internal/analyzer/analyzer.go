// Package analyzer computes momentum statistics, per-set breakdowns,
// consistency scores, and key moments from an ingested match. Every
// function is a pure transformation over the immutable point sequence;
// independent matches can be analyzed in parallel with no coordination.
package analyzer

import (
	"fmt"
	"math"
	"sort"

	"github.com/courtside/go-tennis-metrics/internal/model"
)

// Fallback values when the final score cannot be derived from the data.
const (
	ScoreUnavailable = "Score unavailable"
	WinnerUnknown    = "Unknown"
)

// Analyze computes the full MatchStats record for a match.
func Analyze(m *model.Match) *model.MatchStats {
	stats := &model.MatchStats{
		MatchID:     m.ID,
		Player1:     m.Player1,
		Player2:     m.Player2,
		TotalPoints: len(m.Points),
	}

	if m.Has(model.FieldElapsedTime) {
		for _, p := range m.Points {
			if p.ElapsedSeconds > stats.MatchDuration {
				stats.MatchDuration = p.ElapsedSeconds
			}
		}
	}

	stats.FinalScore, stats.Winner, stats.P1Sets, stats.P2Sets = matchScore(m)
	momentumStats(m, stats)

	if m.Has(model.FieldSetNo) {
		stats.SetBreakdown = setBreakdown(m)
		stats.TotalSets = len(stats.SetBreakdown)
	}

	if stats.HasMomentum {
		p1, p2 := momentumSeries(m)
		stats.P1Consistency = Consistency(p1, p2)
		stats.P2Consistency = Consistency(p2, p1)
	}

	return stats
}

// matchScore derives the final set score from the per-point cumulative
// games-won columns. Games-won is cumulative within a set, so each set's
// final tally is its last row. Equal games or equal sets decide nothing.
// Any structural gap degrades to the fixed fallback tuple instead of an
// error.
func matchScore(m *model.Match) (score, winner string, p1Sets, p2Sets int) {
	if len(m.Points) == 0 || !m.Has(model.FieldSetNo) || !m.Has(model.FieldGamesWon) {
		return ScoreUnavailable, WinnerUnknown, 0, 0
	}

	type setGames struct{ p1, p2 int }
	final := make(map[int]setGames)
	var setNos []int
	for _, p := range m.Points {
		if _, seen := final[p.SetNo]; !seen {
			setNos = append(setNos, p.SetNo)
		}
		final[p.SetNo] = setGames{p.P1GamesWon, p.P2GamesWon}
	}
	sort.Ints(setNos)

	parts := make([]string, 0, len(setNos))
	for _, n := range setNos {
		g := final[n]
		parts = append(parts, fmt.Sprintf("%d-%d", g.p1, g.p2))
		switch {
		case g.p1 > g.p2:
			p1Sets++
		case g.p2 > g.p1:
			p2Sets++
		}
	}

	switch {
	case p1Sets > p2Sets:
		winner = m.Player1
	case p2Sets > p1Sets:
		winner = m.Player2
	default:
		winner = WinnerUnknown
	}
	return joinScore(parts), winner, p1Sets, p2Sets
}

func joinScore(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// momentumStats fills the momentum block of stats: per-player median and
// extrema, the swing count, and dominance metrics.
func momentumStats(m *model.Match, stats *model.MatchStats) {
	if !m.Has(model.FieldMomentum) || len(m.Points) == 0 {
		return
	}
	stats.HasMomentum = true

	p1, p2 := momentumSeries(m)
	stats.P1AvgMomentum = median(p1)
	stats.P2AvgMomentum = median(p2)
	stats.P1MaxMomentum, stats.P1MinMomentum = extrema(p1)
	stats.P2MaxMomentum, stats.P2MinMomentum = extrema(p2)

	// Swings: per-point absolute change of the momentum differential,
	// counted above its own median. The threshold is self-normalizing, so
	// volatile matches get a proportionally higher bar.
	changes := diffChanges(p1, p2)
	bar := median(changes)
	for _, c := range changes {
		if c > bar {
			stats.MomentumSwings++
		}
	}

	for i := range p1 {
		switch {
		case p1[i] > p2[i]:
			stats.P1DominantPoints++
		case p2[i] > p1[i]:
			stats.P2DominantPoints++
		}
	}
	if total := len(m.Points); total > 0 {
		stats.P1DominancePct = float64(stats.P1DominantPoints) / float64(total) * 100
		stats.P2DominancePct = float64(stats.P2DominantPoints) / float64(total) * 100
	}
}

// setBreakdown produces one SetSummary per distinct set number, ascending.
// Optional capabilities decide once which derived fields are populated.
func setBreakdown(m *model.Match) []model.SetSummary {
	hasTiming := m.Has(model.FieldElapsedTime)
	hasGames := m.Has(model.FieldGamesWon)
	hasMomentum := m.Has(model.FieldMomentum)

	bySet := make(map[int][]model.Point)
	var setNos []int
	for _, p := range m.Points {
		if _, seen := bySet[p.SetNo]; !seen {
			setNos = append(setNos, p.SetNo)
		}
		bySet[p.SetNo] = append(bySet[p.SetNo], p)
	}
	sort.Ints(setNos)

	out := make([]model.SetSummary, 0, len(setNos))
	for _, n := range setNos {
		pts := bySet[n]
		s := model.SetSummary{
			SetNumber:    n,
			PointsPlayed: len(pts),
		}

		if hasTiming {
			minSec, maxSec := pts[0].ElapsedSeconds, pts[0].ElapsedSeconds
			for _, p := range pts[1:] {
				if p.ElapsedSeconds < minSec {
					minSec = p.ElapsedSeconds
				}
				if p.ElapsedSeconds > maxSec {
					maxSec = p.ElapsedSeconds
				}
			}
			s.Duration = maxSec - minSec
		}

		if hasGames {
			last := pts[len(pts)-1]
			s.HasGames = true
			s.P1Games = last.P1GamesWon
			s.P2Games = last.P2GamesWon
		}

		if hasMomentum {
			p1 := make([]float64, len(pts))
			p2 := make([]float64, len(pts))
			for i, p := range pts {
				p1[i] = p.P1Momentum
				p2[i] = p.P2Momentum
			}
			s.HasMomentum = true
			s.P1MedianMomentum = median(p1)
			s.P2MedianMomentum = median(p2)
		}

		out = append(out, s)
	}
	return out
}

// momentumSeries extracts the two per-player momentum series in point order.
func momentumSeries(m *model.Match) (p1, p2 []float64) {
	p1 = make([]float64, len(m.Points))
	p2 = make([]float64, len(m.Points))
	for i, p := range m.Points {
		p1[i] = p.P1Momentum
		p2[i] = p.P2Momentum
	}
	return p1, p2
}

// diffChanges computes change[i] = |diff[i] − diff[i−1]| over the momentum
// differential, with change[0] = 0 since the first point has no predecessor.
func diffChanges(p1, p2 []float64) []float64 {
	changes := make([]float64, len(p1))
	for i := 1; i < len(p1); i++ {
		prev := p1[i-1] - p2[i-1]
		cur := p1[i] - p2[i]
		changes[i] = math.Abs(cur - prev)
	}
	return changes
}

// median returns the median of values; 0 for an empty slice. The input is
// not modified.
func median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// extrema returns (max, min) of values; (0, 0) for an empty slice by the
// empty-match convention.
func extrema(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return max, min
}
