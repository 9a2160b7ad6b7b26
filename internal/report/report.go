package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/courtside/go-tennis-metrics/internal/clock"
	"github.com/courtside/go-tennis-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintMatchHeader prints a one-line summary header for the match.
func PrintMatchHeader(w io.Writer, s *model.MatchStats) {
	duration := "—"
	if s.MatchDuration > 0 {
		duration = clock.FormatClock(s.MatchDuration)
	}
	fmt.Fprintf(w, "\n%s vs %s  |  Score: %s  |  Winner: %s  |  Points: %d  |  Duration: %s  |  ID: %s\n\n",
		s.Player1, s.Player2, s.FinalScore, s.Winner, s.TotalPoints, duration, s.MatchID)
}

// PrintMomentumTable prints the per-player momentum statistics table.
// Momentum columns show placeholders when the source data carried none.
func PrintMomentumTable(w io.Writer, s *model.MatchStats) {
	table := newTable(w)
	table.Header("PLAYER", "SETS", "AVG_MOM", "MAX_MOM", "MIN_MOM", "DOM_PTS", "DOM%", "CONSISTENCY")

	rows := []struct {
		name           string
		sets           int
		avg, max, min  float64
		dom            int
		domPct         float64
		consistency    float64
	}{
		{s.Player1, s.P1Sets, s.P1AvgMomentum, s.P1MaxMomentum, s.P1MinMomentum,
			s.P1DominantPoints, s.P1DominancePct, s.P1Consistency},
		{s.Player2, s.P2Sets, s.P2AvgMomentum, s.P2MaxMomentum, s.P2MinMomentum,
			s.P2DominantPoints, s.P2DominancePct, s.P2Consistency},
	}
	for _, r := range rows {
		avg, max, min, dom, domPct, cons := "—", "—", "—", "—", "—", "—"
		if s.HasMomentum {
			avg = fmt.Sprintf("%.2f", r.avg)
			max = fmt.Sprintf("%.2f", r.max)
			min = fmt.Sprintf("%.2f", r.min)
			dom = strconv.Itoa(r.dom)
			domPct = fmt.Sprintf("%.1f%%", r.domPct)
			cons = fmt.Sprintf("%.2f", r.consistency)
		}
		table.Append(r.name, strconv.Itoa(r.sets), avg, max, min, dom, domPct, cons)
	}
	table.Render()

	if s.HasMomentum {
		fmt.Fprintf(w, "\nMomentum swings: %d\n", s.MomentumSwings)
	}
}

// PrintSetTable prints the per-set breakdown.
func PrintSetTable(w io.Writer, sets []model.SetSummary) {
	if len(sets) == 0 {
		fmt.Fprintln(w, "No set breakdown available.")
		return
	}

	table := newTable(w)
	table.Header("SET", "POINTS", "DURATION", "GAMES", "P1_MED_MOM", "P2_MED_MOM")

	for _, set := range sets {
		duration := "—"
		if set.Duration > 0 {
			duration = clock.FormatClock(set.Duration)
		}
		games := "—"
		if set.HasGames {
			games = fmt.Sprintf("%d-%d", set.P1Games, set.P2Games)
		}
		p1Mom, p2Mom := "—", "—"
		if set.HasMomentum {
			p1Mom = fmt.Sprintf("%.2f", set.P1MedianMomentum)
			p2Mom = fmt.Sprintf("%.2f", set.P2MedianMomentum)
		}
		table.Append(strconv.Itoa(set.SetNumber), strconv.Itoa(set.PointsPlayed),
			duration, games, p1Mom, p2Mom)
	}
	table.Render()
}

// PrintShiftsTable prints detected momentum shifts. With top > 0 the
// largest shifts by change are shown first; otherwise shifts stay in
// point order.
func PrintShiftsTable(w io.Writer, shifts []model.MomentumShift, top int) {
	if len(shifts) == 0 {
		fmt.Fprintln(w, "No momentum shifts detected.")
		return
	}

	if top > 0 {
		sorted := make([]model.MomentumShift, len(shifts))
		copy(sorted, shifts)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Change > sorted[j].Change })
		if top < len(sorted) {
			sorted = sorted[:top]
		}
		shifts = sorted
	}

	table := newTable(w)
	table.Header("POINT", "TIME", "CHANGE", "P1_MOM", "P2_MOM")
	for _, sh := range shifts {
		elapsed := "—"
		if sh.ElapsedSeconds > 0 {
			elapsed = clock.FormatClock(sh.ElapsedSeconds)
		}
		table.Append(
			strconv.Itoa(sh.PointNumber),
			elapsed,
			fmt.Sprintf("%.2f", sh.Change),
			fmt.Sprintf("%.2f", sh.P1Momentum),
			fmt.Sprintf("%.2f", sh.P2Momentum),
		)
	}
	table.Render()
}

// PrintPeaksTable prints each player's peak momentum points.
func PrintPeaksTable(w io.Writer, peaks []model.PeakMoment) {
	if len(peaks) == 0 {
		fmt.Fprintln(w, "No peak moments detected.")
		return
	}

	table := newTable(w)
	table.Header("PLAYER", "POINT", "MOMENTUM")
	for _, pk := range peaks {
		table.Append(pk.Player, strconv.Itoa(pk.PointNumber), fmt.Sprintf("%.2f", pk.Momentum))
	}
	table.Render()
}
