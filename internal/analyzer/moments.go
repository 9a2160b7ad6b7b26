package analyzer

import "github.com/courtside/go-tennis-metrics/internal/model"

// DefaultShiftThreshold is the multiplier applied to the median
// differential change when flagging momentum shifts.
const DefaultShiftThreshold = 2.0

// KeyMoments flags points where the momentum differential changed by more
// than threshold times the median change, and collects each player's
// peak-momentum points. Shifts are emitted in point order; truncation or
// re-sorting for display is the caller's concern. A match without
// momentum data yields empty lists, not an error.
func KeyMoments(m *model.Match, threshold float64) *model.KeyMoments {
	km := &model.KeyMoments{}
	if !m.Has(model.FieldMomentum) || len(m.Points) == 0 {
		return km
	}

	p1, p2 := momentumSeries(m)
	changes := diffChanges(p1, p2)
	bar := median(changes) * threshold

	for i, p := range m.Points {
		if changes[i] > bar {
			km.MomentumShifts = append(km.MomentumShifts, model.MomentumShift{
				PointNumber:    p.Number,
				ElapsedSeconds: p.ElapsedSeconds,
				Change:         changes[i],
				P1Momentum:     p.P1Momentum,
				P2Momentum:     p.P2Momentum,
			})
		}
	}

	// Every point attaining the exact match maximum counts as a peak, so
	// ties produce more than one entry per player.
	p1Max, _ := extrema(p1)
	p2Max, _ := extrema(p2)
	for _, p := range m.Points {
		if p.P1Momentum == p1Max {
			km.PeakMoments = append(km.PeakMoments, model.PeakMoment{
				Player:      m.Player1,
				PointNumber: p.Number,
				Momentum:    p.P1Momentum,
			})
		}
	}
	for _, p := range m.Points {
		if p.P2Momentum == p2Max {
			km.PeakMoments = append(km.PeakMoments, model.PeakMoment{
				Player:      m.Player2,
				PointNumber: p.Number,
				Momentum:    p.P2Momentum,
			})
		}
	}

	return km
}

// Derivatives returns per-point first differences (change) and second
// differences (acceleration) of a momentum series, 0-filled where no
// predecessor exists.
func Derivatives(series []float64) (change, accel []float64) {
	change = make([]float64, len(series))
	accel = make([]float64, len(series))
	for i := 1; i < len(series); i++ {
		change[i] = series[i] - series[i-1]
	}
	for i := 1; i < len(change); i++ {
		accel[i] = change[i] - change[i-1]
	}
	return change, accel
}
