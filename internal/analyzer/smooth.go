package analyzer

import "github.com/courtside/go-tennis-metrics/internal/model"

// Smooth returns a copy of the match with each momentum series replaced by
// a centered rolling mean of the given window. Positions without a full
// window keep their original values. A window below 2, or a match without
// momentum data, returns the input unchanged.
func Smooth(m *model.Match, window int) *model.Match {
	if window < 2 || !m.Has(model.FieldMomentum) || len(m.Points) == 0 {
		return m
	}

	p1, p2 := momentumSeries(m)
	sm1 := rollingMean(p1, window)
	sm2 := rollingMean(p2, window)

	out := &model.Match{
		ID:      m.ID,
		Player1: m.Player1,
		Player2: m.Player2,
		Points:  make([]model.Point, len(m.Points)),
		Caps:    m.Caps,
	}
	copy(out.Points, m.Points)
	for i := range out.Points {
		out.Points[i].P1Momentum = sm1[i]
		out.Points[i].P2Momentum = sm2[i]
	}
	return out
}

// rollingMean computes a centered moving average; edge positions where the
// window does not fit retain the original value.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	half := window / 2
	for i := range values {
		start := i - half
		end := start + window
		if start < 0 || end > len(values) {
			continue
		}
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(window)
	}
	return out
}
