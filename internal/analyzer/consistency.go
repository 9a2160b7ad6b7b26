package analyzer

import "math"

// epsilon guards the range denominators so a constant series never
// divides by zero.
const epsilon = 1e-6

// Consistency weights. They sum to 1.0; changing them changes the metric's
// meaning, not just its scale.
const (
	weightAhead     = 0.30 // fraction of points ahead of the opponent
	weightAboveOwn  = 0.25 // fraction of points above the player's own median
	weightStability = 0.20 // 1 − stddev/range
	weightGrowth    = 0.25 // early-to-late momentum build-up
)

// Consistency scores how steadily and favorably a player's momentum
// behaved relative to an opponent, on a [0,10] scale rounded to two
// decimals. Returns 0 for an empty series.
func Consistency(player, opponent []float64) float64 {
	n := len(player)
	if n == 0 {
		return 0
	}

	ahead := 0
	pairs := n
	if len(opponent) < pairs {
		pairs = len(opponent)
	}
	for i := 0; i < pairs; i++ {
		if player[i] > opponent[i] {
			ahead++
		}
	}
	aheadRatio := float64(ahead) / float64(n)

	own := median(player)
	above := 0
	for _, v := range player {
		if v > own {
			above++
		}
	}
	aboveOwnAvg := float64(above) / float64(n)

	max, min := extrema(player)
	rng := max - min
	stability := 1 - stddev(player)/(rng+epsilon)

	// Growth compares the first and last fifth of the match.
	seg := n / 5
	var early, late float64
	if seg > 0 {
		early = median(player[:seg])
		late = median(player[n-seg:])
	}
	growth := (late - early) / (rng + epsilon)
	growth = math.Min(math.Max(growth, 0), 1)

	score := 10 * (weightAhead*aheadRatio +
		weightAboveOwn*aboveOwnAvg +
		weightStability*stability +
		weightGrowth*growth)
	return math.Round(score*100) / 100
}

// stddev returns the population standard deviation; 0 for fewer than two
// values. Population (not sample) keeps the result defined for a
// single-point series.
func stddev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)
	ss := 0.0
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}
