package model

// Field names the optional input columns a match may or may not carry.
// Capabilities are detected once at ingestion and consulted by every
// aggregator, never re-probed per row.
type Field string

const (
	FieldElapsedTime Field = "ElapsedTime"
	FieldSetNo       Field = "SetNo"
	FieldGamesWon    Field = "GamesWon" // both P1GamesWon and P2GamesWon
	FieldMomentum    Field = "Momentum" // both P1Momentum and P2Momentum
)

// Capabilities is the set of optional fields present in a match's source data.
type Capabilities map[Field]struct{}

// Has reports whether the field was present at ingestion.
func (c Capabilities) Has(f Field) bool {
	_, ok := c[f]
	return ok
}

// ---- Raw rows produced by ingestion ----

// Point is one row of point-by-point data, normalized: elapsed time parsed
// to seconds, missing momentum values filled with 0. Points are immutable
// once ingested.
type Point struct {
	Number         int
	ElapsedSeconds int
	SetNo          int
	P1GamesWon     int // cumulative within a set, resets across sets
	P2GamesWon     int
	P1Momentum     float64
	P2Momentum     float64
}

// Match is one match's ordered point sequence plus its capability set.
type Match struct {
	ID      string
	Player1 string
	Player2 string
	Points  []Point
	Caps    Capabilities
}

// Has reports whether the match's source data carried the given field.
func (m *Match) Has(f Field) bool {
	return m.Caps.Has(f)
}

// ---- Aggregated metrics ----

// MatchStats is the per-match statistics record. Computed fresh on each
// analysis, never mutated afterwards.
type MatchStats struct {
	MatchID string
	Player1 string
	Player2 string

	TotalPoints   int
	MatchDuration int // seconds; 0 when timing is unavailable

	FinalScore string // e.g. "6-4, 6-2"; "Score unavailable" on fallback
	Winner     string // "Unknown" when undecidable
	P1Sets     int
	P2Sets     int
	TotalSets  int

	// Momentum block; zero-valued with HasMomentum=false when the source
	// data carried no momentum columns.
	HasMomentum    bool
	P1AvgMomentum  float64 // median over the match
	P2AvgMomentum  float64
	P1MaxMomentum  float64
	P2MaxMomentum  float64
	P1MinMomentum  float64
	P2MinMomentum  float64
	MomentumSwings int

	P1DominantPoints int
	P2DominantPoints int
	P1DominancePct   float64
	P2DominancePct   float64

	P1Consistency float64 // [0,10]
	P2Consistency float64

	SetBreakdown []SetSummary
}

// SetSummary is the per-set breakdown. Games and momentum fields are
// omitted (flags false) rather than zeroed when the source columns are
// absent, since 0 is a legitimate score.
type SetSummary struct {
	SetNumber    int
	PointsPlayed int
	Duration     int // seconds; 0 without timing

	HasGames bool
	P1Games  int
	P2Games  int

	HasMomentum      bool
	P1MedianMomentum float64
	P2MedianMomentum float64
}

// MomentumShift is a point where the momentum differential changed sharply.
type MomentumShift struct {
	PointNumber    int
	ElapsedSeconds int
	Change         float64 // |diff[i] − diff[i−1]|
	P1Momentum     float64
	P2Momentum     float64
}

// PeakMoment is a point attaining a player's match-maximum momentum.
type PeakMoment struct {
	Player      string
	PointNumber int
	Momentum    float64
}

// KeyMoments holds the detector output. TurningPoints is a reserved
// extension field and stays empty.
type KeyMoments struct {
	MomentumShifts []MomentumShift
	PeakMoments    []PeakMoment
	TurningPoints  []MomentumShift
}

// MatchSummary is a lightweight record for list commands.
type MatchSummary struct {
	MatchID     string
	Player1     string
	Player2     string
	Tournament  string
	Year        int
	FinalScore  string
	Winner      string
	TotalPoints int
	Duration    int
}
