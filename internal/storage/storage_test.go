package storage

import (
	"reflect"
	"testing"

	"github.com/courtside/go-tennis-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleStats() *model.MatchStats {
	return &model.MatchStats{
		MatchID:       "2019-wimbledon-1701",
		Player1:       "Novak Djokovic",
		Player2:       "Roger Federer",
		TotalPoints:   422,
		MatchDuration: 17838,
		FinalScore:    "7-6, 1-6, 7-6, 4-6, 13-12",
		Winner:        "Novak Djokovic",
		P1Sets:        3,
		P2Sets:        2,
		TotalSets:     5,

		HasMomentum:    true,
		P1AvgMomentum:  2.4,
		P2AvgMomentum:  2.1,
		P1MaxMomentum:  8.5,
		P2MaxMomentum:  7.9,
		P1MinMomentum:  -1.2,
		P2MinMomentum:  -0.8,
		MomentumSwings: 31,

		P1DominantPoints: 220,
		P2DominantPoints: 202,
		P1DominancePct:   52.13,
		P2DominancePct:   47.87,

		P1Consistency: 6.42,
		P2Consistency: 6.17,

		SetBreakdown: []model.SetSummary{
			{SetNumber: 1, PointsPlayed: 80, Duration: 3500, HasGames: true, P1Games: 7, P2Games: 6,
				HasMomentum: true, P1MedianMomentum: 2.2, P2MedianMomentum: 2.4},
			{SetNumber: 2, PointsPlayed: 44, Duration: 1500, HasGames: true, P1Games: 1, P2Games: 6,
				HasMomentum: true, P1MedianMomentum: 1.4, P2MedianMomentum: 3.1},
		},
	}
}

func TestMatchInsertAndExists(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatchStats(sampleStats(), "wimbledon", 2019); err != nil {
		t.Fatalf("InsertMatchStats: %v", err)
	}

	exists, err := db.MatchExists("2019-wimbledon-1701")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}

	exists2, _ := db.MatchExists("2019-wimbledon-9999")
	if exists2 {
		t.Error("expected unknown match to not exist")
	}
}

func TestMatchRoundTrip(t *testing.T) {
	db := openMemDB(t)

	want := sampleStats()
	if err := db.InsertMatchStats(want, "wimbledon", 2019); err != nil {
		t.Fatalf("InsertMatchStats: %v", err)
	}

	got, err := db.GetMatchByPrefix("2019-wimbledon-17")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if got == nil {
		t.Fatal("expected a match for the prefix")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	miss, err := db.GetMatchByPrefix("2020-")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if miss != nil {
		t.Errorf("expected nil for unmatched prefix, got %+v", miss)
	}
}

func TestInsertMatchStats_Idempotent(t *testing.T) {
	db := openMemDB(t)

	s := sampleStats()
	if err := db.InsertMatchStats(s, "wimbledon", 2019); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	// Re-analysis replaces the record, including a shrunken set breakdown.
	s.Winner = "Roger Federer"
	s.SetBreakdown = s.SetBreakdown[:1]
	if err := db.InsertMatchStats(s, "wimbledon", 2019); err != nil {
		t.Fatalf("second insert: %v", err)
	}

	got, err := db.GetMatchByPrefix(s.MatchID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Winner != "Roger Federer" {
		t.Errorf("Winner = %q after replace", got.Winner)
	}
	if len(got.SetBreakdown) != 1 {
		t.Errorf("got %d set rows after replace, want 1", len(got.SetBreakdown))
	}
}

func TestKeyMomentsRoundTrip(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertMatchStats(sampleStats(), "wimbledon", 2019); err != nil {
		t.Fatal(err)
	}

	km := &model.KeyMoments{
		MomentumShifts: []model.MomentumShift{
			{PointNumber: 42, ElapsedSeconds: 1260, Change: 5.5, P1Momentum: 6.0, P2Momentum: 0.5},
			{PointNumber: 118, ElapsedSeconds: 4100, Change: 4.8, P1Momentum: 1.0, P2Momentum: 5.8},
		},
		PeakMoments: []model.PeakMoment{
			{Player: "Novak Djokovic", PointNumber: 42, Momentum: 8.5},
			{Player: "Roger Federer", PointNumber: 300, Momentum: 7.9},
		},
	}
	if err := db.InsertKeyMoments("2019-wimbledon-1701", km); err != nil {
		t.Fatalf("InsertKeyMoments: %v", err)
	}

	got, err := db.GetKeyMoments("2019-wimbledon-1701")
	if err != nil {
		t.Fatalf("GetKeyMoments: %v", err)
	}
	if !reflect.DeepEqual(got.MomentumShifts, km.MomentumShifts) {
		t.Errorf("shifts mismatch:\n got %+v\nwant %+v", got.MomentumShifts, km.MomentumShifts)
	}
	if !reflect.DeepEqual(got.PeakMoments, km.PeakMoments) {
		t.Errorf("peaks mismatch:\n got %+v\nwant %+v", got.PeakMoments, km.PeakMoments)
	}

	// Re-detection replaces prior moments rather than accumulating.
	if err := db.InsertKeyMoments("2019-wimbledon-1701",
		&model.KeyMoments{MomentumShifts: km.MomentumShifts[:1]}); err != nil {
		t.Fatal(err)
	}
	got, err = db.GetKeyMoments("2019-wimbledon-1701")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.MomentumShifts) != 1 || len(got.PeakMoments) != 0 {
		t.Errorf("after replace: %d shifts, %d peaks", len(got.MomentumShifts), len(got.PeakMoments))
	}
}

func TestListMatches(t *testing.T) {
	db := openMemDB(t)

	a := sampleStats()
	if err := db.InsertMatchStats(a, "wimbledon", 2019); err != nil {
		t.Fatal(err)
	}
	b := sampleStats()
	b.MatchID = "2021-usopen-1701"
	b.Player1, b.Player2 = "Daniil Medvedev", "Novak Djokovic"
	if err := db.InsertMatchStats(b, "usopen", 2021); err != nil {
		t.Fatal(err)
	}

	list, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d matches, want 2", len(list))
	}
	// Newest year first.
	if list[0].MatchID != "2021-usopen-1701" || list[1].MatchID != "2019-wimbledon-1701" {
		t.Errorf("unexpected order: %s, %s", list[0].MatchID, list[1].MatchID)
	}
	if list[0].Tournament != "usopen" || list[0].Year != 2021 {
		t.Errorf("tournament/year = %s/%d", list[0].Tournament, list[0].Year)
	}
	if list[1].Duration != 17838 {
		t.Errorf("Duration = %d", list[1].Duration)
	}
}
