package storage

import (
	"database/sql"
	"fmt"

	"github.com/courtside/go-tennis-metrics/internal/model"
)

// MatchExists returns true if a match with the given id is already stored.
func (db *DB) MatchExists(matchID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatchStats stores a match record and its set breakdown in one
// transaction. Uses INSERT OR REPLACE for idempotency; re-analyzing a
// match replaces its rows.
func (db *DB) InsertMatchStats(s *model.MatchStats, tournament string, year int) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO matches(
			match_id, player1, player2, tournament, year,
			total_points, match_duration, final_score, winner,
			p1_sets, p2_sets, total_sets,
			has_momentum,
			p1_avg_momentum, p2_avg_momentum,
			p1_max_momentum, p2_max_momentum,
			p1_min_momentum, p2_min_momentum,
			momentum_swings,
			p1_dominant_points, p2_dominant_points,
			p1_dominance_pct, p2_dominance_pct,
			p1_consistency, p2_consistency
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		s.MatchID, s.Player1, s.Player2, tournament, year,
		s.TotalPoints, s.MatchDuration, s.FinalScore, s.Winner,
		s.P1Sets, s.P2Sets, s.TotalSets,
		boolInt(s.HasMomentum),
		s.P1AvgMomentum, s.P2AvgMomentum,
		s.P1MaxMomentum, s.P2MaxMomentum,
		s.P1MinMomentum, s.P2MinMomentum,
		s.MomentumSwings,
		s.P1DominantPoints, s.P2DominantPoints,
		s.P1DominancePct, s.P2DominancePct,
		s.P1Consistency, s.P2Consistency,
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", s.MatchID, err)
	}

	if _, err := tx.Exec("DELETE FROM set_breakdown WHERE match_id = ?", s.MatchID); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO set_breakdown(
			match_id, set_number, points_played, duration,
			has_games, p1_games, p2_games,
			has_momentum, p1_median_momentum, p2_median_momentum
		) VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, set := range s.SetBreakdown {
		_, err = stmt.Exec(
			s.MatchID, set.SetNumber, set.PointsPlayed, set.Duration,
			boolInt(set.HasGames), set.P1Games, set.P2Games,
			boolInt(set.HasMomentum), set.P1MedianMomentum, set.P2MedianMomentum,
		)
		if err != nil {
			return fmt.Errorf("insert set %d for %s: %w", set.SetNumber, s.MatchID, err)
		}
	}
	return tx.Commit()
}

// InsertKeyMoments replaces the stored shifts and peaks for a match.
func (db *DB) InsertKeyMoments(matchID string, km *model.KeyMoments) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM momentum_shifts WHERE match_id = ?", matchID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM peak_moments WHERE match_id = ?", matchID); err != nil {
		return err
	}

	shiftStmt, err := tx.Prepare(`
		INSERT INTO momentum_shifts(match_id, point_number, elapsed_seconds, change, p1_momentum, p2_momentum)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer shiftStmt.Close()
	for _, sh := range km.MomentumShifts {
		if _, err := shiftStmt.Exec(matchID, sh.PointNumber, sh.ElapsedSeconds,
			sh.Change, sh.P1Momentum, sh.P2Momentum); err != nil {
			return fmt.Errorf("insert shift at point %d: %w", sh.PointNumber, err)
		}
	}

	peakStmt, err := tx.Prepare(`
		INSERT INTO peak_moments(match_id, player, point_number, momentum)
		VALUES (?,?,?,?)`)
	if err != nil {
		return err
	}
	defer peakStmt.Close()
	for _, pk := range km.PeakMoments {
		if _, err := peakStmt.Exec(matchID, pk.Player, pk.PointNumber, pk.Momentum); err != nil {
			return fmt.Errorf("insert peak at point %d: %w", pk.PointNumber, err)
		}
	}
	return tx.Commit()
}

// GetMatchByPrefix finds the first match whose id starts with the given
// prefix and returns its full stats including the set breakdown.
// Returns nil when nothing matches.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchStats, error) {
	var s model.MatchStats
	var hasMomentum int
	err := db.conn.QueryRow(`
		SELECT match_id, player1, player2,
		       total_points, match_duration, final_score, winner,
		       p1_sets, p2_sets, total_sets,
		       has_momentum,
		       p1_avg_momentum, p2_avg_momentum,
		       p1_max_momentum, p2_max_momentum,
		       p1_min_momentum, p2_min_momentum,
		       momentum_swings,
		       p1_dominant_points, p2_dominant_points,
		       p1_dominance_pct, p2_dominance_pct,
		       p1_consistency, p2_consistency
		FROM matches WHERE match_id LIKE ? LIMIT 1`, prefix+"%").
		Scan(&s.MatchID, &s.Player1, &s.Player2,
			&s.TotalPoints, &s.MatchDuration, &s.FinalScore, &s.Winner,
			&s.P1Sets, &s.P2Sets, &s.TotalSets,
			&hasMomentum,
			&s.P1AvgMomentum, &s.P2AvgMomentum,
			&s.P1MaxMomentum, &s.P2MaxMomentum,
			&s.P1MinMomentum, &s.P2MinMomentum,
			&s.MomentumSwings,
			&s.P1DominantPoints, &s.P2DominantPoints,
			&s.P1DominancePct, &s.P2DominancePct,
			&s.P1Consistency, &s.P2Consistency)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.HasMomentum = hasMomentum != 0

	s.SetBreakdown, err = db.getSetBreakdown(s.MatchID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (db *DB) getSetBreakdown(matchID string) ([]model.SetSummary, error) {
	rows, err := db.conn.Query(`
		SELECT set_number, points_played, duration,
		       has_games, p1_games, p2_games,
		       has_momentum, p1_median_momentum, p2_median_momentum
		FROM set_breakdown WHERE match_id = ?
		ORDER BY set_number ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SetSummary
	for rows.Next() {
		var set model.SetSummary
		var hasGames, hasMomentum int
		if err := rows.Scan(&set.SetNumber, &set.PointsPlayed, &set.Duration,
			&hasGames, &set.P1Games, &set.P2Games,
			&hasMomentum, &set.P1MedianMomentum, &set.P2MedianMomentum); err != nil {
			return nil, err
		}
		set.HasGames = hasGames != 0
		set.HasMomentum = hasMomentum != 0
		out = append(out, set)
	}
	return out, rows.Err()
}

// GetKeyMoments returns the stored shifts and peaks for a match, shifts
// in point order.
func (db *DB) GetKeyMoments(matchID string) (*model.KeyMoments, error) {
	km := &model.KeyMoments{}

	rows, err := db.conn.Query(`
		SELECT point_number, elapsed_seconds, change, p1_momentum, p2_momentum
		FROM momentum_shifts WHERE match_id = ?
		ORDER BY point_number ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sh model.MomentumShift
		if err := rows.Scan(&sh.PointNumber, &sh.ElapsedSeconds,
			&sh.Change, &sh.P1Momentum, &sh.P2Momentum); err != nil {
			return nil, err
		}
		km.MomentumShifts = append(km.MomentumShifts, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	peaks, err := db.conn.Query(`
		SELECT player, point_number, momentum
		FROM peak_moments WHERE match_id = ?
		ORDER BY player ASC, point_number ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer peaks.Close()
	for peaks.Next() {
		var pk model.PeakMoment
		if err := peaks.Scan(&pk.Player, &pk.PointNumber, &pk.Momentum); err != nil {
			return nil, err
		}
		km.PeakMoments = append(km.PeakMoments, pk)
	}
	return km, peaks.Err()
}

// ListMatches returns all stored match summaries ordered by year desc,
// then match id.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, player1, player2, tournament, year,
		       final_score, winner, total_points, match_duration
		FROM matches ORDER BY year DESC, match_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		if err := rows.Scan(&s.MatchID, &s.Player1, &s.Player2, &s.Tournament, &s.Year,
			&s.FinalScore, &s.Winner, &s.TotalPoints, &s.Duration); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
