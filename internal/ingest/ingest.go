// Package ingest loads one match's rows from Grand Slam point-by-point
// CSV files into the in-memory model consumed by the analyzer.
package ingest

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/courtside/go-tennis-metrics/internal/clock"
	"github.com/courtside/go-tennis-metrics/internal/model"
)

// LoadMatch reads the points file, keeps the rows belonging to matchID,
// and returns a normalized Match. Player names come from the matches
// file. Optional columns are detected once from the header and recorded
// as the match's capabilities; missing required columns are an
// integration error and fail fast.
func LoadMatch(pointsPath, matchesPath, matchID string) (*model.Match, error) {
	p1, p2, err := findPlayers(matchesPath, matchID)
	if err != nil {
		return nil, err
	}

	r, err := openReader(pointsPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read points header: %w", err)
	}
	col := indexColumns(header)

	idCol, ok := col["match_id"]
	if !ok {
		return nil, fmt.Errorf("points file missing required column %q", "match_id")
	}
	numCol, ok := col["PointNumber"]
	if !ok {
		return nil, fmt.Errorf("points file missing required column %q", "PointNumber")
	}

	caps := detectCapabilities(col)
	m := &model.Match{ID: matchID, Player1: p1, Player2: p2, Caps: caps}

	field := func(rec []string, name string) string {
		if i, ok := col[name]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read points row: %w", err)
		}
		if rec[idCol] != matchID {
			continue
		}
		// Tie-break artifact rows ("0X"/"0Y") and anything else without a
		// numeric point number are dropped.
		num, err := strconv.Atoi(strings.TrimSpace(rec[numCol]))
		if err != nil {
			continue
		}

		p := model.Point{Number: num}
		if caps.Has(model.FieldElapsedTime) {
			p.ElapsedSeconds = clock.ParseClock(field(rec, "ElapsedTime"))
		}
		if caps.Has(model.FieldSetNo) {
			p.SetNo, _ = strconv.Atoi(strings.TrimSpace(field(rec, "SetNo")))
		}
		if caps.Has(model.FieldGamesWon) {
			p.P1GamesWon, _ = strconv.Atoi(strings.TrimSpace(field(rec, "P1GamesWon")))
			p.P2GamesWon, _ = strconv.Atoi(strings.TrimSpace(field(rec, "P2GamesWon")))
		}
		if caps.Has(model.FieldMomentum) {
			p.P1Momentum = parseMomentum(field(rec, "P1Momentum"))
			p.P2Momentum = parseMomentum(field(rec, "P2Momentum"))
		}
		m.Points = append(m.Points, p)
	}

	if len(m.Points) == 0 {
		return nil, fmt.Errorf("no points found for match %s", matchID)
	}
	sort.Slice(m.Points, func(i, j int) bool {
		return m.Points[i].Number < m.Points[j].Number
	})
	return m, nil
}

// FindMatchID locates the first match in the matches file whose player
// names contain the given names, case-insensitively, in either
// orientation. Returns an error when no match is found.
func FindMatchID(matchesPath, player1, player2 string) (string, error) {
	r, err := openReader(matchesPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return "", fmt.Errorf("read matches header: %w", err)
	}
	col := indexColumns(header)
	for _, name := range []string{"match_id", "player1", "player2"} {
		if _, ok := col[name]; !ok {
			return "", fmt.Errorf("matches file missing required column %q", name)
		}
	}

	q1 := strings.ToLower(strings.TrimSpace(player1))
	q2 := strings.ToLower(strings.TrimSpace(player2))

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read matches row: %w", err)
		}
		a := strings.ToLower(rec[col["player1"]])
		b := strings.ToLower(rec[col["player2"]])
		if (strings.Contains(a, q1) && strings.Contains(b, q2)) ||
			(strings.Contains(a, q2) && strings.Contains(b, q1)) {
			return rec[col["match_id"]], nil
		}
	}
	return "", fmt.Errorf("no match found for %q vs %q", player1, player2)
}

var namePattern = regexp.MustCompile(`^[A-Za-z\s\-'.]+$`)

// ValidatePlayers checks that both names are plausible "First Last" style
// player names before any download or lookup is attempted.
func ValidatePlayers(player1, player2 string) error {
	for _, name := range []string{player1, player2} {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("player names cannot be empty")
		}
		if !namePattern.MatchString(trimmed) {
			return fmt.Errorf("invalid characters in player name %q", name)
		}
		if len(strings.Fields(trimmed)) < 2 {
			return fmt.Errorf("player name %q should include first and last name", name)
		}
	}
	return nil
}

// findPlayers returns the two player names for matchID from the matches file.
func findPlayers(matchesPath, matchID string) (string, string, error) {
	r, err := openReader(matchesPath)
	if err != nil {
		return "", "", err
	}
	defer r.Close()

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return "", "", fmt.Errorf("read matches header: %w", err)
	}
	col := indexColumns(header)
	for _, name := range []string{"match_id", "player1", "player2"} {
		if _, ok := col[name]; !ok {
			return "", "", fmt.Errorf("matches file missing required column %q", name)
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", "", fmt.Errorf("read matches row: %w", err)
		}
		if rec[col["match_id"]] == matchID {
			return rec[col["player1"]], rec[col["player2"]], nil
		}
	}
	return "", "", fmt.Errorf("match %s not found in matches file", matchID)
}

// detectCapabilities records, once per match, which optional column
// groups the header carries. Paired columns count only when both halves
// are present.
func detectCapabilities(col map[string]int) model.Capabilities {
	caps := model.Capabilities{}
	has := func(name string) bool { _, ok := col[name]; return ok }

	if has("ElapsedTime") {
		caps[model.FieldElapsedTime] = struct{}{}
	}
	if has("SetNo") {
		caps[model.FieldSetNo] = struct{}{}
	}
	if has("P1GamesWon") && has("P2GamesWon") {
		caps[model.FieldGamesWon] = struct{}{}
	}
	if has("P1Momentum") && has("P2Momentum") {
		caps[model.FieldMomentum] = struct{}{}
	}
	return caps
}

func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	return col
}

// parseMomentum normalizes a momentum cell: empty or unparsable values
// become 0.
func parseMomentum(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// openReader opens path, transparently decompressing .gz and .zst files.
func openReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &decompReader{Reader: dec.IOReadCloser(), file: f}, nil
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &decompReader{Reader: gz, file: f}, nil
	default:
		return f, nil
	}
}

// decompReader closes both the decompressor and the underlying file.
type decompReader struct {
	io.Reader
	file *os.File
}

func (d *decompReader) Close() error {
	if c, ok := d.Reader.(io.Closer); ok {
		c.Close()
	}
	return d.file.Close()
}
