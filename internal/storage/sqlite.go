// Package storage provides SQLite-based persistence for finished runs and
// personal-best ghosts.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-dodge/internal/engine"
	"github.com/vovakirdan/tui-dodge/internal/replay"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is a single finished run.
type Run struct {
	ID         int64
	Biome      string
	Seed       string
	Survival   float64 // seconds
	NearMisses int
	Dodges     int
	Pushes     int
	Explosions int
	Pockets    int
	TopSpeed   float64
	DeathCause string
	CreatedAt  time.Time
}

// RunFromStats converts engine statistics into a storable run.
func RunFromStats(s engine.RunStats) Run {
	return Run{
		Biome:      s.Biome,
		Seed:       s.Seed,
		Survival:   s.Elapsed,
		NearMisses: s.NearMisses,
		Dodges:     s.Dodges,
		Pushes:     s.Pushes,
		Explosions: s.Explosions,
		Pockets:    s.Pockets,
		TopSpeed:   s.TopSpeed,
		DeathCause: s.DeathCause.String(),
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			biome TEXT NOT NULL,
			seed TEXT NOT NULL,
			survival REAL NOT NULL,
			near_misses INTEGER NOT NULL DEFAULT 0,
			dodges INTEGER NOT NULL DEFAULT 0,
			pushes INTEGER NOT NULL DEFAULT 0,
			explosions INTEGER NOT NULL DEFAULT 0,
			pockets INTEGER NOT NULL DEFAULT 0,
			top_speed REAL NOT NULL DEFAULT 0,
			death_cause TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_biome ON runs(biome);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(biome, survival DESC);

		CREATE TABLE IF NOT EXISTS ghosts (
			biome TEXT PRIMARY KEY,
			seed TEXT NOT NULL,
			survival REAL NOT NULL,
			data BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (biome, seed, survival, near_misses, dodges, pushes, explosions, pockets, top_speed, death_cause)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Biome, r.Seed, r.Survival, r.NearMisses, r.Dodges, r.Pushes, r.Explosions, r.Pockets, r.TopSpeed, r.DeathCause,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the longest N runs for the given biome.
// Results are ordered by survival time descending.
func (s *Store) TopRuns(biome string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, biome, seed, survival, near_misses, dodges, pushes, explosions, pockets, top_speed, death_cause, created_at
		 FROM runs
		 WHERE biome = ?
		 ORDER BY survival DESC, id ASC
		 LIMIT ?`,
		biome, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Biome,
			&r.Seed,
			&r.Survival,
			&r.NearMisses,
			&r.Dodges,
			&r.Pushes,
			&r.Explosions,
			&r.Pockets,
			&r.TopSpeed,
			&r.DeathCause,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestTime returns the longest survival time for the given biome.
// Returns 0 if no runs exist.
func (s *Store) BestTime(biome string) (float64, error) {
	var best sql.NullFloat64
	err := s.db.QueryRow(
		"SELECT MAX(survival) FROM runs WHERE biome = ?",
		biome,
	).Scan(&best)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return best.Float64, nil
}

// ClearRuns deletes all runs and the ghost for the given biome.
func (s *Store) ClearRuns(biome string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE biome = ?", biome); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM ghosts WHERE biome = ?", biome); err != nil {
		return fmt.Errorf("storage: cannot clear ghost: %w", err)
	}
	return nil
}

// SaveGhostIfBest stores frames as the biome's personal-best ghost when
// survival beats the stored one. It reports whether the ghost was written.
func (s *Store) SaveGhostIfBest(biome, seed string, survival float64, frames []replay.LightFrame) (bool, error) {
	if len(frames) == 0 {
		return false, nil
	}
	data, err := replay.EncodeGhost(frames)
	if err != nil {
		return false, fmt.Errorf("storage: cannot encode ghost: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO ghosts (biome, seed, survival, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT(biome) DO UPDATE SET
		   seed = excluded.seed,
		   survival = excluded.survival,
		   data = excluded.data,
		   created_at = CURRENT_TIMESTAMP
		 WHERE excluded.survival > ghosts.survival`,
		biome, seed, survival, data,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot save ghost: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// LoadGhost returns the serialized personal-best ghost for the biome, or
// nil if there is none. The data is not validated here; the engine
// ignores malformed ghosts.
func (s *Store) LoadGhost(biome string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM ghosts WHERE biome = ?", biome).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load ghost: %w", err)
	}
	return data, nil
}

// RecordRun saves a finished run and, when it is a new best, its ghost.
// It reports whether the ghost was replaced.
func (s *Store) RecordRun(r engine.RunResult) (bool, error) {
	if _, err := s.SaveRun(RunFromStats(r.Stats)); err != nil {
		return false, err
	}
	return s.SaveGhostIfBest(r.Stats.Biome, r.Stats.Seed, r.Stats.Elapsed, r.Ghost)
}

// BiomeStats contains aggregated statistics for a biome.
type BiomeStats struct {
	Biome      string
	RunsCount  int
	BestTime   float64
	AvgTime    float64
	TotalTime  float64
	NearMisses int
	LastPlayed time.Time
}

// GetBiomeStats retrieves aggregated statistics for a specific biome.
func (s *Store) GetBiomeStats(biome string) (*BiomeStats, error) {
	stats := &BiomeStats{Biome: biome}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(survival), 0), COALESCE(AVG(survival), 0),
		        COALESCE(SUM(survival), 0), COALESCE(SUM(near_misses), 0)
		 FROM runs WHERE biome = ?`,
		biome,
	).Scan(&stats.RunsCount, &stats.BestTime, &stats.AvgTime, &stats.TotalTime, &stats.NearMisses)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get biome stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE biome = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		biome,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllBiomeStats retrieves statistics for every biome that has been played.
func (s *Store) GetAllBiomeStats() (map[string]*BiomeStats, error) {
	rows, err := s.db.Query(
		`SELECT biome, COUNT(*), MAX(survival), AVG(survival), SUM(survival), SUM(near_misses), MAX(created_at)
		 FROM runs
		 GROUP BY biome`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all biome stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*BiomeStats)
	for rows.Next() {
		var bs BiomeStats
		var lastPlayed any
		if err := rows.Scan(&bs.Biome, &bs.RunsCount, &bs.BestTime, &bs.AvgTime, &bs.TotalTime, &bs.NearMisses, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		bs.LastPlayed = parseTime(lastPlayed)
		stats[bs.Biome] = &bs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
