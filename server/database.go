package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// PlayerRow represents a pilot account in the database
type PlayerRow struct {
	ID        int64
	Username  string
	PassHash  string
	CreatedAt time.Time
}

// PilotStats aggregates every recorded run of one pilot
type PilotStats struct {
	PlayerID  int64
	Runs      int
	BestScore int
	BestLevel int
	Kills     int
	Bosses    int
	Treasures int
	Playtime  float64 // seconds
}

// LeaderboardEntry represents one row in the leaderboard
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Username  string `json:"username"`
	Score     int    `json:"score"`
	Level     int    `json:"level"`
	Stage     int    `json:"stage"`
	Kills     int    `json:"kills"`
	Treasures int    `json:"treasures"`
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		pass_hash TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL REFERENCES players(id),
		score INTEGER NOT NULL DEFAULT 0,
		kills INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 1,
		stage INTEGER NOT NULL DEFAULT 1,
		bosses INTEGER NOT NULL DEFAULT 0,
		treasures INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS achievements (
		player_id INTEGER NOT NULL REFERENCES players(id),
		achievement_id TEXT NOT NULL,
		unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (player_id, achievement_id)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS analytics_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		player_id INTEGER,
		session_id TEXT,
		data TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player_id);
	CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score);
	CREATE INDEX IF NOT EXISTS idx_analytics_type ON analytics_events(event_type, created_at);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// CreatePlayer creates a new pilot account (returns player ID)
func (db *DB) CreatePlayer(username, passHash string) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO players (username, pass_hash) VALUES (?, ?)",
		username, passHash,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetPlayerByUsername returns a player by username, nil if none
func (db *DB) GetPlayerByUsername(username string) (*PlayerRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, pass_hash, created_at FROM players WHERE username = ?",
		username,
	)
	p := &PlayerRow{}
	err := row.Scan(&p.ID, &p.Username, &p.PassHash, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// GetPlayerByID returns a player by ID, nil if none
func (db *DB) GetPlayerByID(id int64) (*PlayerRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, pass_hash, created_at FROM players WHERE id = ?",
		id,
	)
	p := &PlayerRow{}
	err := row.Scan(&p.ID, &p.Username, &p.PassHash, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// UsernameExists checks if a username is taken
func (db *DB) UsernameExists(username string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM players WHERE username = ?", username).Scan(&count)
	return count > 0, err
}

// RecordRun stores a finished run and returns its ID
func (db *DB) RecordRun(playerID int64, s RunSummary) (int64, error) {
	res, err := db.conn.Exec(
		`INSERT INTO runs (player_id, score, kills, level, stage, bosses, treasures, duration)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		playerID, s.Score, s.Kills, s.Level, s.Stage, s.Bosses, s.Treasures, s.DurationMs/1000,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run for player %d: %w", playerID, err)
	}
	return res.LastInsertId()
}

// GetPilotStats sums every run of a pilot. A pilot with no runs gets zeros.
func (db *DB) GetPilotStats(playerID int64) (*PilotStats, error) {
	s := &PilotStats{PlayerID: playerID}
	err := db.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(level), 0),
			COALESCE(SUM(kills), 0), COALESCE(SUM(bosses), 0),
			COALESCE(SUM(treasures), 0), COALESCE(SUM(duration), 0)
		FROM runs WHERE player_id = ?`,
		playerID,
	).Scan(&s.Runs, &s.BestScore, &s.BestLevel, &s.Kills, &s.Bosses, &s.Treasures, &s.Playtime)
	if err != nil {
		return nil, fmt.Errorf("stats for player %d: %w", playerID, err)
	}
	return s, nil
}

// GetLeaderboard returns each pilot's best run, highest score first
func (db *DB) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	// SQLite fills the bare columns from the row that holds MAX(score)
	rows, err := db.conn.Query(`
		SELECT p.username, MAX(r.score) AS best, r.level, r.stage, r.kills, r.treasures
		FROM runs r JOIN players p ON p.id = r.player_id
		GROUP BY r.player_id
		ORDER BY best DESC, p.username
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Score, &e.Level, &e.Stage, &e.Kills, &e.Treasures); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		result = append(result, e)
	}
	return result, rows.Err()
}

// UnlockAchievement records an achievement. Returns true if it was new.
func (db *DB) UnlockAchievement(playerID int64, id string) (bool, error) {
	res, err := db.conn.Exec(
		"INSERT OR IGNORE INTO achievements (player_id, achievement_id) VALUES (?, ?)",
		playerID, id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// GetAchievements lists a pilot's unlocked achievement IDs in unlock order
func (db *DB) GetAchievements(playerID int64) ([]string, error) {
	rows, err := db.conn.Query(
		"SELECT achievement_id FROM achievements WHERE player_id = ? ORDER BY unlocked_at, achievement_id",
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetSetting returns a stored setting, "" if unset
func (db *DB) GetSetting(key string) string {
	var v string
	if err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v); err != nil {
		return ""
	}
	return v
}

// SetSetting stores a setting
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// InsertEvents stores a batch of analytics events in one transaction
func (db *DB) InsertEvents(events []AnalyticsEvent) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO analytics_events (event_type, player_id, session_id, data, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err := stmt.Exec(
			string(ev.Type),
			sql.NullInt64{Int64: ev.PlayerID, Valid: ev.PlayerID > 0},
			sql.NullString{String: ev.SessionID, Valid: ev.SessionID != ""},
			sql.NullString{String: ev.Data, Valid: ev.Data != ""},
			ev.At.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert %s: %w", ev.Type, err)
		}
	}
	return tx.Commit()
}
