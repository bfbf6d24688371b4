// Package store persists logs and checks in a local SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/kcaltank/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a record with the given id does not exist.
var ErrNotFound = errors.New("record not found")

// Store provides SQLite-backed persistence for logs and checks.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewID returns a fresh record id.
func NewID() string {
	return uuid.NewString()
}

const logColumns = `id, timestamp_ms, kcal, minutes, name, exercise_key, style, size,
	count, abv, brewery, brand, rating, memo`

const checkColumns = `id, timestamp_ms, is_dry_day, waist_ease, foot_lightness,
	water_ok, fiber_ok, exercised, weight`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// AddLog stores a new log and returns its id. An empty id is assigned.
func (s *Store) AddLog(l model.RawLog) (string, error) {
	if l.ID == "" {
		l.ID = NewID()
	}
	if err := insertLog(s.db, "INSERT", l); err != nil {
		return "", fmt.Errorf("adding log: %w", err)
	}
	return l.ID, nil
}

// ReplaceLog overwrites an existing log in place.
func (s *Store) ReplaceLog(l model.RawLog) error {
	res, err := s.db.Exec(`UPDATE logs SET
		timestamp_ms = ?, kcal = ?, minutes = ?, name = ?, exercise_key = ?, style = ?, size = ?,
		count = ?, abv = ?, brewery = ?, brand = ?, rating = ?, memo = ?
		WHERE id = ?`,
		l.Timestamp.UnixMilli(), nullFloat(l.Kcal), nullFloat(l.Minutes), l.Name, l.ExerciseKey,
		l.Style, l.Size, l.Count, l.ABV, l.Brewery, l.Brand, l.Rating, l.Memo, l.ID,
	)
	if err != nil {
		return fmt.Errorf("replacing log %s: %w", l.ID, err)
	}
	return requireRow(res, l.ID)
}

// GetLog returns a single log by id.
func (s *Store) GetLog(id string) (model.RawLog, error) {
	row := s.db.QueryRow("SELECT "+logColumns+" FROM logs WHERE id = ?", id)
	l, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.RawLog{}, fmt.Errorf("log %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.RawLog{}, fmt.Errorf("reading log %s: %w", id, err)
	}
	return l, nil
}

// DeleteLogs removes the given logs and returns how many existed.
func (s *Store) DeleteLogs(ids ...string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	deleted := 0
	for _, id := range ids {
		res, err := tx.Exec("DELETE FROM logs WHERE id = ?", id)
		if err != nil {
			return 0, fmt.Errorf("deleting log %s: %w", id, err)
		}
		n, _ := res.RowsAffected()
		deleted += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing delete: %w", err)
	}
	return deleted, nil
}

// ListLogs returns a page of logs, newest first.
func (s *Store) ListLogs(offset, limit int) ([]model.RawLog, error) {
	if limit <= 0 {
		return nil, nil
	}
	if offset < 0 {
		offset = 0
	}
	return s.queryLogs("SELECT "+logColumns+" FROM logs ORDER BY timestamp_ms DESC, rowid DESC LIMIT ? OFFSET ?", limit, offset)
}

// LogCount returns the number of stored logs.
func (s *Store) LogCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM logs").Scan(&count)
	return count, err
}

// LoadAllLogs reads every log, oldest first.
func (s *Store) LoadAllLogs() ([]model.RawLog, error) {
	return s.queryLogs("SELECT " + logColumns + " FROM logs ORDER BY timestamp_ms, rowid")
}

// SaveCheck inserts or replaces a check by id and returns the id.
func (s *Store) SaveCheck(c model.CheckEntry) (string, error) {
	if c.ID == "" {
		c.ID = NewID()
	}
	if err := insertCheck(s.db, "INSERT OR REPLACE", c); err != nil {
		return "", fmt.Errorf("saving check: %w", err)
	}
	return c.ID, nil
}

// CheckForDay returns the latest check on the calendar day of day,
// evaluated in day's location.
func (s *Store) CheckForDay(day time.Time) (model.CheckEntry, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	row := s.db.QueryRow("SELECT "+checkColumns+` FROM checks
		WHERE timestamp_ms >= ? AND timestamp_ms < ?
		ORDER BY timestamp_ms DESC, rowid DESC LIMIT 1`,
		start.UnixMilli(), end.UnixMilli())
	c, err := scanCheck(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CheckEntry{}, fmt.Errorf("check for %s: %w", start.Format("2006-01-02"), ErrNotFound)
	}
	if err != nil {
		return model.CheckEntry{}, fmt.Errorf("reading check: %w", err)
	}
	return c, nil
}

// LoadAllChecks reads every check, oldest first.
func (s *Store) LoadAllChecks() ([]model.CheckEntry, error) {
	rows, err := s.db.Query("SELECT " + checkColumns + " FROM checks ORDER BY timestamp_ms, rowid")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var checks []model.CheckEntry
	for rows.Next() {
		c, err := scanCheck(rows)
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, rows.Err()
}

// DeleteCheck removes a check by id.
func (s *Store) DeleteCheck(id string) error {
	res, err := s.db.Exec("DELETE FROM checks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting check %s: %w", id, err)
	}
	return requireRow(res, id)
}

// Import writes logs and checks in one transaction, replacing records that
// share an id. With replace set, existing data is removed first.
func (s *Store) Import(logs []model.RawLog, checks []model.CheckEntry, replace bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.Exec("DELETE FROM logs"); err != nil {
			return fmt.Errorf("clearing logs: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM checks"); err != nil {
			return fmt.Errorf("clearing checks: %w", err)
		}
	}

	for _, l := range logs {
		if l.ID == "" {
			l.ID = NewID()
		}
		if err := insertLog(tx, "INSERT OR REPLACE", l); err != nil {
			return fmt.Errorf("importing log %s: %w", l.ID, err)
		}
	}
	for _, c := range checks {
		if c.ID == "" {
			c.ID = NewID()
		}
		if err := insertCheck(tx, "INSERT OR REPLACE", c); err != nil {
			return fmt.Errorf("importing check %s: %w", c.ID, err)
		}
	}

	return tx.Commit()
}

func insertLog(db execer, verb string, l model.RawLog) error {
	_, err := db.Exec(verb+" INTO logs ("+logColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Timestamp.UnixMilli(), nullFloat(l.Kcal), nullFloat(l.Minutes), l.Name, l.ExerciseKey,
		l.Style, l.Size, l.Count, l.ABV, l.Brewery, l.Brand, l.Rating, l.Memo,
	)
	return err
}

func insertCheck(db execer, verb string, c model.CheckEntry) error {
	_, err := db.Exec(verb+" INTO checks ("+checkColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Timestamp.UnixMilli(), boolInt(c.IsDryDay), boolInt(c.WaistEase), boolInt(c.FootLightness),
		boolInt(c.WaterOk), boolInt(c.FiberOk), boolInt(c.Exercised), nullFloat(c.Weight),
	)
	return err
}

func (s *Store) queryLogs(query string, args ...any) ([]model.RawLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var logs []model.RawLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLog(row scanner) (model.RawLog, error) {
	var (
		l             model.RawLog
		ms            int64
		kcal, minutes sql.NullFloat64
	)
	err := row.Scan(&l.ID, &ms, &kcal, &minutes, &l.Name, &l.ExerciseKey, &l.Style, &l.Size,
		&l.Count, &l.ABV, &l.Brewery, &l.Brand, &l.Rating, &l.Memo)
	if err != nil {
		return l, err
	}
	l.Timestamp = time.UnixMilli(ms)
	if kcal.Valid {
		l.Kcal = &kcal.Float64
	}
	if minutes.Valid {
		l.Minutes = &minutes.Float64
	}
	return l, nil
}

func scanCheck(row scanner) (model.CheckEntry, error) {
	var (
		c      model.CheckEntry
		ms     int64
		weight sql.NullFloat64
	)
	var dry, waist, foot, water, fiber, exercised int
	err := row.Scan(&c.ID, &ms, &dry, &waist, &foot, &water, &fiber, &exercised, &weight)
	if err != nil {
		return c, err
	}
	c.Timestamp = time.UnixMilli(ms)
	c.IsDryDay = dry != 0
	c.WaistEase = waist != 0
	c.FootLightness = foot != 0
	c.WaterOk = water != 0
	c.FiberOk = fiber != 0
	c.Exercised = exercised != 0
	if weight.Valid {
		c.Weight = &weight.Float64
	}
	return c, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
