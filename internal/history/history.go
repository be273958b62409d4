// Package history records per-tick metrics of a run into SQLite.
// It is write-mostly output for later analysis and cannot restore a game.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/models"
)

// Recorder wraps a SQLite connection holding run history
type Recorder struct {
	conn   *sqlx.DB
	insert *sqlx.Stmt
}

// Run is one recorded game
type Run struct {
	ID        string `db:"id"`
	StartedAt int64  `db:"started_at"`
	Preset    string `db:"preset"`
}

// Started returns the start time of the run
func (r Run) Started() time.Time {
	return time.Unix(r.StartedAt, 0)
}

// TickRow is the metrics line of one tick
type TickRow struct {
	RunID         string  `db:"run_id"`
	Tick          int     `db:"tick"`
	Food          float64 `db:"food"`
	Paused        bool    `db:"paused"`
	AssignedTotal int     `db:"assigned_total"`
	ThoughtsTotal float64 `db:"thoughts_total"`
	Discovered    int     `db:"discovered"`
}

// Summary aggregates a run
type Summary struct {
	Ticks       int     `db:"ticks"`
	MinFood     float64 `db:"min_food"`
	MaxFood     float64 `db:"max_food"`
	PausedTicks int     `db:"paused_ticks"`
	Pauses      int     `db:"pauses"`
	Discovered  int     `db:"discovered"`
}

// Open opens or creates a history database at the given path
func Open(path string) (*Recorder, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	r := &Recorder{conn: conn}
	if err := r.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}

	r.insert, err = conn.Preparex(`INSERT INTO ticks
		(run_id, tick, food, paused, assigned_total, thoughts_total, discovered)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("prepare history insert: %w", err)
	}

	return r, nil
}

// Close closes the database connection
func (r *Recorder) Close() error {
	if r.insert != nil {
		r.insert.Close()
	}
	return r.conn.Close()
}

func (r *Recorder) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		preset TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ticks (
		run_id TEXT NOT NULL REFERENCES runs(id),
		tick INTEGER NOT NULL,
		food REAL NOT NULL,
		paused INTEGER NOT NULL,
		assigned_total INTEGER NOT NULL,
		thoughts_total REAL NOT NULL,
		discovered INTEGER NOT NULL,
		PRIMARY KEY (run_id, tick)
	);
	`
	_, err := r.conn.Exec(schema)
	return err
}

// StartRun registers a new run and returns its id
func (r *Recorder) StartRun(preset string, startedAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := r.conn.Exec("INSERT INTO runs (id, started_at, preset) VALUES (?, ?, ?)",
		id, startedAt.Unix(), preset)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// RecordTick stores the metrics of one state. Recording the same tick twice
// replaces the earlier row.
func (r *Recorder) RecordTick(runID string, s *models.GameState) error {
	row := Metrics(runID, s)
	if _, err := r.conn.Exec("DELETE FROM ticks WHERE run_id = ? AND tick = ?", runID, row.Tick); err != nil {
		return fmt.Errorf("record tick %d: %w", row.Tick, err)
	}
	_, err := r.insert.Exec(row.RunID, row.Tick, row.Food, row.Paused,
		row.AssignedTotal, row.ThoughtsTotal, row.Discovered)
	if err != nil {
		return fmt.Errorf("record tick %d: %w", row.Tick, err)
	}
	return nil
}

// Metrics extracts the recorded metrics from a state
func Metrics(runID string, s *models.GameState) TickRow {
	row := TickRow{
		RunID:  runID,
		Tick:   s.Tick,
		Food:   s.Resources.Food,
		Paused: s.IsPaused,
	}
	for _, l := range models.AllWorkerLevels() {
		row.AssignedTotal += s.Pool(l).Assigned
	}
	for _, v := range engine.ThoughtsByLevel(s) {
		row.ThoughtsTotal += v
	}
	s.EachCard(func(c *models.Card) {
		if c.State == models.Discovered {
			row.Discovered++
		}
	})
	return row
}

// Runs lists recorded runs, newest first
func (r *Recorder) Runs() ([]Run, error) {
	var runs []Run
	err := r.conn.Select(&runs, "SELECT id, started_at, preset FROM runs ORDER BY started_at DESC, id")
	return runs, err
}

// Ticks returns the rows of a run in tick order
func (r *Recorder) Ticks(runID string) ([]TickRow, error) {
	var rows []TickRow
	err := r.conn.Select(&rows,
		`SELECT run_id, tick, food, paused, assigned_total, thoughts_total, discovered
		 FROM ticks WHERE run_id = ? ORDER BY tick`, runID)
	return rows, err
}

// Summary aggregates a run. Pauses counts ticks where the game went from
// running to paused.
func (r *Recorder) Summary(runID string) (Summary, error) {
	var s Summary
	err := r.conn.Get(&s, `
		SELECT
			COUNT(*) AS ticks,
			COALESCE(MIN(food), 0) AS min_food,
			COALESCE(MAX(food), 0) AS max_food,
			COALESCE(SUM(paused), 0) AS paused_ticks,
			COALESCE(SUM(CASE WHEN paused = 1 AND COALESCE(prev_paused, 0) = 0 THEN 1 ELSE 0 END), 0) AS pauses,
			COALESCE(MAX(discovered), 0) AS discovered
		FROM (
			SELECT food, paused, discovered,
				LAG(paused) OVER (ORDER BY tick) AS prev_paused
			FROM ticks WHERE run_id = ?
		)`, runID)
	if err != nil {
		return Summary{}, fmt.Errorf("summary %s: %w", runID, err)
	}
	return s, nil
}
