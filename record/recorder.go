// Package record stores sampled particle trajectories in SQLite
package record

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lixenwraith/gravity/engine"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TEXT NOT NULL,
	particles INTEGER NOT NULL,
	sources INTEGER NOT NULL,
	scheme TEXT NOT NULL,
	min_distance REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS samples (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	frame INTEGER NOT NULL,
	particle INTEGER NOT NULL,
	x REAL,
	y REAL,
	vx REAL,
	vy REAL,
	PRIMARY KEY (run_id, frame, particle)
);`

const insertSample = `INSERT INTO samples (run_id, frame, particle, x, y, vx, vy) VALUES (?, ?, ?, ?, ?, ?, ?)`

// ErrNotStarted is returned when recording before Begin
var ErrNotStarted = errors.New("recorder has no active run")

// Sample is one particle state at one frame
// NaN components are stored as NULL by SQLite and read back as invalid
type Sample struct {
	X, Y, VX, VY sql.NullFloat64
}

// Recorder writes every Nth frame of a run; it implements engine.Observer
type Recorder struct {
	db    *sql.DB
	every uint64
	runID int64
	err   error
	count int
}

// Open creates or opens the database at path and ensures the schema
// every < 1 records every frame
func Open(path string, every uint64) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// Single writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Recorder{db: db, every: max(every, 1)}, nil
}

// Begin registers a new run for sim and stores its initial state as frame 0
func (r *Recorder) Begin(sim *engine.Simulation) error {
	cfg := sim.Config()
	res, err := r.db.Exec(
		`INSERT INTO runs (started_at, particles, sources, scheme, min_distance) VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), len(sim.Particles()), len(sim.Sources()), cfg.Scheme, cfg.MinDistance,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	r.runID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	return r.write(sim, 0)
}

// RunID returns the active run, 0 before Begin
func (r *Recorder) RunID() int64 {
	return r.runID
}

// OnFrame records sampled frames; the first failure stops recording and is kept for Err
func (r *Recorder) OnFrame(sim *engine.Simulation, stats engine.FrameStats) {
	if r.err != nil || stats.Frame%r.every != 0 {
		return
	}
	if err := r.write(sim, stats.Frame); err != nil {
		r.err = err
		log.Printf("Trajectory recording stopped at frame %d: %v", stats.Frame, err)
	}
}

// write stores every particle of one frame in a single transaction
func (r *Recorder) write(sim *engine.Simulation, frame uint64) error {
	if r.runID == 0 {
		return ErrNotStarted
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin frame %d: %w", frame, err)
	}

	stmt, err := tx.Prepare(insertSample)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare frame %d: %w", frame, err)
	}
	defer stmt.Close()

	for i, p := range sim.Particles() {
		if _, err := stmt.Exec(r.runID, int64(frame), i, p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert frame %d particle %d: %w", frame, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit frame %d: %w", frame, err)
	}
	r.count++
	return nil
}

// Frames returns the number of frames written in this run
func (r *Recorder) Frames() int {
	return r.count
}

// Err returns the error that stopped recording, if any
func (r *Recorder) Err() error {
	return r.err
}

// Close releases the database and reports any recording failure
func (r *Recorder) Close() error {
	closeErr := r.db.Close()
	if r.err != nil {
		return r.err
	}
	return closeErr
}

// RecordedFrames lists the frame numbers stored for a run in ascending order
func (r *Recorder) RecordedFrames(runID int64) ([]uint64, error) {
	rows, err := r.db.Query(`SELECT DISTINCT frame FROM samples WHERE run_id = ? ORDER BY frame`, runID)
	if err != nil {
		return nil, fmt.Errorf("query frames: %w", err)
	}
	defer rows.Close()

	var frames []uint64
	for rows.Next() {
		var f int64
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("scan frame: %w", err)
		}
		frames = append(frames, uint64(f))
	}
	return frames, rows.Err()
}

// Lookup returns one stored particle state
func (r *Recorder) Lookup(runID int64, frame uint64, particle int) (Sample, error) {
	var s Sample
	err := r.db.QueryRow(
		`SELECT x, y, vx, vy FROM samples WHERE run_id = ? AND frame = ? AND particle = ?`,
		runID, int64(frame), particle,
	).Scan(&s.X, &s.Y, &s.VX, &s.VY)
	if err != nil {
		return Sample{}, fmt.Errorf("lookup run %d frame %d particle %d: %w", runID, frame, particle, err)
	}
	return s, nil
}
