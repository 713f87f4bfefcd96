// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: trace/trace.go
// Summary: SQLite recorder for render frames, their dirty patches and device calls.
//
// Each Open starts a new session. A frame row keeps the patch count, the
// painted area and the op count so summaries need no joins.

package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx/logdev"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    started INTEGER NOT NULL          -- UnixNano
);

CREATE TABLE IF NOT EXISTS frames (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL REFERENCES sessions(id),
    frame_index INTEGER NOT NULL,
    timestamp INTEGER NOT NULL,       -- UnixNano
    patch_count INTEGER NOT NULL,
    patch_area INTEGER NOT NULL,
    op_count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_frames_session ON frames(session_id, frame_index);

CREATE TABLE IF NOT EXISTS patches (
    frame_id INTEGER NOT NULL REFERENCES frames(id),
    x INTEGER NOT NULL, y INTEGER NOT NULL,
    w INTEGER NOT NULL, h INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ops (
    frame_id INTEGER NOT NULL REFERENCES frames(id),
    seq INTEGER NOT NULL,
    kind TEXT NOT NULL,
    detail TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_patches_frame ON patches(frame_id);
CREATE INDEX IF NOT EXISTS idx_ops_frame ON ops(frame_id);
`

var (
	ErrClosed        = errors.New("trace: recorder closed")
	ErrSchemaVersion = errors.New("trace: database written by a newer version")
)

// Frame is one recorded render pass.
type Frame struct {
	ID         int64
	Session    int64
	Index      int
	Timestamp  time.Time
	PatchCount int
	PatchArea  int
	OpCount    int
}

// Summary aggregates a session.
type Summary struct {
	Session     int64
	Started     time.Time
	Frames      int
	Patches     int
	Ops         int
	TotalArea   int64
	LargestArea int
}

// Recorder writes frames to a SQLite database. It is safe for concurrent use.
type Recorder struct {
	db      *sql.DB
	session int64
	mu      sync.Mutex
	closed  bool
}

// Open creates or opens the database at path and starts a new session.
func Open(path string) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("trace: create directory: %w", err)
		}
	}
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(2000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("trace: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: connect: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	res, err := db.Exec("INSERT INTO sessions (started) VALUES (?)", time.Now().UnixNano())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: start session: %w", err)
	}
	session, err := res.LastInsertId()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: start session: %w", err)
	}
	log.Printf("Trace: Recording session %d to %s", session, path)
	return &Recorder{db: db, session: session}, nil
}

func migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("trace: create schema: %w", err)
	}
	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
			return fmt.Errorf("trace: write schema version: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("trace: read schema version: %w", err)
	case version > schemaVersion:
		return fmt.Errorf("%w: version %d", ErrSchemaVersion, version)
	}
	return nil
}

// Session returns the id of the session this recorder writes to.
func (r *Recorder) Session() int64 { return r.session }

// RecordFrame stores one frame with its patches and device calls in a
// single transaction.
func (r *Recorder) RecordFrame(index int, patches []geom.Rect, ops []logdev.Op) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}

	area := geom.PatchesOf(patches...).Area()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("trace: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO frames (session_id, frame_index, timestamp, patch_count, patch_area, op_count) VALUES (?, ?, ?, ?, ?, ?)",
		r.session, index, time.Now().UnixNano(), len(patches), area, len(ops))
	if err != nil {
		return fmt.Errorf("trace: insert frame %d: %w", index, err)
	}
	frameID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("trace: insert frame %d: %w", index, err)
	}

	pstmt, err := tx.Prepare("INSERT INTO patches (frame_id, x, y, w, h) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("trace: prepare patches: %w", err)
	}
	defer pstmt.Close()
	for _, p := range patches {
		if _, err := pstmt.Exec(frameID, p.X, p.Y, p.W, p.H); err != nil {
			return fmt.Errorf("trace: insert patch: %w", err)
		}
	}

	ostmt, err := tx.Prepare("INSERT INTO ops (frame_id, seq, kind, detail) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("trace: prepare ops: %w", err)
	}
	defer ostmt.Close()
	for i, op := range ops {
		if _, err := ostmt.Exec(frameID, i, op.Kind.String(), op.String()); err != nil {
			return fmt.Errorf("trace: insert op: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("trace: commit frame %d: %w", index, err)
	}
	return nil
}

// Frames returns the frames of a session in render order. A limit of zero
// or less returns all of them.
func (r *Recorder) Frames(session int64, limit int) ([]Frame, error) {
	return queryFrames(r.db, session, limit)
}

// Close ends the session and closes the database.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.db.Close()
}

func queryFrames(db *sql.DB, session int64, limit int) ([]Frame, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(`
        SELECT id, session_id, frame_index, timestamp, patch_count, patch_area, op_count
        FROM frames WHERE session_id = ? ORDER BY frame_index LIMIT ?`, session, limit)
	if err != nil {
		return nil, fmt.Errorf("trace: query frames: %w", err)
	}
	defer rows.Close()

	var out []Frame
	for rows.Next() {
		var f Frame
		var ts int64
		if err := rows.Scan(&f.ID, &f.Session, &f.Index, &ts, &f.PatchCount, &f.PatchArea, &f.OpCount); err != nil {
			return nil, fmt.Errorf("trace: scan frame: %w", err)
		}
		f.Timestamp = time.Unix(0, ts)
		out = append(out, f)
	}
	return out, rows.Err()
}
