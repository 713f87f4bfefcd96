// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: trace/reader.go
// Summary: Read-only queries over a trace database.

package trace

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/framegrace/texelkit/geom"
)

// ErrNoTrace is returned when the database file does not exist.
var ErrNoTrace = errors.New("trace: no trace database")

// Reader inspects a trace database written by a Recorder.
type Reader struct {
	db *sql.DB
}

// OpenReader opens an existing trace database without starting a session.
func OpenReader(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoTrace, path)
		}
		return nil, fmt.Errorf("trace: stat %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(2000)&_pragma=query_only(1)")
	if err != nil {
		return nil, fmt.Errorf("trace: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("trace: connect: %w", err)
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() error { return r.db.Close() }

// Sessions summarises every session, oldest first.
func (r *Reader) Sessions() ([]Summary, error) {
	rows, err := r.db.Query(`
        SELECT s.id, s.started,
               COUNT(f.id),
               COALESCE(SUM(f.patch_count), 0),
               COALESCE(SUM(f.op_count), 0),
               COALESCE(SUM(f.patch_area), 0),
               COALESCE(MAX(f.patch_area), 0)
        FROM sessions s LEFT JOIN frames f ON f.session_id = s.id
        GROUP BY s.id ORDER BY s.id`)
	if err != nil {
		return nil, fmt.Errorf("trace: query sessions: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var started int64
		if err := rows.Scan(&s.Session, &started, &s.Frames, &s.Patches, &s.Ops, &s.TotalArea, &s.LargestArea); err != nil {
			return nil, fmt.Errorf("trace: scan session: %w", err)
		}
		s.Started = time.Unix(0, started)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Frames returns the frames of a session in render order.
func (r *Reader) Frames(session int64, limit int) ([]Frame, error) {
	return queryFrames(r.db, session, limit)
}

// Patches returns the dirty rects a frame repainted.
func (r *Reader) Patches(frameID int64) ([]geom.Rect, error) {
	rows, err := r.db.Query("SELECT x, y, w, h FROM patches WHERE frame_id = ? ORDER BY rowid", frameID)
	if err != nil {
		return nil, fmt.Errorf("trace: query patches: %w", err)
	}
	defer rows.Close()

	var out []geom.Rect
	for rows.Next() {
		var p geom.Rect
		if err := rows.Scan(&p.X, &p.Y, &p.W, &p.H); err != nil {
			return nil, fmt.Errorf("trace: scan patch: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// OpCounts tallies device calls by kind for one frame.
func (r *Reader) OpCounts(frameID int64) (map[string]int, error) {
	rows, err := r.db.Query("SELECT kind, COUNT(*) FROM ops WHERE frame_id = ? GROUP BY kind", frameID)
	if err != nil {
		return nil, fmt.Errorf("trace: query ops: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("trace: scan op count: %w", err)
		}
		out[kind] = n
	}
	return out, rows.Err()
}

// Ops returns the recorded calls of a frame as their text form.
func (r *Reader) Ops(frameID int64) ([]string, error) {
	rows, err := r.db.Query("SELECT detail FROM ops WHERE frame_id = ? ORDER BY seq", frameID)
	if err != nil {
		return nil, fmt.Errorf("trace: query ops: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("trace: scan op: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
