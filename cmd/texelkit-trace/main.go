// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelkit-trace/main.go
// Summary: Prints render traces recorded by texelkit-demo -trace.
// Usage: texelkit-trace [-session N] [-frame N] trace.db

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/trace"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("texelkit-trace", flag.ContinueOnError)
	session := fs.Int64("session", 0, "Show the frames of this session")
	frame := fs.Int("frame", -1, "With -session: show patches and calls of this frame index")
	limit := fs.Int("limit", 50, "Maximum frames listed")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	path := fs.Arg(0)
	if path == "" {
		path = config.System().GetString("render", "trace_db", "")
	}
	if path == "" {
		return errors.New("no trace database given and render.trace_db is not set")
	}

	r, err := trace.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	switch {
	case *session == 0:
		return printSessions(out, r)
	case *frame < 0:
		return printFrames(out, r, *session, *limit)
	default:
		return printFrame(out, r, *session, *frame)
	}
}

func printSessions(out io.Writer, r *trace.Reader) error {
	sessions, err := r.Sessions()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%-8s %-20s %8s %8s %8s %12s %10s\n", "SESSION", "STARTED", "FRAMES", "PATCHES", "OPS", "AREA", "MAX AREA")
	for _, s := range sessions {
		fmt.Fprintf(out, "%-8d %-20s %8d %8d %8d %12d %10d\n",
			s.Session, s.Started.Format("2006-01-02 15:04:05"), s.Frames, s.Patches, s.Ops, s.TotalArea, s.LargestArea)
	}
	return nil
}

func printFrames(out io.Writer, r *trace.Reader, session int64, limit int) error {
	frames, err := r.Frames(session, limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%-6s %-15s %8s %8s %6s\n", "FRAME", "TIME", "PATCHES", "AREA", "OPS")
	for _, f := range frames {
		fmt.Fprintf(out, "%-6d %-15s %8d %8d %6d\n",
			f.Index, f.Timestamp.Format("15:04:05.000000"), f.PatchCount, f.PatchArea, f.OpCount)
	}
	return nil
}

func printFrame(out io.Writer, r *trace.Reader, session int64, index int) error {
	frames, err := r.Frames(session, 0)
	if err != nil {
		return err
	}
	for _, f := range frames {
		if f.Index != index {
			continue
		}
		patches, err := r.Patches(f.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "frame %d: %d patches, area %d\n", f.Index, len(patches), f.PatchArea)
		for _, p := range patches {
			fmt.Fprintf(out, "  patch %v\n", p)
		}

		counts, err := r.OpCounts(f.ID)
		if err != nil {
			return err
		}
		kinds := make([]string, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(out, "  %-10s %d\n", k, counts[k])
		}

		ops, err := r.Ops(f.ID)
		if err != nil {
			return err
		}
		for _, op := range ops {
			fmt.Fprintf(out, "    %s\n", op)
		}
		return nil
	}
	return fmt.Errorf("session %d has no frame %d", session, index)
}
