// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelkit-demo/main.go
// Summary: Demo driver for the toolkit on a terminal or headless.
// Usage: texelkit-demo [-file path] [-style name] [-headless] [-stream] [-replay path] [-trace db]

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/framegrace/texelkit/config"
	"github.com/framegrace/texelkit/core"
	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
	"github.com/framegrace/texelkit/gfx/softdev"
	"github.com/framegrace/texelkit/gfx/streamdev"
	"github.com/framegrace/texelkit/gfx/tcelldev"
	"github.com/framegrace/texelkit/trace"
)

const sampleSource = `package main

import "fmt"

// fib returns the n-th Fibonacci number.
func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

func main() {
	for i := 0; i < 10; i++ {
		fmt.Println(i, fib(i))
	}
}
`

type options struct {
	file     string
	style    string
	headless bool
	stream   bool
	replay   string
	list     bool
	traceDB  string
	frames   int
	width    int
	height   int
	debug    bool
	checksum bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	sys := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Demo: Config problem, using defaults: %v", err)
	}

	fs := flag.NewFlagSet("texelkit-demo", flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.file, "file", "", "Source file to show (default: built-in sample)")
	fs.StringVar(&opts.style, "style", sys.GetString("demo", "style", "mocha"), "Style config name")
	fs.BoolVar(&opts.headless, "headless", false, "Render off-screen even on a terminal")
	fs.BoolVar(&opts.stream, "stream", false, "Headless: write the draw stream to stdout")
	fs.BoolVar(&opts.checksum, "checksum", true, "Checksum stream frames")
	fs.StringVar(&opts.replay, "replay", "", "Replay a recorded draw stream and exit")
	fs.BoolVar(&opts.list, "list-styles", false, "List available styles and exit")
	fs.StringVar(&opts.traceDB, "trace", sys.GetString("render", "trace_db", ""), "Record frames to this SQLite database")
	fs.IntVar(&opts.frames, "frames", 5, "Headless: number of scroll steps to render")
	fs.IntVar(&opts.width, "width", sys.GetInt("demo", "headless_width", 80), "Headless canvas width")
	fs.IntVar(&opts.height, "height", sys.GetInt("demo", "headless_height", 24), "Headless canvas height")
	fs.BoolVar(&opts.debug, "debug-patches", sys.GetBool("render", "debug_patches", false), "Outline repainted patches")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if opts.list {
		for _, name := range config.AvailableStyles() {
			fmt.Println(name)
		}
		return nil
	}
	if opts.replay != "" {
		return replayStream(opts.replay)
	}

	filename, source := "sample.go", sampleSource
	if opts.file != "" {
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("read %s: %w", opts.file, err)
		}
		filename, source = filepath.Base(opts.file), string(data)
	}

	tkOpts := []core.Option{core.WithConfig(sys)}
	if opts.traceDB != "" {
		rec, err := trace.Open(opts.traceDB)
		if err != nil {
			return err
		}
		tkOpts = append(tkOpts, core.WithTracer(rec))
	}
	tk := core.NewToolkit(tkOpts...)
	tk.DebugPatches = opts.debug
	defer func() {
		if err := tk.Close(); err != nil {
			log.Printf("Demo: Closing toolkit: %v", err)
		}
	}()

	th := loadTheme(config.Style(opts.style))
	overlap := sys.GetBool("render", "siblings_overlap", true)
	d := newDesktop(th, filename, source, overlap)

	if opts.headless || opts.stream || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runHeadless(tk, d, opts)
	}
	return runTerminal(tk, d)
}

func runTerminal(tk *core.Toolkit, d *desktop) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	dev := tcelldev.New(screen)
	root := core.NewRootPanel(tk, dev)
	refresh := make(chan bool, 1)
	root.SetRefreshNotifier(refresh)
	queue := &core.EventQueue{}
	root.SetEventHandler(queue)
	root.SetChild(d)
	d.code.GrabFocus()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	root.Render()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if k, isKey := ev.(*tcell.EventKey); isKey {
				if k.Key() == tcell.KeyCtrlC || (k.Key() == tcell.KeyRune && k.Rune() == 'q') {
					return nil
				}
			}
			if _, isResize := ev.(*tcell.EventResize); isResize {
				screen.Sync()
			}
			root.HandleEvent(ev)
			d.updateStatus()
		case <-refresh:
		}
		for _, ev := range queue.Drain() {
			log.Printf("Demo: Posted event %T", ev)
		}
		if root.IsDirty() {
			root.Render()
		}
	}
}

// runHeadless renders into memory, or into a draw stream on stdout, and
// scrolls the code view once per frame.
func runHeadless(tk *core.Toolkit, d *desktop, opts options) error {
	size := geom.Size{W: opts.width, H: opts.height}
	if size.IsEmpty() {
		return fmt.Errorf("invalid canvas size %dx%d", size.W, size.H)
	}

	var dev gfx.Device
	var stream *streamdev.Device
	if opts.stream {
		stream = streamdev.New(os.Stdout, size, opts.checksum)
		dev = stream
	} else {
		dev = softdev.New(gfx.NewMemSurface(size.W, size.H))
	}

	root := core.NewRootPanel(tk, dev)
	root.SetChild(d)
	d.code.GrabFocus()
	root.Render()

	down := tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	for i := 0; i < opts.frames; i++ {
		root.HandleEvent(down)
		d.updateStatus()
		root.Render()
	}
	if stream != nil && stream.Err() != nil {
		return stream.Err()
	}
	log.Printf("Demo: Rendered %d frames at %dx%d", root.Frame(), size.W, size.H)
	return nil
}

func replayStream(path string) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open stream: %w", err)
		}
		defer f.Close()
		r = f
	}
	// The canvas size is only known after the hello frame, so replay into a
	// generously sized surface.
	canvas := gfx.NewMemSurface(512, 256)
	size, frames, err := streamdev.Replay(r, softdev.New(canvas))
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	fmt.Printf("%dx%d canvas, %d frames\n", size.W, size.H, frames)
	return nil
}
