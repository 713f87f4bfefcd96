// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package streamdev

import (
	"bytes"
	"errors"
	"testing"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
	"github.com/framegrace/texelkit/gfx/logdev"
	"github.com/framegrace/texelkit/gfx/softdev"
)

// draw issues the same frame on any device.
func draw(d gfx.Device) {
	icon := gfx.NewMemSurface(3, 2)
	icon.FillRect(geom.NewRect(0, 0, 3, 2), gfx.Color{R: 200, G: 10, A: 180})
	icon.SetPixel(1, 1, gfx.Transparent)

	d.BeginRender()
	d.Fill(geom.NewRect(0, 0, 8, 8), gfx.RGB(20, 30, 40))
	d.ClipFill(geom.NewRect(2, 2, 3, 3), geom.NewRect(0, 0, 8, 8), gfx.RGB(90, 0, 0))
	prev := d.SetTintColor(gfx.RGB(255, 128, 255))
	d.ClipBlit(geom.NewRect(1, 1, 6, 6), icon, geom.NewRect(0, 0, 3, 2), 5, 5)
	d.SetTintColor(prev)
	old := d.SetBlendMode(gfx.BlendAdd)
	d.Fill(geom.NewRect(0, 7, 8, 1), gfx.RGB(50, 50, 50))
	d.SetBlendMode(old)
	if tp, ok := d.(gfx.TextPrinter); ok {
		tp.ClipPrint(geom.NewRect(0, 0, 8, 1), geom.Coord{X: 1}, "ok", gfx.White)
	}
	d.EndRender()
}

func TestReplayMatchesDirectRendering(t *testing.T) {
	for _, checksum := range []bool{false, true} {
		var buf bytes.Buffer
		sd := New(&buf, geom.Size{W: 8, H: 8}, checksum)
		draw(sd)
		if err := sd.Err(); err != nil {
			t.Fatalf("stream error: %v", err)
		}

		direct := gfx.NewMemSurface(8, 8)
		draw(softdev.New(direct))

		replayed := gfx.NewMemSurface(8, 8)
		rec := logdev.Wrap(softdev.New(replayed))
		size, frames, err := Replay(&buf, rec)
		if err != nil {
			t.Fatalf("replay: %v", err)
		}
		if size != (geom.Size{W: 8, H: 8}) || frames != 1 {
			t.Fatalf("unexpected size %v frames %d", size, frames)
		}
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				if a, b := direct.Pixel(x, y), replayed.Pixel(x, y); a != b {
					t.Fatalf("checksum=%v: pixel (%d,%d) differs: %v vs %v", checksum, x, y, a, b)
				}
			}
		}
		printed := rec.Filter(func(op logdev.Op) bool { return op.Kind == logdev.OpClipPrint })
		if len(printed) != 1 || printed[0].Text != "ok" || printed[0].Dest != (geom.Coord{X: 1}) {
			t.Fatalf("print not replayed: %v", printed)
		}
	}
}

func TestReplayRejectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	sd := New(&buf, geom.Size{W: 4, H: 4}, true)
	sd.Fill(geom.NewRect(0, 0, 4, 4), gfx.White)
	data := buf.Bytes()

	corrupt := append([]byte(nil), data...)
	corrupt[len(corrupt)-1] ^= 0xff
	if _, _, err := Replay(bytes.NewReader(corrupt), logdev.New(geom.Size{W: 4, H: 4})); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected checksum mismatch, got %v", err)
	}

	badMagic := append([]byte(nil), data...)
	badMagic[0] ^= 0xff
	if _, _, err := Replay(bytes.NewReader(badMagic), logdev.New(geom.Size{})); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected invalid magic, got %v", err)
	}

	badVersion := append([]byte(nil), data...)
	badVersion[4] = Version + 1
	if _, _, err := Replay(bytes.NewReader(badVersion), logdev.New(geom.Size{})); !errors.Is(err, ErrUnsupportedVer) {
		t.Fatalf("expected unsupported version, got %v", err)
	}

	short := data[:len(data)-3]
	if _, _, err := Replay(bytes.NewReader(short), logdev.New(geom.Size{})); !errors.Is(err, ErrShortPayload) {
		t.Fatalf("expected short payload, got %v", err)
	}
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("pipe closed")
	}
	w.n--
	return len(p), nil
}

func TestWriteErrorIsSticky(t *testing.T) {
	w := &failingWriter{n: 3}
	sd := New(w, geom.Size{W: 2, H: 2}, false)
	if !sd.BeginRender() {
		t.Fatalf("first frame should succeed")
	}
	if sd.EndRender() {
		t.Fatalf("EndRender must report the write failure")
	}
	if sd.Err() == nil {
		t.Fatalf("expected a stored error")
	}
	sd.Fill(geom.NewRect(0, 0, 1, 1), gfx.White)
	if w.n != 0 {
		t.Fatalf("writes continued after an error")
	}
}

func TestReplayRejectsTruncatedMessages(t *testing.T) {
	for _, tc := range []struct {
		name    string
		typ     MessageType
		payload []byte
	}{
		{"hello", MsgHello, make([]byte, 4)},
		{"tint", MsgTint, make([]byte, 3)},
		{"fill", MsgFill, make([]byte, 12)},
		{"fill too long", MsgFill, make([]byte, 40)},
		{"blit header", MsgBlit, make([]byte, 8)},
		{"print", MsgPrint, make([]byte, 24)},
		{"blend", MsgBlendMode, nil},
	} {
		var buf bytes.Buffer
		if err := writeFrame(&buf, header{Version: Version, Type: tc.typ}, tc.payload); err != nil {
			t.Fatalf("%s: writeFrame: %v", tc.name, err)
		}
		dev := logdev.New(geom.Size{W: 4, H: 4})
		if _, _, err := Replay(&buf, dev); !errors.Is(err, ErrBadPayload) {
			t.Fatalf("%s: expected malformed payload, got %v", tc.name, err)
		}
		if len(dev.Ops()) != 0 {
			t.Fatalf("%s: truncated message reached the device: %v", tc.name, dev.Ops())
		}
	}

	var buf bytes.Buffer
	if err := writeFrame(&buf, header{Version: Version, Type: MsgPrint}, make([]byte, 28)); err != nil {
		t.Fatalf("writeFrame: %v", err)
	}
	if _, _, err := Replay(&buf, logdev.New(geom.Size{W: 4, H: 4})); err != nil {
		t.Fatalf("empty-text print must replay: %v", err)
	}
}
