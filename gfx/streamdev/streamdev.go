// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: gfx/streamdev/streamdev.go
// Summary: Device that serialises draw calls to a stream, and the matching replayer.
// Usage: Lets a widget tree render on one side of a pipe or socket and be
// composited by a real device on the other.

package streamdev

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/framegrace/texelkit/geom"
	"github.com/framegrace/texelkit/gfx"
)

// Device encodes every call as one frame. Blits carry the clipped source
// pixels so the receiver needs no copy of the surface. The first write error
// is kept and later calls become no-ops.
type Device struct {
	w        io.Writer
	size     geom.Size
	blend    gfx.BlendMode
	tint     gfx.Color
	seq      uint64
	checksum bool
	err      error
}

// New starts a stream for a canvas of the given size and writes the hello frame.
func New(w io.Writer, size geom.Size, checksum bool) *Device {
	d := &Device{w: w, size: size, blend: gfx.BlendBlend, tint: gfx.White, checksum: checksum}
	var buf bytes.Buffer
	putInt(&buf, size.W)
	putInt(&buf, size.H)
	d.send(MsgHello, buf.Bytes())
	return d
}

// Err returns the first write error, if any.
func (d *Device) Err() error { return d.err }

func (d *Device) send(t MessageType, payload []byte) {
	if d.err != nil {
		return
	}
	hdr := header{Version: Version, Type: t, Sequence: d.seq}
	if d.checksum {
		hdr.Flags |= FlagChecksum
	}
	d.seq++
	if err := writeFrame(d.w, hdr, payload); err != nil {
		d.err = fmt.Errorf("streamdev: write frame %d: %w", hdr.Sequence, err)
		log.Printf("StreamDevice: %v", d.err)
	}
}

func (d *Device) CanvasSize() geom.Size { return d.size }

func (d *Device) BeginRender() bool {
	d.send(MsgBeginRender, nil)
	return d.err == nil
}

func (d *Device) EndRender() bool {
	d.send(MsgEndRender, nil)
	return d.err == nil
}

func (d *Device) SetBlendMode(mode gfx.BlendMode) gfx.BlendMode {
	prev := d.blend
	d.blend = mode
	d.send(MsgBlendMode, []byte{byte(mode)})
	return prev
}

func (d *Device) BlendMode() gfx.BlendMode { return d.blend }

func (d *Device) SetTintColor(c gfx.Color) gfx.Color {
	prev := d.tint
	d.tint = c
	d.send(MsgTint, []byte{c.R, c.G, c.B, c.A})
	return prev
}

func (d *Device) TintColor() gfx.Color { return d.tint }

func (d *Device) Fill(rect geom.Rect, c gfx.Color) {
	d.ClipFill(geom.RectAt(geom.Coord{}, d.size), rect, c)
}

func (d *Device) ClipFill(clip, rect geom.Rect, c gfx.Color) {
	var buf bytes.Buffer
	putRect(&buf, clip)
	putRect(&buf, rect)
	buf.Write([]byte{c.R, c.G, c.B, c.A})
	d.send(MsgFill, buf.Bytes())
}

func (d *Device) Blit(src gfx.Surface, srcRect geom.Rect, dx, dy int) {
	d.ClipBlit(geom.RectAt(geom.Coord{}, d.size), src, srcRect, dx, dy)
}

func (d *Device) ClipBlit(clip geom.Rect, src gfx.Surface, srcRect geom.Rect, dx, dy int) {
	dst, ofs := gfx.BlitRect(clip, src, srcRect, dx, dy)
	if dst.IsEmpty() {
		return
	}
	var buf bytes.Buffer
	putRect(&buf, dst)
	for y := 0; y < dst.H; y++ {
		for x := 0; x < dst.W; x++ {
			p := src.Pixel(ofs.X+x, ofs.Y+y)
			buf.Write([]byte{p.R, p.G, p.B, p.A})
		}
	}
	d.send(MsgBlit, buf.Bytes())
}

func (d *Device) ClipPrint(clip geom.Rect, pos geom.Coord, text string, c gfx.Color) {
	var buf bytes.Buffer
	putRect(&buf, clip)
	putInt(&buf, pos.X)
	putInt(&buf, pos.Y)
	buf.Write([]byte{c.R, c.G, c.B, c.A})
	buf.WriteString(text)
	d.send(MsgPrint, buf.Bytes())
}

// Replay reads frames from r and issues the calls on dev until EOF. It
// returns the canvas size announced by the sender and the number of render
// passes replayed.
func Replay(r io.Reader, dev gfx.Device) (geom.Size, int, error) {
	var size geom.Size
	frames := 0
	for {
		hdr, payload, err := readFrame(r)
		if errors.Is(err, io.EOF) {
			return size, frames, nil
		}
		if err != nil {
			return size, frames, err
		}
		if !payloadFits(hdr.Type, len(payload)) {
			return size, frames, fmt.Errorf("%w: message %d with %d bytes", ErrBadPayload, hdr.Type, len(payload))
		}
		rd := bytes.NewReader(payload)
		switch hdr.Type {
		case MsgHello:
			size.W, size.H = getInt(rd), getInt(rd)
		case MsgBeginRender:
			dev.BeginRender()
		case MsgEndRender:
			dev.EndRender()
			frames++
		case MsgBlendMode:
			dev.SetBlendMode(gfx.BlendMode(payload[0]))
		case MsgTint:
			dev.SetTintColor(getColor(rd))
		case MsgFill:
			clip, rect := getRect(rd), getRect(rd)
			c := getColor(rd)
			dev.ClipFill(clip, rect, c)
		case MsgBlit:
			dst := getRect(rd)
			if dst.W < 0 || dst.H < 0 || rd.Len() != dst.W*dst.H*4 {
				return size, frames, ErrBadPayload
			}
			surf := gfx.NewMemSurface(dst.W, dst.H)
			for y := 0; y < dst.H; y++ {
				for x := 0; x < dst.W; x++ {
					surf.SetPixel(x, y, getColor(rd))
				}
			}
			dev.ClipBlit(dst, surf, geom.NewRect(0, 0, dst.W, dst.H), dst.X, dst.Y)
		case MsgPrint:
			clip := getRect(rd)
			pos := geom.Coord{X: getInt(rd), Y: getInt(rd)}
			c := getColor(rd)
			text, _ := io.ReadAll(rd)
			if tp, ok := dev.(gfx.TextPrinter); ok {
				tp.ClipPrint(clip, pos, string(text), c)
			}
		default:
			log.Printf("StreamDevice: skipping unknown message type %d", hdr.Type)
		}
	}
}

// Payload sizes: ints are 4 bytes, rects 16, colours 4.
var payloadSizes = map[MessageType]struct{ min, max int }{
	MsgHello:       {8, 8},
	MsgBeginRender: {0, 0},
	MsgEndRender:   {0, 0},
	MsgBlendMode:   {1, 1},
	MsgTint:        {4, 4},
	MsgFill:        {36, 36},
	MsgBlit:        {16, -1},
	MsgPrint:       {28, -1},
}

// payloadFits reports whether n bytes can hold a message of type t. Unknown
// types are left to the caller.
func payloadFits(t MessageType, n int) bool {
	sz, ok := payloadSizes[t]
	if !ok {
		return true
	}
	return n >= sz.min && (sz.max < 0 || n <= sz.max)
}

func putInt(buf *bytes.Buffer, v int) {
	_ = binary.Write(buf, binary.LittleEndian, int32(v))
}

func putRect(buf *bytes.Buffer, r geom.Rect) {
	putInt(buf, r.X)
	putInt(buf, r.Y)
	putInt(buf, r.W)
	putInt(buf, r.H)
}

func getInt(r *bytes.Reader) int {
	var v int32
	_ = binary.Read(r, binary.LittleEndian, &v)
	return int(v)
}

func getRect(r *bytes.Reader) geom.Rect {
	return geom.Rect{X: getInt(r), Y: getInt(r), W: getInt(r), H: getInt(r)}
}

func getColor(r *bytes.Reader) gfx.Color {
	var b [4]byte
	_, _ = io.ReadFull(r, b[:])
	return gfx.Color{R: b[0], G: b[1], B: b[2], A: b[3]}
}
