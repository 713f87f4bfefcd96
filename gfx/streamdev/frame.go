// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: gfx/streamdev/frame.go
// Summary: Framing for the draw-command stream.
// Notes: Keep changes backward-compatible; any additions require a version bump.

package streamdev

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

const (
	magic      uint32 = 0x544b5301 // "TKS\x01"
	headerSize        = 24
)

// Version is the stream format implemented by this package.
const Version uint8 = 1

// FlagChecksum marks frames carrying a CRC32 over header and payload.
const FlagChecksum uint8 = 0x01

// MessageType enumerates draw commands.
type MessageType uint8

const (
	MsgHello MessageType = iota
	MsgBeginRender
	MsgEndRender
	MsgBlendMode
	MsgTint
	MsgFill
	MsgBlit
	MsgPrint
)

type header struct {
	Version    uint8
	Type       MessageType
	Flags      uint8
	Sequence   uint64
	PayloadLen uint32
	Checksum   uint32
}

var (
	ErrInvalidMagic     = errors.New("streamdev: invalid magic")
	ErrUnsupportedVer   = errors.New("streamdev: unsupported version")
	ErrShortPayload     = errors.New("streamdev: payload shorter than declared length")
	ErrChecksumMismatch = errors.New("streamdev: checksum mismatch")
	ErrBadPayload       = errors.New("streamdev: malformed payload")
)

func writeFrame(w io.Writer, hdr header, payload []byte) error {
	hdr.PayloadLen = uint32(len(payload))

	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(buf[0:], magic)
	buf[4] = hdr.Version
	buf[5] = byte(hdr.Type)
	buf[6] = hdr.Flags
	binary.LittleEndian.PutUint64(buf[8:16], hdr.Sequence)
	binary.LittleEndian.PutUint32(buf[16:20], hdr.PayloadLen)

	if hdr.Flags&FlagChecksum != 0 {
		crc := crc32.NewIEEE()
		_, _ = crc.Write(buf[4:20])
		_, _ = crc.Write(payload)
		hdr.Checksum = crc.Sum32()
	}
	binary.LittleEndian.PutUint32(buf[20:24], hdr.Checksum)

	if _, err := w.Write(buf); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

func readFrame(r io.Reader) (header, []byte, error) {
	var hdr header
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return hdr, nil, err
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != magic {
		return hdr, nil, ErrInvalidMagic
	}
	hdr.Version = buf[4]
	hdr.Type = MessageType(buf[5])
	hdr.Flags = buf[6]
	hdr.Sequence = binary.LittleEndian.Uint64(buf[8:16])
	hdr.PayloadLen = binary.LittleEndian.Uint32(buf[16:20])
	hdr.Checksum = binary.LittleEndian.Uint32(buf[20:24])
	if hdr.Version != Version {
		return hdr, nil, ErrUnsupportedVer
	}

	payload := make([]byte, hdr.PayloadLen)
	if hdr.PayloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return hdr, nil, ErrShortPayload
			}
			return hdr, nil, err
		}
	}

	if hdr.Flags&FlagChecksum != 0 {
		crc := crc32.NewIEEE()
		_, _ = crc.Write(buf[4:20])
		_, _ = crc.Write(payload)
		if crc.Sum32() != hdr.Checksum {
			return hdr, nil, ErrChecksumMismatch
		}
	}
	return hdr, payload, nil
}
