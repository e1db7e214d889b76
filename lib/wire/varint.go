// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"io"

	"github.com/tagforge/nbt/lib/errdefs"
)

// ZigZag32 maps a signed 32-bit value to an unsigned one keeping
// small magnitudes small: 0→0, -1→1, 1→2, -2→3, …
func ZigZag32(v int32) uint32 {
	return uint32((v >> 31) ^ (v << 1))
}

// UnZigZag32 inverts ZigZag32.
func UnZigZag32(u uint32) int32 {
	return int32((u >> 1) ^ -(u & 1))
}

// ZigZag64 maps a signed 64-bit value to an unsigned one keeping
// small magnitudes small.
func ZigZag64(v int64) uint64 {
	return uint64((v >> 63) ^ (v << 1))
}

// UnZigZag64 inverts ZigZag64.
func UnZigZag64(u uint64) int64 {
	return int64((u >> 1) ^ -(u & 1))
}

// WriteUvarint32 writes v as an unsigned base-128 varint, 1 to 5
// bytes. The encoder is specialized per byte-length bracket rather
// than looping, which keeps the branch per call predictable for the
// common short encodings.
func WriteUvarint32(w io.ByteWriter, v uint32) error {
	switch {
	case v < 1<<7:
		return writeBytes(w, byte(v))
	case v < 1<<14:
		return writeBytes(w, byte(v|0x80), byte(v>>7))
	case v < 1<<21:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14))
	case v < 1<<28:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14|0x80), byte(v>>21))
	default:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14|0x80), byte(v>>21|0x80), byte(v>>28))
	}
}

// WriteUvarint64 writes v as an unsigned base-128 varint, 1 to 10
// bytes, specialized per bracket like WriteUvarint32.
func WriteUvarint64(w io.ByteWriter, v uint64) error {
	switch {
	case v < 1<<7:
		return writeBytes(w, byte(v))
	case v < 1<<14:
		return writeBytes(w, byte(v|0x80), byte(v>>7))
	case v < 1<<21:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14))
	case v < 1<<28:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14|0x80), byte(v>>21))
	case v < 1<<35:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14|0x80), byte(v>>21|0x80), byte(v>>28))
	case v < 1<<42:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14|0x80), byte(v>>21|0x80), byte(v>>28|0x80), byte(v>>35))
	case v < 1<<49:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14|0x80), byte(v>>21|0x80), byte(v>>28|0x80), byte(v>>35|0x80), byte(v>>42))
	case v < 1<<56:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14|0x80), byte(v>>21|0x80), byte(v>>28|0x80), byte(v>>35|0x80), byte(v>>42|0x80), byte(v>>49))
	case v < 1<<63:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14|0x80), byte(v>>21|0x80), byte(v>>28|0x80), byte(v>>35|0x80), byte(v>>42|0x80), byte(v>>49|0x80), byte(v>>56))
	default:
		return writeBytes(w, byte(v|0x80), byte(v>>7|0x80), byte(v>>14|0x80), byte(v>>21|0x80), byte(v>>28|0x80), byte(v>>35|0x80), byte(v>>42|0x80), byte(v>>49|0x80), byte(v>>56|0x80), byte(v>>63))
	}
}

// ReadUvarint32 reads an unsigned base-128 varint of at most 5
// bytes. A continuation bit persisting past the 32-bit width is a
// format violation, not an I/O error: it means the stream is not a
// varint at this position.
func ReadUvarint32(r io.ByteReader) (uint32, error) {
	var value uint32
	for shift := uint(0); shift < 35; shift += 7 {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, nil
		}
	}
	return 0, errdefs.Formatf("varint32 exceeds 5 bytes")
}

// ReadUvarint64 reads an unsigned base-128 varint of at most 10
// bytes.
func ReadUvarint64(r io.ByteReader) (uint64, error) {
	var value uint64
	for shift := uint(0); shift < 70; shift += 7 {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, nil
		}
	}
	return 0, errdefs.Formatf("varint64 exceeds 10 bytes")
}

func writeBytes(w io.ByteWriter, bytes ...byte) error {
	for _, b := range bytes {
		if err := w.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
