// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"io"
	"math"
)

// Buffer is a position-addressable in-memory byte buffer with
// independent read and write positions. Writes append at the write
// position; reads consume from the read position up to the write
// position. Flip resets the read position so data just written can be
// read back, the usual cycle for encode-then-decode reuse.
//
// Reading past the written region fails with io.ErrUnexpectedEOF,
// which the codecs treat as an underlying I/O failure rather than a
// format violation.
type Buffer struct {
	data     []byte
	readPos  int
	writePos int
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFrom returns a Buffer whose readable region is data. The
// write position sits at the end, so writes append.
func NewBufferFrom(data []byte) *Buffer {
	return &Buffer{data: data, writePos: len(data)}
}

// Flip resets the read position to the start of the buffer. Written
// data stays in place; use this to read back what was just encoded.
func (b *Buffer) Flip() {
	b.readPos = 0
}

// Reset empties the buffer for reuse, keeping the allocation.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
	b.readPos = 0
	b.writePos = 0
}

// Bytes returns the written region. The slice aliases the buffer's
// storage and is invalidated by the next write or Reset.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.writePos]
}

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int {
	return b.writePos - b.readPos
}

// ReadByte consumes one byte. Implements io.ByteReader.
func (b *Buffer) ReadByte() (byte, error) {
	if b.readPos >= b.writePos {
		return 0, io.ErrUnexpectedEOF
	}
	value := b.data[b.readPos]
	b.readPos++
	return value, nil
}

// ReadFull fills p from the read position.
func (b *Buffer) ReadFull(p []byte) error {
	if b.writePos-b.readPos < len(p) {
		return io.ErrUnexpectedEOF
	}
	copy(p, b.data[b.readPos:])
	b.readPos += len(p)
	return nil
}

// ReadInt16 reads a little-endian signed 16-bit integer.
func (b *Buffer) ReadInt16() (int16, error) {
	if b.writePos-b.readPos < 2 {
		return 0, io.ErrUnexpectedEOF
	}
	value := int16(binary.LittleEndian.Uint16(b.data[b.readPos:]))
	b.readPos += 2
	return value, nil
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (b *Buffer) ReadInt32() (int32, error) {
	if b.writePos-b.readPos < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	value := int32(binary.LittleEndian.Uint32(b.data[b.readPos:]))
	b.readPos += 4
	return value, nil
}

// ReadInt64 reads a little-endian signed 64-bit integer.
func (b *Buffer) ReadInt64() (int64, error) {
	if b.writePos-b.readPos < 8 {
		return 0, io.ErrUnexpectedEOF
	}
	value := int64(binary.LittleEndian.Uint64(b.data[b.readPos:]))
	b.readPos += 8
	return value, nil
}

// ReadFloat32 reads a little-endian IEEE 754 single.
func (b *Buffer) ReadFloat32() (float32, error) {
	bits, err := b.ReadInt32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(bits)), nil
}

// ReadFloat64 reads a little-endian IEEE 754 double.
func (b *Buffer) ReadFloat64() (float64, error) {
	bits, err := b.ReadInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(bits)), nil
}

// WriteByte appends one byte. Implements io.ByteWriter.
func (b *Buffer) WriteByte(value byte) error {
	b.grow(1)
	b.data[b.writePos] = value
	b.writePos++
	return nil
}

// Write appends p. Implements io.Writer and never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.grow(len(p))
	copy(b.data[b.writePos:], p)
	b.writePos += len(p)
	return len(p), nil
}

// WriteInt16 appends a little-endian signed 16-bit integer.
func (b *Buffer) WriteInt16(value int16) error {
	b.grow(2)
	binary.LittleEndian.PutUint16(b.data[b.writePos:], uint16(value))
	b.writePos += 2
	return nil
}

// WriteInt32 appends a little-endian signed 32-bit integer.
func (b *Buffer) WriteInt32(value int32) error {
	b.grow(4)
	binary.LittleEndian.PutUint32(b.data[b.writePos:], uint32(value))
	b.writePos += 4
	return nil
}

// WriteInt64 appends a little-endian signed 64-bit integer.
func (b *Buffer) WriteInt64(value int64) error {
	b.grow(8)
	binary.LittleEndian.PutUint64(b.data[b.writePos:], uint64(value))
	b.writePos += 8
	return nil
}

// WriteFloat32 appends a little-endian IEEE 754 single.
func (b *Buffer) WriteFloat32(value float32) error {
	return b.WriteInt32(int32(math.Float32bits(value)))
}

// WriteFloat64 appends a little-endian IEEE 754 double.
func (b *Buffer) WriteFloat64(value float64) error {
	return b.WriteInt64(int64(math.Float64bits(value)))
}

// grow ensures capacity for n more bytes at the write position.
func (b *Buffer) grow(n int) {
	needed := b.writePos + n
	if needed <= len(b.data) {
		return
	}
	if needed <= cap(b.data) {
		b.data = b.data[:needed]
		return
	}
	replacement := make([]byte, needed, max(needed, 2*cap(b.data)+64))
	copy(replacement, b.data[:b.writePos])
	b.data = replacement
}
