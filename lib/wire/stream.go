// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"io"
	"math"
)

// Reader wraps an io.Reader with little-endian primitive reads. It
// owns a small scratch buffer, so a Reader must not be shared between
// goroutines. Closing the Reader closes the delegate when the
// delegate is an io.Closer.
type Reader struct {
	delegate io.Reader
	scratch  [8]byte
}

// NewReader wraps delegate in a little-endian Reader.
func NewReader(delegate io.Reader) *Reader {
	return &Reader{delegate: delegate}
}

// ReadByte reads one byte. Implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if err := r.readFull(r.scratch[:1]); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

// ReadInt16 reads a little-endian signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	if err := r.readFull(r.scratch[:2]); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(r.scratch[:2])), nil
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	if err := r.readFull(r.scratch[:4]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(r.scratch[:4])), nil
}

// ReadInt64 reads a little-endian signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	if err := r.readFull(r.scratch[:8]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(r.scratch[:8])), nil
}

// ReadFloat32 reads a little-endian IEEE 754 single.
func (r *Reader) ReadFloat32() (float32, error) {
	bits, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(bits)), nil
}

// ReadFloat64 reads a little-endian IEEE 754 double.
func (r *Reader) ReadFloat64() (float64, error) {
	bits, err := r.ReadInt64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(bits)), nil
}

// ReadFull fills p from the delegate, failing with
// io.ErrUnexpectedEOF on a short read.
func (r *Reader) ReadFull(p []byte) error {
	return r.readFull(p)
}

func (r *Reader) readFull(p []byte) error {
	_, err := io.ReadFull(r.delegate, p)
	if err == io.EOF && len(p) > 0 {
		// A read that starts mid-value must not look like a clean
		// end of stream to the caller.
		return io.ErrUnexpectedEOF
	}
	return err
}

// Close releases the delegate if it is closeable.
func (r *Reader) Close() error {
	if closer, ok := r.delegate.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Writer wraps an io.Writer with little-endian primitive writes. Like
// Reader it owns scratch state and must not be shared between
// goroutines; Close propagates to a closeable delegate.
type Writer struct {
	delegate io.Writer
	scratch  [8]byte
}

// NewWriter wraps delegate in a little-endian Writer.
func NewWriter(delegate io.Writer) *Writer {
	return &Writer{delegate: delegate}
}

// WriteByte writes one byte. Implements io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	w.scratch[0] = b
	_, err := w.delegate.Write(w.scratch[:1])
	return err
}

// WriteInt16 writes a little-endian signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) error {
	binary.LittleEndian.PutUint16(w.scratch[:2], uint16(v))
	_, err := w.delegate.Write(w.scratch[:2])
	return err
}

// WriteInt32 writes a little-endian signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) error {
	binary.LittleEndian.PutUint32(w.scratch[:4], uint32(v))
	_, err := w.delegate.Write(w.scratch[:4])
	return err
}

// WriteInt64 writes a little-endian signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], uint64(v))
	_, err := w.delegate.Write(w.scratch[:8])
	return err
}

// WriteFloat32 writes a little-endian IEEE 754 single.
func (w *Writer) WriteFloat32(v float32) error {
	return w.WriteInt32(int32(math.Float32bits(v)))
}

// WriteFloat64 writes a little-endian IEEE 754 double.
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteInt64(int64(math.Float64bits(v)))
}

// Write passes p through to the delegate.
func (w *Writer) Write(p []byte) (int, error) {
	return w.delegate.Write(p)
}

// Close releases the delegate if it is closeable.
func (w *Writer) Close() error {
	if closer, ok := w.delegate.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
