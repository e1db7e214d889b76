// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress identifies the compression wrapping of an NBT
// byte source by magic header and returns a transparently
// decompressing stream. The codec packages are compression-agnostic
// by design: they only ever see already-decompressed bytes, and this
// package only detects and delegates; the algorithms themselves come
// from their libraries.
package compress

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/pierrec/lz4/v4"
)

// Format identifies a compression wrapping.
type Format uint8

const (
	// FormatNone indicates a bare NBT stream.
	FormatNone Format = iota

	// FormatGzip indicates a gzip member (magic 1f 8b), the classic
	// on-disk wrapping for world data.
	FormatGzip

	// FormatZlib indicates a zlib stream (deflate with a 2-byte
	// header whose bytes are a multiple of 31), the wrapping used
	// inside region files.
	FormatZlib

	// FormatLZ4 indicates an LZ4 frame (magic 04 22 4d 18).
	FormatLZ4
)

// String returns the human-readable name of a format.
func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatGzip:
		return "gzip"
	case FormatZlib:
		return "zlib"
	case FormatLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(f))
	}
}

// ParseFormat parses a format from its string representation.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "none":
		return FormatNone, nil
	case "gzip":
		return FormatGzip, nil
	case "zlib":
		return FormatZlib, nil
	case "lz4":
		return FormatLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression format: %q", name)
	}
}

// Detect identifies the compression format from the first bytes of a
// stream. Callers must supply at least 4 bytes for reliable
// detection; shorter inputs are classified as FormatNone.
func Detect(header []byte) Format {
	if len(header) >= 2 && header[0] == 0x1f && header[1] == 0x8b {
		return FormatGzip
	}
	if len(header) >= 4 && header[0] == 0x04 && header[1] == 0x22 && header[2] == 0x4d && header[3] == 0x18 {
		return FormatLZ4
	}
	// Zlib: low nibble 8 is the deflate method, and the 2-byte
	// header is a multiple of 31 by construction.
	if len(header) >= 2 && header[0]&0x0f == 8 && (uint16(header[0])<<8|uint16(header[1]))%31 == 0 {
		return FormatZlib
	}
	return FormatNone
}

// NewReader sniffs the compression format of delegate and returns it
// alongside a transparently decompressing stream. The returned
// ReadCloser must be closed by the caller; closing it does not close
// delegate.
func NewReader(delegate io.Reader) (Format, io.ReadCloser, error) {
	buffered := bufio.NewReader(delegate)
	header, err := buffered.Peek(4)
	if err != nil && len(header) == 0 {
		// Let an empty or broken source surface from the first codec
		// read instead of failing the sniff.
		return FormatNone, io.NopCloser(buffered), nil
	}

	format := Detect(header)
	switch format {
	case FormatGzip:
		reader, err := gzip.NewReader(buffered)
		if err != nil {
			return format, nil, fmt.Errorf("gzip header: %w", err)
		}
		return format, reader, nil

	case FormatZlib:
		reader, err := zlib.NewReader(buffered)
		if err != nil {
			return format, nil, fmt.Errorf("zlib header: %w", err)
		}
		return format, reader, nil

	case FormatLZ4:
		return format, io.NopCloser(lz4.NewReader(buffered)), nil

	default:
		return FormatNone, io.NopCloser(buffered), nil
	}
}

// NewWriter returns a stream compressing its input with format. The
// returned WriteCloser must be closed to flush trailing blocks;
// closing it does not close delegate. FormatNone returns a
// passthrough.
func NewWriter(delegate io.Writer, format Format) (io.WriteCloser, error) {
	switch format {
	case FormatNone:
		return nopWriteCloser{delegate}, nil
	case FormatGzip:
		return gzip.NewWriter(delegate), nil
	case FormatZlib:
		return zlib.NewWriter(delegate), nil
	case FormatLZ4:
		return lz4.NewWriter(delegate), nil
	default:
		return nil, fmt.Errorf("unknown compression format: %d", format)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
