// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire provides the byte-order primitives underneath the
// binary codecs: little-endian stream wrappers over io.Reader and
// io.Writer, unsigned base-128 varint encoding with the ZigZag
// transform for signed values, and a position-addressable [Buffer]
// for the in-memory codec.
//
// All multi-byte fields in every binary NBT sub-format this module
// implements are little-endian; there is deliberately no big-endian
// half to this package.
package wire
