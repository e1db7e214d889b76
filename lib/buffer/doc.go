// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package buffer implements the binary NBT codec over a
// position-addressable in-memory buffer (wire.Buffer). The read and
// write logic is structurally the same as package stream's; the
// differences are the addressing model (encode into a buffer, Flip,
// decode back out) and the guards: only nesting depth is enforced
// here, since the buffer's own length already bounds how many bytes
// a read can consume. The array hard caps still apply, because a
// declared length larger than the buffer must fail before its
// allocation, not after.
//
// The network variant ([NewNetworkReader], [NewNetworkWriter])
// overrides the integer encodings for transport efficiency: INT and
// LONG payloads, and every count field, which is an integer read,
// are ZigZag varints, and string lengths are plain unsigned varints
// (a length is never negative, so ZigZag would waste a bit). All
// other fields are identical to the little-endian layout.
package buffer
