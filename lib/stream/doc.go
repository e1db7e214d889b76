// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package stream implements the stream-oriented binary NBT codec
// over io.Reader and io.Writer.
//
// Three sub-formats share one recursive value core:
//
//   - named: a type id byte, then (unless END) a 2-byte-length name
//     that is read and discarded, then the value. The classic on-disk
//     root layout; [Reader.ReadNamed] and [Writer.WriteNamed].
//   - value: a type id byte, then (unless END) the value with no
//     name; [Reader.ReadValue] and [Writer.WriteValue].
//   - file: an 8-byte header (little-endian int32 version and int32
//     payload size, consumed but not validated on read) followed by
//     the value layout; [Reader.ReadFile] and [Writer.WriteFile].
//
// All multi-byte fields are little-endian.
//
// Reading enforces two limits against untrusted input: a byte quota
// (default 2 MiB) charged with the tag package's in-memory size
// estimate as values decode, and a recursion depth bound (default
// 512) for LIST and COMPOUND nesting. Byte arrays are additionally
// capped at 16 MiB and int/long arrays at 16M elements; these hard
// caps hold even when the quota is disabled. Writing is unguarded;
// output size is bounded by the caller's own data.
//
// A Reader or Writer is bound to one underlying stream, is not safe
// for concurrent use, and must be abandoned after any failure: the
// stream position is indeterminate. Closing propagates to the
// delegate when the delegate is an io.Closer.
package stream
