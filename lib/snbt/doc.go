// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package snbt implements the stringified NBT text codec: a
// recursive-descent parser and the matching serializer for the
// JSON-like format with type-suffixed numeric literals.
//
//	{pos:[1.5d,2.5d],name:"x",flags:[B;1b,0b],count:3}
//
// Unquoted scalar tokens are classified by shape: a recognized
// trailing suffix (b/s/l/f/d, either case) with a numeric prefix
// yields that kind; a bare integer yields INT; a bare decimal yields
// DOUBLE; the literals true and false yield BYTE 1 and 0; anything
// else is a STRING carrying the token unmodified. Array literals use
// the prefixes B;, I;, and L; (case-insensitive on input, uppercase
// on output).
//
// Parsing is guarded by the same quota and depth accounting as the
// binary stream codec; serialization, like binary writing, is
// unguarded. The parser never returns a partial structure: any syntax
// error aborts the whole parse.
package snbt
