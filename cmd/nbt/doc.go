// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Nbt inspects and converts NBT data. It reads a file (or stdin),
// transparently undoing gzip/zlib/lz4 compression, decodes one of the
// binary layouts or SNBT text, and prints the tree as SNBT (colorized
// on a terminal), JSON, or YAML, or re-encodes it to another binary
// layout and compression.
//
//	nbt level.dat
//	nbt --format file level.dat --json
//	nbt --format named player.nbt --out player.snbt --write-format snbt
//	nbt --format snbt in.snbt --out out.nbt --write-format named --compress gzip
//
// Exit codes:
//
//	0  success
//	1  read/decode or write/encode failure
//	2  bad arguments
package main
