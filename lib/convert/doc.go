// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package convert walks a canonical NBT tree into other data models.
//
// [Simplify] strips tag typing down to plain Go values (maps, slices
// and scalars), the "configuration value" view of a tree. The format
// encoders build on it: [ToJSON] for external tooling (JSON is the
// module's outward-facing interchange format), [ToYAML] for
// human-edited configuration dumps, and [ToCBOR] for compact binary
// interchange with systems that speak CBOR rather than NBT.
//
// The CBOR encoder uses Core Deterministic Encoding (RFC 8949 §4.2):
// sorted map keys, smallest integer encoding, no indefinite-length
// items, so the same tree always produces identical bytes.
//
// Conversions are lossy by design: BYTE loses its boolean/number
// distinction, and the array kinds come back as plain lists. Use the
// NBT codecs themselves when fidelity matters.
package convert
