// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tag defines the NBT tag type system: the thirteen canonical
// tag kinds, id and shape based type lookup, the in-memory size
// estimator used for read quota accounting, and the canonical [Node]
// tree representation.
//
// The thirteen kinds occupy wire ids 0 through 12. [GetType] maps an
// id to its canonical [Type] singleton; any other id produces an
// invalid Type that carries the offending id for diagnostics without
// aliasing a real kind. [TypeOf] performs the reverse inference from a
// Go runtime value's shape.
//
// The size estimator ([Size] and the per-Type base sizes) reproduces a
// fixed table of in-memory cost constants. These are NOT wire-format
// lengths: they approximate the heap footprint a decoded tag occupies
// on the originating platform, and they are a compatibility contract:
// deployments size their read quotas against this exact accounting, so
// the constants must never be re-derived from Go's own allocation
// behavior.
package tag
