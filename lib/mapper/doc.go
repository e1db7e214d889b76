// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mapper defines the representation capability that keeps the
// codecs representation-agnostic. A [Mapper] binds one concrete
// representation type T; the stream, buffer, and text codecs only
// ever touch T through it, so the same wire logic materializes trees
// into whatever runtime representation the caller chooses.
//
// [Mapper] has a single required method, Build. Every other operation
// is optional: an implementation that also satisfies [Extractor],
// [Sizer], [Typer], [ListTyper], or [TypeChecker] overrides the
// corresponding default, and the package-level generic functions
// ([Extract], [Size], [TypeOf], [ListElementType], [IsType]) pick the
// override when present. This is the interface-upgrade idiom standing
// in for default interface methods.
//
// Build's raw argument is deliberately dynamically typed: it is the
// single point where the abstract value model crosses into a concrete
// representation, and implementations type-assert there. That dynamic
// boundary must not leak into codec logic: codecs construct the raw
// shapes, hand them to Build, and never cast T themselves.
//
// [NodeMapper] is the built-in capability for the canonical tag.Node
// tree. One mapper instance carries no mutable state and may be
// shared across any number of codec instances, though each codec
// instance itself is single-threaded.
package mapper
