// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapper

import (
	"github.com/tagforge/nbt/lib/tag"
)

// Mapper builds values of the representation type T from raw
// host-primitive values. Build receives the canonical raw shape for
// typ (int8 or bool for BYTE, string for STRING, []T for LIST,
// map[string]T for COMPOUND, and so on) and must fail with an
// errdefs.ErrUnsupportedType error when typ is not one of the
// thirteen canonical kinds. A raw value inconsistent with typ may
// fail with an ordinary type error.
type Mapper[T any] interface {
	Build(typ tag.Type, raw any) (T, error)
}

// Extractor is the optional inverse of Build. Implement it when T is
// not itself the raw value shape (the canonical tree's Node wraps its
// payload, for example).
type Extractor[T any] interface {
	Extract(value T) (any, error)
}

// Sizer overrides the in-memory size estimate for T.
type Sizer[T any] interface {
	Size(value T) int
}

// Typer overrides tag type inference for T.
type Typer[T any] interface {
	TypeOf(value T) tag.Type
}

// ListTyper reports the declared element type of an already-built
// list value. This can differ from build-time inference: an empty
// list reports END regardless of how it was declared on the wire.
type ListTyper[T any] interface {
	ListElementType(list T) (tag.Type, error)
}

// TypeChecker overrides the "is this value one of ours" test.
type TypeChecker interface {
	IsType(value any) bool
}

// Extract returns the raw value underlying a built T, using the
// mapper's Extractor override when present. The default assumes T is
// its own raw value.
func Extract[T any](m Mapper[T], value T) (any, error) {
	if extractor, ok := m.(Extractor[T]); ok {
		return extractor.Extract(value)
	}
	return any(value), nil
}

// TypeOf returns the tag type of a built T, using the mapper's Typer
// override when present, else shape inference on the value itself.
func TypeOf[T any](m Mapper[T], value T) tag.Type {
	if typer, ok := m.(Typer[T]); ok {
		return typer.TypeOf(value)
	}
	return tag.TypeOf(value)
}

// Size returns the estimated in-memory size of a built T.
func Size[T any](m Mapper[T], value T) int {
	if sizer, ok := m.(Sizer[T]); ok {
		return sizer.Size(value)
	}
	return tag.Size(any(value))
}

// IsType reports whether value belongs to the mapper's representation
// type. The default is a plain type assertion against T.
func IsType[T any](m Mapper[T], value any) bool {
	if checker, ok := m.(TypeChecker); ok {
		return checker.IsType(value)
	}
	_, ok := value.(T)
	return ok
}

// ElementType infers the declared element type for a list that is
// about to be built from elements: END for an empty sequence,
// otherwise the type of the first element. Writers use this single
// inference and never re-validate later elements against it.
func ElementType[T any](m Mapper[T], elements []T) tag.Type {
	if len(elements) == 0 {
		return tag.End
	}
	return TypeOf(m, elements[0])
}

// ListElementType reports the declared element type of an
// already-built list value, using the mapper's ListTyper override
// when present. The default extracts the list and applies
// ElementType, so an empty list reports END.
func ListElementType[T any](m Mapper[T], list T) (tag.Type, error) {
	if typer, ok := m.(ListTyper[T]); ok {
		return typer.ListElementType(list)
	}
	raw, err := Extract(m, list)
	if err != nil {
		return tag.End, err
	}
	elements, ok := raw.([]T)
	if !ok {
		return tag.End, nil
	}
	return ElementType(m, elements), nil
}
