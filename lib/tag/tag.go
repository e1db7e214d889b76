// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tag

import (
	"fmt"
	"reflect"
)

// Wire ids of the thirteen canonical tag kinds. These values are
// protocol constants shared by every binary sub-format and must not
// change.
const (
	IDEnd byte = iota
	IDByte
	IDShort
	IDInt
	IDLong
	IDFloat
	IDDouble
	IDByteArray
	IDString
	IDList
	IDCompound
	IDIntArray
	IDLongArray

	idCount // number of valid ids
)

// Type describes one tag kind: its wire id, canonical and pretty
// names, the optional single-character literal suffix used by the
// text codec, and its base in-memory size. Type is a small value
// type; the thirteen canonical instances are package-level singletons
// and compare equal with ==. Invalid Types (unknown ids or
// unrecognized runtime shapes) carry a descriptive name, so equality
// between invalid Types degrades to name comparison rather than id
// comparison.
type Type struct {
	id     byte
	name   string
	pretty string
	suffix byte // 0 when the kind has no literal suffix
	base   int  // estimated in-memory size of an empty/zero value
	width  int  // per-element width for sequence kinds, 0 otherwise
	valid  bool
}

// The canonical Type singletons. Base sizes and element widths are
// quota-accounting constants; see the package documentation.
var (
	End       = Type{id: IDEnd, name: "end", pretty: "TAG_End", base: 8, valid: true}
	Byte      = Type{id: IDByte, name: "byte", pretty: "TAG_Byte", suffix: 'b', base: 9, valid: true}
	Short     = Type{id: IDShort, name: "short", pretty: "TAG_Short", suffix: 's', base: 10, valid: true}
	Int       = Type{id: IDInt, name: "int", pretty: "TAG_Int", base: 12, valid: true}
	Long      = Type{id: IDLong, name: "long", pretty: "TAG_Long", suffix: 'l', base: 16, valid: true}
	Float     = Type{id: IDFloat, name: "float", pretty: "TAG_Float", suffix: 'f', base: 12, valid: true}
	Double    = Type{id: IDDouble, name: "double", pretty: "TAG_Double", suffix: 'd', base: 16, valid: true}
	ByteArray = Type{id: IDByteArray, name: "byte_array", pretty: "TAG_Byte_Array", base: 24, width: 1, valid: true}
	String    = Type{id: IDString, name: "string", pretty: "TAG_String", base: 36, width: 2, valid: true}
	List      = Type{id: IDList, name: "list", pretty: "TAG_List", base: 37, width: 4, valid: true}
	Compound  = Type{id: IDCompound, name: "compound", pretty: "TAG_Compound", base: 48, valid: true}
	IntArray  = Type{id: IDIntArray, name: "int_array", pretty: "TAG_Int_Array", base: 24, width: 4, valid: true}
	LongArray = Type{id: IDLongArray, name: "long_array", pretty: "TAG_Long_Array", base: 24, width: 8, valid: true}
)

// types indexes the canonical singletons by wire id.
var types = [idCount]Type{
	End, Byte, Short, Int, Long, Float, Double,
	ByteArray, String, List, Compound, IntArray, LongArray,
}

// GetType returns the canonical Type for a wire id. Ids outside 0-12
// return a fresh invalid Type tagged with that id; the caller decides
// whether an invalid Type is fatal.
func GetType(id byte) Type {
	if id < idCount {
		return types[id]
	}
	return Type{id: id, name: fmt.Sprintf("unknown(%d)", id), pretty: fmt.Sprintf("TAG_Unknown(%d)", id)}
}

// Invalid constructs an invalid Type with the given diagnostic name.
// Invalid Types compare by name, never collide with a canonical id,
// and fail every codec operation that reaches them.
func Invalid(name string) Type {
	return Type{id: 0xff, name: name, pretty: name}
}

// ID returns the wire id.
func (t Type) ID() byte { return t.id }

// Name returns the canonical lowercase name, or the diagnostic name
// for invalid Types.
func (t Type) Name() string { return t.name }

// Pretty returns the display name in the classic TAG_* convention.
func (t Type) Pretty() string { return t.pretty }

// Suffix returns the single-character literal suffix the text codec
// appends to scalars of this kind, and whether one exists.
func (t Type) Suffix() (byte, bool) { return t.suffix, t.suffix != 0 }

// BaseSize returns the estimated in-memory size of an empty value of
// this kind. See the package documentation for why these constants
// are frozen.
func (t Type) BaseSize() int { return t.base }

// ElementWidth returns the per-element size contribution for sequence
// kinds (bytes for BYTE_ARRAY, characters for STRING, index slots for
// LIST, elements for INT_ARRAY/LONG_ARRAY), or 0 for other kinds.
func (t Type) ElementWidth() int { return t.width }

// Valid reports whether t is one of the thirteen canonical kinds.
func (t Type) Valid() bool { return t.valid }

// String implements fmt.Stringer using the canonical name.
func (t Type) String() string { return t.name }

// TypeOf infers the tag kind from a Go runtime value's shape. The
// mapping is an explicit lookup: Go scalars and their boxed forms map
// to the scalar kinds (bool shares BYTE with int8), the primitive
// array shapes map to the array kinds, and any other slice or map is
// treated as a generic LIST or COMPOUND respectively. Unrecognized
// shapes yield an invalid Type named after the value's Go type.
func TypeOf(value any) Type {
	switch v := value.(type) {
	case nil:
		return End
	case bool, int8:
		return Byte
	case int16:
		return Short
	case int32:
		return Int
	case int64:
		return Long
	case float32:
		return Float
	case float64:
		return Double
	case []byte, []bool:
		return ByteArray
	case string:
		return String
	case []int32:
		return IntArray
	case []int64:
		return LongArray
	case Node:
		return v.Type
	}

	// Generic sequence/mapping supertype checks, mirroring the
	// explicit cases above for caller-defined element types.
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array:
		return List
	case reflect.Map:
		return Compound
	}
	return Invalid(fmt.Sprintf("%T", value))
}
