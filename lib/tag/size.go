// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tag

import "reflect"

// Per-entry overhead constants for compound size estimation. A
// compound entry costs one map entry (28 bytes), the key string's
// characters (2 bytes each) plus its string object (32 bytes), one
// reference slot (4 bytes), and the child's own estimated size. These
// mirror a specific host collection implementation and are part of
// the quota compatibility contract.
const (
	compoundEntryOverhead = 28
	compoundKeyOverhead   = 32
	compoundRefOverhead   = 4
)

// CompoundEntrySize returns the estimated in-memory cost of one
// compound entry, excluding the child value's own size. The binary
// codecs charge this against the read quota for every key they
// decode.
func CompoundEntrySize(keyLength int) int {
	return compoundEntryOverhead + 2*keyLength + compoundKeyOverhead + compoundRefOverhead
}

// Size estimates the in-memory footprint of a decoded tag value.
// Scalars cost their kind's base size; strings and primitive arrays
// cost base plus element width times length; lists add an index slot
// per element plus each child's size; compounds add the per-entry
// overhead from CompoundEntrySize plus each child's size. Values of
// unrecognized shape cost 0.
func Size(value any) int {
	switch v := value.(type) {
	case nil:
		return End.base
	case bool, int8:
		return Byte.base
	case int16:
		return Short.base
	case int32:
		return Int.base
	case int64:
		return Long.base
	case float32:
		return Float.base
	case float64:
		return Double.base
	case []byte:
		return ByteArray.base + ByteArray.width*len(v)
	case []bool:
		return ByteArray.base + ByteArray.width*len(v)
	case string:
		return String.base + String.width*len(v)
	case []int32:
		return IntArray.base + IntArray.width*len(v)
	case []int64:
		return LongArray.base + LongArray.width*len(v)
	case Node:
		return Size(v.Value)
	case []Node:
		total := List.base + List.width*len(v)
		for _, child := range v {
			total += Size(child.Value)
		}
		return total
	case map[string]Node:
		total := Compound.base
		for key, child := range v {
			total += CompoundEntrySize(len(key)) + Size(child.Value)
		}
		return total
	}

	// Generic slices and maps of caller-defined element types.
	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Slice, reflect.Array:
		total := List.base + List.width*reflected.Len()
		for i := 0; i < reflected.Len(); i++ {
			total += Size(reflected.Index(i).Interface())
		}
		return total
	case reflect.Map:
		total := Compound.base
		iterator := reflected.MapRange()
		for iterator.Next() {
			key, _ := iterator.Key().Interface().(string)
			total += CompoundEntrySize(len(key)) + Size(iterator.Value().Interface())
		}
		return total
	}
	return 0
}
