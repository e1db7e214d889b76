// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapper

import (
	"fmt"
)

// Coercion helpers normalizing the shapes producers actually emit
// into the primitive array shapes the array kinds require. The text
// codec in particular parses array elements one scalar at a time and
// naturally produces boxed sequences ([]any); binary readers produce
// the primitive shape directly. Mapper implementations call these
// from Build instead of re-implementing the shape fan-in.

// AsByteArray normalizes raw into []byte. Accepted shapes: []byte,
// []int8, []bool (true→1), and []any whose elements are any of those
// scalars.
func AsByteArray(raw any) ([]byte, error) {
	switch v := raw.(type) {
	case []byte:
		return v, nil
	case []int8:
		out := make([]byte, len(v))
		for i, e := range v {
			out[i] = byte(e)
		}
		return out, nil
	case []bool:
		out := make([]byte, len(v))
		for i, e := range v {
			if e {
				out[i] = 1
			}
		}
		return out, nil
	case []any:
		out := make([]byte, len(v))
		for i, e := range v {
			switch s := e.(type) {
			case byte:
				out[i] = s
			case int8:
				out[i] = byte(s)
			case bool:
				if s {
					out[i] = 1
				}
			default:
				return nil, fmt.Errorf("byte array element %d: unexpected %T", i, e)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot coerce %T to byte array", raw)
}

// AsBoolArray normalizes raw into []bool; nonzero bytes are true.
func AsBoolArray(raw any) ([]bool, error) {
	switch v := raw.(type) {
	case []bool:
		return v, nil
	case []byte:
		out := make([]bool, len(v))
		for i, e := range v {
			out[i] = e != 0
		}
		return out, nil
	case []int8:
		out := make([]bool, len(v))
		for i, e := range v {
			out[i] = e != 0
		}
		return out, nil
	case []any:
		out := make([]bool, len(v))
		for i, e := range v {
			switch s := e.(type) {
			case bool:
				out[i] = s
			case byte:
				out[i] = s != 0
			case int8:
				out[i] = s != 0
			default:
				return nil, fmt.Errorf("bool array element %d: unexpected %T", i, e)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot coerce %T to bool array", raw)
}

// AsIntArray normalizes raw into []int32.
func AsIntArray(raw any) ([]int32, error) {
	switch v := raw.(type) {
	case []int32:
		return v, nil
	case []any:
		out := make([]int32, len(v))
		for i, e := range v {
			s, ok := e.(int32)
			if !ok {
				return nil, fmt.Errorf("int array element %d: unexpected %T", i, e)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot coerce %T to int array", raw)
}

// AsLongArray normalizes raw into []int64.
func AsLongArray(raw any) ([]int64, error) {
	switch v := raw.(type) {
	case []int64:
		return v, nil
	case []any:
		out := make([]int64, len(v))
		for i, e := range v {
			s, ok := e.(int64)
			if !ok {
				return nil, fmt.Errorf("long array element %d: unexpected %T", i, e)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot coerce %T to long array", raw)
}
