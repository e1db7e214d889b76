// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tag

// Node is the canonical tree representation: one tag with its Type
// and payload. Payload shapes are fixed per kind:
//
//	BYTE        int8 (booleans are normalized to 0/1 on construction)
//	SHORT       int16
//	INT         int32
//	LONG        int64
//	FLOAT       float32
//	DOUBLE      float64
//	BYTE_ARRAY  []byte
//	STRING      string
//	LIST        []Node
//	COMPOUND    map[string]Node
//	INT_ARRAY   []int32
//	LONG_ARRAY  []int64
//	END         nil
//
// Node is the default representation bound to the codecs by the
// mapper package; converters, the pretty-printer, and the CLI all
// operate on it. Callers needing a different runtime representation
// implement their own mapper instead of converting Nodes.
type Node struct {
	Type  Type
	Value any
}

// Convenience constructors for the scalar kinds.

func ByteNode(v int8) Node    { return Node{Type: Byte, Value: v} }
func ShortNode(v int16) Node  { return Node{Type: Short, Value: v} }
func IntNode(v int32) Node    { return Node{Type: Int, Value: v} }
func LongNode(v int64) Node   { return Node{Type: Long, Value: v} }
func FloatNode(v float32) Node  { return Node{Type: Float, Value: v} }
func DoubleNode(v float64) Node { return Node{Type: Double, Value: v} }
func StringNode(v string) Node  { return Node{Type: String, Value: v} }

func ByteArrayNode(v []byte) Node         { return Node{Type: ByteArray, Value: v} }
func IntArrayNode(v []int32) Node         { return Node{Type: IntArray, Value: v} }
func LongArrayNode(v []int64) Node        { return Node{Type: LongArray, Value: v} }
func ListNode(v []Node) Node              { return Node{Type: List, Value: v} }
func CompoundNode(v map[string]Node) Node { return Node{Type: Compound, Value: v} }

// BoolNode builds a BYTE node from a boolean; booleans share wire id
// 1 with 8-bit integers.
func BoolNode(v bool) Node {
	if v {
		return Node{Type: Byte, Value: int8(1)}
	}
	return Node{Type: Byte, Value: int8(0)}
}

// Bool reports the payload of a BYTE node as a boolean (nonzero is
// true). Only meaningful for BYTE nodes.
func (n Node) Bool() bool {
	b, _ := n.Value.(int8)
	return b != 0
}

// Equal compares two Nodes structurally: scalar payloads by value,
// arrays element-wise, lists recursively in order, compounds by key
// set with recursive value comparison (entry order is irrelevant).
func Equal(a, b Node) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type.id {
	case IDByteArray:
		return bytesEqual(a.Value, b.Value)
	case IDIntArray:
		x, _ := a.Value.([]int32)
		y, _ := b.Value.([]int32)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case IDLongArray:
		x, _ := a.Value.([]int64)
		y, _ := b.Value.([]int64)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if x[i] != y[i] {
				return false
			}
		}
		return true
	case IDList:
		x, _ := a.Value.([]Node)
		y, _ := b.Value.([]Node)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case IDCompound:
		x, _ := a.Value.(map[string]Node)
		y, _ := b.Value.(map[string]Node)
		if len(x) != len(y) {
			return false
		}
		for key, child := range x {
			other, ok := y[key]
			if !ok || !Equal(child, other) {
				return false
			}
		}
		return true
	default:
		return a.Value == b.Value
	}
}

func bytesEqual(a, b any) bool {
	x, _ := a.([]byte)
	y, _ := b.([]byte)
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}
