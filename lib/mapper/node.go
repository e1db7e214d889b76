// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapper

import (
	"fmt"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/tag"
)

// NodeMapper is the built-in capability binding the codecs to the
// canonical tag.Node tree. It is stateless; the zero value is ready
// to use and one instance can serve any number of codec instances.
type NodeMapper struct{}

// Nodes is a ready-to-use NodeMapper instance.
var Nodes NodeMapper

// Build constructs a Node from the raw shape for typ. Booleans are
// normalized to int8 0/1 so BYTE nodes compare consistently.
func (NodeMapper) Build(typ tag.Type, raw any) (tag.Node, error) {
	if !typ.Valid() {
		return tag.Node{}, errdefs.UnsupportedTypef("build %s", typ.Name())
	}
	switch typ.ID() {
	case tag.IDEnd:
		return tag.Node{Type: tag.End}, nil

	case tag.IDByte:
		switch v := raw.(type) {
		case int8:
			return tag.ByteNode(v), nil
		case byte:
			return tag.ByteNode(int8(v)), nil
		case bool:
			return tag.BoolNode(v), nil
		}

	case tag.IDShort:
		if v, ok := raw.(int16); ok {
			return tag.ShortNode(v), nil
		}

	case tag.IDInt:
		if v, ok := raw.(int32); ok {
			return tag.IntNode(v), nil
		}

	case tag.IDLong:
		if v, ok := raw.(int64); ok {
			return tag.LongNode(v), nil
		}

	case tag.IDFloat:
		if v, ok := raw.(float32); ok {
			return tag.FloatNode(v), nil
		}

	case tag.IDDouble:
		if v, ok := raw.(float64); ok {
			return tag.DoubleNode(v), nil
		}

	case tag.IDByteArray:
		data, err := AsByteArray(raw)
		if err != nil {
			return tag.Node{}, err
		}
		return tag.ByteArrayNode(data), nil

	case tag.IDString:
		if v, ok := raw.(string); ok {
			return tag.StringNode(v), nil
		}

	case tag.IDList:
		if v, ok := raw.([]tag.Node); ok {
			return tag.ListNode(v), nil
		}

	case tag.IDCompound:
		if v, ok := raw.(map[string]tag.Node); ok {
			return tag.CompoundNode(v), nil
		}

	case tag.IDIntArray:
		data, err := AsIntArray(raw)
		if err != nil {
			return tag.Node{}, err
		}
		return tag.IntArrayNode(data), nil

	case tag.IDLongArray:
		data, err := AsLongArray(raw)
		if err != nil {
			return tag.Node{}, err
		}
		return tag.LongArrayNode(data), nil
	}
	return tag.Node{}, fmt.Errorf("build %s: unexpected raw value %T", typ.Name(), raw)
}

// Extract returns the Node's payload.
func (NodeMapper) Extract(node tag.Node) (any, error) {
	return node.Value, nil
}

// TypeOf returns the Node's declared type.
func (NodeMapper) TypeOf(node tag.Node) tag.Type {
	return node.Type
}

// Size estimates the Node's in-memory footprint.
func (NodeMapper) Size(node tag.Node) int {
	return tag.Size(node)
}

// ListElementType reports the declared element type of a LIST node:
// END when empty, the first element's type otherwise.
func (NodeMapper) ListElementType(node tag.Node) (tag.Type, error) {
	if node.Type != tag.List {
		return tag.End, fmt.Errorf("list element type of %s", node.Type.Name())
	}
	elements, _ := node.Value.([]tag.Node)
	if len(elements) == 0 {
		return tag.End, nil
	}
	return elements[0].Type, nil
}

// IsType reports whether value is a tag.Node.
func (NodeMapper) IsType(value any) bool {
	_, ok := value.(tag.Node)
	return ok
}
