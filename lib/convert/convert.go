// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/tag"
)

// Simplify converts a canonical tree into plain Go values: compounds
// become map[string]any, lists []any, arrays their primitive slices
// (byte arrays as []int8 so downstream JSON renders numbers, not
// base64), and scalars pass through unchanged.
func Simplify(node tag.Node) (any, error) {
	if !node.Type.Valid() {
		return nil, errdefs.UnsupportedTypef("simplify %s", node.Type.Name())
	}
	switch node.Type.ID() {
	case tag.IDEnd:
		return nil, nil

	case tag.IDByte, tag.IDShort, tag.IDInt, tag.IDLong,
		tag.IDFloat, tag.IDDouble, tag.IDString,
		tag.IDIntArray, tag.IDLongArray:
		return node.Value, nil

	case tag.IDByteArray:
		data, _ := node.Value.([]byte)
		signed := make([]int8, len(data))
		for i, b := range data {
			signed[i] = int8(b)
		}
		return signed, nil

	case tag.IDList:
		elements, _ := node.Value.([]tag.Node)
		simplified := make([]any, len(elements))
		for i, element := range elements {
			value, err := Simplify(element)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			simplified[i] = value
		}
		return simplified, nil

	case tag.IDCompound:
		entries, _ := node.Value.(map[string]tag.Node)
		simplified := make(map[string]any, len(entries))
		for key, child := range entries {
			value, err := Simplify(child)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", key, err)
			}
			simplified[key] = value
		}
		return simplified, nil
	}
	return nil, errdefs.UnsupportedTypef("simplify %s", node.Type.Name())
}

// ToJSON renders the simplified view of a tree as JSON.
func ToJSON(node tag.Node) ([]byte, error) {
	simplified, err := Simplify(node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(simplified)
}

// ToJSONIndent renders the simplified view of a tree as indented
// JSON for human consumption.
func ToJSONIndent(node tag.Node) ([]byte, error) {
	simplified, err := Simplify(node)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(simplified, "", "  ")
}

// ToYAML renders the simplified view of a tree as YAML.
func ToYAML(node tag.Node) ([]byte, error) {
	simplified, err := Simplify(node)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(simplified)
}
