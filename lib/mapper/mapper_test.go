// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapper

import (
	"testing"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/tag"
)

func TestNodeBuild(t *testing.T) {
	tests := []struct {
		name string
		typ  tag.Type
		raw  any
		want tag.Node
	}{
		{"byte from int8", tag.Byte, int8(-5), tag.ByteNode(-5)},
		{"byte from byte", tag.Byte, byte(200), tag.ByteNode(-56)},
		{"byte from bool", tag.Byte, true, tag.ByteNode(1)},
		{"short", tag.Short, int16(-300), tag.ShortNode(-300)},
		{"int", tag.Int, int32(7), tag.IntNode(7)},
		{"long", tag.Long, int64(7), tag.LongNode(7)},
		{"float", tag.Float, float32(1.5), tag.FloatNode(1.5)},
		{"double", tag.Double, 2.5, tag.DoubleNode(2.5)},
		{"string", tag.String, "x", tag.StringNode("x")},
		{"byte array", tag.ByteArray, []byte{1, 2}, tag.ByteArrayNode([]byte{1, 2})},
		{"byte array from boxed", tag.ByteArray, []any{int8(1), true}, tag.ByteArrayNode([]byte{1, 1})},
		{"int array", tag.IntArray, []int32{-1}, tag.IntArrayNode([]int32{-1})},
		{"long array", tag.LongArray, []int64{9}, tag.LongArrayNode([]int64{9})},
		{"list", tag.List, []tag.Node{tag.IntNode(1)}, tag.ListNode([]tag.Node{tag.IntNode(1)})},
		{"compound", tag.Compound, map[string]tag.Node{"k": tag.IntNode(1)},
			tag.CompoundNode(map[string]tag.Node{"k": tag.IntNode(1)})},
		{"end", tag.End, nil, tag.Node{Type: tag.End}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Nodes.Build(test.typ, test.raw)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if !tag.Equal(got, test.want) {
				t.Errorf("Build(%v, %#v) = %#v, want %#v", test.typ, test.raw, got, test.want)
			}
		})
	}
}

func TestNodeBuildInvalidType(t *testing.T) {
	_, err := Nodes.Build(tag.GetType(42), nil)
	if !errdefs.IsUnsupportedType(err) {
		t.Errorf("Build(invalid) = %v, want unsupported type", err)
	}
}

func TestNodeBuildRawMismatch(t *testing.T) {
	if _, err := Nodes.Build(tag.Int, "not an int"); err == nil {
		t.Error("Build(INT, string) succeeded")
	}
}

func TestNodeOverrides(t *testing.T) {
	node := tag.StringNode("ab")

	raw, err := Extract(Nodes, node)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if raw != "ab" {
		t.Errorf("Extract = %#v", raw)
	}

	if typ := TypeOf(Nodes, node); typ != tag.String {
		t.Errorf("TypeOf = %v", typ)
	}

	// 36 base + 2 per character.
	if size := Size(Nodes, node); size != 40 {
		t.Errorf("Size = %d, want 40", size)
	}

	if !IsType(Nodes, node) {
		t.Error("IsType(Node) = false")
	}
	if IsType(Nodes, "plain string") {
		t.Error("IsType(string) = true")
	}
}

func TestListElementType(t *testing.T) {
	typ, err := ListElementType(Nodes, tag.ListNode([]tag.Node{tag.ShortNode(1)}))
	if err != nil {
		t.Fatalf("ListElementType: %v", err)
	}
	if typ != tag.Short {
		t.Errorf("element type = %v, want short", typ)
	}

	typ, err = ListElementType(Nodes, tag.ListNode(nil))
	if err != nil {
		t.Fatalf("ListElementType(empty): %v", err)
	}
	if typ != tag.End {
		t.Errorf("empty list element type = %v, want end", typ)
	}

	if _, err := ListElementType(Nodes, tag.IntNode(1)); err == nil {
		t.Error("ListElementType(INT) succeeded")
	}
}

func TestElementType(t *testing.T) {
	if typ := ElementType[tag.Node](Nodes, nil); typ != tag.End {
		t.Errorf("ElementType(nil) = %v, want end", typ)
	}
	elements := []tag.Node{tag.LongNode(1), tag.IntNode(2)}
	// Only the first element decides.
	if typ := ElementType(Nodes, elements); typ != tag.Long {
		t.Errorf("ElementType = %v, want long", typ)
	}
}

func TestAsByteArray(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []byte
	}{
		{"bytes", []byte{1, 2}, []byte{1, 2}},
		{"int8s", []int8{-1, 1}, []byte{255, 1}},
		{"bools", []bool{true, false}, []byte{1, 0}},
		{"boxed", []any{byte(3), int8(-1), false}, []byte{3, 255, 0}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := AsByteArray(test.raw)
			if err != nil {
				t.Fatalf("AsByteArray: %v", err)
			}
			if len(got) != len(test.want) {
				t.Fatalf("AsByteArray = %v, want %v", got, test.want)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Errorf("AsByteArray = %v, want %v", got, test.want)
					break
				}
			}
		})
	}

	if _, err := AsByteArray("nope"); err == nil {
		t.Error("AsByteArray(string) succeeded")
	}
	if _, err := AsByteArray([]any{int32(1)}); err == nil {
		t.Error("AsByteArray([]any{int32}) succeeded")
	}
}

func TestAsBoolArray(t *testing.T) {
	got, err := AsBoolArray([]byte{0, 1, 2})
	if err != nil {
		t.Fatalf("AsBoolArray: %v", err)
	}
	want := []bool{false, true, true}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AsBoolArray = %v, want %v", got, want)
		}
	}
}

func TestAsIntArray(t *testing.T) {
	got, err := AsIntArray([]any{int32(1), int32(-2)})
	if err != nil {
		t.Fatalf("AsIntArray: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != -2 {
		t.Errorf("AsIntArray = %v", got)
	}
	if _, err := AsIntArray([]any{int64(1)}); err == nil {
		t.Error("AsIntArray([]any{int64}) succeeded")
	}
}

func TestAsLongArray(t *testing.T) {
	got, err := AsLongArray([]int64{1 << 40})
	if err != nil {
		t.Fatalf("AsLongArray: %v", err)
	}
	if len(got) != 1 || got[0] != 1<<40 {
		t.Errorf("AsLongArray = %v", got)
	}
	if _, err := AsLongArray([]any{"x"}); err == nil {
		t.Error("AsLongArray([]any{string}) succeeded")
	}
}

// rawMapper has no optional interfaces: T is its own raw value, so all
// the package-level helpers exercise their defaults.
type rawMapper struct{}

func (rawMapper) Build(typ tag.Type, raw any) (any, error) {
	return raw, nil
}

func TestDefaultHelpers(t *testing.T) {
	m := rawMapper{}

	raw, err := Extract[any](m, int32(7))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if raw != int32(7) {
		t.Errorf("Extract = %#v", raw)
	}

	if typ := TypeOf[any](m, int32(7)); typ != tag.Int {
		t.Errorf("TypeOf = %v, want int", typ)
	}
	if typ := TypeOf[any](m, "s"); typ != tag.String {
		t.Errorf("TypeOf = %v, want string", typ)
	}

	if size := Size[any](m, int32(7)); size != tag.Size(int32(7)) {
		t.Errorf("Size = %d", size)
	}

	if !IsType[any](m, "anything") {
		t.Error("IsType under any = false")
	}
}
