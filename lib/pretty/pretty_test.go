// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package pretty

import (
	"testing"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/tag"
)

// Tests render without color: styled output depends on the terminal
// profile lipgloss detects, plain output does not.

func TestRenderScalars(t *testing.T) {
	printer := NewPrinter(WithColor(false))
	tests := []struct {
		node tag.Node
		want string
	}{
		{tag.ByteNode(-5), "-5b"},
		{tag.ShortNode(300), "300s"},
		{tag.IntNode(42), "42"},
		{tag.LongNode(-7), "-7l"},
		{tag.FloatNode(1.5), "1.5f"},
		{tag.DoubleNode(2.5), "2.5d"},
		{tag.StringNode("hi"), `"hi"`},
		{tag.ByteArrayNode([]byte{1, 255}), "[B; 1b, -1b]"},
		{tag.IntArrayNode([]int32{-1, 0}), "[I; -1, 0]"},
		{tag.LongArrayNode([]int64{5}), "[L; 5l]"},
		{tag.ListNode(nil), "[]"},
		{tag.CompoundNode(map[string]tag.Node{}), "{}"},
	}
	for _, test := range tests {
		got, err := printer.Render(test.node)
		if err != nil {
			t.Fatalf("Render(%#v): %v", test.node, err)
		}
		if got != test.want {
			t.Errorf("Render(%#v) = %q, want %q", test.node, got, test.want)
		}
	}
}

func TestRenderCompoundSortedStable(t *testing.T) {
	printer := NewPrinter(WithColor(false))
	node := tag.CompoundNode(map[string]tag.Node{
		"zebra": tag.IntNode(1),
		"alpha": tag.IntNode(2),
	})
	want := "{\n  alpha: 2,\n  zebra: 1\n}"
	for i := 0; i < 5; i++ {
		got, err := printer.Render(node)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if got != want {
			t.Fatalf("Render = %q, want %q", got, want)
		}
	}
}

func TestRenderNested(t *testing.T) {
	printer := NewPrinter(WithColor(false), WithIndent("\t"))
	node := tag.CompoundNode(map[string]tag.Node{
		"list": tag.ListNode([]tag.Node{tag.IntNode(1), tag.IntNode(2)}),
	})
	want := "{\n\tlist: [\n\t\t1,\n\t\t2\n\t]\n}"
	got, err := printer.Render(node)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderEndFails(t *testing.T) {
	printer := NewPrinter(WithColor(false))
	if _, err := printer.Render(tag.Node{Type: tag.End}); !errdefs.IsUnsupportedType(err) {
		t.Errorf("Render(END) = %v, want unsupported type", err)
	}
}
