// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"testing"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/mapper"
	"github.com/tagforge/nbt/lib/tag"
)

// sampleTree exercises every tag kind reachable from one root.
func sampleTree() tag.Node {
	return tag.CompoundNode(map[string]tag.Node{
		"byte":    tag.ByteNode(-5),
		"bool":    tag.BoolNode(true),
		"short":   tag.ShortNode(-300),
		"int":     tag.IntNode(123456),
		"long":    tag.LongNode(-(1 << 40)),
		"float":   tag.FloatNode(1.5),
		"double":  tag.DoubleNode(-2.25),
		"text":    tag.StringNode("héllo"),
		"bytes":   tag.ByteArrayNode([]byte{0, 1, 255}),
		"ints":    tag.IntArrayNode([]int32{-1, 0, 1}),
		"longs":   tag.LongArrayNode([]int64{-1, 1 << 50}),
		"list":    tag.ListNode([]tag.Node{tag.IntNode(1), tag.IntNode(2), tag.IntNode(3)}),
		"empty":   tag.ListNode(nil),
		"nested":  tag.CompoundNode(map[string]tag.Node{"inner": tag.StringNode("x")}),
		"nothing": tag.CompoundNode(map[string]tag.Node{}),
	})
}

func TestNamedRoundtrip(t *testing.T) {
	original := sampleTree()

	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteNamed("root", original); err != nil {
		t.Fatalf("WriteNamed: %v", err)
	}

	decoded, err := NewReader(&encoded, mapper.Nodes).ReadNamed()
	if err != nil {
		t.Fatalf("ReadNamed: %v", err)
	}
	if !tag.Equal(original, decoded) {
		t.Errorf("roundtrip mismatch:\n got %#v\nwant %#v", decoded, original)
	}
}

func TestValueRoundtrip(t *testing.T) {
	original := sampleTree()

	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteValue(original); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}

	decoded, err := NewReader(&encoded, mapper.Nodes).ReadValue()
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	if !tag.Equal(original, decoded) {
		t.Error("value layout roundtrip mismatch")
	}
}

func TestFileRoundtrip(t *testing.T) {
	original := sampleTree()

	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteFile(9, original); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	decoded, err := NewReader(&encoded, mapper.Nodes).ReadFile()
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !tag.Equal(original, decoded) {
		t.Error("file layout roundtrip mismatch")
	}
}

func TestNamedLayoutBytes(t *testing.T) {
	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteNamed("hi", tag.IntNode(1)); err != nil {
		t.Fatalf("WriteNamed: %v", err)
	}
	want := []byte{
		3,        // INT id
		2, 0,     // name length, little-endian
		'h', 'i', // name
		1, 0, 0, 0, // value
	}
	if !bytes.Equal(encoded.Bytes(), want) {
		t.Errorf("encoded % x, want % x", encoded.Bytes(), want)
	}
}

func TestRootNameDiscarded(t *testing.T) {
	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteNamed("ignored", tag.IntNode(7)); err != nil {
		t.Fatalf("WriteNamed: %v", err)
	}
	decoded, err := NewReader(&encoded, mapper.Nodes).ReadNamed()
	if err != nil {
		t.Fatalf("ReadNamed: %v", err)
	}
	if !tag.Equal(decoded, tag.IntNode(7)) {
		t.Errorf("decoded %#v", decoded)
	}
}

func TestQuotaExceeded(t *testing.T) {
	original := tag.ByteArrayNode(make([]byte, 4096))

	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteValue(original); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}

	_, err := NewReader(&encoded, mapper.Nodes, WithQuota(1024)).ReadValue()
	if !errdefs.IsResourceExceeded(err) {
		t.Errorf("read with 1 KiB quota = %v, want resource exceeded", err)
	}
}

func TestQuotaExceededDeepInStructure(t *testing.T) {
	// The overflow happens at an inner string, not the root: the
	// failure point must not matter.
	original := tag.CompoundNode(map[string]tag.Node{
		"a": tag.StringNode(string(make([]byte, 100))),
		"b": tag.CompoundNode(map[string]tag.Node{
			"c": tag.StringNode(string(make([]byte, 2000))),
		}),
	})
	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteValue(original); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	_, err := NewReader(&encoded, mapper.Nodes, WithQuota(1000)).ReadValue()
	if !errdefs.IsResourceExceeded(err) {
		t.Errorf("read = %v, want resource exceeded", err)
	}
}

func TestUnlimitedQuota(t *testing.T) {
	original := tag.ByteArrayNode(make([]byte, 4*1024*1024))

	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteValue(original); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}

	decoded, err := NewReader(&encoded, mapper.Nodes, WithUnlimitedQuota()).ReadValue()
	if err != nil {
		t.Fatalf("read with unlimited quota: %v", err)
	}
	if !tag.Equal(original, decoded) {
		t.Error("roundtrip mismatch")
	}
}

// nestedLists returns a value nested depth levels deep: lists inside
// lists with a terminal INT.
func nestedLists(depth int) tag.Node {
	node := tag.IntNode(1)
	for i := 0; i < depth; i++ {
		node = tag.ListNode([]tag.Node{node})
	}
	return node
}

func TestDepthBound(t *testing.T) {
	const limit = 16

	within := nestedLists(limit)
	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteValue(within); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	if _, err := NewReader(&encoded, mapper.Nodes, WithMaxDepth(limit)).ReadValue(); err != nil {
		t.Fatalf("read at exactly maxDepth: %v", err)
	}

	beyond := nestedLists(limit + 1)
	encoded.Reset()
	if err := NewWriter(&encoded, mapper.Nodes).WriteValue(beyond); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	_, err := NewReader(&encoded, mapper.Nodes, WithMaxDepth(limit)).ReadValue()
	if !errdefs.IsResourceExceeded(err) {
		t.Errorf("read past maxDepth = %v, want resource exceeded", err)
	}
}

func TestListStructureViolations(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		// LIST id, element id END, count 1.
		{"END with nonzero count", []byte{9, 0, 1, 0, 0, 0}},
		// LIST id, element id INT, count 0.
		{"typed with zero count", []byte{9, 3, 0, 0, 0, 0}},
		// LIST id, element id INT, negative count.
		{"negative count", []byte{9, 3, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(test.data), mapper.Nodes).ReadValue()
			if !errdefs.IsFormat(err) {
				t.Errorf("read = %v, want format violation", err)
			}
		})
	}
}

func TestEmptyListRoundtrip(t *testing.T) {
	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteValue(tag.ListNode(nil)); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	// Declared element type is END for an empty list.
	want := []byte{9, 0, 0, 0, 0, 0}
	if !bytes.Equal(encoded.Bytes(), want) {
		t.Fatalf("encoded % x, want % x", encoded.Bytes(), want)
	}
	decoded, err := NewReader(&encoded, mapper.Nodes).ReadValue()
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	if !tag.Equal(decoded, tag.ListNode(nil)) {
		t.Errorf("decoded %#v", decoded)
	}
}

func TestByteArrayCap(t *testing.T) {
	// Declared length far beyond the 16 MiB cap with no payload:
	// the reader must fail on the declaration, before allocating.
	data := []byte{7, 0xff, 0xff, 0xff, 0x7f}
	_, err := NewReader(bytes.NewReader(data), mapper.Nodes, WithUnlimitedQuota()).ReadValue()
	if !errdefs.IsResourceExceeded(err) {
		t.Errorf("read = %v, want resource exceeded", err)
	}
}

func TestIntArrayCap(t *testing.T) {
	data := []byte{11, 0xff, 0xff, 0xff, 0x7f}
	_, err := NewReader(bytes.NewReader(data), mapper.Nodes, WithUnlimitedQuota()).ReadValue()
	if !errdefs.IsResourceExceeded(err) {
		t.Errorf("read = %v, want resource exceeded", err)
	}
}

func TestUnknownTagID(t *testing.T) {
	data := []byte{42}
	_, err := NewReader(bytes.NewReader(data), mapper.Nodes).ReadValue()
	if !errdefs.IsUnsupportedType(err) {
		t.Errorf("read = %v, want unsupported type", err)
	}
}

func TestTruncatedInput(t *testing.T) {
	original := sampleTree()
	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteValue(original); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	truncated := encoded.Bytes()[:encoded.Len()/2]
	if _, err := NewReader(bytes.NewReader(truncated), mapper.Nodes).ReadValue(); err == nil {
		t.Error("read of truncated input succeeded")
	}
}

func TestListElementTypeInference(t *testing.T) {
	// The writer takes the element id from the first element only.
	elements := []tag.Node{tag.ShortNode(1), tag.ShortNode(2)}
	var encoded bytes.Buffer
	if err := NewWriter(&encoded, mapper.Nodes).WriteValue(tag.ListNode(elements)); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	if encoded.Bytes()[1] != tag.IDShort {
		t.Errorf("declared element id %d, want %d", encoded.Bytes()[1], tag.IDShort)
	}
}
