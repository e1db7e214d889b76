// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"bytes"
	"testing"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/mapper"
	"github.com/tagforge/nbt/lib/stream"
	"github.com/tagforge/nbt/lib/tag"
	"github.com/tagforge/nbt/lib/wire"
)

func sampleTree() tag.Node {
	return tag.CompoundNode(map[string]tag.Node{
		"byte":   tag.ByteNode(-5),
		"short":  tag.ShortNode(-300),
		"int":    tag.IntNode(-123456),
		"long":   tag.LongNode(1 << 40),
		"float":  tag.FloatNode(1.5),
		"double": tag.DoubleNode(-2.25),
		"text":   tag.StringNode("héllo"),
		"bytes":  tag.ByteArrayNode([]byte{0, 1, 255}),
		"ints":   tag.IntArrayNode([]int32{-1, 0, 1}),
		"longs":  tag.LongArrayNode([]int64{-1, 1 << 50}),
		"list":   tag.ListNode([]tag.Node{tag.StringNode("a"), tag.StringNode("b")}),
		"nested": tag.CompoundNode(map[string]tag.Node{"inner": tag.IntNode(9)}),
	})
}

func TestRoundtrip(t *testing.T) {
	original := sampleTree()

	b := wire.NewBuffer()
	if err := NewWriter(b, mapper.Nodes).WriteNamed("root", original); err != nil {
		t.Fatalf("WriteNamed: %v", err)
	}
	b.Flip()

	decoded, err := NewReader(b, mapper.Nodes).ReadNamed()
	if err != nil {
		t.Fatalf("ReadNamed: %v", err)
	}
	if !tag.Equal(original, decoded) {
		t.Error("roundtrip mismatch")
	}
}

func TestNetworkRoundtrip(t *testing.T) {
	original := sampleTree()

	b := wire.NewBuffer()
	if err := NewNetworkWriter(b, mapper.Nodes).WriteNamed("root", original); err != nil {
		t.Fatalf("WriteNamed: %v", err)
	}
	b.Flip()

	decoded, err := NewNetworkReader(b, mapper.Nodes).ReadNamed()
	if err != nil {
		t.Fatalf("ReadNamed: %v", err)
	}
	if !tag.Equal(original, decoded) {
		t.Error("network roundtrip mismatch")
	}
}

func TestNetworkIntEncoding(t *testing.T) {
	// Small-magnitude ints must stay small on the wire: -1 zigzags
	// to 1, which is a single byte instead of four.
	b := wire.NewBuffer()
	if err := NewNetworkWriter(b, mapper.Nodes).WriteValue(tag.IntNode(-1)); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	want := []byte{tag.IDInt, 0x01}
	if !bytes.Equal(b.Bytes(), want) {
		t.Errorf("encoded % x, want % x", b.Bytes(), want)
	}
}

func TestNetworkStringLength(t *testing.T) {
	// String lengths are unsigned varints, not zigzag.
	b := wire.NewBuffer()
	if err := NewNetworkWriter(b, mapper.Nodes).WriteValue(tag.StringNode("ab")); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	want := []byte{tag.IDString, 0x02, 'a', 'b'}
	if !bytes.Equal(b.Bytes(), want) {
		t.Errorf("encoded % x, want % x", b.Bytes(), want)
	}
}

func TestMatchesStreamEncoding(t *testing.T) {
	// The little-endian buffer codec and the stream codec produce
	// identical bytes for the same value.
	original := tag.CompoundNode(map[string]tag.Node{
		"n": tag.IntNode(123456),
	})

	b := wire.NewBuffer()
	if err := NewWriter(b, mapper.Nodes).WriteNamed("root", original); err != nil {
		t.Fatalf("buffer WriteNamed: %v", err)
	}

	var streamed bytes.Buffer
	if err := stream.NewWriter(&streamed, mapper.Nodes).WriteNamed("root", original); err != nil {
		t.Fatalf("stream WriteNamed: %v", err)
	}

	if !bytes.Equal(b.Bytes(), streamed.Bytes()) {
		t.Errorf("buffer codec % x\nstream codec % x", b.Bytes(), streamed.Bytes())
	}
}

func TestReadsStreamEncoding(t *testing.T) {
	original := sampleTree()
	var streamed bytes.Buffer
	if err := stream.NewWriter(&streamed, mapper.Nodes).WriteValue(original); err != nil {
		t.Fatalf("stream WriteValue: %v", err)
	}

	decoded, err := NewReader(wire.NewBufferFrom(streamed.Bytes()), mapper.Nodes).ReadValue()
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	if !tag.Equal(original, decoded) {
		t.Error("cross-codec decode mismatch")
	}
}

func TestFlipReuse(t *testing.T) {
	b := wire.NewBuffer()
	for i := int32(0); i < 3; i++ {
		b.Reset()
		if err := NewWriter(b, mapper.Nodes).WriteValue(tag.IntNode(i)); err != nil {
			t.Fatalf("WriteValue: %v", err)
		}
		b.Flip()
		decoded, err := NewReader(b, mapper.Nodes).ReadValue()
		if err != nil {
			t.Fatalf("ReadValue: %v", err)
		}
		if !tag.Equal(decoded, tag.IntNode(i)) {
			t.Errorf("iteration %d decoded %#v", i, decoded)
		}
	}
}

func nestedCompounds(depth int) tag.Node {
	node := tag.IntNode(1)
	for i := 0; i < depth; i++ {
		node = tag.CompoundNode(map[string]tag.Node{"c": node})
	}
	return node
}

func TestDepthBound(t *testing.T) {
	const limit = 8

	within := nestedCompounds(limit)
	b := wire.NewBuffer()
	if err := NewWriter(b, mapper.Nodes).WriteValue(within); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	b.Flip()
	if _, err := NewReader(b, mapper.Nodes, WithMaxDepth(limit)).ReadValue(); err != nil {
		t.Fatalf("read at exactly maxDepth: %v", err)
	}

	beyond := nestedCompounds(limit + 1)
	b.Reset()
	if err := NewWriter(b, mapper.Nodes).WriteValue(beyond); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	b.Flip()
	_, err := NewReader(b, mapper.Nodes, WithMaxDepth(limit)).ReadValue()
	if !errdefs.IsResourceExceeded(err) {
		t.Errorf("read past maxDepth = %v, want resource exceeded", err)
	}
}

func TestStringLengthExceedsBuffer(t *testing.T) {
	// STRING id, declared length 100, two bytes of payload.
	b := wire.NewBufferFrom([]byte{tag.IDString, 100, 0, 'a', 'b'})
	_, err := NewReader(b, mapper.Nodes).ReadValue()
	if !errdefs.IsFormat(err) {
		t.Errorf("read = %v, want format violation", err)
	}
}

func TestByteArrayCap(t *testing.T) {
	b := wire.NewBufferFrom([]byte{tag.IDByteArray, 0xff, 0xff, 0xff, 0x7f})
	_, err := NewReader(b, mapper.Nodes).ReadValue()
	if !errdefs.IsResourceExceeded(err) {
		t.Errorf("read = %v, want resource exceeded", err)
	}
}

func TestUnknownTagID(t *testing.T) {
	b := wire.NewBufferFrom([]byte{42})
	_, err := NewReader(b, mapper.Nodes).ReadValue()
	if !errdefs.IsUnsupportedType(err) {
		t.Errorf("read = %v, want unsupported type", err)
	}
}
