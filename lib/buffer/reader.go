// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"fmt"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/mapper"
	"github.com/tagforge/nbt/lib/tag"
	"github.com/tagforge/nbt/lib/wire"
)

// DefaultMaxDepth bounds LIST/COMPOUND nesting, matching the stream
// codec's default.
const DefaultMaxDepth = 512

// Hard allocation caps, shared with the stream codec's values.
const (
	maxByteArrayLength = 16 * 1024 * 1024
	maxArrayElements   = 16 * 1024 * 1024
)

// Option configures a Reader. The option target is unparameterized
// so one Option value works for any representation type.
type Option func(*config)

type config struct {
	maxDepth int
}

// WithMaxDepth sets the maximum LIST/COMPOUND nesting depth.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// Reader decodes binary NBT out of a wire.Buffer. Like the stream
// codec it is single-threaded and must be abandoned after a failure;
// unlike it, there is no byte quota.
type Reader[T any] struct {
	buffer         *wire.Buffer
	mapper         mapper.Mapper[T]
	network        bool
	remainingDepth int
}

// NewReader returns a little-endian Reader over b.
func NewReader[T any](b *wire.Buffer, m mapper.Mapper[T], options ...Option) *Reader[T] {
	return newReader(b, m, false, options)
}

// NewNetworkReader returns a Reader over b using the varint network
// encodings.
func NewNetworkReader[T any](b *wire.Buffer, m mapper.Mapper[T], options ...Option) *Reader[T] {
	return newReader(b, m, true, options)
}

func newReader[T any](b *wire.Buffer, m mapper.Mapper[T], network bool, options []Option) *Reader[T] {
	configuration := config{maxDepth: DefaultMaxDepth}
	for _, option := range options {
		option(&configuration)
	}
	return &Reader[T]{
		buffer:         b,
		mapper:         m,
		network:        network,
		remainingDepth: configuration.maxDepth,
	}
}

// ReadNamed reads the named root layout (id, discarded name, value).
func (r *Reader[T]) ReadNamed() (T, error) {
	var zero T
	id, err := r.buffer.ReadByte()
	if err != nil {
		return zero, err
	}
	typ := tag.GetType(id)
	if typ == tag.End {
		return r.readValue(typ)
	}
	if _, err := r.readString(); err != nil {
		return zero, fmt.Errorf("root name: %w", err)
	}
	return r.readValue(typ)
}

// ReadValue reads the bare value layout (id, value).
func (r *Reader[T]) ReadValue() (T, error) {
	var zero T
	id, err := r.buffer.ReadByte()
	if err != nil {
		return zero, err
	}
	return r.readValue(tag.GetType(id))
}

// readInt reads an INT payload or count field: fixed little-endian
// normally, ZigZag varint in the network variant.
func (r *Reader[T]) readInt() (int32, error) {
	if !r.network {
		return r.buffer.ReadInt32()
	}
	encoded, err := wire.ReadUvarint32(r.buffer)
	if err != nil {
		return 0, err
	}
	return wire.UnZigZag32(encoded), nil
}

// readLong reads a LONG payload.
func (r *Reader[T]) readLong() (int64, error) {
	if !r.network {
		return r.buffer.ReadInt64()
	}
	encoded, err := wire.ReadUvarint64(r.buffer)
	if err != nil {
		return 0, err
	}
	return wire.UnZigZag64(encoded), nil
}

// readString reads a string: 2-byte length normally, unsigned varint
// length in the network variant.
func (r *Reader[T]) readString() (string, error) {
	var length int
	if r.network {
		encoded, err := wire.ReadUvarint32(r.buffer)
		if err != nil {
			return "", err
		}
		length = int(encoded)
	} else {
		fixed, err := r.buffer.ReadInt16()
		if err != nil {
			return "", err
		}
		length = int(uint16(fixed))
	}
	if length > r.buffer.Remaining() {
		return "", errdefs.Formatf("string length %d exceeds remaining buffer", length)
	}
	data := make([]byte, length)
	if err := r.buffer.ReadFull(data); err != nil {
		return "", err
	}
	return string(data), nil
}

func (r *Reader[T]) enter() error {
	r.remainingDepth--
	if r.remainingDepth < 0 {
		return errdefs.ResourceExceededf("nesting depth limit exceeded")
	}
	return nil
}

func (r *Reader[T]) leave() {
	r.remainingDepth++
}

func (r *Reader[T]) readValue(typ tag.Type) (T, error) {
	var zero T
	if !typ.Valid() {
		return zero, errdefs.UnsupportedTypef("read tag id %d", typ.ID())
	}

	switch typ.ID() {
	case tag.IDEnd:
		return r.mapper.Build(tag.End, nil)

	case tag.IDByte:
		value, err := r.buffer.ReadByte()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Byte, int8(value))

	case tag.IDShort:
		value, err := r.buffer.ReadInt16()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Short, value)

	case tag.IDInt:
		value, err := r.readInt()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Int, value)

	case tag.IDLong:
		value, err := r.readLong()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Long, value)

	case tag.IDFloat:
		value, err := r.buffer.ReadFloat32()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Float, value)

	case tag.IDDouble:
		value, err := r.buffer.ReadFloat64()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Double, value)

	case tag.IDByteArray:
		length, err := r.readInt()
		if err != nil {
			return zero, err
		}
		if length < 0 {
			return zero, errdefs.Formatf("byte array length %d", length)
		}
		if length > maxByteArrayLength {
			return zero, errdefs.ResourceExceededf("byte array length %d exceeds cap", length)
		}
		data := make([]byte, length)
		if err := r.buffer.ReadFull(data); err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.ByteArray, data)

	case tag.IDString:
		value, err := r.readString()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.String, value)

	case tag.IDList:
		return r.readList()

	case tag.IDCompound:
		return r.readCompound()

	case tag.IDIntArray:
		length, err := r.readArrayLength()
		if err != nil {
			return zero, err
		}
		data := make([]int32, length)
		for i := range data {
			if data[i], err = r.readInt(); err != nil {
				return zero, err
			}
		}
		return r.mapper.Build(tag.IntArray, data)

	case tag.IDLongArray:
		length, err := r.readArrayLength()
		if err != nil {
			return zero, err
		}
		data := make([]int64, length)
		for i := range data {
			if data[i], err = r.readLong(); err != nil {
				return zero, err
			}
		}
		return r.mapper.Build(tag.LongArray, data)
	}
	return zero, errdefs.UnsupportedTypef("read tag id %d", typ.ID())
}

func (r *Reader[T]) readArrayLength() (int, error) {
	length, err := r.readInt()
	if err != nil {
		return 0, err
	}
	if length < 0 {
		return 0, errdefs.Formatf("array length %d", length)
	}
	if length > maxArrayElements {
		return 0, errdefs.ResourceExceededf("array length %d exceeds cap", length)
	}
	return int(length), nil
}

func (r *Reader[T]) readList() (T, error) {
	var zero T
	if err := r.enter(); err != nil {
		return zero, err
	}
	defer r.leave()

	elementID, err := r.buffer.ReadByte()
	if err != nil {
		return zero, err
	}
	count, err := r.readInt()
	if err != nil {
		return zero, err
	}
	elementType := tag.GetType(elementID)
	if count < 0 {
		return zero, errdefs.Formatf("list count %d", count)
	}
	if elementType == tag.End && count != 0 {
		return zero, errdefs.Formatf("list of END with %d elements", count)
	}
	if elementType != tag.End && count == 0 {
		return zero, errdefs.Formatf("empty list declares element type %s", elementType.Name())
	}

	elements := make([]T, 0, min(int(count), 4096))
	for i := int32(0); i < count; i++ {
		element, err := r.readValue(elementType)
		if err != nil {
			return zero, fmt.Errorf("list element %d: %w", i, err)
		}
		elements = append(elements, element)
	}
	return r.mapper.Build(tag.List, elements)
}

func (r *Reader[T]) readCompound() (T, error) {
	var zero T
	if err := r.enter(); err != nil {
		return zero, err
	}
	defer r.leave()

	entries := make(map[string]T)
	for {
		id, err := r.buffer.ReadByte()
		if err != nil {
			return zero, err
		}
		if id == tag.IDEnd {
			break
		}
		key, err := r.readString()
		if err != nil {
			return zero, err
		}
		value, err := r.readValue(tag.GetType(id))
		if err != nil {
			return zero, fmt.Errorf("compound entry %q: %w", key, err)
		}
		entries[key] = value
	}
	return r.mapper.Build(tag.Compound, entries)
}
