// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"fmt"
	"io"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/mapper"
	"github.com/tagforge/nbt/lib/tag"
	"github.com/tagforge/nbt/lib/wire"
)

// Reader decodes binary NBT from a stream into the representation
// type T via a mapper. Quota and depth state mutate during a read;
// clean reuse across top-level reads is fine (counters carry over, so
// a long-lived Reader on untrusted input should be recreated per
// message), but a Reader must be abandoned after any error.
type Reader[T any] struct {
	wire           *wire.Reader
	mapper         mapper.Mapper[T]
	remainingQuota int64
	unlimited      bool
	remainingDepth int
}

// NewReader returns a Reader over delegate using m to materialize
// values. Default limits apply unless overridden by options.
func NewReader[T any](delegate io.Reader, m mapper.Mapper[T], options ...Option) *Reader[T] {
	l := defaultLimits()
	for _, option := range options {
		option(&l)
	}
	return &Reader[T]{
		wire:           wire.NewReader(delegate),
		mapper:         m,
		remainingQuota: l.quota,
		unlimited:      l.unlimited,
		remainingDepth: l.maxDepth,
	}
}

// Close releases the underlying stream if it is closeable.
func (r *Reader[T]) Close() error {
	return r.wire.Close()
}

// ReadNamed reads the named root layout: a type id, a 2-byte-length
// name (discarded), and the value.
func (r *Reader[T]) ReadNamed() (T, error) {
	var zero T
	id, err := r.wire.ReadByte()
	if err != nil {
		return zero, err
	}
	typ := tag.GetType(id)
	if typ == tag.End {
		return r.readValue(typ)
	}
	if _, err := r.readName(); err != nil {
		return zero, fmt.Errorf("root name: %w", err)
	}
	return r.readValue(typ)
}

// ReadValue reads the bare value layout: a type id directly followed
// by the value.
func (r *Reader[T]) ReadValue() (T, error) {
	var zero T
	id, err := r.wire.ReadByte()
	if err != nil {
		return zero, err
	}
	return r.readValue(tag.GetType(id))
}

// ReadFile reads the bedrock file layout: a header of little-endian
// int32 version and int32 payload size, both consumed without
// validation, followed by the bare value layout.
func (r *Reader[T]) ReadFile() (T, error) {
	var zero T
	if _, err := r.wire.ReadInt32(); err != nil {
		return zero, fmt.Errorf("file header version: %w", err)
	}
	if _, err := r.wire.ReadInt32(); err != nil {
		return zero, fmt.Errorf("file header size: %w", err)
	}
	return r.ReadValue()
}

// charge deducts estimated bytes from the remaining quota.
func (r *Reader[T]) charge(estimated int) error {
	if r.unlimited {
		return nil
	}
	r.remainingQuota -= int64(estimated)
	if r.remainingQuota < 0 {
		return errdefs.ResourceExceededf("read quota exhausted")
	}
	return nil
}

// enter consumes one level of nesting depth; leave restores it.
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

// readName reads a 2-byte-length UTF-8 string without charging
// quota; names in the named layout are discarded, not retained.
func (r *Reader[T]) readName() (string, error) {
	length, err := r.wire.ReadInt16()
	if err != nil {
		return "", err
	}
	data := make([]byte, uint16(length))
	if err := r.wire.ReadFull(data); err != nil {
		return "", err
	}
	return string(data), nil
}

// readValue is the recursive value core shared by the three entry
// points. typ has already been consumed from the stream.
func (r *Reader[T]) readValue(typ tag.Type) (T, error) {
	var zero T
	if !typ.Valid() {
		return zero, errdefs.UnsupportedTypef("read tag id %d", typ.ID())
	}

	switch typ.ID() {
	case tag.IDEnd:
		if err := r.charge(typ.BaseSize()); err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.End, nil)

	case tag.IDByte:
		if err := r.charge(typ.BaseSize()); err != nil {
			return zero, err
		}
		value, err := r.wire.ReadByte()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Byte, int8(value))

	case tag.IDShort:
		if err := r.charge(typ.BaseSize()); err != nil {
			return zero, err
		}
		value, err := r.wire.ReadInt16()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Short, value)

	case tag.IDInt:
		if err := r.charge(typ.BaseSize()); err != nil {
			return zero, err
		}
		value, err := r.wire.ReadInt32()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Int, value)

	case tag.IDLong:
		if err := r.charge(typ.BaseSize()); err != nil {
			return zero, err
		}
		value, err := r.wire.ReadInt64()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Long, value)

	case tag.IDFloat:
		if err := r.charge(typ.BaseSize()); err != nil {
			return zero, err
		}
		value, err := r.wire.ReadFloat32()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Float, value)

	case tag.IDDouble:
		if err := r.charge(typ.BaseSize()); err != nil {
			return zero, err
		}
		value, err := r.wire.ReadFloat64()
		if err != nil {
			return zero, err
		}
		return r.mapper.Build(tag.Double, value)

	case tag.IDByteArray:
		length, err := r.wire.ReadInt32()
		if err != nil {
			return zero, err
		}
		if length < 0 {
			return zero, errdefs.Formatf("byte array length %d", length)
		}
		if length > maxByteArrayLength {
			return zero, errdefs.ResourceExceededf("byte array length %d exceeds cap", length)
		}
		if err := r.charge(typ.BaseSize() + typ.ElementWidth()*int(length)); err != nil {
			return zero, err
		}
		data := make([]byte, length)
		if err := r.wire.ReadFull(data); err != nil {
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
		if err := r.charge(typ.BaseSize() + typ.ElementWidth()*length); err != nil {
			return zero, err
		}
		data := make([]int32, length)
		for i := range data {
			if data[i], err = r.wire.ReadInt32(); err != nil {
				return zero, err
			}
		}
		return r.mapper.Build(tag.IntArray, data)

	case tag.IDLongArray:
		length, err := r.readArrayLength()
		if err != nil {
			return zero, err
		}
		if err := r.charge(typ.BaseSize() + typ.ElementWidth()*length); err != nil {
			return zero, err
		}
		data := make([]int64, length)
		for i := range data {
			if data[i], err = r.wire.ReadInt64(); err != nil {
				return zero, err
			}
		}
		return r.mapper.Build(tag.LongArray, data)
	}
	return zero, errdefs.UnsupportedTypef("read tag id %d", typ.ID())
}

// readString reads a 2-byte-length UTF-8 string, charging its
// estimated size before consuming the payload.
func (r *Reader[T]) readString() (string, error) {
	length, err := r.wire.ReadInt16()
	if err != nil {
		return "", err
	}
	byteLength := int(uint16(length))
	if err := r.charge(tag.String.BaseSize() + tag.String.ElementWidth()*byteLength); err != nil {
		return "", err
	}
	data := make([]byte, byteLength)
	if err := r.wire.ReadFull(data); err != nil {
		return "", err
	}
	return string(data), nil
}

// readArrayLength reads and validates a 4-byte element count for
// INT_ARRAY/LONG_ARRAY.
func (r *Reader[T]) readArrayLength() (int, error) {
	length, err := r.wire.ReadInt32()
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

	elementID, err := r.wire.ReadByte()
	if err != nil {
		return zero, err
	}
	count, err := r.wire.ReadInt32()
	if err != nil {
		return zero, err
	}
	elementType := tag.GetType(elementID)
	if count < 0 {
		return zero, errdefs.Formatf("list count %d", count)
	}
	// A declared element type with nothing in the list, or elements
	// with no declared type, cannot come from a conformant writer.
	if elementType == tag.End && count != 0 {
		return zero, errdefs.Formatf("list of END with %d elements", count)
	}
	if elementType != tag.End && count == 0 {
		return zero, errdefs.Formatf("empty list declares element type %s", elementType.Name())
	}
	if err := r.charge(tag.List.BaseSize() + tag.List.ElementWidth()*int(count)); err != nil {
		return zero, err
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

	if err := r.charge(tag.Compound.BaseSize()); err != nil {
		return zero, err
	}

	entries := make(map[string]T)
	for {
		id, err := r.wire.ReadByte()
		if err != nil {
			return zero, err
		}
		if id == tag.IDEnd {
			break
		}
		key, err := r.readCompoundKey()
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

// readCompoundKey reads an entry key, charging the estimated cost of
// the map entry that will hold it rather than plain string cost.
func (r *Reader[T]) readCompoundKey() (string, error) {
	length, err := r.wire.ReadInt16()
	if err != nil {
		return "", err
	}
	byteLength := int(uint16(length))
	if err := r.charge(tag.CompoundEntrySize(byteLength)); err != nil {
		return "", err
	}
	data := make([]byte, byteLength)
	if err := r.wire.ReadFull(data); err != nil {
		return "", err
	}
	return string(data), nil
}
