// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package buffer

import (
	"fmt"
	"math"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/mapper"
	"github.com/tagforge/nbt/lib/tag"
	"github.com/tagforge/nbt/lib/wire"
)

// Writer encodes values of the representation type T into a
// wire.Buffer. Call the buffer's Flip afterwards to read the encoded
// bytes back through a Reader on the same buffer.
type Writer[T any] struct {
	buffer  *wire.Buffer
	mapper  mapper.Mapper[T]
	network bool
}

// NewWriter returns a little-endian Writer into b.
func NewWriter[T any](b *wire.Buffer, m mapper.Mapper[T]) *Writer[T] {
	return &Writer[T]{buffer: b, mapper: m}
}

// NewNetworkWriter returns a Writer into b using the varint network
// encodings.
func NewNetworkWriter[T any](b *wire.Buffer, m mapper.Mapper[T]) *Writer[T] {
	return &Writer[T]{buffer: b, mapper: m, network: true}
}

// WriteNamed writes the named root layout: type id, name, value.
func (w *Writer[T]) WriteNamed(name string, value T) error {
	typ := mapper.TypeOf(w.mapper, value)
	if err := w.buffer.WriteByte(typ.ID()); err != nil {
		return err
	}
	if typ == tag.End {
		return nil
	}
	if err := w.writeString(name); err != nil {
		return fmt.Errorf("root name: %w", err)
	}
	return w.writeValue(typ, value)
}

// WriteValue writes the bare value layout: type id, then the value.
func (w *Writer[T]) WriteValue(value T) error {
	typ := mapper.TypeOf(w.mapper, value)
	if err := w.buffer.WriteByte(typ.ID()); err != nil {
		return err
	}
	if typ == tag.End {
		return nil
	}
	return w.writeValue(typ, value)
}

func (w *Writer[T]) writeInt(value int32) error {
	if !w.network {
		return w.buffer.WriteInt32(value)
	}
	return wire.WriteUvarint32(w.buffer, wire.ZigZag32(value))
}

func (w *Writer[T]) writeLong(value int64) error {
	if !w.network {
		return w.buffer.WriteInt64(value)
	}
	return wire.WriteUvarint64(w.buffer, wire.ZigZag64(value))
}

func (w *Writer[T]) writeString(value string) error {
	if w.network {
		if err := wire.WriteUvarint32(w.buffer, uint32(len(value))); err != nil {
			return err
		}
		_, err := w.buffer.Write([]byte(value))
		return err
	}
	if len(value) > math.MaxUint16 {
		return errdefs.Formatf("string length %d exceeds 2-byte length field", len(value))
	}
	if err := w.buffer.WriteInt16(int16(uint16(len(value)))); err != nil {
		return err
	}
	_, err := w.buffer.Write([]byte(value))
	return err
}

func (w *Writer[T]) writeValue(typ tag.Type, value T) error {
	if !typ.Valid() {
		return errdefs.UnsupportedTypef("write %s", typ.Name())
	}
	raw, err := mapper.Extract(w.mapper, value)
	if err != nil {
		return err
	}

	switch typ.ID() {
	case tag.IDEnd:
		return nil

	case tag.IDByte:
		b, err := rawByte(raw)
		if err != nil {
			return err
		}
		return w.buffer.WriteByte(b)

	case tag.IDShort:
		v, ok := raw.(int16)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.buffer.WriteInt16(v)

	case tag.IDInt:
		v, ok := raw.(int32)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.writeInt(v)

	case tag.IDLong:
		v, ok := raw.(int64)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.writeLong(v)

	case tag.IDFloat:
		v, ok := raw.(float32)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.buffer.WriteFloat32(v)

	case tag.IDDouble:
		v, ok := raw.(float64)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.buffer.WriteFloat64(v)

	case tag.IDByteArray:
		data, err := mapper.AsByteArray(raw)
		if err != nil {
			return err
		}
		if err := w.writeInt(int32(len(data))); err != nil {
			return err
		}
		_, err = w.buffer.Write(data)
		return err

	case tag.IDString:
		v, ok := raw.(string)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.writeString(v)

	case tag.IDList:
		elements, ok := raw.([]T)
		if !ok {
			return rawMismatch(typ, raw)
		}
		elementType := mapper.ElementType(w.mapper, elements)
		if err := w.buffer.WriteByte(elementType.ID()); err != nil {
			return err
		}
		if err := w.writeInt(int32(len(elements))); err != nil {
			return err
		}
		for i, element := range elements {
			if err := w.writeValue(elementType, element); err != nil {
				return fmt.Errorf("list element %d: %w", i, err)
			}
		}
		return nil

	case tag.IDCompound:
		entries, ok := raw.(map[string]T)
		if !ok {
			return rawMismatch(typ, raw)
		}
		for key, child := range entries {
			childType := mapper.TypeOf(w.mapper, child)
			if err := w.buffer.WriteByte(childType.ID()); err != nil {
				return err
			}
			if err := w.writeString(key); err != nil {
				return err
			}
			if err := w.writeValue(childType, child); err != nil {
				return fmt.Errorf("compound entry %q: %w", key, err)
			}
		}
		return w.buffer.WriteByte(tag.IDEnd)

	case tag.IDIntArray:
		data, err := mapper.AsIntArray(raw)
		if err != nil {
			return err
		}
		if err := w.writeInt(int32(len(data))); err != nil {
			return err
		}
		for _, element := range data {
			if err := w.writeInt(element); err != nil {
				return err
			}
		}
		return nil

	case tag.IDLongArray:
		data, err := mapper.AsLongArray(raw)
		if err != nil {
			return err
		}
		if err := w.writeInt(int32(len(data))); err != nil {
			return err
		}
		for _, element := range data {
			if err := w.writeLong(element); err != nil {
				return err
			}
		}
		return nil
	}
	return errdefs.UnsupportedTypef("write %s", typ.Name())
}

// rawByte accepts the scalar shapes that share the BYTE kind.
func rawByte(raw any) (byte, error) {
	switch v := raw.(type) {
	case int8:
		return byte(v), nil
	case byte:
		return v, nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	}
	return 0, rawMismatch(tag.Byte, raw)
}

func rawMismatch(typ tag.Type, raw any) error {
	return fmt.Errorf("write %s: unexpected raw value %T", typ.Name(), raw)
}
