// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package stream

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/mapper"
	"github.com/tagforge/nbt/lib/tag"
	"github.com/tagforge/nbt/lib/wire"
)

// Writer encodes values of the representation type T as binary NBT.
// Writes are unguarded: no quota or depth accounting, since output
// size is bounded by the caller's own data.
type Writer[T any] struct {
	wire   *wire.Writer
	mapper mapper.Mapper[T]
}

// NewWriter returns a Writer over delegate using m to take values
// apart.
func NewWriter[T any](delegate io.Writer, m mapper.Mapper[T]) *Writer[T] {
	return &Writer[T]{wire: wire.NewWriter(delegate), mapper: m}
}

// Close releases the underlying stream if it is closeable.
func (w *Writer[T]) Close() error {
	return w.wire.Close()
}

// WriteNamed writes the named root layout: type id, name, value.
func (w *Writer[T]) WriteNamed(name string, value T) error {
	typ := mapper.TypeOf(w.mapper, value)
	if err := w.wire.WriteByte(typ.ID()); err != nil {
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
	if err := w.wire.WriteByte(typ.ID()); err != nil {
		return err
	}
	if typ == tag.End {
		return nil
	}
	return w.writeValue(typ, value)
}

// WriteFile writes the bedrock file layout: a header of little-endian
// int32 version and int32 payload size, then the bare value layout.
// The payload is staged in memory to measure the size field.
func (w *Writer[T]) WriteFile(version int32, value T) error {
	var staged bytes.Buffer
	stagedWriter := NewWriter(&staged, w.mapper)
	if err := stagedWriter.WriteValue(value); err != nil {
		return err
	}
	if staged.Len() > math.MaxInt32 {
		return fmt.Errorf("file payload is %d bytes, exceeds int32 size field", staged.Len())
	}
	if err := w.wire.WriteInt32(version); err != nil {
		return err
	}
	if err := w.wire.WriteInt32(int32(staged.Len())); err != nil {
		return err
	}
	_, err := w.wire.Write(staged.Bytes())
	return err
}

// writeValue dispatches on the declared type; the id byte has already
// been written by the caller.
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
		return w.wire.WriteByte(b)

	case tag.IDShort:
		v, ok := raw.(int16)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.wire.WriteInt16(v)

	case tag.IDInt:
		v, ok := raw.(int32)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.wire.WriteInt32(v)

	case tag.IDLong:
		v, ok := raw.(int64)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.wire.WriteInt64(v)

	case tag.IDFloat:
		v, ok := raw.(float32)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.wire.WriteFloat32(v)

	case tag.IDDouble:
		v, ok := raw.(float64)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.wire.WriteFloat64(v)

	case tag.IDByteArray:
		data, err := mapper.AsByteArray(raw)
		if err != nil {
			return err
		}
		if err := w.wire.WriteInt32(int32(len(data))); err != nil {
			return err
		}
		_, err = w.wire.Write(data)
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
		return w.writeList(elements)

	case tag.IDCompound:
		entries, ok := raw.(map[string]T)
		if !ok {
			return rawMismatch(typ, raw)
		}
		return w.writeCompound(entries)

	case tag.IDIntArray:
		data, err := mapper.AsIntArray(raw)
		if err != nil {
			return err
		}
		if err := w.wire.WriteInt32(int32(len(data))); err != nil {
			return err
		}
		for _, element := range data {
			if err := w.wire.WriteInt32(element); err != nil {
				return err
			}
		}
		return nil

	case tag.IDLongArray:
		data, err := mapper.AsLongArray(raw)
		if err != nil {
			return err
		}
		if err := w.wire.WriteInt32(int32(len(data))); err != nil {
			return err
		}
		for _, element := range data {
			if err := w.wire.WriteInt64(element); err != nil {
				return err
			}
		}
		return nil
	}
	return errdefs.UnsupportedTypef("write %s", typ.Name())
}

// writeList writes the declared element id (inferred from the first
// element, END when empty), the count, and the element values. Later
// elements are written under the inferred type without re-checking.
func (w *Writer[T]) writeList(elements []T) error {
	elementType := mapper.ElementType(w.mapper, elements)
	if err := w.wire.WriteByte(elementType.ID()); err != nil {
		return err
	}
	if err := w.wire.WriteInt32(int32(len(elements))); err != nil {
		return err
	}
	for i, element := range elements {
		if err := w.writeValue(elementType, element); err != nil {
			return fmt.Errorf("list element %d: %w", i, err)
		}
	}
	return nil
}

func (w *Writer[T]) writeCompound(entries map[string]T) error {
	for key, value := range entries {
		typ := mapper.TypeOf(w.mapper, value)
		if err := w.wire.WriteByte(typ.ID()); err != nil {
			return err
		}
		if err := w.writeString(key); err != nil {
			return err
		}
		if err := w.writeValue(typ, value); err != nil {
			return fmt.Errorf("compound entry %q: %w", key, err)
		}
	}
	return w.wire.WriteByte(tag.IDEnd)
}

// writeString writes a 2-byte-length UTF-8 string.
func (w *Writer[T]) writeString(value string) error {
	if len(value) > math.MaxUint16 {
		return errdefs.Formatf("string length %d exceeds 2-byte length field", len(value))
	}
	if err := w.wire.WriteInt16(int16(uint16(len(value)))); err != nil {
		return err
	}
	_, err := w.wire.Write([]byte(value))
	return err
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
