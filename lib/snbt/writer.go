// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package snbt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/mapper"
	"github.com/tagforge/nbt/lib/tag"
)

// Write renders a value as SNBT text, the syntactic inverse of
// Parse. Compound entry order follows map iteration and is therefore
// unspecified; parse-then-write round trips are structurally, not
// textually, stable.
func Write[T any](m mapper.Mapper[T], value T) (string, error) {
	var builder strings.Builder
	if err := writeValue(&builder, m, value); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// WriteNode renders a canonical tree as SNBT text.
func WriteNode(node tag.Node) (string, error) {
	return Write[tag.Node](mapper.Nodes, node)
}

func writeValue[T any](builder *strings.Builder, m mapper.Mapper[T], value T) error {
	typ := mapper.TypeOf(m, value)
	if !typ.Valid() || typ == tag.End {
		return errdefs.UnsupportedTypef("render %s", typ.Name())
	}
	raw, err := mapper.Extract(m, value)
	if err != nil {
		return err
	}

	switch typ.ID() {
	case tag.IDByte:
		b, err := rawByte(raw)
		if err != nil {
			return err
		}
		builder.WriteString(strconv.FormatInt(int64(int8(b)), 10))
		builder.WriteByte('b')
		return nil

	case tag.IDShort:
		v, ok := raw.(int16)
		if !ok {
			return rawMismatch(typ, raw)
		}
		builder.WriteString(strconv.FormatInt(int64(v), 10))
		builder.WriteByte('s')
		return nil

	case tag.IDInt:
		v, ok := raw.(int32)
		if !ok {
			return rawMismatch(typ, raw)
		}
		builder.WriteString(strconv.FormatInt(int64(v), 10))
		return nil

	case tag.IDLong:
		v, ok := raw.(int64)
		if !ok {
			return rawMismatch(typ, raw)
		}
		builder.WriteString(strconv.FormatInt(v, 10))
		builder.WriteByte('l')
		return nil

	case tag.IDFloat:
		v, ok := raw.(float32)
		if !ok {
			return rawMismatch(typ, raw)
		}
		builder.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		builder.WriteByte('f')
		return nil

	case tag.IDDouble:
		v, ok := raw.(float64)
		if !ok {
			return rawMismatch(typ, raw)
		}
		builder.WriteString(formatDouble(v))
		return nil

	case tag.IDByteArray:
		data, err := mapper.AsByteArray(raw)
		if err != nil {
			return err
		}
		builder.WriteString("[B;")
		for i, element := range data {
			if i > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.FormatInt(int64(int8(element)), 10))
			builder.WriteByte('b')
		}
		builder.WriteByte(']')
		return nil

	case tag.IDString:
		v, ok := raw.(string)
		if !ok {
			return rawMismatch(typ, raw)
		}
		writeQuoted(builder, v)
		return nil

	case tag.IDList:
		elements, ok := raw.([]T)
		if !ok {
			return rawMismatch(typ, raw)
		}
		builder.WriteByte('[')
		for i, element := range elements {
			if i > 0 {
				builder.WriteByte(',')
			}
			if err := writeValue(builder, m, element); err != nil {
				return fmt.Errorf("list element %d: %w", i, err)
			}
		}
		builder.WriteByte(']')
		return nil

	case tag.IDCompound:
		entries, ok := raw.(map[string]T)
		if !ok {
			return rawMismatch(typ, raw)
		}
		builder.WriteByte('{')
		first := true
		for key, child := range entries {
			if !first {
				builder.WriteByte(',')
			}
			first = false
			writeKey(builder, key)
			builder.WriteByte(':')
			if err := writeValue(builder, m, child); err != nil {
				return fmt.Errorf("compound entry %q: %w", key, err)
			}
		}
		builder.WriteByte('}')
		return nil

	case tag.IDIntArray:
		data, err := mapper.AsIntArray(raw)
		if err != nil {
			return err
		}
		builder.WriteString("[I;")
		for i, element := range data {
			if i > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.FormatInt(int64(element), 10))
		}
		builder.WriteByte(']')
		return nil

	case tag.IDLongArray:
		data, err := mapper.AsLongArray(raw)
		if err != nil {
			return err
		}
		builder.WriteString("[L;")
		for i, element := range data {
			if i > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.FormatInt(element, 10))
			builder.WriteByte('l')
		}
		builder.WriteByte(']')
		return nil
	}
	return errdefs.UnsupportedTypef("render %s", typ.Name())
}

// formatDouble renders a DOUBLE so that it classifies back as one: a
// rendering with neither a decimal point nor an exponent gets ".0"
// appended, since a bare integer token reads back as INT.
func formatDouble(v float64) string {
	text := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(text, ".eE") && !strings.Contains(text, "Inf") && !strings.Contains(text, "NaN") {
		text += ".0"
	}
	return text
}

// writeKey leaves a key bare when every character is valid in an
// unquoted token; otherwise it is quoted like a string.
func writeKey(builder *strings.Builder, key string) {
	if key != "" && isBareKey(key) {
		builder.WriteString(key)
		return
	}
	writeQuoted(builder, key)
}

func isBareKey(key string) bool {
	for i := 0; i < len(key); i++ {
		if !tokenChar(key[i]) {
			return false
		}
	}
	return true
}

// writeQuoted renders a string double-quoted with embedded '"'
// escaped.
func writeQuoted(builder *strings.Builder, value string) {
	builder.WriteByte('"')
	for i := 0; i < len(value); i++ {
		if value[i] == '"' {
			builder.WriteByte('\\')
		}
		builder.WriteByte(value[i])
	}
	builder.WriteByte('"')
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
	return fmt.Errorf("render %s: unexpected raw value %T", typ.Name(), raw)
}
