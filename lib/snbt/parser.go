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

// Default parse limits, matching the binary stream codec.
const (
	DefaultQuota    int64 = 2 * 1024 * 1024
	DefaultMaxDepth       = 512
)

// Option configures a parse.
type Option func(*config)

type config struct {
	quota     int64
	unlimited bool
	maxDepth  int
}

// WithQuota sets the parse quota in estimated bytes.
func WithQuota(quota int64) Option {
	return func(c *config) {
		c.quota = quota
		c.unlimited = false
	}
}

// WithUnlimitedQuota disables quota accounting.
func WithUnlimitedQuota() Option {
	return func(c *config) {
		c.unlimited = true
	}
}

// WithMaxDepth sets the maximum compound/list nesting depth.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// Parse reads one SNBT value from input, materialized through m.
// Trailing non-whitespace after the value is a format violation.
func Parse[T any](input string, m mapper.Mapper[T], options ...Option) (T, error) {
	configuration := config{quota: DefaultQuota, maxDepth: DefaultMaxDepth}
	for _, option := range options {
		option(&configuration)
	}
	p := &parser[T]{
		input:          input,
		mapper:         m,
		remainingQuota: configuration.quota,
		unlimited:      configuration.unlimited,
		remainingDepth: configuration.maxDepth,
	}
	var zero T
	value, err := p.parseValue()
	if err != nil {
		return zero, err
	}
	p.skipWhitespace()
	if p.pos != len(p.input) {
		return zero, errdefs.Formatf("trailing data at offset %d", p.pos)
	}
	return value, nil
}

// ParseNode parses into the canonical tree representation.
func ParseNode(input string, options ...Option) (tag.Node, error) {
	return Parse[tag.Node](input, mapper.Nodes, options...)
}

// parser is a recursive-descent parser with one token of lookahead
// implemented by saving and restoring the input position.
type parser[T any] struct {
	input          string
	pos            int
	mapper         mapper.Mapper[T]
	remainingQuota int64
	unlimited      bool
	remainingDepth int
}

func (p *parser[T]) charge(estimated int) error {
	if p.unlimited {
		return nil
	}
	p.remainingQuota -= int64(estimated)
	if p.remainingQuota < 0 {
		return errdefs.ResourceExceededf("parse quota exhausted")
	}
	return nil
}

func (p *parser[T]) enter() error {
	p.remainingDepth--
	if p.remainingDepth < 0 {
		return errdefs.ResourceExceededf("nesting depth limit exceeded")
	}
	return nil
}

func (p *parser[T]) leave() {
	p.remainingDepth++
}

func (p *parser[T]) skipWhitespace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\r', '\n':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the next significant byte without consuming it, or 0
// at end of input.
func (p *parser[T]) peek() byte {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser[T]) expect(c byte) error {
	if p.peek() != c {
		return errdefs.Formatf("expected %q at offset %d", string(c), p.pos)
	}
	p.pos++
	return nil
}

func (p *parser[T]) parseValue() (T, error) {
	var zero T
	switch c := p.peek(); {
	case c == '{':
		return p.parseCompound()
	case c == '[':
		return p.parseArrayOrList()
	case c == '"' || c == '\'':
		text, err := p.parseQuoted()
		if err != nil {
			return zero, err
		}
		if err := p.charge(tag.String.BaseSize() + tag.String.ElementWidth()*len(text)); err != nil {
			return zero, err
		}
		return p.mapper.Build(tag.String, text)
	case c == 0:
		return zero, errdefs.Formatf("unexpected end of input")
	default:
		token, err := p.parseToken()
		if err != nil {
			return zero, err
		}
		typ, raw := classify(token)
		if err := p.charge(tag.Size(raw)); err != nil {
			return zero, err
		}
		return p.mapper.Build(typ, raw)
	}
}

func (p *parser[T]) parseCompound() (T, error) {
	var zero T
	if err := p.enter(); err != nil {
		return zero, err
	}
	defer p.leave()

	if err := p.expect('{'); err != nil {
		return zero, err
	}
	if err := p.charge(tag.Compound.BaseSize()); err != nil {
		return zero, err
	}

	entries := make(map[string]T)
	if p.peek() == '}' {
		p.pos++
		return p.mapper.Build(tag.Compound, entries)
	}
	for {
		key, err := p.parseKey()
		if err != nil {
			return zero, err
		}
		if err := p.charge(tag.CompoundEntrySize(len(key))); err != nil {
			return zero, err
		}
		if err := p.expect(':'); err != nil {
			return zero, fmt.Errorf("after key %q: %w", key, err)
		}
		value, err := p.parseValue()
		if err != nil {
			return zero, fmt.Errorf("entry %q: %w", key, err)
		}
		entries[key] = value

		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return p.mapper.Build(tag.Compound, entries)
		default:
			return zero, errdefs.Formatf("expected ',' or '}' at offset %d", p.pos)
		}
	}
}

// parseKey reads a compound key: a quoted string or a bare token,
// with no numeric or boolean classification applied.
func (p *parser[T]) parseKey() (string, error) {
	if c := p.peek(); c == '"' || c == '\'' {
		return p.parseQuoted()
	}
	key, err := p.parseToken()
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", errdefs.Formatf("empty key at offset %d", p.pos)
	}
	return key, nil
}

func (p *parser[T]) parseArrayOrList() (T, error) {
	var zero T
	if err := p.enter(); err != nil {
		return zero, err
	}
	defer p.leave()

	if err := p.expect('['); err != nil {
		return zero, err
	}

	// One token of lookahead: a single letter followed by ';' is an
	// array prefix, anything else rewinds and parses as a list.
	mark := p.pos
	if c := p.peek(); c != 0 {
		prefix := p.input[p.pos]
		p.pos++
		if p.peek() == ';' {
			p.pos++
			switch prefix {
			case 'B', 'b':
				return p.parseArray(tag.ByteArray, tag.Byte)
			case 'I', 'i':
				return p.parseArray(tag.IntArray, tag.Int)
			case 'L', 'l':
				return p.parseArray(tag.LongArray, tag.Long)
			default:
				return zero, errdefs.Formatf("unknown array prefix %q at offset %d", string(prefix), mark)
			}
		}
		p.pos = mark
	}

	var elements []T
	if p.peek() == ']' {
		p.pos++
		if err := p.charge(tag.List.BaseSize()); err != nil {
			return zero, err
		}
		return p.mapper.Build(tag.List, elements)
	}
	for {
		element, err := p.parseValue()
		if err != nil {
			return zero, fmt.Errorf("list element %d: %w", len(elements), err)
		}
		if err := p.charge(tag.List.ElementWidth()); err != nil {
			return zero, err
		}
		elements = append(elements, element)

		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			if err := p.charge(tag.List.BaseSize()); err != nil {
				return zero, err
			}
			return p.mapper.Build(tag.List, elements)
		default:
			return zero, errdefs.Formatf("expected ',' or ']' at offset %d", p.pos)
		}
	}
}

// parseArray reads the elements of a typed array literal. Each
// element token must classify to the array's element kind; the boxed
// values are handed to Build, which normalizes them into the
// primitive array shape.
func (p *parser[T]) parseArray(arrayType, elementType tag.Type) (T, error) {
	var zero T
	elements := []any{}
	if p.peek() == ']' {
		p.pos++
		if err := p.charge(arrayType.BaseSize()); err != nil {
			return zero, err
		}
		return p.mapper.Build(arrayType, elements)
	}
	for {
		token, err := p.parseToken()
		if err != nil {
			return zero, err
		}
		typ, raw := classify(token)
		if typ != elementType {
			return zero, errdefs.Formatf("%s element %q at offset %d", arrayType.Name(), token, p.pos)
		}
		if err := p.charge(arrayType.ElementWidth()); err != nil {
			return zero, err
		}
		elements = append(elements, raw)

		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			if err := p.charge(arrayType.BaseSize()); err != nil {
				return zero, err
			}
			return p.mapper.Build(arrayType, elements)
		default:
			return zero, errdefs.Formatf("expected ',' or ']' at offset %d", p.pos)
		}
	}
}

// parseQuoted reads a string delimited by '"' or '\''. A backslash
// escapes the active delimiter only; before any other character it is
// kept literally.
func (p *parser[T]) parseQuoted() (string, error) {
	delimiter := p.peek()
	p.pos++
	var builder strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.input) && p.input[p.pos+1] == delimiter:
			builder.WriteByte(delimiter)
			p.pos += 2
		case c == delimiter:
			p.pos++
			return builder.String(), nil
		default:
			builder.WriteByte(c)
			p.pos++
		}
	}
	return "", errdefs.Formatf("unterminated string")
}

// tokenChar reports whether c can appear in an unquoted token.
func tokenChar(c byte) bool {
	switch {
	case c >= '0' && c <= '9',
		c >= 'a' && c <= 'z',
		c >= 'A' && c <= 'Z',
		c == '_', c == '-', c == '.', c == '+':
		return true
	}
	return false
}

// parseToken scans one unquoted token.
func (p *parser[T]) parseToken() (string, error) {
	p.skipWhitespace()
	start := p.pos
	for p.pos < len(p.input) && tokenChar(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", errdefs.Formatf("expected value at offset %d", p.pos)
	}
	return p.input[start:p.pos], nil
}

// classify applies the unquoted-token rules: a recognized suffix with
// a numeric prefix wins; then bare integer (INT), bare decimal
// (DOUBLE), the boolean literals (BYTE), and finally the literal
// token as a STRING.
func classify(token string) (tag.Type, any) {
	if len(token) >= 2 {
		prefix := token[:len(token)-1]
		switch token[len(token)-1] {
		case 'b', 'B':
			if v, err := strconv.ParseInt(prefix, 10, 8); err == nil {
				return tag.Byte, int8(v)
			}
		case 's', 'S':
			if v, err := strconv.ParseInt(prefix, 10, 16); err == nil {
				return tag.Short, int16(v)
			}
		case 'l', 'L':
			if v, err := strconv.ParseInt(prefix, 10, 64); err == nil {
				return tag.Long, v
			}
		case 'f', 'F':
			if v, err := strconv.ParseFloat(prefix, 32); err == nil {
				return tag.Float, float32(v)
			}
		case 'd', 'D':
			if v, err := strconv.ParseFloat(prefix, 64); err == nil {
				return tag.Double, v
			}
		}
	}
	if v, err := strconv.ParseInt(token, 10, 32); err == nil {
		return tag.Int, int32(v)
	}
	if v, err := strconv.ParseFloat(token, 64); err == nil {
		return tag.Double, v
	}
	switch token {
	case "true":
		return tag.Byte, int8(1)
	case "false":
		return tag.Byte, int8(0)
	}
	return tag.String, token
}
