// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package pretty renders canonical NBT trees as indented, optionally
// colorized SNBT for terminal display. The output is for humans:
// feed it back through the snbt parser only if color is disabled,
// since ANSI sequences are not SNBT.
package pretty

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tagforge/nbt/lib/errdefs"
	"github.com/tagforge/nbt/lib/tag"
)

// Printer renders trees with a fixed style set. The zero value is
// not usable; construct with NewPrinter.
type Printer struct {
	indent string
	color  bool

	keyStyle    lipgloss.Style
	stringStyle lipgloss.Style
	numberStyle lipgloss.Style
	suffixStyle lipgloss.Style
}

// PrinterOption configures a Printer.
type PrinterOption func(*Printer)

// WithIndent sets the per-level indentation string (default two
// spaces).
func WithIndent(indent string) PrinterOption {
	return func(p *Printer) {
		p.indent = indent
	}
}

// WithColor enables or disables ANSI styling (default enabled; the
// caller decides whether the destination is a terminal).
func WithColor(enabled bool) PrinterOption {
	return func(p *Printer) {
		p.color = enabled
	}
}

// NewPrinter returns a Printer with the standard style set: keys in
// cyan, strings in green, numbers in gold with their type suffixes
// dimmed red, punctuation unstyled.
func NewPrinter(options ...PrinterOption) *Printer {
	p := &Printer{
		indent:      "  ",
		color:       true,
		keyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		stringStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		numberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		suffixStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Render returns the pretty form of a tree.
func (p *Printer) Render(node tag.Node) (string, error) {
	var builder strings.Builder
	if err := p.render(&builder, node, 0); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func (p *Printer) styled(style lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return style.Render(text)
}

func (p *Printer) render(builder *strings.Builder, node tag.Node, depth int) error {
	if !node.Type.Valid() || node.Type == tag.End {
		return errdefs.UnsupportedTypef("render %s", node.Type.Name())
	}
	switch node.Type.ID() {
	case tag.IDByte:
		v, _ := node.Value.(int8)
		p.renderNumber(builder, strconv.FormatInt(int64(v), 10), "b")
	case tag.IDShort:
		v, _ := node.Value.(int16)
		p.renderNumber(builder, strconv.FormatInt(int64(v), 10), "s")
	case tag.IDInt:
		v, _ := node.Value.(int32)
		p.renderNumber(builder, strconv.FormatInt(int64(v), 10), "")
	case tag.IDLong:
		v, _ := node.Value.(int64)
		p.renderNumber(builder, strconv.FormatInt(v, 10), "l")
	case tag.IDFloat:
		v, _ := node.Value.(float32)
		p.renderNumber(builder, strconv.FormatFloat(float64(v), 'g', -1, 32), "f")
	case tag.IDDouble:
		v, _ := node.Value.(float64)
		p.renderNumber(builder, strconv.FormatFloat(v, 'g', -1, 64), "d")
	case tag.IDString:
		v, _ := node.Value.(string)
		builder.WriteString(p.styled(p.stringStyle, strconv.Quote(v)))

	case tag.IDByteArray:
		v, _ := node.Value.([]byte)
		builder.WriteString("[B; ")
		for i, element := range v {
			if i > 0 {
				builder.WriteString(", ")
			}
			p.renderNumber(builder, strconv.FormatInt(int64(int8(element)), 10), "b")
		}
		builder.WriteByte(']')
	case tag.IDIntArray:
		v, _ := node.Value.([]int32)
		builder.WriteString("[I; ")
		for i, element := range v {
			if i > 0 {
				builder.WriteString(", ")
			}
			p.renderNumber(builder, strconv.FormatInt(int64(element), 10), "")
		}
		builder.WriteByte(']')
	case tag.IDLongArray:
		v, _ := node.Value.([]int64)
		builder.WriteString("[L; ")
		for i, element := range v {
			if i > 0 {
				builder.WriteString(", ")
			}
			p.renderNumber(builder, strconv.FormatInt(element, 10), "l")
		}
		builder.WriteByte(']')

	case tag.IDList:
		elements, _ := node.Value.([]tag.Node)
		if len(elements) == 0 {
			builder.WriteString("[]")
			return nil
		}
		builder.WriteString("[\n")
		for i, element := range elements {
			builder.WriteString(strings.Repeat(p.indent, depth+1))
			if err := p.render(builder, element, depth+1); err != nil {
				return err
			}
			if i < len(elements)-1 {
				builder.WriteByte(',')
			}
			builder.WriteByte('\n')
		}
		builder.WriteString(strings.Repeat(p.indent, depth))
		builder.WriteByte(']')

	case tag.IDCompound:
		entries, _ := node.Value.(map[string]tag.Node)
		if len(entries) == 0 {
			builder.WriteString("{}")
			return nil
		}
		builder.WriteString("{\n")
		keys := sortedKeys(entries)
		for i, key := range keys {
			builder.WriteString(strings.Repeat(p.indent, depth+1))
			builder.WriteString(p.styled(p.keyStyle, key))
			builder.WriteString(": ")
			if err := p.render(builder, entries[key], depth+1); err != nil {
				return err
			}
			if i < len(keys)-1 {
				builder.WriteByte(',')
			}
			builder.WriteByte('\n')
		}
		builder.WriteString(strings.Repeat(p.indent, depth))
		builder.WriteByte('}')

	default:
		return errdefs.UnsupportedTypef("render %s", node.Type.Name())
	}
	return nil
}

func (p *Printer) renderNumber(builder *strings.Builder, digits, suffix string) {
	builder.WriteString(p.styled(p.numberStyle, digits))
	if suffix != "" {
		builder.WriteString(p.styled(p.suffixStyle, suffix))
	}
}

// sortedKeys returns map keys in lexical order so pretty output is
// stable across runs, unlike the wire codecs which follow map
// iteration order.
func sortedKeys(entries map[string]tag.Node) []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
