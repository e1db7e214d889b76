// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package errdefs defines the error taxonomy shared by every codec in
// this module. Callers branch on the category with errors.Is (or the
// Is* helpers); the codecs attach context by wrapping these sentinels
// with fmt.Errorf and %w.
//
// Underlying I/O errors are NOT translated into these categories:
// they propagate from the delegate stream essentially verbatim so the
// caller can still reach os/net error details.
package errdefs

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat indicates malformed wire bytes or SNBT syntax: bad
	// list or compound structure, an unterminated quoted string,
	// missing punctuation, a varint with no terminating byte. Never
	// transient; the operation aborts immediately and the underlying
	// stream position is indeterminate.
	ErrFormat = errors.New("malformed data")

	// ErrResourceExceeded indicates the read quota or the nesting
	// depth limit was hit. Handled like ErrFormat (fail fast) but
	// reported distinctly: this is the defense against adversarial
	// or oversized input, and diagnostics want to tell the two
	// apart.
	ErrResourceExceeded = errors.New("resource limit exceeded")

	// ErrUnsupportedType indicates a tag type id outside the
	// canonical 0-12 range reached build, size, or write logic. A
	// programmer or data-corruption error, never transient.
	ErrUnsupportedType = errors.New("unsupported tag type")
)

// Formatf wraps ErrFormat with formatted context.
func Formatf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrFormat)...)
}

// ResourceExceededf wraps ErrResourceExceeded with formatted context.
func ResourceExceededf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrResourceExceeded)...)
}

// UnsupportedTypef wraps ErrUnsupportedType with formatted context.
func UnsupportedTypef(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrUnsupportedType)...)
}

// IsFormat reports whether err is in the ErrFormat category.
func IsFormat(err error) bool { return errors.Is(err, ErrFormat) }

// IsResourceExceeded reports whether err is in the
// ErrResourceExceeded category.
func IsResourceExceeded(err error) bool { return errors.Is(err, ErrResourceExceeded) }

// IsUnsupportedType reports whether err is in the ErrUnsupportedType
// category.
func IsUnsupportedType(err error) bool { return errors.Is(err, ErrUnsupportedType) }
