// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package errdefs

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		err      error
		isFormat bool
		isLimit  bool
		isType   bool
	}{
		{Formatf("list count %d", -1), true, false, false},
		{ResourceExceededf("quota exhausted"), false, true, false},
		{UnsupportedTypef("tag id %d", 42), false, false, true},
		{io.ErrUnexpectedEOF, false, false, false},
		{nil, false, false, false},
	}
	for _, test := range tests {
		if got := IsFormat(test.err); got != test.isFormat {
			t.Errorf("IsFormat(%v) = %v", test.err, got)
		}
		if got := IsResourceExceeded(test.err); got != test.isLimit {
			t.Errorf("IsResourceExceeded(%v) = %v", test.err, got)
		}
		if got := IsUnsupportedType(test.err); got != test.isType {
			t.Errorf("IsUnsupportedType(%v) = %v", test.err, got)
		}
	}
}

func TestContextPreserved(t *testing.T) {
	err := Formatf("list count %d", -1)
	if !strings.Contains(err.Error(), "list count -1") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestCategorySurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("compound entry %q: %w", "key", ResourceExceededf("quota exhausted"))
	if !IsResourceExceeded(err) {
		t.Error("category lost through wrapping")
	}
	if !errors.Is(err, ErrResourceExceeded) {
		t.Error("errors.Is lost through wrapping")
	}
}
