// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/tagforge/nbt/lib/tag"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. The same tree always
// produces identical bytes, so CBOR output is usable as a content
// fingerprint.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR
// with string-keyed maps decoding into map[string]any, the shape
// Simplify produces and FromCBOR expects.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("convert: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// NBT compound keys are always strings. The CBOR default map
		// type for any-typed targets is map[interface{}]interface{};
		// forcing map[string]any keeps decoded values compatible
		// with the simplified tree shape.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("convert: CBOR decoder initialization failed: " + err.Error())
	}
}

// ToCBOR renders the simplified view of a tree as deterministic
// CBOR.
func ToCBOR(node tag.Node) ([]byte, error) {
	simplified, err := Simplify(node)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(simplified)
}

// CBORDiagnostic returns the CBOR diagnostic notation (RFC 8949 §8)
// for data produced by ToCBOR, a readable form for debugging
// interchange problems.
func CBORDiagnostic(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DecodeCBOR decodes CBOR data into the simplified value shape
// (map[string]any for maps).
func DecodeCBOR(data []byte) (any, error) {
	var value any
	if err := decMode.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}
