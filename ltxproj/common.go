// Package ltxproj implements the LTX Projection (C5): the
// (import, export) pair between every domain entity and its textual
// LTX section representation, per SPEC_FULL.md §4.5. Composition
// mirrors the binary DomainCodec: base mixins project into the same
// section first, then each level adds its own fields, namespaced with
// a disambiguating prefix so multiple mixins can share one section.
package ltxproj

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"xrf/ltx"
	"xrf/xrbyte"
	"xrf/xrerr"
)

// typeField is the meta-type tag every exported section carries, and
// every importer checks before reading further (spec §4.5 "Meta-type
// tag").
const typeField = "$type"

// nilLiteral is the textual encoding of an absent optional value.
const nilLiteral = "nil"

// b64Suffix marks a field as base64-encoded rather than raw text, so
// the importer knows which decoding to apply without guessing (spec
// §4.5 leaves the raw/base64 discriminant unspecified beyond
// "printable"; a same-named key with this suffix is this toolkit's
// resolution, analogous to how the binary codec resolves its own
// underspecified scenario fields).
const b64Suffix = "_b64"

func isPrintable(s string) bool {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			return false
		}
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// setString exports s under key, raw if printable, base64-encoded
// under key+b64Suffix otherwise.
func setString(sec *ltx.Section, key, s string) {
	if isPrintable(s) {
		sec.Set(key, s)
		return
	}
	sec.Set(key+b64Suffix, base64.StdEncoding.EncodeToString([]byte(s)))
}

// getString imports a string exported by setString.
func getString(sec *ltx.Section, key string) (string, error) {
	if v, ok := sec.Get(key); ok {
		return v, nil
	}
	if v, ok := sec.Get(key + b64Suffix); ok {
		raw, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return "", xrerr.Wrap(xrerr.EncodingFailed, "ltx field "+key+": invalid base64", err)
		}
		return string(raw), nil
	}
	return "", xrerr.New(xrerr.LtxParse, "missing required field "+key)
}

func setUint(sec *ltx.Section, key string, v uint64) {
	sec.Set(key, strconv.FormatUint(v, 10))
}

func getUint(sec *ltx.Section, key string) (uint64, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return 0, xrerr.New(xrerr.LtxParse, "missing required field "+key)
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, xrerr.Wrap(xrerr.LtxParse, "field "+key+": not an integer", err)
	}
	return v, nil
}

func setFloat(sec *ltx.Section, key string, v float64) {
	sec.Set(key, strconv.FormatFloat(v, 'g', -1, 64))
}

func getFloat(sec *ltx.Section, key string) (float64, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return 0, xrerr.New(xrerr.LtxParse, "missing required field "+key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, xrerr.Wrap(xrerr.LtxParse, "field "+key+": not a float", err)
	}
	return v, nil
}

func setBool(sec *ltx.Section, key string, v bool) {
	if v {
		sec.Set(key, "1")
	} else {
		sec.Set(key, "0")
	}
}

func getBool(sec *ltx.Section, key string) (bool, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return false, xrerr.New(xrerr.LtxParse, "missing required field "+key)
	}
	switch raw {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, xrerr.New(xrerr.LtxParse, "field "+key+": boolean must be 0 or 1, got "+raw)
	}
}

func setVector3(sec *ltx.Section, key string, v xrbyte.Vector3) {
	sec.Set(key, fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z))
}

func getVector3(sec *ltx.Section, key string) (xrbyte.Vector3, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return xrbyte.Vector3{}, xrerr.New(xrerr.LtxParse, "missing required field "+key)
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return xrbyte.Vector3{}, xrerr.New(xrerr.LtxParse, "field "+key+": vector must have 3 components")
	}
	var out [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return xrbyte.Vector3{}, xrerr.Wrap(xrerr.LtxParse, "field "+key+": invalid component", err)
		}
		out[i] = v
	}
	return xrbyte.Vector3{X: float32(out[0]), Y: float32(out[1]), Z: float32(out[2])}, nil
}

// setUintList exports a list of uint16 as a comma-separated tuple, or
// the nil literal when empty.
func setUintList(sec *ltx.Section, key string, vals []uint16) {
	if len(vals) == 0 {
		sec.Set(key, nilLiteral)
		return
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.Itoa(int(v))
	}
	sec.Set(key, strings.Join(parts, ","))
}

func getUintList(sec *ltx.Section, key string) ([]uint16, error) {
	raw, ok := sec.Get(key)
	if !ok {
		return nil, xrerr.New(xrerr.LtxParse, "missing required field "+key)
	}
	if raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]uint16, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil {
			return nil, xrerr.Wrap(xrerr.LtxParse, "field "+key+": invalid list element", err)
		}
		out[i] = uint16(v)
	}
	return out, nil
}

// setOptionalString exports *string, using the nil literal for
// absence.
func setOptionalString(sec *ltx.Section, key string, v *string) {
	if v == nil {
		sec.Set(key, nilLiteral)
		return
	}
	setString(sec, key, *v)
}

func getOptionalString(sec *ltx.Section, key string) (*string, error) {
	raw, ok := sec.Get(key)
	if ok && raw == nilLiteral {
		return nil, nil
	}
	s, err := getString(sec, key)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// setOptionalFloat exports *float32, using the nil literal for
// absence.
func setOptionalFloat(sec *ltx.Section, key string, v *float32) {
	if v == nil {
		sec.Set(key, nilLiteral)
		return
	}
	setFloat(sec, key, float64(*v))
}

func getOptionalFloat(sec *ltx.Section, key string) (*float32, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	v, err := getFloat(sec, key)
	if err != nil {
		return nil, err
	}
	f := float32(v)
	return &f, nil
}

// setType stamps the section's meta-type tag.
func setType(sec *ltx.Section, tag string) {
	sec.Set(typeField, tag)
}

// requireType verifies the section's meta-type tag matches want before
// the importer reads any further field (spec §4.5 "The importer
// verifies the tag matches what it expects before reading further").
func requireType(sec *ltx.Section, want string) error {
	got, ok := sec.Get(typeField)
	if !ok {
		return xrerr.New(xrerr.LtxParse, "section missing "+typeField)
	}
	if got != want {
		return xrerr.New(xrerr.LtxParse, "section "+typeField+" mismatch: want "+want+", got "+got)
	}
	return nil
}

func section(doc *ltx.Document, name string) (*ltx.Section, error) {
	sec, ok := doc.Section(name)
	if !ok {
		return nil, xrerr.New(xrerr.LtxParse, "missing section "+name)
	}
	return sec, nil
}
