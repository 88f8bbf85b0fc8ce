package xrarchive

import (
	"strings"

	"xrf/ltx"
	"xrf/xrerr"
)

// rootMarker is the placeholder prefix the engine stores in
// entry_point for the archive's logical root, stripped before use as a
// filesystem path (spec §4.2 "the value of entry_point under the
// [header] section, with the leading $ROOT$\ stripped").
const rootMarker = `$ROOT$\`

// headerSection and entryPointField name the metadata chunk's
// small INI-like blob contents.
const (
	headerSection   = "header"
	entryPointField = "entry_point"
)

// Metadata is the archive's parsed header chunk.
type Metadata struct {
	EntryPoint string // already had rootMarker stripped
}

// ParseMetadata decodes the metadata chunk's payload (already
// decompressed by the caller) as an LTX document and extracts
// entry_point.
func ParseMetadata(payload []byte) (Metadata, error) {
	doc, err := ltx.Parse(string(payload))
	if err != nil {
		return Metadata{}, err
	}
	sec, ok := doc.Section(headerSection)
	if !ok {
		return Metadata{}, xrerr.New(xrerr.LtxParse, "archive metadata: missing [header] section")
	}
	raw, ok := sec.Get(entryPointField)
	if !ok {
		return Metadata{}, xrerr.New(xrerr.LtxParse, "archive metadata: missing entry_point")
	}
	return Metadata{EntryPoint: strings.TrimPrefix(raw, rootMarker)}, nil
}

// FormatMetadata re-serializes m as the metadata chunk's LTX payload.
func FormatMetadata(m Metadata) []byte {
	text := "[" + headerSection + "]\r\n" + entryPointField + " = " + rootMarker + m.EntryPoint + "\r\n"
	parsed, err := ltx.Parse(text)
	if err != nil {
		// text is built from known-good literals; a parse failure here
		// would be a programming error, not a runtime condition.
		panic(err)
	}
	return []byte(ltx.Format(parsed))
}
