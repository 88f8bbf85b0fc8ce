// Package orchestrator implements the FileOrchestrator (C6): the
// top-level SpawnFile and ParticlesFile containers that stitch the
// domain codecs' chunks into whole files, per SPEC_FULL.md §4.6.
package orchestrator

import (
	"xrf/xrbyte"
	"xrf/xrchunk"
	"xrf/xrdb/alife"
)

// ObjectRecord pairs a decoded ALife object with the generic header
// that precedes its class-specific payload.
type ObjectRecord struct {
	Header alife.ObjectHeader
	Object alife.Object
}

// ReadAlifeObjectList decodes one chunk's payload as a sequence of
// object records, one per child chunk, in stream order (spec §4.6: the
// alife-spawns and artefact-spawns chunks share this layout).
func ReadAlifeObjectList(payload []byte) ([]ObjectRecord, error) {
	children, err := xrchunk.ReadChildren(payload, nil)
	if err != nil {
		return nil, err
	}
	out := make([]ObjectRecord, 0, len(children))
	for _, c := range children {
		r := xrchunk.NewReader(c.Payload)
		hdr, err := alife.ReadObjectHeader(r.Reader)
		if err != nil {
			return nil, err
		}
		obj, err := alife.Decode(hdr.ClassID, r.Reader)
		if err != nil {
			return nil, err
		}
		if err := r.AssertRead("alife object " + hdr.ClassID); err != nil {
			return nil, err
		}
		out = append(out, ObjectRecord{Header: hdr, Object: obj})
	}
	return out, nil
}

// WriteAlifeObjectList encodes a sequence of object records, one per
// child chunk, indexed in order.
func WriteAlifeObjectList(records []ObjectRecord) ([]byte, error) {
	w := xrchunk.NewWriter()
	for i, rec := range records {
		inner := xrbyte.NewWriter()
		if err := rec.Header.Write(inner); err != nil {
			return nil, err
		}
		if err := rec.Object.Write(inner); err != nil {
			return nil, err
		}
		w.WriteChunk(uint32(i), inner.Bytes())
	}
	return w.Bytes(), nil
}
