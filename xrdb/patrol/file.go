package patrol

import (
	"xrf/xrbyte"
	"xrf/xrchunk"
)

// File is the patrols domain-entity container: a patrol count (the
// "meta" chunk) and the patrols themselves (the "data" chunk), per
// SPEC_FULL.md's xrdb/patrol component description. The orchestrator
// wraps MetaChunk/DataChunk payloads in xrchunk framing at the
// top-level SpawnFile; within the data chunk, each patrol is itself a
// child chunk (index-keyed) so a patrol's link-list can correctly read
// "until end of chunk" without consuming its siblings' bytes.
type File struct {
	Patrols []Patrol
}

// ReadMeta decodes the patrol-count meta record.
func ReadMeta(r *xrbyte.Reader) (uint32, error) {
	return r.ReadU32()
}

// WriteMeta encodes the patrol-count meta record.
func WriteMeta(w *xrbyte.Writer, count uint32) {
	w.WriteU32(count)
}

// ReadData decodes the data chunk's payload: one child chunk per
// patrol, in stream order.
func ReadData(payload []byte) ([]Patrol, error) {
	children, err := xrchunk.ReadChildren(payload, nil)
	if err != nil {
		return nil, err
	}
	out := make([]Patrol, 0, len(children))
	for _, c := range children {
		p, err := ReadPatrol(xrbyte.NewReader(c.Payload))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// WriteData encodes the data chunk's payload: each patrol framed as
// its own child chunk, indexed in order.
func WriteData(patrols []Patrol) ([]byte, error) {
	w := xrchunk.NewWriter()
	for i, p := range patrols {
		inner := xrbyte.NewWriter()
		if err := p.Write(inner); err != nil {
			return nil, err
		}
		w.WriteChunk(uint32(i), inner.Bytes())
	}
	return w.Bytes(), nil
}
