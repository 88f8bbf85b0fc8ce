package orchestrator

import (
	"xrf/xrbyte"
	"xrf/xrchunk"
	"xrf/xrdb/particle"
	"xrf/xrerr"
)

// ChunkParticlesHeader is the ParticlesFile's header chunk id, per
// spec §4.6 "header chunk (id 1, version must equal 1)".
const ChunkParticlesHeader = 1

// ParticlesVersion is the particles file header's magic version.
const ParticlesVersion = 1

// ParticlesFile is the fully decoded top-level particle-effect
// container: a version header followed by a stream of effect records,
// each its own sibling chunk keyed by position.
type ParticlesFile struct {
	Effects []particle.Effect
}

// ReadParticlesFile decodes a complete ParticlesFile from its
// top-level chunk stream.
func ReadParticlesFile(data []byte) (*ParticlesFile, error) {
	chunks, err := xrchunk.ReadChildren(data, nil)
	if err != nil {
		return nil, err
	}

	headerChunk, err := xrchunk.FindRequired(chunks, ChunkParticlesHeader)
	if err != nil {
		return nil, err
	}
	version, err := xrbyte.NewReader(headerChunk.Payload).ReadU16()
	if err != nil {
		return nil, err
	}
	if version != ParticlesVersion {
		return nil, xrerr.Magicf("particles file version: want %d, got %d", ParticlesVersion, version)
	}

	effects := make([]particle.Effect, 0, len(chunks)-1)
	for _, c := range chunks {
		if c.Header.LogicalID == ChunkParticlesHeader {
			continue
		}
		e, err := particle.ReadEffect(xrbyte.NewReader(c.Payload))
		if err != nil {
			return nil, err
		}
		effects = append(effects, e)
	}

	return &ParticlesFile{Effects: effects}, nil
}

// Write encodes a ParticlesFile: the header chunk first, then one
// sibling chunk per effect, indexed starting at ChunkParticlesHeader+1
// so ids stay monotonically ascending in stream order.
func (f *ParticlesFile) Write() ([]byte, error) {
	w := xrchunk.NewWriter()

	hw := xrbyte.NewWriter()
	hw.WriteU16(ParticlesVersion)
	w.WriteChunk(ChunkParticlesHeader, hw.Bytes())

	for i, e := range f.Effects {
		ew := xrbyte.NewWriter()
		if err := e.Write(ew); err != nil {
			return nil, err
		}
		w.WriteChunk(uint32(ChunkParticlesHeader+1+i), ew.Bytes())
	}

	return w.Bytes(), nil
}
