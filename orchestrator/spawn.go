package orchestrator

import (
	"xrf/xrbyte"
	"xrf/xrchunk"
	"xrf/xrdb/graph"
	"xrf/xrdb/patrol"
	"xrf/xrerr"
)

// Spawn chunk ids, per spec §4.6 "five chunks at ids 0..4 (header,
// alife-spawns, artefact-spawns, patrols, graphs)".
const (
	ChunkSpawnHeader    = 0
	ChunkAlifeSpawns    = 1
	ChunkArtefactSpawns = 2
	ChunkPatrols        = 3
	ChunkGraphs         = 4
)

// Sub-chunk ids nested inside ChunkPatrols, mirroring patrol.File's
// own meta/data split (spec §4.2 "Patrol codec: two nested chunks").
const (
	patrolsMetaChunkID = 0
	patrolsDataChunkID = 1
)

// SpawnVersion is the spawn header's magic version, asserted on read
// and emitted on write. The original engine's header carries further
// bookkeeping fields (guid, script version) outside what this toolkit
// cross-validates; ObjectCount/LevelCount are the two fields spec §4.6
// explicitly requires to match content, so those are what is modeled.
const SpawnVersion = 1

// SpawnHeader precedes a SpawnFile's object and graph tables.
type SpawnHeader struct {
	Version     uint16
	ObjectCount uint32
	LevelCount  uint32
}

func readSpawnHeader(r *xrbyte.Reader) (SpawnHeader, error) {
	var h SpawnHeader
	var err error
	if h.Version, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.ObjectCount, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.LevelCount, err = r.ReadU32(); err != nil {
		return h, err
	}
	return h, nil
}

func (h SpawnHeader) write(w *xrbyte.Writer) {
	w.WriteU16(h.Version)
	w.WriteU32(h.ObjectCount)
	w.WriteU32(h.LevelCount)
}

// SpawnFile is the fully decoded top-level ALife spawn container.
type SpawnFile struct {
	Header         SpawnHeader
	AlifeSpawns    []ObjectRecord
	ArtefactSpawns []ObjectRecord
	Patrols        []patrol.Patrol
	Graph          graph.Graph
}

func readPatrolsChunk(payload []byte) ([]patrol.Patrol, error) {
	children, err := xrchunk.ReadChildren(payload, nil)
	if err != nil {
		return nil, err
	}
	metaChunk, err := xrchunk.FindRequired(children, patrolsMetaChunkID)
	if err != nil {
		return nil, err
	}
	count, err := patrol.ReadMeta(xrbyte.NewReader(metaChunk.Payload))
	if err != nil {
		return nil, err
	}
	dataChunk, err := xrchunk.FindRequired(children, patrolsDataChunkID)
	if err != nil {
		return nil, err
	}
	patrols, err := patrol.ReadData(dataChunk.Payload)
	if err != nil {
		return nil, err
	}
	if uint32(len(patrols)) != count {
		return nil, xrerr.New(xrerr.Truncation, "spawn file: patrols meta count does not match data chunk length")
	}
	return patrols, nil
}

func writePatrolsChunk(patrols []patrol.Patrol) ([]byte, error) {
	w := xrchunk.NewWriter()

	mw := xrbyte.NewWriter()
	patrol.WriteMeta(mw, uint32(len(patrols)))
	w.WriteChunk(patrolsMetaChunkID, mw.Bytes())

	data, err := patrol.WriteData(patrols)
	if err != nil {
		return nil, err
	}
	w.WriteChunk(patrolsDataChunkID, data)

	return w.Bytes(), nil
}

// ReadSpawnFile decodes a complete SpawnFile from its top-level chunk
// stream.
func ReadSpawnFile(data []byte) (*SpawnFile, error) {
	chunks, err := xrchunk.ReadChildren(data, nil)
	if err != nil {
		return nil, err
	}

	headerChunk, err := xrchunk.FindRequired(chunks, ChunkSpawnHeader)
	if err != nil {
		return nil, err
	}
	header, err := readSpawnHeader(xrbyte.NewReader(headerChunk.Payload))
	if err != nil {
		return nil, err
	}
	if header.Version != SpawnVersion {
		return nil, xrerr.Magicf("spawn file version: want %d, got %d", SpawnVersion, header.Version)
	}

	alifeChunk, err := xrchunk.FindRequired(chunks, ChunkAlifeSpawns)
	if err != nil {
		return nil, err
	}
	alifeSpawns, err := ReadAlifeObjectList(alifeChunk.Payload)
	if err != nil {
		return nil, err
	}

	var artefactSpawns []ObjectRecord
	if c, ok := xrchunk.FindOptional(chunks, ChunkArtefactSpawns); ok {
		if artefactSpawns, err = ReadAlifeObjectList(c.Payload); err != nil {
			return nil, err
		}
	}

	var patrols []patrol.Patrol
	if c, ok := xrchunk.FindOptional(chunks, ChunkPatrols); ok {
		if patrols, err = readPatrolsChunk(c.Payload); err != nil {
			return nil, err
		}
	}

	graphChunk, err := xrchunk.FindRequired(chunks, ChunkGraphs)
	if err != nil {
		return nil, err
	}
	g, err := graph.Read(xrbyte.NewReader(graphChunk.Payload))
	if err != nil {
		return nil, err
	}

	if uint32(len(alifeSpawns)) != header.ObjectCount {
		return nil, xrerr.New(xrerr.Truncation, "spawn file: header object_count does not match alife-spawns length")
	}
	if uint32(len(g.Levels)) != header.LevelCount {
		return nil, xrerr.New(xrerr.Truncation, "spawn file: header level_count does not match graph levels length")
	}

	return &SpawnFile{
		Header:         header,
		AlifeSpawns:    alifeSpawns,
		ArtefactSpawns: artefactSpawns,
		Patrols:        patrols,
		Graph:          g,
	}, nil
}

// Write encodes a SpawnFile, cross-validating header counts against
// content counts before flushing chunks in ascending id order, per
// spec §4.6 "It cross-validates header counts against the content
// counts... before flushing."
func (f *SpawnFile) Write() ([]byte, error) {
	header := SpawnHeader{
		Version:     SpawnVersion,
		ObjectCount: uint32(len(f.AlifeSpawns)),
		LevelCount:  uint32(len(f.Graph.Levels)),
	}

	w := xrchunk.NewWriter()

	hw := xrbyte.NewWriter()
	header.write(hw)
	w.WriteChunk(ChunkSpawnHeader, hw.Bytes())

	alifePayload, err := WriteAlifeObjectList(f.AlifeSpawns)
	if err != nil {
		return nil, err
	}
	w.WriteChunk(ChunkAlifeSpawns, alifePayload)

	artefactPayload, err := WriteAlifeObjectList(f.ArtefactSpawns)
	if err != nil {
		return nil, err
	}
	w.WriteChunk(ChunkArtefactSpawns, artefactPayload)

	patrolsPayload, err := writePatrolsChunk(f.Patrols)
	if err != nil {
		return nil, err
	}
	w.WriteChunk(ChunkPatrols, patrolsPayload)

	gw := xrbyte.NewWriter()
	if err := f.Graph.Write(gw); err != nil {
		return nil, err
	}
	w.WriteChunk(ChunkGraphs, gw.Bytes())

	return w.Bytes(), nil
}
