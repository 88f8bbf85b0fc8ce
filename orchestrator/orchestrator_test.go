package orchestrator

import (
	"bytes"
	"testing"

	"github.com/google/uuid"

	"xrf/xrbyte"
	"xrf/xrdb/alife"
	"xrf/xrdb/graph"
	"xrf/xrdb/particle"
	"xrf/xrdb/patrol"
)

func restrictorRecord(id uint16, name string) ObjectRecord {
	return ObjectRecord{
		Header: alife.ObjectHeader{ID: id, Section: "sect", ClassID: "se_space_restrictor", Name: name},
		Object: alife.AlifeSpaceRestrictor{Base: alife.SpaceRestrictorBase{RestrictorType: 1}},
	}
}

func TestSpawnFileRoundTrip(t *testing.T) {
	f := &SpawnFile{
		AlifeSpawns:    []ObjectRecord{restrictorRecord(1, "alpha"), restrictorRecord(2, "bravo")},
		ArtefactSpawns: []ObjectRecord{restrictorRecord(3, "artefact")},
		Patrols: []patrol.Patrol{
			{Name: "patrol_a", Points: []patrol.Point{{Name: "pt0"}}},
		},
		Graph: graph.Graph{
			Header: graph.Header{GUID: uuid.New()},
			Levels: []graph.LevelDescriptor{{Name: "l01_escape", GUID: uuid.New()}},
		},
	}

	data, err := f.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	decoded, err := ReadSpawnFile(data)
	if err != nil {
		t.Fatalf("ReadSpawnFile: %v", err)
	}
	if len(decoded.AlifeSpawns) != 2 {
		t.Fatalf("got %d alife spawns, want 2", len(decoded.AlifeSpawns))
	}
	if decoded.AlifeSpawns[0].Header.Name != "alpha" {
		t.Fatalf("first spawn name = %q", decoded.AlifeSpawns[0].Header.Name)
	}
	if len(decoded.ArtefactSpawns) != 1 {
		t.Fatalf("got %d artefact spawns, want 1", len(decoded.ArtefactSpawns))
	}
	if len(decoded.Patrols) != 1 || decoded.Patrols[0].Name != "patrol_a" {
		t.Fatalf("patrols mismatch: %+v", decoded.Patrols)
	}
	if len(decoded.Graph.Levels) != 1 {
		t.Fatalf("got %d graph levels, want 1", len(decoded.Graph.Levels))
	}
	if decoded.Header.ObjectCount != 2 || decoded.Header.LevelCount != 1 {
		t.Fatalf("header counts = %+v", decoded.Header)
	}

	redone, err := decoded.Write()
	if err != nil {
		t.Fatalf("re-Write: %v", err)
	}
	if !bytes.Equal(data, redone) {
		t.Fatal("encode(decode(bytes)) != bytes")
	}
}

func TestSpawnFileRejectsUnknownClass(t *testing.T) {
	f := &SpawnFile{
		AlifeSpawns: []ObjectRecord{
			{Header: alife.ObjectHeader{ID: 1, ClassID: "se_nonexistent"}, Object: alife.AlifeSpaceRestrictor{}},
		},
		Graph: graph.Graph{},
	}
	data, err := f.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := ReadSpawnFile(data); err == nil {
		t.Fatal("expected unknown class-id error on decode")
	}
}

func TestSpawnFileDetectsHeaderCountMismatch(t *testing.T) {
	f := &SpawnFile{AlifeSpawns: []ObjectRecord{restrictorRecord(1, "a")}}
	data, err := f.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	// Corrupt the encoded header's object_count field (bytes 2..5 of the
	// header chunk payload, after the 8-byte chunk frame and 2-byte
	// version) to simulate a file whose header lies about its content.
	corrupted := append([]byte{}, data...)
	corrupted[10] = 99 // object_count low byte, inside the header chunk payload
	if _, err := ReadSpawnFile(corrupted); err == nil {
		t.Fatal("expected header/content count mismatch error")
	}
}

func TestParticlesFileRoundTrip(t *testing.T) {
	desc := "dust cloud"
	f := &ParticlesFile{
		Effects: []particle.Effect{
			{Name: "dust01", Flags: 1, Description: &desc},
			{Name: "spark02", Flags: 2},
		},
	}

	data, err := f.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	decoded, err := ReadParticlesFile(data)
	if err != nil {
		t.Fatalf("ReadParticlesFile: %v", err)
	}
	if len(decoded.Effects) != 2 {
		t.Fatalf("got %d effects, want 2", len(decoded.Effects))
	}
	if decoded.Effects[0].Name != "dust01" || decoded.Effects[0].Description == nil || *decoded.Effects[0].Description != desc {
		t.Fatalf("first effect mismatch: %+v", decoded.Effects[0])
	}
	if decoded.Effects[1].Name != "spark02" {
		t.Fatalf("second effect mismatch: %+v", decoded.Effects[1])
	}
}

func TestParticlesFileWrongVersionRejected(t *testing.T) {
	w := xrbyte.NewWriter()
	w.WriteU16(2)
	hdr := w.Bytes()

	var buf bytes.Buffer
	writeRawChunk := func(id uint32, payload []byte) {
		var frame [8]byte
		frame[0] = byte(id)
		frame[4] = byte(len(payload))
		buf.Write(frame[:])
		buf.Write(payload)
	}
	writeRawChunk(ChunkParticlesHeader, hdr)

	if _, err := ReadParticlesFile(buf.Bytes()); err == nil {
		t.Fatal("expected version mismatch error")
	}
}
