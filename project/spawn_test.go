package project

import (
	"testing"

	"github.com/google/uuid"

	"xrf/orchestrator"
	"xrf/xrdb/alife"
	"xrf/xrdb/graph"
	"xrf/xrdb/patrol"
	"xrf/xrbyte"
)

func buildSpawnFile(t *testing.T) *orchestrator.SpawnFile {
	t.Helper()
	obj := orchestrator.ObjectRecord{
		Header: alife.ObjectHeader{ID: 1, Section: "level_changer", ClassID: "se_graph_point", Name: "waypoint_01"},
		Object: alife.AlifeGraphPoint{
			ConnectionPointName: "entrance_to_swamp",
			ConnectionLevelName: "escape",
		},
	}
	artefact := orchestrator.ObjectRecord{
		Header: alife.ObjectHeader{ID: 2, Section: "level_changer", ClassID: "se_graph_point", Name: "waypoint_02"},
		Object: alife.AlifeGraphPoint{
			ConnectionPointName: "exit_to_dark_valley",
			ConnectionLevelName: "garbage",
		},
	}

	p := patrol.Patrol{
		Name: "patrol_wolfpack",
		Points: []patrol.Point{
			{Name: "wp0", Position: xrbyte.Vector3{X: 1, Y: 2, Z: 3}, Flags: 1, LevelVertexID: 10, WaitTime: 0},
			{Name: "wp1", Position: xrbyte.Vector3{X: 4, Y: 5, Z: 6}, Flags: 0, LevelVertexID: 11, WaitTime: 2000},
		},
		Links: []patrol.PatrolLink{
			{Index: 0, Links: []patrol.LinkEntry{{Index: 1, Weight: 1.0}}},
			{Index: 1},
		},
	}

	g := graph.Graph{
		Header: graph.Header{GUID: uuid.New()},
		Levels: []graph.LevelDescriptor{
			{Name: "escape", ID: 0, GUID: uuid.New()},
		},
	}

	return &orchestrator.SpawnFile{
		Header: orchestrator.SpawnHeader{
			Version:     orchestrator.SpawnVersion,
			ObjectCount: 1,
			LevelCount:  1,
		},
		AlifeSpawns:    []orchestrator.ObjectRecord{obj},
		ArtefactSpawns: []orchestrator.ObjectRecord{artefact},
		Patrols:        []patrol.Patrol{p},
		Graph:          g,
	}
}

func TestSpawnProjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	f := buildSpawnFile(t)

	if err := ExportSpawnProject(dir, f); err != nil {
		t.Fatalf("ExportSpawnProject: %v", err)
	}

	got, err := ImportSpawnProject(dir)
	if err != nil {
		t.Fatalf("ImportSpawnProject: %v", err)
	}

	if len(got.AlifeSpawns) != 1 || got.AlifeSpawns[0].Header.Name != "waypoint_01" {
		t.Fatalf("alife spawns mismatch: %+v", got.AlifeSpawns)
	}
	if len(got.ArtefactSpawns) != 1 || got.ArtefactSpawns[0].Header.Name != "waypoint_02" {
		t.Fatalf("artefact spawns mismatch: %+v", got.ArtefactSpawns)
	}
	if len(got.Patrols) != 1 || got.Patrols[0].Name != "patrol_wolfpack" {
		t.Fatalf("patrols mismatch: %+v", got.Patrols)
	}
	if len(got.Patrols[0].Points) != 2 || len(got.Patrols[0].Links) != 2 {
		t.Fatalf("patrol points/links mismatch: %+v", got.Patrols[0])
	}
	if len(got.Graph.Levels) != 1 || got.Graph.Levels[0].Name != "escape" {
		t.Fatalf("graph mismatch: %+v", got.Graph)
	}
	if got.Header.ObjectCount != 1 || got.Header.LevelCount != 1 {
		t.Fatalf("header counts mismatch: %+v", got.Header)
	}
}
