package ltxproj

import (
	"testing"

	"xrf/ltx"
	"xrf/xrbyte"
	"xrf/xrdb/patrol"
)

func TestPatrolRoundTrip(t *testing.T) {
	p := patrol.Patrol{
		Name: "patrol_camp",
		Points: []patrol.Point{
			{Name: "pt0", Position: xrbyte.Vector3{X: 1, Y: 2, Z: 3}, Flags: 1, LevelVertexID: 100, WaitTime: 5},
			{Name: "pt1", Position: xrbyte.Vector3{X: -1.5, Y: 0, Z: 2.25}, Flags: 0, LevelVertexID: 101, WaitTime: 0},
		},
		Links: []patrol.PatrolLink{
			{Index: 1000, Links: []patrol.LinkEntry{{Index: 10, Weight: 1.5}, {Index: 11, Weight: 2.5}, {Index: 12, Weight: 3.5}}},
			{Index: 1001, Links: nil},
		},
	}

	doc := ltx.NewDocument()
	ExportPatrol(doc, "patrol_camp", p)
	got, err := ImportPatrol(doc, "patrol_camp")
	if err != nil {
		t.Fatalf("ImportPatrol: %v", err)
	}
	if got.Name != "patrol_camp" || len(got.Points) != 2 || len(got.Links) != 2 {
		t.Fatalf("patrol mismatch: %+v", got)
	}
	if got.Points[1].Name != "pt1" || got.Points[1].Position.X != -1.5 {
		t.Fatalf("point mismatch: %+v", got.Points[1])
	}
	if len(got.Links[0].Links) != 3 || got.Links[0].Links[2].Index != 12 {
		t.Fatalf("link mismatch: %+v", got.Links[0])
	}
	if got.Links[1].Links != nil {
		t.Fatalf("expected nil link entries for link 1, got %+v", got.Links[1].Links)
	}
}

func TestPatrolEmptyRoundTrip(t *testing.T) {
	p := patrol.Patrol{Name: "empty_patrol"}
	doc := ltx.NewDocument()
	ExportPatrol(doc, "empty_patrol", p)
	got, err := ImportPatrol(doc, "empty_patrol")
	if err != nil {
		t.Fatalf("ImportPatrol: %v", err)
	}
	if got.Points != nil || got.Links != nil {
		t.Fatalf("expected nil points/links, got %+v", got)
	}
}
