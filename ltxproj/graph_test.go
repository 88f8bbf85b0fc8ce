package ltxproj

import (
	"testing"

	"github.com/google/uuid"

	"xrf/ltx"
	"xrf/xrbyte"
	"xrf/xrdb/graph"
)

func TestGraphRoundTrip(t *testing.T) {
	levelGUID := uuid.New()
	graphGUID := uuid.New()
	g := graph.Graph{
		Header: graph.Header{GUID: graphGUID},
		Levels: []graph.LevelDescriptor{
			{Name: "l01_escape", ID: 0, Offset: xrbyte.Vector3{X: 1, Y: 2, Z: 3}, GUID: levelGUID},
		},
		Vertices: []graph.Vertex{
			{Position: xrbyte.Vector3{X: 10, Y: 20, Z: 30}, LevelVertexID: 5, LevelID: 0, EdgeOffset: 0, EdgeCount: 2, PointOffset: 0, PointCount: 1},
		},
		Edges: []graph.Edge{
			{VertexID: 0, Distance: 1.5},
			{VertexID: 1, Distance: 2.5},
		},
		Points: []graph.LevelPoint{
			{VertexID: 0, Position: xrbyte.Vector3{X: 1, Y: 1, Z: 1}, Name: "entrance"},
		},
	}

	doc := ltx.NewDocument()
	ExportGraph(doc, "graphs", g)
	got, err := ImportGraph(doc, "graphs")
	if err != nil {
		t.Fatalf("ImportGraph: %v", err)
	}
	if got.Header.GUID != graphGUID {
		t.Fatalf("guid mismatch: %v", got.Header.GUID)
	}
	if len(got.Levels) != 1 || got.Levels[0].Name != "l01_escape" || got.Levels[0].GUID != levelGUID {
		t.Fatalf("levels mismatch: %+v", got.Levels)
	}
	if len(got.Vertices) != 1 || got.Vertices[0].LevelVertexID != 5 {
		t.Fatalf("vertices mismatch: %+v", got.Vertices)
	}
	if len(got.Edges) != 2 || got.Edges[1].Distance != 2.5 {
		t.Fatalf("edges mismatch: %+v", got.Edges)
	}
	if len(got.Points) != 1 || got.Points[0].Name != "entrance" {
		t.Fatalf("points mismatch: %+v", got.Points)
	}
	if got.Header.VertexCount != 1 || got.Header.EdgeCount != 2 || got.Header.PointCount != 1 || got.Header.LevelCount != 1 {
		t.Fatalf("derived header counts mismatch: %+v", got.Header)
	}
}

func TestGraphEmptyRoundTrip(t *testing.T) {
	g := graph.Graph{Header: graph.Header{GUID: uuid.New()}}
	doc := ltx.NewDocument()
	ExportGraph(doc, "graphs_empty", g)
	got, err := ImportGraph(doc, "graphs_empty")
	if err != nil {
		t.Fatalf("ImportGraph: %v", err)
	}
	if got.Levels != nil || got.Vertices != nil || got.Edges != nil || got.Points != nil {
		t.Fatalf("expected all nil tables, got %+v", got)
	}
}
