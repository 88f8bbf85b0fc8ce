package ltxproj

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"xrf/ltx"
	"xrf/xrbyte"
	"xrf/xrdb/graph"
	"xrf/xrerr"
)

const graphTypeTag = "graph"

func levelToString(l graph.LevelDescriptor) string {
	return fmt.Sprintf("%s^%d^%g,%g,%g^%s", l.Name, l.ID, l.Offset.X, l.Offset.Y, l.Offset.Z, l.GUID.String())
}

func levelFromString(raw string) (graph.LevelDescriptor, error) {
	fields := strings.Split(raw, "^")
	if len(fields) != 4 {
		return graph.LevelDescriptor{}, xrerr.New(xrerr.LtxParse, "invalid level descriptor entry "+raw)
	}
	id, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil {
		return graph.LevelDescriptor{}, xrerr.Wrap(xrerr.LtxParse, "level descriptor id", err)
	}
	offset, err := parseVector3Caret(fields[2])
	if err != nil {
		return graph.LevelDescriptor{}, err
	}
	guid, err := uuid.Parse(fields[3])
	if err != nil {
		return graph.LevelDescriptor{}, xrerr.Wrap(xrerr.LtxParse, "level descriptor guid", err)
	}
	return graph.LevelDescriptor{Name: fields[0], ID: uint8(id), Offset: offset, GUID: guid}, nil
}

func parseVector3Caret(raw string) (xrbyte.Vector3, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return xrbyte.Vector3{}, xrerr.New(xrerr.LtxParse, "invalid vector "+raw)
	}
	var out [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return xrbyte.Vector3{}, xrerr.Wrap(xrerr.LtxParse, "vector component", err)
		}
		out[i] = v
	}
	return xrbyte.Vector3{X: float32(out[0]), Y: float32(out[1]), Z: float32(out[2])}, nil
}

func exportLevelList(key string, levels []graph.LevelDescriptor, sec *ltx.Section) {
	if len(levels) == 0 {
		sec.Set(key, nilLiteral)
		return
	}
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = levelToString(l)
	}
	sec.Set(key, strings.Join(parts, ";"))
}

func importLevelList(key string, sec *ltx.Section) ([]graph.LevelDescriptor, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]graph.LevelDescriptor, len(parts))
	for i, p := range parts {
		l, err := levelFromString(p)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

func vertexToString(v graph.Vertex) string {
	return fmt.Sprintf("%g,%g,%g^%d^%d^%d^%d^%d^%d",
		v.Position.X, v.Position.Y, v.Position.Z, v.LevelVertexID, v.LevelID, v.EdgeOffset, v.EdgeCount, v.PointOffset, v.PointCount)
}

func vertexFromString(raw string) (graph.Vertex, error) {
	fields := strings.Split(raw, "^")
	if len(fields) != 7 {
		return graph.Vertex{}, xrerr.New(xrerr.LtxParse, "invalid vertex entry "+raw)
	}
	pos, err := parseVector3Caret(fields[0])
	if err != nil {
		return graph.Vertex{}, err
	}
	parseU := func(s string, bits int) (uint64, error) {
		v, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return 0, xrerr.Wrap(xrerr.LtxParse, "vertex field", err)
		}
		return v, nil
	}
	levelVertexID, err := parseU(fields[1], 32)
	if err != nil {
		return graph.Vertex{}, err
	}
	levelID, err := parseU(fields[2], 8)
	if err != nil {
		return graph.Vertex{}, err
	}
	edgeOffset, err := parseU(fields[3], 32)
	if err != nil {
		return graph.Vertex{}, err
	}
	edgeCount, err := parseU(fields[4], 8)
	if err != nil {
		return graph.Vertex{}, err
	}
	pointOffset, err := parseU(fields[5], 16)
	if err != nil {
		return graph.Vertex{}, err
	}
	pointCount, err := parseU(fields[6], 8)
	if err != nil {
		return graph.Vertex{}, err
	}
	return graph.Vertex{
		Position:      pos,
		LevelVertexID: uint32(levelVertexID),
		LevelID:       uint8(levelID),
		EdgeOffset:    uint32(edgeOffset),
		EdgeCount:     uint8(edgeCount),
		PointOffset:   uint16(pointOffset),
		PointCount:    uint8(pointCount),
	}, nil
}

func exportVertexList(key string, vertices []graph.Vertex, sec *ltx.Section) {
	if len(vertices) == 0 {
		sec.Set(key, nilLiteral)
		return
	}
	parts := make([]string, len(vertices))
	for i, v := range vertices {
		parts[i] = vertexToString(v)
	}
	sec.Set(key, strings.Join(parts, ";"))
}

func importVertexList(key string, sec *ltx.Section) ([]graph.Vertex, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]graph.Vertex, len(parts))
	for i, p := range parts {
		v, err := vertexFromString(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func edgeToString(e graph.Edge) string {
	return fmt.Sprintf("%d,%g", e.VertexID, e.Distance)
}

func edgeFromString(raw string) (graph.Edge, error) {
	idStr, distStr, ok := strings.Cut(raw, ",")
	if !ok {
		return graph.Edge{}, xrerr.New(xrerr.LtxParse, "invalid edge entry "+raw)
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return graph.Edge{}, xrerr.Wrap(xrerr.LtxParse, "edge vertex_id", err)
	}
	dist, err := strconv.ParseFloat(distStr, 32)
	if err != nil {
		return graph.Edge{}, xrerr.Wrap(xrerr.LtxParse, "edge distance", err)
	}
	return graph.Edge{VertexID: uint32(id), Distance: float32(dist)}, nil
}

func exportEdgeList(key string, edges []graph.Edge, sec *ltx.Section) {
	if len(edges) == 0 {
		sec.Set(key, nilLiteral)
		return
	}
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = edgeToString(e)
	}
	sec.Set(key, strings.Join(parts, ";"))
}

func importEdgeList(key string, sec *ltx.Section) ([]graph.Edge, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]graph.Edge, len(parts))
	for i, p := range parts {
		e, err := edgeFromString(p)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func levelPointToString(p graph.LevelPoint) string {
	return fmt.Sprintf("%d^%g,%g,%g^%s", p.VertexID, p.Position.X, p.Position.Y, p.Position.Z, p.Name)
}

func levelPointFromString(raw string) (graph.LevelPoint, error) {
	fields := strings.SplitN(raw, "^", 3)
	if len(fields) != 3 {
		return graph.LevelPoint{}, xrerr.New(xrerr.LtxParse, "invalid level point entry "+raw)
	}
	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return graph.LevelPoint{}, xrerr.Wrap(xrerr.LtxParse, "level point vertex_id", err)
	}
	pos, err := parseVector3Caret(fields[1])
	if err != nil {
		return graph.LevelPoint{}, err
	}
	return graph.LevelPoint{VertexID: uint32(id), Position: pos, Name: fields[2]}, nil
}

func exportLevelPointList(key string, points []graph.LevelPoint, sec *ltx.Section) {
	if len(points) == 0 {
		sec.Set(key, nilLiteral)
		return
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = levelPointToString(p)
	}
	sec.Set(key, strings.Join(parts, ";"))
}

func importLevelPointList(key string, sec *ltx.Section) ([]graph.LevelPoint, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]graph.LevelPoint, len(parts))
	for i, p := range parts {
		lp, err := levelPointFromString(p)
		if err != nil {
			return nil, err
		}
		out[i] = lp
	}
	return out, nil
}

// ExportGraph writes g into sectionName, creating the section if
// needed. Header counts are not projected: they are rederived from
// table lengths on import, matching graph.Graph.Write's own behavior.
func ExportGraph(doc *ltx.Document, sectionName string, g graph.Graph) {
	sec := doc.EnsureSection(sectionName)
	setType(sec, graphTypeTag)
	sec.Set("guid", g.Header.GUID.String())
	exportLevelList("levels", g.Levels, sec)
	exportVertexList("vertices", g.Vertices, sec)
	exportEdgeList("edges", g.Edges, sec)
	exportLevelPointList("points", g.Points, sec)
}

// ImportGraph reads sectionName back into a Graph.
func ImportGraph(doc *ltx.Document, sectionName string) (graph.Graph, error) {
	sec, err := section(doc, sectionName)
	if err != nil {
		return graph.Graph{}, err
	}
	if err := requireType(sec, graphTypeTag); err != nil {
		return graph.Graph{}, err
	}
	var g graph.Graph
	guidRaw, ok := sec.Get("guid")
	if !ok {
		return g, xrerr.New(xrerr.LtxParse, "missing required field guid")
	}
	guid, err := uuid.Parse(guidRaw)
	if err != nil {
		return g, xrerr.Wrap(xrerr.LtxParse, "field guid: invalid uuid", err)
	}
	g.Header.GUID = guid
	if g.Levels, err = importLevelList("levels", sec); err != nil {
		return g, err
	}
	if g.Vertices, err = importVertexList("vertices", sec); err != nil {
		return g, err
	}
	if g.Edges, err = importEdgeList("edges", sec); err != nil {
		return g, err
	}
	if g.Points, err = importLevelPointList("points", sec); err != nil {
		return g, err
	}
	g.Header.Version = graph.Version
	g.Header.VertexCount = uint16(len(g.Vertices))
	g.Header.EdgeCount = uint32(len(g.Edges))
	g.Header.PointCount = uint16(len(g.Points))
	g.Header.LevelCount = uint8(len(g.Levels))
	return g, nil
}
