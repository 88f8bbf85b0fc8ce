// Package graph implements the binary codec for the cross-level
// navigation graph (spec §3 "Graph (game graph)", §4.1 header +
// level descriptors + vertex table + edge table + level-point table).
package graph

import (
	"github.com/google/uuid"

	"xrf/xrbyte"
)

// Version is the graph format's magic version, asserted on read and
// emitted on write.
const Version = 8

// Header precedes every graph's tables.
type Header struct {
	Version     uint16
	VertexCount uint16
	EdgeCount   uint32
	PointCount  uint16
	GUID        uuid.UUID
	LevelCount  uint8
}

func ReadHeader(r *xrbyte.Reader) (Header, error) {
	var h Header
	var err error
	if h.Version, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.VertexCount, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.EdgeCount, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.PointCount, err = r.ReadU16(); err != nil {
		return h, err
	}
	raw, err := r.ReadU128()
	if err != nil {
		return h, err
	}
	if h.GUID, err = uuid.FromBytes(raw[:]); err != nil {
		return h, err
	}
	if h.LevelCount, err = r.ReadU8(); err != nil {
		return h, err
	}
	return h, nil
}

func (h Header) Write(w *xrbyte.Writer) error {
	w.WriteU16(h.Version)
	w.WriteU16(h.VertexCount)
	w.WriteU32(h.EdgeCount)
	w.WriteU16(h.PointCount)
	var raw [16]byte
	copy(raw[:], h.GUID[:])
	w.WriteU128(raw)
	w.WriteU8(h.LevelCount)
	return nil
}

// LevelDescriptor names one level participating in the graph and its
// local offset within the cross-level coordinate space.
type LevelDescriptor struct {
	Name     string
	ID       uint8
	Offset   xrbyte.Vector3
	GUID     uuid.UUID
}

func readLevelDescriptor(r *xrbyte.Reader) (LevelDescriptor, error) {
	var l LevelDescriptor
	var err error
	if l.Name, err = r.ReadW1251String(); err != nil {
		return l, err
	}
	if l.ID, err = r.ReadU8(); err != nil {
		return l, err
	}
	if l.Offset, err = r.ReadVector3(); err != nil {
		return l, err
	}
	raw, err := r.ReadU128()
	if err != nil {
		return l, err
	}
	if l.GUID, err = uuid.FromBytes(raw[:]); err != nil {
		return l, err
	}
	return l, nil
}

func writeLevelDescriptor(w *xrbyte.Writer, l LevelDescriptor) error {
	if err := w.WriteW1251String(l.Name); err != nil {
		return err
	}
	w.WriteU8(l.ID)
	w.WriteVector3(l.Offset)
	var raw [16]byte
	copy(raw[:], l.GUID[:])
	w.WriteU128(raw)
	return nil
}

// Vertex is one navigable graph node. LevelVertexID is packed on disk
// as a u24 paired with the level-id byte, per spec §4.2 "Graph codec".
type Vertex struct {
	Position      xrbyte.Vector3
	LevelVertexID uint32
	LevelID       uint8
	EdgeOffset    uint32
	EdgeCount     uint8
	PointOffset   uint16
	PointCount    uint8
}

func readVertex(r *xrbyte.Reader) (Vertex, error) {
	var v Vertex
	var err error
	if v.Position, err = r.ReadVector3(); err != nil {
		return v, err
	}
	if v.LevelVertexID, err = r.ReadU24(); err != nil {
		return v, err
	}
	if v.LevelID, err = r.ReadU8(); err != nil {
		return v, err
	}
	if v.EdgeOffset, err = r.ReadU32(); err != nil {
		return v, err
	}
	if v.EdgeCount, err = r.ReadU8(); err != nil {
		return v, err
	}
	if v.PointOffset, err = r.ReadU16(); err != nil {
		return v, err
	}
	if v.PointCount, err = r.ReadU8(); err != nil {
		return v, err
	}
	return v, nil
}

func writeVertex(w *xrbyte.Writer, v Vertex) error {
	w.WriteVector3(v.Position)
	if err := w.WriteU24(v.LevelVertexID); err != nil {
		return err
	}
	w.WriteU8(v.LevelID)
	w.WriteU32(v.EdgeOffset)
	w.WriteU8(v.EdgeCount)
	w.WriteU16(v.PointOffset)
	w.WriteU8(v.PointCount)
	return nil
}

// Edge is one directed connection between vertices.
type Edge struct {
	VertexID uint32
	Distance float32
}

func readEdge(r *xrbyte.Reader) (Edge, error) {
	var e Edge
	var err error
	if e.VertexID, err = r.ReadU32(); err != nil {
		return e, err
	}
	if e.Distance, err = r.ReadF32(); err != nil {
		return e, err
	}
	return e, nil
}

func writeEdge(w *xrbyte.Writer, e Edge) error {
	w.WriteU32(e.VertexID)
	w.WriteF32(e.Distance)
	return nil
}

// LevelPoint is a name-addressable annotation attached to a vertex
// (matching alife.AlifeGraphPoint's ConnectionPointName references).
type LevelPoint struct {
	VertexID     uint32
	Position     xrbyte.Vector3
	Name         string
}

func readLevelPoint(r *xrbyte.Reader) (LevelPoint, error) {
	var p LevelPoint
	var err error
	if p.VertexID, err = r.ReadU32(); err != nil {
		return p, err
	}
	if p.Position, err = r.ReadVector3(); err != nil {
		return p, err
	}
	if p.Name, err = r.ReadW1251String(); err != nil {
		return p, err
	}
	return p, nil
}

func writeLevelPoint(w *xrbyte.Writer, p LevelPoint) error {
	w.WriteU32(p.VertexID)
	w.WriteVector3(p.Position)
	return w.WriteW1251String(p.Name)
}

// Graph is the fully decoded cross-level navigation graph.
type Graph struct {
	Header Header
	Levels []LevelDescriptor
	Vertices []Vertex
	Edges    []Edge
	Points   []LevelPoint
}

// Read decodes a graph from header through every table, in the fixed
// order the format lays them out (spec §4.2: "Header chunk followed by
// fixed-layout tables").
func Read(r *xrbyte.Reader) (Graph, error) {
	var g Graph
	var err error
	if g.Header, err = ReadHeader(r); err != nil {
		return g, err
	}
	g.Levels = make([]LevelDescriptor, 0, g.Header.LevelCount)
	for i := uint8(0); i < g.Header.LevelCount; i++ {
		l, err := readLevelDescriptor(r)
		if err != nil {
			return g, err
		}
		g.Levels = append(g.Levels, l)
	}
	g.Vertices = make([]Vertex, 0, g.Header.VertexCount)
	for i := uint16(0); i < g.Header.VertexCount; i++ {
		v, err := readVertex(r)
		if err != nil {
			return g, err
		}
		g.Vertices = append(g.Vertices, v)
	}
	g.Edges = make([]Edge, 0, g.Header.EdgeCount)
	for i := uint32(0); i < g.Header.EdgeCount; i++ {
		e, err := readEdge(r)
		if err != nil {
			return g, err
		}
		g.Edges = append(g.Edges, e)
	}
	g.Points = make([]LevelPoint, 0, g.Header.PointCount)
	for i := uint16(0); i < g.Header.PointCount; i++ {
		p, err := readLevelPoint(r)
		if err != nil {
			return g, err
		}
		g.Points = append(g.Points, p)
	}
	return g, nil
}

// Write encodes a graph, deriving its header counts from the table
// lengths rather than trusting a caller-set Header, so a mutated graph
// always cross-validates (spec §4.3 orchestrator pack behavior).
func (g Graph) Write(w *xrbyte.Writer) error {
	h := g.Header
	h.Version = Version
	h.VertexCount = uint16(len(g.Vertices))
	h.EdgeCount = uint32(len(g.Edges))
	h.PointCount = uint16(len(g.Points))
	h.LevelCount = uint8(len(g.Levels))
	if err := h.Write(w); err != nil {
		return err
	}
	for _, l := range g.Levels {
		if err := writeLevelDescriptor(w, l); err != nil {
			return err
		}
	}
	for _, v := range g.Vertices {
		if err := writeVertex(w, v); err != nil {
			return err
		}
	}
	for _, e := range g.Edges {
		if err := writeEdge(w, e); err != nil {
			return err
		}
	}
	for _, p := range g.Points {
		if err := writeLevelPoint(w, p); err != nil {
			return err
		}
	}
	return nil
}
