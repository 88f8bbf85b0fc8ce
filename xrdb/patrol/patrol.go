// Package patrol implements the binary codec for patrol paths: named
// waypoint graphs used for scripted movement, per spec §3 "Patrol"
// domain object and §8 scenario 3 (PatrolLink byte-exact round trip).
package patrol

import "xrf/xrbyte"

// Point is one patrol waypoint.
type Point struct {
	Name     string
	Position xrbyte.Vector3
	Flags    uint32
	LevelVertexID uint32
	WaitTime uint32
}

func readPoint(r *xrbyte.Reader) (Point, error) {
	var p Point
	var err error
	if p.Name, err = r.ReadW1251String(); err != nil {
		return p, err
	}
	if p.Position, err = r.ReadVector3(); err != nil {
		return p, err
	}
	if p.Flags, err = r.ReadU32(); err != nil {
		return p, err
	}
	if p.LevelVertexID, err = r.ReadU32(); err != nil {
		return p, err
	}
	if p.WaitTime, err = r.ReadU32(); err != nil {
		return p, err
	}
	return p, nil
}

func writePoint(w *xrbyte.Writer, p Point) error {
	if err := w.WriteW1251String(p.Name); err != nil {
		return err
	}
	w.WriteVector3(p.Position)
	w.WriteU32(p.Flags)
	w.WriteU32(p.LevelVertexID)
	w.WriteU32(p.WaitTime)
	return nil
}

// LinkEntry is one (target point index, traversal weight) pair within
// a PatrolLink.
type LinkEntry struct {
	Index  uint32
	Weight float32
}

func readLinkEntry(r *xrbyte.Reader) (LinkEntry, error) {
	var l LinkEntry
	var err error
	if l.Index, err = r.ReadU32(); err != nil {
		return l, err
	}
	if l.Weight, err = r.ReadF32(); err != nil {
		return l, err
	}
	return l, nil
}

func writeLinkEntry(w *xrbyte.Writer, l LinkEntry) error {
	w.WriteU32(l.Index)
	w.WriteF32(l.Weight)
	return nil
}

// PatrolLink is the out-edge list for one patrol point: its own index
// and the weighted targets reachable from it. Per spec §8 scenario 3,
// PatrolLink{index:1000, links:[(10,1.5),(11,2.5),(12,3.5)]} encodes to
// exactly 32 bytes: a u32 index, a u32 link count, then 3 (u32,f32)
// pairs (4 + 4 + 3*8 = 32).
type PatrolLink struct {
	Index uint32
	Links []LinkEntry
}

// ReadPatrolLink decodes a single patrol-link record.
func ReadPatrolLink(r *xrbyte.Reader) (PatrolLink, error) {
	var l PatrolLink
	var err error
	if l.Index, err = r.ReadU32(); err != nil {
		return l, err
	}
	if l.Links, err = xrbyte.ReadXrList(r, readLinkEntry); err != nil {
		return l, err
	}
	return l, nil
}

// Write encodes a patrol-link record.
func (l PatrolLink) Write(w *xrbyte.Writer) error {
	w.WriteU32(l.Index)
	return xrbyte.WriteXrList(w, l.Links, writeLinkEntry)
}

// Patrol is a named sequence of points, each with its own out-edge
// link list, read in sequence until the enclosing chunk ends.
type Patrol struct {
	Name   string
	Points []Point
	Links  []PatrolLink
}

// ReadPatrol decodes points (count-prefixed) followed by one
// PatrolLink per point, consuming the reader to its end.
func ReadPatrol(r *xrbyte.Reader) (Patrol, error) {
	var p Patrol
	var err error
	if p.Name, err = r.ReadW1251String(); err != nil {
		return p, err
	}
	if p.Points, err = xrbyte.ReadXrList(r, readPoint); err != nil {
		return p, err
	}
	for !r.IsEnded() {
		link, err := ReadPatrolLink(r)
		if err != nil {
			return p, err
		}
		p.Links = append(p.Links, link)
	}
	return p, nil
}

// Write encodes name, points, then every link, in that order.
func (p Patrol) Write(w *xrbyte.Writer) error {
	if err := w.WriteW1251String(p.Name); err != nil {
		return err
	}
	if err := xrbyte.WriteXrList(w, p.Points, writePoint); err != nil {
		return err
	}
	for _, l := range p.Links {
		if err := l.Write(w); err != nil {
			return err
		}
	}
	return nil
}
