package ltxproj

import (
	"fmt"
	"strconv"
	"strings"

	"xrf/ltx"
	"xrf/xrbyte"
	"xrf/xrdb/patrol"
	"xrf/xrerr"
)

const patrolTypeTag = "patrol"

// A patrol's points and links project into the same section as its
// name, one field per list (rather than spec line 142's three
// separate physical .ltx files) — the directory-level writer decides
// how sections map onto patrols.ltx/patrol_points.ltx/patrol_links.ltx;
// this function only defines the section's field shape.

func pointToString(p patrol.Point) string {
	return fmt.Sprintf("%s^%g,%g,%g^%d^%d^%d", p.Name, p.Position.X, p.Position.Y, p.Position.Z, p.Flags, p.LevelVertexID, p.WaitTime)
}

func pointFromString(raw string) (patrol.Point, error) {
	fields := strings.Split(raw, "^")
	if len(fields) != 5 {
		return patrol.Point{}, xrerr.New(xrerr.LtxParse, "invalid patrol point entry "+raw)
	}
	pos := strings.Split(fields[1], ",")
	if len(pos) != 3 {
		return patrol.Point{}, xrerr.New(xrerr.LtxParse, "invalid patrol point position "+fields[1])
	}
	var coords [3]float64
	for i, c := range pos {
		v, err := strconv.ParseFloat(c, 32)
		if err != nil {
			return patrol.Point{}, xrerr.Wrap(xrerr.LtxParse, "patrol point position component", err)
		}
		coords[i] = v
	}
	flags, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return patrol.Point{}, xrerr.Wrap(xrerr.LtxParse, "patrol point flags", err)
	}
	lvid, err := strconv.ParseUint(fields[3], 10, 32)
	if err != nil {
		return patrol.Point{}, xrerr.Wrap(xrerr.LtxParse, "patrol point level_vertex_id", err)
	}
	wait, err := strconv.ParseUint(fields[4], 10, 32)
	if err != nil {
		return patrol.Point{}, xrerr.Wrap(xrerr.LtxParse, "patrol point wait_time", err)
	}
	return patrol.Point{
		Name:          fields[0],
		Position:      xrbyte.Vector3{X: float32(coords[0]), Y: float32(coords[1]), Z: float32(coords[2])},
		Flags:         uint32(flags),
		LevelVertexID: uint32(lvid),
		WaitTime:      uint32(wait),
	}, nil
}

func exportPointList(key string, points []patrol.Point, sec *ltx.Section) {
	if len(points) == 0 {
		sec.Set(key, nilLiteral)
		return
	}
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = pointToString(p)
	}
	sec.Set(key, strings.Join(parts, ";"))
}

func importPointList(key string, sec *ltx.Section) ([]patrol.Point, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]patrol.Point, len(parts))
	for i, p := range parts {
		pt, err := pointFromString(p)
		if err != nil {
			return nil, err
		}
		out[i] = pt
	}
	return out, nil
}

func linkEntryToString(l patrol.LinkEntry) string {
	return fmt.Sprintf("%d,%g", l.Index, l.Weight)
}

func linkEntryFromString(raw string) (patrol.LinkEntry, error) {
	idxStr, weightStr, ok := strings.Cut(raw, ",")
	if !ok {
		return patrol.LinkEntry{}, xrerr.New(xrerr.LtxParse, "invalid link entry "+raw)
	}
	idx, err := strconv.ParseUint(idxStr, 10, 32)
	if err != nil {
		return patrol.LinkEntry{}, xrerr.Wrap(xrerr.LtxParse, "link entry index", err)
	}
	weight, err := strconv.ParseFloat(weightStr, 32)
	if err != nil {
		return patrol.LinkEntry{}, xrerr.Wrap(xrerr.LtxParse, "link entry weight", err)
	}
	return patrol.LinkEntry{Index: uint32(idx), Weight: float32(weight)}, nil
}

func patrolLinkToString(l patrol.PatrolLink) string {
	parts := make([]string, len(l.Links))
	for i, e := range l.Links {
		parts[i] = linkEntryToString(e)
	}
	return strconv.FormatUint(uint64(l.Index), 10) + ":" + strings.Join(parts, "|")
}

func patrolLinkFromString(raw string) (patrol.PatrolLink, error) {
	idxStr, rest, ok := strings.Cut(raw, ":")
	if !ok {
		return patrol.PatrolLink{}, xrerr.New(xrerr.LtxParse, "invalid patrol link entry "+raw)
	}
	idx, err := strconv.ParseUint(idxStr, 10, 32)
	if err != nil {
		return patrol.PatrolLink{}, xrerr.Wrap(xrerr.LtxParse, "patrol link index", err)
	}
	l := patrol.PatrolLink{Index: uint32(idx)}
	if rest == "" {
		return l, nil
	}
	for _, e := range strings.Split(rest, "|") {
		entry, err := linkEntryFromString(e)
		if err != nil {
			return patrol.PatrolLink{}, err
		}
		l.Links = append(l.Links, entry)
	}
	return l, nil
}

func exportPatrolLinkList(key string, links []patrol.PatrolLink, sec *ltx.Section) {
	if len(links) == 0 {
		sec.Set(key, nilLiteral)
		return
	}
	parts := make([]string, len(links))
	for i, l := range links {
		parts[i] = patrolLinkToString(l)
	}
	sec.Set(key, strings.Join(parts, ";"))
}

func importPatrolLinkList(key string, sec *ltx.Section) ([]patrol.PatrolLink, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]patrol.PatrolLink, len(parts))
	for i, p := range parts {
		l, err := patrolLinkFromString(p)
		if err != nil {
			return nil, err
		}
		out[i] = l
	}
	return out, nil
}

// ExportPatrol writes p into sectionName, creating the section if
// needed.
func ExportPatrol(doc *ltx.Document, sectionName string, p patrol.Patrol) {
	sec := doc.EnsureSection(sectionName)
	setType(sec, patrolTypeTag)
	setString(sec, "name", p.Name)
	exportPointList("points", p.Points, sec)
	exportPatrolLinkList("links", p.Links, sec)
}

// ImportPatrol reads sectionName back into a Patrol.
func ImportPatrol(doc *ltx.Document, sectionName string) (patrol.Patrol, error) {
	sec, err := section(doc, sectionName)
	if err != nil {
		return patrol.Patrol{}, err
	}
	if err := requireType(sec, patrolTypeTag); err != nil {
		return patrol.Patrol{}, err
	}
	var p patrol.Patrol
	if p.Name, err = getString(sec, "name"); err != nil {
		return p, err
	}
	if p.Points, err = importPointList("points", sec); err != nil {
		return p, err
	}
	if p.Links, err = importPatrolLinkList("links", sec); err != nil {
		return p, err
	}
	return p, nil
}
