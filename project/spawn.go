// Package project writes and reads the directory form of a SpawnFile:
// one or more ".ltx" files per top-level component, per spec.md line
// 142 ("for each top-level component invokes its exporter to write
// one or more .ltx files"). It sits above orchestrator and ltxproj,
// which is why it lives in its own package rather than either of
// theirs (ltxproj already depends on orchestrator for ObjectRecord).
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"xrf/ltx"
	"xrf/ltxproj"
	"xrf/orchestrator"
	"xrf/xrdb/patrol"
	"xrf/xrerr"
)

const (
	headerFileName         = "header.ltx"
	alifeSpawnsFileName    = "alife_spawns.ltx"
	artefactSpawnsFileName = "artefact_spawns.ltx"
	patrolsFileName        = "patrols.ltx"
	patrolPointsFileName   = "patrol_points.ltx"
	patrolLinksFileName    = "patrol_links.ltx"
	graphsFileName         = "graphs.ltx"
)

func writeDoc(destDir, name string, doc *ltx.Document) error {
	path := filepath.Join(destDir, name)
	if err := os.WriteFile(path, []byte(ltx.Format(doc)), 0o644); err != nil {
		return xrerr.IoError("write "+path, err)
	}
	return nil
}

func readDoc(srcDir, name string) (*ltx.Document, error) {
	path := filepath.Join(srcDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xrerr.IoError("read "+path, err)
	}
	doc, err := ltx.Parse(string(data))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ExportSpawnProject writes f's directory form into destDir, creating it
// if necessary. alife_spawns.ltx/artefact_spawns.ltx hold one section
// per object, named by stream index so re-import preserves order;
// patrols.ltx is self-sufficient (name, points, and links all live in
// each patrol's own section, per ltxproj's design); patrol_points.ltx
// and patrol_links.ltx are single-field companion views of the same
// data, written for parity with spec.md's example file list and for
// human inspection, not required on import.
func ExportSpawnProject(destDir string, f *orchestrator.SpawnFile) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return xrerr.IoError("mkdir "+destDir, err)
	}

	headerDoc := ltx.NewDocument()
	hsec := headerDoc.EnsureSection("header")
	hsec.Set("version", fmt.Sprintf("%d", f.Header.Version))
	hsec.Set("object_count", fmt.Sprintf("%d", f.Header.ObjectCount))
	hsec.Set("level_count", fmt.Sprintf("%d", f.Header.LevelCount))
	if err := writeDoc(destDir, headerFileName, headerDoc); err != nil {
		return err
	}

	alifeDoc := ltx.NewDocument()
	for i, rec := range f.AlifeSpawns {
		if err := ltxproj.ExportObjectRecord(alifeDoc, fmt.Sprintf("object_%04d", i), rec); err != nil {
			return err
		}
	}
	if err := writeDoc(destDir, alifeSpawnsFileName, alifeDoc); err != nil {
		return err
	}

	artefactDoc := ltx.NewDocument()
	for i, rec := range f.ArtefactSpawns {
		if err := ltxproj.ExportObjectRecord(artefactDoc, fmt.Sprintf("object_%04d", i), rec); err != nil {
			return err
		}
	}
	if err := writeDoc(destDir, artefactSpawnsFileName, artefactDoc); err != nil {
		return err
	}

	patrolsDoc := ltx.NewDocument()
	pointsDoc := ltx.NewDocument()
	linksDoc := ltx.NewDocument()
	for _, p := range f.Patrols {
		ltxproj.ExportPatrol(patrolsDoc, p.Name, p)
		sec, _ := patrolsDoc.Section(p.Name)
		if pts, ok := sec.Get("points"); ok {
			pointsDoc.EnsureSection(p.Name).Set("points", pts)
		}
		if lnk, ok := sec.Get("links"); ok {
			linksDoc.EnsureSection(p.Name).Set("links", lnk)
		}
	}
	if err := writeDoc(destDir, patrolsFileName, patrolsDoc); err != nil {
		return err
	}
	if err := writeDoc(destDir, patrolPointsFileName, pointsDoc); err != nil {
		return err
	}
	if err := writeDoc(destDir, patrolLinksFileName, linksDoc); err != nil {
		return err
	}

	graphDoc := ltx.NewDocument()
	ltxproj.ExportGraph(graphDoc, "graph", f.Graph)
	if err := writeDoc(destDir, graphsFileName, graphDoc); err != nil {
		return err
	}

	return nil
}

// ImportSpawnProject reads srcDir's directory form back into a
// SpawnFile, re-deriving the header's counts from the decoded tables
// rather than trusting header.ltx, mirroring SpawnFile.Write's own
// cross-validation (spec §4.6).
func ImportSpawnProject(srcDir string) (*orchestrator.SpawnFile, error) {
	alifeDoc, err := readDoc(srcDir, alifeSpawnsFileName)
	if err != nil {
		return nil, err
	}
	alifeSpawns, err := importObjectRecords(alifeDoc)
	if err != nil {
		return nil, err
	}

	artefactDoc, err := readDoc(srcDir, artefactSpawnsFileName)
	if err != nil {
		return nil, err
	}
	artefactSpawns, err := importObjectRecords(artefactDoc)
	if err != nil {
		return nil, err
	}

	patrolsDoc, err := readDoc(srcDir, patrolsFileName)
	if err != nil {
		return nil, err
	}
	patrolList, err := importPatrols(patrolsDoc)
	if err != nil {
		return nil, err
	}

	graphDoc, err := readDoc(srcDir, graphsFileName)
	if err != nil {
		return nil, err
	}
	g, err := ltxproj.ImportGraph(graphDoc, "graph")
	if err != nil {
		return nil, err
	}

	return &orchestrator.SpawnFile{
		Header: orchestrator.SpawnHeader{
			Version:     orchestrator.SpawnVersion,
			ObjectCount: uint32(len(alifeSpawns)),
			LevelCount:  uint32(len(g.Levels)),
		},
		AlifeSpawns:    alifeSpawns,
		ArtefactSpawns: artefactSpawns,
		Patrols:        patrolList,
		Graph:          g,
	}, nil
}

func importObjectRecords(doc *ltx.Document) ([]orchestrator.ObjectRecord, error) {
	names := doc.SectionNames()
	out := make([]orchestrator.ObjectRecord, 0, len(names))
	for _, name := range names {
		rec, err := ltxproj.ImportObjectRecord(doc, name)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func importPatrols(doc *ltx.Document) ([]patrol.Patrol, error) {
	names := doc.SectionNames()
	out := make([]patrol.Patrol, 0, len(names))
	for _, name := range names {
		p, err := ltxproj.ImportPatrol(doc, name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
