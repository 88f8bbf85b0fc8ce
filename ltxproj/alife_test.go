package ltxproj

import (
	"testing"

	"xrf/ltx"
	"xrf/orchestrator"
	"xrf/xrdb/alife"
)

func roundTripObject(t *testing.T, rec orchestrator.ObjectRecord) orchestrator.ObjectRecord {
	t.Helper()
	doc := ltx.NewDocument()
	if err := ExportObjectRecord(doc, "test_object", rec); err != nil {
		t.Fatalf("ExportObjectRecord: %v", err)
	}
	got, err := ImportObjectRecord(doc, "test_object")
	if err != nil {
		t.Fatalf("ImportObjectRecord: %v", err)
	}
	return got
}

func TestActorRoundTrip(t *testing.T) {
	rec := orchestrator.ObjectRecord{
		Header: alife.ObjectHeader{ID: 1, Section: "actor", ClassID: "se_actor", Name: "alpinist"},
		Object: alife.AlifeActor{
			Base: alife.CreatureBase{
				Base: alife.DynamicVisualBase{
					Base:       alife.AbstractBase{GameVertexID: 12, Distance: 4.5, CustomData: "<spawn/>"},
					VisualName: "actors\\marked_one",
				},
				Team: 1, Squad: 2, Group: 3, Health: 1.0,
				DynamicOutRestrictions: []uint16{1, 2, 3},
			},
			Trader:     alife.TraderAbstract{Money: 500, CharacterProfile: "stalker_novice", SpecificCharacter: "actor_stalker"},
			Skeleton:   alife.SkeletonBase{Name: "skeleton_default"},
			HolderID:   0xffff,
			SaveMarker: alife.ActorSaveMarker,
		},
	}

	got := roundTripObject(t, rec)
	if got.Header.Name != "alpinist" || got.Header.ClassID != "se_actor" {
		t.Fatalf("header mismatch: %+v", got.Header)
	}
	a, ok := got.Object.(alife.AlifeActor)
	if !ok {
		t.Fatalf("object type = %T, want AlifeActor", got.Object)
	}
	if a.Trader.Money != 500 || a.Skeleton.Name != "skeleton_default" || a.HolderID != 0xffff {
		t.Fatalf("actor fields mismatch: %+v", a)
	}
	if len(a.Base.DynamicOutRestrictions) != 3 {
		t.Fatalf("restriction list mismatch: %+v", a.Base.DynamicOutRestrictions)
	}
}

func TestAnomalousZoneRoundTrip(t *testing.T) {
	rec := orchestrator.ObjectRecord{
		Header: alife.ObjectHeader{ID: 2, Section: "zone", ClassID: "se_zone_anom", Name: "anomaly01"},
		Object: alife.AlifeAnomalousZone{
			Base: alife.CustomZoneBase{
				Base:     alife.SpaceRestrictorBase{RestrictorType: 1},
				MaxPower: 5.5,
				Owner:    42,
			},
			OfflineInteractiveRadius: 3.25,
			ArtefactSpawnCount:       4,
			ArtefactPositionOffset:   10,
		},
	}

	got := roundTripObject(t, rec)
	z, ok := got.Object.(alife.AlifeAnomalousZone)
	if !ok {
		t.Fatalf("object type = %T, want AlifeAnomalousZone", got.Object)
	}
	if z.Base.Owner != 42 || z.ArtefactSpawnCount != 4 {
		t.Fatalf("zone fields mismatch: %+v", z)
	}
	if z.Base.Base.Shape != nil {
		t.Fatalf("expected nil shapes, got %+v", z.Base.Base.Shape)
	}
	if z.LastSpawnTime != nil {
		t.Fatalf("expected nil last spawn time, got %+v", z.LastSpawnTime)
	}
}

func TestSpaceRestrictorRoundTrip(t *testing.T) {
	rec := orchestrator.ObjectRecord{
		Header: alife.ObjectHeader{ID: 3, Section: "restrictor", ClassID: "se_space_restrictor", Name: "r01"},
		Object: alife.AlifeSpaceRestrictor{Base: alife.SpaceRestrictorBase{RestrictorType: 2}},
	}
	got := roundTripObject(t, rec)
	r, ok := got.Object.(alife.AlifeSpaceRestrictor)
	if !ok || r.Base.RestrictorType != 2 {
		t.Fatalf("restrictor mismatch: %+v (ok=%v)", r, ok)
	}
}

func TestGraphPointRoundTrip(t *testing.T) {
	rec := orchestrator.ObjectRecord{
		Header: alife.ObjectHeader{ID: 4, Section: "gp", ClassID: "se_graph_point", Name: "gp01"},
		Object: alife.AlifeGraphPoint{
			ConnectionLevelName: "l01_escape",
			ConnectionPointName: "entrance",
			Location1:           3,
		},
	}
	got := roundTripObject(t, rec)
	g, ok := got.Object.(alife.AlifeGraphPoint)
	if !ok {
		t.Fatalf("object type = %T, want AlifeGraphPoint", got.Object)
	}
	if g.ConnectionLevelName != "l01_escape" || g.ConnectionPointName != "entrance" || g.Location1 != 3 {
		t.Fatalf("graph point mismatch: %+v", g)
	}
}

func TestImportObjectRecordRejectsUnknownClass(t *testing.T) {
	rec := orchestrator.ObjectRecord{
		Header: alife.ObjectHeader{ID: 1, Section: "s", ClassID: "se_nonexistent", Name: "n"},
		Object: alife.AlifeSpaceRestrictor{Base: alife.SpaceRestrictorBase{RestrictorType: 1}},
	}
	doc := ltx.NewDocument()
	sec := doc.EnsureSection("bogus")
	exportHeader(rec.Header, sec)
	exportRestrictor(rec.Object.(alife.AlifeSpaceRestrictor).Base, sec)

	if _, err := ImportObjectRecord(doc, "bogus"); err == nil {
		t.Fatal("expected unknown class-id error")
	}
}
