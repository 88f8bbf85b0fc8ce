package alife

import (
	"testing"

	"xrf/xrbyte"
)

// TestAlifeActorRoundTrip reproduces the literal scenario from spec
// §8 scenario 1 (matching the reference engine's own actor fixture
// byte for byte): encoding must yield exactly 196 bytes.
func TestAlifeActorRoundTrip(t *testing.T) {
	actor := AlifeActor{
		Base: CreatureBase{
			Base: DynamicVisualBase{
				Base: AbstractBase{
					GameVertexID:  621,
					Distance:      55.25,
					DirectControl: 15,
					LevelVertexID: 52235,
					Flags:         72,
					CustomData:    "custom-data",
					StoryID:       15,
					SpawnStoryID:  334,
				},
				VisualName:  "visual-name",
				VisualFlags: 13,
			},
			Team:                   2,
			Squad:                  3,
			Group:                  4,
			Health:                 1.0,
			DynamicOutRestrictions: []uint16{1, 2, 3, 4},
			DynamicInRestrictions:  []uint16{5, 6, 7, 8},
			KillerID:               0,
			GameDeathTime:          0,
		},
		Trader: TraderAbstract{
			Money:             5000,
			SpecificCharacter: "specific-character-0",
			TraderFlags:       23,
			CharacterProfile:  "character-profile-0",
			CommunityIndex:    1,
			Rank:              2,
			Reputation:        3,
			CharacterName:     "character-name-0",
			DeadBodyCanTake:   1,
			DeadBodyClosed:    1,
		},
		Skeleton: SkeletonBase{
			Name:     "skeleton-name-0",
			Flags:    98,
			SourceID: 12,
		},
		HolderID:            0,
		StartPositionFilled: 1,
		SaveMarker:          1,
	}

	w := xrbyte.NewWriter()
	if err := actor.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := w.Len(); got != 196 {
		t.Fatalf("encoded length = %d, want 196", got)
	}

	r := xrbyte.NewReader(w.Bytes())
	decoded, err := ReadAlifeActor(r)
	if err != nil {
		t.Fatalf("ReadAlifeActor: %v", err)
	}
	if !r.IsEnded() {
		t.Fatalf("%d bytes unconsumed", r.Remaining())
	}
	if decoded.Base.Base.Base.GameVertexID != 621 {
		t.Fatalf("GameVertexID = %d, want 621", decoded.Base.Base.Base.GameVertexID)
	}
	if decoded.Trader.Money != 5000 || decoded.Trader.CharacterName != "character-name-0" {
		t.Fatalf("trader fields mismatch: %+v", decoded.Trader)
	}
	if decoded.Skeleton.Name != "skeleton-name-0" || decoded.Skeleton.SourceID != 12 {
		t.Fatalf("skeleton fields mismatch: %+v", decoded.Skeleton)
	}

	w2 := xrbyte.NewWriter()
	if err := decoded.Write(w2); err != nil {
		t.Fatalf("re-Write: %v", err)
	}
	if string(w2.Bytes()) != string(w.Bytes()) {
		t.Fatal("encode(decode(bytes)) != bytes")
	}
}

// TestAlifeAnomalousZoneRoundTrip reproduces the literal scenario from
// spec §8 scenario 2 (matching the reference engine's own anomalous
// zone fixture byte for byte): encoding must yield exactly 145 bytes.
func TestAlifeAnomalousZoneRoundTrip(t *testing.T) {
	zone := AlifeAnomalousZone{
		Base: CustomZoneBase{
			Base: SpaceRestrictorBase{
				Base: AbstractBase{
					GameVertexID:  34565,
					Distance:      234.0,
					DirectControl: 2346,
					LevelVertexID: 7357,
					Flags:         55,
					CustomData:    "custom-data",
					StoryID:       8567,
					SpawnStoryID:  7685,
				},
				Shape: []xrbyte.Shape{
					{
						Kind:   xrbyte.ShapeSphere,
						Sphere: xrbyte.SphereShape{Center: xrbyte.Vector3{X: 2.5, Y: 5.1, Z: 1.5}, Radius: 1.0},
					},
					{
						Kind: xrbyte.ShapeBox,
						Box: xrbyte.BoxShape{Rows: [4]xrbyte.Vector3{
							{X: 4.1, Y: 1.1, Z: 3.1},
							{X: 1.1, Y: 3.2, Z: 3.3},
							{X: 4.0, Y: 5.0, Z: 6.4},
							{X: 9.2, Y: 8.3, Z: 3.0},
						}},
					},
				},
				RestrictorType: 4,
			},
			MaxPower:       1.0,
			Owner:          64,
			EnabledTime:    235,
			DisabledTime:   3457,
			StartTimeShift: 253,
		},
		OfflineInteractiveRadius: 330.0,
		ArtefactSpawnCount:       4,
		ArtefactPositionOffset:   12,
		LastSpawnTime: &xrbyte.Time{
			Year: 22, Month: 10, Day: 24, Hour: 20, Minute: 30, Second: 50, Millis: 250,
		},
	}

	w := xrbyte.NewWriter()
	if err := zone.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := w.Len(); got != 145 {
		t.Fatalf("encoded length = %d, want 145", got)
	}

	r := xrbyte.NewReader(w.Bytes())
	decoded, err := ReadAlifeAnomalousZone(r)
	if err != nil {
		t.Fatalf("ReadAlifeAnomalousZone: %v", err)
	}
	if !r.IsEnded() {
		t.Fatalf("%d bytes unconsumed", r.Remaining())
	}
	if len(decoded.Base.Base.Shape) != 2 {
		t.Fatalf("expected 2 shapes, got %d", len(decoded.Base.Base.Shape))
	}
	if decoded.LastSpawnTime == nil || decoded.LastSpawnTime.Millis != 250 {
		t.Fatalf("LastSpawnTime mismatch: %+v", decoded.LastSpawnTime)
	}

	w2 := xrbyte.NewWriter()
	if err := decoded.Write(w2); err != nil {
		t.Fatalf("re-Write: %v", err)
	}
	if string(w2.Bytes()) != string(w.Bytes()) {
		t.Fatal("encode(decode(bytes)) != bytes")
	}
}

func TestDispatchUnknownClassIsFatal(t *testing.T) {
	if _, err := Lookup("no_such_class"); err == nil {
		t.Fatal("expected error for unknown class-id")
	}
}

func TestDispatchKnownClass(t *testing.T) {
	c, err := Lookup("se_space_restrictor")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	original := AlifeSpaceRestrictor{Base: SpaceRestrictorBase{RestrictorType: 7}}
	w := xrbyte.NewWriter()
	if err := original.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	r := xrbyte.NewReader(w.Bytes())
	obj, err := c.Read(r)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	sr, ok := obj.(AlifeSpaceRestrictor)
	if !ok || sr.Base.RestrictorType != 7 {
		t.Fatalf("unexpected decode: %+v", obj)
	}
}
