package alife

import "xrf/xrbyte"

// AlifeSpaceRestrictor is the plain volume-trigger leaf class: just the
// SpaceRestrictor mixin with no further fields of its own.
type AlifeSpaceRestrictor struct {
	Base SpaceRestrictorBase
}

func ReadAlifeSpaceRestrictor(r *xrbyte.Reader) (AlifeSpaceRestrictor, error) {
	base, err := ReadSpaceRestrictorBase(r)
	return AlifeSpaceRestrictor{Base: base}, err
}

func (a AlifeSpaceRestrictor) Write(w *xrbyte.Writer) error {
	return a.Base.Write(w)
}

// AlifeAnomalousZone is an anomaly field: a CustomZone mixin (whose
// embedded SpaceRestrictorBase already carries the trigger shape
// list) plus artefact-spawning parameters and an optional last spawn
// time.
type AlifeAnomalousZone struct {
	Base                     CustomZoneBase
	OfflineInteractiveRadius float32
	ArtefactSpawnCount       uint16
	ArtefactPositionOffset   uint32
	LastSpawnTime            *xrbyte.Time
}

func ReadAlifeAnomalousZone(r *xrbyte.Reader) (AlifeAnomalousZone, error) {
	var z AlifeAnomalousZone
	base, err := ReadCustomZoneBase(r)
	if err != nil {
		return z, err
	}
	z.Base = base
	if z.OfflineInteractiveRadius, err = r.ReadF32(); err != nil {
		return z, err
	}
	if z.ArtefactSpawnCount, err = r.ReadU16(); err != nil {
		return z, err
	}
	if z.ArtefactPositionOffset, err = r.ReadU32(); err != nil {
		return z, err
	}
	if z.LastSpawnTime, err = r.ReadOptionalTime(); err != nil {
		return z, err
	}
	return z, nil
}

func (z AlifeAnomalousZone) Write(w *xrbyte.Writer) error {
	if err := z.Base.Write(w); err != nil {
		return err
	}
	w.WriteF32(z.OfflineInteractiveRadius)
	w.WriteU16(z.ArtefactSpawnCount)
	w.WriteU32(z.ArtefactPositionOffset)
	w.WriteOptionalTime(z.LastSpawnTime)
	return nil
}

// LevelChangerSaveMarker and SmartTerrainSaveMarker are the per-class
// magic constants spec §4.1 calls out by name.
const (
	LevelChangerSaveMarker = 26
	SmartTerrainSaveMarker = 6
)

// AlifeSmartCover is a scripted cover-point restrictor: the
// SpaceRestrictor mixin plus a cover description table name.
type AlifeSmartCover struct {
	Base        SpaceRestrictorBase
	Description string
	LastIdle    float32
}

func ReadAlifeSmartCover(r *xrbyte.Reader) (AlifeSmartCover, error) {
	var s AlifeSmartCover
	base, err := ReadSpaceRestrictorBase(r)
	if err != nil {
		return s, err
	}
	s.Base = base
	if s.Description, err = r.ReadW1251String(); err != nil {
		return s, err
	}
	if s.LastIdle, err = r.ReadF32(); err != nil {
		return s, err
	}
	return s, nil
}

func (s AlifeSmartCover) Write(w *xrbyte.Writer) error {
	if err := s.Base.Write(w); err != nil {
		return err
	}
	if err := w.WriteW1251String(s.Description); err != nil {
		return err
	}
	w.WriteF32(s.LastIdle)
	return nil
}

// AlifeSmartTerrain is a scripted job-assignment hub.
type AlifeSmartTerrain struct {
	Base       CustomZoneBase
	CapacityID uint16
	SaveMarker uint16
}

func ReadAlifeSmartTerrain(r *xrbyte.Reader) (AlifeSmartTerrain, error) {
	var s AlifeSmartTerrain
	base, err := ReadCustomZoneBase(r)
	if err != nil {
		return s, err
	}
	s.Base = base
	if s.CapacityID, err = r.ReadU16(); err != nil {
		return s, err
	}
	if s.SaveMarker, err = r.ReadU16(); err != nil {
		return s, err
	}
	if s.SaveMarker != SmartTerrainSaveMarker {
		return s, magicSaveMarker("smart_terrain", SmartTerrainSaveMarker, s.SaveMarker)
	}
	return s, nil
}

func (s AlifeSmartTerrain) Write(w *xrbyte.Writer) error {
	if err := s.Base.Write(w); err != nil {
		return err
	}
	w.WriteU16(s.CapacityID)
	w.WriteU16(SmartTerrainSaveMarker)
	return nil
}

// AlifeLevelChanger teleports the player between level spawn files on
// touch.
type AlifeLevelChanger struct {
	Base           SpaceRestrictorBase
	DestGameVertex uint16
	DestLevel      string
	DestPosition   xrbyte.Vector3
	SaveMarker     uint16
}

func ReadAlifeLevelChanger(r *xrbyte.Reader) (AlifeLevelChanger, error) {
	var l AlifeLevelChanger
	base, err := ReadSpaceRestrictorBase(r)
	if err != nil {
		return l, err
	}
	l.Base = base
	if l.DestGameVertex, err = r.ReadU16(); err != nil {
		return l, err
	}
	if l.DestLevel, err = r.ReadW1251String(); err != nil {
		return l, err
	}
	if l.DestPosition, err = r.ReadVector3(); err != nil {
		return l, err
	}
	if l.SaveMarker, err = r.ReadU16(); err != nil {
		return l, err
	}
	if l.SaveMarker != LevelChangerSaveMarker {
		return l, magicSaveMarker("level_changer", LevelChangerSaveMarker, l.SaveMarker)
	}
	return l, nil
}

func (l AlifeLevelChanger) Write(w *xrbyte.Writer) error {
	if err := l.Base.Write(w); err != nil {
		return err
	}
	w.WriteU16(l.DestGameVertex)
	if err := w.WriteW1251String(l.DestLevel); err != nil {
		return err
	}
	w.WriteVector3(l.DestPosition)
	w.WriteU16(LevelChangerSaveMarker)
	return nil
}
