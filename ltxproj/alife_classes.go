package ltxproj

import (
	"xrf/ltx"
	"xrf/orchestrator"
	"xrf/xrdb/alife"
)

// alifeExporter/alifeImporter let each registered class plug its own
// field set into the shared header/mixin projections above, mirroring
// alife.Registry's class-id-keyed dispatch on the binary side.
type alifeExporter func(obj alife.Object, sec *ltx.Section) error
type alifeImporter func(sec *ltx.Section) (alife.Object, error)

var alifeClassRegistry = map[string]struct {
	export alifeExporter
	import_ alifeImporter
}{
	"se_actor": {
		export: func(obj alife.Object, sec *ltx.Section) error {
			a := obj.(alife.AlifeActor)
			exportCreature("", a.Base, sec)
			exportTrader(a.Trader, sec)
			exportSkeleton(a.Skeleton, sec)
			setUint(sec, "actor.holder_id", uint64(a.HolderID))
			setUint(sec, "actor.start_position_filled", uint64(a.StartPositionFilled))
			return nil
		},
		import_: func(sec *ltx.Section) (alife.Object, error) {
			var a alife.AlifeActor
			var err error
			if a.Base, err = importCreature("", sec); err != nil {
				return nil, err
			}
			if a.Trader, err = importTrader(sec); err != nil {
				return nil, err
			}
			if a.Skeleton, err = importSkeleton(sec); err != nil {
				return nil, err
			}
			u, err := getUint(sec, "actor.holder_id")
			if err != nil {
				return nil, err
			}
			a.HolderID = uint16(u)
			if u, err = getUint(sec, "actor.start_position_filled"); err != nil {
				return nil, err
			}
			a.StartPositionFilled = uint8(u)
			a.SaveMarker = alife.ActorSaveMarker
			return a, nil
		},
	},
	"se_zone_anom": {
		export: func(obj alife.Object, sec *ltx.Section) error {
			z := obj.(alife.AlifeAnomalousZone)
			exportZone(z.Base, sec)
			setFloat(sec, "zone_anom.offline_interactive_radius", float64(z.OfflineInteractiveRadius))
			setUint(sec, "zone_anom.artefact_spawn_count", uint64(z.ArtefactSpawnCount))
			setUint(sec, "zone_anom.artefact_position_offset", uint64(z.ArtefactPositionOffset))
			exportOptionalTime("zone_anom.last_spawn_time", z.LastSpawnTime, sec)
			return nil
		},
		import_: func(sec *ltx.Section) (alife.Object, error) {
			var z alife.AlifeAnomalousZone
			var err error
			if z.Base, err = importZone(sec); err != nil {
				return nil, err
			}
			f, err := getFloat(sec, "zone_anom.offline_interactive_radius")
			if err != nil {
				return nil, err
			}
			z.OfflineInteractiveRadius = float32(f)
			u, err := getUint(sec, "zone_anom.artefact_spawn_count")
			if err != nil {
				return nil, err
			}
			z.ArtefactSpawnCount = uint16(u)
			if u, err = getUint(sec, "zone_anom.artefact_position_offset"); err != nil {
				return nil, err
			}
			z.ArtefactPositionOffset = uint32(u)
			if z.LastSpawnTime, err = importOptionalTime("zone_anom.last_spawn_time", sec); err != nil {
				return nil, err
			}
			return z, nil
		},
	},
	"se_space_restrictor": {
		export: func(obj alife.Object, sec *ltx.Section) error {
			exportRestrictor(obj.(alife.AlifeSpaceRestrictor).Base, sec)
			return nil
		},
		import_: func(sec *ltx.Section) (alife.Object, error) {
			base, err := importRestrictor(sec)
			if err != nil {
				return nil, err
			}
			return alife.AlifeSpaceRestrictor{Base: base}, nil
		},
	},
	"se_smart_cover": {
		export: func(obj alife.Object, sec *ltx.Section) error {
			s := obj.(alife.AlifeSmartCover)
			exportRestrictor(s.Base, sec)
			setString(sec, "smart_cover.description", s.Description)
			setFloat(sec, "smart_cover.last_idle", float64(s.LastIdle))
			return nil
		},
		import_: func(sec *ltx.Section) (alife.Object, error) {
			var s alife.AlifeSmartCover
			var err error
			if s.Base, err = importRestrictor(sec); err != nil {
				return nil, err
			}
			if s.Description, err = getString(sec, "smart_cover.description"); err != nil {
				return nil, err
			}
			f, err := getFloat(sec, "smart_cover.last_idle")
			if err != nil {
				return nil, err
			}
			s.LastIdle = float32(f)
			return s, nil
		},
	},
	"se_smart_terrain": {
		export: func(obj alife.Object, sec *ltx.Section) error {
			s := obj.(alife.AlifeSmartTerrain)
			exportZone(s.Base, sec)
			setUint(sec, "smart_terrain.capacity_id", uint64(s.CapacityID))
			return nil
		},
		import_: func(sec *ltx.Section) (alife.Object, error) {
			var s alife.AlifeSmartTerrain
			var err error
			if s.Base, err = importZone(sec); err != nil {
				return nil, err
			}
			u, err := getUint(sec, "smart_terrain.capacity_id")
			if err != nil {
				return nil, err
			}
			s.CapacityID = uint16(u)
			s.SaveMarker = alife.SmartTerrainSaveMarker
			return s, nil
		},
	},
	"se_level_changer": {
		export: func(obj alife.Object, sec *ltx.Section) error {
			l := obj.(alife.AlifeLevelChanger)
			exportRestrictor(l.Base, sec)
			setUint(sec, "level_changer.dest_game_vertex", uint64(l.DestGameVertex))
			setString(sec, "level_changer.dest_level", l.DestLevel)
			setVector3(sec, "level_changer.dest_position", l.DestPosition)
			return nil
		},
		import_: func(sec *ltx.Section) (alife.Object, error) {
			var l alife.AlifeLevelChanger
			var err error
			if l.Base, err = importRestrictor(sec); err != nil {
				return nil, err
			}
			u, err := getUint(sec, "level_changer.dest_game_vertex")
			if err != nil {
				return nil, err
			}
			l.DestGameVertex = uint16(u)
			if l.DestLevel, err = getString(sec, "level_changer.dest_level"); err != nil {
				return nil, err
			}
			if l.DestPosition, err = getVector3(sec, "level_changer.dest_position"); err != nil {
				return nil, err
			}
			l.SaveMarker = alife.LevelChangerSaveMarker
			return l, nil
		},
	},
	"se_item_weapon": {
		export: func(obj alife.Object, sec *ltx.Section) error {
			w := obj.(alife.AlifeItemWeapon)
			exportItem(w.Base, sec)
			setUint(sec, "item_weapon.ammo_current", uint64(w.AmmoCurrent))
			setUint(sec, "item_weapon.ammo_elapsed", uint64(w.AmmoElapsed))
			setUint(sec, "item_weapon.weapon_state", uint64(w.WeaponState))
			setUint(sec, "item_weapon.addon_flags", uint64(w.AddonFlags))
			setUint(sec, "item_weapon.ammo_type", uint64(w.AmmoType))
			setUint(sec, "item_weapon.elapsed_grenades", uint64(w.ElapsedGrenades))
			return nil
		},
		import_: func(sec *ltx.Section) (alife.Object, error) {
			var w alife.AlifeItemWeapon
			var err error
			if w.Base, err = importItem(sec); err != nil {
				return nil, err
			}
			u, err := getUint(sec, "item_weapon.ammo_current")
			if err != nil {
				return nil, err
			}
			w.AmmoCurrent = uint16(u)
			if u, err = getUint(sec, "item_weapon.ammo_elapsed"); err != nil {
				return nil, err
			}
			w.AmmoElapsed = uint16(u)
			if u, err = getUint(sec, "item_weapon.weapon_state"); err != nil {
				return nil, err
			}
			w.WeaponState = uint8(u)
			if u, err = getUint(sec, "item_weapon.addon_flags"); err != nil {
				return nil, err
			}
			w.AddonFlags = uint8(u)
			if u, err = getUint(sec, "item_weapon.ammo_type"); err != nil {
				return nil, err
			}
			w.AmmoType = uint8(u)
			if u, err = getUint(sec, "item_weapon.elapsed_grenades"); err != nil {
				return nil, err
			}
			w.ElapsedGrenades = uint8(u)
			return w, nil
		},
	},
	"se_helicopter": {
		export: func(obj alife.Object, sec *ltx.Section) error {
			h := obj.(alife.AlifeHelicopter)
			exportVisual("", h.Base, sec)
			exportMotion(h.Motion, sec)
			exportSkeleton(h.Skeleton, sec)
			setString(sec, "helicopter.startup_animation", h.StartupAnimation)
			setString(sec, "helicopter.engine_sound", h.EngineSound)
			return nil
		},
		import_: func(sec *ltx.Section) (alife.Object, error) {
			var h alife.AlifeHelicopter
			var err error
			if h.Base, err = importVisual("", sec); err != nil {
				return nil, err
			}
			if h.Motion, err = importMotion(sec); err != nil {
				return nil, err
			}
			if h.Skeleton, err = importSkeleton(sec); err != nil {
				return nil, err
			}
			if h.StartupAnimation, err = getString(sec, "helicopter.startup_animation"); err != nil {
				return nil, err
			}
			if h.EngineSound, err = getString(sec, "helicopter.engine_sound"); err != nil {
				return nil, err
			}
			return h, nil
		},
	},
	"se_graph_point": {
		export: func(obj alife.Object, sec *ltx.Section) error {
			g := obj.(alife.AlifeGraphPoint)
			setString(sec, "graph_point.connection_point_name", g.ConnectionPointName)
			setString(sec, "graph_point.connection_level_name", g.ConnectionLevelName)
			setUint(sec, "graph_point.location0", uint64(g.Location0))
			setUint(sec, "graph_point.location1", uint64(g.Location1))
			setUint(sec, "graph_point.location2", uint64(g.Location2))
			setUint(sec, "graph_point.location3", uint64(g.Location3))
			return nil
		},
		import_: func(sec *ltx.Section) (alife.Object, error) {
			var g alife.AlifeGraphPoint
			var err error
			if g.ConnectionPointName, err = getString(sec, "graph_point.connection_point_name"); err != nil {
				return nil, err
			}
			if g.ConnectionLevelName, err = getString(sec, "graph_point.connection_level_name"); err != nil {
				return nil, err
			}
			u, err := getUint(sec, "graph_point.location0")
			if err != nil {
				return nil, err
			}
			g.Location0 = uint8(u)
			if u, err = getUint(sec, "graph_point.location1"); err != nil {
				return nil, err
			}
			g.Location1 = uint8(u)
			if u, err = getUint(sec, "graph_point.location2"); err != nil {
				return nil, err
			}
			g.Location2 = uint8(u)
			if u, err = getUint(sec, "graph_point.location3"); err != nil {
				return nil, err
			}
			g.Location3 = uint8(u)
			return g, nil
		},
	},
}

// ExportObjectRecord writes rec's header and class-specific fields
// into sectionName, creating the section if needed.
func ExportObjectRecord(doc *ltx.Document, sectionName string, rec orchestrator.ObjectRecord) error {
	reg, ok := alifeClassRegistry[rec.Header.ClassID]
	if !ok {
		return alife.ErrUnknownClass(rec.Header.ClassID)
	}
	sec := doc.EnsureSection(sectionName)
	exportHeader(rec.Header, sec)
	return reg.export(rec.Object, sec)
}

// ImportObjectRecord reads sectionName's header and class-specific
// fields back into an ObjectRecord, dispatching on its class_id field.
func ImportObjectRecord(doc *ltx.Document, sectionName string) (orchestrator.ObjectRecord, error) {
	sec, err := section(doc, sectionName)
	if err != nil {
		return orchestrator.ObjectRecord{}, err
	}
	hdr, err := importHeader(sec)
	if err != nil {
		return orchestrator.ObjectRecord{}, err
	}
	reg, ok := alifeClassRegistry[hdr.ClassID]
	if !ok {
		return orchestrator.ObjectRecord{}, alife.ErrUnknownClass(hdr.ClassID)
	}
	obj, err := reg.import_(sec)
	if err != nil {
		return orchestrator.ObjectRecord{}, err
	}
	return orchestrator.ObjectRecord{Header: hdr, Object: obj}, nil
}
