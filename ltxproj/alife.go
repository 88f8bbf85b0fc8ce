package ltxproj

import (
	"xrf/ltx"
	"xrf/xrdb/alife"
	"xrf/xrerr"
)

// alifeTypeTag is the $type stamp for every exported ALife object
// section; the class itself is recorded separately under class_id so
// the importer can dispatch to the right concrete reader.
const alifeTypeTag = "alife_object"

func exportHeader(h alife.ObjectHeader, sec *ltx.Section) {
	setType(sec, alifeTypeTag)
	setUint(sec, "id", uint64(h.ID))
	setString(sec, "section", h.Section)
	sec.Set("class_id", h.ClassID)
	setString(sec, "name", h.Name)
	setUint(sec, "game_id", uint64(h.GameID))
	setUint(sec, "rp_id", uint64(h.RPID))
	setVector3(sec, "position", h.Position)
	setVector3(sec, "direction", h.Direction)
	setUint(sec, "respawn_time", uint64(h.RespawnTime))
	setUint(sec, "parent_id", uint64(h.ParentID))
	setUint(sec, "phantom_id", uint64(h.PhantomID))
	setUint(sec, "script_flags", uint64(h.ScriptFlags))
	setUint(sec, "version", uint64(h.Version))
	setUint(sec, "abstract_unknown", uint64(h.AbstractUnknown))
	setUint(sec, "script_version", uint64(h.ScriptVersion))
	setUint(sec, "spawn_id", uint64(h.SpawnID))
}

func importHeader(sec *ltx.Section) (alife.ObjectHeader, error) {
	if err := requireType(sec, alifeTypeTag); err != nil {
		return alife.ObjectHeader{}, err
	}
	var h alife.ObjectHeader
	var err error
	var u uint64
	if u, err = getUint(sec, "id"); err != nil {
		return h, err
	}
	h.ID = uint16(u)
	if h.Section, err = getString(sec, "section"); err != nil {
		return h, err
	}
	classID, ok := sec.Get("class_id")
	if !ok {
		return h, xrerr.New(xrerr.LtxParse, "missing required field class_id")
	}
	h.ClassID = classID
	if h.Name, err = getString(sec, "name"); err != nil {
		return h, err
	}
	if u, err = getUint(sec, "game_id"); err != nil {
		return h, err
	}
	h.GameID = uint16(u)
	if u, err = getUint(sec, "rp_id"); err != nil {
		return h, err
	}
	h.RPID = uint16(u)
	if h.Position, err = getVector3(sec, "position"); err != nil {
		return h, err
	}
	if h.Direction, err = getVector3(sec, "direction"); err != nil {
		return h, err
	}
	if u, err = getUint(sec, "respawn_time"); err != nil {
		return h, err
	}
	h.RespawnTime = uint32(u)
	if u, err = getUint(sec, "parent_id"); err != nil {
		return h, err
	}
	h.ParentID = uint16(u)
	if u, err = getUint(sec, "phantom_id"); err != nil {
		return h, err
	}
	h.PhantomID = uint16(u)
	if u, err = getUint(sec, "script_flags"); err != nil {
		return h, err
	}
	h.ScriptFlags = uint16(u)
	if u, err = getUint(sec, "version"); err != nil {
		return h, err
	}
	h.Version = uint16(u)
	if u, err = getUint(sec, "abstract_unknown"); err != nil {
		return h, err
	}
	h.AbstractUnknown = uint16(u)
	if u, err = getUint(sec, "script_version"); err != nil {
		return h, err
	}
	h.ScriptVersion = uint16(u)
	if u, err = getUint(sec, "spawn_id"); err != nil {
		return h, err
	}
	h.SpawnID = uint16(u)
	return h, nil
}

// --- mixin projections, namespaced per spec §4.5 ---

func exportAbstract(prefix string, a alife.AbstractBase, sec *ltx.Section) {
	setUint(sec, prefix+"game_vertex_id", uint64(a.GameVertexID))
	setFloat(sec, prefix+"distance", float64(a.Distance))
	setUint(sec, prefix+"direct_control", uint64(a.DirectControl))
	setUint(sec, prefix+"level_vertex_id", uint64(a.LevelVertexID))
	setUint(sec, prefix+"flags", uint64(a.Flags))
	setString(sec, prefix+"custom_data", a.CustomData)
	setUint(sec, prefix+"story_id", uint64(a.StoryID))
	setUint(sec, prefix+"spawn_story_id", uint64(a.SpawnStoryID))
}

func importAbstract(prefix string, sec *ltx.Section) (alife.AbstractBase, error) {
	var a alife.AbstractBase
	var err error
	var u uint64
	var f float64
	if u, err = getUint(sec, prefix+"game_vertex_id"); err != nil {
		return a, err
	}
	a.GameVertexID = uint16(u)
	if f, err = getFloat(sec, prefix+"distance"); err != nil {
		return a, err
	}
	a.Distance = float32(f)
	if u, err = getUint(sec, prefix+"direct_control"); err != nil {
		return a, err
	}
	a.DirectControl = uint32(u)
	if u, err = getUint(sec, prefix+"level_vertex_id"); err != nil {
		return a, err
	}
	a.LevelVertexID = uint32(u)
	if u, err = getUint(sec, prefix+"flags"); err != nil {
		return a, err
	}
	a.Flags = uint32(u)
	if a.CustomData, err = getString(sec, prefix+"custom_data"); err != nil {
		return a, err
	}
	if u, err = getUint(sec, prefix+"story_id"); err != nil {
		return a, err
	}
	a.StoryID = uint32(u)
	if u, err = getUint(sec, prefix+"spawn_story_id"); err != nil {
		return a, err
	}
	a.SpawnStoryID = uint32(u)
	return a, nil
}

func exportVisual(prefix string, d alife.DynamicVisualBase, sec *ltx.Section) {
	exportAbstract(prefix+"abstract.", d.Base, sec)
	setString(sec, prefix+"visual.visual_name", d.VisualName)
	setUint(sec, prefix+"visual.visual_flags", uint64(d.VisualFlags))
}

func importVisual(prefix string, sec *ltx.Section) (alife.DynamicVisualBase, error) {
	var d alife.DynamicVisualBase
	var err error
	if d.Base, err = importAbstract(prefix+"abstract.", sec); err != nil {
		return d, err
	}
	if d.VisualName, err = getString(sec, prefix+"visual.visual_name"); err != nil {
		return d, err
	}
	u, err := getUint(sec, prefix+"visual.visual_flags")
	if err != nil {
		return d, err
	}
	d.VisualFlags = uint8(u)
	return d, nil
}

func exportCreature(prefix string, c alife.CreatureBase, sec *ltx.Section) {
	exportVisual(prefix, c.Base, sec)
	setUint(sec, prefix+"creature.team", uint64(c.Team))
	setUint(sec, prefix+"creature.squad", uint64(c.Squad))
	setUint(sec, prefix+"creature.group", uint64(c.Group))
	setFloat(sec, prefix+"creature.health", float64(c.Health))
	setUintList(sec, prefix+"creature.dynamic_out_restrictions", c.DynamicOutRestrictions)
	setUintList(sec, prefix+"creature.dynamic_in_restrictions", c.DynamicInRestrictions)
	setUint(sec, prefix+"creature.killer_id", uint64(c.KillerID))
	setUint(sec, prefix+"creature.game_death_time", uint64(c.GameDeathTime))
}

func importCreature(prefix string, sec *ltx.Section) (alife.CreatureBase, error) {
	var c alife.CreatureBase
	var err error
	if c.Base, err = importVisual(prefix, sec); err != nil {
		return c, err
	}
	var u uint64
	if u, err = getUint(sec, prefix+"creature.team"); err != nil {
		return c, err
	}
	c.Team = uint8(u)
	if u, err = getUint(sec, prefix+"creature.squad"); err != nil {
		return c, err
	}
	c.Squad = uint8(u)
	if u, err = getUint(sec, prefix+"creature.group"); err != nil {
		return c, err
	}
	c.Group = uint8(u)
	f, err := getFloat(sec, prefix+"creature.health")
	if err != nil {
		return c, err
	}
	c.Health = float32(f)
	if c.DynamicOutRestrictions, err = getUintList(sec, prefix+"creature.dynamic_out_restrictions"); err != nil {
		return c, err
	}
	if c.DynamicInRestrictions, err = getUintList(sec, prefix+"creature.dynamic_in_restrictions"); err != nil {
		return c, err
	}
	if u, err = getUint(sec, prefix+"creature.killer_id"); err != nil {
		return c, err
	}
	c.KillerID = uint16(u)
	if u, err = getUint(sec, prefix+"creature.game_death_time"); err != nil {
		return c, err
	}
	c.GameDeathTime = u
	return c, nil
}

func exportTrader(t alife.TraderAbstract, sec *ltx.Section) {
	setUint(sec, "trader.money", uint64(t.Money))
	setString(sec, "trader.specific_character", t.SpecificCharacter)
	setUint(sec, "trader.trader_flags", uint64(t.TraderFlags))
	setString(sec, "trader.character_profile", t.CharacterProfile)
	setUint(sec, "trader.community_index", uint64(t.CommunityIndex))
	setUint(sec, "trader.rank", uint64(t.Rank))
	setUint(sec, "trader.reputation", uint64(t.Reputation))
	setString(sec, "trader.character_name", t.CharacterName)
	setUint(sec, "trader.dead_body_can_take", uint64(t.DeadBodyCanTake))
	setUint(sec, "trader.dead_body_closed", uint64(t.DeadBodyClosed))
}

func importTrader(sec *ltx.Section) (alife.TraderAbstract, error) {
	var t alife.TraderAbstract
	u, err := getUint(sec, "trader.money")
	if err != nil {
		return t, err
	}
	t.Money = uint32(u)
	if t.SpecificCharacter, err = getString(sec, "trader.specific_character"); err != nil {
		return t, err
	}
	if u, err = getUint(sec, "trader.trader_flags"); err != nil {
		return t, err
	}
	t.TraderFlags = uint32(u)
	if t.CharacterProfile, err = getString(sec, "trader.character_profile"); err != nil {
		return t, err
	}
	if u, err = getUint(sec, "trader.community_index"); err != nil {
		return t, err
	}
	t.CommunityIndex = uint32(u)
	if u, err = getUint(sec, "trader.rank"); err != nil {
		return t, err
	}
	t.Rank = uint32(u)
	if u, err = getUint(sec, "trader.reputation"); err != nil {
		return t, err
	}
	t.Reputation = uint32(u)
	if t.CharacterName, err = getString(sec, "trader.character_name"); err != nil {
		return t, err
	}
	if u, err = getUint(sec, "trader.dead_body_can_take"); err != nil {
		return t, err
	}
	t.DeadBodyCanTake = uint8(u)
	if u, err = getUint(sec, "trader.dead_body_closed"); err != nil {
		return t, err
	}
	t.DeadBodyClosed = uint8(u)
	return t, nil
}

func exportSkeleton(s alife.SkeletonBase, sec *ltx.Section) {
	setString(sec, "skeleton.name", s.Name)
	setUint(sec, "skeleton.flags", uint64(s.Flags))
	setUint(sec, "skeleton.source_id", uint64(s.SourceID))
}

func importSkeleton(sec *ltx.Section) (alife.SkeletonBase, error) {
	var s alife.SkeletonBase
	var err error
	if s.Name, err = getString(sec, "skeleton.name"); err != nil {
		return s, err
	}
	u, err := getUint(sec, "skeleton.flags")
	if err != nil {
		return s, err
	}
	s.Flags = uint8(u)
	if u, err = getUint(sec, "skeleton.source_id"); err != nil {
		return s, err
	}
	s.SourceID = uint16(u)
	if s.Flags&alife.FlagSkeletonSavedData != 0 {
		return s, alife.NotImplementedSkeletonSavedData()
	}
	return s, nil
}

func exportRestrictor(r alife.SpaceRestrictorBase, sec *ltx.Section) {
	exportAbstract("restrictor.abstract.", r.Base, sec)
	exportShapeList("restrictor.shape", r.Shape, sec)
	setUint(sec, "restrictor.restrictor_type", uint64(r.RestrictorType))
}

func importRestrictor(sec *ltx.Section) (alife.SpaceRestrictorBase, error) {
	var r alife.SpaceRestrictorBase
	var err error
	if r.Base, err = importAbstract("restrictor.abstract.", sec); err != nil {
		return r, err
	}
	if r.Shape, err = importShapeList("restrictor.shape", sec); err != nil {
		return r, err
	}
	u, err := getUint(sec, "restrictor.restrictor_type")
	if err != nil {
		return r, err
	}
	r.RestrictorType = uint8(u)
	return r, nil
}

func exportZone(z alife.CustomZoneBase, sec *ltx.Section) {
	exportRestrictor(z.Base, sec)
	setFloat(sec, "zone.max_power", float64(z.MaxPower))
	setUint(sec, "zone.owner", uint64(z.Owner))
	setUint(sec, "zone.enabled_time", uint64(z.EnabledTime))
	setUint(sec, "zone.disabled_time", uint64(z.DisabledTime))
	setUint(sec, "zone.start_time_shift", uint64(z.StartTimeShift))
}

func importZone(sec *ltx.Section) (alife.CustomZoneBase, error) {
	var z alife.CustomZoneBase
	var err error
	if z.Base, err = importRestrictor(sec); err != nil {
		return z, err
	}
	f, err := getFloat(sec, "zone.max_power")
	if err != nil {
		return z, err
	}
	z.MaxPower = float32(f)
	u, err := getUint(sec, "zone.owner")
	if err != nil {
		return z, err
	}
	z.Owner = uint32(u)
	if u, err = getUint(sec, "zone.enabled_time"); err != nil {
		return z, err
	}
	z.EnabledTime = uint32(u)
	if u, err = getUint(sec, "zone.disabled_time"); err != nil {
		return z, err
	}
	z.DisabledTime = uint32(u)
	if u, err = getUint(sec, "zone.start_time_shift"); err != nil {
		return z, err
	}
	z.StartTimeShift = uint32(u)
	return z, nil
}

func exportItem(i alife.ItemBase, sec *ltx.Section) {
	exportVisual("item.", i.Base, sec)
	setFloat(sec, "item.condition", float64(i.Condition))
	setUint(sec, "item.upgrades_count", uint64(i.UpgradesCount))
}

func importItem(sec *ltx.Section) (alife.ItemBase, error) {
	var i alife.ItemBase
	var err error
	if i.Base, err = importVisual("item.", sec); err != nil {
		return i, err
	}
	f, err := getFloat(sec, "item.condition")
	if err != nil {
		return i, err
	}
	i.Condition = float32(f)
	u, err := getUint(sec, "item.upgrades_count")
	if err != nil {
		return i, err
	}
	i.UpgradesCount = uint32(u)
	return i, nil
}

func exportMotion(m alife.MotionBase, sec *ltx.Section) {
	setString(sec, "motion.motion_name", m.MotionName)
}

func importMotion(sec *ltx.Section) (alife.MotionBase, error) {
	name, err := getString(sec, "motion.motion_name")
	return alife.MotionBase{MotionName: name}, err
}
