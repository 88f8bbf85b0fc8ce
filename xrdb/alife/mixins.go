package alife

import "xrf/xrbyte"

// AbstractBase is the bottom of the class-specific payload chain that
// every concrete ALife class embeds (directly or transitively) as its
// innermost Base, per spec §4.1 "Abstract → DynamicVisual → Creature →
// Actor → ...".
type AbstractBase struct {
	GameVertexID  uint16
	Distance      float32
	DirectControl uint32
	LevelVertexID uint32
	Flags         uint32
	CustomData    string
	StoryID       uint32
	SpawnStoryID  uint32
}

func ReadAbstractBase(r *xrbyte.Reader) (AbstractBase, error) {
	var b AbstractBase
	var err error
	if b.GameVertexID, err = r.ReadU16(); err != nil {
		return b, err
	}
	if b.Distance, err = r.ReadF32(); err != nil {
		return b, err
	}
	if b.DirectControl, err = r.ReadU32(); err != nil {
		return b, err
	}
	if b.LevelVertexID, err = r.ReadU32(); err != nil {
		return b, err
	}
	if b.Flags, err = r.ReadU32(); err != nil {
		return b, err
	}
	if b.CustomData, err = r.ReadW1251String(); err != nil {
		return b, err
	}
	if b.StoryID, err = r.ReadU32(); err != nil {
		return b, err
	}
	if b.SpawnStoryID, err = r.ReadU32(); err != nil {
		return b, err
	}
	return b, nil
}

func (b AbstractBase) Write(w *xrbyte.Writer) error {
	w.WriteU16(b.GameVertexID)
	w.WriteF32(b.Distance)
	w.WriteU32(b.DirectControl)
	w.WriteU32(b.LevelVertexID)
	w.WriteU32(b.Flags)
	if err := w.WriteW1251String(b.CustomData); err != nil {
		return err
	}
	w.WriteU32(b.StoryID)
	w.WriteU32(b.SpawnStoryID)
	return nil
}

// DynamicVisualBase adds the visual-model reference shared by every
// renderable object.
type DynamicVisualBase struct {
	Base        AbstractBase
	VisualName  string
	VisualFlags uint8
}

func ReadDynamicVisualBase(r *xrbyte.Reader) (DynamicVisualBase, error) {
	var d DynamicVisualBase
	base, err := ReadAbstractBase(r)
	if err != nil {
		return d, err
	}
	d.Base = base
	if d.VisualName, err = r.ReadW1251String(); err != nil {
		return d, err
	}
	if d.VisualFlags, err = r.ReadU8(); err != nil {
		return d, err
	}
	return d, nil
}

func (d DynamicVisualBase) Write(w *xrbyte.Writer) error {
	if err := d.Base.Write(w); err != nil {
		return err
	}
	if err := w.WriteW1251String(d.VisualName); err != nil {
		return err
	}
	w.WriteU8(d.VisualFlags)
	return nil
}

// CreatureBase adds the faction/health/restriction-zone bookkeeping
// shared by every living or AI-directed object. GameDeathTime is a
// 64-bit game-clock stamp, wider than the other u32 fields around it.
type CreatureBase struct {
	Base                   DynamicVisualBase
	Team, Squad, Group     uint8
	Health                 float32
	DynamicOutRestrictions []uint16
	DynamicInRestrictions  []uint16
	KillerID               uint16
	GameDeathTime          uint64
}

func ReadCreatureBase(r *xrbyte.Reader) (CreatureBase, error) {
	var c CreatureBase
	base, err := ReadDynamicVisualBase(r)
	if err != nil {
		return c, err
	}
	c.Base = base
	if c.Team, err = r.ReadU8(); err != nil {
		return c, err
	}
	if c.Squad, err = r.ReadU8(); err != nil {
		return c, err
	}
	if c.Group, err = r.ReadU8(); err != nil {
		return c, err
	}
	if c.Health, err = r.ReadF32(); err != nil {
		return c, err
	}
	if c.DynamicOutRestrictions, err = xrbyte.ReadXrList(r, readU16); err != nil {
		return c, err
	}
	if c.DynamicInRestrictions, err = xrbyte.ReadXrList(r, readU16); err != nil {
		return c, err
	}
	if c.KillerID, err = r.ReadU16(); err != nil {
		return c, err
	}
	if c.GameDeathTime, err = r.ReadU64(); err != nil {
		return c, err
	}
	return c, nil
}

func (c CreatureBase) Write(w *xrbyte.Writer) error {
	if err := c.Base.Write(w); err != nil {
		return err
	}
	w.WriteU8(c.Team)
	w.WriteU8(c.Squad)
	w.WriteU8(c.Group)
	w.WriteF32(c.Health)
	if err := xrbyte.WriteXrList(w, c.DynamicOutRestrictions, writeU16); err != nil {
		return err
	}
	if err := xrbyte.WriteXrList(w, c.DynamicInRestrictions, writeU16); err != nil {
		return err
	}
	w.WriteU16(c.KillerID)
	w.WriteU64(c.GameDeathTime)
	return nil
}

func readU16(r *xrbyte.Reader) (uint16, error) { return r.ReadU16() }
func writeU16(w *xrbyte.Writer, v uint16) error {
	w.WriteU16(v)
	return nil
}

// MotionBase is the named-animation mixin carried by scripted vehicles
// such as helicopters.
type MotionBase struct {
	MotionName string
}

func ReadMotionBase(r *xrbyte.Reader) (MotionBase, error) {
	name, err := r.ReadW1251String()
	return MotionBase{MotionName: name}, err
}

func (m MotionBase) Write(w *xrbyte.Writer) error {
	return w.WriteW1251String(m.MotionName)
}

// TraderAbstract is the trading-inventory mixin carried by every
// creature that can buy or sell, e.g. Actor.
type TraderAbstract struct {
	Money             uint32
	SpecificCharacter string
	TraderFlags       uint32
	CharacterProfile  string
	CommunityIndex    uint32
	Rank              uint32
	Reputation        uint32
	CharacterName     string
	DeadBodyCanTake   uint8
	DeadBodyClosed    uint8
}

func ReadTraderAbstract(r *xrbyte.Reader) (TraderAbstract, error) {
	var t TraderAbstract
	var err error
	if t.Money, err = r.ReadU32(); err != nil {
		return t, err
	}
	if t.SpecificCharacter, err = r.ReadW1251String(); err != nil {
		return t, err
	}
	if t.TraderFlags, err = r.ReadU32(); err != nil {
		return t, err
	}
	if t.CharacterProfile, err = r.ReadW1251String(); err != nil {
		return t, err
	}
	if t.CommunityIndex, err = r.ReadU32(); err != nil {
		return t, err
	}
	if t.Rank, err = r.ReadU32(); err != nil {
		return t, err
	}
	if t.Reputation, err = r.ReadU32(); err != nil {
		return t, err
	}
	if t.CharacterName, err = r.ReadW1251String(); err != nil {
		return t, err
	}
	if t.DeadBodyCanTake, err = r.ReadU8(); err != nil {
		return t, err
	}
	if t.DeadBodyClosed, err = r.ReadU8(); err != nil {
		return t, err
	}
	return t, nil
}

func (t TraderAbstract) Write(w *xrbyte.Writer) error {
	w.WriteU32(t.Money)
	if err := w.WriteW1251String(t.SpecificCharacter); err != nil {
		return err
	}
	w.WriteU32(t.TraderFlags)
	if err := w.WriteW1251String(t.CharacterProfile); err != nil {
		return err
	}
	w.WriteU32(t.CommunityIndex)
	w.WriteU32(t.Rank)
	w.WriteU32(t.Reputation)
	if err := w.WriteW1251String(t.CharacterName); err != nil {
		return err
	}
	w.WriteU8(t.DeadBodyCanTake)
	w.WriteU8(t.DeadBodyClosed)
	return nil
}

// FlagSkeletonSavedData marks a skeleton as carrying extended per-bone
// save data, which this toolkit does not decode (spec §4.1 "State
// machines": the codec must refuse, not silently skip).
const FlagSkeletonSavedData = 0x0004

// SkeletonBase is the animated-bone-structure mixin.
type SkeletonBase struct {
	Name     string
	Flags    uint8
	SourceID uint16
}

func ReadSkeletonBase(r *xrbyte.Reader) (SkeletonBase, error) {
	var s SkeletonBase
	var err error
	if s.Name, err = r.ReadW1251String(); err != nil {
		return s, err
	}
	if s.Flags, err = r.ReadU8(); err != nil {
		return s, err
	}
	if s.SourceID, err = r.ReadU16(); err != nil {
		return s, err
	}
	if s.Flags&FlagSkeletonSavedData != 0 {
		return s, NotImplementedSkeletonSavedData()
	}
	return s, nil
}

func (s SkeletonBase) Write(w *xrbyte.Writer) error {
	if s.Flags&FlagSkeletonSavedData != 0 {
		return NotImplementedSkeletonSavedData()
	}
	if err := w.WriteW1251String(s.Name); err != nil {
		return err
	}
	w.WriteU8(s.Flags)
	w.WriteU16(s.SourceID)
	return nil
}

// SpaceRestrictorBase is the volume-trigger mixin shared by zones,
// smart covers, and smart terrains: an abstract payload, the trigger
// shape list, and the restrictor's own type tag.
type SpaceRestrictorBase struct {
	Base           AbstractBase
	Shape          []xrbyte.Shape
	RestrictorType uint8
}

func ReadSpaceRestrictorBase(r *xrbyte.Reader) (SpaceRestrictorBase, error) {
	var s SpaceRestrictorBase
	base, err := ReadAbstractBase(r)
	if err != nil {
		return s, err
	}
	s.Base = base
	if s.Shape, err = r.ReadShapeList(); err != nil {
		return s, err
	}
	if s.RestrictorType, err = r.ReadU8(); err != nil {
		return s, err
	}
	return s, nil
}

func (s SpaceRestrictorBase) Write(w *xrbyte.Writer) error {
	if err := s.Base.Write(w); err != nil {
		return err
	}
	if err := w.WriteShapeList(s.Shape); err != nil {
		return err
	}
	w.WriteU8(s.RestrictorType)
	return nil
}

// CustomZoneBase adds the artefact/anomaly field behavior shared by
// zone-like restrictors.
type CustomZoneBase struct {
	Base           SpaceRestrictorBase
	MaxPower       float32
	Owner          uint32
	EnabledTime    uint32
	DisabledTime   uint32
	StartTimeShift uint32
}

func ReadCustomZoneBase(r *xrbyte.Reader) (CustomZoneBase, error) {
	var c CustomZoneBase
	base, err := ReadSpaceRestrictorBase(r)
	if err != nil {
		return c, err
	}
	c.Base = base
	if c.MaxPower, err = r.ReadF32(); err != nil {
		return c, err
	}
	if c.Owner, err = r.ReadU32(); err != nil {
		return c, err
	}
	if c.EnabledTime, err = r.ReadU32(); err != nil {
		return c, err
	}
	if c.DisabledTime, err = r.ReadU32(); err != nil {
		return c, err
	}
	if c.StartTimeShift, err = r.ReadU32(); err != nil {
		return c, err
	}
	return c, nil
}

func (c CustomZoneBase) Write(w *xrbyte.Writer) error {
	if err := c.Base.Write(w); err != nil {
		return err
	}
	w.WriteF32(c.MaxPower)
	w.WriteU32(c.Owner)
	w.WriteU32(c.EnabledTime)
	w.WriteU32(c.DisabledTime)
	w.WriteU32(c.StartTimeShift)
	return nil
}
