package alife

import "xrf/xrbyte"

// ItemBase is the pickupable-object mixin: condition and upgrade-slot
// bookkeeping shared by every inventory item. UpgradesCount is a count,
// not a list — the engine stores the actual upgrade identifiers in a
// separate table this toolkit does not model.
type ItemBase struct {
	Base          DynamicVisualBase
	Condition     float32
	UpgradesCount uint32
}

func ReadItemBase(r *xrbyte.Reader) (ItemBase, error) {
	var i ItemBase
	base, err := ReadDynamicVisualBase(r)
	if err != nil {
		return i, err
	}
	i.Base = base
	if i.Condition, err = r.ReadF32(); err != nil {
		return i, err
	}
	if i.UpgradesCount, err = r.ReadU32(); err != nil {
		return i, err
	}
	return i, nil
}

func (i ItemBase) Write(w *xrbyte.Writer) error {
	if err := i.Base.Write(w); err != nil {
		return err
	}
	w.WriteF32(i.Condition)
	w.WriteU32(i.UpgradesCount)
	return nil
}

// AlifeItemWeapon is a carryable firearm.
type AlifeItemWeapon struct {
	Base            ItemBase
	AmmoCurrent     uint16
	AmmoElapsed     uint16
	WeaponState     uint8
	AddonFlags      uint8
	AmmoType        uint8
	ElapsedGrenades uint8
}

func ReadAlifeItemWeapon(r *xrbyte.Reader) (AlifeItemWeapon, error) {
	var w2 AlifeItemWeapon
	base, err := ReadItemBase(r)
	if err != nil {
		return w2, err
	}
	w2.Base = base
	if w2.AmmoCurrent, err = r.ReadU16(); err != nil {
		return w2, err
	}
	if w2.AmmoElapsed, err = r.ReadU16(); err != nil {
		return w2, err
	}
	if w2.WeaponState, err = r.ReadU8(); err != nil {
		return w2, err
	}
	if w2.AddonFlags, err = r.ReadU8(); err != nil {
		return w2, err
	}
	if w2.AmmoType, err = r.ReadU8(); err != nil {
		return w2, err
	}
	if w2.ElapsedGrenades, err = r.ReadU8(); err != nil {
		return w2, err
	}
	return w2, nil
}

func (w2 AlifeItemWeapon) Write(w *xrbyte.Writer) error {
	if err := w2.Base.Write(w); err != nil {
		return err
	}
	w.WriteU16(w2.AmmoCurrent)
	w.WriteU16(w2.AmmoElapsed)
	w.WriteU8(w2.WeaponState)
	w.WriteU8(w2.AddonFlags)
	w.WriteU8(w2.AmmoType)
	w.WriteU8(w2.ElapsedGrenades)
	return nil
}

// AlifeHelicopter is a scripted flying vehicle: a visual body plus its
// named animation clip and bone skeleton.
type AlifeHelicopter struct {
	Base             DynamicVisualBase
	Motion           MotionBase
	Skeleton         SkeletonBase
	StartupAnimation string
	EngineSound      string
}

func ReadAlifeHelicopter(r *xrbyte.Reader) (AlifeHelicopter, error) {
	var h AlifeHelicopter
	base, err := ReadDynamicVisualBase(r)
	if err != nil {
		return h, err
	}
	h.Base = base
	if h.Motion, err = ReadMotionBase(r); err != nil {
		return h, err
	}
	if h.Skeleton, err = ReadSkeletonBase(r); err != nil {
		return h, err
	}
	if h.StartupAnimation, err = r.ReadW1251String(); err != nil {
		return h, err
	}
	if h.EngineSound, err = r.ReadW1251String(); err != nil {
		return h, err
	}
	return h, nil
}

func (h AlifeHelicopter) Write(w *xrbyte.Writer) error {
	if err := h.Base.Write(w); err != nil {
		return err
	}
	if err := h.Motion.Write(w); err != nil {
		return err
	}
	if err := h.Skeleton.Write(w); err != nil {
		return err
	}
	if err := w.WriteW1251String(h.StartupAnimation); err != nil {
		return err
	}
	return w.WriteW1251String(h.EngineSound)
}

// AlifeGraphPoint is a navigation-mesh annotation object: a pair of
// connection names plus four packed location bytes. Unlike most ALife
// classes it does not embed AbstractBase — the engine stores graph
// points as a flat, standalone record.
type AlifeGraphPoint struct {
	ConnectionPointName string
	ConnectionLevelName string
	Location0           uint8
	Location1           uint8
	Location2           uint8
	Location3           uint8
}

func ReadAlifeGraphPoint(r *xrbyte.Reader) (AlifeGraphPoint, error) {
	var g AlifeGraphPoint
	var err error
	if g.ConnectionPointName, err = r.ReadW1251String(); err != nil {
		return g, err
	}
	if g.ConnectionLevelName, err = r.ReadW1251String(); err != nil {
		return g, err
	}
	if g.Location0, err = r.ReadU8(); err != nil {
		return g, err
	}
	if g.Location1, err = r.ReadU8(); err != nil {
		return g, err
	}
	if g.Location2, err = r.ReadU8(); err != nil {
		return g, err
	}
	if g.Location3, err = r.ReadU8(); err != nil {
		return g, err
	}
	return g, nil
}

func (g AlifeGraphPoint) Write(w *xrbyte.Writer) error {
	if err := w.WriteW1251String(g.ConnectionPointName); err != nil {
		return err
	}
	if err := w.WriteW1251String(g.ConnectionLevelName); err != nil {
		return err
	}
	w.WriteU8(g.Location0)
	w.WriteU8(g.Location1)
	w.WriteU8(g.Location2)
	w.WriteU8(g.Location3)
	return nil
}
