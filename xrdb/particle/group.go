package particle

import (
	"xrf/xrbyte"
	"xrf/xrerr"
)

// EffectRef is a particle group's reference to a member effect, with
// the play-time bounds that gate it, per spec §3 "(for groups) list of
// effect references with time bounds".
type EffectRef struct {
	Name      string
	OnPlay0   float32
	OnPlay1   float32
}

func readEffectRef(r *xrbyte.Reader) (EffectRef, error) {
	var e EffectRef
	var err error
	if e.Name, err = r.ReadW1251String(); err != nil {
		return e, err
	}
	if e.OnPlay0, err = r.ReadF32(); err != nil {
		return e, err
	}
	if e.OnPlay1, err = r.ReadF32(); err != nil {
		return e, err
	}
	return e, nil
}

func writeEffectRef(w *xrbyte.Writer, e EffectRef) error {
	if err := w.WriteW1251String(e.Name); err != nil {
		return err
	}
	w.WriteF32(e.OnPlay0)
	w.WriteF32(e.OnPlay1)
	return nil
}

// Group is a particle group's typed record: a named collection of
// member effects sharing a lifetime, per spec §4.2 "Particle group."
type Group struct {
	Version    uint16
	Name       string
	Flags      uint32
	Effects    []EffectRef
	TimeLimit  float32
	Description *string
	Effects2   []EffectRef // legacy optional list, present in older group versions
}

// ReadGroup decodes a particle group record, asserting its version.
func ReadGroup(r *xrbyte.Reader) (Group, error) {
	var g Group
	var err error
	if g.Version, err = r.ReadU16(); err != nil {
		return g, err
	}
	if g.Version != GroupVersion {
		return g, xrerr.Magicf("particle group version: want %d, got %d", GroupVersion, g.Version)
	}
	if g.Name, err = r.ReadW1251String(); err != nil {
		return g, err
	}
	if g.Flags, err = r.ReadU32(); err != nil {
		return g, err
	}
	if g.Effects, err = xrbyte.ReadXrList(r, readEffectRef); err != nil {
		return g, err
	}
	if g.TimeLimit, err = r.ReadF32(); err != nil {
		return g, err
	}
	if g.Description, err = xrbyte.ReadXrOptional(r, readW1251); err != nil {
		return g, err
	}
	hasEffects2, err := r.ReadBool()
	if err != nil {
		return g, err
	}
	if hasEffects2 {
		if g.Effects2, err = xrbyte.ReadXrList(r, readEffectRef); err != nil {
			return g, err
		}
	}
	return g, nil
}

// Write encodes a particle group record.
func (g Group) Write(w *xrbyte.Writer) error {
	w.WriteU16(GroupVersion)
	if err := w.WriteW1251String(g.Name); err != nil {
		return err
	}
	w.WriteU32(g.Flags)
	if err := xrbyte.WriteXrList(w, g.Effects, writeEffectRef); err != nil {
		return err
	}
	w.WriteF32(g.TimeLimit)
	if err := xrbyte.WriteXrOptional(w, g.Description, writeW1251); err != nil {
		return err
	}
	w.WriteBool(g.Effects2 != nil)
	if g.Effects2 != nil {
		return xrbyte.WriteXrList(w, g.Effects2, writeEffectRef)
	}
	return nil
}
