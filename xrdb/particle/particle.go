// Package particle implements the binary codec for particle effects
// and particle groups (spec §3 "Particle effect/group", §4.1
// DomainCodec).
package particle

import (
	"xrf/xrbyte"
	"xrf/xrerr"
)

// EffectVersion and GroupVersion are the magic versions asserted on
// read and emitted on write, per spec §4.1 "Numeric magic values".
const (
	EffectVersion = 3
	GroupVersion  = 3
)

// Action is one opaque step of a particle effect's action list. The
// original engine's action payloads are a closed set of gameplay
// behaviors (move, rotate, gravity, ...) outside this toolkit's scope
// (spec §1 Non-goals: "does not interpret gameplay semantics"); each
// action is therefore carried as a typed, length-framed opaque blob so
// unknown action kinds still round-trip byte-exactly.
type Action struct {
	ActionType uint32
	Payload    []byte
}

func readAction(r *xrbyte.Reader) (Action, error) {
	var a Action
	var err error
	if a.ActionType, err = r.ReadU32(); err != nil {
		return a, err
	}
	n, err := r.ReadU32()
	if err != nil {
		return a, err
	}
	if a.Payload, err = r.ReadBytes(int(n)); err != nil {
		return a, err
	}
	return a, nil
}

func writeAction(w *xrbyte.Writer, a Action) error {
	w.WriteU32(a.ActionType)
	w.WriteU32(uint32(len(a.Payload)))
	w.WriteBytes(a.Payload)
	return nil
}

// FrameAnimator is the optional sprite-sheet animation sub-record.
type FrameAnimator struct {
	TextureName string
	FramesX     uint32
	FramesY     uint32
	Speed       float32
}

func readFrameAnimator(r *xrbyte.Reader) (FrameAnimator, error) {
	var f FrameAnimator
	var err error
	if f.TextureName, err = r.ReadW1251String(); err != nil {
		return f, err
	}
	if f.FramesX, err = r.ReadU32(); err != nil {
		return f, err
	}
	if f.FramesY, err = r.ReadU32(); err != nil {
		return f, err
	}
	if f.Speed, err = r.ReadF32(); err != nil {
		return f, err
	}
	return f, nil
}

func writeFrameAnimator(w *xrbyte.Writer, f FrameAnimator) error {
	if err := w.WriteW1251String(f.TextureName); err != nil {
		return err
	}
	w.WriteU32(f.FramesX)
	w.WriteU32(f.FramesY)
	w.WriteF32(f.Speed)
	return nil
}

// Collision is the optional particle/geometry interaction sub-record.
type Collision struct {
	Bounce float32
	Kill   bool
}

func readCollision(r *xrbyte.Reader) (Collision, error) {
	var c Collision
	var err error
	if c.Bounce, err = r.ReadF32(); err != nil {
		return c, err
	}
	if c.Kill, err = r.ReadBool(); err != nil {
		return c, err
	}
	return c, nil
}

func writeCollision(w *xrbyte.Writer, c Collision) error {
	w.WriteF32(c.Bounce)
	w.WriteBool(c.Kill)
	return nil
}

// Effect is one particle effect's typed record.
type Effect struct {
	Version         uint16
	Name            string
	Flags           uint32
	Actions         []Action
	Description     *string
	FrameAnimator   *FrameAnimator
	SpriteReference *string
	Collision       *Collision
	VelocityScale   *float32
}

// ReadEffect decodes a particle effect record, asserting its version.
func ReadEffect(r *xrbyte.Reader) (Effect, error) {
	var e Effect
	var err error
	if e.Version, err = r.ReadU16(); err != nil {
		return e, err
	}
	if e.Version != EffectVersion {
		return e, xrerr.Magicf("particle effect version: want %d, got %d", EffectVersion, e.Version)
	}
	if e.Name, err = r.ReadW1251String(); err != nil {
		return e, err
	}
	if e.Flags, err = r.ReadU32(); err != nil {
		return e, err
	}
	if e.Actions, err = xrbyte.ReadXrList(r, readAction); err != nil {
		return e, err
	}
	if e.Description, err = xrbyte.ReadXrOptional(r, readW1251); err != nil {
		return e, err
	}
	if e.FrameAnimator, err = xrbyte.ReadXrOptional(r, readFrameAnimator); err != nil {
		return e, err
	}
	if e.SpriteReference, err = xrbyte.ReadXrOptional(r, readW1251); err != nil {
		return e, err
	}
	if e.Collision, err = xrbyte.ReadXrOptional(r, readCollision); err != nil {
		return e, err
	}
	if e.VelocityScale, err = xrbyte.ReadXrOptional(r, readF32); err != nil {
		return e, err
	}
	return e, nil
}

// Write encodes a particle effect record.
func (e Effect) Write(w *xrbyte.Writer) error {
	w.WriteU16(EffectVersion)
	if err := w.WriteW1251String(e.Name); err != nil {
		return err
	}
	w.WriteU32(e.Flags)
	if err := xrbyte.WriteXrList(w, e.Actions, writeAction); err != nil {
		return err
	}
	if err := xrbyte.WriteXrOptional(w, e.Description, writeW1251); err != nil {
		return err
	}
	if err := xrbyte.WriteXrOptional(w, e.FrameAnimator, writeFrameAnimator); err != nil {
		return err
	}
	if err := xrbyte.WriteXrOptional(w, e.SpriteReference, writeW1251); err != nil {
		return err
	}
	if err := xrbyte.WriteXrOptional(w, e.Collision, writeCollision); err != nil {
		return err
	}
	return xrbyte.WriteXrOptional(w, e.VelocityScale, writeF32)
}

func readW1251(r *xrbyte.Reader) (string, error) { return r.ReadW1251String() }
func writeW1251(w *xrbyte.Writer, s string) error { return w.WriteW1251String(s) }
func readF32(r *xrbyte.Reader) (float32, error)  { return r.ReadF32() }
func writeF32(w *xrbyte.Writer, v float32) error {
	w.WriteF32(v)
	return nil
}
