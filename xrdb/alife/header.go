// Package alife implements the ALife spawn-object codec (spec §3 "ALife
// object", §4.1 DomainCodec). Every concrete class is a chain of mixin
// structs composed by field order: a generic ObjectHeader, then
// Abstract, DynamicVisual, Creature and class-specific levels, each
// embedding the one below it as Base and delegating to it first.
package alife

import (
	"xrf/xrbyte"
	"xrf/xrerr"
)

// ObjectHeader precedes every class-specific payload in a spawn
// record: identity, placement, and lifecycle bookkeeping shared by all
// ALife objects regardless of class.
type ObjectHeader struct {
	ID              uint16
	Section         string
	ClassID         string
	Name            string
	GameID          uint16
	RPID            uint16
	Position        xrbyte.Vector3
	Direction       xrbyte.Vector3
	RespawnTime     uint32
	ParentID        uint16
	PhantomID       uint16
	ScriptFlags     uint16
	Version         uint16
	AbstractUnknown uint16
	ScriptVersion   uint16
	SpawnID         uint16
}

// FlagSpawnDestroyOnSpawn gates the optional version field some object
// kinds carry in their script state, per spec §4.1 "State machines".
const FlagSpawnDestroyOnSpawn = 0x0001

// ReadObjectHeader decodes the generic prefix of a spawn object record.
func ReadObjectHeader(r *xrbyte.Reader) (ObjectHeader, error) {
	var h ObjectHeader
	var err error
	if h.ID, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.Section, err = r.ReadW1251String(); err != nil {
		return h, err
	}
	if h.ClassID, err = r.ReadW1251String(); err != nil {
		return h, err
	}
	if h.Name, err = r.ReadW1251String(); err != nil {
		return h, err
	}
	if h.GameID, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.RPID, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.Position, err = r.ReadVector3(); err != nil {
		return h, err
	}
	if h.Direction, err = r.ReadVector3(); err != nil {
		return h, err
	}
	if h.RespawnTime, err = r.ReadU32(); err != nil {
		return h, err
	}
	if h.ParentID, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.PhantomID, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.ScriptFlags, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.Version, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.AbstractUnknown, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.ScriptVersion, err = r.ReadU16(); err != nil {
		return h, err
	}
	if h.SpawnID, err = r.ReadU16(); err != nil {
		return h, err
	}
	return h, nil
}

// Write encodes the header in the same field order it was read.
func (h ObjectHeader) Write(w *xrbyte.Writer) error {
	w.WriteU16(h.ID)
	if err := w.WriteW1251String(h.Section); err != nil {
		return err
	}
	if err := w.WriteW1251String(h.ClassID); err != nil {
		return err
	}
	if err := w.WriteW1251String(h.Name); err != nil {
		return err
	}
	w.WriteU16(h.GameID)
	w.WriteU16(h.RPID)
	w.WriteVector3(h.Position)
	w.WriteVector3(h.Direction)
	w.WriteU32(h.RespawnTime)
	w.WriteU16(h.ParentID)
	w.WriteU16(h.PhantomID)
	w.WriteU16(h.ScriptFlags)
	w.WriteU16(h.Version)
	w.WriteU16(h.AbstractUnknown)
	w.WriteU16(h.ScriptVersion)
	w.WriteU16(h.SpawnID)
	return nil
}

// ErrUnknownClass mirrors spec §4.1: "Unknown class-ids are fatal."
func ErrUnknownClass(classID string) error {
	return xrerr.UnknownClassf(classID)
}
