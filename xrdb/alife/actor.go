package alife

import "xrf/xrbyte"

// ActorSaveMarker is the magic value asserted on read and emitted on
// write for AlifeActor, per spec §4.1 "Numeric magic values".
const ActorSaveMarker = 1

// ActorBase composes the trader and skeleton mixins on top of
// CreatureBase, as every playable/holdable actor-kind object does.
type ActorBase struct {
	Base     CreatureBase
	Trader   TraderAbstract
	Skeleton SkeletonBase
	HolderID uint16
}

func ReadActorBase(r *xrbyte.Reader) (ActorBase, error) {
	var a ActorBase
	base, err := ReadCreatureBase(r)
	if err != nil {
		return a, err
	}
	a.Base = base
	if a.Trader, err = ReadTraderAbstract(r); err != nil {
		return a, err
	}
	if a.Skeleton, err = ReadSkeletonBase(r); err != nil {
		return a, err
	}
	if a.HolderID, err = r.ReadU16(); err != nil {
		return a, err
	}
	return a, nil
}

func (a ActorBase) Write(w *xrbyte.Writer) error {
	if err := a.Base.Write(w); err != nil {
		return err
	}
	if err := a.Trader.Write(w); err != nil {
		return err
	}
	if err := a.Skeleton.Write(w); err != nil {
		return err
	}
	w.WriteU16(a.HolderID)
	return nil
}

// AlifeActor is the player-character spawn record (class-id
// "se_actor" / "cse_alife_creature_actor" in the original engine).
type AlifeActor struct {
	Base                CreatureBase
	Trader              TraderAbstract
	Skeleton            SkeletonBase
	HolderID            uint16
	StartPositionFilled uint8
	SaveMarker          uint16
}

// ReadAlifeActor decodes an AlifeActor payload and asserts its save
// marker. The full payload must be exactly consumed by the caller via
// xrchunk.Reader.AssertRead.
func ReadAlifeActor(r *xrbyte.Reader) (AlifeActor, error) {
	var a AlifeActor
	base, err := ReadActorBase(r)
	if err != nil {
		return a, err
	}
	a.Base = base.Base
	a.Trader = base.Trader
	a.Skeleton = base.Skeleton
	a.HolderID = base.HolderID
	if a.StartPositionFilled, err = r.ReadU8(); err != nil {
		return a, err
	}
	if a.SaveMarker, err = r.ReadU16(); err != nil {
		return a, err
	}
	if a.SaveMarker != ActorSaveMarker {
		return a, magicSaveMarker("actor", ActorSaveMarker, a.SaveMarker)
	}
	return a, nil
}

func (a AlifeActor) Write(w *xrbyte.Writer) error {
	base := ActorBase{Base: a.Base, Trader: a.Trader, Skeleton: a.Skeleton, HolderID: a.HolderID}
	if err := base.Write(w); err != nil {
		return err
	}
	w.WriteU8(a.StartPositionFilled)
	w.WriteU16(ActorSaveMarker)
	return nil
}
