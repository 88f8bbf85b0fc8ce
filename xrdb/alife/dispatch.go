package alife

import "xrf/xrbyte"

// Object is any decoded class-specific ALife payload. Concrete types
// satisfy it by providing Write; decoding is done through the
// class-id-keyed registry below rather than through the interface
// itself, since reading must happen before a value of the right
// concrete type exists (spec §4.1 "Dynamic dispatch over ALife
// classes").
type Object interface {
	Write(w *xrbyte.Writer) error
}

// Codec is the (read, write) pair a class-id registers. Import/export
// to LTX is handled by the ltxproj package, which consults the same
// registry.
type Codec struct {
	Read func(r *xrbyte.Reader) (Object, error)
}

// Registry maps a class-id string to its Codec. Unknown class-ids are
// fatal per spec §4.1; callers use Lookup rather than indexing this
// map directly so that failure mode is centralized.
var Registry = map[string]Codec{
	"se_actor": {Read: wrap(ReadAlifeActor)},
	"se_zone_anom": {Read: wrap(ReadAlifeAnomalousZone)},
	"se_smart_cover": {Read: wrap(ReadAlifeSmartCover)},
	"se_smart_terrain": {Read: wrap(ReadAlifeSmartTerrain)},
	"se_level_changer": {Read: wrap(ReadAlifeLevelChanger)},
	"se_space_restrictor": {Read: wrap(ReadAlifeSpaceRestrictor)},
	"se_item_weapon": {Read: wrap(ReadAlifeItemWeapon)},
	"se_helicopter": {Read: wrap(ReadAlifeHelicopter)},
	"se_graph_point": {Read: wrap(ReadAlifeGraphPoint)},
}

// wrap adapts a concretely-typed reader function to the registry's
// Object-returning signature.
func wrap[T Object](read func(r *xrbyte.Reader) (T, error)) func(r *xrbyte.Reader) (Object, error) {
	return func(r *xrbyte.Reader) (Object, error) {
		return read(r)
	}
}

// Lookup returns the codec registered for classID, or a fatal
// UnknownClassId error.
func Lookup(classID string) (Codec, error) {
	c, ok := Registry[classID]
	if !ok {
		return Codec{}, ErrUnknownClass(classID)
	}
	return c, nil
}

// Decode dispatches to the class-id's registered reader.
func Decode(classID string, r *xrbyte.Reader) (Object, error) {
	c, err := Lookup(classID)
	if err != nil {
		return nil, err
	}
	return c.Read(r)
}
