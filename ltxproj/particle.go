package ltxproj

import (
	"encoding/base64"
	"strconv"
	"strings"

	"xrf/ltx"
	"xrf/xrdb/particle"
	"xrf/xrerr"
)

const (
	effectTypeTag = "particle_effect"
	groupTypeTag  = "particle_group"
)

// actionToString renders one Action as "type:base64payload".
func actionToString(a particle.Action) string {
	return strconv.FormatUint(uint64(a.ActionType), 10) + ":" + base64.StdEncoding.EncodeToString(a.Payload)
}

func actionFromString(raw string) (particle.Action, error) {
	typePart, payloadPart, ok := strings.Cut(raw, ":")
	if !ok {
		return particle.Action{}, xrerr.New(xrerr.LtxParse, "invalid action entry "+raw)
	}
	t, err := strconv.ParseUint(typePart, 10, 32)
	if err != nil {
		return particle.Action{}, xrerr.Wrap(xrerr.LtxParse, "action type: not an integer", err)
	}
	payload, err := base64.StdEncoding.DecodeString(payloadPart)
	if err != nil {
		return particle.Action{}, xrerr.Wrap(xrerr.EncodingFailed, "action payload: invalid base64", err)
	}
	return particle.Action{ActionType: uint32(t), Payload: payload}, nil
}

func exportActionList(key string, actions []particle.Action, sec *ltx.Section) {
	if len(actions) == 0 {
		sec.Set(key, nilLiteral)
		return
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = actionToString(a)
	}
	sec.Set(key, strings.Join(parts, ";"))
}

func importActionList(key string, sec *ltx.Section) ([]particle.Action, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]particle.Action, len(parts))
	for i, p := range parts {
		a, err := actionFromString(p)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// effectRefToString renders one EffectRef as "name|onplay0|onplay1".
func effectRefToString(e particle.EffectRef) string {
	return e.Name + "|" + strconv.FormatFloat(float64(e.OnPlay0), 'g', -1, 32) + "|" + strconv.FormatFloat(float64(e.OnPlay1), 'g', -1, 32)
}

func effectRefFromString(raw string) (particle.EffectRef, error) {
	parts := strings.Split(raw, "|")
	if len(parts) != 3 {
		return particle.EffectRef{}, xrerr.New(xrerr.LtxParse, "invalid effect ref entry "+raw)
	}
	p0, err := strconv.ParseFloat(parts[1], 32)
	if err != nil {
		return particle.EffectRef{}, xrerr.Wrap(xrerr.LtxParse, "effect ref onplay0: not a float", err)
	}
	p1, err := strconv.ParseFloat(parts[2], 32)
	if err != nil {
		return particle.EffectRef{}, xrerr.Wrap(xrerr.LtxParse, "effect ref onplay1: not a float", err)
	}
	return particle.EffectRef{Name: parts[0], OnPlay0: float32(p0), OnPlay1: float32(p1)}, nil
}

// exportEffectRefList distinguishes a nil list (absent, nilLiteral) from
// a present-but-empty one (empty string), since Group.Effects2's
// nilness itself carries meaning (spec §4.2's legacy presence flag).
func exportEffectRefList(key string, refs []particle.EffectRef, sec *ltx.Section) {
	if refs == nil {
		sec.Set(key, nilLiteral)
		return
	}
	if len(refs) == 0 {
		sec.Set(key, "")
		return
	}
	parts := make([]string, len(refs))
	for i, e := range refs {
		parts[i] = effectRefToString(e)
	}
	sec.Set(key, strings.Join(parts, ";"))
}

func importEffectRefList(key string, sec *ltx.Section) ([]particle.EffectRef, error) {
	raw, ok := sec.Get(key)
	if !ok || raw == nilLiteral {
		return nil, nil
	}
	if raw == "" {
		return []particle.EffectRef{}, nil
	}
	parts := strings.Split(raw, ";")
	out := make([]particle.EffectRef, len(parts))
	for i, p := range parts {
		e, err := effectRefFromString(p)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func exportFrameAnimator(key string, f *particle.FrameAnimator, sec *ltx.Section) {
	if f == nil {
		setBool(sec, key+".present", false)
		return
	}
	setBool(sec, key+".present", true)
	setString(sec, key+".texture_name", f.TextureName)
	setUint(sec, key+".frames_x", uint64(f.FramesX))
	setUint(sec, key+".frames_y", uint64(f.FramesY))
	setFloat(sec, key+".speed", float64(f.Speed))
}

func importFrameAnimator(key string, sec *ltx.Section) (*particle.FrameAnimator, error) {
	present, err := getBool(sec, key+".present")
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	var f particle.FrameAnimator
	if f.TextureName, err = getString(sec, key+".texture_name"); err != nil {
		return nil, err
	}
	u, err := getUint(sec, key+".frames_x")
	if err != nil {
		return nil, err
	}
	f.FramesX = uint32(u)
	if u, err = getUint(sec, key+".frames_y"); err != nil {
		return nil, err
	}
	f.FramesY = uint32(u)
	v, err := getFloat(sec, key+".speed")
	if err != nil {
		return nil, err
	}
	f.Speed = float32(v)
	return &f, nil
}

func exportCollision(key string, c *particle.Collision, sec *ltx.Section) {
	if c == nil {
		setBool(sec, key+".present", false)
		return
	}
	setBool(sec, key+".present", true)
	setFloat(sec, key+".bounce", float64(c.Bounce))
	setBool(sec, key+".kill", c.Kill)
}

func importCollision(key string, sec *ltx.Section) (*particle.Collision, error) {
	present, err := getBool(sec, key+".present")
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	var c particle.Collision
	f, err := getFloat(sec, key+".bounce")
	if err != nil {
		return nil, err
	}
	c.Bounce = float32(f)
	if c.Kill, err = getBool(sec, key+".kill"); err != nil {
		return nil, err
	}
	return &c, nil
}

// ExportEffect writes e into sectionName, creating the section if
// needed.
func ExportEffect(doc *ltx.Document, sectionName string, e particle.Effect) {
	sec := doc.EnsureSection(sectionName)
	setType(sec, effectTypeTag)
	setUint(sec, "version", uint64(e.Version))
	setString(sec, "name", e.Name)
	setUint(sec, "flags", uint64(e.Flags))
	exportActionList("actions", e.Actions, sec)
	setOptionalString(sec, "description", e.Description)
	exportFrameAnimator("frame_animator", e.FrameAnimator, sec)
	setOptionalString(sec, "sprite_reference", e.SpriteReference)
	exportCollision("collision", e.Collision, sec)
	setOptionalFloat(sec, "velocity_scale", e.VelocityScale)
}

// ImportEffect reads sectionName back into an Effect.
func ImportEffect(doc *ltx.Document, sectionName string) (particle.Effect, error) {
	sec, err := section(doc, sectionName)
	if err != nil {
		return particle.Effect{}, err
	}
	if err := requireType(sec, effectTypeTag); err != nil {
		return particle.Effect{}, err
	}
	var e particle.Effect
	u, err := getUint(sec, "version")
	if err != nil {
		return e, err
	}
	e.Version = uint16(u)
	if e.Name, err = getString(sec, "name"); err != nil {
		return e, err
	}
	if u, err = getUint(sec, "flags"); err != nil {
		return e, err
	}
	e.Flags = uint32(u)
	if e.Actions, err = importActionList("actions", sec); err != nil {
		return e, err
	}
	if e.Description, err = getOptionalString(sec, "description"); err != nil {
		return e, err
	}
	if e.FrameAnimator, err = importFrameAnimator("frame_animator", sec); err != nil {
		return e, err
	}
	if e.SpriteReference, err = getOptionalString(sec, "sprite_reference"); err != nil {
		return e, err
	}
	if e.Collision, err = importCollision("collision", sec); err != nil {
		return e, err
	}
	if e.VelocityScale, err = getOptionalFloat(sec, "velocity_scale"); err != nil {
		return e, err
	}
	return e, nil
}

// ExportGroup writes g into sectionName, creating the section if
// needed.
func ExportGroup(doc *ltx.Document, sectionName string, g particle.Group) {
	sec := doc.EnsureSection(sectionName)
	setType(sec, groupTypeTag)
	setUint(sec, "version", uint64(g.Version))
	setString(sec, "name", g.Name)
	setUint(sec, "flags", uint64(g.Flags))
	exportEffectRefList("effects", g.Effects, sec)
	setFloat(sec, "time_limit", float64(g.TimeLimit))
	setOptionalString(sec, "description", g.Description)
	exportEffectRefList("effects2", g.Effects2, sec)
}

// ImportGroup reads sectionName back into a Group.
func ImportGroup(doc *ltx.Document, sectionName string) (particle.Group, error) {
	sec, err := section(doc, sectionName)
	if err != nil {
		return particle.Group{}, err
	}
	if err := requireType(sec, groupTypeTag); err != nil {
		return particle.Group{}, err
	}
	var g particle.Group
	u, err := getUint(sec, "version")
	if err != nil {
		return g, err
	}
	g.Version = uint16(u)
	if g.Name, err = getString(sec, "name"); err != nil {
		return g, err
	}
	if u, err = getUint(sec, "flags"); err != nil {
		return g, err
	}
	g.Flags = uint32(u)
	if g.Effects, err = importEffectRefList("effects", sec); err != nil {
		return g, err
	}
	f, err := getFloat(sec, "time_limit")
	if err != nil {
		return g, err
	}
	g.TimeLimit = float32(f)
	if g.Description, err = getOptionalString(sec, "description"); err != nil {
		return g, err
	}
	if g.Effects2, err = importEffectRefList("effects2", sec); err != nil {
		return g, err
	}
	return g, nil
}
