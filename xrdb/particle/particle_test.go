package particle

import (
	"bytes"
	"testing"

	"xrf/xrbyte"
)

func roundTripEffect(t *testing.T, e Effect) Effect {
	t.Helper()
	w := xrbyte.NewWriter()
	if err := e.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	r := xrbyte.NewReader(w.Bytes())
	decoded, err := ReadEffect(r)
	if err != nil {
		t.Fatalf("ReadEffect: %v", err)
	}
	if !r.IsEnded() {
		t.Fatalf("%d bytes unconsumed", r.Remaining())
	}
	w2 := xrbyte.NewWriter()
	if err := decoded.Write(w2); err != nil {
		t.Fatalf("re-Write: %v", err)
	}
	if !bytes.Equal(w.Bytes(), w2.Bytes()) {
		t.Fatal("encode(decode(bytes)) != bytes")
	}
	return decoded
}

func TestEffectMinimalRoundTrip(t *testing.T) {
	e := Effect{Name: "steam_puff", Flags: 0}
	decoded := roundTripEffect(t, e)
	if decoded.Description != nil || decoded.FrameAnimator != nil || decoded.Collision != nil || decoded.VelocityScale != nil {
		t.Fatal("expected all optional fields absent")
	}
}

func TestEffectFullRoundTrip(t *testing.T) {
	desc := "muzzle flash for rifles"
	sprite := "textures\\fx\\flash01"
	scale := float32(1.5)
	e := Effect{
		Name:  "weapon_flash",
		Flags: 42,
		Actions: []Action{
			{ActionType: 1, Payload: []byte{1, 2, 3}},
			{ActionType: 2, Payload: nil},
		},
		Description:     &desc,
		FrameAnimator:   &FrameAnimator{TextureName: "fx\\flash", FramesX: 4, FramesY: 4, Speed: 30},
		SpriteReference: &sprite,
		Collision:       &Collision{Bounce: 0.3, Kill: true},
		VelocityScale:   &scale,
	}
	decoded := roundTripEffect(t, e)
	if decoded.FrameAnimator == nil || decoded.FrameAnimator.FramesX != 4 {
		t.Fatalf("frame animator mismatch: %+v", decoded.FrameAnimator)
	}
	if decoded.Collision == nil || !decoded.Collision.Kill {
		t.Fatalf("collision mismatch: %+v", decoded.Collision)
	}
	if len(decoded.Actions) != 2 || decoded.Actions[0].ActionType != 1 {
		t.Fatalf("actions mismatch: %+v", decoded.Actions)
	}
}

func TestEffectWrongVersionRejected(t *testing.T) {
	w := xrbyte.NewWriter()
	w.WriteU16(7) // not EffectVersion
	if err := w.WriteW1251String("x"); err != nil {
		t.Fatal(err)
	}
	w.WriteU32(0)
	if err := xrbyte.WriteXrList(w, []Action(nil), writeAction); err != nil {
		t.Fatal(err)
	}
	r := xrbyte.NewReader(w.Bytes())
	if _, err := ReadEffect(r); err == nil {
		t.Fatal("expected version mismatch error")
	}
}

func TestGroupRoundTrip(t *testing.T) {
	desc := "explosion group"
	g := Group{
		Name:  "grenade_fx",
		Flags: 1,
		Effects: []EffectRef{
			{Name: "explosion_core", OnPlay0: 0, OnPlay1: 0.5},
			{Name: "smoke_trail", OnPlay0: 0.2, OnPlay1: 2.0},
		},
		TimeLimit:   3.0,
		Description: &desc,
	}
	w := xrbyte.NewWriter()
	if err := g.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	r := xrbyte.NewReader(w.Bytes())
	decoded, err := ReadGroup(r)
	if err != nil {
		t.Fatalf("ReadGroup: %v", err)
	}
	if !r.IsEnded() {
		t.Fatalf("%d bytes unconsumed", r.Remaining())
	}
	if len(decoded.Effects) != 2 || decoded.Effects[1].Name != "smoke_trail" {
		t.Fatalf("effects mismatch: %+v", decoded.Effects)
	}
	if decoded.Effects2 != nil {
		t.Fatalf("expected no legacy effects2, got %+v", decoded.Effects2)
	}

	w2 := xrbyte.NewWriter()
	if err := decoded.Write(w2); err != nil {
		t.Fatalf("re-Write: %v", err)
	}
	if !bytes.Equal(w.Bytes(), w2.Bytes()) {
		t.Fatal("encode(decode(bytes)) != bytes")
	}
}

func TestGroupWithLegacyEffects2(t *testing.T) {
	g := Group{
		Name:      "legacy_fx",
		Flags:     0,
		Effects:   []EffectRef{{Name: "a", OnPlay0: 0, OnPlay1: 1}},
		TimeLimit: 1,
		Effects2:  []EffectRef{{Name: "legacy_a", OnPlay0: 0, OnPlay1: 1}},
	}
	w := xrbyte.NewWriter()
	if err := g.Write(w); err != nil {
		t.Fatalf("Write: %v", err)
	}
	r := xrbyte.NewReader(w.Bytes())
	decoded, err := ReadGroup(r)
	if err != nil {
		t.Fatalf("ReadGroup: %v", err)
	}
	if len(decoded.Effects2) != 1 || decoded.Effects2[0].Name != "legacy_a" {
		t.Fatalf("effects2 mismatch: %+v", decoded.Effects2)
	}
}
