package ltxproj

import (
	"testing"

	"xrf/ltx"
	"xrf/xrdb/particle"
)

func TestEffectRoundTrip(t *testing.T) {
	desc := "dust burst"
	vel := float32(1.5)
	e := particle.Effect{
		Version: particle.EffectVersion,
		Name:    "dust01",
		Flags:   7,
		Actions: []particle.Action{
			{ActionType: 1, Payload: []byte{0x01, 0x02, 0x03}},
			{ActionType: 2, Payload: nil},
		},
		Description:     &desc,
		FrameAnimator:   &particle.FrameAnimator{TextureName: "fx\\dust", FramesX: 4, FramesY: 4, Speed: 0.5},
		SpriteReference: nil,
		Collision:       &particle.Collision{Bounce: 0.2, Kill: true},
		VelocityScale:   &vel,
	}

	doc := ltx.NewDocument()
	ExportEffect(doc, "fx_dust01", e)
	got, err := ImportEffect(doc, "fx_dust01")
	if err != nil {
		t.Fatalf("ImportEffect: %v", err)
	}
	if got.Name != "dust01" || got.Flags != 7 || len(got.Actions) != 2 {
		t.Fatalf("effect mismatch: %+v", got)
	}
	if got.Description == nil || *got.Description != desc {
		t.Fatalf("description mismatch: %+v", got.Description)
	}
	if got.FrameAnimator == nil || got.FrameAnimator.FramesX != 4 {
		t.Fatalf("frame animator mismatch: %+v", got.FrameAnimator)
	}
	if got.SpriteReference != nil {
		t.Fatalf("expected nil sprite reference, got %+v", got.SpriteReference)
	}
	if got.Collision == nil || !got.Collision.Kill {
		t.Fatalf("collision mismatch: %+v", got.Collision)
	}
	if got.VelocityScale == nil || *got.VelocityScale != vel {
		t.Fatalf("velocity scale mismatch: %+v", got.VelocityScale)
	}
}

func TestEffectMinimalRoundTrip(t *testing.T) {
	e := particle.Effect{Version: particle.EffectVersion, Name: "spark", Flags: 0}
	doc := ltx.NewDocument()
	ExportEffect(doc, "fx_spark", e)
	got, err := ImportEffect(doc, "fx_spark")
	if err != nil {
		t.Fatalf("ImportEffect: %v", err)
	}
	if got.Actions != nil || got.Description != nil || got.FrameAnimator != nil ||
		got.SpriteReference != nil || got.Collision != nil || got.VelocityScale != nil {
		t.Fatalf("expected all optionals nil, got %+v", got)
	}
}

func TestGroupRoundTrip(t *testing.T) {
	g := particle.Group{
		Version: particle.GroupVersion,
		Name:    "explosion_group",
		Flags:   1,
		Effects: []particle.EffectRef{
			{Name: "flame", OnPlay0: 0, OnPlay1: 1.5},
		},
		TimeLimit: 3.0,
		Effects2:  []particle.EffectRef{},
	}
	doc := ltx.NewDocument()
	ExportGroup(doc, "grp_explosion", g)
	got, err := ImportGroup(doc, "grp_explosion")
	if err != nil {
		t.Fatalf("ImportGroup: %v", err)
	}
	if got.Name != "explosion_group" || len(got.Effects) != 1 || got.Effects[0].Name != "flame" {
		t.Fatalf("group mismatch: %+v", got)
	}
	if got.Effects2 == nil || len(got.Effects2) != 0 {
		t.Fatalf("expected present-empty Effects2, got %+v", got.Effects2)
	}
}

func TestGroupEffects2AbsentRoundTrip(t *testing.T) {
	g := particle.Group{Version: particle.GroupVersion, Name: "g", Effects: []particle.EffectRef{}}
	doc := ltx.NewDocument()
	ExportGroup(doc, "grp_legacy", g)
	got, err := ImportGroup(doc, "grp_legacy")
	if err != nil {
		t.Fatalf("ImportGroup: %v", err)
	}
	if got.Effects2 != nil {
		t.Fatalf("expected nil Effects2, got %+v", got.Effects2)
	}
}
