package material

import (
	"testing"

	"github.com/ember3d/ember-go/engine/device"
	"github.com/ember3d/ember-go/engine/device/devicetest"
	"github.com/ember3d/ember-go/engine/light"
)

func newTestInstance(t *testing.T) (*devicetest.FakeDevice, *Arena, Handle, *MaterialInstance) {
	t.Helper()
	dev := devicetest.NewFakeDevice()
	arena := NewArena()
	handle := arena.Add(NewMaterial(plainVertex, litFragment, "parent"))
	inst := arena.NewInstance(handle, "parent#0")
	return dev, arena, handle, inst
}

func TestInstanceLookupForcesParentFirst(t *testing.T) {
	dev, arena, handle, inst := newTestInstance(t)
	parent := arena.Get(handle)
	if err := parent.Compile(dev, light.Config{Directional: 1}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	inst.SetUniform("u_tint", device.Float(1))

	inst.LookupLocations(dev)
	if !parent.LookupDone() {
		t.Error("expected the parent's lookup to run before the instance's")
	}
	if !inst.LookupDone() {
		t.Error("expected the instance lookup to complete")
	}
}

func TestInstanceLookupIdempotent(t *testing.T) {
	dev, arena, handle, inst := newTestInstance(t)
	if err := arena.Get(handle).Compile(dev, light.Config{Directional: 1}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	inst.SetUniform("u_tint", device.Float(1))

	inst.LookupLocations(dev)
	queries := dev.UniformQueries
	inst.LookupLocations(dev)
	if dev.UniformQueries != queries {
		t.Errorf("expected no further queries on repeated lookup, got %d extra", dev.UniformQueries-queries)
	}
}

func TestInstanceLookupNoOpWithoutProgram(t *testing.T) {
	dev, _, _, inst := newTestInstance(t)
	inst.SetUniform("u_tint", device.Float(1))

	inst.LookupLocations(dev)
	if inst.LookupDone() {
		t.Error("expected lookup to stay pending while the parent has no program")
	}
	if dev.UniformQueries != 0 {
		t.Errorf("expected no device queries without a program, got %d", dev.UniformQueries)
	}
}

func TestInstanceLookupStaleAfterParentRecompile(t *testing.T) {
	dev, arena, handle, inst := newTestInstance(t)
	parent := arena.Get(handle)
	if err := parent.Compile(dev, light.Config{Directional: 1}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	inst.SetUniform("u_tint", device.Float(1))
	inst.LookupLocations(dev)

	if err := parent.Compile(dev, light.Config{Directional: 2}); err != nil {
		t.Fatalf("recompile failed: %v", err)
	}
	if inst.LookupDone() {
		t.Fatal("expected the instance's locations to be stale after the parent recompile")
	}

	queries := dev.UniformQueries
	inst.LookupLocations(dev)
	if !inst.LookupDone() {
		t.Error("expected the lookup to re-resolve against the new program")
	}
	if dev.UniformQueries <= queries {
		t.Error("expected the stale lookup to query the device again")
	}
}

func TestInstanceUniformsSeparateFromParent(t *testing.T) {
	_, arena, handle, inst := newTestInstance(t)
	parent := arena.Get(handle)

	inst.SetUniform("u_tint", device.Float(1))
	if got := len(parent.Uniforms()); got != 0 {
		t.Errorf("expected the parent's set to stay empty, got %d uniforms", got)
	}

	inst.SetParentUniform("u_shared", device.Float(2))
	if got := len(parent.Uniforms()); got != 1 {
		t.Fatalf("expected 1 parent uniform via SetParentUniform, got %d", got)
	}
	if got := len(inst.Uniforms()); got != 1 {
		t.Errorf("expected the instance's set to stay at 1 uniform, got %d", got)
	}
}

func TestInstanceAppliesOnlyOwnUniforms(t *testing.T) {
	dev, arena, handle, inst := newTestInstance(t)
	parent := arena.Get(handle)
	if err := parent.Compile(dev, light.Config{Directional: 1}); err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	parent.SetUniform("u_shared", device.Float(1))
	inst.SetUniform("u_own", device.Float(2))
	inst.LookupLocations(dev)

	inst.ApplyUniforms(dev)
	if len(dev.Applied) != 1 {
		t.Fatalf("expected exactly the instance's uniform to be pushed, got %d pushes", len(dev.Applied))
	}
	program, _ := parent.Program()
	ownLoc, _ := dev.LocationOf(program, "u_own")
	if dev.Applied[0].Location != ownLoc {
		t.Errorf("expected the push at u_own's location %d, got %d", ownLoc, dev.Applied[0].Location)
	}
}

func TestArenaHandles(t *testing.T) {
	arena := NewArena()
	a := arena.Add(NewMaterial(plainVertex, plainFragment, "a"))
	b := arena.Add(NewMaterial(plainVertex, plainFragment, "b"))
	if a == b {
		t.Fatal("expected distinct handles")
	}
	if got := arena.Get(a).ID(); got != "a" {
		t.Errorf("expected handle a to address material %q, got %q", "a", got)
	}
	if got := arena.Len(); got != 2 {
		t.Errorf("expected arena length 2, got %d", got)
	}

	var seen []string
	arena.Each(func(_ Handle, m *Material) {
		seen = append(seen, m.ID())
	})
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("expected Each to visit a then b, got %v", seen)
	}
}
