package universe

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Health struct {
	Current, Max int
}

func TestRegisterComponentIdempotent(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := testConfig(0)
	cfg.Logger = zap.New(core)
	u := Factory.NewUniverse(cfg)

	first := RegisterComponent[Position](u)
	second := RegisterComponent[Position](u)
	u.Init()

	if first.Type() != second.Type() {
		t.Errorf("repeat registration returned a different type: %v vs %v", first.Type(), second.Type())
	}
	if got := logs.FilterMessage("component type already registered").Len(); got != 1 {
		t.Errorf("duplicate registration warnings = %d, want 1", got)
	}

	// Both handles must resolve to the same storage.
	e := u.CreateEntity()
	p := first.Add(e)
	p.X = 42
	if got := second.Get(e); got == nil || got.X != 42 {
		t.Errorf("second handle sees %v, want the instance stored via the first", got)
	}
}

func TestRegisterAfterInitPanics(t *testing.T) {
	u := Factory.NewDefaultUniverse()
	RegisterComponent[Position](u)
	u.Init()

	defer func() {
		if _, ok := recover().(RegistrationClosedError); !ok {
			t.Error("registering after Init did not panic with RegistrationClosedError")
		}
	}()
	RegisterComponent[Velocity](u)
}

func TestAddIdempotent(t *testing.T) {
	tests := []struct {
		name string
		opts []ComponentOption
	}{
		{"Map holder", nil},
		{"Dense holder", []ComponentOption{WithDenseStorage()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := Factory.NewUniverse(testConfig(0))
			pos := RegisterComponent[Position](u, tt.opts...)
			u.Init()

			e := u.CreateEntity()
			p1 := pos.Add(e)
			if p1 == nil {
				t.Fatal("add returned nil for a live entity")
			}
			p1.X = 7
			p2 := pos.Add(e)
			if p1 != p2 {
				t.Error("second add returned a different pointer")
			}
			if p2.X != 7 {
				t.Error("second add reconstructed the component")
			}
		})
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	pos := RegisterComponent[Position](u)
	u.Init()

	e := u.CreateEntity()
	pos.Remove(e) // never added
	if pos.Has(e) {
		t.Error("absent component reported present after no-op remove")
	}
}

func TestComponentLifecycle(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	pos := RegisterComponent[Position](u)
	hp := RegisterComponent[Health](u, WithDenseStorage())
	u.Init()

	e := u.CreateEntity()
	if pos.Has(e) || pos.Get(e) != nil {
		t.Fatal("fresh entity reports a component it never had")
	}

	pos.Set(e, Position{X: 1, Y: 2})
	hp.Set(e, Health{Current: 10, Max: 10})

	if !pos.Has(e) || !hp.Has(e) {
		t.Error("set components not reported present")
	}
	if got := pos.Get(e); got == nil || got.X != 1 || got.Y != 2 {
		t.Errorf("position = %v, want {1 2}", got)
	}

	pos.Remove(e)
	if pos.Has(e) || pos.Get(e) != nil {
		t.Error("removed component still visible")
	}
	if !hp.Has(e) {
		t.Error("removing one component disturbed another")
	}
}

func TestComponentsDetachOnDestroy(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	pos := RegisterComponent[Position](u)
	u.Init()

	e := u.CreateEntity()
	pos.Add(e)
	id := e.ID()
	u.DestroyEntity(id)

	// The recycled slot must come back without the old slot's data.
	reborn := u.CreateEntity()
	if reborn.ID().Index() != id.Index() {
		t.Fatalf("slot not recycled: %v", reborn.ID())
	}
	if pos.Has(reborn) {
		t.Error("recycled entity inherited a component from its previous life")
	}
}

func TestStaleHandleAccess(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	pos := RegisterComponent[Position](u)
	u.Init()

	e := u.CreateEntity()
	pos.Add(e)
	u.DestroyEntity(e.ID())

	if pos.Add(e) != nil {
		t.Error("add through a stale handle returned a pointer")
	}
	if pos.Get(e) != nil {
		t.Error("get through a stale handle returned a pointer")
	}
	if pos.Has(e) {
		t.Error("has through a stale handle returned true")
	}
}

// faultyHolder panics on every storage operation, standing in for a holder
// implementation that violates its contract.
type faultyHolder[T any] struct{}

func (faultyHolder[T]) has(EntityID) bool      { panic("storage fault") }
func (faultyHolder[T]) remove(EntityID)        { panic("storage fault") }
func (faultyHolder[T]) set(EntityID, any) bool { panic("storage fault") }
func (faultyHolder[T]) refresh()               { panic("storage fault") }
func (faultyHolder[T]) clear()                 { panic("storage fault") }
func (faultyHolder[T]) addTyped(EntityID) *T   { panic("storage fault") }
func (faultyHolder[T]) getTyped(EntityID) *T   { panic("storage fault") }

func TestHolderPanicRecovery(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := testConfig(0)
	cfg.Logger = zap.New(core)
	u := Factory.NewUniverse(cfg)
	u.registry.register(reflect.TypeFor[Health](), func() holder {
		return faultyHolder[Health]{}
	})
	hp := ComponentType[Health]{typ: reflect.TypeFor[Health]()}
	u.Init()

	e := u.CreateEntity()
	if p := hp.Add(e); p != nil {
		t.Error("add against a panicking holder returned a pointer")
	}
	if p := hp.Get(e); p != nil {
		t.Error("get against a panicking holder returned a pointer")
	}
	if hp.Has(e) {
		t.Error("has against a panicking holder returned true")
	}
	hp.Remove(e) // must degrade to a no-op
	u.Refresh()  // per-holder refresh is guarded
	u.Reset()    // so is clearAll

	// One recovery warning per boundary crossing: add, get, has, remove,
	// refresh, clear.
	if got := logs.FilterMessage("component holder recovered").Len(); got != 6 {
		t.Errorf("recovery warnings = %d, want 6", got)
	}
}

func TestUnregisteredComponentPanics(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	RegisterComponent[Position](u)
	u.Init()
	e := u.CreateEntity()

	defer func() {
		if _, ok := recover().(UnregisteredComponentError); !ok {
			t.Error("accessing an unregistered component type did not panic")
		}
	}()
	vel := ComponentType[Velocity]{typ: reflect.TypeFor[Velocity]()}
	vel.Get(e)
}
