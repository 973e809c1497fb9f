package universe

import (
	"iter"
	"reflect"
)

// BaseSystem carries the group binding shared by every concrete system.
// Embed it by value in a system struct and register a pointer to the struct;
// AddSystem wires the binding and marks the system initialized.
type BaseSystem struct {
	universe    *Universe
	group       *EntityGroup
	initialized bool
}

func (b *BaseSystem) base() *BaseSystem { return b }

// Initialized reports whether the system is bound to a group.
func (b *BaseSystem) Initialized() bool {
	return b.initialized
}

// Universe returns the owning universe, nil before registration.
func (b *BaseSystem) Universe() *Universe {
	return b.universe
}

// Group returns the bound group. Calling it on an unbound system is a
// contract violation.
func (b *BaseSystem) Group() *EntityGroup {
	b.mustBeBound()
	return b.group
}

// Each iterates all current members of the bound group.
func (b *BaseSystem) Each() iter.Seq[Entity] {
	b.mustBeBound()
	return b.group.Each()
}

// EachAdded iterates the entities that newly matched this refresh cycle.
func (b *BaseSystem) EachAdded() iter.Seq[Entity] {
	b.mustBeBound()
	return b.group.EachAdded()
}

// EachRemoved iterates the entities that stopped matching this refresh cycle.
func (b *BaseSystem) EachRemoved() iter.Seq[Entity] {
	b.mustBeBound()
	return b.group.EachRemoved()
}

func (b *BaseSystem) mustBeBound() {
	if !b.initialized {
		panic(SystemUnboundError{})
	}
}

// systemRegistry owns one singleton instance per concrete system type.
type systemRegistry struct {
	systems map[reflect.Type]System
}

func newSystemRegistry() systemRegistry {
	return systemRegistry{systems: make(map[reflect.Type]System)}
}

// AddSystem registers sys as the singleton for its concrete type, binding it
// to the group for filter. Registering a second instance of the same type
// disposes and replaces the first, so system state fully resets on re-add.
func (u *Universe) AddSystem(sys System, filter Filter) {
	key := reflect.TypeOf(sys)
	if old, ok := u.systems.systems[key]; ok {
		unbindSystem(old)
	}
	b := sys.base()
	b.universe = u
	b.group = u.groups.addGet(u, u.compileFilter(filter))
	b.initialized = true
	u.systems.systems[key] = sys
}

// GetSystem returns the singleton of concrete type S, or false if never added.
func GetSystem[S System](u *Universe) (S, bool) {
	sys, ok := u.systems.systems[reflect.TypeFor[S]()]
	if !ok {
		var zero S
		return zero, false
	}
	return sys.(S), true
}

// RemoveSystem disposes and forgets the singleton of concrete type S.
func RemoveSystem[S System](u *Universe) {
	key := reflect.TypeFor[S]()
	if sys, ok := u.systems.systems[key]; ok {
		unbindSystem(sys)
		delete(u.systems.systems, key)
	}
}

func unbindSystem(sys System) {
	b := sys.base()
	b.universe = nil
	b.group = nil
	b.initialized = false
	if d, ok := sys.(Disposer); ok {
		d.Dispose()
	}
}
