package universe

import "reflect"

// Component is the type-erased face of a registered component type.
// Concrete values are produced by RegisterComponent and carry enough
// information to resolve their holder and bit position in any universe
// they were registered with.
type Component interface {
	Type() reflect.Type

	// set writes a boxed value through the holder, marking the presence bit.
	set(u *Universe, id EntityID, value any) bool
}

// System is implemented by embedding BaseSystem in a concrete system type.
// One singleton instance exists per concrete type per universe.
type System interface {
	base() *BaseSystem
}

// Disposer is an optional hook invoked when a system instance is replaced
// or removed from its universe.
type Disposer interface {
	Dispose()
}

// EntityRef addresses either a live entity or one staged for creation on a
// ChangeSet. Entity and PendingEntity are the only implementations.
type EntityRef interface {
	target() changeTarget
}
