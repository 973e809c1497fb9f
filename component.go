package universe

import (
	"reflect"

	"go.uber.org/zap"
)

// ComponentType is the typed handle for one registered component type. It is
// cheap to copy and resolves its bit position and holder through the entity's
// universe on every access, so one handle works with any universe the type
// was registered with.
type ComponentType[T any] struct {
	typ reflect.Type
}

type componentOptions struct {
	dense bool
}

// ComponentOption configures a component type at registration.
type ComponentOption func(*componentOptions)

// WithDenseStorage selects the slot-indexed storage strategy instead of the
// default map. Dense pointers are not stable across refresh.
func WithDenseStorage() ComponentOption {
	return func(o *componentOptions) {
		o.dense = true
	}
}

// RegisterComponent registers T with the universe and returns its handle.
// Registration must happen before Init; a second registration of the same
// type warns and returns a handle to the existing slot.
func RegisterComponent[T any](u *Universe, opts ...ComponentOption) ComponentType[T] {
	var cfg componentOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	c := ComponentType[T]{typ: reflect.TypeFor[T]()}
	u.registry.register(c.typ, func() holder {
		if cfg.dense {
			return newDenseHolder[T]()
		}
		return newMapHolder[T]()
	})
	return c
}

// Type returns the registered Go type.
func (c ComponentType[T]) Type() reflect.Type {
	return c.typ
}

// Add attaches a zero-valued T to e and returns a pointer to it. If the
// component already exists the existing instance is returned unchanged.
// Returns nil for a stale entity.
func (c ComponentType[T]) Add(e Entity) (out *T) {
	u := e.universe
	if u == nil || !u.index.valid(e.id) {
		return nil
	}
	h := c.resolve(u)
	defer u.registry.guard("add")
	out = h.addTyped(e.id)
	u.index.record(e.id).bits.Set(u.mustBitFor(c))
	return out
}

// Set attaches T to e with the given value, overwriting any existing value,
// and returns the stored pointer.
func (c ComponentType[T]) Set(e Entity, value T) *T {
	p := c.Add(e)
	if p != nil {
		*p = value
	}
	return p
}

// Get returns e's component or nil if absent or stale.
func (c ComponentType[T]) Get(e Entity) (out *T) {
	u := e.universe
	if u == nil || !u.index.valid(e.id) {
		return nil
	}
	h := c.resolve(u)
	defer u.registry.guard("get")
	return h.getTyped(e.id)
}

// Has reports whether e currently carries the component.
func (c ComponentType[T]) Has(e Entity) bool {
	u := e.universe
	if u == nil || !u.index.valid(e.id) {
		return false
	}
	return u.hasComponent(e.id, c)
}

// Remove detaches the component from e. Removing an absent component is a
// silent no-op.
func (c ComponentType[T]) Remove(e Entity) {
	u := e.universe
	if u == nil || !u.index.valid(e.id) {
		return
	}
	u.removeComponent(e.id, c)
}

// resolve panics with UnregisteredComponentError when T was never registered
// with u; using an unregistered type is a programmer error.
func (c ComponentType[T]) resolve(u *Universe) typedHolder[T] {
	idx, ok := u.registry.holders.GetIndex(c.typ)
	if !ok {
		panic(UnregisteredComponentError{Type: c.typ})
	}
	th, ok := u.registry.holderAt(uint32(idx)).(typedHolder[T])
	if !ok {
		// Holder strategy mismatch can only happen if two distinct types
		// alias the same reflect.Type, which reflect rules out.
		u.log.Warn("holder type assertion failed", zap.Stringer("type", c.typ))
		panic(UnregisteredComponentError{Type: c.typ})
	}
	return th
}

func (c ComponentType[T]) set(u *Universe, id EntityID, value any) (ok bool) {
	if !u.index.valid(id) {
		return false
	}
	h := c.resolve(u)
	defer u.registry.guard("set")
	if !h.set(id, value) {
		u.log.Warn("component value type mismatch",
			zap.Stringer("type", c.typ),
			zap.Stringer("entity", id))
		return false
	}
	u.index.record(id).bits.Set(u.mustBitFor(c))
	return true
}
