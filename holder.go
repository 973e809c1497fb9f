package universe

// holder is the uniform, type-erased interface over one component type's
// storage. Implementations must not let a panic escape their caller's
// boundary; the universe wraps every delegation with a recovery guard that
// logs and degrades to nil/false.
type holder interface {
	has(id EntityID) bool
	remove(id EntityID)
	set(id EntityID, value any) bool

	// refresh runs once per universe refresh cycle and may reorganize the
	// backing storage, preserving the logical id→value mapping.
	refresh()

	// clear drops all stored values but keeps the holder registered.
	clear()
}

// typedHolder is the typed face used by ComponentType accessors.
type typedHolder[T any] interface {
	holder
	addTyped(id EntityID) *T
	getTyped(id EntityID) *T
}

// mapHolder is the default strategy: a map keyed by EntityID. Pointers it
// hands out stay stable across refresh.
type mapHolder[T any] struct {
	items map[EntityID]*T
}

func newMapHolder[T any]() *mapHolder[T] {
	return &mapHolder[T]{items: make(map[EntityID]*T)}
}

func (h *mapHolder[T]) addTyped(id EntityID) *T {
	if p, ok := h.items[id]; ok {
		return p
	}
	p := new(T)
	h.items[id] = p
	return p
}

func (h *mapHolder[T]) getTyped(id EntityID) *T {
	return h.items[id]
}

func (h *mapHolder[T]) has(id EntityID) bool {
	_, ok := h.items[id]
	return ok
}

func (h *mapHolder[T]) remove(id EntityID) {
	delete(h.items, id)
}

func (h *mapHolder[T]) set(id EntityID, value any) bool {
	v, ok := value.(T)
	if !ok {
		return false
	}
	*h.addTyped(id) = v
	return true
}

func (h *mapHolder[T]) refresh() {}

func (h *mapHolder[T]) clear() {
	clear(h.items)
}

// denseHolder stores values in a slice indexed by entity slot. Lookup avoids
// hashing, but pointers are invalidated by growth and by refresh compaction,
// so they must not be held across structural mutation.
type denseHolder[T any] struct {
	items   []T
	present []bool
}

func newDenseHolder[T any]() *denseHolder[T] {
	return &denseHolder[T]{}
}

func (h *denseHolder[T]) grow(slot int) {
	for len(h.items) <= slot {
		var zero T
		h.items = append(h.items, zero)
		h.present = append(h.present, false)
	}
}

func (h *denseHolder[T]) addTyped(id EntityID) *T {
	slot := int(id.Index())
	h.grow(slot)
	if !h.present[slot] {
		var zero T
		h.items[slot] = zero
		h.present[slot] = true
	}
	return &h.items[slot]
}

func (h *denseHolder[T]) getTyped(id EntityID) *T {
	slot := int(id.Index())
	if slot >= len(h.items) || !h.present[slot] {
		return nil
	}
	return &h.items[slot]
}

func (h *denseHolder[T]) has(id EntityID) bool {
	slot := int(id.Index())
	return slot < len(h.present) && h.present[slot]
}

func (h *denseHolder[T]) remove(id EntityID) {
	slot := int(id.Index())
	if slot < len(h.present) {
		var zero T
		h.items[slot] = zero
		h.present[slot] = false
	}
}

func (h *denseHolder[T]) set(id EntityID, value any) bool {
	v, ok := value.(T)
	if !ok {
		return false
	}
	*h.addTyped(id) = v
	return true
}

// refresh trims trailing vacant slots so the backing arrays track the high
// water mark of occupied indices.
func (h *denseHolder[T]) refresh() {
	n := len(h.present)
	for n > 0 && !h.present[n-1] {
		n--
	}
	h.items = h.items[:n]
	h.present = h.present[:n]
}

func (h *denseHolder[T]) clear() {
	h.items = h.items[:0]
	h.present = h.present[:0]
}
