package universe

import "reflect"

// typeCache is a capacity-bounded registry keyed by type, handing out stable
// integer indices in registration order. The component registry uses one for
// holders, making the cache index double as the component's bit position.
type typeCache[T any] struct {
	items       []T
	itemIndices map[reflect.Type]int
	maxCapacity int
}

func newTypeCache[T any](capacity int) *typeCache[T] {
	return &typeCache[T]{
		itemIndices: make(map[reflect.Type]int),
		maxCapacity: capacity,
	}
}

func (c *typeCache[T]) GetIndex(key reflect.Type) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *typeCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

func (c *typeCache[T]) Register(key reflect.Type, item T) (int, error) {
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, CacheCapacityError{Capacity: c.maxCapacity}
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

func (c *typeCache[T]) Len() int {
	return len(c.items)
}
