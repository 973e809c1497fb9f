package universe

import (
	"fmt"
	"math"
)

// EntityID packs a slot index (low 32 bits) and a generation counter
// (high 32 bits) into one word. The generation invalidates stale references
// once a slot is recycled.
type EntityID uint64

// NullEntity is the reserved invalid identifier. Slot 0 is never issued.
const NullEntity EntityID = 0

// maxGeneration is a reserved sentinel; stored generations stay below it.
const maxGeneration = math.MaxUint32

func newEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

// Index returns the slot index portion of the identifier.
func (id EntityID) Index() uint32 {
	return uint32(id)
}

// Generation returns the generation portion of the identifier.
func (id EntityID) Generation() uint32 {
	return uint32(id >> 32)
}

// IsNull reports whether the identifier is the reserved null entity.
func (id EntityID) IsNull() bool {
	return id.Index() == 0
}

func (id EntityID) String() string {
	if id.IsNull() {
		return "entity(null)"
	}
	return fmt.Sprintf("entity(%d gen %d)", id.Index(), id.Generation())
}
