package universe

import "github.com/TheBitDrifter/mask"

// MaxComponents is the fixed width of every component-presence bitset.
// Registering more component types than this is a configuration error.
const MaxComponents = 64

// Bitset is a fixed-width set of component bit positions, one bit per
// registered component type. One lives in each entity record; the registry
// mutates it on add/remove and everything else only reads it.
type Bitset struct {
	bits mask.Mask
}

// NewBitset builds a bitset from the low MaxComponents bits of value.
func NewBitset(value uint64) Bitset {
	var b Bitset
	for pos := uint32(0); pos < MaxComponents; pos++ {
		if value&(1<<pos) != 0 {
			b.Set(pos)
		}
	}
	return b
}

// Set marks the bit at pos.
func (b *Bitset) Set(pos uint32) {
	b.bits.Mark(pos)
}

// Clear unmarks the bit at pos.
func (b *Bitset) Clear(pos uint32) {
	b.bits.Unmark(pos)
}

// Reset clears every bit.
func (b *Bitset) Reset() {
	var zero mask.Mask
	b.bits = zero
}

// Test reports whether the bit at pos is set.
func (b Bitset) Test(pos uint32) bool {
	var single mask.Mask
	single.Mark(pos)
	return b.bits.ContainsAll(single)
}

// Count returns the number of set bits.
func (b Bitset) Count() int {
	n := 0
	for pos := uint32(0); pos < MaxComponents; pos++ {
		if b.Test(pos) {
			n++
		}
	}
	return n
}

// Any reports whether at least one bit is set.
func (b Bitset) Any() bool {
	var zero mask.Mask
	return b.bits != zero
}

// None reports whether no bit is set.
func (b Bitset) None() bool {
	return !b.Any()
}

// Equal reports whether both bitsets have the same bits set.
func (b Bitset) Equal(other Bitset) bool {
	return b.bits == other.bits
}
