package universe

import "github.com/TheBitDrifter/mask"

// Filter declares the component-presence requirements of a group or system.
// An empty filter matches every active entity.
type Filter struct {
	Require []Component
	Reject  []Component
}

// compiledFilter is a filter resolved against a universe's registered bit
// positions. It is immutable after construction and doubles as the identity
// key for group lookup, so two systems declaring the same (require, reject)
// pairing share one group.
type compiledFilter struct {
	require mask.Mask
	reject  mask.Mask
}

func (f compiledFilter) match(b Bitset) bool {
	return b.bits.ContainsAll(f.require) && b.bits.ContainsNone(f.reject)
}

// compileFilter resolves each listed component to its registered bit.
// Filtering on an unregistered type is a programmer error.
func (u *Universe) compileFilter(f Filter) compiledFilter {
	var cf compiledFilter
	for _, c := range f.Require {
		cf.require.Mark(u.mustBitFor(c))
	}
	for _, c := range f.Reject {
		cf.reject.Mark(u.mustBitFor(c))
	}
	return cf
}

func (u *Universe) mustBitFor(c Component) uint32 {
	idx, ok := u.registry.holders.GetIndex(c.Type())
	if !ok {
		panic(UnregisteredComponentError{Type: c.Type()})
	}
	return uint32(idx)
}
