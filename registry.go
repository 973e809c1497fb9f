package universe

import (
	"reflect"

	"go.uber.org/zap"
)

// componentRegistry maps each registered component type to a bit position and
// an owned holder. Registration is monotonic and closes at Init.
type componentRegistry struct {
	holders *typeCache[holder]
	log     *zap.Logger
	sealed  bool
}

func newComponentRegistry(log *zap.Logger) componentRegistry {
	return componentRegistry{
		holders: newTypeCache[holder](MaxComponents),
		log:     log,
	}
}

// register assigns the next free bit to typ and constructs its holder.
// A repeat registration of the same type warns and returns the existing bit.
func (r *componentRegistry) register(typ reflect.Type, build func() holder) uint32 {
	if idx, ok := r.holders.GetIndex(typ); ok {
		r.log.Warn("component type already registered",
			zap.Stringer("type", typ),
			zap.Int("bit", idx))
		return uint32(idx)
	}
	if r.sealed {
		panic(RegistrationClosedError{Type: typ})
	}
	idx, err := r.holders.Register(typ, build())
	if err != nil {
		panic(ComponentLimitError{Limit: MaxComponents})
	}
	return uint32(idx)
}

func (r *componentRegistry) holderAt(bit uint32) holder {
	return *r.holders.GetItem(int(bit))
}

// refresh gives each holder a compaction opportunity, once per cycle.
func (r *componentRegistry) refresh() {
	for bit := 0; bit < r.holders.Len(); bit++ {
		h := *r.holders.GetItem(bit)
		func() {
			defer r.guard("refresh")
			h.refresh()
		}()
	}
}

// clearAll drops every holder's data but keeps the registered type slots.
func (r *componentRegistry) clearAll() {
	for bit := 0; bit < r.holders.Len(); bit++ {
		h := *r.holders.GetItem(bit)
		func() {
			defer r.guard("clear")
			h.clear()
		}()
	}
}

// removeAll detaches every component named by bits from id. Used on destroy
// so holders never accumulate entries for dead identifiers.
func (r *componentRegistry) removeAll(id EntityID, bits Bitset) {
	for bit := uint32(0); bit < uint32(r.holders.Len()); bit++ {
		if bits.Test(bit) {
			func() {
				defer r.guard("remove")
				r.holderAt(bit).remove(id)
			}()
		}
	}
}

// guard is the holder boundary: a panicking storage operation is converted
// into a logged warning and the operation degrades to a no-op.
func (r *componentRegistry) guard(op string) {
	if rec := recover(); rec != nil {
		r.log.Warn("component holder recovered",
			zap.String("op", op),
			zap.Any("panic", rec))
	}
}
