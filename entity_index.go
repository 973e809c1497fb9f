package universe

// entityRecord is the per-slot bookkeeping owned exclusively by entityIndex.
// active=false marks a paused or destroyed slot; destruction additionally
// bumps the generation and recycles the index.
type entityRecord struct {
	bits       Bitset
	generation uint32
	active     bool
}

// entityIndex is the generational allocator. It issues and recycles slot
// indices with no knowledge of components beyond storing each record's
// presence bitset.
type entityIndex struct {
	// records[0] is the reserved null slot and is never issued.
	records     []entityRecord
	free        []uint32 // FIFO, oldest freed index first
	maxEntities uint32
	minFree     int
}

func newEntityIndex(maxEntities uint32, minFree int) entityIndex {
	return entityIndex{
		records:     make([]entityRecord, 1, 64),
		maxEntities: maxEntities,
		minFree:     minFree,
	}
}

// create issues an identifier. Indices are recycled FIFO and only once the
// free queue holds strictly more than minFree entries, which widens the
// generation gap between reuse of any one slot. Returns NullEntity when the
// configured capacity is exhausted.
func (ei *entityIndex) create() EntityID {
	if len(ei.free) > ei.minFree {
		slot := ei.free[0]
		ei.free = ei.free[1:]
		rec := &ei.records[slot]
		rec.active = true
		rec.bits.Reset()
		return newEntityID(slot, rec.generation)
	}
	if uint32(len(ei.records)) >= ei.maxEntities {
		return NullEntity
	}
	ei.records = append(ei.records, entityRecord{active: true})
	return newEntityID(uint32(len(ei.records)-1), 0)
}

// destroy invalidates id, bumps its slot's generation, and queues the index
// for reuse. Returns false for an already-stale id.
func (ei *entityIndex) destroy(id EntityID) bool {
	if !ei.valid(id) {
		return false
	}
	rec := &ei.records[id.Index()]
	rec.bits.Reset()
	rec.active = false
	rec.generation = (rec.generation + 1) % maxGeneration
	ei.free = append(ei.free, id.Index())
	return true
}

// valid reports whether id references a live slot with a matching generation.
func (ei *entityIndex) valid(id EntityID) bool {
	idx := id.Index()
	return idx >= 1 && idx < uint32(len(ei.records)) && ei.records[idx].generation == id.Generation()
}

// activate and deactivate toggle the slot flag without bounds checking;
// callers must have validated id.
func (ei *entityIndex) activate(id EntityID)   { ei.records[id.Index()].active = true }
func (ei *entityIndex) deactivate(id EntityID) { ei.records[id.Index()].active = false }

// active is the unchecked fast path; callers must have validated id.
func (ei *entityIndex) active(id EntityID) bool {
	return ei.records[id.Index()].active
}

func (ei *entityIndex) record(id EntityID) *entityRecord {
	return &ei.records[id.Index()]
}

// liveCount returns the number of issued, non-destroyed slots. Paused slots
// count as live.
func (ei *entityIndex) liveCount() int {
	return len(ei.records) - 1 - len(ei.free)
}

// reset drops every record and the entire free queue, so creation after a
// reset replays identically to a fresh index.
func (ei *entityIndex) reset() {
	ei.records = ei.records[:1]
	ei.free = nil
}
