package universe

import "iter"

// EntityGroup is the cached set of entities matching one (require, reject)
// filter, plus this refresh cycle's membership deltas. Groups are created
// lazily, live for the universe's lifetime, and are mutated only by the
// refresh machinery; everything else reads.
type EntityGroup struct {
	u       *Universe
	filter  compiledFilter
	id      uint64
	members []EntityID
	index   map[EntityID]int
	added   []EntityID
	removed []EntityID
}

func newEntityGroup(u *Universe, filter compiledFilter, id uint64) *EntityGroup {
	return &EntityGroup{
		u:      u,
		filter: filter,
		id:     id,
		index:  make(map[EntityID]int),
	}
}

// ID returns the group's creation-ordered identifier.
func (g *EntityGroup) ID() uint64 {
	return g.id
}

// Len returns the current member count.
func (g *EntityGroup) Len() int {
	return len(g.members)
}

// AddedLen and RemovedLen return the sizes of this cycle's deltas.
func (g *EntityGroup) AddedLen() int   { return len(g.added) }
func (g *EntityGroup) RemovedLen() int { return len(g.removed) }

// Contains reports whether id was a member as of the last refresh.
func (g *EntityGroup) Contains(id EntityID) bool {
	_, ok := g.index[id]
	return ok
}

// Each iterates the stable membership in insertion order. The sequence is
// restartable and read-only.
func (g *EntityGroup) Each() iter.Seq[Entity] {
	return g.sequence(&g.members)
}

// EachAdded iterates the entities that entered the group this refresh cycle.
func (g *EntityGroup) EachAdded() iter.Seq[Entity] {
	return g.sequence(&g.added)
}

// EachRemoved iterates the entities that left the group this refresh cycle.
// Their handles may already be stale if the entity was destroyed.
func (g *EntityGroup) EachRemoved() iter.Seq[Entity] {
	return g.sequence(&g.removed)
}

func (g *EntityGroup) sequence(ids *[]EntityID) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, id := range *ids {
			if !yield(Entity{id: id, universe: g.u}) {
				return
			}
		}
	}
}

// refresh reconciles membership against the current entity records. Both
// delta lists are cleared and repopulated; members that neither enter nor
// leave keep their relative order.
func (g *EntityGroup) refresh(ei *entityIndex) {
	g.added = g.added[:0]
	g.removed = g.removed[:0]

	// Compact current members in place, dropping stale, paused, and
	// no-longer-matching entities.
	w := 0
	for _, id := range g.members {
		if g.matches(ei, id) {
			g.index[id] = w
			g.members[w] = id
			w++
		} else {
			delete(g.index, id)
			g.removed = append(g.removed, id)
		}
	}
	g.members = g.members[:w]

	// Scan live records for new matches, in slot order.
	for slot := uint32(1); slot < uint32(len(ei.records)); slot++ {
		rec := &ei.records[slot]
		if !rec.active {
			continue
		}
		if !g.filter.match(rec.bits) {
			continue
		}
		id := newEntityID(slot, rec.generation)
		if _, member := g.index[id]; member {
			continue
		}
		g.index[id] = len(g.members)
		g.members = append(g.members, id)
		g.added = append(g.added, id)
	}
}

func (g *EntityGroup) matches(ei *entityIndex, id EntityID) bool {
	if !ei.valid(id) {
		return false
	}
	rec := ei.record(id)
	return rec.active && g.filter.match(rec.bits)
}

// clearMembership empties the group without touching its filter or identity.
func (g *EntityGroup) clearMembership() {
	g.members = g.members[:0]
	g.added = g.added[:0]
	g.removed = g.removed[:0]
	clear(g.index)
}

// groupManager owns every group, keyed by filter identity.
type groupManager struct {
	groups   []*EntityGroup
	byFilter map[compiledFilter]*EntityGroup
	nextID   uint64
}

func newGroupManager() groupManager {
	return groupManager{
		byFilter: make(map[compiledFilter]*EntityGroup),
		nextID:   1,
	}
}

// addGet returns the singleton group for filter, creating it on first use.
// The returned pointer stays valid for the universe's lifetime.
func (gm *groupManager) addGet(u *Universe, filter compiledFilter) *EntityGroup {
	if g, ok := gm.byFilter[filter]; ok {
		return g
	}
	g := newEntityGroup(u, filter, gm.nextID)
	gm.nextID++
	gm.byFilter[filter] = g
	gm.groups = append(gm.groups, g)
	return g
}

func (gm *groupManager) refresh(ei *entityIndex) {
	for _, g := range gm.groups {
		g.refresh(ei)
	}
}

func (gm *groupManager) reset() {
	for _, g := range gm.groups {
		g.clearMembership()
	}
}
