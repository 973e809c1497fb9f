package universe

import (
	"iter"

	"go.uber.org/zap"
)

// Universe composes the entity index, component registry, group manager, and
// system registry behind one façade owning the refresh protocol. All direct
// mutation belongs to a single designated thread; concurrent producers stage
// work on ChangeSets and commit at a caller-serialized point.
//
// Lifecycle: RegisterComponent/AddSystem → Init → (mutate ⇄ Refresh)* → Reset.
type Universe struct {
	cfg      Config
	log      *zap.Logger
	index    entityIndex
	registry componentRegistry
	groups   groupManager
	systems  systemRegistry

	// committed holds changesets handed over by CommitChangeSet, applied as
	// the first step of the next Refresh.
	committed []*ChangeSet

	all         *EntityGroup
	initialized bool
}

func newUniverse(cfg Config) *Universe {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Universe{
		cfg:      cfg,
		log:      log,
		index:    newEntityIndex(cfg.MaxEntities, cfg.MinFreeIndices),
		registry: newComponentRegistry(log),
		groups:   newGroupManager(),
		systems:  newSystemRegistry(),
	}
}

// Init closes component registration and builds the base all-entities group.
// Idempotent; a second call is a no-op.
func (u *Universe) Init() {
	if u.initialized {
		return
	}
	u.registry.sealed = true
	u.all = u.groups.addGet(u, compiledFilter{})
	u.initialized = true
}

// Initialized reports whether Init has run.
func (u *Universe) Initialized() bool {
	return u.initialized
}

// CreateEntity mints a fresh entity with a cleared bitset. When the
// configured capacity is exhausted the null handle is returned and a warning
// is logged; callers must check Valid on the result if they run near the cap.
func (u *Universe) CreateEntity() Entity {
	u.mustBeInitialized("CreateEntity")
	id := u.index.create()
	if id == NullEntity {
		u.log.Warn("entity capacity exhausted",
			zap.Uint32("max_entities", u.cfg.MaxEntities))
	}
	return Entity{id: id, universe: u}
}

// CreateEntityWithID would mint an entity under a caller-chosen identifier.
// Not implemented; logs a warning and returns the null handle.
func (u *Universe) CreateEntityWithID(id EntityID) Entity {
	u.log.Warn("CreateEntityWithID is not implemented", zap.Stringer("id", id))
	return Entity{id: NullEntity, universe: u}
}

// CreateEntities would mint n sequentially indexed entities in one call.
// Not implemented; logs a warning and returns an empty slice.
func (u *Universe) CreateEntities(n int) []Entity {
	u.log.Warn("sequential batch creation is not implemented", zap.Int("count", n))
	return nil
}

// DestroyEntity invalidates id, detaches its components, bumps the slot
// generation, and queues the index for recycling. Returns false for a stale
// id. Group membership catches up on the next Refresh.
func (u *Universe) DestroyEntity(id EntityID) bool {
	if !u.index.valid(id) {
		return false
	}
	u.registry.removeAll(id, u.index.record(id).bits)
	return u.index.destroy(id)
}

// Valid reports whether id references a live slot with a matching generation.
func (u *Universe) Valid(id EntityID) bool {
	return u.index.valid(id)
}

// Active reports id's participation flag. The id must be valid.
func (u *Universe) Active(id EntityID) bool {
	return u.index.active(id)
}

// Activate and Deactivate toggle group participation as of the next refresh.
// The id must be valid; these are unchecked fast paths.
func (u *Universe) Activate(id EntityID)   { u.index.activate(id) }
func (u *Universe) Deactivate(id EntityID) { u.index.deactivate(id) }

// EntityCount returns the number of live (including paused) entities.
func (u *Universe) EntityCount() int {
	return u.index.liveCount()
}

// Handle wraps id in an Entity bound to this universe. The id is not
// validated; a stale handle simply reports Valid()==false.
func (u *Universe) Handle(id EntityID) Entity {
	return Entity{id: id, universe: u}
}

// AddGetGroup returns the singleton group for filter, creating it lazily.
// The pointer stays valid for the universe's lifetime. Filtering on an
// unregistered component type is a programmer error.
func (u *Universe) AddGetGroup(filter Filter) *EntityGroup {
	return u.groups.addGet(u, u.compileFilter(filter))
}

// Entities iterates the base all-entities group as of the last refresh.
func (u *Universe) Entities() iter.Seq[Entity] {
	u.mustBeInitialized("Entities")
	return u.all.Each()
}

// Refresh is the single synchronization point reconciling pending mutations
// into stable group membership. Order: committed changesets apply first,
// holders compact second, and groups recompute membership and deltas last.
// The embedding application calls this once per logical tick.
func (u *Universe) Refresh() {
	u.mustBeInitialized("Refresh")
	for _, cs := range u.committed {
		u.applyChangeSet(cs)
	}
	u.committed = u.committed[:0]
	u.registry.refresh()
	u.groups.refresh(&u.index)
}

// Reset tears down all entities, holder data, group memberships, and pending
// changesets, returning the universe to its post-Init state. Registered
// component types, groups, and system bindings survive.
func (u *Universe) Reset() {
	u.index.reset()
	u.registry.clearAll()
	u.groups.reset()
	u.committed = u.committed[:0]
}

// NewChangeSet returns an empty staging buffer bound to this universe.
func (u *Universe) NewChangeSet() *ChangeSet {
	return &ChangeSet{u: u}
}

// CommitChangeSet hands a staged buffer to the universe for application at
// the next Refresh. Commits mutate shared state and must be serialized by
// the caller; the universe provides no internal lock for this merge.
// A changeset commits exactly once; repeats warn and are ignored.
func (u *Universe) CommitChangeSet(cs *ChangeSet) {
	if cs == nil {
		return
	}
	if cs.u != u {
		u.log.Warn("changeset committed to a foreign universe")
		return
	}
	if cs.committed {
		u.log.Warn("changeset committed twice")
		return
	}
	cs.committed = true
	u.committed = append(u.committed, cs)
}

// hasComponent and removeComponent are the type-erased delegation paths
// shared by Entity sugar, ComponentType handles, and changeset application.
func (u *Universe) hasComponent(id EntityID, c Component) (ok bool) {
	bit := u.mustBitFor(c)
	defer u.registry.guard("has")
	return u.registry.holderAt(bit).has(id)
}

func (u *Universe) removeComponent(id EntityID, c Component) {
	bit := u.mustBitFor(c)
	defer u.registry.guard("remove")
	u.registry.holderAt(bit).remove(id)
	u.index.record(id).bits.Clear(bit)
}

func (u *Universe) mustBeInitialized(op string) {
	if !u.initialized {
		panic(UninitializedUniverseError{Op: op})
	}
}
