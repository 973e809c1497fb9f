package universe

import "reflect"

// ChangeSet is a thread-local buffer of pending entity and component
// mutations. A worker stages operations without touching authoritative state;
// CommitChangeSet hands the buffer over and the next Refresh applies it
// exactly once, creations first and the remaining operations in stage order.
//
// The zero value is an empty buffer ready for staging; Universe.NewChangeSet
// additionally binds the buffer to its universe, which CommitChangeSet
// requires.
type ChangeSet struct {
	u       *Universe
	ops     []changeOp
	pending int // count of staged entity creations

	// destroys suppresses later staging against a doomed target; mods gives
	// each (target, component) pair a single slot so a restage overwrites
	// in place instead of appending.
	destroys  map[changeTarget]struct{}
	mods      map[modKey]int
	committed bool
}

type changeKind int

const (
	changeCancelled changeKind = iota - 1
	changeAdd
	changeRemove
	changeActivate
	changeDeactivate
	changeDestroy
)

// changeTarget addresses a live entity (pending == -1) or the n-th entity
// staged for creation on the same changeset.
type changeTarget struct {
	id      EntityID
	pending int
}

type modKey struct {
	target changeTarget
	typ    reflect.Type
}

type changeOp struct {
	kind   changeKind
	target changeTarget
	comp   Component
	value  any
}

// PendingEntity is the deferred view of an entity staged for creation. It
// becomes a real entity when the changeset applies.
type PendingEntity struct {
	cs   *ChangeSet
	slot int
}

func (p PendingEntity) target() changeTarget {
	return changeTarget{pending: p.slot}
}

// CreateEntity stages the creation of a fresh entity and returns its
// deferred view for further staging.
func (cs *ChangeSet) CreateEntity() PendingEntity {
	slot := cs.pending
	cs.pending++
	return PendingEntity{cs: cs, slot: slot}
}

// StageComponent stages attaching value to ref. Restaging the same component
// on the same target overwrites the earlier staged operation in place.
func StageComponent[T any](cs *ChangeSet, ref EntityRef, c ComponentType[T], value T) {
	cs.stageMod(changeOp{
		kind:   changeAdd,
		target: ref.target(),
		comp:   c,
		value:  value,
	})
}

// RemoveComponent stages detaching c from ref.
func (cs *ChangeSet) RemoveComponent(ref EntityRef, c Component) {
	cs.stageMod(changeOp{
		kind:   changeRemove,
		target: ref.target(),
		comp:   c,
	})
}

// Activate stages resuming group participation for ref.
func (cs *ChangeSet) Activate(ref EntityRef) {
	cs.stage(changeOp{kind: changeActivate, target: ref.target()})
}

// Deactivate stages pausing ref.
func (cs *ChangeSet) Deactivate(ref EntityRef) {
	cs.stage(changeOp{kind: changeDeactivate, target: ref.target()})
}

// Destroy stages destroying ref. Component operations already staged against
// ref are cancelled and later ones are ignored.
func (cs *ChangeSet) Destroy(ref EntityRef) {
	t := ref.target()
	if _, doomed := cs.destroys[t]; doomed {
		return
	}
	if cs.destroys == nil {
		cs.destroys = make(map[changeTarget]struct{})
	}
	cs.destroys[t] = struct{}{}
	for key, idx := range cs.mods {
		if key.target == t {
			cs.ops[idx].kind = changeCancelled
			delete(cs.mods, key)
		}
	}
	cs.ops = append(cs.ops, changeOp{kind: changeDestroy, target: t})
}

// Len returns the number of live staged operations plus staged creations.
func (cs *ChangeSet) Len() int {
	n := cs.pending
	for _, op := range cs.ops {
		if op.kind != changeCancelled {
			n++
		}
	}
	return n
}

func (cs *ChangeSet) stage(op changeOp) {
	if _, doomed := cs.destroys[op.target]; doomed {
		return
	}
	cs.ops = append(cs.ops, op)
}

func (cs *ChangeSet) stageMod(op changeOp) {
	if _, doomed := cs.destroys[op.target]; doomed {
		return
	}
	key := modKey{target: op.target, typ: op.comp.Type()}
	if idx, ok := cs.mods[key]; ok {
		cs.ops[idx] = op
		return
	}
	if cs.mods == nil {
		cs.mods = make(map[modKey]int)
	}
	cs.mods[key] = len(cs.ops)
	cs.ops = append(cs.ops, op)
}

// applyChangeSet realizes staged creations, then replays the operations in
// stage order against authoritative state. Runs inside Refresh.
func (u *Universe) applyChangeSet(cs *ChangeSet) {
	realized := make([]EntityID, cs.pending)
	for i := range realized {
		id := u.index.create()
		if id == NullEntity {
			u.log.Warn("entity capacity exhausted while applying changeset")
		}
		realized[i] = id
	}
	for _, op := range cs.ops {
		id := op.target.id
		if op.target.pending >= 0 {
			id = realized[op.target.pending]
		}
		if id == NullEntity {
			continue
		}
		switch op.kind {
		case changeAdd:
			op.comp.set(u, id, op.value)
		case changeRemove:
			if u.index.valid(id) {
				u.removeComponent(id, op.comp)
			}
		case changeActivate:
			if u.index.valid(id) {
				u.index.activate(id)
			}
		case changeDeactivate:
			if u.index.valid(id) {
				u.index.deactivate(id)
			}
		case changeDestroy:
			u.DestroyEntity(id)
		}
	}
}
