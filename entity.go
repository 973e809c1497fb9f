package universe

// Entity pairs an identifier with its universe, giving handle sugar that
// forwards to the registry. The zero Entity is null and inert.
type Entity struct {
	id       EntityID
	universe *Universe
}

// ID returns the packed identifier.
func (e Entity) ID() EntityID {
	return e.id
}

// Universe returns the owning universe, nil for the zero handle.
func (e Entity) Universe() *Universe {
	return e.universe
}

// Valid reports whether the handle still references a live slot.
func (e Entity) Valid() bool {
	return e.universe != nil && e.universe.index.valid(e.id)
}

// Active reports whether the entity participates in group membership.
func (e Entity) Active() bool {
	return e.Valid() && e.universe.index.active(e.id)
}

// Activate resumes group participation as of the next refresh.
func (e Entity) Activate() {
	if e.Valid() {
		e.universe.index.activate(e.id)
	}
}

// Deactivate pauses the entity: it stays valid and keeps its components but
// leaves every group on the next refresh.
func (e Entity) Deactivate() {
	if e.Valid() {
		e.universe.index.deactivate(e.id)
	}
}

// Destroy invalidates the entity and detaches all of its components.
// Returns false if the handle was already stale.
func (e Entity) Destroy() bool {
	if e.universe == nil {
		return false
	}
	return e.universe.DestroyEntity(e.id)
}

// Has reports whether the entity currently carries c.
func (e Entity) Has(c Component) bool {
	if !e.Valid() {
		return false
	}
	return e.universe.hasComponent(e.id, c)
}

// Remove detaches c from the entity; absent components are a silent no-op.
func (e Entity) Remove(c Component) {
	if !e.Valid() {
		return
	}
	e.universe.removeComponent(e.id, c)
}

func (e Entity) String() string {
	return e.id.String()
}

func (e Entity) target() changeTarget {
	return changeTarget{id: e.id, pending: -1}
}
