/*
Package universe provides an Entity-Component-System (ECS) runtime for games and simulations.

Universe stores per-entity data in type-segregated holders, tracks entity
lifecycle through generation-checked identifiers, and lets systems iterate
cached groups of entities matching a component-presence filter.

Core Concepts:

  - Entity: A generational identifier plus a component-presence bitset.
  - Component: A plain data record attached to at most one entity slot.
  - Holder: The storage engine for one component type.
  - Group: The cached set of entities matching one (require, reject) filter.
  - System: A processing unit bound to a group, iterating its members and
    this cycle's added/removed deltas.

Basic Usage:

	// Create a universe and register component types
	u := universe.Factory.NewUniverse(universe.DefaultConfig())
	position := universe.RegisterComponent[Position](u)
	velocity := universe.RegisterComponent[Velocity](u)
	u.Init()

	// Create entities and attach components
	e := u.CreateEntity()
	position.Set(e, Position{X: 10, Y: 20})
	velocity.Set(e, Velocity{X: 1, Y: 2})

	// Bind a system to a filter and reconcile group membership
	movement := &MovementSystem{}
	u.AddSystem(movement, universe.Filter{Require: []universe.Component{position, velocity}})
	u.Refresh()

	for e := range movement.Each() {
		pos := position.Get(e)
		vel := velocity.Get(e)
		pos.X += vel.X
		pos.Y += vel.Y
	}

Mutations from worker threads are staged on a ChangeSet and merged at an
explicit commit point; Refresh then reconciles group membership once per tick.
*/
package universe
