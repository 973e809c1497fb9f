package universe_test

import (
	"fmt"

	universe "github.com/tbranning/universe"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// MovementSystem integrates velocity into position each tick
type MovementSystem struct {
	universe.BaseSystem
}

// Example shows basic universe usage with entities, components, and a system
func Example_basic() {
	u := universe.Factory.NewDefaultUniverse()
	position := universe.RegisterComponent[Position](u)
	velocity := universe.RegisterComponent[Velocity](u)
	name := universe.RegisterComponent[Name](u)
	u.Init()

	// A few stationary entities
	for i := 0; i < 5; i++ {
		position.Add(u.CreateEntity())
	}

	// One named, moving entity
	player := u.CreateEntity()
	position.Set(player, Position{X: 10, Y: 20})
	velocity.Set(player, Velocity{X: 1, Y: 2})
	name.Set(player, Name{Value: "Player"})

	movement := &MovementSystem{}
	u.AddSystem(movement, universe.Filter{
		Require: []universe.Component{position, velocity},
	})

	u.Refresh()

	moving := 0
	for range movement.Each() {
		moving++
	}
	fmt.Printf("Found %d moving entities\n", moving)

	for e := range movement.Each() {
		pos := position.Get(e)
		vel := velocity.Get(e)
		pos.X += vel.X
		pos.Y += vel.Y
		fmt.Printf("Updated %s to position (%.1f, %.1f)\n", name.Get(e).Value, pos.X, pos.Y)
	}

	// Output:
	// Found 1 moving entities
	// Updated Player to position (11.0, 22.0)
}

// Example_changeset shows staging mutations off the authoritative thread
func Example_changeset() {
	u := universe.Factory.NewDefaultUniverse()
	position := universe.RegisterComponent[Position](u)
	u.Init()

	cs := u.NewChangeSet()
	for i := 0; i < 3; i++ {
		spawned := cs.CreateEntity()
		universe.StageComponent(cs, spawned, position, Position{X: float64(i)})
	}

	u.CommitChangeSet(cs)
	u.Refresh()

	count := 0
	for range u.Entities() {
		count++
	}
	fmt.Printf("Spawned %d entities\n", count)

	// Output:
	// Spawned 3 entities
}
