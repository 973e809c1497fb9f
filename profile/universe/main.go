// Profiling:
// go build ./profile/universe
// go tool pprof -http=":8000" -nodefraction=0.001 ./universe mem.pprof

package main

import (
	iter_util "github.com/TheBitDrifter/util/iter"
	"github.com/pkg/profile"

	universe "github.com/tbranning/universe"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

func main() {
	rounds := 50
	ticks := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, ticks, entities)
	p.Stop()
}

func run(rounds, ticks, numEntities int) {
	for range rounds {
		u := universe.Factory.NewDefaultUniverse()
		pos := universe.RegisterComponent[position](u)
		vel := universe.RegisterComponent[velocity](u)
		u.Init()

		g := u.AddGetGroup(universe.Filter{
			Require: []universe.Component{pos, vel},
		})

		for i := 0; i < numEntities; i++ {
			e := u.CreateEntity()
			pos.Add(e)
			vel.Set(e, velocity{X: 1, Y: 1})
		}

		for range ticks {
			u.Refresh()
			for e := range g.Each() {
				p := pos.Get(e)
				v := vel.Get(e)
				p.X += v.X
				p.Y += v.Y
			}
		}

		// Tear half down through a changeset, then rebuild.
		members := iter_util.Collect(g.Each())
		cs := u.NewChangeSet()
		for i, e := range members {
			if i%2 == 0 {
				cs.Destroy(e)
			}
		}
		u.CommitChangeSet(cs)
		u.Refresh()
		u.Reset()
	}
}
