package universe

import (
	"testing"

	iter_util "github.com/TheBitDrifter/util/iter"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestResetIsolation(t *testing.T) {
	build := func() (*Universe, ComponentType[Position]) {
		u := Factory.NewUniverse(testConfig(0))
		pos := RegisterComponent[Position](u)
		u.Init()
		return u, pos
	}

	recreate := func(u *Universe, pos ComponentType[Position]) []EntityID {
		ids := make([]EntityID, 0, 6)
		for i := 0; i < 3; i++ {
			e := u.CreateEntity()
			pos.Add(e)
			ids = append(ids, e.ID())
		}
		u.DestroyEntity(ids[1])
		for i := 0; i < 3; i++ {
			ids = append(ids, u.CreateEntity().ID())
		}
		return ids
	}

	seasoned, pos := build()
	recreate(seasoned, pos)
	seasoned.Refresh()
	seasoned.Reset()
	got := recreate(seasoned, pos)

	fresh, freshPos := build()
	want := recreate(fresh, freshPos)

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("id %d after reset = %v, fresh universe mints %v", i, got[i], want[i])
		}
	}
}

func TestResetClearsState(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	pos := RegisterComponent[Position](u)
	u.Init()

	g := u.AddGetGroup(Filter{Require: []Component{pos}})
	e := u.CreateEntity()
	pos.Set(e, Position{X: 5})
	u.Refresh()
	if g.Len() != 1 {
		t.Fatalf("group len = %d, want 1", g.Len())
	}

	u.Reset()
	if g.Len() != 0 || g.AddedLen() != 0 || g.RemovedLen() != 0 {
		t.Error("reset left group membership behind")
	}
	if u.EntityCount() != 0 {
		t.Errorf("entity count after reset = %d, want 0", u.EntityCount())
	}
	if e.Valid() {
		t.Error("pre-reset handle still valid")
	}

	// The registered type slot survives and is usable immediately.
	e2 := u.CreateEntity()
	if pos.Has(e2) {
		t.Error("fresh entity inherited pre-reset component data")
	}
	pos.Set(e2, Position{X: 1})
	u.Refresh()
	if g.Len() != 1 {
		t.Errorf("group len after reset and re-create = %d, want 1", g.Len())
	}
}

func TestRefreshRequired(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	pos := RegisterComponent[Position](u)
	u.Init()

	g := u.AddGetGroup(Filter{Require: []Component{pos}})
	pos.Add(u.CreateEntity())
	if g.Len() != 0 {
		t.Error("membership changed without a refresh")
	}
	u.Refresh()
	if g.Len() != 1 {
		t.Errorf("membership after refresh = %d, want 1", g.Len())
	}
}

func TestRefreshBeforeInitPanics(t *testing.T) {
	u := Factory.NewDefaultUniverse()
	defer func() {
		if _, ok := recover().(UninitializedUniverseError); !ok {
			t.Error("Refresh before Init did not panic with UninitializedUniverseError")
		}
	}()
	u.Refresh()
}

func TestInitIdempotent(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	pos := RegisterComponent[Position](u)
	u.Init()
	u.Init()

	e := u.CreateEntity()
	pos.Add(e)
	u.Refresh()
	if got := len(iter_util.Collect(u.Entities())); got != 1 {
		t.Errorf("all-entities group = %d, want 1", got)
	}
}

func TestAllEntitiesExcludesPaused(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	u.Init()

	a := u.CreateEntity()
	u.CreateEntity()
	a.Deactivate()
	u.Refresh()

	if got := len(iter_util.Collect(u.Entities())); got != 1 {
		t.Errorf("active entities = %d, want 1", got)
	}
}

func TestNotImplementedPaths(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	cfg := testConfig(0)
	cfg.Logger = zap.New(core)
	u := Factory.NewUniverse(cfg)
	u.Init()

	if e := u.CreateEntityWithID(newEntityID(7, 0)); !e.ID().IsNull() {
		t.Errorf("CreateEntityWithID = %v, want null", e.ID())
	}
	if batch := u.CreateEntities(16); len(batch) != 0 {
		t.Errorf("CreateEntities = %d handles, want none", len(batch))
	}
	if logs.Len() != 2 {
		t.Errorf("warnings logged = %d, want 2", logs.Len())
	}
}

func TestHandle(t *testing.T) {
	u := Factory.NewUniverse(testConfig(0))
	u.Init()

	e := u.CreateEntity()
	h := u.Handle(e.ID())
	if !h.Valid() || h.ID() != e.ID() {
		t.Error("handle round trip lost identity")
	}

	stale := u.Handle(newEntityID(99, 3))
	if stale.Valid() {
		t.Error("handle of a never-issued id reports valid")
	}
}
