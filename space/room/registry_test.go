package room

import (
	"testing"

	"go.uber.org/zap"

	"github.com/gridverse/spacesync/space/engine"
)

func testRegistry() *Registry {
	return NewRegistry(zap.NewNop().Sugar())
}

func snapshot(id string) *engine.SpaceSnapshot {
	return engine.NewSpaceSnapshot(id, 10, 10, nil)
}

func TestRegistry_GetOrCreateIsIdempotent(t *testing.T) {
	g := testRegistry()

	r1 := g.GetOrCreate("space-1", snapshot("space-1"))
	r2 := g.GetOrCreate("space-1", snapshot("space-1"))
	if r1 != r2 {
		t.Error("GetOrCreate returned different rooms for the same space")
	}
	if g.Count() != 1 {
		t.Errorf("room count: got %d, want 1", g.Count())
	}

	other := g.GetOrCreate("space-2", snapshot("space-2"))
	if other == r1 {
		t.Error("distinct spaces share a room")
	}
	if g.Count() != 2 {
		t.Errorf("room count: got %d, want 2", g.Count())
	}
}

func TestRegistry_ReleaseRemovesEmptyRoom(t *testing.T) {
	g := testRegistry()
	r := g.GetOrCreate("space-1", snapshot("space-1"))

	sess, _ := join(t, r, "c-1", "user-1")
	if empty := r.Leave(sess); !empty {
		t.Fatal("last leave did not report empty")
	}
	g.Release(r)

	if _, ok := g.Get("space-1"); ok {
		t.Error("released room still registered")
	}

	// The closed room refuses further joins; the gateway retries with a
	// fresh room built from a fresh descriptor lookup.
	late := NewSession("c-2", "user-2", &fakeConn{})
	if err := r.Join(late); err != ErrRoomClosed {
		t.Errorf("join on released room: got %v, want ErrRoomClosed", err)
	}

	fresh := g.GetOrCreate("space-1", snapshot("space-1"))
	if fresh == r {
		t.Error("GetOrCreate returned the released room")
	}
	if err := fresh.Join(late); err != nil {
		t.Errorf("join on fresh room: %v", err)
	}
	if fresh.MemberCount() != 1 {
		t.Errorf("fresh room membership: got %d, want 1", fresh.MemberCount())
	}
}

func TestRegistry_ReleaseIgnoresRepopulatedRoom(t *testing.T) {
	g := testRegistry()
	r := g.GetOrCreate("space-1", snapshot("space-1"))

	sess, _ := join(t, r, "c-1", "user-1")
	if empty := r.Leave(sess); !empty {
		t.Fatal("last leave did not report empty")
	}

	// A join slips in between the emptiness observation and the release.
	join(t, r, "c-2", "user-2")
	g.Release(r)

	got, ok := g.Get("space-1")
	if !ok || got != r {
		t.Error("release removed a repopulated room")
	}
}

func TestRegistry_ReleaseIgnoresSupersededRoom(t *testing.T) {
	g := testRegistry()
	old := g.GetOrCreate("space-1", snapshot("space-1"))

	sess, _ := join(t, old, "c-1", "user-1")
	old.Leave(sess)
	g.Release(old)

	fresh := g.GetOrCreate("space-1", snapshot("space-1"))
	join(t, fresh, "c-2", "user-2")

	// A stale release of the old room must not unmap the fresh one.
	g.Release(old)
	got, ok := g.Get("space-1")
	if !ok || got != fresh {
		t.Error("stale release unmapped the fresh room")
	}
}
