package room

import (
	"sync"

	"go.uber.org/zap"

	"github.com/gridverse/spacesync/space/engine"
)

// Registry is the process-wide mapping from space ID to live room. Its
// lock only guards the mapping itself; room traffic for different
// spaces proceeds fully in parallel.
type Registry struct {
	log *zap.SugaredLogger

	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry.
func NewRegistry(log *zap.SugaredLogger) *Registry {
	return &Registry{
		log:   log,
		rooms: make(map[string]*Room),
	}
}

// Get returns the live room for a space, if one exists.
func (g *Registry) Get(spaceID string) (*Room, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.rooms[spaceID]
	return r, ok
}

// GetOrCreate returns the live room for a space, creating one from snap
// under the first-join race. When two joiners race the creation, one
// wins and the loser's freshly fetched snapshot is discarded.
func (g *Registry) GetOrCreate(spaceID string, snap *engine.SpaceSnapshot) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.rooms[spaceID]; ok {
		return r
	}
	r := NewRoom(snap, g.log)
	g.rooms[spaceID] = r
	g.log.Infow("room created", "space", spaceID,
		"width", snap.Width, "height", snap.Height, "elements", len(snap.Elements))
	return r
}

// Release removes a room that has emptied. The room is closed and
// unmapped only if it is still empty and still the registered room for
// its space. A join that slipped in since the caller observed
// emptiness, or a fresh room created after an earlier release, leaves
// the registry untouched.
func (g *Registry) Release(r *Room) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Registry lock before room lock, everywhere.
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.members) > 0 || r.closed {
		return
	}
	if g.rooms[r.snap.ID] != r {
		return
	}
	r.closed = true
	delete(g.rooms, r.snap.ID)
	g.log.Infow("room released", "space", r.snap.ID)
}

// Count returns the number of live rooms.
func (g *Registry) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.rooms)
}
