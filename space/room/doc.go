// Package room implements the runtime authority over live presence in a
// space: the Room, the per-connection Session record, and the process
// wide Registry mapping space IDs to rooms.
//
// Concurrency model:
//
// The room is the unit of mutual exclusion. Every mutating operation on
// a room (Join, Move, Leave) runs under the room's mutex, and all of an
// operation's broadcasts are marshaled and enqueued to the target
// connections before the mutex is released. Any two members therefore
// observe the same total order of events: nobody sees a movement for a
// user before that user's join or after their departure. Rooms never
// block on I/O inside the critical section: token verification and
// descriptor lookups happen in the gateway before a session reaches the
// room, and outbound delivery is a non-blocking enqueue onto each
// connection's send queue.
//
// The Registry guards the space-to-room mapping with its own lock,
// independent of any room's lock, so create-if-absent and
// remove-if-empty never serialize traffic across unrelated spaces.
// Lock order is always registry before room.
//
// Lifecycle:
//
// A room is created on the first join to its space and holds the
// immutable SpaceSnapshot for its whole life. When the last member
// leaves, Release closes the room and removes it from the registry; a
// later join to the same space ID builds a fresh room from a fresh
// descriptor lookup. A join racing against that teardown gets
// ErrRoomClosed and is retried by the gateway.
package room
