package room

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/gridverse/spacesync/protocol"
	"github.com/gridverse/spacesync/space/engine"
)

var (
	// ErrRoomClosed rejects operations against a room that emptied and
	// was removed from the registry. The caller re-resolves the space
	// and retries against a fresh room.
	ErrRoomClosed = errors.New("room closed")

	// ErrNotPresent rejects a movement from a session that is not a
	// member of this room (never joined, already left, or superseded).
	ErrNotPresent = errors.New("session not present in room")
)

// Room owns the live state of one space: the shared immutable snapshot
// and the set of present sessions keyed by user ID. All mutations are
// serialized under mu; see the package documentation for the ordering
// guarantees this buys.
type Room struct {
	snap *engine.SpaceSnapshot
	log  *zap.SugaredLogger

	mu      sync.Mutex
	members map[string]*Session
	seq     uint64
	closed  bool
}

// NewRoom creates a room over an immutable space snapshot.
func NewRoom(snap *engine.SpaceSnapshot, log *zap.SugaredLogger) *Room {
	return &Room{
		snap:    snap,
		log:     log,
		members: make(map[string]*Session),
	}
}

// SpaceID returns the identifier of the space this room serves.
func (r *Room) SpaceID() string { return r.snap.ID }

// Join admits a session into the room: it picks a spawn position,
// records the membership, replies to the joiner with space-joined (the
// membership as it was before this join), and announces user-join to
// everyone else.
//
// One active session per user: if the user already has a session here,
// the stale one is superseded first (removed with a user-left broadcast
// and its connection closed) before the new join proceeds. Last writer
// at the room's lock wins.
func (r *Room) Join(sess *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrRoomClosed
	}
	r.seq++

	if stale, ok := r.members[sess.UserID]; ok {
		delete(r.members, sess.UserID)
		stale.present = false
		r.broadcast(protocol.EncodeUserLeft(stale.UserID), nil)
		// Tear the old transport down outside the critical section; its
		// disconnect path will find the session already absent.
		go stale.conn.Close()
		r.log.Infow("superseded stale session",
			"space", r.snap.ID, "user", sess.UserID,
			"staleConn", stale.ConnID, "conn", sess.ConnID)
	}

	taken := make(map[engine.Position]bool, len(r.members))
	users := make([]protocol.UserPresence, 0, len(r.members))
	for _, m := range r.members {
		taken[m.pos] = true
		users = append(users, protocol.UserPresence{UserID: m.UserID, X: m.pos.X, Y: m.pos.Y})
	}

	spawn := engine.FindSpawn(r.snap, taken)
	sess.pos = spawn
	sess.present = true
	r.members[sess.UserID] = sess

	r.push(sess, protocol.EncodeSpaceJoined(spawn, users))
	r.broadcast(protocol.EncodeUserJoin(sess.UserID, spawn), sess)

	r.log.Debugw("session joined",
		"space", r.snap.ID, "user", sess.UserID, "conn", sess.ConnID,
		"spawn", spawn, "members", len(r.members), "seq", r.seq)
	return nil
}

// Move validates a movement request against the session's current
// position. A reject answers the requester alone with its unchanged,
// authoritative position; an accept updates the position and broadcasts
// it to every other member. The mover never receives its own echo.
func (r *Room) Move(sess *Session, target engine.Position) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.members[sess.UserID] != sess {
		return ErrNotPresent
	}
	r.seq++

	if err := engine.ValidateMove(r.snap, sess.pos, target); err != nil {
		r.push(sess, protocol.EncodeMovementRejected(sess.pos))
		r.log.Debugw("movement rejected",
			"space", r.snap.ID, "user", sess.UserID,
			"from", sess.pos, "to", target, "reason", err, "seq", r.seq)
		return nil
	}

	sess.pos = target
	r.broadcast(protocol.EncodeMovement(sess.UserID, target), sess)
	return nil
}

// Leave removes the session and announces user-left to the remaining
// members. It is idempotent per session: a session that already left,
// or was superseded by a newer connection of the same user, is a no-op.
// The returned flag reports whether the room is now empty and eligible
// for release.
func (r *Room) Leave(sess *Session) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.members[sess.UserID] != sess {
		return false
	}
	r.seq++

	delete(r.members, sess.UserID)
	sess.present = false
	r.broadcast(protocol.EncodeUserLeft(sess.UserID), nil)

	r.log.Debugw("session left",
		"space", r.snap.ID, "user", sess.UserID, "conn", sess.ConnID,
		"members", len(r.members), "seq", r.seq)
	return len(r.members) == 0
}

// MemberCount returns the number of present sessions.
func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// PositionOf reports the authoritative position of a member.
func (r *Room) PositionOf(userID string) (engine.Position, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.members[userID]; ok {
		return m.pos, true
	}
	return engine.Position{}, false
}

// push enqueues a message for one session. A full queue means the peer
// cannot keep up with the room; the connection is closed asynchronously
// and the member departs through the normal transport-failure path.
func (r *Room) push(sess *Session, msg []byte) {
	if !sess.conn.Push(msg) {
		r.log.Warnw("send queue full, dropping connection",
			"space", r.snap.ID, "user", sess.UserID, "conn", sess.ConnID)
		go sess.conn.Close()
	}
}

// broadcast enqueues a message for every member except skip. Callers
// hold r.mu, so the target set is exactly the membership at this point
// in the operation order.
func (r *Room) broadcast(msg []byte, skip *Session) {
	for _, m := range r.members {
		if m == skip {
			continue
		}
		r.push(m, msg)
	}
}
