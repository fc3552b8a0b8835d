package room

import "github.com/gridverse/spacesync/space/engine"

// Pusher is the outbound side of a connection as the room sees it. Push
// enqueues a marshaled message without blocking and reports false when
// the peer's queue is full; Close tears the transport down. Both must be
// safe to call from any goroutine.
type Pusher interface {
	Push(msg []byte) bool
	Close()
}

// Session is the server-side record of one connected participant. The
// user identity is fixed at verification time; position and presence are
// owned by the room the session joined and only change under that
// room's lock.
type Session struct {
	// ConnID distinguishes connections of the same user, for logs and
	// duplicate-join supersession.
	ConnID string

	// UserID is the identity resolved by the token verifier.
	UserID string

	conn    Pusher
	pos     engine.Position
	present bool
}

// NewSession creates a session for a verified connection.
func NewSession(connID, userID string, conn Pusher) *Session {
	return &Session{ConnID: connID, UserID: userID, conn: conn}
}
