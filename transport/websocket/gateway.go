package websocket

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/gridverse/spacesync/auth"
	"github.com/gridverse/spacesync/catalog"
	"github.com/gridverse/spacesync/protocol"
	"github.com/gridverse/spacesync/space/engine"
	"github.com/gridverse/spacesync/space/room"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Outbound queue depth per connection.
	sendQueueSize = 256

	// Malformed inbound messages tolerated before the connection is
	// dropped.
	maxStrikes = 8

	// Deadline for the descriptor lookup made during a join.
	lookupTimeout = 5 * time.Second

	// Attempts against a room that closes between lookup and join.
	joinRetries = 3
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Gateway accepts websocket connections and bridges them to rooms.
type Gateway struct {
	verifier  auth.Verifier
	directory catalog.Directory
	registry  *room.Registry
	log       *zap.SugaredLogger
}

// NewGateway creates a gateway over the given collaborators.
func NewGateway(verifier auth.Verifier, directory catalog.Directory, registry *room.Registry, log *zap.SugaredLogger) *Gateway {
	return &Gateway{
		verifier:  verifier,
		directory: directory,
		registry:  registry,
		log:       log,
	}
}

// ServeWS handles a websocket upgrade request and starts the connection
// pumps.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warnw("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{
		gw:   g,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}

	go c.writePump()
	go c.readPump()
}

// client is one websocket connection. The read pump goroutine is the
// sole owner of cur and sess; rooms only ever see the client through
// the Pusher interface.
type client struct {
	gw   *Gateway
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	closeOnce sync.Once

	cur     *room.Room
	sess    *room.Session
	strikes int
}

// Push enqueues an outbound message without blocking. False means the
// queue is full and the room will drop this connection.
func (c *client) Push(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return true // connection already going away, drop silently
	default:
		return false
	}
}

// Close tears the connection down. Safe to call from any goroutine and
// any number of times; the first call wins.
func (c *client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// readPump decodes inbound frames and drives the session state machine.
// It owns the implicit-leave guarantee: whatever the exit reason, a
// joined session leaves its room exactly once.
func (c *client) readPump() {
	defer func() {
		c.Close()
		if c.cur != nil {
			if empty := c.cur.Leave(c.sess); empty {
				c.gw.registry.Release(c.cur)
			}
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.gw.log.Debugw("websocket read error", "err", err)
			}
			return
		}

		env, err := protocol.Decode(data)
		if err != nil {
			if c.strike("undecodable message", err) {
				return
			}
			continue
		}

		switch env.Type {
		case protocol.TypeJoin:
			if !c.handleJoin(env) {
				return
			}
		case protocol.TypeMovement:
			if !c.handleMovement(env) {
				return
			}
		}
	}
}

// handleJoin processes a join request. It returns false when the
// connection must be torn down (authentication failure or strike
// limit); recoverable failures keep the connection open.
func (c *client) handleJoin(env *protocol.Envelope) bool {
	if c.cur != nil {
		return !c.strike("join while already joined", nil)
	}

	p, err := protocol.DecodeJoin(env)
	if err != nil {
		return !c.strike("bad join payload", err)
	}

	userID, err := c.gw.verifier.Verify(p.Token)
	if err != nil {
		c.gw.log.Infow("authentication failed", "space", p.SpaceID, "err", err)
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication failed"),
			time.Now().Add(writeWait))
		return false
	}

	sess := room.NewSession(uuid.NewString(), userID, c)

	// A room can empty and be released between the descriptor lookup
	// and the join; retry with a fresh lookup so the new room is built
	// from current metadata.
	for attempt := 0; attempt < joinRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		snap, err := c.gw.directory.Describe(ctx, p.SpaceID)
		cancel()
		if err != nil {
			if errors.Is(err, catalog.ErrSpaceNotFound) {
				// Recoverable: the connection stays open, ungrouped.
				c.gw.log.Infow("join rejected, unknown space",
					"space", p.SpaceID, "user", userID)
				return true
			}
			c.gw.log.Errorw("space lookup failed", "space", p.SpaceID, "err", err)
			return true
		}

		rm := c.gw.registry.GetOrCreate(p.SpaceID, snap)
		if err := rm.Join(sess); err != nil {
			if errors.Is(err, room.ErrRoomClosed) {
				continue
			}
			c.gw.log.Errorw("join failed", "space", p.SpaceID, "user", userID, "err", err)
			return true
		}
		c.cur, c.sess = rm, sess
		return true
	}

	c.gw.log.Warnw("join gave up after retries", "space", p.SpaceID, "user", userID)
	return true
}

// handleMovement forwards a movement request to the session's room.
func (c *client) handleMovement(env *protocol.Envelope) bool {
	if c.cur == nil {
		// No authoritative position before a join; ignore.
		return true
	}

	p, err := protocol.DecodeMovement(env)
	if err != nil {
		return !c.strike("bad movement payload", err)
	}
	if p.UserID != c.sess.UserID {
		return !c.strike("movement userId mismatch", nil)
	}

	// ErrNotPresent means this session was superseded by a newer
	// connection of the same user; the room already closed this
	// transport, so there is nothing to do.
	_ = c.cur.Move(c.sess, engine.Position{X: p.X, Y: p.Y})
	return true
}

// strike records a protocol violation and reports whether the
// connection has exhausted its tolerance.
func (c *client) strike(reason string, err error) bool {
	c.strikes++
	c.gw.log.Debugw("dropped inbound message",
		"reason", reason, "err", err, "strikes", c.strikes)
	if c.strikes >= maxStrikes {
		c.gw.log.Warnw("closing connection after repeated protocol violations",
			"strikes", c.strikes)
		return true
	}
	return false
}

// writePump writes queued messages to the socket, one envelope per
// frame, and pings the peer to keep the read deadline alive.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
