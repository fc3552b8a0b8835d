// Package websocket is the connection gateway for the space sync
// engine: it upgrades HTTP requests to websocket connections, decodes
// inbound frames to typed protocol messages, routes them to the
// session's room, and writes the room's outbound messages back to the
// sockets.
//
// Architecture:
//
// Each connection runs two goroutines. The read pump owns all inbound
// processing and the session's lifecycle: it performs the blocking
// collaborator calls (token verification, space descriptor lookup)
// before the session ever reaches a room, and it runs the implicit
// leave exactly once when the transport drops. The write pump drains a
// buffered send queue, one JSON envelope per frame, and keeps the peer
// alive with pings.
//
// Rooms enqueue outbound messages onto the send queue without blocking,
// so a room's serialized section never waits on a slow socket; a peer
// whose queue overflows is disconnected instead.
//
// Message handling:
//
//   - join must come before any other message; an invalid token closes
//     the connection, an unknown space leaves it open and ungrouped
//   - movement is only honored after a successful join and only when
//     its userId matches the session's verified identity
//   - malformed or unexpected messages are dropped; a connection that
//     keeps sending garbage is closed after repeated strikes
//
// Usage:
//
//	gw := websocket.NewGateway(verifier, directory, registry, log)
//	http.HandleFunc("/ws", gw.ServeWS)
package websocket
