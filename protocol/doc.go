// Package protocol defines the JSON wire envelope exchanged over the
// websocket connection and the typed payloads for every message.
//
// Every message is a single envelope {"type": ..., "payload": ...}, one
// message per logical event. Inbound messages (join, movement) are
// decoded in two stages: Decode parses the envelope and leaves the
// payload raw, then the typed decoders validate the fields the message
// requires. Outbound messages are built with the Encode constructors so
// payload shapes stay in one place.
//
// The codec is stateless; all functions are safe for concurrent use.
package protocol
