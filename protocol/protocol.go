package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gridverse/spacesync/space/engine"
)

// Inbound message types.
const (
	TypeJoin     = "join"
	TypeMovement = "movement"
)

// Outbound message types.
const (
	TypeSpaceJoined      = "space-joined"
	TypeUserJoin         = "user-join"
	TypeMovementRejected = "movement-rejected"
	TypeUserLeft         = "user-left"
)

var (
	// ErrMalformed indicates an envelope or payload that does not parse
	// or is missing a required field.
	ErrMalformed = errors.New("malformed message")

	// ErrUnknownType indicates an envelope with a type the server does
	// not handle.
	ErrUnknownType = errors.New("unknown message type")
)

// Envelope is the outer wire shape of every message.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinPayload is the inbound join request.
type JoinPayload struct {
	SpaceID string `json:"spaceId"`
	Token   string `json:"token"`
}

// MovementPayload is the inbound movement request. UserID must match the
// requesting session's identity; it doubles as the mover identity in the
// outbound movement broadcast.
type MovementPayload struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	UserID string `json:"userId"`
}

// UserPresence describes one member's identity and position inside the
// space-joined membership list.
type UserPresence struct {
	UserID string `json:"userId"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// SpaceJoinedPayload is sent to the joining session only. Users lists
// the members that were already present before the join.
type SpaceJoinedPayload struct {
	Spawn engine.Position `json:"spawn"`
	Users []UserPresence  `json:"users"`
}

// UserJoinPayload announces a new member to everyone already present.
type UserJoinPayload struct {
	UserID string `json:"userId"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// MovementRejectedPayload carries the requester's unchanged,
// authoritative position, not the rejected target.
type MovementRejectedPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// UserLeftPayload announces a departure to the remaining members.
type UserLeftPayload struct {
	UserID string `json:"userId"`
}

// Decode parses the outer envelope, leaving the payload raw for the
// typed decoders. Envelopes without a type are malformed; types the
// server does not handle report ErrUnknownType.
func Decode(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	switch env.Type {
	case TypeJoin, TypeMovement:
		return &env, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, env.Type)
	}
}

// DecodeJoin validates and decodes a join payload.
func DecodeJoin(env *Envelope) (*JoinPayload, error) {
	var p JoinPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.SpaceID == "" {
		return nil, fmt.Errorf("%w: join missing spaceId", ErrMalformed)
	}
	return &p, nil
}

// DecodeMovement validates and decodes a movement payload.
func DecodeMovement(env *Envelope) (*MovementPayload, error) {
	var p MovementPayload
	if err := json.Unmarshal(env.Payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("%w: movement missing userId", ErrMalformed)
	}
	return &p, nil
}

func encode(msgType string, payload any) []byte {
	data, err := json.Marshal(Envelope{Type: msgType, Payload: mustMarshal(payload)})
	if err != nil {
		// Payload types are plain structs; marshaling cannot fail.
		panic(err)
	}
	return data
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// EncodeSpaceJoined builds the space-joined message for a new member.
func EncodeSpaceJoined(spawn engine.Position, users []UserPresence) []byte {
	if users == nil {
		users = []UserPresence{}
	}
	return encode(TypeSpaceJoined, SpaceJoinedPayload{Spawn: spawn, Users: users})
}

// EncodeUserJoin builds the user-join broadcast for existing members.
func EncodeUserJoin(userID string, pos engine.Position) []byte {
	return encode(TypeUserJoin, UserJoinPayload{UserID: userID, X: pos.X, Y: pos.Y})
}

// EncodeMovement builds the movement broadcast for the other members.
func EncodeMovement(userID string, pos engine.Position) []byte {
	return encode(TypeMovement, MovementPayload{X: pos.X, Y: pos.Y, UserID: userID})
}

// EncodeMovementRejected builds the rejection reply for the requester.
func EncodeMovementRejected(pos engine.Position) []byte {
	return encode(TypeMovementRejected, MovementRejectedPayload{X: pos.X, Y: pos.Y})
}

// EncodeUserLeft builds the user-left broadcast.
func EncodeUserLeft(userID string) []byte {
	return encode(TypeUserLeft, UserLeftPayload{UserID: userID})
}
