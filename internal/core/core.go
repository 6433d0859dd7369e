// Package core holds the types shared between the hub and its adapters.
package core

import "github.com/avolkov/huddle/internal/domain"

// Frame is one JSON-encoded signaling message.
type Frame []byte

// Sender abstracts the outbound half of a client transport.
// Owned by the adapter; the adapter must Close() it.
type Sender interface {
	// TrySend queues a frame without blocking. An error means the
	// connection is gone or its queue is full.
	TrySend(Frame) error
	Close()
}

// PeerDTO is the read-only member view sent to clients (no transport fields).
type PeerDTO struct {
	ID       domain.ClientID `json:"id"`
	Username string          `json:"username"`
}

// RoomInfo is the read-only room view for APIs.
type RoomInfo struct {
	Code        domain.RoomCode `json:"room"`
	MemberCount int             `json:"client_count"`
}
