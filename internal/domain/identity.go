// Package domain contains entities without logic, just meta-data.
package domain

import "github.com/google/uuid"

// ClientID is the opaque token a client is known by inside its room.
// It is minted at join time and dies with the connection.
type ClientID string

// NewClientID draws a fresh id. Random uuids replace any per-room
// collision bookkeeping: the id space is large enough that two live
// members never share one.
func NewClientID() ClientID {
	return ClientID(uuid.NewString())
}
