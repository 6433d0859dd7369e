package domain

import (
	"errors"
	"strings"
)

const MaxRoomCodeLen = 64

var (
	ErrRoomRequired = errors.New("room required")
	ErrRoomTooLong  = errors.New("room code too long")
)

// RoomCode names a room. Codes are caller-supplied and share one flat
// namespace: two clients presenting the same code end up together.
type RoomCode string

// ParseRoomCode trims and validates a raw room code.
func ParseRoomCode(raw string) (RoomCode, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", ErrRoomRequired
	}
	if len(code) > MaxRoomCodeLen {
		return "", ErrRoomTooLong
	}
	return RoomCode(code), nil
}
