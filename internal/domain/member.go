package domain

import (
	"errors"
	"strings"
)

const MaxUsernameLen = 36

var (
	ErrUsernameRequired = errors.New("username required")
	ErrUsernameTooLong  = errors.New("username too long")
)

// Member is a client's participation meta inside a room.
// No transport or lifecycle logic here.
type Member struct {
	ID       ClientID `json:"id"`
	Username string   `json:"username"`
}

// NewMember validates the display name and mints an id.
// Avoids raw literals in adapters and keeps construction obvious.
func NewMember(rawUsername string) (Member, error) {
	username := strings.TrimSpace(rawUsername)
	if username == "" {
		return Member{}, ErrUsernameRequired
	}
	if len(username) > MaxUsernameLen {
		return Member{}, ErrUsernameTooLong
	}
	return Member{ID: NewClientID(), Username: username}, nil
}
