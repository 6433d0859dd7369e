package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRoomCode(t *testing.T) {
	code, err := ParseRoomCode("  lobby  ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if code != "lobby" {
		t.Fatalf("code=%q, want %q", code, "lobby")
	}

	if _, err := ParseRoomCode("   "); !errors.Is(err, ErrRoomRequired) {
		t.Fatalf("blank code err=%v, want %v", err, ErrRoomRequired)
	}
	if _, err := ParseRoomCode(strings.Repeat("x", MaxRoomCodeLen+1)); !errors.Is(err, ErrRoomTooLong) {
		t.Fatalf("long code err=%v, want %v", err, ErrRoomTooLong)
	}
}

func TestNewMember(t *testing.T) {
	m, err := NewMember(" alice ")
	if err != nil {
		t.Fatalf("new member: %v", err)
	}
	if m.Username != "alice" {
		t.Fatalf("username=%q, want trimmed %q", m.Username, "alice")
	}
	if m.ID == "" {
		t.Fatalf("member id empty")
	}

	if _, err := NewMember(""); !errors.Is(err, ErrUsernameRequired) {
		t.Fatalf("empty name err=%v, want %v", err, ErrUsernameRequired)
	}
	if _, err := NewMember(strings.Repeat("n", MaxUsernameLen+1)); !errors.Is(err, ErrUsernameTooLong) {
		t.Fatalf("long name err=%v, want %v", err, ErrUsernameTooLong)
	}
}

func TestNewClientIDUnique(t *testing.T) {
	seen := make(map[ClientID]bool)
	for i := 0; i < 1000; i++ {
		id := NewClientID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
