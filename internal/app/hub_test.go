package app

import (
	"context"
	"testing"
)

// Rooms() is answered by the loop goroutine after any in-flight event,
// so it doubles as a fence: once it returns, earlier Dispatch/Detach
// calls have been fully processed.
func TestHubSerializesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	alice := NewSession(&captureSender{})
	bob := NewSession(&captureSender{})

	hub.Dispatch(alice, frame(`{"type":"join","room":"lobby","username":"alice"}`))
	hub.Dispatch(bob, frame(`{"type":"join","room":"lobby","username":"bob"}`))

	rooms := hub.Rooms()
	if len(rooms) != 1 || rooms[0].Code != "lobby" || rooms[0].MemberCount != 2 {
		t.Fatalf("rooms=%+v, want lobby with 2 members", rooms)
	}

	hub.Detach(bob)
	rooms = hub.Rooms()
	if len(rooms) != 1 || rooms[0].MemberCount != 1 {
		t.Fatalf("rooms=%+v, want lobby with 1 member", rooms)
	}

	hub.Detach(alice)
	if rooms = hub.Rooms(); len(rooms) != 0 {
		t.Fatalf("rooms=%+v, want none after last leave", rooms)
	}
}
