package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/avolkov/huddle/internal/core"
)

type inbound struct {
	sess *Session
	data core.Frame
}

// Hub owns the Registry and serializes every session event on a single
// goroutine: each frame is handled to completion (registry mutation,
// then outbound sends) before the next one, so membership never needs
// a lock and a broadcast can never observe a half-removed member.
type Hub struct {
	reg      *Registry
	frames   chan inbound
	detached chan *Session
	roomsReq chan chan []core.RoomInfo
}

func NewHub() *Hub {
	return &Hub{
		reg:      NewRegistry(),
		frames:   make(chan inbound),
		detached: make(chan *Session),
		roomsReq: make(chan chan []core.RoomInfo),
	}
}

// Run is the hub's event loop. Exactly one goroutine runs it for the
// life of the process.
func (h *Hub) Run(ctx context.Context) {
	log.Info().Str("module", "app.hub").Msg("hub started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.hub").Msg("hub stopped")
			return
		case in := <-h.frames:
			in.sess.HandleFrame(h.reg, in.data)
		case sess := <-h.detached:
			sess.Close(h.reg)
		case reply := <-h.roomsReq:
			reply <- h.reg.Rooms()
		}
	}
}

// Dispatch hands one inbound frame to the hub loop. It blocks until the
// loop picks the frame up, which is what keeps a connection's messages
// ordered relative to everyone else's.
func (h *Hub) Dispatch(s *Session, data core.Frame) {
	h.frames <- inbound{sess: s, data: data}
}

// Detach reports a closed transport; the hub runs the session's
// leave-and-notify cleanup on its own goroutine.
func (h *Hub) Detach(s *Session) {
	h.detached <- s
}

// Rooms asks the loop for a consistent room snapshot.
func (h *Hub) Rooms() []core.RoomInfo {
	reply := make(chan []core.RoomInfo, 1)
	h.roomsReq <- reply
	return <-reply
}
