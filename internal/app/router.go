package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/avolkov/huddle/internal/core"
	"github.com/avolkov/huddle/internal/domain"
)

// Broadcast fans a frame out to every member of the room except one.
// A missing room is a silent no-op: the last member may have left in
// the same breath.
func Broadcast(reg *Registry, code domain.RoomCode, frame core.Frame, except domain.ClientID) {
	rm, ok := reg.rooms[code]
	if !ok {
		return
	}
	for _, id := range rm.order {
		if id == except {
			continue
		}
		deliver(rm.members[id].sender, frame, id)
	}
}

// Relay forwards an opaque signaling payload to one member. An unknown
// target is dropped without telling the sender: it cannot yet know the
// peer is gone, and there is nothing actionable to report.
func Relay(reg *Registry, code domain.RoomCode, from, to domain.ClientID, data json.RawMessage) {
	sender, ok := reg.Lookup(code, to)
	if !ok {
		log.Debug().Str("module", "app.router").Str("room", string(code)).
			Str("to", string(to)).Msg("relay target gone, dropping")
		return
	}
	frame, err := json.Marshal(struct {
		Type string          `json:"type"`
		From domain.ClientID `json:"from"`
		Data json.RawMessage `json:"data"`
	}{
		Type: "signal",
		From: from,
		Data: data,
	})
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("marshal signal")
		return
	}
	deliver(sender, frame, to)
}

// deliver queues one frame; a consumer that cannot keep up gets kicked,
// which drives the usual close cleanup through its read pump.
func deliver(sender core.Sender, frame core.Frame, id domain.ClientID) {
	if err := sender.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "app.router").Str("id", string(id)).Msg("kicking slow consumer")
		sender.Close()
	}
}
