package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/avolkov/huddle/internal/core"
	"github.com/avolkov/huddle/internal/domain"
)

type sessionState int

const (
	stateUnjoined sessionState = iota
	stateJoined
	stateClosed
)

// Session is the per-connection state machine. It owns the connection's
// room membership: unjoined until the first valid join, then bound to
// that one room until the transport closes. A connection never switches
// rooms; reconnecting is the way to move.
//
// All methods run on the hub goroutine.
type Session struct {
	sender core.Sender
	state  sessionState
	member domain.Member
	room   domain.RoomCode
}

func NewSession(sender core.Sender) *Session {
	return &Session{sender: sender}
}

// HandleFrame dispatches one inbound frame. Malformed JSON is dropped
// without a reply, and anything but a join is ignored until the session
// has joined a room.
func (s *Session) HandleFrame(reg *Registry, data core.Frame) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Debug().Err(err).Str("module", "app.session").Msg("bad json, dropping")
		return
	}

	switch s.state {
	case stateClosed:
		return
	case stateUnjoined:
		if env.Type != "join" {
			return
		}
		s.handleJoin(reg, data)
	case stateJoined:
		switch env.Type {
		case "signal":
			s.handleSignal(reg, data)
		default:
			log.Warn().Str("module", "app.session").Str("type", env.Type).Msg("unknown message type")
		}
	}
}

func (s *Session) handleJoin(reg *Registry, data core.Frame) {
	type joinPayload struct {
		Type     string `json:"type"`
		Room     string `json:"room"`
		Username string `json:"username"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		s.sendError(domain.ErrRoomRequired.Error())
		return
	}

	code, member, peers, err := reg.Join(p.Room, p.Username, s.sender)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.session").Msg("join rejected")
		s.sendError(err.Error())
		return
	}

	s.state = stateJoined
	s.member = member
	s.room = code

	s.sendJSON(struct {
		Type  string          `json:"type"`
		ID    domain.ClientID `json:"id"`
		Peers []core.PeerDTO  `json:"peers"`
	}{
		Type:  "joined",
		ID:    member.ID,
		Peers: peers,
	})

	notice, err := json.Marshal(struct {
		Type     string          `json:"type"`
		ID       domain.ClientID `json:"id"`
		Username string          `json:"username"`
	}{
		Type:     "peer-joined",
		ID:       member.ID,
		Username: member.Username,
	})
	if err != nil {
		log.Error().Err(err).Str("module", "app.session").Msg("marshal peer-joined")
		return
	}
	Broadcast(reg, s.room, notice, member.ID)
}

func (s *Session) handleSignal(reg *Registry, data core.Frame) {
	type signalPayload struct {
		Type string          `json:"type"`
		To   string          `json:"to"`
		Data json.RawMessage `json:"data"`
	}
	var p signalPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "app.session").Msg("bad signal payload, dropping")
		return
	}
	Relay(reg, s.room, s.member.ID, domain.ClientID(p.To), p.Data)
}

// Close drives the session to its terminal state. A joined session is
// removed from the registry, and the remaining members hear about it;
// an unjoined one never registered anything.
func (s *Session) Close(reg *Registry) {
	if s.state != stateJoined {
		s.state = stateClosed
		return
	}
	s.state = stateClosed

	out := reg.Leave(s.room, s.member.ID)
	if !out.Removed || out.RoomEmpty {
		return
	}
	notice, err := json.Marshal(struct {
		Type string          `json:"type"`
		ID   domain.ClientID `json:"id"`
	}{
		Type: "peer-left",
		ID:   s.member.ID,
	})
	if err != nil {
		log.Error().Err(err).Str("module", "app.session").Msg("marshal peer-left")
		return
	}
	Broadcast(reg, s.room, notice, s.member.ID)
}

func (s *Session) sendError(message string) {
	s.sendJSON(struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}{
		Type:    "error",
		Message: message,
	})
}

func (s *Session) sendJSON(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.session").Msg("sendJSON marshal")
		return
	}
	deliver(s.sender, b, s.member.ID)
}
