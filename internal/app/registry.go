package app

import (
	"github.com/rs/zerolog/log"

	"github.com/avolkov/huddle/internal/core"
	"github.com/avolkov/huddle/internal/domain"
)

// memberEntry pairs a member's meta with its transport endpoint.
type memberEntry struct {
	member domain.Member
	sender core.Sender
}

// room keeps members in join order so snapshots come back the way
// people arrived.
type room struct {
	code    domain.RoomCode
	members map[domain.ClientID]*memberEntry
	order   []domain.ClientID
}

func (r *room) snapshot(except domain.ClientID) []core.PeerDTO {
	out := make([]core.PeerDTO, 0, len(r.order))
	for _, id := range r.order {
		if id == except {
			continue
		}
		e := r.members[id]
		out = append(out, core.PeerDTO{ID: e.member.ID, Username: e.member.Username})
	}
	return out
}

// Registry is the single source of truth for room membership. A room
// exists exactly while it has at least one member.
//
// The registry carries no locks: the hub goroutine is its only caller.
type Registry struct {
	rooms map[domain.RoomCode]*room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomCode]*room)}
}

// Join validates the raw inputs, creates the room if absent and inserts
// a fresh member. It returns the canonical room code, the inserted
// member and the snapshot of the other members as of before the
// insertion, so the joiner knows who to dial.
func (reg *Registry) Join(rawRoom, rawUsername string, sender core.Sender) (domain.RoomCode, domain.Member, []core.PeerDTO, error) {
	code, err := domain.ParseRoomCode(rawRoom)
	if err != nil {
		return "", domain.Member{}, nil, err
	}
	member, err := domain.NewMember(rawUsername)
	if err != nil {
		return "", domain.Member{}, nil, err
	}

	rm, ok := reg.rooms[code]
	if !ok {
		rm = &room{code: code, members: make(map[domain.ClientID]*memberEntry)}
		reg.rooms[code] = rm
		log.Info().Str("module", "app.registry").Str("room", string(code)).Msg("room created")
	}
	peers := rm.snapshot("")

	rm.members[member.ID] = &memberEntry{member: member, sender: sender}
	rm.order = append(rm.order, member.ID)
	log.Info().Str("module", "app.registry").Str("room", string(code)).
		Str("id", string(member.ID)).Str("username", member.Username).Msg("member joined")

	return code, member, peers, nil
}

// LeaveOutcome reports what a Leave call actually did.
type LeaveOutcome struct {
	Removed   bool
	RoomEmpty bool
}

// Leave removes a member and deletes the room when it empties.
// Leaving a member that is not present is a no-op.
func (reg *Registry) Leave(code domain.RoomCode, id domain.ClientID) LeaveOutcome {
	rm, ok := reg.rooms[code]
	if !ok {
		return LeaveOutcome{}
	}
	if _, ok := rm.members[id]; !ok {
		return LeaveOutcome{}
	}
	delete(rm.members, id)
	for i, oid := range rm.order {
		if oid == id {
			rm.order = append(rm.order[:i], rm.order[i+1:]...)
			break
		}
	}
	log.Info().Str("module", "app.registry").Str("room", string(code)).Str("id", string(id)).Msg("member left")

	if len(rm.members) == 0 {
		delete(reg.rooms, code)
		log.Info().Str("module", "app.registry").Str("room", string(code)).Msg("room deleted")
		return LeaveOutcome{Removed: true, RoomEmpty: true}
	}
	return LeaveOutcome{Removed: true}
}

// Lookup resolves a relay target to its transport endpoint.
func (reg *Registry) Lookup(code domain.RoomCode, id domain.ClientID) (core.Sender, bool) {
	rm, ok := reg.rooms[code]
	if !ok {
		return nil, false
	}
	e, ok := rm.members[id]
	if !ok {
		return nil, false
	}
	return e.sender, true
}

// Members returns the room's member views in join order.
func (reg *Registry) Members(code domain.RoomCode) []core.PeerDTO {
	rm, ok := reg.rooms[code]
	if !ok {
		return nil
	}
	return rm.snapshot("")
}

// Rooms returns a view of every live room for the API surface.
func (reg *Registry) Rooms() []core.RoomInfo {
	out := make([]core.RoomInfo, 0, len(reg.rooms))
	for code, rm := range reg.rooms {
		out = append(out, core.RoomInfo{Code: code, MemberCount: len(rm.members)})
	}
	return out
}
