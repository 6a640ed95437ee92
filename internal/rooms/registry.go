package rooms

// RoomState describes how far along a room is toward a two-party call.
type RoomState int

const (
	StateEmpty RoomState = iota
	StateOneJoined
	StateTwoJoined
)

func (s RoomState) String() string {
	switch s {
	case StateOneJoined:
		return "one_joined"
	case StateTwoJoined:
		return "two_joined"
	default:
		return "empty"
	}
}

func stateFor(members int) RoomState {
	switch {
	case members == 0:
		return StateEmpty
	case members == 1:
		return StateOneJoined
	default:
		return StateTwoJoined
	}
}

// Registry maps session ids to the ordered list of participant handles
// currently connected to that session. It has no internal locking: it is
// owned by the coordinator's event loop, which is the only goroutine that
// touches it. Rooms are created implicitly on first join and deleted as
// soon as the last member leaves, so a room that exists is never empty.
type Registry struct {
	rooms map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string][]string)}
}

// Join adds handle to the session's member list, creating the room if
// needed. Joining a room the handle is already in is a no-op. Returns the
// updated member list and whether the handle was actually added.
func (r *Registry) Join(sessionID, handle string) (members []string, grew bool) {
	current := r.rooms[sessionID]
	for _, h := range current {
		if h == handle {
			return copyHandles(current), false
		}
	}
	current = append(current, handle)
	r.rooms[sessionID] = current
	return copyHandles(current), true
}

// Leave removes handle from the session's member list. The room is deleted
// when its last member leaves. Missing rooms and handles are a no-op.
// Returns the remaining members and whether the handle was actually removed.
func (r *Registry) Leave(sessionID, handle string) (remaining []string, removed bool) {
	current, ok := r.rooms[sessionID]
	if !ok {
		return nil, false
	}
	for i, h := range current {
		if h != handle {
			continue
		}
		current = append(current[:i], current[i+1:]...)
		if len(current) == 0 {
			delete(r.rooms, sessionID)
			return nil, true
		}
		r.rooms[sessionID] = current
		return copyHandles(current), true
	}
	return copyHandles(current), false
}

// RemoveEverywhere removes handle from every room it belongs to, deleting
// rooms that become empty. It returns the remaining members of each room
// the handle was in, keyed by session id (nil for rooms that were deleted).
// This is the disconnect path: the connection does not need to remember
// which rooms it joined.
func (r *Registry) RemoveEverywhere(handle string) map[string][]string {
	affected := make(map[string][]string)
	for sessionID := range r.rooms {
		if remaining, removed := r.Leave(sessionID, handle); removed {
			affected[sessionID] = remaining
		}
	}
	return affected
}

// MembersOf returns the current ordered member list, empty if the room
// does not exist.
func (r *Registry) MembersOf(sessionID string) []string {
	return copyHandles(r.rooms[sessionID])
}

// State reports the room's membership state.
func (r *Registry) State(sessionID string) RoomState {
	return stateFor(len(r.rooms[sessionID]))
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	return len(r.rooms)
}

func copyHandles(handles []string) []string {
	out := make([]string, len(handles))
	copy(out, handles)
	return out
}
