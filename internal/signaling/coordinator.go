package signaling

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/skillswap/signaling-server/internal/metrics"
	"github.com/skillswap/signaling-server/internal/rooms"
)

// Presence mirrors live room membership into an external store so the REST
// surface can report participant counts. Calls are best-effort; the
// in-memory registry stays the source of truth for signaling decisions.
type Presence interface {
	Add(sessionID, handle string)
	Remove(sessionID, handle string)
}

type inbound struct {
	client *Client
	env    Envelope
}

// Coordinator brokers signaling between the participants of session rooms.
// All state, including the registry, is touched only by the Run loop:
// register, unregister and inbound events are serialized over channels, so
// a registry mutation and its notification fan-out are atomic with respect
// to every other event. Within a room this makes the join-then-count check
// race-free, which is what the second-joiner-initiates rule relies on.
type Coordinator struct {
	registry *rooms.Registry
	presence Presence
	log      *zap.Logger

	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	inbound    chan inbound
}

// NewCoordinator creates a coordinator around the given registry. presence
// may be nil.
func NewCoordinator(registry *rooms.Registry, presence Presence, log *zap.Logger) *Coordinator {
	return &Coordinator{
		registry:   registry,
		presence:   presence,
		log:        log,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inbound),
	}
}

// Register adds a freshly upgraded connection. Blocks until the event loop
// has accepted it, so events read afterwards always see the client.
func (co *Coordinator) Register(c *Client) {
	co.register <- c
}

// Unregister removes a connection; called from the read pump on any
// disconnect. Treated as an implicit leave from every room the handle was
// in.
func (co *Coordinator) Unregister(c *Client) {
	co.unregister <- c
}

// deliver hands a client event to the event loop.
func (co *Coordinator) deliver(c *Client, env Envelope) {
	co.inbound <- inbound{client: c, env: env}
}

// Run is the coordinator's event loop. It must run in exactly one
// goroutine.
func (co *Coordinator) Run() {
	for {
		select {
		case c := <-co.register:
			co.clients[c.ID] = c
			metrics.ConnectedPeers.Inc()
			co.log.Info("participant connected",
				zap.String("handle", c.ID),
				zap.String("displayName", c.DisplayName))

		case c := <-co.unregister:
			if _, ok := co.clients[c.ID]; !ok {
				continue
			}
			delete(co.clients, c.ID)
			close(c.send)
			metrics.ConnectedPeers.Dec()
			co.handleDisconnect(c)

		case msg := <-co.inbound:
			co.dispatch(msg.client, msg.env)
		}
	}
}

func (co *Coordinator) dispatch(c *Client, env Envelope) {
	metrics.EventsTotal.WithLabelValues(env.Event).Inc()

	switch env.Event {
	case EventJoinSession:
		co.handleJoin(c, env.SessionID)
	case EventLeaveSession:
		co.handleLeave(c, env.SessionID)
	case EventSignal:
		co.relay(c, env)
	case EventChatMessage:
		co.relay(c, env)
	default:
		co.log.Warn("unknown event",
			zap.String("event", env.Event),
			zap.String("handle", c.ID))
	}
}

// handleJoin adds the participant to the room. The join that brings the
// room to two members earns the joiner a peer-joined notification: the
// second arrival is the designated offer initiator, so the two sides never
// race to start the handshake. Everyone then gets a fresh membership
// snapshot.
func (co *Coordinator) handleJoin(c *Client, sessionID string) {
	before := co.registry.State(sessionID)
	members, grew := co.registry.Join(sessionID, c.ID)

	if grew {
		if before == rooms.StateEmpty {
			metrics.ActiveRooms.Inc()
		}
		if co.presence != nil {
			co.presence.Add(sessionID, c.ID)
		}
		co.log.Info("participant joined session",
			zap.String("session", sessionID),
			zap.String("handle", c.ID),
			zap.Int("members", len(members)))
	}

	if before != rooms.StateTwoJoined && co.registry.State(sessionID) == rooms.StateTwoJoined {
		metrics.PeerJoinedTotal.Inc()
		co.sendTo(c, Envelope{Event: EventPeerJoined, SessionID: sessionID})
	}

	co.broadcastMembers(sessionID, members)
}

// handleLeave processes a voluntary exit. Remaining members are told who
// left and get a fresh membership snapshot.
func (co *Coordinator) handleLeave(c *Client, sessionID string) {
	remaining, removed := co.registry.Leave(sessionID, c.ID)
	if !removed {
		return
	}
	if co.presence != nil {
		co.presence.Remove(sessionID, c.ID)
	}
	co.log.Info("participant left session",
		zap.String("session", sessionID),
		zap.String("handle", c.ID),
		zap.Int("remaining", len(remaining)))

	if len(remaining) == 0 {
		metrics.ActiveRooms.Dec()
		return
	}
	co.notifyDeparture(sessionID, c.ID, remaining)
}

// handleDisconnect is the transport-level counterpart of handleLeave,
// applied to every room the handle was in. Remaining members get the same
// peer-disconnected notification as on a voluntary leave.
func (co *Coordinator) handleDisconnect(c *Client) {
	affected := co.registry.RemoveEverywhere(c.ID)
	for sessionID, remaining := range affected {
		if co.presence != nil {
			co.presence.Remove(sessionID, c.ID)
		}
		if len(remaining) == 0 {
			metrics.ActiveRooms.Dec()
			continue
		}
		co.notifyDeparture(sessionID, c.ID, remaining)
	}
	co.log.Info("participant disconnected",
		zap.String("handle", c.ID),
		zap.Int("sessions", len(affected)))
}

// relay forwards a signal or chat envelope to every other member of the
// room, data untouched. Fire and forget: the peer-connection layer owns
// any retry semantics.
func (co *Coordinator) relay(sender *Client, env Envelope) {
	out := Envelope{
		Event:     env.Event,
		SessionID: env.SessionID,
		From:      sender.ID,
		Data:      env.Data,
	}
	for _, handle := range co.registry.MembersOf(env.SessionID) {
		if handle == sender.ID {
			continue
		}
		if c, ok := co.clients[handle]; ok {
			co.sendTo(c, out)
		}
	}
}

func (co *Coordinator) notifyDeparture(sessionID, departed string, remaining []string) {
	for _, handle := range remaining {
		if c, ok := co.clients[handle]; ok {
			co.sendTo(c, Envelope{
				Event:     EventPeerDisconnected,
				SessionID: sessionID,
				From:      departed,
			})
		}
	}
	co.broadcastMembers(sessionID, remaining)
}

func (co *Coordinator) broadcastMembers(sessionID string, members []string) {
	data, err := json.Marshal(members)
	if err != nil {
		co.log.Error("marshal member list", zap.Error(err))
		return
	}
	env := Envelope{Event: EventUsersInSession, SessionID: sessionID, Data: data}
	for _, handle := range members {
		if c, ok := co.clients[handle]; ok {
			co.sendTo(c, env)
		}
	}
}

// sendTo queues an envelope on the client's send buffer without blocking
// the event loop. A full buffer means a stalled connection; the message is
// dropped and counted.
func (co *Coordinator) sendTo(c *Client, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		co.log.Error("marshal envelope", zap.Error(err))
		return
	}
	select {
	case c.send <- data:
	default:
		metrics.DroppedMessagesTotal.Inc()
		co.log.Warn("send buffer full, dropping message",
			zap.String("handle", c.ID),
			zap.String("event", env.Event))
	}
}
